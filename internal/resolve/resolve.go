package resolve

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/samber/lo"
	"github.com/schollz/progressbar/v3"

	"foley-demo-prep/internal"
	"foley-demo-prep/internal/cos"
	"foley-demo-prep/internal/jsonl"
	"foley-demo-prep/internal/logging"
	"foley-demo-prep/internal/uploadlog"
)

// Run executes one resolver pass: parse the upload log, resolve a URL for
// every .mp4 that was uploaded (signed if possible, public otherwise), save
// the filename->URL mapping and rewrite all configured manifests with it.
// Partial failure is not fatal; an entirely absent input is.
func Run(ctx context.Context, cfg internal.Config, resolver *cos.Resolver, log *logging.Logger) error {
	log.Infof("resolve: step 1, parsing upload log")
	mapping, err := uploadlog.Parse(cfg.UploadLog)
	if err != nil {
		return err
	}
	log.Infof("resolve: parsed %d file mappings from %s", len(mapping), cfg.UploadLog)

	videos := lo.PickBy(mapping, func(name, _ string) bool {
		return strings.HasSuffix(name, ".mp4")
	})
	if len(videos) == 0 {
		return fmt.Errorf("no video file mappings found in %s", cfg.UploadLog)
	}

	log.Infof("resolve: step 2, resolving URLs for %d videos", len(videos))
	names := lo.Keys(videos)
	sort.Strings(names)

	urls := make(map[string]string, len(names))
	signed, public := 0, 0
	bar := progressbar.Default(int64(len(names)), "resolving")
	for _, name := range names {
		res := resolver.Resolve(ctx, videos[name])
		urls[name] = res.URL
		switch res.Source {
		case cos.SourceSigned:
			signed++
		case cos.SourcePublic:
			public++
			log.Warnf("resolve: %s: signing failed (%v), using public URL", name, res.SignErr)
		}
		_ = bar.Add(1)
	}
	log.Infof("resolve: %d URLs resolved (%d signed, %d public)", len(urls), signed, public)

	if err := WriteMapping(cfg.URLMappingFile, urls); err != nil {
		return err
	}
	log.Infof("resolve: URL mapping saved to %s", cfg.URLMappingFile)

	log.Infof("resolve: step 3, updating manifests")
	total := 0
	for _, manifest := range cfg.ManifestFiles {
		if _, err := jsonl.Backup(manifest, ".backup", log); err != nil {
			log.Error(err)
			continue
		}
		n, err := jsonl.UpdateFile(manifest, urls, log)
		if err != nil {
			log.Error(err)
			continue
		}
		total += n
	}

	log.Infof("resolve: done, %d manifest lines updated", total)
	log.Infof("resolve: signed URL validity: %.1f years", cfg.SignExpiry.Hours()/(365*24))
	return nil
}

// WriteMapping saves a filename->URL mapping as indented, unescaped JSON.
func WriteMapping(path string, urls map[string]string) error {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(urls); err != nil {
		return fmt.Errorf("encode mapping: %w", err)
	}
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("write mapping %s: %w", path, err)
	}
	return nil
}
