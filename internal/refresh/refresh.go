package refresh

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"sort"

	"github.com/samber/lo"
	"github.com/schollz/progressbar/v3"

	"foley-demo-prep/internal"
	"foley-demo-prep/internal/cos"
	"foley-demo-prep/internal/jsonl"
	"foley-demo-prep/internal/logging"
	"foley-demo-prep/internal/resolve"
)

// checker is implemented by signers that can verify their own availability
// up front. The refresh pass has no public-URL fallback, so it refuses to
// start if the signer is known to be broken.
type checker interface {
	Check(ctx context.Context) error
}

// Run executes one refresh pass: load the saved filename->URL mapping,
// recover each object path from its URL, request a fresh signed URL per path
// and rewrite the manifests. Entries whose URL cannot be re-signed are
// skipped, not replaced by public URLs; a refresh only makes sense with a
// working signer.
func Run(ctx context.Context, cfg internal.Config, signer cos.Signer, log *logging.Logger) error {
	if c, ok := signer.(checker); ok {
		if err := c.Check(ctx); err != nil {
			return err
		}
	}

	urls, err := LoadMapping(cfg.URLMappingFile)
	if err != nil {
		return fmt.Errorf("%w (run the resolve tool first)", err)
	}

	paths := cos.ExtractRemotePaths(urls, cfg.COSPathMarker)
	log.Infof("refresh: extracted %d object paths from %s", len(paths), cfg.URLMappingFile)
	if len(paths) == 0 {
		return fmt.Errorf("no object paths found in %s", cfg.URLMappingFile)
	}

	names := lo.Keys(paths)
	sort.Strings(names)

	signedURLs := make(map[string]string, len(names))
	bar := progressbar.Default(int64(len(names)), "signing")
	for _, name := range names {
		url, err := signer.SignURL(ctx, paths[name])
		if err != nil {
			log.Errorf("refresh: %s: %v, skipping", name, err)
			_ = bar.Add(1)
			continue
		}
		signedURLs[name] = url
		_ = bar.Add(1)
	}
	log.Infof("refresh: generated %d signed URLs", len(signedURLs))
	if len(signedURLs) == 0 {
		return fmt.Errorf("no signed URLs generated")
	}

	if err := resolve.WriteMapping(cfg.SignedURLMappingFile, signedURLs); err != nil {
		return err
	}
	log.Infof("refresh: signed URL mapping saved to %s", cfg.SignedURLMappingFile)

	total := 0
	for _, manifest := range cfg.ManifestFiles {
		if _, err := os.Stat(manifest); os.IsNotExist(err) {
			log.Warnf("refresh: manifest does not exist, skipping: %s", manifest)
			continue
		}
		if _, err := jsonl.Backup(manifest, ".signed.backup", log); err != nil {
			log.Error(err)
			continue
		}
		n, err := jsonl.UpdateFile(manifest, signedURLs, log)
		if err != nil {
			log.Error(err)
			continue
		}
		total += n
	}

	log.Infof("refresh: done, %d manifest lines updated", total)
	log.Infof("refresh: signed URL validity: %.1f years", cfg.SignExpiry.Hours()/(365*24))
	return nil
}

// LoadMapping reads a filename->URL mapping saved by a previous run.
func LoadMapping(path string) (map[string]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("url mapping: %w", err)
	}
	var urls map[string]string
	if err := json.Unmarshal(data, &urls); err != nil {
		return nil, fmt.Errorf("url mapping %s: %w", path, err)
	}
	return urls, nil
}
