package manifest

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/samber/lo"

	"foley-demo-prep/internal"
	"foley-demo-prep/internal/logging"
	"foley-demo-prep/internal/model"
)

// Build scans the demo video directory, joins each video id with its caption
// from the benchmark CSV and writes the model-comparison JSONL manifest.
// Missing videos directory or CSV aborts the build; a missing caption only
// leaves the prompt empty.
func Build(cfg internal.Config, log *logging.Logger) error {
	groups, err := GroupVideos(cfg.VideoDir, cfg.VideoRelPrefix, log)
	if err != nil {
		return err
	}
	captions, err := LoadCaptions(cfg.CaptionCSV, cfg.CaptionRowOffset)
	if err != nil {
		return err
	}

	ids := sortVideoIDs(lo.Keys(groups))

	entries := make([]model.ComparisonEntry, 0, len(ids))
	for i, id := range ids {
		prompt, ok := captions.Lookup(id)
		if !ok {
			log.Warnf("manifest: no matching caption for video id %s", id)
		}

		videos := make(map[string]string, len(groups[id]))
		for label, relPath := range groups[id] {
			videos[model.CanonicalModelKey(label)] = relPath
		}

		entries = append(entries, model.ComparisonEntry{
			SequenceID: i + 1,
			VideoID:    id,
			Prompt:     prompt,
			Videos:     videos,
		})
	}

	if err := writeJSONL(cfg.ComparisonOut, entries); err != nil {
		return err
	}

	log.Infof("manifest: generated %d entries in %s", len(entries), cfg.ComparisonOut)
	log.Infof("manifest: available models: %s", strings.Join(availableModels(entries), ", "))
	return nil
}

// sortVideoIDs orders ids by ascending numeric value; ids that are not
// integers sort after all numeric ones, alphabetically among themselves.
func sortVideoIDs(ids []string) []string {
	sort.Slice(ids, func(i, j int) bool {
		a, aErr := strconv.Atoi(ids[i])
		b, bErr := strconv.Atoi(ids[j])
		switch {
		case aErr == nil && bErr == nil:
			return a < b
		case aErr == nil:
			return true
		case bErr == nil:
			return false
		default:
			return ids[i] < ids[j]
		}
	})
	return ids
}

func writeJSONL(path string, entries []model.ComparisonEntry) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("write manifest: %w", err)
	}
	defer f.Close()

	enc := json.NewEncoder(f)
	enc.SetEscapeHTML(false)
	for _, e := range entries {
		if err := enc.Encode(e); err != nil {
			return fmt.Errorf("write manifest %s: %w", path, err)
		}
	}
	return f.Close()
}

func availableModels(entries []model.ComparisonEntry) []string {
	seen := make(map[string]struct{})
	for _, e := range entries {
		for key := range e.Videos {
			seen[key] = struct{}{}
		}
	}
	keys := lo.Keys(seen)
	sort.Strings(keys)
	return keys
}
