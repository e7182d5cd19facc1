package manifest

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"foley-demo-prep/internal/logging"
)

// GroupVideos scans dir for *.mp4 result videos and groups them by extracted
// video id: id -> raw model label -> frontend-relative path. Files the parser
// rejects are skipped; unparseable-but-unexpected names are warned about so a
// renamed dump doesn't silently vanish from the manifest.
func GroupVideos(dir, relPrefix string, log *logging.Logger) (map[string]map[string]string, error) {
	if _, err := os.Stat(dir); err != nil {
		return nil, fmt.Errorf("video directory %s: %w", dir, err)
	}

	names, err := filepath.Glob(filepath.Join(dir, "*.mp4"))
	if err != nil {
		return nil, fmt.Errorf("scan %s: %w", dir, err)
	}

	groups := make(map[string]map[string]string)
	for _, p := range names {
		name := filepath.Base(p)
		label, id, ok := ParseVideoFilename(name)
		if !ok {
			if !isNumberedBaseline(name) {
				log.Warnf("manifest: skipping unrecognized filename %s", name)
			}
			continue
		}
		if groups[id] == nil {
			groups[id] = make(map[string]string)
		}
		groups[id][label] = relPrefix + "/" + name
	}
	return groups, nil
}

// isNumberedBaseline reports whether name is one of the pre-numbered demo
// videos (e.g. 1-1.mp4) that the hand-maintained manifests already cover.
func isNumberedBaseline(name string) bool {
	return name != "" && name[0] >= '0' && name[0] <= '9' && strings.Contains(name, "-")
}
