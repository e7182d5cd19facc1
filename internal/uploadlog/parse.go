package uploadlog

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
)

// uploadLineRE matches one upload event in coscmd's transfer log, e.g.
//
//	Upload /local/dir/a.mp4   =>   cos://bucket/hunyuanvideo-foley_demo/demo_show/a.mp4
//
// Group 1 is the local path, group 2 the object path with the bucket stripped.
var uploadLineRE = regexp.MustCompile(`Upload\s+(.+?)\s+=>\s+cos://[^/]+/(.+)`)

// Parse extracts local-filename -> remote-object-path pairs from an upload
// log. Lines that don't match the upload pattern are ignored. A later entry
// for the same filename wins, matching the order uploads were retried in.
func Parse(logPath string) (map[string]string, error) {
	f, err := os.Open(logPath)
	if err != nil {
		return nil, fmt.Errorf("upload log: %w", err)
	}
	defer f.Close()

	mapping := make(map[string]string)
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		m := uploadLineRE.FindStringSubmatch(scanner.Text())
		if m == nil {
			continue
		}
		mapping[filepath.Base(m[1])] = m[2]
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("upload log %s: %w", logPath, err)
	}
	return mapping, nil
}
