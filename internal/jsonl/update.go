package jsonl

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path"
	"strings"

	"github.com/tidwall/gjson"

	"foley-demo-prep/internal/logging"
)

// UpdateFile rewrites video references in one JSONL manifest: for every line
// with a `videos` object, any path whose basename appears in urls is replaced
// by the mapped URL. Every parseable line is re-serialized; lines that are
// not valid JSON are written back verbatim and logged. Returns the number of
// changed lines (not changed fields).
//
// A manifest that doesn't exist is skipped with a warning so one missing file
// doesn't stop the batch.
func UpdateFile(manifestPath string, urls map[string]string, log *logging.Logger) (int, error) {
	data, err := os.ReadFile(manifestPath)
	if err != nil {
		if os.IsNotExist(err) {
			log.Warnf("jsonl: file does not exist, skipping: %s", manifestPath)
			return 0, nil
		}
		return 0, fmt.Errorf("read %s: %w", manifestPath, err)
	}

	var out []string
	updated := 0

	for i, raw := range strings.Split(string(data), "\n") {
		line := strings.TrimSpace(raw)
		if line == "" {
			continue
		}
		lineNum := i + 1

		if !gjson.Valid(line) {
			log.Errorf("jsonl: %s line %d is not valid JSON, keeping as is", manifestPath, lineNum)
			out = append(out, line)
			continue
		}

		rewritten, changed, err := rewriteLine(line, urls, manifestPath, lineNum, log)
		if err != nil {
			log.Errorf("jsonl: %s line %d: %v, keeping as is", manifestPath, lineNum, err)
			out = append(out, line)
			continue
		}
		if changed {
			updated++
		}
		out = append(out, rewritten)
	}

	content := strings.Join(out, "\n") + "\n"
	if err := os.WriteFile(manifestPath, []byte(content), 0o644); err != nil {
		return 0, fmt.Errorf("write %s: %w", manifestPath, err)
	}

	log.Infof("jsonl: %s updated, %d lines changed", manifestPath, updated)
	return updated, nil
}

func rewriteLine(line string, urls map[string]string, manifestPath string, lineNum int, log *logging.Logger) (string, bool, error) {
	var entry map[string]any
	if err := json.Unmarshal([]byte(line), &entry); err != nil {
		return "", false, err
	}

	changed := false
	if videos, ok := entry["videos"].(map[string]any); ok {
		for modelKey, v := range videos {
			videoPath, ok := v.(string)
			if !ok {
				continue
			}
			name := path.Base(videoPath)
			if url, ok := urls[name]; ok && videoPath != url {
				videos[modelKey] = url
				log.Infof("jsonl: %s line %d %s: %s -> %s", manifestPath, lineNum, modelKey, videoPath, name)
				changed = true
			}
		}
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(entry); err != nil {
		return "", false, err
	}
	return strings.TrimSuffix(buf.String(), "\n"), changed, nil
}
