package manifest

import (
	"encoding/csv"
	"fmt"
	"os"
	"path"
	"strconv"
	"strings"
)

type captionRow struct {
	videoPath string
	caption   string
}

// CaptionTable holds the benchmark CSV rows used to look up the prompt for a
// video id. Loaded once, read-only.
type CaptionTable struct {
	rows   []captionRow
	offset int
}

// LoadCaptions reads the benchmark CSV (header row required, `video` and
// `SoundCaption` columns). offset is the data-row index the lookup scan
// starts at; earlier rows belong to a different demo page in this dataset.
func LoadCaptions(csvPath string, offset int) (*CaptionTable, error) {
	f, err := os.Open(csvPath)
	if err != nil {
		return nil, fmt.Errorf("caption csv: %w", err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1

	records, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("caption csv %s: %w", csvPath, err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("caption csv %s: empty file", csvPath)
	}

	header := records[0]
	videoCol, captionCol := -1, -1
	for i, col := range header {
		switch strings.TrimSpace(col) {
		case "video":
			videoCol = i
		case "SoundCaption":
			captionCol = i
		}
	}
	if videoCol < 0 || captionCol < 0 {
		return nil, fmt.Errorf("caption csv %s: missing video/SoundCaption columns", csvPath)
	}

	t := &CaptionTable{offset: offset}
	for _, rec := range records[1:] {
		row := captionRow{}
		if videoCol < len(rec) {
			row.videoPath = rec[videoCol]
		}
		if captionCol < len(rec) {
			row.caption = rec[captionCol]
		}
		t.rows = append(t.rows, row)
	}
	return t, nil
}

// Lookup returns the caption for a video id, matching the numeric value of
// the row's video-path basename against the numeric value of id. The scan
// starts at the configured offset; first match wins. ok is false when no row
// matches or id is not numeric.
func (t *CaptionTable) Lookup(id string) (string, bool) {
	target, err := strconv.Atoi(id)
	if err != nil {
		return "", false
	}
	for i := t.offset; i < len(t.rows); i++ {
		vp := t.rows[i].videoPath
		if vp == "" {
			continue
		}
		base := strings.TrimSuffix(path.Base(vp), ".mp4")
		n, err := strconv.Atoi(base)
		if err != nil {
			continue
		}
		if n == target {
			return t.rows[i].caption, true
		}
	}
	return "", false
}
