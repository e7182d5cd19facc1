package refresh

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"foley-demo-prep/internal"
	"foley-demo-prep/internal/logging"
)

type fakeSigner struct {
	failFor  map[string]bool
	checkErr error
}

func (f *fakeSigner) SignURL(ctx context.Context, remotePath string) (string, error) {
	if f.failFor[remotePath] {
		return "", errors.New("signing rejected")
	}
	return "https://signed.example/" + remotePath + "?sign=fresh", nil
}

func (f *fakeSigner) Check(ctx context.Context) error {
	return f.checkErr
}

func testLogger(t *testing.T) *logging.Logger {
	t.Helper()
	log, err := logging.New(filepath.Join(t.TempDir(), "errors.log"))
	if err != nil {
		t.Fatalf("failed to create logger: %v", err)
	}
	t.Cleanup(func() { log.Close() })
	return log
}

func testEnv(t *testing.T) internal.Config {
	t.Helper()
	dir := t.TempDir()

	mapping := map[string]string{
		"MMAudio_1.mp4": "https://bucket.cos.ap-shanghai.myqcloud.com/hunyuanvideo-foley_demo/demo_show/MMAudio_1.mp4",
		"Frieren_1.mp4": "https://bucket.cos.ap-shanghai.myqcloud.com/hunyuanvideo-foley_demo/demo_show/Frieren_1.mp4",
		"foreign.mp4":   "https://somewhere.else/foreign.mp4",
	}
	mappingPath := filepath.Join(dir, "video_url_mapping.json")
	data, err := json.Marshal(mapping)
	if err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(mappingPath, data, 0o644); err != nil {
		t.Fatal(err)
	}

	manifest := filepath.Join(dir, "demo_videos.jsonl")
	manifestContent := `{"sequence_id":1,"videos":{"mmaudio":"videos/demo_show/MMAudio_1.mp4","frieren":"videos/demo_show/Frieren_1.mp4"}}
`
	if err := os.WriteFile(manifest, []byte(manifestContent), 0o644); err != nil {
		t.Fatal(err)
	}

	return internal.Config{
		URLMappingFile:       mappingPath,
		SignedURLMappingFile: filepath.Join(dir, "signed_video_url_mapping.json"),
		ManifestFiles:        []string{manifest},
		COSBucket:            "bucket",
		COSRegion:            "ap-shanghai",
		COSPathMarker:        "hunyuanvideo-foley_demo/",
	}
}

func TestRun(t *testing.T) {
	cfg := testEnv(t)

	if err := Run(context.Background(), cfg, &fakeSigner{}, testLogger(t)); err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	data, err := os.ReadFile(cfg.SignedURLMappingFile)
	if err != nil {
		t.Fatalf("signed mapping not written: %v", err)
	}
	var signed map[string]string
	if err := json.Unmarshal(data, &signed); err != nil {
		t.Fatal(err)
	}

	// the foreign URL has no path marker and is silently excluded
	if len(signed) != 2 {
		t.Fatalf("signed mapping has %d entries, want 2: %v", len(signed), signed)
	}
	want := "https://signed.example/hunyuanvideo-foley_demo/demo_show/MMAudio_1.mp4?sign=fresh"
	if signed["MMAudio_1.mp4"] != want {
		t.Errorf("MMAudio_1.mp4 = %q, want %q", signed["MMAudio_1.mp4"], want)
	}

	manifestData, err := os.ReadFile(cfg.ManifestFiles[0])
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(manifestData), "?sign=fresh") {
		t.Errorf("manifest not rewritten:\n%s", manifestData)
	}

	if _, err := os.Stat(cfg.ManifestFiles[0] + ".signed.backup"); err != nil {
		t.Errorf("signed backup missing: %v", err)
	}
}

func TestRun_FailedEntrySkipped(t *testing.T) {
	cfg := testEnv(t)
	signer := &fakeSigner{failFor: map[string]bool{
		"hunyuanvideo-foley_demo/demo_show/Frieren_1.mp4": true,
	}}

	if err := Run(context.Background(), cfg, signer, testLogger(t)); err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	data, err := os.ReadFile(cfg.SignedURLMappingFile)
	if err != nil {
		t.Fatal(err)
	}
	var signed map[string]string
	if err := json.Unmarshal(data, &signed); err != nil {
		t.Fatal(err)
	}
	if _, ok := signed["Frieren_1.mp4"]; ok {
		t.Error("failed entry should be skipped, not kept")
	}
	if _, ok := signed["MMAudio_1.mp4"]; !ok {
		t.Error("successful entry missing from signed mapping")
	}

	// the skipped filename keeps its old path in the manifest
	manifestData, err := os.ReadFile(cfg.ManifestFiles[0])
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(manifestData), "videos/demo_show/Frieren_1.mp4") {
		t.Errorf("skipped entry's path was modified:\n%s", manifestData)
	}
}

func TestRun_SignerCheckFails(t *testing.T) {
	cfg := testEnv(t)
	checkErr := fmt.Errorf("coscmd not configured")

	err := Run(context.Background(), cfg, &fakeSigner{checkErr: checkErr}, testLogger(t))
	if err == nil {
		t.Fatal("Run() expected error when signer check fails, got nil")
	}
	if !errors.Is(err, checkErr) {
		t.Errorf("Run() error = %v, want wrapped %v", err, checkErr)
	}
}

func TestRun_MissingMapping(t *testing.T) {
	cfg := testEnv(t)
	cfg.URLMappingFile = filepath.Join(t.TempDir(), "missing.json")

	if err := Run(context.Background(), cfg, &fakeSigner{}, testLogger(t)); err == nil {
		t.Error("Run() expected error for missing mapping file, got nil")
	}
}

func TestRun_NoExtractablePaths(t *testing.T) {
	cfg := testEnv(t)
	data, err := json.Marshal(map[string]string{"a.mp4": "https://elsewhere/a.mp4"})
	if err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(cfg.URLMappingFile, data, 0o644); err != nil {
		t.Fatal(err)
	}

	if err := Run(context.Background(), cfg, &fakeSigner{}, testLogger(t)); err == nil {
		t.Error("Run() expected error when no paths can be extracted, got nil")
	}
}

func TestLoadMapping(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "m.json")
	if err := os.WriteFile(path, []byte(`{"a.mp4":"https://x/a.mp4"}`), 0o644); err != nil {
		t.Fatal(err)
	}

	m, err := LoadMapping(path)
	if err != nil {
		t.Fatalf("LoadMapping() error = %v", err)
	}
	if m["a.mp4"] != "https://x/a.mp4" {
		t.Errorf("LoadMapping() = %v", m)
	}
}

func TestLoadMapping_InvalidJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "m.json")
	if err := os.WriteFile(path, []byte("{oops"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadMapping(path); err == nil {
		t.Error("LoadMapping() expected error for invalid JSON, got nil")
	}
}
