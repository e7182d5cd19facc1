package internal

import (
	"errors"
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	// Manifest Builder inputs/outputs
	VideoDir       string
	VideoRelPrefix string // path prefix the frontend uses for the same files
	CaptionCSV     string
	ComparisonOut  string

	// CaptionRowOffset is where the caption search starts inside the CSV
	// data rows. The benchmark CSV front-loads rows that belong to another
	// demo page; this offset is specific to that dataset.
	CaptionRowOffset int

	// JSONL manifests rewritten by the URL tools
	ManifestFiles []string

	UploadLog            string
	URLMappingFile       string
	SignedURLMappingFile string

	COSBucket     string
	COSRegion     string
	COSPathMarker string // path segment that identifies our objects inside stored URLs

	// Optional COS API credentials. When both are set the tools presign
	// URLs directly instead of shelling out to coscmd.
	COSSecretID  string
	COSSecretKey string

	SignExpiry  time.Duration // validity of generated signed URLs
	SignTimeout time.Duration // per-invocation bound on the signing tool
}

func LoadConfig() (Config, error) {
	cfg := Config{
		VideoDir:       "public/videos/demo_show",
		VideoRelPrefix: "videos/demo_show",
		CaptionCSV:     "public/test_aries_tv2a_sound.csv",
		ComparisonOut:  "src/assets/model_comparison_videos.jsonl",

		CaptionRowOffset: 64,

		ManifestFiles: []string{
			"src/assets/demo_videos.jsonl",
			"src/assets/moviegen_benchmark.jsonl",
			"src/assets/model_comparison_videos.jsonl",
		},

		UploadLog:            "upload_result.log",
		URLMappingFile:       "video_url_mapping.json",
		SignedURLMappingFile: "signed_video_url_mapping.json",

		COSBucket:     "texttoaudio-train-1258344703",
		COSRegion:     "ap-shanghai",
		COSPathMarker: "hunyuanvideo-foley_demo/",

		COSSecretID:  os.Getenv("COS_SECRET_ID"),
		COSSecretKey: os.Getenv("COS_SECRET_KEY"),

		SignExpiry:  157680000 * time.Second, // ~5 years
		SignTimeout: 60 * time.Second,
	}

	if v := os.Getenv("VIDEO_DIR"); v != "" {
		cfg.VideoDir = v
	}
	if v := os.Getenv("VIDEO_REL_PREFIX"); v != "" {
		cfg.VideoRelPrefix = v
	}
	if v := os.Getenv("CAPTION_CSV"); v != "" {
		cfg.CaptionCSV = v
	}
	if v := os.Getenv("COMPARISON_OUT"); v != "" {
		cfg.ComparisonOut = v
	}
	if v := os.Getenv("CAPTION_ROW_OFFSET"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n >= 0 {
			cfg.CaptionRowOffset = n
		}
	}
	if v := os.Getenv("MANIFEST_FILES"); v != "" {
		var files []string
		for _, p := range strings.Split(v, ",") {
			if p = strings.TrimSpace(p); p != "" {
				files = append(files, p)
			}
		}
		if len(files) > 0 {
			cfg.ManifestFiles = files
		}
	}
	if v := os.Getenv("UPLOAD_LOG"); v != "" {
		cfg.UploadLog = v
	}
	if v := os.Getenv("URL_MAPPING_FILE"); v != "" {
		cfg.URLMappingFile = v
	}
	if v := os.Getenv("SIGNED_URL_MAPPING_FILE"); v != "" {
		cfg.SignedURLMappingFile = v
	}
	if v := os.Getenv("COS_BUCKET"); v != "" {
		cfg.COSBucket = v
	}
	if v := os.Getenv("COS_REGION"); v != "" {
		cfg.COSRegion = v
	}
	if v := os.Getenv("COS_PATH_MARKER"); v != "" {
		cfg.COSPathMarker = v
	}
	if v := os.Getenv("SIGN_EXPIRY"); v != "" {
		if d, err := time.ParseDuration(v); err == nil && d > 0 {
			cfg.SignExpiry = d
		}
	}
	if v := os.Getenv("SIGN_TIMEOUT"); v != "" {
		if d, err := time.ParseDuration(v); err == nil && d > 0 {
			cfg.SignTimeout = d
		}
	}

	if (cfg.COSSecretID == "") != (cfg.COSSecretKey == "") {
		return cfg, errors.New("COS_SECRET_ID and COS_SECRET_KEY must be set together")
	}
	return cfg, nil
}
