package main

import (
	"flag"
	"fmt"
	"os"

	"foley-demo-prep/internal"
	"foley-demo-prep/internal/logging"
	"foley-demo-prep/internal/manifest"

	"github.com/joho/godotenv"
)

func main() {
	// Load .env file if it exists
	_ = godotenv.Load(".env")
	_ = godotenv.Load("../.env")

	var (
		videoDir = flag.String("videos", "", "Directory of demo result videos (default from config)")
		captions = flag.String("csv", "", "Benchmark caption CSV (default from config)")
		out      = flag.String("out", "", "Output JSONL manifest (default from config)")
	)
	flag.Parse()

	cfg, err := internal.LoadConfig()
	if err != nil {
		fmt.Printf("Error loading config: %v\n", err)
		os.Exit(1)
	}
	if *videoDir != "" {
		cfg.VideoDir = *videoDir
	}
	if *captions != "" {
		cfg.CaptionCSV = *captions
	}
	if *out != "" {
		cfg.ComparisonOut = *out
	}

	log, err := logging.New("comparison.log")
	if err != nil {
		fmt.Printf("Error creating logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Close()

	fmt.Println("=== Generating model comparison manifest ===")
	if err := manifest.Build(cfg, log); err != nil {
		log.Error(err)
		fmt.Printf("❌ Manifest generation failed: %v\n", err)
		return
	}
	fmt.Println("✅ Manifest generated successfully")
}
