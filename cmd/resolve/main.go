package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"foley-demo-prep/internal"
	"foley-demo-prep/internal/cos"
	"foley-demo-prep/internal/logging"
	"foley-demo-prep/internal/resolve"

	"github.com/joho/godotenv"
)

func main() {
	// Load .env file if it exists
	_ = godotenv.Load(".env")
	_ = godotenv.Load("../.env")

	var (
		uploadLog  = flag.String("log", "", "coscmd upload log to parse (default from config)")
		mappingOut = flag.String("mapping-out", "", "Where to save the filename->URL mapping (default from config)")
	)
	flag.Parse()

	cfg, err := internal.LoadConfig()
	if err != nil {
		fmt.Printf("Error loading config: %v\n", err)
		os.Exit(1)
	}
	if *uploadLog != "" {
		cfg.UploadLog = *uploadLog
	}
	if *mappingOut != "" {
		cfg.URLMappingFile = *mappingOut
	}

	log, err := logging.New("resolve.log")
	if err != nil {
		fmt.Printf("Error creating logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Close()

	signer, err := cos.NewSigner(cfg)
	if err != nil {
		log.Errorf("Error creating signer: %v", err)
		os.Exit(1)
	}
	resolver := cos.NewResolver(cfg, signer)

	fmt.Println("=== Resolving video URLs from upload log ===")
	if err := resolve.Run(context.Background(), cfg, resolver, log); err != nil {
		log.Error(err)
		fmt.Printf("❌ URL resolution failed: %v\n", err)
		return
	}
	fmt.Println("✅ Video URLs resolved and manifests updated")
}
