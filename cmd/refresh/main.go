package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"foley-demo-prep/internal"
	"foley-demo-prep/internal/cos"
	"foley-demo-prep/internal/logging"
	"foley-demo-prep/internal/refresh"

	"github.com/joho/godotenv"
)

func main() {
	// Load .env file if it exists
	_ = godotenv.Load(".env")
	_ = godotenv.Load("../.env")

	var (
		mapping    = flag.String("mapping", "", "Saved filename->URL mapping to refresh (default from config)")
		mappingOut = flag.String("mapping-out", "", "Where to save the refreshed mapping (default from config)")
	)
	flag.Parse()

	cfg, err := internal.LoadConfig()
	if err != nil {
		fmt.Printf("Error loading config: %v\n", err)
		os.Exit(1)
	}
	if *mapping != "" {
		cfg.URLMappingFile = *mapping
	}
	if *mappingOut != "" {
		cfg.SignedURLMappingFile = *mappingOut
	}

	log, err := logging.New("refresh.log")
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

	fmt.Println("=== Refreshing signed video URLs ===")
	if err := refresh.Run(context.Background(), cfg, signer, log); err != nil {
		log.Error(err)
		fmt.Printf("❌ Signed URL refresh failed: %v\n", err)
		return
	}
	fmt.Println("✅ Signed URLs refreshed and manifests updated")
}
