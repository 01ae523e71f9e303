package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/jafarshop/catalogapi/internal/config"
	"github.com/jafarshop/catalogapi/internal/domain"
	"github.com/jafarshop/catalogapi/internal/service"
	"github.com/jafarshop/catalogapi/internal/shopify"
)

// Submits a product spec JSON file to a store without going through the HTTP
// server. Shop and token come from flags or SHOPIFY_SHOP_DOMAIN /
// SHOPIFY_ACCESS_TOKEN.
func main() {
	_ = godotenv.Load(".env")
	_ = godotenv.Load("../.env")

	file := flag.String("file", "", "path to product spec JSON file")
	shop := flag.String("shop", os.Getenv("SHOPIFY_SHOP_DOMAIN"), "shop domain (e.g. my-store.myshopify.com)")
	token := flag.String("token", os.Getenv("SHOPIFY_ACCESS_TOKEN"), "Admin API access token")
	flag.Parse()

	if *file == "" || *shop == "" || *token == "" {
		fmt.Println("Usage: go run cmd/create-product/main.go -file spec.json -shop my-store.myshopify.com -token shpat_...")
		os.Exit(1)
	}

	raw, err := os.ReadFile(*file)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to read spec file: %v\n", err)
		os.Exit(1)
	}

	var spec domain.ProductSpec
	if err := json.Unmarshal(raw, &spec); err != nil {
		fmt.Fprintf(os.Stderr, "Invalid spec JSON: %v\n", err)
		os.Exit(1)
	}
	if err := spec.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "Invalid product spec: %v\n", err)
		os.Exit(1)
	}

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	logger, _ := zap.NewDevelopment()
	defer logger.Sync()

	client := shopify.NewClient(cfg.Shopify, logger)
	products := service.NewProductService(client, nil, logger)

	data, err := products.CreateProduct(context.Background(), *shop, *token, &spec)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Product creation failed: %v\n", err)
		os.Exit(1)
	}

	pretty, err := json.MarshalIndent(json.RawMessage(data), "", "  ")
	if err != nil {
		fmt.Println(string(data))
		return
	}
	fmt.Println(string(pretty))
}
