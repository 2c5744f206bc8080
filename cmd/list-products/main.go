package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/themindgauge/woo-content-optimizer/internal/config"
	"github.com/themindgauge/woo-content-optimizer/internal/woo"
)

func main() {
	var page, perPage int
	flag.IntVar(&page, "page", 1, "Catalog page to fetch")
	flag.IntVar(&perPage, "per-page", 10, "Page size")
	flag.Parse()

	config.LoadEnvFile()
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	client := woo.NewClient(woo.ClientOpts{
		BaseURL:        cfg.BaseURL,
		ConsumerKey:    cfg.ConsumerKey,
		ConsumerSecret: cfg.ConsumerSecret,
		Timeout:        cfg.RequestTimeout,
	})

	products, err := client.GetProducts(context.Background(), perPage, page)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error fetching products: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Page %d: %d products\n\n", page, len(products))
	for _, p := range products {
		fmt.Printf("[%d] %s\n", p.ID, p.Name)
		fmt.Printf("    slug: %s  category: %s  images: %d  modified: %s\n",
			p.Slug, p.CategoryName(), len(p.Images), p.DateModified)
	}
}
