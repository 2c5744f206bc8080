package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/themindgauge/woo-content-optimizer/internal/config"
	"github.com/themindgauge/woo-content-optimizer/internal/keywords"
)

func main() {
	var category string
	var noTrends bool
	flag.StringVar(&category, "category", "", "Product category")
	flag.BoolVar(&noTrends, "no-trends", false, "Skip Google Trends, use heuristics only")
	flag.Parse()

	name := strings.Join(flag.Args(), " ")
	if name == "" {
		fmt.Fprintln(os.Stderr, "usage: suggest-keywords [flags] <product name>")
		os.Exit(1)
	}

	config.LoadEnvFile()
	region := os.Getenv("TARGET_REGION")
	if region == "" {
		region = "ALL"
	}

	cachePath := os.Getenv("TREND_CACHE_PATH")
	if cachePath == "" {
		cachePath = "keyword_trends_cache.json"
	}

	trends := keywords.NewTrendsClient(keywords.TrendsClientOpts{})
	research := keywords.NewResearch(trends, keywords.NewCache(cachePath), region)
	for _, phrase := range research.Suggest(context.Background(), name, category, !noTrends) {
		fmt.Println(phrase)
	}
}
