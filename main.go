package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jessevdk/go-flags"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/themindgauge/woo-content-optimizer/internal/api"
	"github.com/themindgauge/woo-content-optimizer/internal/config"
	"github.com/themindgauge/woo-content-optimizer/internal/keywords"
	"github.com/themindgauge/woo-content-optimizer/internal/ledger"
	"github.com/themindgauge/woo-content-optimizer/internal/llm"
	"github.com/themindgauge/woo-content-optimizer/internal/optimizer"
	"github.com/themindgauge/woo-content-optimizer/internal/storage"
	"github.com/themindgauge/woo-content-optimizer/internal/woo"
	"golang.org/x/sync/errgroup"
)

type options struct {
	StartPage    int    `long:"start-page" default:"1" description:"First catalog page to process"`
	MaxProducts  int    `long:"max-products" default:"10" description:"Maximum products to process this run (0 = unbounded)"`
	ForceUpdate  bool   `long:"force" description:"Reprocess products even if already optimized or recently modified"`
	DryRun       bool   `long:"dry-run" description:"Compute and record changes without writing to the catalog"`
	Listen       string `long:"listen" description:"Run as an HTTP service on this address (e.g. :8080) instead of a one-shot run"`
	ClearHistory bool   `long:"clear-history" description:"Clear the optimization history and exit"`
	NoCache      bool   `long:"no-cache" description:"Disable the LLM completion cache"`
	NoTrends     bool   `long:"no-trends" description:"Skip Google Trends research for this run, heuristics only"`
}

func main() {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	var opts options
	if _, err := flags.Parse(&opts); err != nil {
		var flagsErr *flags.Error
		if errors.As(err, &flagsErr) && flagsErr.Type == flags.ErrHelp {
			return
		}
		os.Exit(1)
	}

	config.LoadEnvFile()
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("configuration error")
	}

	history := ledger.NewStore(cfg.LedgerPath)
	log.Info().Str("path", cfg.LedgerPath).Int("results", len(history.All())).Msg("ledger loaded")

	if opts.ClearHistory {
		if err := history.Clear(); err != nil {
			log.Fatal().Err(err).Msg("failed to clear history")
		}
		log.Info().Msg("optimization history cleared")
		return
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	catalog := woo.NewClient(woo.ClientOpts{
		BaseURL:        cfg.BaseURL,
		ConsumerKey:    cfg.ConsumerKey,
		ConsumerSecret: cfg.ConsumerSecret,
		Timeout:        cfg.RequestTimeout,
	})

	gemini, err := llm.NewGemini(ctx, cfg.GeminiAPIKey)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize gemini")
	}

	var completer llm.Completer = gemini
	if !opts.NoCache {
		store, err := storage.NewSQLiteStore(cfg.CacheDBPath)
		if err != nil {
			log.Fatal().Err(err).Msg("failed to initialize completion cache")
		}
		defer store.Close()
		completer = llm.NewCachedCompleter(gemini, store)
		log.Info().Str("dbPath", cfg.CacheDBPath).Msg("completion caching enabled")
	}

	trends := keywords.NewTrendsClient(keywords.TrendsClientOpts{Timeout: cfg.RequestTimeout})
	research := keywords.NewResearch(trends, keywords.NewCache(cfg.TrendCachePath), cfg.TargetRegion)

	pipeline := optimizer.NewPipeline(optimizer.PipelineOpts{
		Catalog:   catalog,
		Gen:       llm.NewGenerator(completer),
		Keywords:  research,
		Ledger:    history,
		BaseURL:   cfg.BaseURL,
		UseTrends: cfg.UseTrends,
	})

	if opts.Listen != "" {
		runServer(ctx, opts.Listen, pipeline, history)
		return
	}

	runOpts := optimizer.RunOptions{
		StartPage:   opts.StartPage,
		MaxProducts: opts.MaxProducts,
		ForceUpdate: opts.ForceUpdate,
		DryRun:      opts.DryRun,
	}
	if opts.NoTrends {
		useTrends := false
		runOpts.UseTrends = &useTrends
	}

	results := pipeline.Run(ctx, runOpts)
	log.Info().Int("totalResults", len(results)).Msg("done")
}

func runServer(ctx context.Context, addr string, pipeline *optimizer.Pipeline, history *ledger.Store) {
	server := &http.Server{
		Addr:    addr,
		Handler: api.NewServer(pipeline, history).Router(),
	}

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Info().Str("addr", addr).Msg("listening")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil && err != context.Canceled {
		log.Error().Err(err).Msg("shutdown with error")
	} else {
		log.Info().Msg("shutdown complete")
	}
}
