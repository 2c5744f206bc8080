package optimizer

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/themindgauge/woo-content-optimizer/internal/ledger"
	"github.com/themindgauge/woo-content-optimizer/internal/llm"
	"github.com/themindgauge/woo-content-optimizer/internal/woo"
)

// Yoast SEO meta_data keys the optimizer reads and writes.
const (
	MetaKeyDescription  = "_yoast_wpseo_metadesc"
	MetaKeyFocusKeyword = "_yoast_wpseo_focuskw"
)

// recencyWindow is how recently a product must have been modified to be
// skipped without force-update.
const recencyWindow = 30 * 24 * time.Hour

// Catalog is the catalog client contract the pipeline consumes.
type Catalog interface {
	GetProducts(ctx context.Context, perPage, page int) ([]woo.Product, error)
	UpdateProduct(ctx context.Context, id int, update woo.ProductUpdate) (woo.Product, error)
}

// Generator is the content generation contract the pipeline consumes.
type Generator interface {
	TitleAndSlug(ctx context.Context, title, category string) (llm.TitleSlug, error)
	Generate(ctx context.Context, title, currentDescription, category string, suggested []string) (llm.Bundle, error)
	MetaFromTitle(ctx context.Context, title string) (llm.MetaFields, error)
}

// KeywordSource suggests ranked keyword phrases for a product. It never
// fails; on trend outage it degrades internally.
type KeywordSource interface {
	Suggest(ctx context.Context, name, category string, useTrends bool) []string
}

// Ledger is the result history contract the pipeline consumes.
type Ledger interface {
	Append(r ledger.Result) error
	All() []ledger.Result
	ProcessedIDs() map[int]struct{}
}

// RunOptions control one pipeline run.
type RunOptions struct {
	// PerPage is the catalog page size. Defaults to 10.
	PerPage int
	// StartPage is the first page to fetch (1-based). Defaults to 1.
	StartPage int
	// MaxProducts caps how many products are processed this run. 0 means
	// unbounded (run until the catalog is exhausted).
	MaxProducts int
	// ForceUpdate bypasses both the prior-processed and recency skip
	// checks.
	ForceUpdate bool
	// DryRun computes and records intended changes without writing them to
	// the catalog. Results get "preview" status.
	DryRun bool
	// UseTrends overrides the pipeline's default trend-research setting
	// for this run. Nil keeps the default.
	UseTrends *bool
}

// PipelineOpts configure a Pipeline.
type PipelineOpts struct {
	Catalog  Catalog
	Gen      Generator
	Keywords KeywordSource
	Ledger   Ledger
	// BaseURL is the store root, used for permalink fallback.
	BaseURL string
	// UseTrends is the default for trend-backed keyword research. A run
	// can override it via RunOptions.
	UseTrends bool
	// SettleDelay is the pause after the immediate title/slug write before
	// the full field update, accommodating eventual consistency in the
	// catalog backend. Defaults to one second.
	SettleDelay time.Duration
}

// Pipeline pages through the catalog, optimizes each eligible product and
// records every outcome in the ledger. Processing is strictly serial: the
// ledger's whole-file persistence would corrupt under concurrent writers.
type Pipeline struct {
	catalog     Catalog
	gen         Generator
	keywords    KeywordSource
	ledger      Ledger
	baseURL     string
	useTrends   bool
	settleDelay time.Duration
	now         func() time.Time
}

// NewPipeline creates a pipeline with the given collaborators.
func NewPipeline(opts PipelineOpts) *Pipeline {
	settle := opts.SettleDelay
	if settle == 0 {
		settle = time.Second
	}
	return &Pipeline{
		catalog:     opts.Catalog,
		gen:         opts.Gen,
		keywords:    opts.Keywords,
		ledger:      opts.Ledger,
		baseURL:     opts.BaseURL,
		useTrends:   opts.UseTrends,
		settleDelay: settle,
		now:         time.Now,
	}
}

// Run executes one optimization pass. A single product's failure is
// recorded as an error result and processing continues; a page fetch
// failure ends the run early. Run always returns the ledger's current
// contents, so partial progress stays observable.
func (p *Pipeline) Run(ctx context.Context, opts RunOptions) []ledger.Result {
	perPage := opts.PerPage
	if perPage <= 0 {
		perPage = 10
	}
	page := opts.StartPage
	if page < 1 {
		page = 1
	}

	processedIDs := map[int]struct{}{}
	if !opts.ForceUpdate {
		processedIDs = p.ledger.ProcessedIDs()
	}

	useTrends := p.useTrends
	if opts.UseTrends != nil {
		useTrends = *opts.UseTrends
	}

	mode := "update"
	if opts.DryRun {
		mode = "preview"
	}
	log.Info().
		Str("mode", mode).
		Int("startPage", page).
		Int("maxProducts", opts.MaxProducts).
		Bool("forceUpdate", opts.ForceUpdate).
		Bool("useTrends", useTrends).
		Msg("starting optimization run")

	processed := 0

pages:
	for opts.MaxProducts == 0 || processed < opts.MaxProducts {
		products, err := p.catalog.GetProducts(ctx, perPage, page)
		if err != nil {
			// A page fetch failure ends the run; everything recorded so
			// far stays persisted.
			log.Error().Err(err).Int("page", page).Msg("failed to fetch products page, ending run")
			break
		}
		if len(products) == 0 {
			log.Info().Int("page", page).Msg("no more products")
			break
		}

		for _, product := range products {
			if opts.MaxProducts > 0 && processed >= opts.MaxProducts {
				break pages
			}
			if ctx.Err() != nil {
				log.Info().Msg("run cancelled")
				break pages
			}

			if _, done := processedIDs[product.ID]; done && !opts.ForceUpdate {
				log.Debug().Int("productId", product.ID).Str("name", product.Name).Msg("skipping already processed product")
				continue
			}
			if !opts.ForceUpdate && p.recentlyModified(product) {
				log.Debug().Int("productId", product.ID).Str("name", product.Name).Msg("skipping recently modified product")
				continue
			}

			result := p.processProduct(ctx, product, opts.DryRun, useTrends)
			if err := p.ledger.Append(result); err != nil {
				log.Error().Err(err).Int("productId", product.ID).Msg("failed to persist result")
			}
			if result.Status == ledger.StatusSuccess || result.Status == ledger.StatusPreview {
				processed++
				log.Info().
					Int("productId", product.ID).
					Str("status", result.Status).
					Int("processed", processed).
					Msg("processed product")
			} else {
				log.Warn().
					Int("productId", product.ID).
					Str("status", result.Status).
					Msg("product failed, continuing with next")
			}
		}

		page++
	}

	log.Info().Int("processed", processed).Int("lastPage", page).Msg("optimization run complete")
	return p.ledger.All()
}

func (p *Pipeline) recentlyModified(product woo.Product) bool {
	modified := product.ModifiedAt()
	if modified.IsZero() {
		return false
	}
	return p.now().Sub(modified) < recencyWindow
}

// processProduct runs the generation and write-back steps for one product.
// It always returns a result; any failure along the way yields an error
// status with the values captured so far.
func (p *Pipeline) processProduct(ctx context.Context, product woo.Product, dryRun, useTrends bool) ledger.Result {
	category := product.CategoryName()

	result := ledger.Result{
		ProductID:      product.ID,
		ProductName:    product.Name,
		OldSlug:        product.Slug,
		ProductLink:    product.Link(p.baseURL),
		OldDescription: product.Description,
		Images:         product.Images,
		Timestamp:      p.now(),
	}
	result.OldImageAlts, result.OldImageTitles = imageTextSnapshots(product.Images)

	fail := func(err error) ledger.Result {
		result.Status = ledger.ErrorStatus(err)
		return result
	}

	// Title and slug rewrite first. The rest of the generation anchors on
	// the new title.
	titleSlug, err := p.gen.TitleAndSlug(ctx, product.Name, category)
	if err != nil {
		return fail(err)
	}
	title := titleSlug.Title
	if title == "" {
		title = product.Name
	}
	newSlug := titleSlug.Slug
	if newSlug == "" {
		newSlug = product.Slug
	}
	result.NewProductName = title
	result.NewSlug = newSlug
	result.TitleChangeReason = titleSlug.Reason

	log.Debug().
		Str("oldTitle", product.Name).
		Str("newTitle", title).
		Str("newSlug", newSlug).
		Msg("optimized title and slug")

	// Write title and slug immediately so the permalink settles before the
	// full update.
	if !dryRun {
		if _, err := p.catalog.UpdateProduct(ctx, product.ID, woo.ProductUpdate{
			Name: title,
			Slug: newSlug,
		}); err != nil {
			return fail(err)
		}
		time.Sleep(p.settleDelay)
	}

	// Capture current meta values, backfilling from the title when the
	// catalog entry lacks them.
	oldMetaDescription := product.MetaValue(MetaKeyDescription)
	oldKeywords := product.MetaValue(MetaKeyFocusKeyword)
	if oldMetaDescription == "" || oldKeywords == "" {
		meta, err := p.gen.MetaFromTitle(ctx, title)
		if err != nil {
			return fail(err)
		}
		if oldMetaDescription == "" {
			oldMetaDescription = meta.MetaDescription
		}
		if oldKeywords == "" {
			oldKeywords = meta.Keywords
		}
	}
	result.OldMetaDescription = oldMetaDescription
	result.OldKeywords = oldKeywords

	suggested := p.keywords.Suggest(ctx, title, category, useTrends)

	bundle, err := p.gen.Generate(ctx, title, product.Description, category, suggested)
	if err != nil {
		return fail(err)
	}

	texts := galleryImageTexts(title, product.Images, variantInfo(product))

	result.NewDescription = bundle.Description
	result.MetaDescription = bundle.MetaDescription
	result.Keywords = bundle.Keywords
	result.NewImageAlts = make(map[string]string, len(texts))
	result.NewImageTitles = make(map[string]string, len(texts))
	for k, t := range texts {
		result.NewImageAlts[k] = t.Alt
		result.NewImageTitles[k] = t.Title
	}

	if dryRun {
		result.Status = ledger.StatusPreview
		return result
	}

	update := woo.ProductUpdate{
		Name:        title,
		Slug:        newSlug,
		Description: bundle.Description,
		MetaData: []woo.MetaData{
			{Key: MetaKeyDescription, Value: bundle.MetaDescription},
			{Key: MetaKeyFocusKeyword, Value: llm.PrimaryKeyword(bundle.Keywords)},
		},
		Images: applyImageTexts(product.Images, texts),
	}
	if _, err := p.catalog.UpdateProduct(ctx, product.ID, update); err != nil {
		return fail(err)
	}

	result.Status = ledger.StatusSuccess
	return result
}
