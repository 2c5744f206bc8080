package llm

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog/log"
)

// Bundle is the structured output of one full content generation pass.
type Bundle struct {
	// Keywords is the authoritative comma-separated keyword string. The
	// first phrase is the primary keyword.
	Keywords        string
	MetaDescription string
	Description     string
}

// Generator produces optimized content fields by issuing independent,
// purpose-specific completion calls and parsing the semi-structured
// responses.
type Generator struct {
	llm Completer
}

// NewGenerator creates a content generator on top of the given completion
// backend.
func NewGenerator(llm Completer) *Generator {
	return &Generator{llm: llm}
}

// Keywords generates the final keyword string for a product. The suggested
// keywords are advisory context only; the completion output is
// authoritative.
func (g *Generator) Keywords(ctx context.Context, title, category string, suggested []string) (string, error) {
	if len(suggested) > 10 {
		suggested = suggested[:10]
	}
	text, err := g.llm.Complete(ctx, keywordsSystem,
		prompt(keywordsPrompt, title, orNA(category), strings.Join(suggested, ", ")),
		0.7, 200)
	if err != nil {
		return "", fmt.Errorf("keyword generation failed: %w", err)
	}
	return strings.TrimSpace(text), nil
}

// MetaDescription generates a conversion-focused meta description.
func (g *Generator) MetaDescription(ctx context.Context, title, keywords string) (string, error) {
	text, err := g.llm.Complete(ctx, metaDescriptionSystem,
		prompt(metaDescriptionPrompt, title, keywords),
		0.7, 200)
	if err != nil {
		return "", fmt.Errorf("meta description generation failed: %w", err)
	}
	return strings.TrimSpace(text), nil
}

// Description generates a sales-optimized HTML product description.
func (g *Generator) Description(ctx context.Context, title, category, keywords string) (string, error) {
	text, err := g.llm.Complete(ctx, descriptionSystem,
		prompt(descriptionPrompt, title, orNA(category), keywords),
		0.7, 1000)
	if err != nil {
		return "", fmt.Errorf("description generation failed: %w", err)
	}
	return strings.TrimSpace(text), nil
}

// Generate produces the full content bundle for a product: keywords first,
// then meta description and description built on top of them. Each call is
// independent; a failure in any of them propagates to the caller.
func (g *Generator) Generate(ctx context.Context, title, currentDescription, category string, suggested []string) (Bundle, error) {
	keywords, err := g.Keywords(ctx, title, category, suggested)
	if err != nil {
		return Bundle{}, err
	}
	log.Debug().Str("title", title).Msg("generated keywords")

	metaDescription, err := g.MetaDescription(ctx, title, keywords)
	if err != nil {
		return Bundle{}, err
	}
	log.Debug().Str("title", title).Msg("generated meta description")

	description, err := g.Description(ctx, title, category, keywords)
	if err != nil {
		return Bundle{}, err
	}
	log.Debug().Str("title", title).Msg("generated product description")

	return Bundle{
		Keywords:        keywords,
		MetaDescription: metaDescription,
		Description:     description,
	}, nil
}

// TitleAndSlug generates a rewritten title and URL slug with the reason for
// the change. Unparsable sections of the response yield empty fields.
func (g *Generator) TitleAndSlug(ctx context.Context, title, category string) (TitleSlug, error) {
	text, err := g.llm.Complete(ctx, titleSlugSystem,
		prompt(titleSlugPrompt, title, orNA(category)),
		0.7, 200)
	if err != nil {
		return TitleSlug{}, fmt.Errorf("title/slug generation failed: %w", err)
	}
	return parseTitleSlug(text), nil
}

// MetaFromTitle generates a meta description and keywords from a bare title.
// Used to backfill products whose catalog entry lacks meta fields.
func (g *Generator) MetaFromTitle(ctx context.Context, title string) (MetaFields, error) {
	text, err := g.llm.Complete(ctx, metaFromTitleSystem,
		prompt(metaFromTitlePrompt, title),
		0.7, 150)
	if err != nil {
		return MetaFields{}, fmt.Errorf("meta backfill generation failed: %w", err)
	}
	return parseMetaFields(text), nil
}

func orNA(s string) string {
	if s == "" {
		return "N/A"
	}
	return s
}
