package llm

import (
	"fmt"
	"strings"

	"github.com/lithammer/dedent"
)

func prompt(text string, a ...any) string {
	return fmt.Sprintf(strings.TrimSpace(dedent.Dedent(text)), a...)
}

const keywordsSystem = "You are an SEO expert specializing in e-commerce keyword optimization."

const keywordsPrompt = `
	Product: %s
	Category: %s
	Suggested Keywords: %s

	Generate 5-7 highly relevant, SEO-optimized keywords for this product.
	Include both short and long-tail keywords.
	Format: comma-separated list`

const metaDescriptionSystem = "You are an e-commerce conversion specialist focusing on writing meta descriptions that maximize click-through rates and sales."

const metaDescriptionPrompt = `
	Product: %s
	Primary Keywords: %s

	As a conversion optimization expert, write a compelling meta description that:
	1. Starts with a strong hook or value proposition
	2. Includes specific benefits or features that drive sales
	3. Has a clear call-to-action that motivates clicks
	4. Incorporates the primary keyword naturally (150-160 chars)
	5. Uses power words that increase CTR

	Make it irresistible for both search engines and shoppers.`

const descriptionSystem = "You are an expert e-commerce conversion copywriter specializing in product descriptions that drive sales while maintaining SEO best practices."

const descriptionPrompt = `
	Product: %s
	Category: %s
	Target Keywords: %s

	As a conversion copywriting expert, create a high-converting product description that:
	1. Opens with an attention-grabbing hook that addresses customer pain points
	2. Uses the AIDA formula (Attention, Interest, Desire, Action)
	3. Highlights unique selling propositions and competitive advantages
	4. Uses bullet points for scannable key features and benefits
	5. Ends with a strong call-to-action
	6. Naturally weaves in the target keywords
	7. Uses persuasive HTML formatting (<strong> for benefits, <ul> for features)

	Focus on benefits over features. Length: 300-500 words of persuasive copy.`

const titleSlugSystem = "You are a senior e-commerce marketing specialist with expertise in conversion optimization and SEO. Focus on creating titles and URLs that maximize both rankings and sales."

const titleSlugPrompt = `
	Current Title: %s
	Category: %s

	As a senior e-commerce SEO specialist, create:
	1. A high-converting product title that:
	   - Highlights key benefits
	   - Includes the main product type (50-60 chars max)
	   - Uses power words that drive emotional response
	2. An SEO-optimized URL slug that:
	   - Is concise and readable
	   - Contains the primary keyword
	   - Uses hyphens between words, excludes stop words
	   - Is under 60 characters

	Return in this format:
	New Title: [optimized title]
	Slug: [seo-friendly-slug]
	Reason: [explain optimization strategy]`

const metaFromTitleSystem = "You are an SEO expert. Be concise."

const metaFromTitlePrompt = `
	Product: %s
	Generate:
	1. Meta Description: [150-160 chars]
	2. Keywords: [3-5 keywords]

	Return in this format:
	Meta Description: [description]
	Keywords: [comma-separated keywords]`
