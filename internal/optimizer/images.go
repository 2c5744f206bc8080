package optimizer

import (
	"strconv"
	"strings"

	"github.com/themindgauge/woo-content-optimizer/internal/woo"
)

// ImageText is the generated alt/title pair for one image ordinal.
type ImageText struct {
	Alt   string
	Title string
}

// Variant holds the color/size options of one product variation.
type Variant struct {
	Color string
	Size  string
}

// variantInfo extracts color/size options from a product's variations,
// keyed by 1-based variation index.
func variantInfo(p woo.Product) map[int]Variant {
	variants := make(map[int]Variant, len(p.Variations))
	for i, variation := range p.Variations {
		var v Variant
		for _, attr := range variation.Attributes {
			name := strings.ToLower(attr.Name)
			switch {
			case strings.Contains(name, "color"), strings.Contains(name, "colour"):
				v.Color = attr.Option
			case strings.Contains(name, "size"):
				v.Size = attr.Option
			}
		}
		variants[i+1] = v
	}
	return variants
}

func (v Variant) text() string {
	var parts []string
	if v.Color != "" {
		parts = append(parts, v.Color)
	}
	if v.Size != "" {
		parts = append(parts, v.Size)
	}
	return strings.Join(parts, " ")
}

// galleryImageTexts builds the alt/title mapping for a product's images,
// keyed by image ordinal as a string. Ordinal 1 is the main product image
// and anchors on the bare title. Gallery ordinals resolve a variant at
// ordinal minus the main-image count (one): gallery image N describes
// variant N.
func galleryImageTexts(title string, images []woo.Image, variants map[int]Variant) map[string]ImageText {
	texts := make(map[string]ImageText, len(images))
	for i := range images {
		ordinal := i + 1
		key := strconv.Itoa(ordinal)

		if ordinal == 1 {
			texts[key] = ImageText{
				Alt:   title,
				Title: title + " - Main Product Image",
			}
			continue
		}

		if variant, ok := variants[ordinal-1]; ok {
			if vt := variant.text(); vt != "" {
				texts[key] = ImageText{
					Alt:   title + " " + vt,
					Title: title + " - " + vt,
				}
				continue
			}
		}

		texts[key] = ImageText{
			Alt:   title,
			Title: title + " - Gallery Image " + key,
		}
	}
	return texts
}

// applyImageTexts returns copies of the product images with generated
// alt/title text applied, ready for the update payload.
func applyImageTexts(images []woo.Image, texts map[string]ImageText) []woo.Image {
	updated := make([]woo.Image, len(images))
	for i, img := range images {
		if t, ok := texts[strconv.Itoa(i+1)]; ok {
			img.Alt = t.Alt
			img.Title = t.Title
			img.Name = t.Title
		}
		updated[i] = img
	}
	return updated
}

// imageTextSnapshots captures the current alt and title text of images,
// keyed by ordinal.
func imageTextSnapshots(images []woo.Image) (alts, titles map[string]string) {
	alts = make(map[string]string, len(images))
	titles = make(map[string]string, len(images))
	for i, img := range images {
		key := strconv.Itoa(i + 1)
		alts[key] = img.Alt
		titles[key] = img.Title
	}
	return alts, titles
}
