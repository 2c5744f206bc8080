package woo

import "time"

// Product is a WooCommerce catalog item. Only the fields the optimizer reads
// or writes back are mapped.
type Product struct {
	ID           int         `json:"id"`
	Name         string      `json:"name"`
	Slug         string      `json:"slug"`
	Permalink    string      `json:"permalink"`
	Description  string      `json:"description"`
	DateModified string      `json:"date_modified_gmt"`
	Categories   []Category  `json:"categories"`
	Images       []Image     `json:"images"`
	MetaData     []MetaData  `json:"meta_data"`
	Variations   []Variation `json:"variations"`
}

type Category struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
	Slug string `json:"slug"`
}

// Image is a product image descriptor. Position is 1-based in API responses;
// the first image is the main product image.
type Image struct {
	ID       int    `json:"id"`
	Src      string `json:"src,omitempty"`
	Name     string `json:"name,omitempty"`
	Alt      string `json:"alt"`
	Title    string `json:"title,omitempty"`
	Position int    `json:"position,omitempty"`
}

type MetaData struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

// Variation carries the attribute options (color, size) of one product
// variation.
type Variation struct {
	ID         int                  `json:"id"`
	Attributes []VariationAttribute `json:"attributes"`
}

type VariationAttribute struct {
	Name   string `json:"name"`
	Option string `json:"option"`
}

// ProductUpdate is a sparse patch for PUT /products/{id}. Zero-valued fields
// are omitted from the request body.
type ProductUpdate struct {
	Name        string     `json:"name,omitempty"`
	Slug        string     `json:"slug,omitempty"`
	Description string     `json:"description,omitempty"`
	MetaData    []MetaData `json:"meta_data,omitempty"`
	Images      []Image    `json:"images,omitempty"`
}

// CategoryName returns the first category's name, or empty when the product
// is uncategorized.
func (p Product) CategoryName() string {
	if len(p.Categories) == 0 {
		return ""
	}
	return p.Categories[0].Name
}

// MetaValue returns the value of the given meta_data key, or empty.
func (p Product) MetaValue(key string) string {
	for _, m := range p.MetaData {
		if m.Key == key {
			return m.Value
		}
	}
	return ""
}

// ModifiedAt parses the product's last-modified timestamp. Returns the zero
// time when absent or unparsable.
func (p Product) ModifiedAt() time.Time {
	if p.DateModified == "" {
		return time.Time{}
	}
	for _, layout := range []string{"2006-01-02T15:04:05", time.RFC3339} {
		if t, err := time.Parse(layout, p.DateModified); err == nil {
			return t
		}
	}
	return time.Time{}
}

// Link returns the product permalink, falling back to a URL composed from
// the store base URL and slug when the API omits it.
func (p Product) Link(baseURL string) string {
	if p.Permalink != "" {
		return p.Permalink
	}
	return baseURL + "/product/" + p.Slug
}
