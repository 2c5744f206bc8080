package ledger

import (
	"time"

	"github.com/themindgauge/woo-content-optimizer/internal/woo"
)

// Result statuses. Error results carry the message appended to StatusError.
const (
	StatusSuccess = "success"
	StatusPreview = "preview"
	StatusError   = "error"
)

// ErrorStatus formats an error as a result status.
func ErrorStatus(err error) string {
	return StatusError + ": " + err.Error()
}

// Result is one per-product optimization outcome: old and new values for
// every generated field, a snapshot of the images at process time, and a
// status tag. Results are append-only; repeated runs over the same product
// form a history.
type Result struct {
	ProductID          int               `json:"product_id"`
	ProductName        string            `json:"product_name"`
	NewProductName     string            `json:"new_product_name,omitempty"`
	OldSlug            string            `json:"old_slug,omitempty"`
	NewSlug            string            `json:"new_slug,omitempty"`
	TitleChangeReason  string            `json:"title_change_reason,omitempty"`
	ProductLink        string            `json:"product_link,omitempty"`
	OldDescription     string            `json:"old_description,omitempty"`
	NewDescription     string            `json:"new_description,omitempty"`
	OldMetaDescription string            `json:"old_meta_description,omitempty"`
	MetaDescription    string            `json:"meta_description,omitempty"`
	OldKeywords        string            `json:"old_keywords,omitempty"`
	Keywords           string            `json:"keywords,omitempty"`
	OldImageAlts       map[string]string `json:"old_image_alts,omitempty"`
	NewImageAlts       map[string]string `json:"new_image_alts,omitempty"`
	OldImageTitles     map[string]string `json:"old_image_titles,omitempty"`
	NewImageTitles     map[string]string `json:"new_image_titles,omitempty"`
	Images             []woo.Image       `json:"images,omitempty"`
	Status             string            `json:"status"`
	Timestamp          time.Time         `json:"timestamp"`
}
