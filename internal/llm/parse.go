package llm

import "strings"

// TitleSlug is the result of a title/slug rewrite.
type TitleSlug struct {
	Title  string
	Slug   string
	Reason string
}

// MetaFields holds meta values generated from a bare title.
type MetaFields struct {
	MetaDescription string
	Keywords        string
}

// parseLabeledLines scans free-form completion output for lines starting with
// one of the given labels ("Label: value"). Missing labels yield empty
// strings; parsing never fails.
func parseLabeledLines(text string, labels ...string) map[string]string {
	out := make(map[string]string, len(labels))
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimLeft(strings.TrimSpace(line), "-*0123456789. ")
		for _, label := range labels {
			if rest, ok := strings.CutPrefix(line, label+":"); ok && out[label] == "" {
				out[label] = strings.TrimSpace(rest)
			}
		}
	}
	return out
}

func parseTitleSlug(text string) TitleSlug {
	fields := parseLabeledLines(text, "New Title", "Slug", "Reason")
	return TitleSlug{
		Title:  fields["New Title"],
		Slug:   fields["Slug"],
		Reason: fields["Reason"],
	}
}

func parseMetaFields(text string) MetaFields {
	fields := parseLabeledLines(text, "Meta Description", "Keywords")
	return MetaFields{
		MetaDescription: fields["Meta Description"],
		Keywords:        fields["Keywords"],
	}
}

// PrimaryKeyword returns the first phrase of a comma-separated keyword
// string.
func PrimaryKeyword(keywords string) string {
	first, _, _ := strings.Cut(keywords, ",")
	return strings.TrimSpace(first)
}
