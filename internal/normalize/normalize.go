// Package normalize turns raw review strings into cleaned, classified
// records ready for scoring. The transform is purely functional per row:
// identical input always yields identical output.
package normalize

import (
	"strings"

	"review_insights/internal/domain"
)

const (
	verifiedMarker   = "✅ Trip Verified |"
	unverifiedMarker = "Not Verified |"
)

// Review derives the text fields of a record from one raw column value.
// Verification is decided on raw_text before marker stripping; word count
// on clean_text after.
func Review(raw string) domain.Review {
	rawText := strings.TrimSpace(raw)
	verified := strings.Contains(strings.ToLower(rawText), "trip verified")

	clean := strings.ReplaceAll(rawText, verifiedMarker, "")
	clean = strings.ReplaceAll(clean, unverifiedMarker, "")
	clean = strings.TrimSpace(clean)

	return domain.Review{
		RawText:      rawText,
		IsVerified:   verified,
		Verification: domain.VerificationFromFlag(verified),
		CleanText:    clean,
		WordCount:    len(strings.Fields(clean)),
	}
}

// Batch normalizes a whole column. A malformed row never aborts the
// batch; the loader already coerces every cell to a string.
func Batch(raws []string) []domain.Review {
	recs := make([]domain.Review, len(raws))
	for i, raw := range raws {
		recs[i] = Review(raw)
	}
	return recs
}
