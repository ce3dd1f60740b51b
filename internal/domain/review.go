package domain

type VerificationLabel string

const (
	TripVerified VerificationLabel = "Trip Verified"
	NotVerified  VerificationLabel = "Not Verified"
)

type SentimentLabel string

const (
	Negative SentimentLabel = "Negative"
	Neutral  SentimentLabel = "Neutral"
	Positive SentimentLabel = "Positive"
)

// Review is one scored customer review. Records are built once at load
// time and never mutated afterwards.
type Review struct {
	RawText      string            `json:"raw_text"`
	IsVerified   bool              `json:"is_verified"`
	Verification VerificationLabel `json:"verification_label"`
	CleanText    string            `json:"clean_text"`
	WordCount    int               `json:"word_count"`
	Compound     float64           `json:"compound_score"`
	Sentiment    SentimentLabel    `json:"sentiment_label"`
}

// VerificationFromFlag maps the verified flag to its display label.
func VerificationFromFlag(verified bool) VerificationLabel {
	if verified {
		return TripVerified
	}
	return NotVerified
}

// BucketCompound maps a compound score in [-1,1] to a sentiment label.
// Buckets follow half-open intervals (-1.01,-0.05], (-0.05,0.05],
// (0.05,1.01]: every score lands in exactly one bucket.
func BucketCompound(score float64) SentimentLabel {
	switch {
	case score <= -0.05:
		return Negative
	case score <= 0.05:
		return Neutral
	default:
		return Positive
	}
}

// ParseVerificationLabel validates a user-supplied verification label.
func ParseVerificationLabel(s string) (VerificationLabel, bool) {
	switch VerificationLabel(s) {
	case TripVerified, NotVerified:
		return VerificationLabel(s), true
	}
	return "", false
}

// ParseSentimentLabel validates a user-supplied sentiment label.
func ParseSentimentLabel(s string) (SentimentLabel, bool) {
	switch SentimentLabel(s) {
	case Negative, Neutral, Positive:
		return SentimentLabel(s), true
	}
	return "", false
}
