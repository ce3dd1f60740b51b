package httpserver

import (
	"crypto/sha1"
	"encoding/hex"
	"encoding/json"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/rs/zerolog/log"

	"review_insights/internal/app"
	"review_insights/internal/domain"
)

type Handlers struct {
	Q *app.QueryService
	D *app.Dataset
}

type problem struct {
	Type   string `json:"type"`
	Title  string `json:"title"`
	Status int    `json:"status"`
	Detail string `json:"detail,omitempty"`
}

type reviewsResponse struct {
	Items   []domain.Review `json:"items"`
	Count   int             `json:"count"`
	Warning string          `json:"warning,omitempty"`
}

func (s *Server) MountHandlers(h *Handlers) {
	s.mux.Get("/healthz", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(200); _, _ = w.Write([]byte("ok")) })
	s.mux.Get("/v1/reviews", h.listReviews)
	s.mux.Get("/v1/summary", h.summary)
	s.mux.Post("/v1/refresh", h.refresh)
}

func writeProblem(w http.ResponseWriter, status int, title, detail string) {
	w.Header().Set("Content-Type", "application/problem+json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(problem{Type: "about:blank", Title: title, Status: status, Detail: detail}); err != nil {
		log.Error().Err(err).Msg("write JSON problem response failed")
	}
}

// calcETagAndBody marshals once and hashes once, returning both ETag and body.
func calcETagAndBody(v any) (string, []byte) {
	body, err := json.Marshal(v)
	if err != nil {
		log.Error().Err(err).Msg("failed to marshal object for ETag/body")
		return "", nil
	}
	sum := sha1.Sum(body)
	etag := `W/"` + hex.EncodeToString(sum[:]) + `"`
	return etag, body
}

func writeJSON(w http.ResponseWriter, r *http.Request, v any) {
	etag, body := calcETagAndBody(v)
	if inm := r.Header.Get("If-None-Match"); inm != "" && inm == etag {
		w.Header().Set("ETag", etag)
		w.WriteHeader(http.StatusNotModified)
		return
	}
	w.Header().Set("ETag", etag)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(body); err != nil {
		log.Error().Err(err).Msg("failed to write response body")
	}
}

// multiValues collects a repeatable query param, splitting comma lists.
func multiValues(q url.Values, key string) []string {
	var out []string
	for _, raw := range q[key] {
		for _, part := range strings.Split(raw, ",") {
			if p := strings.TrimSpace(part); p != "" {
				out = append(out, p)
			}
		}
	}
	return out
}

// parseCriteria builds filter criteria from query params. Absent params
// fall back to the dashboard defaults (all labels, default word range);
// present-but-invalid values are a 400.
func (h *Handlers) parseCriteria(r *http.Request) (domain.Criteria, string) {
	q := r.URL.Query()
	c := h.Q.DefaultCriteria()

	if _, present := q["verification"]; present {
		c.Verification = nil
		for _, s := range multiValues(q, "verification") {
			v, ok := domain.ParseVerificationLabel(s)
			if !ok {
				return c, "unknown verification label: " + s
			}
			c.Verification = append(c.Verification, v)
		}
	}
	if _, present := q["sentiment"]; present {
		c.Sentiments = nil
		for _, s := range multiValues(q, "sentiment") {
			l, ok := domain.ParseSentimentLabel(s)
			if !ok {
				return c, "unknown sentiment label: " + s
			}
			c.Sentiments = append(c.Sentiments, l)
		}
	}
	if s := q.Get("min_words"); s != "" {
		n, err := strconv.Atoi(s)
		if err != nil || n < 0 {
			return c, "min_words must be a non-negative integer"
		}
		c.MinWords = n
	}
	if s := q.Get("max_words"); s != "" {
		n, err := strconv.Atoi(s)
		if err != nil || n < 0 {
			return c, "max_words must be a non-negative integer"
		}
		c.MaxWords = n
	}
	if c.MinWords > c.MaxWords {
		return c, "min_words must not exceed max_words"
	}
	return c, ""
}

func (h *Handlers) listReviews(w http.ResponseWriter, r *http.Request) {
	c, detail := h.parseCriteria(r)
	if detail != "" {
		writeProblem(w, http.StatusBadRequest, "Invalid filter", detail)
		return
	}

	items := h.Q.Filter(c)
	resp := reviewsResponse{Items: items, Count: len(items)}
	if len(items) == 0 {
		resp.Items = []domain.Review{}
		resp.Warning = domain.WarnNoMatches
	}
	writeJSON(w, r, resp)
}

func (h *Handlers) summary(w http.ResponseWriter, r *http.Request) {
	c, detail := h.parseCriteria(r)
	if detail != "" {
		writeProblem(w, http.StatusBadRequest, "Invalid filter", detail)
		return
	}

	sum, err := h.Q.Summary(r.Context(), c)
	if err != nil {
		writeProblem(w, http.StatusInternalServerError, "Summary failed", err.Error())
		return
	}
	writeJSON(w, r, sum)
}

func (h *Handlers) refresh(w http.ResponseWriter, r *http.Request) {
	rebuilt, err := h.D.Refresh(r.Context())
	if err != nil {
		writeProblem(w, http.StatusInternalServerError, "Refresh failed", err.Error())
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(map[string]bool{"rebuilt": rebuilt}); err != nil {
		log.Error().Err(err).Msg("failed to write refresh response")
	}
}
