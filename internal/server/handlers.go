package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/alnah/go-seopost"
	"github.com/alnah/go-seopost/internal/compose"
	"github.com/alnah/go-seopost/internal/imagemap"
	"github.com/alnah/go-seopost/internal/rules"
)

type parseRequest struct {
	Text string `json:"text"`
}

type generateRequest struct {
	Text    string          `json:"text"`
	Format  string          `json:"format"`
	Options seopost.Options `json:"options"`
}

type generateResponse struct {
	HTML             string           `json:"html"`
	Metadata         seopost.Metadata `json:"metadata"`
	Slug             string           `json:"slug"`
	ImageKeywords    []string         `json:"imageKeywords"`
	UnresolvedImages []string         `json:"unresolvedImages"`
}

type composeResponse struct {
	Text     string           `json:"text"`
	Metadata seopost.Metadata `json:"metadata"`
}

// POST /api/parse
func (s *Server) handleParse(w http.ResponseWriter, r *http.Request) {
	var req parseRequest
	if !s.decode(w, r, &req) {
		return
	}
	if strings.TrimSpace(req.Text) == "" {
		writeError(w, http.StatusBadRequest, "text is required")
		return
	}

	doc := seopost.ParseDocument(req.Text)
	s.metrics.ObserveParse(doc.Metadata.IsValid, len(doc.Metadata.Warnings))
	writeJSON(w, s.statusFor(r, doc.Metadata), doc)
}

// POST /api/generate
func (s *Server) handleGenerate(w http.ResponseWriter, r *http.Request) {
	var req generateRequest
	if !s.decode(w, r, &req) {
		return
	}
	if req.Format == "" {
		req.Format = seopost.FormatFragment
	}
	if req.Format == seopost.FormatPDF || !seopost.IsFormat(req.Format) {
		writeError(w, http.StatusBadRequest, "format must be fragment, styled, or document")
		return
	}

	opts := mergeOptions(s.defaults, req.Options)
	start := time.Now()
	res, err := s.conv.Convert(r.Context(), seopost.Input{Text: req.Text, Format: req.Format, Options: opts})
	if err != nil {
		if errors.Is(err, seopost.ErrEmptyInput) || errors.Is(err, seopost.ErrInvalidFormat) {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		s.logger.Error("generate failed", zap.String("request_id", RequestID(r.Context())), zap.Error(err))
		writeError(w, http.StatusInternalServerError, "generation failed")
		return
	}
	s.metrics.ObserveRender(req.Format, time.Since(start))
	s.metrics.ObserveParse(res.Document.Metadata.IsValid, len(res.Document.Metadata.Warnings))

	unresolved := []string{}
	if opts.ImagesEnabled() {
		unresolved = append(unresolved, imagemap.Unresolved(res.ImageKeywords, opts.ImageURLs)...)
	}
	keywords := res.ImageKeywords
	if keywords == nil {
		keywords = []string{}
	}

	writeJSON(w, s.statusFor(r, res.Document.Metadata), generateResponse{
		HTML:             res.HTML,
		Metadata:         res.Document.Metadata,
		Slug:             res.Slug,
		ImageKeywords:    keywords,
		UnresolvedImages: unresolved,
	})
}

// POST /api/compose
func (s *Server) handleCompose(w http.ResponseWriter, r *http.Request) {
	var form compose.Form
	if !s.decode(w, r, &form) {
		return
	}

	text, err := compose.Compose(&form)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	doc := seopost.ParseDocument(text)
	s.metrics.ObserveParse(doc.Metadata.IsValid, len(doc.Metadata.Warnings))
	writeJSON(w, s.statusFor(r, doc.Metadata), composeResponse{Text: text, Metadata: doc.Metadata})
}

// GET /api/sections
func (s *Server) handleSections(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"sections": rules.All(),
		"required": rules.Required(),
	})
}

// GET /health
func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// decode reads a size-limited JSON body into v, answering 413 or 400 on
// failure.
func (s *Server) decode(w http.ResponseWriter, r *http.Request, v any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, MaxBodySize)
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeError(w, http.StatusRequestEntityTooLarge, "request body too large")
			return false
		}
		writeError(w, http.StatusBadRequest, "invalid JSON: "+err.Error())
		return false
	}
	return true
}

// statusFor answers 422 for invalid documents in strict mode. The query
// parameter strict overrides the server default.
func (s *Server) statusFor(r *http.Request, md seopost.Metadata) int {
	strict := s.strict
	if q := r.URL.Query().Get("strict"); q != "" {
		if b, err := strconv.ParseBool(q); err == nil {
			strict = b
		}
	}
	if strict && !md.IsValid {
		return http.StatusUnprocessableEntity
	}
	return http.StatusOK
}

// mergeOptions fills unset request fields from the server defaults. Request
// image URLs win over default ones for the same keyword.
func mergeOptions(defaults, req seopost.Options) seopost.Options {
	out := req
	if out.IncludeSchema == nil {
		out.IncludeSchema = defaults.IncludeSchema
	}
	if out.IncludeImages == nil {
		out.IncludeImages = defaults.IncludeImages
	}
	if !out.IncludeFAQSchema {
		out.IncludeFAQSchema = defaults.IncludeFAQSchema
	}
	if out.BlogTitle == "" {
		out.BlogTitle = defaults.BlogTitle
	}
	if out.BlogDate == "" {
		out.BlogDate = defaults.BlogDate
	}
	if out.AuthorName == "" {
		out.AuthorName = defaults.AuthorName
	}
	if out.FeaturedImageURL == "" {
		out.FeaturedImageURL = defaults.FeaturedImageURL
	}
	if len(defaults.ImageURLs) > 0 {
		out.ImageURLs = imagemap.Merge(defaults.ImageURLs, req.ImageURLs)
	}
	return out
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
