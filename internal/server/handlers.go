package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/antimoji/emojify/internal/core/catalog"
	"github.com/antimoji/emojify/internal/core/emojify"
	"github.com/antimoji/emojify/internal/core/scanner"
	ctxutil "github.com/antimoji/emojify/internal/observability/context"
	"github.com/antimoji/emojify/internal/types"
)

type emojifyRequest struct {
	Content      string              `json:"content"`
	CustomEmojis []types.CustomEmoji `json:"custom_emojis"`
	// Theme and Autoplay override the profile when present
	Theme    string `json:"theme,omitempty"`
	Autoplay *bool  `json:"autoplay,omitempty"`
}

type emojifyResponse struct {
	Content      string      `json:"content"`
	Replacements types.Stats `json:"replacements"`
}

type pickerRequest struct {
	CustomEmojis []types.CustomEmoji `json:"custom_emojis"`
	Autoplay     *bool               `json:"autoplay,omitempty"`
}

type pickerResponse struct {
	Emojis     []types.PickerEmoji `json:"emojis"`
	Categories []string            `json:"categories"`
}

type errorResponse struct {
	Error     string `json:"error"`
	RequestID string `json:"request_id,omitempty"`
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = w.Write([]byte("ok"))
}

func (s *Server) handleEmojify(w http.ResponseWriter, r *http.Request) {
	var req emojifyRequest
	if status, err := s.decode(w, r, &req); err != nil {
		s.writeError(w, r, status, err.Error())
		return
	}
	if err := catalog.ValidateCustomEmojis(req.CustomEmojis); err != nil {
		s.writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	opts := scanner.Options{
		AssetHost: s.config.AssetHost,
		Theme:     s.config.Theme,
		Autoplay:  s.config.Autoplay,
	}
	if req.Theme != "" {
		theme, err := types.ParseTheme(req.Theme)
		if err != nil {
			s.writeError(w, r, http.StatusBadRequest, err.Error())
			return
		}
		opts.Theme = theme
	}
	if req.Autoplay != nil {
		opts.Autoplay = *req.Autoplay
	}

	engine := emojify.New(scanner.New(s.catalog, s.policy, opts), emojify.WithLogger(s.logger))

	start := time.Now()
	content, stats := engine.EmojifyWithStats(req.Content, catalog.NewCustomEmojiMap(req.CustomEmojis))
	s.metrics.RenderDuration.Observe(time.Since(start).Seconds())
	s.metrics.observeStats(stats)

	s.logger.Debug(r.Context(), "emojify request served",
		"bytes", len(req.Content),
		"unicode", stats.Unicode,
		"custom", stats.Custom,
	)
	s.writeJSON(w, r, http.StatusOK, emojifyResponse{Content: content, Replacements: stats})
}

func (s *Server) handlePicker(w http.ResponseWriter, r *http.Request) {
	var req pickerRequest
	if status, err := s.decode(w, r, &req); err != nil {
		s.writeError(w, r, status, err.Error())
		return
	}
	if err := catalog.ValidateCustomEmojis(req.CustomEmojis); err != nil {
		s.writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	autoplay := s.config.Autoplay
	if req.Autoplay != nil {
		autoplay = *req.Autoplay
	}

	s.writeJSON(w, r, http.StatusOK, pickerResponse{
		Emojis:     catalog.BuildPickerEmojis(req.CustomEmojis, autoplay),
		Categories: catalog.CategoriesFromEmojis(req.CustomEmojis),
	})
}

// decode reads a JSON body of at most MaxBodyBytes into v and returns the
// status code to answer with on failure.
func (s *Server) decode(w http.ResponseWriter, r *http.Request, v any) (int, error) {
	body := r.Body
	if s.config.MaxBodyBytes > 0 {
		body = http.MaxBytesReader(w, r.Body, s.config.MaxBodyBytes)
	}

	if err := json.NewDecoder(body).Decode(v); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return http.StatusRequestEntityTooLarge, fmt.Errorf("request body exceeds %d bytes", tooLarge.Limit)
		}
		return http.StatusBadRequest, fmt.Errorf("invalid JSON body: %w", err)
	}
	return http.StatusOK, nil
}

func (s *Server) writeJSON(w http.ResponseWriter, r *http.Request, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Warn(r.Context(), "failed to write response", "error", err)
	}
}

func (s *Server) writeError(w http.ResponseWriter, r *http.Request, status int, msg string) {
	s.logger.Info(r.Context(), "request rejected",
		append(ctxutil.ExtractContextFields(r.Context()), "status", status, "error", msg)...)
	s.writeJSON(w, r, status, errorResponse{
		Error:     msg,
		RequestID: ctxutil.GetRequestID(r.Context()),
	})
}
