package server

import (
	"context"
	"encoding/json"
	"io"
	"net/http"

	"github.com/dmorgan81/imagegen/internal/controller"
	"github.com/dmorgan81/imagegen/internal/log"
	"github.com/dmorgan81/imagegen/internal/page"
)

const (
	cookieName   = "imagegen_session"
	maxBodyBytes = 64 << 10
)

// handleGenerateImage always answers 200; the handler folds every failure
// into its response body.
func (s *Server) handleGenerateImage(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(io.LimitReader(r.Body, maxBodyBytes))
	if err != nil {
		log.FromContextOrDiscard(r.Context()).Warn("reading request body", "error", err)
		body = nil
	}
	out := s.handler.HandleBody(r.Context(), body)
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	html, err := s.templator.Template(ctx, page.NewParams(s.state(r), s.randomizer.Suggest(ctx)))
	if err != nil {
		log.FromContextOrDiscard(ctx).Error("rendering page", "error", err)
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = w.Write(html)
}

// handleGenerate blocks until the generation resolves, then redirects back to
// the page. Generation outlives a disconnected browser.
func (s *Server) handleGenerate(w http.ResponseWriter, r *http.Request) {
	c := s.session(w, r)
	if err := r.ParseForm(); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if !c.Loading() {
		ctx := context.WithoutCancel(r.Context())
		_ = c.Dispatch(ctx, controller.PromptChanged{Text: r.PostForm.Get("prompt")})
		if err := c.Dispatch(ctx, controller.GenerateClicked{}); err != nil {
			log.FromContextOrDiscard(ctx).Info("generation rejected", "error", err)
		}
	}
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (s *Server) handleSelect(w http.ResponseWriter, r *http.Request) {
	c := s.session(w, r)
	if err := r.ParseForm(); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	_ = c.Dispatch(r.Context(), controller.ThumbnailSelected{URL: r.PostForm.Get("url")})
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (s *Server) handleFeed(w http.ResponseWriter, r *http.Request) {
	rss, err := s.feed.Generate(r.Context(), s.state(r))
	if err != nil {
		log.FromContextOrDiscard(r.Context()).Error("generating feed", "error", err)
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/rss+xml; charset=utf-8")
	_, _ = w.Write(rss)
}

// state reads the caller's session without creating one. Only the page
// actions start a session.
func (s *Server) state(r *http.Request) controller.State {
	cookie, err := r.Cookie(cookieName)
	if err != nil {
		return controller.State{}
	}
	if c, ok := s.sessions.Get(cookie.Value); ok {
		return c.State()
	}
	return controller.State{}
}

func (s *Server) session(w http.ResponseWriter, r *http.Request) *controller.Controller {
	var id string
	if cookie, err := r.Cookie(cookieName); err == nil {
		id = cookie.Value
	}
	newID, c := s.sessions.GetOrCreate(r.Context(), id)
	if newID != id {
		http.SetCookie(w, &http.Cookie{
			Name:     cookieName,
			Value:    newID,
			Path:     "/",
			HttpOnly: true,
			SameSite: http.SameSiteLaxMode,
		})
	}
	return c
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}
