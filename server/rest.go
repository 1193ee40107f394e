package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/umputun/infodash/pkg/config"
	"github.com/umputun/infodash/pkg/domain"
)

// article is a feed item with its read and saved flags
type article struct {
	domain.FeedItem
	domain.ArticleState
	Favicon string `json:"favicon,omitempty"` // icon path on this server
}

// linkRequest is the body of article state requests
type linkRequest struct {
	Link string `json:"link"`
}

// statusHandler returns server status with the last refresh summary
func (s *Server) statusHandler(w http.ResponseWriter, r *http.Request) {
	snap := s.dashboard.Latest()
	status := map[string]any{
		"status":          "ok",
		"version":         s.version,
		"time":            time.Now().UTC(),
		"cycle_id":        snap.CycleID,
		"feeds":           len(snap.Feeds),
		"stocks":          len(snap.Stocks),
		"weather":         len(snap.Weather),
		"feeds_updated":   snap.FeedsUpdated,
		"stocks_updated":  snap.StocksUpdated,
		"weather_updated": snap.WeatherUpdated,
	}
	renderJSON(w, r, http.StatusOK, status)
}

// feedsHandler returns the latest feed items, optionally limited to a category.
// The saved category lists saved articles from all feeds.
func (s *Server) feedsHandler(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	category := strings.TrimSpace(r.URL.Query().Get("category"))

	var items []domain.FeedItem
	if category == config.SavedCategory {
		saved, err := s.state.SavedLinks(ctx)
		if err != nil {
			log.Printf("[ERROR] failed to get saved links: %v", err)
			renderError(w, r, err, http.StatusInternalServerError)
			return
		}
		savedSet := make(map[string]bool, len(saved))
		for _, l := range saved {
			savedSet[l] = true
		}
		items = []domain.FeedItem{}
		for _, it := range s.dashboard.Latest().Feeds {
			if savedSet[it.Link] {
				items = append(items, it)
			}
		}
	} else {
		items = s.dashboard.FeedsByCategory(category)
	}

	links := make([]string, 0, len(items))
	for _, it := range items {
		links = append(links, it.Link)
	}
	states, err := s.state.States(ctx, links)
	if err != nil {
		log.Printf("[ERROR] failed to get article states: %v", err)
		renderError(w, r, err, http.StatusInternalServerError)
		return
	}

	res := make([]article, 0, len(items))
	hosts := []string{}
	seen := map[string]bool{}
	for _, it := range items {
		a := article{FeedItem: it, ArticleState: states[it.Link]}
		if it.Source != "" {
			a.Favicon = "/api/v1/favicon?host=" + url.QueryEscape(it.Source)
			if !seen[it.Source] {
				seen[it.Source] = true
				hosts = append(hosts, it.Source)
			}
		}
		res = append(res, a)
	}
	s.favicons.Prefetch(context.WithoutCancel(ctx), hosts)
	renderJSON(w, r, http.StatusOK, map[string]any{
		"category": category,
		"updated":  s.dashboard.Latest().FeedsUpdated,
		"items":    res,
	})
}

func (s *Server) stocksHandler(w http.ResponseWriter, r *http.Request) {
	snap := s.dashboard.Latest()
	renderJSON(w, r, http.StatusOK, map[string]any{"updated": snap.StocksUpdated, "stocks": snap.Stocks})
}

func (s *Server) weatherHandler(w http.ResponseWriter, r *http.Request) {
	snap := s.dashboard.Latest()
	renderJSON(w, r, http.StatusOK, map[string]any{"updated": snap.WeatherUpdated, "weather": snap.Weather})
}

// refreshHandler starts a full refresh and waits for it up to half of the write timeout.
// A slower refresh keeps running and the response is 202 with its cycle id.
func (s *Server) refreshHandler(w http.ResponseWriter, r *http.Request) {
	cycleID, done := s.dashboard.StartRefresh(context.WithoutCancel(r.Context()))

	var expired <-chan time.Time
	if _, timeout := s.config.GetServerConfig(); timeout > 0 {
		timer := time.NewTimer(timeout / 2)
		defer timer.Stop()
		expired = timer.C
	}

	select {
	case snap := <-done:
		renderJSON(w, r, http.StatusOK, map[string]any{
			"cycle_id": snap.CycleID,
			"status":   "completed",
			"feeds":    len(snap.Feeds),
			"stocks":   len(snap.Stocks),
			"weather":  len(snap.Weather),
		})
	case <-expired:
		log.Printf("[INFO] refresh %s still running, responding early", cycleID)
		renderJSON(w, r, http.StatusAccepted, map[string]any{"cycle_id": cycleID, "status": "running"})
	case <-r.Context().Done():
		log.Printf("[DEBUG] refresh %s requester gone", cycleID)
	}
}

// discoverHandler lists feeds advertised by the page in url query parameter
func (s *Server) discoverHandler(w http.ResponseWriter, r *http.Request) {
	u := strings.TrimSpace(r.URL.Query().Get("url"))
	if u == "" {
		renderError(w, r, errors.New("url parameter is required"), http.StatusBadRequest)
		return
	}
	feeds := s.discoverer.DiscoverFeeds(r.Context(), u)
	renderJSON(w, r, http.StatusOK, map[string]any{"url": u, "feeds": feeds})
}

// faviconHandler serves the cached icon of the site in host query parameter
func (s *Server) faviconHandler(w http.ResponseWriter, r *http.Request) {
	host := strings.TrimSpace(r.URL.Query().Get("host"))
	if host == "" {
		renderError(w, r, errors.New("host parameter is required"), http.StatusBadRequest)
		return
	}
	icon, ok := s.favicons.Icon(r.Context(), host)
	if !ok {
		renderError(w, r, fmt.Errorf("no favicon for %s", host), http.StatusNotFound)
		return
	}
	w.Header().Set("Content-Type", icon.ContentType)
	w.Header().Set("Cache-Control", "public, max-age=86400")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(icon.Data); err != nil {
		log.Printf("[WARN] failed to write favicon for %s: %v", host, err)
	}
}

func (s *Server) markReadHandler(w http.ResponseWriter, r *http.Request) {
	s.updateState(w, r, "mark read", s.state.MarkRead)
}

func (s *Server) markUnreadHandler(w http.ResponseWriter, r *http.Request) {
	s.updateState(w, r, "mark unread", s.state.MarkUnread)
}

func (s *Server) saveHandler(w http.ResponseWriter, r *http.Request) {
	s.updateState(w, r, "save", s.state.Save)
}

func (s *Server) unsaveHandler(w http.ResponseWriter, r *http.Request) {
	s.updateState(w, r, "unsave", s.state.Unsave)
}

// updateState decodes the link from request body, applies fn and responds with the resulting flags
func (s *Server) updateState(w http.ResponseWriter, r *http.Request, op string,
	fn func(ctx context.Context, link string) error) {
	ctx := r.Context()

	var req linkRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		renderError(w, r, fmt.Errorf("invalid request body: %w", err), http.StatusBadRequest)
		return
	}
	req.Link = strings.TrimSpace(req.Link)
	if req.Link == "" {
		renderError(w, r, errors.New("link is required"), http.StatusBadRequest)
		return
	}

	if err := fn(ctx, req.Link); err != nil {
		log.Printf("[ERROR] failed to %s %s: %v", op, req.Link, err)
		renderError(w, r, err, http.StatusInternalServerError)
		return
	}

	states, err := s.state.States(ctx, []string{req.Link})
	if err != nil {
		log.Printf("[ERROR] failed to get state of %s: %v", req.Link, err)
		renderError(w, r, err, http.StatusInternalServerError)
		return
	}
	st := states[req.Link]
	renderJSON(w, r, http.StatusOK, map[string]any{"link": req.Link, "read": st.Read, "saved": st.Saved})
}

// renderJSON sends JSON response
func renderJSON(w http.ResponseWriter, _ *http.Request, code int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if data != nil {
		if err := json.NewEncoder(w).Encode(data); err != nil {
			log.Printf("[ERROR] can't encode response to JSON: %v", err)
		}
	}
}

// renderError sends error response as JSON
func renderError(w http.ResponseWriter, r *http.Request, err error, code int) {
	errMsg := "unknown error"
	if err != nil {
		errMsg = err.Error()
	}
	renderJSON(w, r, code, map[string]string{"error": errMsg})
}
