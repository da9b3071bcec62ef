// Package web serves the browsing UI as server-rendered pages backed by per-session ui.App state.
package web

import (
	"errors"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/Adda-Baaj/khobor/internal/catalog"
	"github.com/Adda-Baaj/khobor/internal/logger"
	"github.com/Adda-Baaj/khobor/internal/middleware"
	"github.com/Adda-Baaj/khobor/internal/ui"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const sessionKey = "session"

// Server renders the three views and handles header interactions.
type Server struct {
	sessions *Sessions
	catalog  *catalog.Catalog
	log      logger.Logger
}

func NewServer(sessions *Sessions, cat *catalog.Catalog, log logger.Logger) *Server {
	if cat == nil {
		cat = catalog.Default()
	}
	return &Server{sessions: sessions, catalog: cat, log: logger.Ensure(log)}
}

// Router builds the gin engine. It fails only if the embedded templates do not parse.
func (s *Server) Router() (*gin.Engine, error) {
	tmpl, err := parseTemplates()
	if err != nil {
		return nil, err
	}

	r := gin.New()
	r.SetHTMLTemplate(tmpl)
	r.Use(
		gin.Recovery(),
		middleware.RequestID(),
		middleware.AccessLog(s.log),
		middleware.Prometheus("web"),
	)

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "sessions": s.sessions.Len()})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	pages := r.Group("/", s.session)
	pages.GET("/", s.page)
	pages.GET("/top-headlines/:category", s.page)
	pages.GET("/country/:iso", s.page)

	actions := r.Group("/ui", s.session)
	actions.POST("/menu", s.action(func(h *ui.Header) { h.ToggleMenu() }))
	actions.POST("/dropdown/category", s.action(func(h *ui.Header) { h.ToggleCategory() }))
	actions.POST("/dropdown/country", s.action(func(h *ui.Header) { h.ToggleCountry() }))
	actions.POST("/theme", s.action(func(h *ui.Header) { h.ToggleTheme() }))
	actions.POST("/select/all", s.selection(func(h *ui.Header, _ string) string { return h.SelectAllNews() }))
	actions.POST("/select/category", s.selection((*ui.Header).SelectCategory))
	actions.POST("/select/country", s.selection((*ui.Header).SelectCountry))
	actions.POST("/dismiss", func(c *gin.Context) {
		current(c).App.Clicks().Pointer(false)
		c.Redirect(http.StatusSeeOther, returnPath(c.PostForm("return")))
	})

	r.NoRoute(func(c *gin.Context) {
		c.String(http.StatusNotFound, "page not found")
	})

	return r, nil
}

// session attaches the caller's session, issuing a cookie for new ones.
func (s *Server) session(c *gin.Context) {
	id, _ := c.Cookie(SessionCookie)
	sess, created := s.sessions.Resolve(id)
	if created {
		c.SetSameSite(http.SameSiteLaxMode)
		c.SetCookie(SessionCookie, sess.ID, 0, "/", "", false, true)
	}
	c.Set(sessionKey, sess)
	c.Next()
}

func current(c *gin.Context) *Session {
	return c.MustGet(sessionKey).(*Session)
}

func (s *Server) page(c *gin.Context) {
	app := current(c).App

	page, _ := strconv.Atoi(c.Query("page"))
	route, state, err := app.Navigate(c.Request.Context(), c.Request.URL.Path, c.Query("q"), page)
	switch {
	case errors.Is(err, ui.ErrUnknownRoute):
		c.String(http.StatusNotFound, "page not found")
		return
	case errors.Is(err, ui.ErrStaleResponse):
		s.log.DebugObj("superseded view load", "ui_stale", map[string]any{
			"request_id": middleware.GetRequestID(c),
			"feed":       string(route.Feed),
		})
		fresh, ok := settledState(app.View(route.Feed).State(), route.Filter(c.Query("q")), page)
		if !ok {
			c.Redirect(http.StatusSeeOther, c.Request.URL.RequestURI())
			return
		}
		state = fresh
	}

	if state.Status == ui.StatusErrored {
		s.log.WarnObj("view load failed", "ui_error", map[string]any{
			"request_id": middleware.GetRequestID(c),
			"feed":       string(state.Feed),
			"filter":     state.Filter,
			"error":      state.Err,
		})
	}

	c.HTML(http.StatusOK, "page.tmpl", newPageData(app, s.catalog, route, state, c.Request.URL.RequestURI()))
}

// settledState reports whether the view already holds a finished load for filter and page.
func settledState(state ui.ViewState, filter string, page int) (ui.ViewState, bool) {
	page = max(page, 1)
	if state.Status != ui.StatusLoaded && state.Status != ui.StatusErrored {
		return state, false
	}
	return state, state.Filter == filter && state.Page == page
}

func (s *Server) action(fn func(*ui.Header)) gin.HandlerFunc {
	return func(c *gin.Context) {
		fn(current(c).App.Header())
		c.Redirect(http.StatusSeeOther, returnPath(c.PostForm("return")))
	}
}

// selection applies a header choice and redirects to the route it yields.
func (s *Server) selection(fn func(h *ui.Header, value string) string) gin.HandlerFunc {
	return func(c *gin.Context) {
		target := fn(current(c).App.Header(), strings.TrimSpace(c.PostForm("value")))
		c.Redirect(http.StatusSeeOther, returnPath(target))
	}
}

// returnPath accepts only local paths that match a view route and falls back to "/".
func returnPath(raw string) string {
	raw = strings.TrimSpace(raw)
	if !strings.HasPrefix(raw, "/") || strings.HasPrefix(raw, "//") {
		return ui.AllNewsPath
	}
	u, err := url.Parse(raw)
	if err != nil || u.IsAbs() || u.Host != "" {
		return ui.AllNewsPath
	}
	if _, ok := ui.Match(u.Path); !ok {
		return ui.AllNewsPath
	}
	return u.RequestURI()
}
