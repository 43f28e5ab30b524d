// Package web serves the portfolio page and its HTMX fragment endpoints.
package web

import (
	"context"
	"embed"
	"fmt"
	"html/template"
	"io/fs"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/shyamraj/portfolio/internal/analytics"
	"github.com/shyamraj/portfolio/internal/content"
	"github.com/shyamraj/portfolio/internal/refiner"
	"github.com/shyamraj/portfolio/internal/rewriter"
	"github.com/shyamraj/portfolio/internal/ui"
)

//go:embed templates/*.html
var templatesFS embed.FS

//go:embed static
var staticFS embed.FS

// SessionCookie names the cookie carrying the visitor's refiner session.
const SessionCookie = "portfolio_session"

// Config holds server dependencies. Tracker and Function are optional.
type Config struct {
	Addr      string
	Content   *content.Content
	Refiner   refiner.Refiner
	Recipient string
	Tracker   *analytics.Tracker
	Retention time.Duration
	Admin     AdminCredentials

	// Function, when set, is served at /functions/v1/refine-message.
	Function        rewriter.Rewriter
	PublicKey       string
	FunctionOrigins []string

	SessionTTL time.Duration
	Now        func() time.Time
}

// Server is the portfolio HTTP server.
type Server struct {
	cfg        Config
	about      template.HTML
	engine     *gin.Engine
	sessions   *SessionStore
	admin      *admin
	httpServer *http.Server
	stop       chan struct{}
}

// New builds the server and its routes.
func New(cfg Config) (*Server, error) {
	if cfg.Content == nil {
		cfg.Content = content.Default()
	}
	if cfg.Refiner == nil {
		cfg.Refiner = refiner.Unconfigured{}
	}
	if cfg.SessionTTL == 0 {
		cfg.SessionTTL = 30 * time.Minute
	}
	if cfg.Now == nil {
		cfg.Now = time.Now
	}

	about, err := cfg.Content.AboutHTML()
	if err != nil {
		return nil, err
	}

	s := &Server{cfg: cfg, about: about, stop: make(chan struct{})}
	s.sessions = NewSessionStore(func(clip refiner.Clipboard) (*refiner.Session, error) {
		return refiner.NewSession(cfg.Refiner,
			refiner.WithClipboard(clip),
			refiner.WithRecipient(cfg.Recipient),
		)
	}, cfg.SessionTTL)

	if cfg.Tracker != nil {
		s.admin, err = newAdmin(cfg.Tracker, cfg.Admin, cfg.Now)
		if err != nil {
			return nil, err
		}
	}

	s.engine, err = s.buildEngine()
	if err != nil {
		return nil, err
	}
	return s, nil
}

func (s *Server) buildEngine() (*gin.Engine, error) {
	r := gin.New()
	r.Use(gin.Logger(), gin.Recovery())

	tmpl, err := template.New("").Funcs(templateFuncs).ParseFS(templatesFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("parsing templates: %w", err)
	}
	r.SetHTMLTemplate(tmpl)

	static, err := fs.Sub(staticFS, "static")
	if err != nil {
		return nil, err
	}
	r.StaticFS("/static", http.FS(static))

	if s.admin != nil {
		r.Use(s.admin.trackingMiddleware())
	}

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// Home page route
	r.GET("/", s.handlePage)

	// Navigation fragment: menu toggles and initial scroll state
	r.GET("/nav", s.handleNav)

	// Refiner fragments
	r.GET("/contact/refiner", s.handleRefiner)
	r.POST("/contact/refine", s.handleRefine)
	r.POST("/contact/copy", s.handleCopy)

	api := r.Group("/api")
	api.GET("/projects", s.handleListProjects)
	api.GET("/projects/:index", s.handleGetProject)

	if s.cfg.Function != nil {
		rewriter.Register(r.Group("/functions/v1"), s.cfg.Function, s.cfg.PublicKey, s.cfg.FunctionOrigins)
	}

	if s.admin != nil {
		s.admin.routes(r)
	}

	return r, nil
}

var templateFuncs = template.FuncMap{
	"skillDelay":   func(i int) string { return seconds(ui.Stagger(i, 0, ui.SkillStep)) },
	"projectDelay": func(i int) string { return seconds(ui.Stagger(i, 0, ui.ProjectStep)) },
	"tagDelay":     func(i int) string { return seconds(ui.Stagger(i, ui.TagBase, ui.TagStep)) },
}

func seconds(d time.Duration) string {
	return fmt.Sprintf("%.2fs", d.Seconds())
}

// Handler exposes the routes, mainly for tests.
func (s *Server) Handler() http.Handler { return s.engine }

// Sessions exposes the visitor session store.
func (s *Server) Sessions() *SessionStore { return s.sessions }

// Start listens on cfg.Addr until Shutdown.
func (s *Server) Start() error {
	s.httpServer = &http.Server{
		Addr:              s.cfg.Addr,
		Handler:           s.engine,
		ReadHeaderTimeout: 10 * time.Second,
		WriteTimeout:      120 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	go s.maintain()

	log.Printf("portfolio listening on %s", s.cfg.Addr)
	if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

// maintain expires idle sessions and prunes analytics past retention.
func (s *Server) maintain() {
	sweep := time.NewTicker(time.Minute)
	defer sweep.Stop()
	cleanup := time.NewTicker(24 * time.Hour)
	defer cleanup.Stop()

	if s.admin != nil && s.cfg.Retention > 0 {
		s.cfg.Tracker.Cleanup(context.Background(), s.cfg.Retention)
	}

	for {
		select {
		case <-s.stop:
			return
		case <-sweep.C:
			s.sessions.Sweep()
		case <-cleanup.C:
			if s.admin != nil && s.cfg.Retention > 0 {
				s.cfg.Tracker.Cleanup(context.Background(), s.cfg.Retention)
			}
		}
	}
}

// Shutdown stops the listener and tears down visitor sessions.
func (s *Server) Shutdown(ctx context.Context) error {
	close(s.stop)
	defer s.sessions.Close()
	if s.httpServer != nil {
		return s.httpServer.Shutdown(ctx)
	}
	return nil
}
