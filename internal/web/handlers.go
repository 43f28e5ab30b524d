package web

import (
	"errors"
	"html/template"
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/shyamraj/portfolio/internal/analytics"
	"github.com/shyamraj/portfolio/internal/content"
	"github.com/shyamraj/portfolio/internal/refiner"
	"github.com/shyamraj/portfolio/internal/ui"
)

type navView struct {
	Initials  string
	Links     []content.Link
	CTA       content.Link
	Scrolled  bool
	MenuOpen  bool
	Threshold int
}

type refinerView struct {
	Draft     string
	Result    string
	Refining  bool
	CanSubmit bool
	Copied    bool
	CopyText  string
	Notices   []refiner.Notice
	ResetMs   int64
}

type pageView struct {
	Content      *content.Content
	About        template.HTML
	Nav          navView
	Refiner      refinerView
	ContactLinks []content.Link
	Copyright    string
	Margin       int
}

func (s *Server) navView(n *ui.Navigation) navView {
	return navView{
		Initials:  s.cfg.Content.Profile.Initials,
		Links:     ui.NavLinks,
		CTA:       ui.CallToAction,
		Scrolled:  n.Scrolled(),
		MenuOpen:  n.MenuOpen(),
		Threshold: ui.ScrollThreshold,
	}
}

func refinerViewOf(v *visitorSession) refinerView {
	if v == nil {
		return refinerView{ResetMs: refiner.CopyResetDelay.Milliseconds()}
	}
	sess := v.refiner
	return refinerView{
		Draft:     sess.Draft(),
		Result:    sess.Result(),
		Refining:  sess.Refining(),
		CanSubmit: sess.CanSubmit(),
		Copied:    sess.Copied(),
		CopyText:  v.clip.Take(),
		Notices:   sess.Notices(),
		ResetMs:   refiner.CopyResetDelay.Milliseconds(),
	}
}

// existingSession returns the visitor's refiner session, or nil when the
// request carries no known cookie. Read-only handlers render an empty
// refiner for nil.
func (s *Server) existingSession(c *gin.Context) *visitorSession {
	id, _ := c.Cookie(SessionCookie)
	v, _ := s.sessions.Lookup(id)
	return v
}

// session resolves the visitor's refiner session, creating one and setting
// the cookie when needed.
func (s *Server) session(c *gin.Context) (*visitorSession, bool) {
	id, _ := c.Cookie(SessionCookie)
	v, newID, err := s.sessions.Get(id)
	if err != nil {
		log.Printf("Error creating refiner session: %v", err)
		c.String(http.StatusInternalServerError, "Something went wrong. Please reload the page.")
		return nil, false
	}
	if newID != id {
		c.SetSameSite(http.SameSiteLaxMode)
		c.SetCookie(SessionCookie, newID, 0, "/", "", false, true)
	}
	return v, true
}

func (s *Server) handlePage(c *gin.Context) {
	v := s.existingSession(c)
	var nav ui.Navigation
	c.HTML(http.StatusOK, "index.html", pageView{
		Content:      s.cfg.Content,
		About:        s.about,
		Nav:          s.navView(&nav),
		Refiner:      refinerViewOf(v),
		ContactLinks: s.cfg.Content.ContactLinks(),
		Copyright:    s.cfg.Content.Copyright(s.cfg.Now().Year()),
		Margin:       ui.EntranceMargin,
	})
}

// handleNav rebuilds the navigation bar from the client's state and applies
// one menu action.
func (s *Server) handleNav(c *gin.Context) {
	var nav ui.Navigation
	if c.Query("open") == "1" {
		nav.ToggleMenu()
	}
	if y, err := strconv.Atoi(c.Query("scrollY")); err == nil {
		nav.OnScroll(y)
	}
	switch c.Query("menu") {
	case "toggle":
		nav.ToggleMenu()
	case "close":
		nav.SelectLink(c.Query("href"))
	}
	c.HTML(http.StatusOK, "nav", s.navView(&nav))
}

func (s *Server) handleRefiner(c *gin.Context) {
	c.HTML(http.StatusOK, "refiner", refinerViewOf(s.existingSession(c)))
}

// Handle refine submission with HTMX
func (s *Server) handleRefine(c *gin.Context) {
	v, ok := s.session(c)
	if !ok {
		return
	}

	v.refiner.SetDraft(c.PostForm("draft"))
	out, err := v.refiner.Refine(c.Request.Context())
	switch {
	case errors.Is(err, refiner.ErrEmptyDraft):
		s.track(analytics.OutcomeRejected)
	case errors.Is(err, refiner.ErrBusy):
		// The in-flight request renders the result.
	case err != nil:
		log.Printf("Unexpected refine error: %v", err)
	case out.Fallback:
		s.track(analytics.OutcomeFallback)
	default:
		s.track(analytics.OutcomeRefined)
	}

	c.HTML(http.StatusOK, "refiner", refinerViewOf(v))
}

func (s *Server) handleCopy(c *gin.Context) {
	v := s.existingSession(c)
	if v == nil {
		c.HTML(http.StatusOK, "refiner", refinerViewOf(nil))
		return
	}
	if err := v.refiner.Copy(); err != nil && !errors.Is(err, refiner.ErrNothingToCopy) {
		log.Printf("Error copying refined message: %v", err)
	}
	c.HTML(http.StatusOK, "refiner", refinerViewOf(v))
}

func (s *Server) track(o analytics.Outcome) {
	if s.cfg.Tracker != nil {
		s.cfg.Tracker.Refinement(o)
	}
}

func (s *Server) handleListProjects(c *gin.Context) {
	c.JSON(http.StatusOK, s.cfg.Content.Projects)
}

func (s *Server) handleGetProject(c *gin.Context) {
	i, err := strconv.Atoi(c.Param("index"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid project index"})
		return
	}
	p, err := s.cfg.Content.Project(i)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Project not found"})
		return
	}
	c.JSON(http.StatusOK, p)
}
