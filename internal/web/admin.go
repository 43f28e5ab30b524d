package web

import (
	"crypto/subtle"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/shyamraj/portfolio/internal/analytics"
)

// AdminCredentials guard the analytics dashboard.
type AdminCredentials struct {
	Username string
	Password string
}

type admin struct {
	tracker *analytics.Tracker
	creds   AdminCredentials
	token   string
	now     func() time.Time
}

func newAdmin(tracker *analytics.Tracker, creds AdminCredentials, now func() time.Time) (*admin, error) {
	token, err := analytics.RandomToken()
	if err != nil {
		return nil, err
	}

	if creds.Username == "" {
		creds.Username = "admin"
		log.Println("WARNING: Using default admin username. Set ADMIN_USERNAME environment variable.")
	}
	if creds.Password == "" {
		// No password configured: generate one so the dashboard is never open.
		creds.Password, err = analytics.RandomToken()
		if err != nil {
			return nil, err
		}
		log.Println("WARNING: No admin password configured; admin login is effectively disabled. Set ADMIN_PASSWORD.")
	}

	log.Printf("Admin access available at: /admin/login")
	if gin.Mode() == gin.DebugMode {
		log.Printf("Admin token (dev only): %s", token)
	}
	log.Println("Privacy: Visitor tracking enabled with hashed IP addresses")

	return &admin{tracker: tracker, creds: creds, token: token, now: now}, nil
}

// Middleware to check admin authentication
func (a *admin) authMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := c.Cookie("admin_token")
		if err != nil || subtle.ConstantTimeCompare([]byte(token), []byte(a.token)) != 1 {
			c.Redirect(http.StatusFound, "/admin/login")
			c.Abort()
			return
		}
		c.Next()
	}
}

// Privacy-conscious visitor tracking middleware
func (a *admin) trackingMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.Method == http.MethodGet && analytics.ShouldTrack(c.Request.URL.Path, c.GetHeader("DNT")) {
			a.tracker.Visit(c.ClientIP(), c.GetHeader("User-Agent"), c.Request.URL.Path)
		}
		c.Next()
	}
}

func (a *admin) checkCredentials(username, password string) bool {
	u := subtle.ConstantTimeCompare([]byte(username), []byte(a.creds.Username))
	p := subtle.ConstantTimeCompare([]byte(password), []byte(a.creds.Password))
	return u&p == 1
}

func (a *admin) routes(r *gin.Engine) {
	r.GET("/privacy", func(c *gin.Context) {
		c.HTML(http.StatusOK, "privacy.html", gin.H{
			"title": "Privacy Policy",
		})
	})

	r.GET("/admin/login", func(c *gin.Context) {
		c.HTML(http.StatusOK, "admin-login.html", gin.H{
			"title": "Admin Login",
		})
	})

	r.POST("/admin/login", func(c *gin.Context) {
		if a.checkCredentials(c.PostForm("username"), c.PostForm("password")) {
			c.SetSameSite(http.SameSiteStrictMode)
			c.SetCookie("admin_token", a.token, 3600*24, "/admin", "", false, true)
			log.Printf("Admin login successful from %s", a.tracker.HashIP(c.ClientIP()))
			c.Redirect(http.StatusFound, "/admin/dashboard")
			return
		}
		log.Printf("Failed admin login attempt from %s", a.tracker.HashIP(c.ClientIP()))
		c.HTML(http.StatusUnauthorized, "admin-login.html", gin.H{
			"title": "Admin Login",
			"error": "Invalid credentials",
		})
	})

	r.GET("/admin/logout", func(c *gin.Context) {
		c.SetCookie("admin_token", "", -1, "/admin", "", false, true)
		c.Redirect(http.StatusFound, "/admin/login")
	})

	group := r.Group("/admin")
	group.Use(a.authMiddleware())

	group.GET("/dashboard", func(c *gin.Context) {
		stats, err := a.tracker.Store().Stats(c.Request.Context(), a.now())
		if err != nil {
			log.Printf("Error loading admin stats: %v", err)
			c.HTML(http.StatusInternalServerError, "admin-error.html", gin.H{
				"error": "Failed to load statistics",
			})
			return
		}
		c.HTML(http.StatusOK, "admin-dashboard.html", gin.H{
			"stats": stats,
		})
	})

	group.GET("/api/stats", func(c *gin.Context) {
		stats, err := a.tracker.Store().Stats(c.Request.Context(), a.now())
		if err != nil {
			log.Printf("Error loading admin stats: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load statistics"})
			return
		}
		c.JSON(http.StatusOK, stats)
	})

	group.GET("/export/stats", func(c *gin.Context) {
		stats, err := a.tracker.Store().Stats(c.Request.Context(), a.now())
		if err != nil {
			log.Printf("Error exporting admin stats: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load statistics"})
			return
		}
		c.Header("Content-Disposition", "attachment; filename=portfolio-stats.json")
		log.Printf("Admin stats exported by %s", a.tracker.HashIP(c.ClientIP()))
		c.JSON(http.StatusOK, stats)
	})
}
