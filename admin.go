// admin.go - privacy-conscious visitor and chat analytics
package main

import (
	"crypto/rand"
	"crypto/sha256"
	"crypto/subtle"
	"database/sql"
	"encoding/hex"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gin-gonic/gin"
	"github.com/pkg/errors"
	_ "modernc.org/sqlite"

	"github.com/Zachkp/portfolio-chat/chat"
)

// Chat event outcomes
const (
	OutcomeMatched    = "matched"
	OutcomeFallback   = "fallback"
	OutcomeSuggestion = "suggestion"
)

// Privacy-conscious visitor tracking struct
type VisitorMetric struct {
	ID        int       `json:"id"`
	HashedIP  string    `json:"hashed_ip"` // Hashed instead of raw IP for privacy
	UserAgent string    `json:"user_agent"`
	Path      string    `json:"path"`
	Timestamp time.Time `json:"timestamp"`
}

// TopicStat counts answered questions per topic and outcome.
type TopicStat struct {
	Topic   string `json:"topic"`
	Outcome string `json:"outcome"`
	Count   int64  `json:"count"`
}

type AdminStats struct {
	TotalVisitors      int64           `json:"total_visitors"`
	UniqueVisitors     int64           `json:"unique_visitors"`
	VisitorsToday      int64           `json:"visitors_today"`
	VisitorsThisWeek   int64           `json:"visitors_this_week"`
	TotalQuestions     int64           `json:"total_questions"`
	UnmatchedQuestions int64           `json:"unmatched_questions"`
	TopTopics          []TopicStat     `json:"top_topics"`
	RecentVisitors     []VisitorMetric `json:"recent_visitors"`
}

// Analytics stores hashed visitor hits and per-topic chat outcomes in sqlite.
// The raw text of a question is never stored.
type Analytics struct {
	db   *sql.DB
	salt string
	log  *log.Logger
}

const schema = `
CREATE TABLE IF NOT EXISTS visitors (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	hashed_ip TEXT NOT NULL,  -- Store hashed IP instead of raw IP
	user_agent TEXT,
	path TEXT,
	timestamp DATETIME DEFAULT CURRENT_TIMESTAMP
);
CREATE TABLE IF NOT EXISTS chat_events (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	topic TEXT NOT NULL DEFAULT '',
	outcome TEXT NOT NULL,
	timestamp DATETIME DEFAULT CURRENT_TIMESTAMP
);
CREATE INDEX IF NOT EXISTS idx_visitors_timestamp ON visitors(timestamp);
CREATE INDEX IF NOT EXISTS idx_chat_events_topic ON chat_events(topic, outcome);
`

// OpenAnalytics opens (creating if needed) the sqlite database at path.
func OpenAnalytics(path string, logger *log.Logger) (*Analytics, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, errors.Wrap(err, "create database directory")
		}
	}

	db, err := sql.Open("sqlite", path+"?_time_format=sqlite&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, errors.Wrap(err, "open sqlite")
	}
	// One writer keeps sqlite happy with the background inserts.
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, errors.Wrap(err, "create analytics tables")
	}

	a := &Analytics{db: db, salt: generateToken(), log: logger}

	// Clean up old visitor data for privacy compliance (run in background)
	go a.Cleanup()

	logger.Info("Privacy: Visitor tracking enabled with hashed IP addresses", "db", path)
	return a, nil
}

func (a *Analytics) Close() error {
	return a.db.Close()
}

func generateToken() string {
	bytes := make([]byte, 32)
	if _, err := rand.Read(bytes); err != nil {
		panic(errors.Wrap(err, "generate token"))
	}
	return hex.EncodeToString(bytes)
}

// Hash IP address for privacy compliance (consistent per IP)
func (a *Analytics) hashIP(ip string) string {
	hash := sha256.New()
	hash.Write([]byte(ip + a.salt))
	return hex.EncodeToString(hash.Sum(nil))[:16] // Truncate for storage efficiency
}

// Privacy-conscious visitor tracking middleware
func (a *Analytics) visitorTrackingMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		// Skip tracking for static files, sockets and admin pages
		path := c.Request.URL.Path
		if strings.HasPrefix(path, "/static/") ||
			strings.HasPrefix(path, "/images/") ||
			strings.HasPrefix(path, "/admin/") ||
			strings.HasPrefix(path, "/ws/") ||
			strings.HasPrefix(path, "/favicon") ||
			strings.HasPrefix(path, "/privacy") {
			c.Next()
			return
		}

		// Respect Do Not Track header
		if c.GetHeader("DNT") == "1" {
			c.Next()
			return
		}

		go a.TrackVisit(c.ClientIP(), c.GetHeader("User-Agent"), path)
		c.Next()
	}
}

// TrackVisit records one page hit with a hashed IP.
func (a *Analytics) TrackVisit(ip, userAgent, path string) {
	_, err := a.db.Exec(`
		INSERT INTO visitors (hashed_ip, user_agent, path, timestamp)
		VALUES (?, ?, ?, ?)
	`, a.hashIP(ip), userAgent, path, time.Now().UTC())
	if err != nil {
		a.log.Error("Error recording visitor", "error", err)
	}
}

// RecordChat counts an answered question by topic and outcome.
func (a *Analytics) RecordChat(reply chat.Reply) {
	outcome := OutcomeFallback
	switch {
	case reply.Source == chat.SourceSuggestion:
		outcome = OutcomeSuggestion
	case reply.Matched:
		outcome = OutcomeMatched
	}

	_, err := a.db.Exec(`
		INSERT INTO chat_events (topic, outcome, timestamp)
		VALUES (?, ?, ?)
	`, string(reply.Topic), outcome, time.Now().UTC())
	if err != nil {
		a.log.Error("Error recording chat event", "error", err)
	}
}

// Cleanup removes records older than 12 months.
func (a *Analytics) Cleanup() {
	for _, table := range []string{"visitors", "chat_events"} {
		result, err := a.db.Exec(`DELETE FROM ` + table + ` WHERE datetime(timestamp) < datetime('now', '-12 months')`)
		if err != nil {
			a.log.Error("Error cleaning up old analytics data", "table", table, "error", err)
			continue
		}
		if n, _ := result.RowsAffected(); n > 0 {
			a.log.Info("Privacy cleanup", "table", table, "removed", n)
		}
	}
}

// Stats gathers the admin dashboard numbers.
func (a *Analytics) Stats() (*AdminStats, error) {
	stats := &AdminStats{}

	counts := []struct {
		query string
		dest  *int64
	}{
		{"SELECT COUNT(*) FROM visitors", &stats.TotalVisitors},
		{"SELECT COUNT(DISTINCT hashed_ip) FROM visitors", &stats.UniqueVisitors},
		{"SELECT COUNT(*) FROM visitors WHERE date(timestamp) = date('now')", &stats.VisitorsToday},
		{"SELECT COUNT(*) FROM visitors WHERE datetime(timestamp) >= datetime('now', '-7 days')", &stats.VisitorsThisWeek},
		{"SELECT COUNT(*) FROM chat_events", &stats.TotalQuestions},
		{"SELECT COUNT(*) FROM chat_events WHERE outcome = '" + OutcomeFallback + "'", &stats.UnmatchedQuestions},
	}
	for _, q := range counts {
		if err := a.db.QueryRow(q.query).Scan(q.dest); err != nil {
			return nil, errors.Wrapf(err, "query %q", q.query)
		}
	}

	var err error
	if stats.TopTopics, err = a.TopTopics(20); err != nil {
		return nil, err
	}
	if stats.RecentVisitors, err = a.RecentVisitors(50); err != nil {
		return nil, err
	}
	return stats, nil
}

// TopTopics returns the busiest topic/outcome pairs.
func (a *Analytics) TopTopics(limit int) ([]TopicStat, error) {
	rows, err := a.db.Query(`
		SELECT topic, outcome, COUNT(*) AS hits
		FROM chat_events
		GROUP BY topic, outcome
		ORDER BY hits DESC, topic ASC, outcome ASC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, errors.Wrap(err, "query topic stats")
	}
	defer rows.Close()

	var topics []TopicStat
	for rows.Next() {
		var ts TopicStat
		if err := rows.Scan(&ts.Topic, &ts.Outcome, &ts.Count); err != nil {
			return nil, errors.Wrap(err, "scan topic stat")
		}
		topics = append(topics, ts)
	}
	return topics, errors.Wrap(rows.Err(), "read topic stats")
}

// RecentVisitors returns the latest hits, newest first.
func (a *Analytics) RecentVisitors(limit int) ([]VisitorMetric, error) {
	rows, err := a.db.Query(`
		SELECT id, hashed_ip, COALESCE(user_agent, ''), COALESCE(path, ''), timestamp
		FROM visitors
		ORDER BY timestamp DESC, id DESC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, errors.Wrap(err, "query visitors")
	}
	defer rows.Close()

	var visitors []VisitorMetric
	for rows.Next() {
		var v VisitorMetric
		if err := rows.Scan(&v.ID, &v.HashedIP, &v.UserAgent, &v.Path, &v.Timestamp); err != nil {
			return nil, errors.Wrap(err, "scan visitor")
		}
		visitors = append(visitors, v)
	}
	return visitors, errors.Wrap(rows.Err(), "read visitors")
}

type adminAuth struct {
	token    string
	username string
	password string
	log      *log.Logger
}

func newAdminAuth(username, password string, logger *log.Logger) *adminAuth {
	a := &adminAuth{
		token:    generateToken(),
		username: username,
		password: password,
		log:      logger,
	}
	logger.Info("Admin access available at: /admin/login")
	if gin.Mode() == gin.DebugMode {
		logger.Debug("Admin token (dev only)", "token", a.token)
	}
	return a
}

func (a *adminAuth) valid(username, password string) bool {
	u := subtle.ConstantTimeCompare([]byte(username), []byte(a.username))
	p := subtle.ConstantTimeCompare([]byte(password), []byte(a.password))
	return u&p == 1
}

// Middleware to check admin authentication
func (a *adminAuth) middleware() gin.HandlerFunc {
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

// Setup all admin routes
func (s *server) setupAdminRoutes(r *gin.Engine) {
	a := s.analytics

	// Admin login page
	r.GET("/admin/login", func(c *gin.Context) {
		c.HTML(http.StatusOK, "admin-login.html", gin.H{
			"title": "Admin Login",
		})
	})

	// Admin login handler
	r.POST("/admin/login", func(c *gin.Context) {
		if s.admin.valid(c.PostForm("username"), c.PostForm("password")) {
			// Set secure cookie (24 hours)
			c.SetCookie("admin_token", s.admin.token, 3600*24, "/admin", "", false, true)
			s.log.Info("Admin login successful", "from", a.hashIP(c.ClientIP()))
			c.Redirect(http.StatusFound, "/admin/dashboard")
			return
		}

		s.log.Warn("Failed admin login attempt", "from", a.hashIP(c.ClientIP()))
		c.HTML(http.StatusUnauthorized, "admin-login.html", gin.H{
			"title": "Admin Login",
			"error": "Invalid credentials",
		})
	})

	// Admin logout
	r.GET("/admin/logout", func(c *gin.Context) {
		c.SetCookie("admin_token", "", -1, "/admin", "", false, true)
		s.log.Info("Admin logout", "from", a.hashIP(c.ClientIP()))
		c.Redirect(http.StatusFound, "/admin/login")
	})

	// Protected admin routes group
	adminGroup := r.Group("/admin")
	adminGroup.Use(s.admin.middleware())

	adminGroup.GET("/dashboard", func(c *gin.Context) {
		stats, err := a.Stats()
		if err != nil {
			s.log.Error("Error loading admin stats", "error", err)
			c.HTML(http.StatusInternalServerError, "admin-error.html", gin.H{
				"error": "Failed to load statistics",
			})
			return
		}

		c.HTML(http.StatusOK, "admin-dashboard.html", gin.H{
			"stats": stats,
		})
	})

	// Admin API endpoints for HTMX/AJAX
	adminGroup.GET("/api/stats", func(c *gin.Context) {
		stats, err := a.Stats()
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, stats)
	})

	adminGroup.GET("/visitors", func(c *gin.Context) {
		visitors, err := a.RecentVisitors(200)
		if err != nil {
			s.log.Error("Error loading visitors", "error", err)
			c.HTML(http.StatusInternalServerError, "admin-error.html", gin.H{
				"error": "Failed to load visitors",
			})
			return
		}

		c.HTML(http.StatusOK, "admin-visitors.html", gin.H{
			"visitors": visitors,
		})
	})

	adminGroup.POST("/privacy/cleanup", func(c *gin.Context) {
		go a.Cleanup()
		c.JSON(http.StatusOK, gin.H{"message": "Privacy cleanup initiated"})
	})

	// Admin statistics export (for backups or analysis)
	adminGroup.GET("/export/stats", func(c *gin.Context) {
		stats, err := a.Stats()
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}

		c.Header("Content-Disposition", "attachment; filename=admin-stats.json")
		s.log.Info("Admin stats exported", "by", a.hashIP(c.ClientIP()))
		c.JSON(http.StatusOK, stats)
	})
}
