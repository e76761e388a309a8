package main

import (
	"context"
	"embed"
	"html/template"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/pkg/errors"
	"github.com/rs/cors"
	"github.com/samber/lo"

	"github.com/Zachkp/portfolio-chat/chat"
)

//go:embed templates/*.html
var templateFS embed.FS

type server struct {
	cfg       Config
	log       *log.Logger
	assistant *chat.Assistant
	analytics *Analytics
	admin     *adminAuth
	mailer    mailer
	upgrader  websocket.Upgrader
}

func newServer(cfg Config, logger *log.Logger, assistant *chat.Assistant, analytics *Analytics, m mailer) *server {
	s := &server{
		cfg:       cfg,
		log:       logger,
		assistant: assistant,
		analytics: analytics,
		mailer:    m,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
		},
	}
	if len(cfg.AllowedOrigins) > 0 {
		s.upgrader.CheckOrigin = func(r *http.Request) bool {
			origin := r.Header.Get("Origin")
			return origin == "" || lo.Contains(cfg.AllowedOrigins, origin)
		}
	}
	if analytics != nil {
		s.admin = newAdminAuth(cfg.AdminUsername, cfg.AdminPassword, logger)
	}
	return s
}

func (s *server) router() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), requestLogger(s.log))
	r.SetHTMLTemplate(template.Must(template.ParseFS(templateFS, "templates/*.html")))

	r.Static("/images", "./images")
	r.Static("/static", "./static")

	if s.analytics != nil {
		r.Use(s.analytics.visitorTrackingMiddleware())
	}

	// Home page route
	r.GET("/", s.handleIndex)

	// HTMX chat endpoints return the exchange fragment
	r.POST("/chat", s.handleChat)
	r.POST("/chat/suggestion", s.handleSuggestion)

	api := r.Group("/api")
	api.POST("/ask", s.handleAPIAsk)
	api.GET("/questions", s.handleAPIQuestions)

	r.GET("/ws/chat", s.handleChatSocket)

	r.GET("/contact-form", func(c *gin.Context) {
		c.HTML(http.StatusOK, "contact.html", gin.H{
			"title": "Contact Me",
		})
	})
	r.POST("/contact", s.handleContact)

	r.GET("/privacy", func(c *gin.Context) {
		c.HTML(http.StatusOK, "privacy.html", gin.H{
			"title": "Privacy Policy",
		})
	})

	if s.analytics != nil {
		s.setupAdminRoutes(r)
	}

	return r
}

// withCORS lets the widget be embedded from other origins.
func withCORS(h http.Handler, origins []string) http.Handler {
	if len(origins) == 0 {
		return h
	}
	return cors.New(cors.Options{
		AllowedOrigins:   origins,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost},
		AllowedHeaders:   []string{"Content-Type", "Accept", "HX-Request", "HX-Target", "HX-Current-URL"},
		AllowCredentials: false,
	}).Handler(h)
}

func runHTTP(ctx context.Context, addr string, h http.Handler, logger *log.Logger) error {
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	srv := &http.Server{
		Addr:              addr,
		Handler:           h,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return errors.Wrap(err, "listen")
	case <-ctx.Done():
		logger.Info("Shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}
