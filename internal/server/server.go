// Package server wires the HTTP routes onto gin.
package server

import (
	"context"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/Skufu/cardiocare/internal/chat"
	"github.com/Skufu/cardiocare/internal/metrics"
	"github.com/Skufu/cardiocare/internal/predictor"
)

type HealthChecker interface {
	Ping(ctx context.Context) error
}

// Deps are the collaborators handed to the router. Model and DB may be nil.
type Deps struct {
	Model        *predictor.Service
	Chat         *chat.Responder
	Metrics      *metrics.Metrics
	Logger       *zap.Logger
	DB           HealthChecker
	WebRoot      string
	MaxBodyBytes int64
	ChatLimiter  *rate.Limiter
	Now          func() time.Time
}

type Server struct {
	model   *predictor.Service
	chat    *chat.Responder
	metrics *metrics.Metrics
	log     *zap.Logger
	db      HealthChecker
	now     func() time.Time
}

// Pages are the fixed templates served without parameters.
var Pages = map[string]string{
	"/":           "index.html",
	"/about":      "about.html",
	"/contact":    "contact.html",
	"/disclaimer": "disclaimer.html",
	"/predict_ui": "predict.html",
	"/doctors":    "doctors.html",
	"/accuracy":   "accuracy.html",
}

func NewRouter(d Deps) *gin.Engine {
	s := &Server{
		model:   d.Model,
		chat:    d.Chat,
		metrics: d.Metrics,
		log:     d.Logger,
		db:      d.DB,
		now:     d.Now,
	}
	if s.chat == nil {
		s.chat = chat.NewResponder()
	}
	if s.metrics == nil {
		s.metrics = metrics.New()
	}
	if s.log == nil {
		s.log = zap.NewNop()
	}
	if s.now == nil {
		s.now = time.Now
	}
	maxBody := d.MaxBodyBytes
	if maxBody <= 0 {
		maxBody = 1 << 20
	}
	s.metrics.SetModelLoaded(s.model != nil)

	router := gin.New()
	router.Use(
		requestID(),
		requestLogger(s.log),
		gin.Recovery(),
		limitBodySize(maxBody),
		cors.New(cors.Config{
			AllowOrigins: []string{"*"},
			AllowMethods: []string{"GET", "POST", "OPTIONS"},
			AllowHeaders: []string{"Origin", "Content-Type", "Authorization"},
			MaxAge:       12 * time.Hour,
		}),
		gzip.Gzip(gzip.DefaultCompression, gzip.WithExcludedPaths([]string{"/metrics"})),
	)

	s.mountPages(router, d.WebRoot)

	router.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	router.GET("/readyz", s.readyz)
	router.GET("/metrics", gin.WrapH(promhttp.HandlerFor(s.metrics.Registry(), promhttp.HandlerOpts{})))

	router.POST("/predict", s.predict)
	router.POST("/generate_report", s.generateReport)
	router.POST("/chat", rateLimit(d.ChatLimiter), s.chatReply)

	return router
}

// mountPages registers the template pages and static assets found under root.
// Missing directories are skipped so the API can run without a frontend.
func (s *Server) mountPages(router *gin.Engine, root string) {
	if root == "" {
		return
	}
	if dirExists(filepath.Join(root, "static")) {
		router.Static("/static", filepath.Join(root, "static"))
	}

	templates := filepath.Join(root, "templates")
	matches, _ := filepath.Glob(filepath.Join(templates, "*.html"))
	if len(matches) == 0 {
		s.log.Warn("no page templates found; page routes disabled", zap.String("dir", templates))
		return
	}
	router.LoadHTMLGlob(filepath.Join(templates, "*.html"))

	for path, name := range Pages {
		page := name
		router.GET(path, func(c *gin.Context) {
			c.HTML(http.StatusOK, page, gin.H{"Page": page})
		})
	}
}

func (s *Server) readyz(c *gin.Context) {
	modelStatus := "loaded"
	if s.model == nil {
		modelStatus = "unavailable"
	}

	if s.db == nil {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "db": "disabled", "model": modelStatus})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()

	if err := s.db.Ping(ctx); err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"status": "degraded",
			"db":     "unhealthy: " + err.Error(),
			"model":  modelStatus,
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status": "ok",
		"db":     "ok",
		"model":  modelStatus,
	})
}

func dirExists(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return info.IsDir()
}
