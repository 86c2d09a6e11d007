// Package server exposes the assessment service over HTTP.
package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/abhisek/mindcheck/internal/assessor"
)

// maxBodyBytes caps request bodies; a record is a few hundred bytes.
const maxBodyBytes = 1 << 20

// Server is the HTTP shell around an assessor.Service.
type Server struct {
	svc    *assessor.Service
	log    *zap.Logger
	engine *gin.Engine
}

// New builds the router. log may be nil.
func New(svc *assessor.Service, log *zap.Logger) *Server {
	if log == nil {
		log = zap.NewNop()
	}
	s := &Server{svc: svc, log: log}
	s.engine = s.routes()
	return s
}

// Handler returns the HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.engine
}

func (s *Server) routes() *gin.Engine {
	router := gin.New()
	router.Use(
		requestID(),
		requestLogger(s.log),
		gin.Recovery(),
		limitBodySize(maxBodyBytes),
		cors.New(cors.Config{
			AllowAllOrigins: true,
			AllowMethods:    []string{"GET", "POST", "OPTIONS"},
			AllowHeaders:    []string{"Origin", "Content-Type", "Accept"},
			MaxAge:          12 * time.Hour,
		}),
	)

	router.GET("/", s.home)
	router.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := router.Group("/api")
	api.POST("/predict", s.predict)
	api.GET("/academic-options", s.academicOptions)
	api.GET("/conditions", s.conditions)

	// Preflights carrying an Origin are answered by the cors middleware; bare
	// OPTIONS requests still get a 200.
	router.OPTIONS("/*path", func(c *gin.Context) {
		c.Header("Allow", "GET, POST, OPTIONS")
		c.Status(http.StatusOK)
	})

	return router
}

// Run serves on addr until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.engine,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.log.Info("server listening",
			zap.String("addr", addr),
			zap.String("strategy", s.svc.StrategyName()),
			zap.String("content_set", s.svc.Advice().Name()),
		)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	s.log.Info("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	return <-errCh
}
