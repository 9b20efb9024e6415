package main

import (
	"context"
	stderrors "errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/kbukum/onion/errors"
	"github.com/kbukum/onion/logger"
	"github.com/kbukum/onion/pipeline"
	"github.com/kbukum/onion/server"
	"github.com/kbukum/onion/version"
)

const maxRequestInputs = 1000

type runRequest struct {
	Inputs []string `json:"inputs" binding:"required,min=1,max=1000"`
}

type runResponse struct {
	Results []string `json:"results"`
}

// serveAPI serves the chain over HTTP until ctx is cancelled, then drains
// in-flight requests.
func serveAPI(ctx context.Context, cfg *AppConfig, h pipeline.Handler[string, string], log *logger.Logger) error {
	srv := server.New(cfg.Server, log)
	if err := srv.ApplyMiddleware(); err != nil {
		return err
	}
	registerRoutes(srv.Engine(), h, cfg.Chain.Workers, cfg.Name)

	if err := srv.Start(ctx); err != nil {
		return err
	}
	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.WriteTimeout+time.Second)
	defer cancel()
	return srv.Stop(shutdownCtx)
}

func registerRoutes(e *gin.Engine, h pipeline.Handler[string, string], workers int, name string) {
	e.GET("/health", func(c *gin.Context) {
		server.RespondOK(c, gin.H{"status": "ok", "service": name})
	})
	e.GET("/version", func(c *gin.Context) {
		server.RespondOK(c, version.Get())
	})
	e.POST("/v1/run", func(c *gin.Context) {
		var req runRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			var tooLarge *http.MaxBytesError
			if stderrors.As(err, &tooLarge) {
				c.JSON(http.StatusRequestEntityTooLarge, errors.InvalidInput("body", "request body too large").ToResponse())
				return
			}
			server.RespondWithError(c, errors.InvalidInput("inputs", err.Error()).
				WithDetail("max_inputs", maxRequestInputs))
			return
		}

		results, err := pipeline.ExecuteEach(c.Request.Context(), h, req.Inputs, workers)
		if err != nil {
			server.RespondWithError(c, err)
			return
		}
		server.RespondOK(c, runResponse{Results: results})
	})
}
