// Package http exposes the broker over gin: the two token issuance
// shapes, the room directory and the operational endpoints.
package http

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog/log"

	"livegate/internal/app"
	"livegate/internal/config"
)

func SetupRouter(cfg *config.Config, issuer *app.Issuer, dir *app.Directory, prom *prometheus.Registry) *gin.Engine {
	if cfg.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	if cfg.Mode == "debug" {
		r.Use(gin.Logger())
	}
	r.Use(gin.Recovery())

	h := &Handlers{Issuer: issuer, Directory: dir}

	r.GET("/getToken", h.GetToken)
	r.POST("/api/livekit/token", h.PostToken)
	r.GET("/getActiveLives", h.GetActiveLives)

	r.GET("/healthz", h.Healthz)
	if prom != nil {
		r.GET("/metrics", gin.WrapH(promhttp.HandlerFor(prom, promhttp.HandlerOpts{})))
	}

	log.Info().Str("module", "adapters.http").Msg("router setup")
	return r
}
