package bootstrap

import (
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	httpapi "github.com/GoSim-25-26J-441/projects-catalog/internal/api/http"
	apimiddleware "github.com/GoSim-25-26J-441/projects-catalog/internal/api/http/middleware"
	"github.com/GoSim-25-26J-441/projects-catalog/internal/attachments"
	authhttp "github.com/GoSim-25-26J-441/projects-catalog/internal/auth/http"
	authmiddleware "github.com/GoSim-25-26J-441/projects-catalog/internal/auth/middleware"
	authservice "github.com/GoSim-25-26J-441/projects-catalog/internal/auth/service"
	projecthttp "github.com/GoSim-25-26J-441/projects-catalog/internal/projects/http"
	projectservice "github.com/GoSim-25-26J-441/projects-catalog/internal/projects/service"
)

const (
	defaultUploadsPrefix = "/uploads"
	defaultCORSOrigin    = "http://localhost:5173"
)

type RouterDeps struct {
	ServiceName string
	Version     string
	Logger      zerolog.Logger

	// DB backs the health check. nil reports the database as disabled.
	DB         httpapi.Pinger
	Projects   projectservice.Repository
	Admins     authservice.AdminLookup
	AdminCache authservice.DecisionCache
	Store      attachments.Store

	// Verifier enables Firebase ID token checks when non-nil.
	Verifier authmiddleware.TokenVerifier

	CORSOrigins    []string
	RequestTimeout time.Duration
	MaxUploadBytes int64
	// LocalBaseURL is the public URL of the local store; its path is the
	// static route prefix.
	LocalBaseURL string
}

func BuildRouter(dep RouterDeps) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(apimiddleware.RequestIDMiddleware(dep.Logger))
	r.Use(apimiddleware.PrometheusMiddleware())
	r.Use(cors.New(corsConfig(dep.CORSOrigins)))
	r.Use(apimiddleware.TimeoutMiddleware(dep.RequestTimeout))

	healthHandler := httpapi.NewHealthHandler(dep.ServiceName, dep.Version, dep.Store.Name(), dep.DB)
	healthHandler.RegisterRoutes(r)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))
	r.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "Hello, world!"})
	})

	if local, ok := dep.Store.(*attachments.LocalStore); ok {
		r.Static(staticPrefix(dep.LocalBaseURL), local.Root())
	}

	api := r.Group("")
	if dep.Verifier != nil {
		api.Use(authmiddleware.FirebaseAuthMiddleware(dep.Verifier))
	}

	gate := authservice.NewGate(dep.Admins, dep.AdminCache)
	projectSvc := projectservice.NewProjectService(dep.Projects, dep.Store, gate)

	projecthttp.New(projectSvc, dep.MaxUploadBytes).Register(api.Group("/projects"))
	authhttp.New(gate).Register(api.Group("/admin"))

	return r
}

func corsConfig(origins []string) cors.Config {
	cfg := cors.DefaultConfig()
	cfg.AllowOrigins = nil
	for _, o := range origins {
		if o == "*" {
			cfg.AllowAllOrigins = true
		}
	}
	if !cfg.AllowAllOrigins {
		if len(origins) == 0 {
			origins = []string{defaultCORSOrigin}
		}
		cfg.AllowOrigins = origins
		cfg.AllowCredentials = true
	}
	cfg.AllowMethods = []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions}
	cfg.AllowHeaders = []string{"Origin", "Content-Type", "Authorization", "X-User-Id", apimiddleware.HeaderRequestID}
	cfg.ExposeHeaders = []string{apimiddleware.HeaderRequestID}
	return cfg
}

// staticPrefix returns the path component of baseURL, or /uploads when it
// has none.
func staticPrefix(baseURL string) string {
	u, err := url.Parse(baseURL)
	if err != nil {
		return defaultUploadsPrefix
	}
	p := "/" + strings.Trim(u.Path, "/")
	if p == "/" {
		return defaultUploadsPrefix
	}
	return p
}
