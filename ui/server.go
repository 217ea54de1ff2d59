package ui

import (
	"embed"
	"fmt"
	"html/template"
	"io/fs"

	"github.com/gin-gonic/gin"

	"csvalign/adapters/llm"
	"csvalign/adapters/upload"
	"csvalign/app"
	"csvalign/internal"
	"csvalign/internal/config"
)

//go:embed templates/*.html
var templateFiles embed.FS

// Server is the web front end: one page, a handful of JSON endpoints, all
// state held by the CompareService.
type Server struct {
	router    *gin.Engine
	service   *app.CompareService
	reader    *upload.Reader
	catalog   *llm.Catalog
	templates *template.Template
	logger    *internal.Logger
}

// NewServer creates the web server and wires its routes.
func NewServer(service *app.CompareService, catalog *llm.Catalog, cfg config.ServerConfig, logger *internal.Logger) (*Server, error) {
	if cfg.GinMode != "" {
		gin.SetMode(cfg.GinMode)
	}
	if logger == nil {
		logger = internal.DefaultLogger
	}

	templatesFS, err := fs.Sub(templateFiles, "templates")
	if err != nil {
		return nil, fmt.Errorf("failed to create templates filesystem: %w", err)
	}
	templates, err := template.ParseFS(templatesFS, "*.html")
	if err != nil {
		return nil, fmt.Errorf("failed to parse templates: %w", err)
	}

	s := &Server{
		router:    gin.Default(),
		service:   service,
		reader:    upload.NewReader(),
		catalog:   catalog,
		templates: templates,
		logger:    logger,
	}
	s.setupRoutes()
	return s, nil
}

// setupRoutes configures the application routes
func (s *Server) setupRoutes() {
	s.router.GET("/", s.handleIndex)
	s.router.GET("/api/providers", s.handleProviders)
	s.router.GET("/api/status", s.handleStatus)
	s.router.POST("/api/upload", s.handleUpload)
	s.router.POST("/api/process", s.handleProcess)
	s.router.GET("/api/result/download", s.handleDownload)
}

// Router exposes the gin engine for tests.
func (s *Server) Router() *gin.Engine {
	return s.router
}

// Start starts the web server
func (s *Server) Start(addr string) error {
	s.logger.Info("[Server] listening on http://%s", addr)
	return s.router.Run(addr)
}
