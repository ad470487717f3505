package server

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/Odiin2024/flashboss-site/internal/aggregator"
	"github.com/Odiin2024/flashboss-site/internal/filter"
	"github.com/Odiin2024/flashboss-site/internal/model"
	"github.com/Odiin2024/flashboss-site/internal/output"
	"github.com/Odiin2024/flashboss-site/internal/parser"
	"github.com/Odiin2024/flashboss-site/internal/source"
	"github.com/Odiin2024/flashboss-site/internal/status"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Server exposes the correction reports over HTTP. Every request reads the sheet afresh.
type Server struct {
	engine      *gin.Engine
	src         source.Source
	normalizer  *parser.Normalizer
	status      *status.Writer
	statusValue string
	addr        string
	log         *zap.SugaredLogger
}

// New creates the HTTP server for the given sheet.
func New(src source.Source, n *parser.Normalizer, statusValue, addr string, log *zap.SugaredLogger) *Server {
	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()
	engine.Use(gin.Recovery())

	// Disable automatic redirects that cause 301 issues.
	engine.RedirectTrailingSlash = false
	engine.RedirectFixedPath = false

	s := &Server{
		engine:      engine,
		src:         src,
		normalizer:  n,
		status:      status.NewWriter(src, n.Columns().Status, log),
		statusValue: statusValue,
		addr:        addr,
		log:         log,
	}

	s.setupRoutes()
	return s
}

// Handler returns the underlying http.Handler.
func (s *Server) Handler() http.Handler { return s.engine }

func (s *Server) setupRoutes() {
	s.engine.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := s.engine.Group("/api")
	api.GET("/reports", s.handleReports)
	api.GET("/summary", s.handleSummary)
	api.POST("/reports/status", s.handleMark)
}

// Start runs the server. Blocks until the server is stopped.
func (s *Server) Start() error {
	s.log.Infof("Serving reports on %s", s.addr)
	return s.engine.Run(s.addr)
}

func (s *Server) handleReports(c *gin.Context) {
	reports, ok := s.load(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, reports)
}

func (s *Server) handleSummary(c *gin.Context) {
	reports, ok := s.load(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, output.NewSummary(aggregator.Summarize(reports)))
}

type markRequest struct {
	Rows   []int  `json:"rows" binding:"required,min=1"`
	Status string `json:"status"`
}

func (s *Server) handleMark(c *gin.Context) {
	var req markRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	for _, r := range req.Rows {
		if r < model.FirstDataRow {
			c.JSON(http.StatusBadRequest, gin.H{"error": "row " + strconv.Itoa(r) + " is not a report row"})
			return
		}
	}

	value := req.Status
	if value == "" {
		value = s.statusValue
	}

	n, err := s.status.Mark(c.Request.Context(), req.Rows, value)
	switch {
	case errors.Is(err, status.ErrNoStatusColumn):
		c.JSON(http.StatusConflict, gin.H{
			"warning": "no '" + s.normalizer.Columns().Status + "' column found; add it to track processed items",
			"updated": 0,
		})
	case err != nil:
		s.log.Errorw("mark rows failed", "rows", req.Rows, "updated", n, "error", err)
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error(), "updated": n})
	default:
		c.JSON(http.StatusOK, gin.H{"updated": n})
	}
}

// load reads, normalizes and filters reports using the request's query parameters.
func (s *Server) load(c *gin.Context) ([]model.Report, bool) {
	criteria, err := criteriaFromQuery(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return nil, false
	}

	rows, err := s.src.Rows(c.Request.Context())
	if err != nil {
		s.log.Errorw("read reports failed", "error", err)
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
		return nil, false
	}
	return filter.Apply(s.normalizer.NormalizeAll(rows), criteria), true
}

func criteriaFromQuery(c *gin.Context) (filter.Criteria, error) {
	criteria := filter.Criteria{
		IssueType:    c.Query("type"),
		LanguagePack: c.Query("pack"),
	}
	if v := c.Query("pending"); v != "" {
		pending, err := strconv.ParseBool(v)
		if err != nil {
			return filter.Criteria{}, errors.New("pending must be a boolean")
		}
		criteria.PendingOnly = pending
	}
	return criteria, nil
}
