package ui

import (
	"log"
	"net/http"
	"sync"

	"gofill/adapters/excel"
	"gofill/app"

	"github.com/gin-gonic/gin"
)

// Server hosts the JSON API for the fill engine.
type Server struct {
	router  *gin.Engine
	service *app.FillService

	// Columns preloaded from the configured data file, for by-name requests
	columnsMu sync.RWMutex
	columns   *excel.ColumnSet
}

// NewServer creates a new web server instance
func NewServer(service *app.FillService) *Server {
	return &Server{
		router:  gin.Default(),
		service: service,
	}
}

// Initialize registers all routes
func (s *Server) Initialize() {
	handler := NewSeriesHandler(s.service, s.loadedColumns)

	api := s.router.Group("/api")
	{
		api.POST("/series/fill", handler.HandleFill())
		api.POST("/series/fill/batch", handler.HandleBatchFill())
		api.POST("/series/profile", handler.HandleProfile())
		api.GET("/columns", handler.HandleColumns())
	}

	s.router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
}

// LoadColumns caches the named series of a workbook so fill requests can
// reference them by column name instead of sending values inline.
func (s *Server) LoadColumns(path string) error {
	set, err := excel.NewColumnReader(path).ReadColumns()
	if err != nil {
		return err
	}

	s.columnsMu.Lock()
	s.columns = set
	s.columnsMu.Unlock()

	log.Printf("Loaded %d columns from %s", len(set.Names), path)
	return nil
}

func (s *Server) loadedColumns() *excel.ColumnSet {
	s.columnsMu.RLock()
	defer s.columnsMu.RUnlock()
	return s.columns
}

// Router exposes the gin engine (used by httptest in handler tests)
func (s *Server) Router() *gin.Engine {
	return s.router
}

// Start runs the HTTP server
func (s *Server) Start(addr string) error {
	return s.router.Run(addr)
}
