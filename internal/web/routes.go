// internal/web/routes.go
package web

import (
	"fmt"
	"io"
	"net/http"
	"path/filepath"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/sstent/tcxclean/internal/database"
	"github.com/sstent/tcxclean/internal/tcx"
)

// Handler serves the run catalog and an upload-and-clean endpoint.
type Handler struct {
	db database.Database
}

func NewHandler(db database.Database) *Handler {
	return &Handler{db: db}
}

func (h *Handler) RegisterRoutes(router *gin.Engine) {
	router.GET("/health", h.Health)
	router.GET("/stats", h.Stats)
	router.GET("/runs", h.RunList)
	router.GET("/runs/:id", h.RunDetail)
	router.POST("/fix", h.Fix)
}

func (h *Handler) Health(c *gin.Context) {
	c.String(http.StatusOK, "OK")
}

func (h *Handler) Stats(c *gin.Context) {
	stats, err := h.db.GetStats()
	if err != nil {
		c.AbortWithStatus(http.StatusInternalServerError)
		return
	}
	c.JSON(http.StatusOK, stats)
}

func (h *Handler) RunList(c *gin.Context) {
	limit, _ := strconv.Atoi(c.Query("limit"))
	offset, _ := strconv.Atoi(c.Query("offset"))
	if limit <= 0 {
		limit = 50
	}

	sport := c.Query("sport")
	if sport != "" || c.Query("from") != "" || c.Query("to") != "" {
		filters := database.RunFilters{
			Sport:  sport,
			Limit:  limit,
			Offset: offset,
		}
		if from, err := time.Parse("2006-01-02", c.Query("from")); err == nil {
			filters.DateFrom = &from
		}
		if to, err := time.Parse("2006-01-02", c.Query("to")); err == nil {
			filters.DateTo = &to
		}

		runs, err := h.db.FilterRuns(filters)
		if err != nil {
			c.AbortWithStatus(http.StatusInternalServerError)
			return
		}
		c.JSON(http.StatusOK, runs)
		return
	}

	runs, err := h.db.ListRuns(limit, offset)
	if err != nil {
		c.AbortWithStatus(http.StatusInternalServerError)
		return
	}
	c.JSON(http.StatusOK, runs)
}

func (h *Handler) RunDetail(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.AbortWithStatus(http.StatusBadRequest)
		return
	}

	run, err := h.db.GetRun(id)
	if err != nil {
		c.AbortWithStatus(http.StatusNotFound)
		return
	}
	c.JSON(http.StatusOK, run)
}

// Fix accepts a multipart TCX upload and returns the cleaned document as a
// download. Nothing is written server-side and nothing is cataloged.
func (h *Handler) Fix(c *gin.Context) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing file field"})
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		c.AbortWithStatus(http.StatusInternalServerError)
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		c.AbortWithStatus(http.StatusInternalServerError)
		return
	}

	cleaned, err := tcx.Clean(data)
	if err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		return
	}

	name := tcx.DefaultOutputPath(filepath.Base(fileHeader.Filename))
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", name))
	c.Data(http.StatusOK, "application/vnd.garmin.tcx+xml", cleaned)
}
