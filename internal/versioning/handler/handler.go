package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/quillcms/go-services/internal/versioning"
	"github.com/quillcms/go-services/internal/versioning/repository"
	"github.com/quillcms/go-services/internal/versioning/service"
)

// RegisterVersionRoutes mounts the version-control API:
// the operator surface (settings, stats, history, restore), the editing
// workflow's snapshot hook and the scheduler's cleanup trigger.
func RegisterVersionRoutes(r *gin.Engine, svc service.Service) {
	r.GET("/api/version-control/settings", func(c *gin.Context) {
		enabled, err := svc.IsEnabled(c.Request.Context())
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"enabled": enabled})
	})

	r.PUT("/api/version-control/settings", func(c *gin.Context) {
		var req struct {
			Enabled *bool `json:"enabled"`
		}
		if err := c.ShouldBindJSON(&req); err != nil || req.Enabled == nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "enabled (bool) is required"})
			return
		}
		if err := svc.SetEnabled(c.Request.Context(), *req.Enabled); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"enabled": *req.Enabled})
	})

	r.GET("/api/version-control/stats", func(c *gin.Context) {
		stats, err := svc.GetStats(c.Request.Context())
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, stats)
	})

	r.POST("/api/version-control/cleanup", func(c *gin.Context) {
		deleted, err := svc.CleanupOldVersions(c.Request.Context())
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"deleted": deleted})
	})

	r.POST("/api/content/:contentType/:contentId/versions", func(c *gin.Context) {
		ct, err := versioning.ParseContentType(c.Param("contentType"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		var req struct {
			Slug        string `json:"slug"`
			Title       string `json:"title"`
			Content     string `json:"content"`
			Description string `json:"description"`
			Source      string `json:"source"`
		}
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		src := versioning.Source(req.Source)
		switch src {
		case "", versioning.SourceSync, versioning.SourceDashboard:
		default:
			c.JSON(http.StatusBadRequest, gin.H{"error": "source must be sync or dashboard"})
			return
		}
		id, err := svc.CreateVersion(c.Request.Context(), service.CreateVersionInput{
			ContentType: ct,
			ContentID:   c.Param("contentId"),
			Slug:        req.Slug,
			Title:       req.Title,
			Content:     req.Content,
			Description: req.Description,
			Source:      src,
		})
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		if id == "" {
			// versioning disabled: the hook succeeded but nothing was recorded
			c.JSON(http.StatusOK, gin.H{"id": nil, "recorded": false})
			return
		}
		c.JSON(http.StatusCreated, gin.H{"id": id, "recorded": true})
	})

	r.GET("/api/content/:contentType/:contentId/versions", func(c *gin.Context) {
		ct, err := versioning.ParseContentType(c.Param("contentType"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		history, err := svc.GetVersionHistory(c.Request.Context(), ct, c.Param("contentId"))
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, history)
	})

	r.GET("/api/versions/:id", func(c *gin.Context) {
		snap, err := svc.GetVersion(c.Request.Context(), c.Param("id"))
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, snap)
	})

	r.POST("/api/versions/:id/restore", func(c *gin.Context) {
		res, err := svc.RestoreVersion(c.Request.Context(), c.Param("id"))
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		if !res.Success {
			c.JSON(http.StatusNotFound, res)
			return
		}
		c.JSON(http.StatusOK, res)
	})
}
