package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// RegisterSwagger registers minimal Swagger/OpenAPI endpoints for the
// version-control service.
// - GET /swagger/index.html  -> a small HTML page that loads the OpenAPI JSON
// - GET /swagger/doc.json    -> machine-readable OpenAPI JSON
func RegisterSwagger(rg *gin.Engine) {
	rg.GET("/swagger/index.html", func(c *gin.Context) {
		c.Header("Content-Type", "text/html; charset=utf-8")
		c.String(http.StatusOK, swaggerHTML)
	})

	rg.GET("/swagger/doc.json", func(c *gin.Context) {
		c.Data(http.StatusOK, "application/json", []byte(swaggerJSON))
	})
}

const swaggerHTML = `<!doctype html>
<html>
  <head>
    <meta charset="utf-8" />
    <title>quill-version-control — Swagger</title>
    <link rel="stylesheet" href="https://unpkg.com/swagger-ui-dist@4/swagger-ui.css" />
  </head>
  <body>
    <div id="swagger-ui"></div>
    <script src="https://unpkg.com/swagger-ui-dist@4/swagger-ui-bundle.js"></script>
    <script>
      window.ui = SwaggerUIBundle({
        url: '/swagger/doc.json',
        dom_id: '#swagger-ui',
      })
    </script>
  </body>
</html>`

// Minimal OpenAPI document describing the version-control endpoints.
const swaggerJSON = `{
  "openapi": "3.0.0",
  "info": { "title": "quill-version-control", "version": "v0.1.0" },
  "paths": {
    "/api/version-control/settings": {
      "get": { "summary": "Read the versioning gate", "responses": { "200": { "description": "current gate state" } } },
      "put": {
        "summary": "Enable or disable snapshot recording",
        "requestBody": { "content": { "application/json": { "schema": {"type":"object","properties":{"enabled":{"type":"boolean"}}}}}},
        "responses": { "200": { "description": "gate updated" } }
      }
    },
    "/api/version-control/stats": {
      "get": { "summary": "Aggregate snapshot statistics", "responses": { "200": { "description": "enabled flag, total count, oldest/newest timestamps" } } }
    },
    "/api/version-control/cleanup": {
      "post": { "summary": "Delete one batch of snapshots past the retention window", "responses": { "200": { "description": "number deleted" } } }
    },
    "/api/content/{contentType}/{contentId}/versions": {
      "get": { "summary": "List version history, newest first", "responses": { "200": { "description": "version summaries" }, "400": { "description": "unknown content type" } } },
      "post": {
        "summary": "Record a snapshot of a content item (editing hook)",
        "requestBody": { "content": { "application/json": { "schema": {"type":"object","properties":{"slug":{"type":"string"},"title":{"type":"string"},"content":{"type":"string"},"description":{"type":"string"},"source":{"type":"string"}}}}}},
        "responses": { "201": { "description": "snapshot recorded" }, "200": { "description": "versioning disabled, nothing recorded" } }
      }
    },
    "/api/versions/{id}": {
      "get": { "summary": "Fetch one snapshot in full", "responses": { "200": { "description": "snapshot" }, "404": { "description": "unknown id" } } }
    },
    "/api/versions/{id}/restore": {
      "post": { "summary": "Restore a snapshot onto its live content item", "responses": { "200": { "description": "restored" }, "404": { "description": "version or original content not found" } } }
    },
    "/health": { "get": { "summary": "Liveness check", "responses": { "200": { "description": "healthy" } } } },
    "/ready": { "get": { "summary": "Readiness check", "responses": { "200": { "description": "ready" }, "503": { "description": "not ready" } } } }
  }
}`
