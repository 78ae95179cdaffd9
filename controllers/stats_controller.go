package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"newsvoice/global"
)

// Health provides an unauthenticated liveness endpoint for container orchestrators.
func Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":    "ok",
		"timestamp": time.Now().UTC(),
	})
}

// ListCollections names every collection in the database.
func ListCollections(c *gin.Context) {
	collections, err := global.Store.Collections(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "collections": collections})
}

// DatabaseStats reports per-collection document counts.
func DatabaseStats(c *gin.Context) {
	ctx := c.Request.Context()
	collections, err := global.Store.Collections(ctx)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	stats := make(map[string]int64, len(collections))
	for _, name := range collections {
		count, err := global.Store.CountDocuments(ctx, name, nil)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		stats[name] = count
	}

	c.JSON(http.StatusOK, gin.H{
		"success":           true,
		"stats":             stats,
		"total_collections": len(collections),
	})
}
