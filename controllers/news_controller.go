package controllers

import (
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"

	"newsvoice/global"
	"newsvoice/store"
)

// Home is the liveness banner.
func Home(c *gin.Context) {
	c.String(http.StatusOK, "News API is UP!")
}

// TrendingNews proxies the trending-topics scraper for one category.
func TrendingNews(c *gin.Context) {
	category := c.Query("category")
	if category == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "please add category in query params"})
		return
	}

	result, err := global.Trending.GetNews(c.Request.Context(), category)
	if err != nil {
		log.Printf("fetching trending news for %q: %v", category, err)
		c.JSON(http.StatusBadGateway, gin.H{"error": "failed to fetch trending news"})
		return
	}
	c.JSON(http.StatusOK, result)
}

// NewsAPI returns today's headlines, fetched at most once per calendar day.
// Failures come back in the payload's status field, mirroring the upstream
// news API envelope.
func NewsAPI(c *gin.Context) {
	result := global.News.FetchOrCacheDaily(c.Request.Context())
	c.JSON(http.StatusOK, result)
}

// TodayNews is NewsAPI wrapped with request metadata.
func TodayNews(c *gin.Context) {
	result := global.News.FetchOrCacheDaily(c.Request.Context())
	c.JSON(http.StatusOK, gin.H{
		"success":   result.Status == "ok",
		"data":      result,
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}

// NewsHistory lists daily snapshots, newest first, optionally filtered to one
// day key (DDMMYYYY).
func NewsHistory(c *gin.Context) {
	limit, _ := strconv.ParseInt(c.DefaultQuery("limit", "10"), 10, 64)

	query := bson.M{}
	if date := c.Query("date"); date != "" {
		query["date"] = date
	}

	entries, err := global.Store.FindMany(c.Request.Context(), "daily", query, store.FindOptions{
		Limit: limit,
		Sort:  bson.D{{Key: "created_at", Value: -1}},
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    serializeDocs(entries),
		"count":   len(entries),
	})
}

// SearchNews does a case-insensitive substring search over the cached
// article fields.
func SearchNews(c *gin.Context) {
	queryText := c.Query("q")
	if queryText == "" {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": `Query parameter "q" is required`})
		return
	}
	limit, _ := strconv.ParseInt(c.DefaultQuery("limit", "20"), 10, 64)

	searchQuery := bson.M{
		"$or": bson.A{
			bson.M{"title": bson.M{"$regex": queryText, "$options": "i"}},
			bson.M{"description": bson.M{"$regex": queryText, "$options": "i"}},
			bson.M{"content": bson.M{"$regex": queryText, "$options": "i"}},
		},
	}

	articles, err := global.Store.FindMany(c.Request.Context(), "news", searchQuery, store.FindOptions{
		Limit: limit,
		Sort:  bson.D{{Key: "created_at", Value: -1}},
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    serializeDocs(articles),
		"count":   len(articles),
		"query":   queryText,
	})
}
