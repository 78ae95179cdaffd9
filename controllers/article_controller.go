package controllers

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"

	"newsvoice/global"
	"newsvoice/store"
)

const articlesCacheKey = "articles"
const articlesCacheTTL = 10 * time.Minute

// GetArticles lists stored articles, newest first. The unfiltered listing is
// served through a short-lived redis cache.
func GetArticles(c *gin.Context) {
	ctx := c.Request.Context()
	category := c.Query("category")
	limitParam := c.Query("limit")

	cacheable := category == "" && limitParam == "" && global.RedisDB != nil
	if cacheable {
		if cached, err := global.RedisDB.Get(ctx, articlesCacheKey).Result(); err == nil {
			var data []map[string]any
			if err := json.Unmarshal([]byte(cached), &data); err == nil {
				c.JSON(http.StatusOK, gin.H{"success": true, "data": data, "count": len(data)})
				return
			}
		}
	}

	query := bson.M{}
	if category != "" {
		query["category"] = category
	}
	var limit int64
	if limitParam != "" {
		limit, _ = strconv.ParseInt(limitParam, 10, 64)
	}

	docs, err := global.Store.FindMany(ctx, "articles", query, store.FindOptions{
		Limit: limit,
		Sort:  bson.D{{Key: "created_at", Value: -1}},
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	data := serializeDocs(docs)
	if cacheable {
		if payload, err := json.Marshal(data); err == nil {
			_ = global.RedisDB.Set(ctx, articlesCacheKey, payload, articlesCacheTTL).Err()
		}
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "data": data, "count": len(data)})
}

// CreateArticle inserts a free-form article document.
func CreateArticle(c *gin.Context) {
	var article map[string]any
	if err := c.ShouldBindJSON(&article); err != nil || len(article) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No data provided"})
		return
	}

	id, err := global.Store.InsertOne(c.Request.Context(), "articles", article)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	invalidateArticlesCache()

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"message": "Article created successfully",
		"id":      id,
	})
}

func GetArticleByID(c *gin.Context) {
	oid, err := store.ObjectID(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid article ID"})
		return
	}

	article, err := global.Store.FindOne(c.Request.Context(), "articles", bson.M{"_id": oid})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if article == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Article not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "data": serializeDoc(article)})
}

func UpdateArticle(c *gin.Context) {
	oid, err := store.ObjectID(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid article ID"})
		return
	}

	var update map[string]any
	if err := c.ShouldBindJSON(&update); err != nil || len(update) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No data provided"})
		return
	}

	matched, modified, err := global.Store.UpdateOne(c.Request.Context(), "articles", bson.M{"_id": oid}, update)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if matched == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Article not found"})
		return
	}

	invalidateArticlesCache()

	c.JSON(http.StatusOK, gin.H{
		"success":        true,
		"message":        "Article updated successfully",
		"modified_count": modified,
	})
}

func DeleteArticle(c *gin.Context) {
	oid, err := store.ObjectID(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid article ID"})
		return
	}

	deleted, err := global.Store.DeleteOne(c.Request.Context(), "articles", bson.M{"_id": oid})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if deleted == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Article not found"})
		return
	}

	invalidateArticlesCache()

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Article deleted successfully"})
}

// invalidateArticlesCache drops the cached listing without blocking the
// request path.
func invalidateArticlesCache() {
	if global.RedisDB == nil {
		return
	}
	go func() {
		_ = global.RedisDB.Del(context.Background(), articlesCacheKey).Err()
	}()
}
