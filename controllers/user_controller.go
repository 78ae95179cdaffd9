package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"

	"newsvoice/global"
	"newsvoice/store"
	"newsvoice/utils"
)

// GetUsers lists user documents, newest first.
func GetUsers(c *gin.Context) {
	var limit int64
	if limitParam := c.Query("limit"); limitParam != "" {
		limit, _ = strconv.ParseInt(limitParam, 10, 64)
	}

	users, err := global.Store.FindMany(c.Request.Context(), "users", bson.M{}, store.FindOptions{
		Limit: limit,
		Sort:  bson.D{{Key: "created_at", Value: -1}},
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    serializeDocs(users),
		"count":   len(users),
	})
}

// CreateUser inserts a user document. Email is the uniqueness key; a
// password field, when present, is stored hashed.
func CreateUser(c *gin.Context) {
	var user map[string]any
	if err := c.ShouldBindJSON(&user); err != nil || len(user) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No data provided"})
		return
	}

	ctx := c.Request.Context()
	if email, ok := user["email"].(string); ok && email != "" {
		existing, err := global.Store.FindOne(ctx, "users", bson.M{"email": email})
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		if existing != nil {
			c.JSON(http.StatusConflict, gin.H{"error": "User with this email already exists"})
			return
		}
	}

	if password, ok := user["password"].(string); ok && password != "" {
		hashed, err := utils.HashPassword(password)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		user["password"] = hashed
	}

	id, err := global.Store.InsertOne(ctx, "users", user)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"message": "User created successfully",
		"id":      id,
	})
}
