package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"newsvoice/config"
	"newsvoice/utils"
)

// CreateToken mints a room-join token for the voice frontend.
func CreateToken(c *gin.Context) {
	room := c.Query("room")
	user := c.Query("user")
	if room == "" || user == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "room and user are required"})
		return
	}

	token, err := utils.GenerateRoomToken(config.AppConfig.JWT.Secret, room, user)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"token": token})
}
