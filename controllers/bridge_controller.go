package controllers

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"newsvoice/config"
	"newsvoice/relay"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// The API is CORS-open; the websocket endpoint follows suit.
	CheckOrigin: func(r *http.Request) bool { return true },
}

// AudioBridge upgrades the request to a websocket and relays browser PCM to
// the realtime speech model until either side disconnects. The heading and
// description query params scope the model to one article.
func AudioBridge(c *gin.Context) {
	heading := c.Query("heading")
	description := c.Query("description")

	client, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Printf("bridge: upgrading client connection: %v", err)
		return
	}

	upstream, err := relay.DialUpstream(c.Request.Context(), relay.UpstreamConfig{
		Endpoint:   config.AppConfig.Azure.Endpoint,
		Deployment: config.AppConfig.Azure.Deployment,
		APIKey:     config.AppConfig.Azure.Key,
	})
	if err != nil {
		log.Printf("bridge: dialing speech upstream: %v", err)
		client.Close()
		return
	}

	session := relay.NewSession(client, upstream, heading, description)
	if err := session.Run(); err != nil {
		log.Printf("bridge: session ended: %v", err)
	}
}
