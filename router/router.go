package router

import (
	"os"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"newsvoice/controllers"
)

func InitRouter() *gin.Engine {
	r := gin.Default()

	// The browser client may be served from anywhere; default to open CORS
	// and let deployments pin origins via env.
	allowedOrigins := []string{"*"}
	if raw := os.Getenv("FRONTEND_ORIGINS"); raw != "" {
		split := strings.Split(raw, ",")
		allowedOrigins = allowedOrigins[:0]
		for _, v := range split {
			trimmed := strings.TrimSpace(v)
			if trimmed != "" {
				allowedOrigins = append(allowedOrigins, trimmed)
			}
		}
		if len(allowedOrigins) == 0 {
			allowedOrigins = []string{"*"}
		}
	}

	allowCreds := true
	if len(allowedOrigins) == 1 && allowedOrigins[0] == "*" {
		allowCreds = false
	}

	r.Use(cors.New(cors.Config{
		AllowOrigins:     allowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: allowCreds,
		MaxAge:           12 * time.Hour,
	}))

	r.GET("/", controllers.Home)
	r.GET("/health", controllers.Health)
	r.GET("/news", controllers.TrendingNews)
	r.GET("/newsapi", controllers.NewsAPI)
	r.GET("/token", controllers.CreateToken)
	r.GET("/ws/bridge", controllers.AudioBridge)

	db := r.Group("/db")
	{
		news := db.Group("/news")
		{
			news.GET("/today", controllers.TodayNews)
			news.GET("/history", controllers.NewsHistory)
			news.GET("/search", controllers.SearchNews)
		}

		db.GET("/articles", controllers.GetArticles)
		db.POST("/articles", controllers.CreateArticle)
		db.GET("/articles/:id", controllers.GetArticleByID)
		db.PUT("/articles/:id", controllers.UpdateArticle)
		db.DELETE("/articles/:id", controllers.DeleteArticle)

		db.GET("/users", controllers.GetUsers)
		db.POST("/users", controllers.CreateUser)

		db.GET("/collections", controllers.ListCollections)
		db.GET("/stats", controllers.DatabaseStats)
	}

	return r
}
