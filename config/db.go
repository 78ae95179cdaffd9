package config

import (
	"context"
	"log"
	"time"

	"newsvoice/global"
	"newsvoice/store"
)

func initStore() {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	s, err := store.Connect(ctx, AppConfig.Mongo.URI, AppConfig.Mongo.Database)
	if err != nil {
		log.Fatalf("Failed to connect to MongoDB: %v", err)
	}
	global.Store = s
	log.Println("Successfully connected to MongoDB")
}
