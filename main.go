package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"time"

	"newsvoice/config"
	"newsvoice/global"
	"newsvoice/router"
)

func main() {
	config.InitConfig()

	r := router.InitRouter()
	srv := &http.Server{
		Addr:    config.AppConfig.App.Port,
		Handler: r,
	}

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %s\n", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt)
	<-quit
	log.Println("Shutdown Server ...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server Shutdown:", err)
	}

	if global.Store != nil {
		if err := global.Store.Close(ctx); err != nil {
			log.Printf("closing store: %v", err)
		}
	}
	if global.RedisDB != nil {
		if err := global.RedisDB.Close(); err != nil {
			log.Printf("closing redis: %v", err)
		}
	}
	log.Println("Server exiting")
}
