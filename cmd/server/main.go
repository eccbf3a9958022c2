package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go-inventory-admin/internal/auth"
	"go-inventory-admin/internal/config"
	"go-inventory-admin/internal/database"
	"go-inventory-admin/internal/server"
	"go-inventory-admin/internal/services"

	"github.com/joho/godotenv"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: No .env file found")
	}
	cfg := config.Load()
	auth.SetSecret(cfg.JWTSecret)

	db, err := database.Connect(cfg.DatabaseDSN, cfg.SQLitePath)
	if err != nil {
		log.Fatal("Failed to connect to database: ", err)
	}
	if err := database.Seed(db); err != nil {
		log.Fatal("Failed to seed database: ", err)
	}

	// The session guard reads the timeout from settings on every check,
	// so changing it in the UI applies immediately.
	sessions := auth.NewSessionStore(
		func() time.Duration {
			s := database.GetSettings(db)
			return s.SessionTimeout()
		},
		func(sess auth.Session) {
			actor := services.Actor{ID: sess.UserID, Name: sess.UserName}
			details := fmt.Sprintf("%s logged out (session expired)", sess.UserName)
			if err := services.LogActivity(db, actor, "Logout", "User", details); err != nil {
				log.Printf("failed to log session expiry: %v", err)
			}
		},
	)
	sessions.StartJanitor(time.Minute)
	defer sessions.Stop()

	r := server.NewRouter(db, sessions, cfg.AllowedOrigins)
	srv := &http.Server{Addr: ":" + cfg.Port, Handler: r}

	go func() {
		log.Printf("Server listening on %s (env=%s)", srv.Addr, cfg.Env)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Server failed to start: ", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutdown signal received")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Printf("Error during shutdown: %v", err)
	}
	log.Println("Server gracefully stopped")
}
