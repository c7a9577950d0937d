package main

import (
	"log"

	_ "pharus/docs"
	"pharus/internal/config"
	"pharus/internal/server"
)

// @title           Pharus Task Board API
// @version         1.0
// @description     API for the Pharus task board: kanban columns, tasks and direct messaging.

// @host      localhost:8080
// @BasePath  /

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

// @schemes http
func main() {
	cfg := config.Load()

	s, err := server.Init(cfg)
	if err != nil {
		log.Fatalf("❌ Server initialization failed: %v", err)
	}

	s.Run()
}
