package main

import (
	"log"

	"github.com/forumhq/backend/internal/config"
	"github.com/forumhq/backend/internal/database"
)

// Standalone admin seeding tool. The server seeds at startup too; this
// exists for provisioning a database before the first deploy.
func main() {
	cfg := config.Load()
	database.Connect(cfg)
	database.Migrate()

	admin, created, err := database.EnsureAdmin(database.DB, cfg)
	if err != nil {
		log.Fatal("Failed to seed admin:", err)
	}

	if created {
		log.Println("Admin user created:", admin.Username)
	} else {
		log.Println("Admin user already exists:", admin.Username)
	}
	log.Println("Email:", admin.Email)
}
