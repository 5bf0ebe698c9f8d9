package main

import (
	"fmt"
	"log"
	"os"

	"github.com/campuscms/internal/config"
	"github.com/campuscms/internal/db"
	"golang.org/x/crypto/bcrypt"
)

// Creates the initial admin account for a fresh deployment.
func main() {
	cfg := config.Load()
	if err := db.Init(cfg.DatabasePath); err != nil {
		log.Fatalf("failed to initialize database: %v", err)
	}

	username := cfg.AdminUsername
	if username == "" {
		username = "admin"
	}
	password := cfg.AdminPassword
	if password == "" {
		fmt.Println("ADMIN_PASSWORD is not set")
		os.Exit(1)
	}

	var count int64
	db.DB.Model(&db.User{}).Where("username = ?", username).Count(&count)
	if count > 0 {
		fmt.Printf("user %q already exists\n", username)
		return
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		log.Fatalf("failed to hash password: %v", err)
	}

	if err := db.DB.Create(&db.User{Username: username, Password: string(hashed)}).Error; err != nil {
		log.Fatalf("failed to create user: %v", err)
	}

	fmt.Printf("admin user %q created\n", username)
}
