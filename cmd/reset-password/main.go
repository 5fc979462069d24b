package main

import (
	"flag"
	"log"
	"strings"

	"go-datamonitor/internal/config"
	"go-datamonitor/internal/repository"
	"go-datamonitor/pkg/database"
	"go-datamonitor/pkg/validator"

	"github.com/google/uuid"
)

func main() {
	cfg := config.Load()

	email := flag.String("email", cfg.AdminEmail, "account to reset")
	password := flag.String("password", cfg.AdminPassword, "new password")
	flag.Parse()

	if !validator.PasswordMeetsPolicy(*password) {
		log.Fatalf("Password must be at least 6 characters with a digit, a lowercase and an uppercase letter")
	}

	db := database.ConnectDB(cfg)
	users := repository.NewUserRepo(db)

	user, err := users.FindByEmail(strings.ToLower(strings.TrimSpace(*email)))
	if err != nil {
		log.Fatalf("User %s not found in database: %v", *email, err)
	}

	if err := user.SetPassword(*password); err != nil {
		log.Fatalf("Failed to hash password: %v", err)
	}
	if err := users.UpdatePassword(user.ID, user.Password); err != nil {
		log.Fatalf("Failed to update password in DB: %v", err)
	}
	// Clear lockout and end existing sessions.
	if err := users.UpdateLockout(user.ID, 0, nil); err != nil {
		log.Fatalf("Failed to clear lockout: %v", err)
	}
	if err := users.UpdateTokenVersion(user.ID, uuid.NewString()); err != nil {
		log.Fatalf("Failed to revoke sessions: %v", err)
	}

	log.Printf("Password for %s has been reset", user.Email)
}
