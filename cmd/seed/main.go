package main

import (
	"database/sql"
	"fmt"
	"log"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/joho/godotenv"

	"github.com/ericgalbarn/CinemaSignUpLogin/config"
	"github.com/ericgalbarn/CinemaSignUpLogin/internal/domain/entity"
	"github.com/ericgalbarn/CinemaSignUpLogin/pkg/helpers"
)

func main() {
	_ = godotenv.Load()
	cfg := config.Load()

	db, err := sql.Open("pgx", cfg.PostgresDSN())
	if err != nil {
		log.Fatalf("failed to open db: %v", err)
	}
	defer func() { _ = db.Close() }()

	email := "demo@cinema.local"
	password := "password123"
	hash, err := helpers.HashPassword(password)
	if err != nil {
		log.Fatalf("failed to hash password: %v", err)
	}

	dob, _ := time.Parse("2006-01-02", "1995-04-23")

	var id string
	err = db.QueryRow(`
		INSERT INTO users (first_name, last_name, email, phone, date_of_birth, sex, address, account_type, password_hash)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		ON CONFLICT (email) DO UPDATE SET updated_at = now()
		RETURNING id
	`, "Demo", "User", email, "0123456789", dob, "other", "1 Demo Street", entity.AccountTypeUser, hash).Scan(&id)
	if err != nil {
		log.Fatalf("failed to seed user: %v", err)
	}
	fmt.Printf("seeded user: id=%s email=%s password=%s\n", id, email, password)
}
