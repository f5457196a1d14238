package main

import (
	"database/sql"
	"fmt"
	"log"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/joho/godotenv"

	"github.com/KhalidTheCoder/scarlet-aid-server/config"
	"github.com/KhalidTheCoder/scarlet-aid-server/pkg/identity"
)

func main() {
	_ = godotenv.Load()
	cfg := config.Load()

	db, err := sql.Open("pgx", cfg.PostgresDSN())
	if err != nil {
		log.Fatalf("failed to open db: %v", err)
	}
	defer func() { _ = db.Close() }()

	email := "admin@scarletaid.local"
	name := "Scarlet Aid Admin"

	var id string
	err = db.QueryRow(`
		INSERT INTO users (name, email, role, status, blood_group, district, upazila)
		VALUES ($1, $2, 'admin', 'active', 'O+', 'Dhaka', 'Dhanmondi')
		ON CONFLICT (email) DO UPDATE SET role='admin', status='active'
		RETURNING id
	`, name, email).Scan(&id)
	if err != nil {
		log.Fatalf("failed to seed admin user: %v", err)
	}
	fmt.Printf("seeded admin: id=%s email=%s\n", id, email)

	// Issue a development bearer token for the seeded admin
	tm := identity.NewTokenManager(cfg.TokenSecret, cfg.TokenTTL)
	token, exp, err := tm.Issue(email, name)
	if err != nil {
		log.Fatalf("failed to issue token: %v", err)
	}
	fmt.Printf("bearer token (expires %s):\n%s\n", exp.Format("2006-01-02 15:04:05"), token)
}
