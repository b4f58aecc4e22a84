package main

import (
	"context"
	"flag"
	"log"
	"os"

	"github.com/joho/godotenv"

	"github.com/jennilaluyan/connect-in-backend/internal/common"
	"github.com/jennilaluyan/connect-in-backend/internal/config"
	"github.com/jennilaluyan/connect-in-backend/internal/database"
	"github.com/jennilaluyan/connect-in-backend/internal/domain/identity"
	"github.com/jennilaluyan/connect-in-backend/internal/repository/postgres"
	"github.com/jennilaluyan/connect-in-backend/internal/security"
)

// createadmin seeds the super-admin account. It is idempotent: an existing
// account with the same email is left untouched.
func main() {
	_ = godotenv.Load()
	name := flag.String("name", envOr("ADMIN_NAME", "Super Admin"), "admin display name")
	email := flag.String("email", os.Getenv("ADMIN_EMAIL"), "admin email")
	password := flag.String("password", os.Getenv("ADMIN_PASSWORD"), "admin password")
	flag.Parse()

	if *email == "" || *password == "" {
		log.Fatal("email and password are required (flags or ADMIN_EMAIL/ADMIN_PASSWORD)")
	}
	if len(*password) < 8 {
		log.Fatal("password must be at least 8 characters")
	}

	cfg := config.Load()
	db := database.NewPostgres(database.PostgresConfig{
		DSN:             cfg.PostgresDSN,
		MaxOpenConns:    2,
		MaxIdleConns:    1,
		ConnMaxIdle:     cfg.DBConnMaxIdle,
		ConnMaxLifetime: cfg.DBConnMaxLife,
	})
	defer db.Close()

	ctx := context.Background()
	if err := database.Apply(ctx, db); err != nil {
		log.Fatalf("failed to apply migrations: %v", err)
	}

	repo := postgres.NewIdentityRepository(db)
	if existing, err := repo.GetByEmail(ctx, *email); err == nil {
		log.Printf("admin account already exists: %s (%s)", existing.Email, existing.ID)
		return
	} else if !common.Is(err, common.CodeNotFound) {
		log.Fatalf("failed to check existing account: %v", err)
	}

	hasher := security.NewPasswordHasher(cfg.BcryptCost)
	hash, err := hasher.Hash(*password)
	if err != nil {
		log.Fatalf("failed to hash password: %v", err)
	}

	created, err := repo.Create(ctx, identity.Identity{
		Name:         *name,
		Email:        *email,
		PasswordHash: hash,
		Role:         identity.RoleAdmin,
		Approved:     true,
	})
	if err != nil {
		log.Fatalf("failed to create admin: %v", err)
	}
	log.Printf("admin account created: %s (%s)", created.Email, created.ID)
}

func envOr(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
