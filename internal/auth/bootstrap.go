package auth

import (
	"context"
	"fmt"
	"log"

	"github.com/commhendrix/academic-portfolio/internal/models"
)

// Seed credential for the distinguished administrator account. Created
// once at startup when absent; the password should be rotated after the
// first login.
const (
	adminUsername = "admin"
	adminEmail    = "hendrixmathsmtk@outlook.com"
	adminPassword = "040313"
)

// EnsureAdminExists creates the admin account if no user named "admin"
// is stored yet. Idempotent; called exactly once during process startup.
func EnsureAdminExists(ctx context.Context, users UserStore) error {
	existing, err := users.GetUserByUsername(ctx, adminUsername)
	if err != nil {
		return fmt.Errorf("look up admin: %w", err)
	}
	if existing != nil {
		return nil
	}

	hashed, err := HashPassword(adminPassword)
	if err != nil {
		return fmt.Errorf("hash admin password: %w", err)
	}
	if _, err := users.CreateUser(ctx, adminUsername, adminEmail, hashed, models.RoleAdmin); err != nil {
		return fmt.Errorf("create admin: %w", err)
	}
	log.Println("admin account created")
	return nil
}
