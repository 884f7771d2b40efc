// Command setupadmin creates the initial reviewer account. It is meant to
// be run once after the database schema is in place:
//
//	go run ./cmd/setupadmin -email admin@example.com -password changeme
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/asbbic/membership/internal/config"
	"github.com/asbbic/membership/internal/repository"
	"github.com/asbbic/membership/pkg/database"
	"github.com/asbbic/membership/pkg/token"
	"golang.org/x/crypto/bcrypt"
)

func main() {
	email := flag.String("email", "", "email address for the reviewer account")
	password := flag.String("password", "", "initial password")
	flag.Parse()

	if err := run(*email, *password); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(email, password string) error {
	if email == "" || password == "" {
		return fmt.Errorf("both -email and -password are required")
	}

	cfg := config.New()

	db, cleanup, err := database.New(cfg.Database.URL)
	if err != nil {
		return err
	}
	defer cleanup()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	userRepo := repository.NewUserRepository(db.DB)

	exists, err := userRepo.Exists(ctx, repository.UserRepositoryFilter{Email: &email})
	if err != nil {
		return err
	}
	if exists {
		fmt.Printf("Reviewer account %s already exists\n", email)
		return nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	user, err := userRepo.Create(ctx, &repository.User{
		Email:        email,
		PasswordHash: string(hash),
		Role:         token.RoleAdmin,
	})
	if err != nil {
		return err
	}

	fmt.Printf("Reviewer account created: %s (%s)\n", user.Email, user.ID)
	fmt.Println("Change the initial password after first login.")
	return nil
}
