// SPDX-License-Identifier: AGPL-3.0-only
package cli

import (
	"context"
	"errors"
	"fmt"
	"log"
	"syscall"

	"github.com/fluffyriot/xpost/internal/authhelp"
	"github.com/fluffyriot/xpost/internal/store"
	"github.com/google/uuid"
	"golang.org/x/term"
)

var ErrUsernameRequired = errors.New("--username is required")

type UserAdmin interface {
	Create(ctx context.Context, username, passwordHash string) (store.User, error)
	GetByUsername(ctx context.Context, username string) (store.User, error)
	UpdatePassword(ctx context.Context, id uuid.UUID, passwordHash string) error
}

// CreateUser validates and hashes password and stores a new user.
func CreateUser(ctx context.Context, users UserAdmin, username, password string) (store.User, error) {
	if username == "" {
		return store.User{}, ErrUsernameRequired
	}

	hash, err := hashValidated(password)
	if err != nil {
		return store.User{}, err
	}

	return users.Create(ctx, username, hash)
}

func ResetPassword(ctx context.Context, users UserAdmin, username, password string) error {
	if username == "" {
		return ErrUsernameRequired
	}

	user, err := users.GetByUsername(ctx, username)
	if err != nil {
		return fmt.Errorf("user '%s': %w", username, err)
	}

	hash, err := hashValidated(password)
	if err != nil {
		return err
	}

	return users.UpdatePassword(ctx, user.ID, hash)
}

func HandleCreateUser(users UserAdmin, username string) {
	if username == "" {
		log.Fatal(ErrUsernameRequired)
	}

	password := promptPassword(fmt.Sprintf("Enter password for new user '%s': ", username))

	user, err := CreateUser(context.Background(), users, username, password)
	if err != nil {
		log.Fatalf("Failed to create user: %v", err)
	}

	fmt.Printf("User '%s' created with id %s\n", user.Username, user.ID)
}

func HandleResetPassword(users UserAdmin, username string) {
	if username == "" {
		log.Fatal(ErrUsernameRequired)
	}

	password := promptPassword(fmt.Sprintf("Enter new password for '%s': ", username))

	if err := ResetPassword(context.Background(), users, username, password); err != nil {
		log.Fatalf("Failed to update password: %v", err)
	}

	fmt.Println("Password updated successfully.")
}

func promptPassword(prompt string) string {
	fmt.Print(prompt)
	bytePassword, err := term.ReadPassword(int(syscall.Stdin))
	if err != nil {
		log.Fatalf("\nFailed to read password: %v", err)
	}
	fmt.Println()

	return string(bytePassword)
}

func hashValidated(password string) (string, error) {
	if err := authhelp.ValidatePasswordStrength(password); err != nil {
		return "", err
	}

	hash, err := authhelp.HashPassword(password)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return hash, nil
}
