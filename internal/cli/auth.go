package cli

import (
	"context"
	"fmt"

	"stocktrack/internal/common"
	"stocktrack/internal/session"
)

// Login prompts for credentials and authenticates the session.
func (a *App) Login(ctx context.Context) error {
	email, err := GetSimpleText(a.reader, "Enter email:", a.out)
	if err != nil {
		return fmt.Errorf("read email: %w", err)
	}

	password, err := GetPassword(a.out)
	if err != nil {
		return fmt.Errorf("read password: %w", err)
	}
	defer common.WipeByteArray(password)

	return a.session.Login(ctx, email, string(password))
}

// Register prompts for a new account profile and authenticates the session.
func (a *App) Register(ctx context.Context) error {
	name, err := GetSimpleText(a.reader, "Enter name:", a.out)
	if err != nil {
		return fmt.Errorf("read name: %w", err)
	}

	email, err := GetSimpleText(a.reader, "Enter email:", a.out)
	if err != nil {
		return fmt.Errorf("read email: %w", err)
	}

	password, err := GetPassword(a.out)
	if err != nil {
		return fmt.Errorf("read password: %w", err)
	}
	defer common.WipeByteArray(password)

	return a.session.Register(ctx, session.Profile{
		Name:     name,
		Email:    email,
		Password: string(password),
	})
}

// Logout tears the session down and drops all cached product state.
func (a *App) Logout(ctx context.Context) error {
	a.session.Logout(ctx)
	a.store.Reset()
	return nil
}
