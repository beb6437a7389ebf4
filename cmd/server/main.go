package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"

	"golang.org/x/term"

	"github.com/faithingod1/parish-record/internal/auth"
	"github.com/faithingod1/parish-record/internal/config"
	"github.com/faithingod1/parish-record/internal/server"
	"github.com/faithingod1/parish-record/internal/server/storage/sqlite"
	"github.com/faithingod1/parish-record/internal/validation"
)

var (
	// Version information set via ldflags during build
	Version   = "dev"
	BuildDate = "unknown"
	GitCommit = "unknown"
)

func main() {
	showVersion := flag.Bool("version", false, "Show version information")
	resetPassword := flag.Bool("reset-password", false, "Interactively set a new password for a user and exit")
	resetUser := flag.String("reset-user", auth.DefaultAdminUsername, "Username for -reset-password")

	cfg := config.Load()
	cfg.RegisterFlags(flag.CommandLine)
	flag.Parse()

	if *showVersion {
		printVersion()
		os.Exit(0)
	}

	if *resetPassword {
		if err := runResetPassword(cfg, *resetUser); err != nil {
			fmt.Fprintf(os.Stderr, "reset password failed: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Password updated for %q\n", *resetUser)
		os.Exit(0)
	}

	ctx := context.Background()

	app, err := server.NewApp(ctx, cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to start: %v\n", err)
		os.Exit(1)
	}

	if err := app.Run(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "server failed: %v\n", err)
		os.Exit(1)
	}
}

// runResetPassword prompts for a new password on the terminal (no
// echo) and stores a fresh hash for the named user.
func runResetPassword(cfg *config.Config, username string) error {
	ctx := context.Background()

	if err := validation.ValidateUsername(username); err != nil {
		return err
	}

	password, err := promptPassword("New password: ")
	if err != nil {
		return err
	}
	if err := validation.ValidatePassword(password); err != nil {
		return err
	}

	confirm, err := promptPassword("Confirm password: ")
	if err != nil {
		return err
	}
	if password != confirm {
		return fmt.Errorf("passwords do not match")
	}

	store, err := sqlite.New(ctx, cfg.DatabasePath)
	if err != nil {
		return fmt.Errorf("failed to open record store: %w", err)
	}
	defer store.Close()

	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))
	credentials := auth.NewCredentials(logger, store)

	if err := credentials.Bootstrap(ctx); err != nil {
		return err
	}

	return credentials.ResetPassword(ctx, username, password)
}

// promptPassword reads a password from the terminal without echoing
func promptPassword(prompt string) (string, error) {
	fmt.Print(prompt)
	password, err := term.ReadPassword(int(os.Stdin.Fd()))
	fmt.Println()
	if err != nil {
		return "", fmt.Errorf("failed to read password: %w", err)
	}
	return string(password), nil
}

func printVersion() {
	fmt.Printf("parish-record server\n")
	fmt.Printf("Version:    %s\n", Version)
	fmt.Printf("Build Date: %s\n", BuildDate)
	fmt.Printf("Git Commit: %s\n", GitCommit)
}
