// Package main provides the upmtoken CLI for setting up, validating and
// clearing the GitHub credential used by upmsync.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/UnityEssentials/go-upmtools/internal/github"
	"github.com/UnityEssentials/go-upmtools/internal/token"
)

var (
	value          string
	expires        string
	tokenFile      string
	nonInteractive bool
	skipValidation bool
	osExit         = os.Exit // For testing purposes
)

// Environment variable names for non-interactive mode
const (
	EnvTokenValue  = "UPM_TOKEN_VALUE"
	EnvTokenExpiry = "UPM_TOKEN_EXPIRY"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "upmtoken",
		Short: "Manage the GitHub authentication token for upmsync",
		Long: `A tool for managing the GitHub authentication token.
Supports token setup, validation, and clearing stored credentials.`,
	}

	setupCmd := &cobra.Command{
		Use:   "setup",
		Short: "Set up a new GitHub authentication token",
		Long: `Validates a GitHub token against the API and stores it for upmsync.
Replaces any previously stored token.`,
		Run: setupToken,
	}

	setupCmd.Flags().StringVarP(&value, "token", "t", "", "Token value")
	setupCmd.Flags().StringVarP(&expires, "expires", "e", "", "Token expiration (e.g., 30d, 1y)")
	setupCmd.Flags().StringVarP(&tokenFile, "token-file", "f", "", "File containing the token value")
	setupCmd.Flags().BoolVarP(&nonInteractive, "non-interactive", "n", false, "Run in non-interactive mode")
	setupCmd.Flags().BoolVar(&skipValidation, "skip-validation", false, "Store the token without validating it against the API")

	clearCmd := &cobra.Command{
		Use:   "clear",
		Short: "Remove the stored GitHub token",
		Run: func(cmd *cobra.Command, args []string) {
			storage := token.NewEnvStorage()
			if err := storage.Delete(context.Background(), token.KeyGitHub); err != nil {
				fmt.Printf("Error clearing token: %v\n", err)
				osExit(1)
			}
			fmt.Println("Stored GitHub token cleared.")
		},
	}

	rootCmd.AddCommand(setupCmd)
	rootCmd.AddCommand(clearCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		osExit(1)
	}
}

func setupToken(cmd *cobra.Command, args []string) {
	ctx := context.Background()

	if nonInteractive {
		loadFromEnv()
	}

	if tokenFile != "" {
		if err := loadTokenFromFile(); err != nil {
			fmt.Printf("Error loading token from file: %v\n", err)
			osExit(1)
		}
		if err := checkFilePermissions(tokenFile); err != nil {
			fmt.Printf("Warning: %v\n", err)
		}
	}

	if value == "" && !nonInteractive {
		value = promptForToken()
	}

	if value == "" {
		fmt.Println("Error: no token provided")
		osExit(1)
	}

	var expiresAt time.Time
	if expires != "" {
		duration, err := parseDuration(expires)
		if err != nil {
			fmt.Printf("Error parsing expiration: %v\n", err)
			osExit(1)
		}
		expiresAt = time.Now().Add(duration)
	}

	newToken, err := token.NewToken(value, expiresAt, "")
	if err != nil {
		if errors.Is(err, token.ErrTokenInvalid) {
			fmt.Println("Error: Invalid token format")
		} else {
			fmt.Printf("Error creating token: %v\n", err)
		}
		osExit(1)
	}

	if !skipValidation {
		validator := github.NewTokenValidator()
		if err := validator.Validate(ctx, newToken); err != nil {
			if errors.Is(err, token.ErrTokenExpired) {
				fmt.Println("Error: GitHub token has expired. Please provide a new token")
			} else {
				fmt.Printf("Error validating GitHub token: %v\n", err)
			}
			osExit(1)
		}
	}

	// Change-token semantics: any previously stored credential is removed
	// before the replacement is written.
	envStorage := token.NewEnvStorage()
	_ = envStorage.Delete(ctx, token.KeyGitHub)
	if err := envStorage.Store(ctx, token.KeyGitHub, *newToken); err != nil {
		if errors.Is(err, token.ErrStorageUnavailable) {
			fmt.Println("Error: Unable to access token storage. Please check environment permissions")
		} else {
			fmt.Printf("Error storing token: %v\n", err)
		}
		osExit(1)
	}

	fmt.Println("\nSuccessfully configured GitHub token!")
	if newToken.Scope != "" {
		fmt.Printf("Scopes: %s\n", newToken.Scope)
	}
	if !newToken.ExpiresAt.IsZero() {
		fmt.Printf("Expires: %s\n", newToken.ExpiresAt.Format("January 2, 2006 at 3:04 PM MST"))
		daysUntilExpiry := time.Until(newToken.ExpiresAt).Hours() / 24
		if daysUntilExpiry < 7 {
			fmt.Printf("\nWarning: Token will expire in %.0f days\n", daysUntilExpiry)
		}
	} else {
		fmt.Println("Expires: Never")
	}

	fmt.Printf("\nEnvironment variable set: %s%s\n", token.EnvPrefix, token.KeyGitHub)
}

// promptForToken reads the token from stdin with a 30-second timeout
func promptForToken() string {
	fmt.Print("\nPlease enter your GitHub token: ")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	tokenCh := make(chan string)
	go func() {
		var input string
		fmt.Scanln(&input)
		tokenCh <- input
	}()

	select {
	case input := <-tokenCh:
		return input
	case <-ctx.Done():
		fmt.Println("\nTimeout: No token provided within 30 seconds")
		osExit(1)
	}
	return ""
}

// loadFromEnv loads token configuration from environment variables
func loadFromEnv() {
	if envToken := os.Getenv(EnvTokenValue); envToken != "" && value == "" {
		value = envToken
	}
	if envExpiry := os.Getenv(EnvTokenExpiry); envExpiry != "" && expires == "" {
		expires = envExpiry
	}
}

// loadTokenFromFile loads the token value from a file
func loadTokenFromFile() error {
	data, err := os.ReadFile(tokenFile)
	if err != nil {
		return fmt.Errorf("failed to read token file: %w", err)
	}
	value = strings.TrimSpace(string(data))
	return nil
}

// checkFilePermissions verifies that the token file has secure permissions
func checkFilePermissions(filepath string) error {
	info, err := os.Stat(filepath)
	if err != nil {
		return fmt.Errorf("failed to check file permissions: %w", err)
	}

	mode := info.Mode()
	if mode&0077 != 0 {
		return fmt.Errorf("token file has insecure permissions. Please run: chmod 600 %s", filepath)
	}

	return nil
}

// parseDuration parses durations like "30d" and "1y" on top of the standard
// time.ParseDuration forms.
func parseDuration(s string) (time.Duration, error) {
	if strings.HasSuffix(s, "y") {
		years, err := strconv.Atoi(strings.TrimSuffix(s, "y"))
		if err != nil {
			return 0, fmt.Errorf("invalid year duration %q", s)
		}
		return time.Duration(years) * 365 * 24 * time.Hour, nil
	}
	if strings.HasSuffix(s, "d") {
		days, err := strconv.Atoi(strings.TrimSuffix(s, "d"))
		if err != nil {
			return 0, fmt.Errorf("invalid day duration %q", s)
		}
		return time.Duration(days) * 24 * time.Hour, nil
	}
	return time.ParseDuration(s)
}
