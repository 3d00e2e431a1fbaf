// Package main provides the upmsync CLI for listing a user's GitHub
// repositories and cloning a selection of them into a Unity project's
// packages directory, with post-clone scaffolding.
package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/UnityEssentials/go-upmtools/internal/config"
	"github.com/UnityEssentials/go-upmtools/internal/github"
	"github.com/UnityEssentials/go-upmtools/internal/progress"
	"github.com/UnityEssentials/go-upmtools/internal/session"
	"github.com/UnityEssentials/go-upmtools/internal/token"
)

var (
	configPath string
	tokenFlag  string
	targetDir  string
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "upmsync",
		Short: "Sync GitHub repositories into a Unity project's packages directory",
		Long: `A tool for listing a user's GitHub repositories and cloning a selection
of them into a Unity project, then scaffolding assembly definitions,
package manifests and template files.

Authentication uses a GitHub token stored via upmtoken, the UPM_TOKEN_GITHUB
environment variable, or the --token flag.`,
		SilenceUsage: true,
	}

	rootCmd.PersistentFlags().StringVar(&configPath, "config", config.DefaultConfigFile, "Path to the configuration file")
	rootCmd.PersistentFlags().StringVar(&tokenFlag, "token", "", "GitHub token (overrides stored credential)")
	rootCmd.PersistentFlags().StringVar(&targetDir, "dir", "", "Target directory to clone into (overrides config)")

	rootCmd.AddCommand(newListCmd())
	rootCmd.AddCommand(newCloneCmd())
	rootCmd.AddCommand(newConfigCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// loadConfig loads the configuration file and applies flag overrides.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}
	if targetDir != "" {
		cfg.TargetDir = targetDir
	}
	return cfg, nil
}

// newSession builds an authenticated session over the stored credential or
// the --token flag.
func newSession(ctx context.Context, cfg *config.Config, tracker progress.Tracker) (*session.Session, error) {
	storage := token.NewEnvStorage()

	var cred token.Token
	if tokenFlag != "" {
		t, err := token.NewToken(tokenFlag, time.Time{}, "")
		if err != nil {
			return nil, err
		}
		cred = *t
	} else {
		stored, err := storage.Retrieve(ctx, token.KeyGitHub)
		if err != nil {
			if err == token.ErrTokenNotFound {
				return nil, fmt.Errorf("no GitHub token found: run 'upmtoken setup' or pass --token")
			}
			return nil, err
		}
		cred = stored
	}

	client := github.NewClient(&cred)
	sess := session.New(storage, client, tracker, cfg.TargetDir)
	sess.SetCredential(cred)
	return sess, nil
}
