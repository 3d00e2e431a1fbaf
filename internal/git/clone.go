package git

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/exec"
	"strings"
	"time"

	"github.com/UnityEssentials/go-upmtools/internal/errors"
	"github.com/UnityEssentials/go-upmtools/internal/urlutils"
)

const (
	defaultCloneTimeout = 10 * time.Minute
)

// CloneOptions contains configuration for cloning a single repository
type CloneOptions struct {
	RemoteURL string // HTTPS remote URL, without credentials
	TargetDir string // Local path to clone into
	Token     string // Token for HTTPS authentication, embedded into the URL
	Context   context.Context
}

// CloneRepository clones a remote repository into the target directory.
// The token is embedded into the clone URL per the hosting convention.
// Captured stderr is attached to the returned error so failures can be
// recorded against the individual repository without aborting a batch.
func CloneRepository(opts CloneOptions) error {
	ctx := opts.Context
	if ctx == nil {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(context.Background(), defaultCloneTimeout)
		defer cancel()
	}

	if opts.RemoteURL == "" {
		return errors.New("clone", fmt.Errorf("remote URL must be specified"))
	}
	if opts.TargetDir == "" {
		return errors.New("clone", fmt.Errorf("target directory must be specified"))
	}

	cloneURL := opts.RemoteURL
	// file:// URLs are used in tests and take no credential
	if !strings.HasPrefix(cloneURL, "file://") {
		parsedURL, err := urlutils.ParseHTTPSURL(cloneURL)
		if err != nil {
			return errors.New("clone", fmt.Errorf("invalid remote URL: %w", err))
		}
		if opts.Token != "" {
			tokenURL, err := urlutils.FormatTokenURL(parsedURL, opts.Token)
			if err != nil {
				return errors.New("clone", fmt.Errorf("failed to format URL with token: %w", err))
			}
			cloneURL = tokenURL.String() + ".git"
		}
	}

	if err := runGitCommand(ctx, "", "clone", cloneURL, opts.TargetDir); err != nil {
		return errors.New("clone", err)
	}
	return nil
}

// runGitCommand is a variable so it can be stubbed in tests. It runs git with
// the given working directory and arguments, capturing stderr so diagnostics
// can be attached to per-repository outcomes. Any credential embedded in the
// arguments is redacted from the returned error.
var runGitCommand = func(ctx context.Context, dir string, args ...string) error {
	cmd := exec.CommandContext(ctx, "git", args...)
	cmd.Dir = dir

	var stderr bytes.Buffer
	cmd.Stdout = nil
	cmd.Stderr = &stderr

	cmd.Env = append(os.Environ(), "GIT_TERMINAL_PROMPT=0", "GIT_ASKPASS=")

	if err := cmd.Run(); err != nil {
		detail := strings.TrimSpace(stderr.String())
		if detail == "" {
			detail = err.Error()
		}
		return fmt.Errorf("git %s failed: %s", args[0], redactArgs(detail, args))
	}
	return nil
}

// redactArgs strips credentials that may have leaked into the diagnostic via
// the command's own echo of its URL arguments.
func redactArgs(detail string, args []string) string {
	for _, arg := range args {
		if strings.HasPrefix(arg, "https://") && strings.Contains(arg, "@") {
			detail = strings.ReplaceAll(detail, arg, urlutils.Redact(arg))
		}
	}
	return detail
}
