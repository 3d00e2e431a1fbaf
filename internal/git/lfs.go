package git

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	"github.com/UnityEssentials/go-upmtools/internal/errors"
)

const (
	defaultLFSTimeout = 10 * time.Minute

	// lfsMarker is the .gitattributes substring indicating large-file-storage
	// usage in a freshly cloned repository.
	lfsMarker = "filter=lfs"

	// lfsMissingMarker appears in git's stderr when the lfs extension is not
	// installed. That case downgrades to a warning: the plain clone stands.
	lfsMissingMarker = "'lfs' is not a git command"
)

// ErrLFSNotInstalled indicates the git lfs extension is absent on this machine.
// Its operation name is distinct from ordinary pull failures so errors.Is can
// tell the two cases apart.
var ErrLFSNotInstalled = errors.New("lfs-missing", fmt.Errorf("git lfs is not installed"))

// UsesLFS reports whether the repository at repoDir declares LFS-tracked
// content in its root .gitattributes. A missing file means no LFS, not an
// error.
func UsesLFS(repoDir string) bool {
	data, err := os.ReadFile(filepath.Join(repoDir, ".gitattributes"))
	if err != nil {
		return false
	}
	return strings.Contains(string(data), lfsMarker)
}

// LFSPull runs "git lfs pull" in the repository's working directory.
// Returns ErrLFSNotInstalled when the lfs extension itself is absent; any
// other failure is returned with the captured diagnostic.
func LFSPull(ctx context.Context, repoDir string) error {
	if ctx == nil {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(context.Background(), defaultLFSTimeout)
		defer cancel()
	}

	if err := runLFSCommand(ctx, repoDir, "lfs", "pull"); err != nil {
		if strings.Contains(err.Error(), lfsMissingMarker) {
			return ErrLFSNotInstalled
		}
		return errors.New("lfs-pull", err)
	}
	return nil
}

// runLFSCommand is a variable so it can be stubbed in tests
var runLFSCommand = func(ctx context.Context, dir string, args ...string) error {
	cmd := exec.CommandContext(ctx, "git", args...)
	cmd.Dir = dir

	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	cmd.Env = append(os.Environ(), "GIT_TERMINAL_PROMPT=0")

	if err := cmd.Run(); err != nil {
		detail := strings.TrimSpace(stderr.String())
		if detail == "" {
			detail = err.Error()
		}
		return fmt.Errorf("git %s failed: %s", strings.Join(args, " "), detail)
	}
	return nil
}
