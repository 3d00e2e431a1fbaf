package session

import (
	"context"
	"errors"
	"os"
	"path/filepath"

	"github.com/UnityEssentials/go-upmtools/internal/catalog"
	"github.com/UnityEssentials/go-upmtools/internal/git"
	"github.com/UnityEssentials/go-upmtools/internal/scaffold"
	"github.com/UnityEssentials/go-upmtools/internal/urlutils"
)

// Outcome is the per-repository result of a clone batch
type Outcome int

const (
	// OutcomeCloned means the repository was cloned (and LFS content pulled
	// where required).
	OutcomeCloned Outcome = iota

	// OutcomeSkippedExisting means the local folder already existed and no
	// clone subprocess was launched.
	OutcomeSkippedExisting

	// OutcomeFailedClone means the clone subprocess failed.
	OutcomeFailedClone

	// OutcomeFailedLFS means the clone succeeded but the required LFS pull
	// failed for a reason other than the extension being absent.
	OutcomeFailedLFS
)

func (o Outcome) String() string {
	switch o {
	case OutcomeCloned:
		return "cloned"
	case OutcomeSkippedExisting:
		return "skipped (exists)"
	case OutcomeFailedClone:
		return "clone failed"
	case OutcomeFailedLFS:
		return "lfs failed"
	default:
		return "unknown"
	}
}

// Result records the outcome for one repository of a batch
type Result struct {
	Identifier catalog.Identifier
	Outcome    Outcome
	Detail     string
}

// Options configures the post-clone scaffolding steps of a batch
type Options struct {
	OrganizationName  string
	AuthorName        string
	UnityVersion      string
	Description       string
	DependencyName    string
	DependencyVersion string
	ExcludeSubstring  string
	TemplateDir       string

	CreateAssemblyDefinition bool
	CreatePackageManifest    bool
	CopyTemplateFiles        bool
}

// Stubbed in tests
var (
	cloneRepository = git.CloneRepository
	usesLFS         = git.UsesLFS
	lfsPull         = git.LFSPull
)

// CloneSelected runs the clone-and-scaffold pipeline for each identifier,
// strictly one at a time and in the order given. One Result is returned per
// input identifier, always: a failure never aborts the batch, and post-clone
// scaffolding failures never downgrade a successful clone's outcome.
func (s *Session) CloneSelected(ctx context.Context, ids []catalog.Identifier, opts Options) ([]Result, error) {
	s.mu.Lock()
	if s.busy {
		s.mu.Unlock()
		return nil, ErrBusy
	}
	if s.credential.Value == "" {
		s.mu.Unlock()
		return nil, ErrNoCredential
	}
	s.busy = true
	prev := s.state
	s.state = StateCloning
	tokenValue := s.credential.Value
	targetDir := s.targetDir
	s.mu.Unlock()

	defer func() {
		s.mu.Lock()
		s.busy = false
		s.state = prev
		s.mu.Unlock()
	}()

	s.tracker.Start("clone batch", len(ids))

	results := make([]Result, 0, len(ids))
	for _, id := range ids {
		s.tracker.Step(id.String())
		result := s.cloneOne(ctx, id, tokenValue, targetDir, opts)
		switch result.Outcome {
		case OutcomeCloned:
			s.tracker.Done(id.String())
		case OutcomeSkippedExisting:
			s.tracker.Warn(id.String(), "already exists, skipped")
		default:
			s.tracker.Fail(id.String(), errorFor(result))
		}
		results = append(results, result)
	}

	s.tracker.Complete()
	return results, nil
}

func errorFor(r Result) error {
	return errors.New(r.Detail)
}

// cloneOne runs the full pipeline for a single repository. Every failure is
// captured in the returned Result rather than propagated.
func (s *Session) cloneOne(ctx context.Context, id catalog.Identifier, tokenValue, targetDir string, opts Options) Result {
	localPath := filepath.Join(targetDir, id.FolderName())

	if _, err := os.Stat(localPath); err == nil {
		return Result{Identifier: id, Outcome: OutcomeSkippedExisting}
	}

	err := cloneRepository(git.CloneOptions{
		RemoteURL: urlutils.CloneURL(id.Owner, id.Name),
		TargetDir: localPath,
		Token:     tokenValue,
		Context:   ctx,
	})
	if err != nil {
		return Result{Identifier: id, Outcome: OutcomeFailedClone, Detail: err.Error()}
	}

	if usesLFS(localPath) {
		if err := lfsPull(ctx, localPath); err != nil {
			if errors.Is(err, git.ErrLFSNotInstalled) {
				// The plain clone stands; large files stay as pointers.
				s.tracker.Warn(id.String(), "git lfs is not installed, skipping lfs pull")
			} else {
				return Result{Identifier: id, Outcome: OutcomeFailedLFS, Detail: err.Error()}
			}
		}
	}

	s.runPostSteps(id, localPath, opts)

	return Result{Identifier: id, Outcome: OutcomeCloned}
}

// runPostSteps performs the independent best-effort scaffolding steps. Each
// is individually wrapped: a failure in one is logged and never blocks the
// others or downgrades the clone outcome.
func (s *Session) runPostSteps(id catalog.Identifier, localPath string, opts Options) {
	if err := scaffold.RenameLicense(localPath); err != nil {
		s.tracker.Warn(id.String(), err.Error())
	}

	packageName := scaffold.PackageName(id.FolderName(), opts.ExcludeSubstring)

	if opts.CreateAssemblyDefinition {
		def := scaffold.NewAssemblyDefinition(
			scaffold.LogicalName(opts.OrganizationName, packageName), "")
		if err := scaffold.WriteAssemblyDefinition(localPath, def); err != nil {
			s.tracker.Warn(id.String(), err.Error())
		}
	}

	if opts.CreatePackageManifest {
		manifest := scaffold.NewPackageManifest(scaffold.ManifestConfig{
			PackageName:       packageName,
			OrganizationName:  opts.OrganizationName,
			AuthorName:        opts.AuthorName,
			UnityVersion:      opts.UnityVersion,
			Description:       opts.Description,
			DependencyName:    opts.DependencyName,
			DependencyVersion: opts.DependencyVersion,
		})
		if err := scaffold.WritePackageManifest(localPath, manifest); err != nil {
			s.tracker.Warn(id.String(), err.Error())
		}
	}

	if opts.CopyTemplateFiles {
		if err := scaffold.CopyTemplates(opts.TemplateDir, localPath); err != nil {
			s.tracker.Warn(id.String(), err.Error())
		}
	}
}
