package git

import (
	"context"
	"strings"
	"testing"
)

func TestCloneRepository(t *testing.T) {
	originalRunGitCommand := runGitCommand
	defer func() {
		runGitCommand = originalRunGitCommand
	}()

	var gotArgs []string
	runGitCommand = func(ctx context.Context, dir string, args ...string) error {
		gotArgs = args
		return nil
	}

	tests := []struct {
		name    string
		opts    CloneOptions
		wantErr bool
	}{
		{
			name: "basic clone",
			opts: CloneOptions{
				RemoteURL: "https://github.com/test/repo.git",
				TargetDir: "testdata/repo",
				Token:     "test-token",
			},
			wantErr: false,
		},
		{
			name: "missing remote URL",
			opts: CloneOptions{
				TargetDir: "testdata/repo",
				Token:     "test-token",
			},
			wantErr: true,
		},
		{
			name: "missing target dir",
			opts: CloneOptions{
				RemoteURL: "https://github.com/test/repo.git",
				Token:     "test-token",
			},
			wantErr: true,
		},
		{
			name: "ssh URL rejected",
			opts: CloneOptions{
				RemoteURL: "git@github.com:test/repo.git",
				TargetDir: "testdata/repo",
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := CloneRepository(tt.opts)
			if (err != nil) != tt.wantErr {
				t.Errorf("CloneRepository() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}

	// Last successful run used a token; the clone URL must embed it.
	if len(gotArgs) != 3 || gotArgs[0] != "clone" {
		t.Fatalf("unexpected git args: %v", gotArgs)
	}
	if !strings.Contains(gotArgs[1], "test-token@github.com") {
		t.Errorf("clone URL missing embedded token: %s", gotArgs[1])
	}
}

func TestCloneRepositoryFailureCarriesDiagnostic(t *testing.T) {
	originalRunGitCommand := runGitCommand
	defer func() {
		runGitCommand = originalRunGitCommand
	}()

	runGitCommand = func(ctx context.Context, dir string, args ...string) error {
		return &mockError{msg: "fatal: repository not found"}
	}

	err := CloneRepository(CloneOptions{
		RemoteURL: "https://github.com/test/gone.git",
		TargetDir: "testdata/gone",
	})
	if err == nil {
		t.Fatal("expected error")
	}
	if !strings.Contains(err.Error(), "repository not found") {
		t.Errorf("diagnostic lost: %v", err)
	}
}

type mockError struct {
	msg string
}

func (e *mockError) Error() string {
	return e.msg
}
