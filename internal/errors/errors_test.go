package errors

import (
	"errors"
	"fmt"
	"strings"
	"testing"
)

func TestAppError_WithError(t *testing.T) {
	baseErr := errors.New("original error")
	appErr := ErrGetCommits.WithError(baseErr)

	if appErr.Err != baseErr {
		t.Errorf("Expected underlying error to be %v, got %v", baseErr, appErr.Err)
	}

	if appErr.Type != TypeGit {
		t.Errorf("Expected type %s, got %s", TypeGit, appErr.Type)
	}

	if appErr.Suggestion != ErrGetCommits.Suggestion {
		t.Errorf("Expected suggestion to be preserved, got %q", appErr.Suggestion)
	}
}

func TestAppError_WithContext(t *testing.T) {
	appErr := ErrReferenceNotFound.WithContext("ref", "v9.9.9").WithContext("stderr", "unknown revision")

	if appErr.Context["ref"] != "v9.9.9" {
		t.Errorf("Expected ref context 'v9.9.9', got %v", appErr.Context["ref"])
	}

	if appErr.Context["stderr"] != "unknown revision" {
		t.Errorf("Expected stderr context 'unknown revision', got %v", appErr.Context["stderr"])
	}

	if ErrReferenceNotFound.Context != nil {
		t.Error("WithContext must not modify the sentinel")
	}
}

func TestAppError_Error_Format(t *testing.T) {
	tests := []struct {
		name     string
		err      *AppError
		contains []string
	}{
		{
			name: "Simple error without underlying error",
			err:  ErrNoCommits,
			contains: []string{
				"GIT",
				"No commits between the given references",
			},
		},
		{
			name: "Error with underlying error",
			err:  ErrGetCommits.WithError(errors.New("exit status 128")),
			contains: []string{
				"GIT",
				"Failed to get commits",
				"exit status 128",
			},
		},
		{
			name: "Error with ref and stderr context",
			err: ErrReferenceNotFound.
				WithContext("ref", "deploy-42").
				WithContext("stderr", "reference not found"),
			contains: []string{
				"REFERENCE",
				"[deploy-42]",
				"reference not found",
			},
		},
		{
			name: "Environment error",
			err:  ErrGitNotInstalled,
			contains: []string{
				"ENVIRONMENT",
				"git executable not found",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			msg := tt.err.Error()
			for _, want := range tt.contains {
				if !strings.Contains(msg, want) {
					t.Errorf("Expected %q to contain %q", msg, want)
				}
			}
		})
	}
}

func TestAppError_Is(t *testing.T) {
	t.Run("copies match the sentinel", func(t *testing.T) {
		err := ErrReferenceNotFound.WithContext("ref", "v1.0.0").WithError(errors.New("boom"))
		if !errors.Is(err, ErrReferenceNotFound) {
			t.Error("Expected copy to match ErrReferenceNotFound")
		}
	})

	t.Run("wrapped sentinel matches", func(t *testing.T) {
		err := fmt.Errorf("resolving range: %w", ErrNoCommits)
		if !errors.Is(err, ErrNoCommits) {
			t.Error("Expected wrapped error to match ErrNoCommits")
		}
	})

	t.Run("different sentinels do not match", func(t *testing.T) {
		if errors.Is(ErrNoCommits, ErrGetCommits) {
			t.Error("ErrNoCommits must not match ErrGetCommits")
		}
	})

	t.Run("underlying error is reachable", func(t *testing.T) {
		base := errors.New("exit status 1")
		err := ErrListTags.WithError(base)
		if !errors.Is(err, base) {
			t.Error("Expected underlying error to be reachable through Unwrap")
		}
	})
}
