package errors

import "fmt"

// ErrorType defines the category of the error
type ErrorType string

const (
	TypeEnvironment   ErrorType = "ENVIRONMENT"
	TypeReference     ErrorType = "REFERENCE"
	TypeGit           ErrorType = "GIT"
	TypeConfiguration ErrorType = "CONFIGURATION"
	TypeOutput        ErrorType = "OUTPUT"
	TypeInternal      ErrorType = "INTERNAL"
)

// AppError represents a domain-level error with a type and an underlying error
type AppError struct {
	Type       ErrorType
	Message    string
	Context    map[string]interface{}
	Err        error
	Suggestion string
}

func (e *AppError) Error() string {
	var msg string
	if e.Err != nil {
		msg = fmt.Sprintf("%s: %s (%v)", e.Type, e.Message, e.Err)
	} else {
		msg = fmt.Sprintf("%s: %s", e.Type, e.Message)
	}

	if e.Context != nil {
		if ref, ok := e.Context["ref"].(string); ok && ref != "" {
			msg += fmt.Sprintf(" [%s]", ref)
		}
		if stderr, ok := e.Context["stderr"].(string); ok && stderr != "" {
			msg += fmt.Sprintf(" - %s", stderr)
		}
	}

	return msg
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// Is matches sentinel errors by type and message so that copies produced by
// WithError/WithContext still satisfy errors.Is against the original.
func (e *AppError) Is(target error) bool {
	t, ok := target.(*AppError)
	if !ok {
		return false
	}
	return e.Type == t.Type && e.Message == t.Message
}

// WithError creates a new AppError with an underlying error
func (e *AppError) WithError(err error) *AppError {
	return &AppError{
		Type:       e.Type,
		Message:    e.Message,
		Context:    e.Context,
		Err:        err,
		Suggestion: e.Suggestion,
	}
}

// WithContext creates a new AppError with additional context
func (e *AppError) WithContext(key string, value interface{}) *AppError {
	ctx := make(map[string]interface{})
	for k, v := range e.Context {
		ctx[k] = v
	}
	ctx[key] = value
	return &AppError{
		Type:       e.Type,
		Message:    e.Message,
		Context:    ctx,
		Err:        e.Err,
		Suggestion: e.Suggestion,
	}
}

func (e *AppError) WithSuggestion(suggestion string) *AppError {
	return &AppError{
		Type:       e.Type,
		Message:    e.Message,
		Context:    e.Context,
		Err:        e.Err,
		Suggestion: suggestion,
	}
}

// NewAppError creates a new AppError
func NewAppError(t ErrorType, msg string, err error) *AppError {
	return &AppError{
		Type:    t,
		Message: msg,
		Err:     err,
	}
}

// Environment errors
var (
	ErrGitNotInstalled = NewAppError(TypeEnvironment, "git executable not found", nil).
				WithSuggestion("Install git and make sure it is on your PATH: git --version")

	ErrNotInGitRepo = NewAppError(TypeEnvironment, "Not in a git repository", nil).
			WithSuggestion("Run matelog from inside a repository or pass --repo <path>")
)

// Reference errors
var (
	ErrReferenceNotFound = NewAppError(TypeReference, "Reference not found in repository", nil).
				WithSuggestion("List available tags: git tag -l\n   Fetch remote tags: git fetch --tags")

	ErrNoPreviousTag = NewAppError(TypeReference, "No previous tag found to compare against", nil).
				WithSuggestion("Pass it explicitly with --previous <tag> or set deploy_tag_prefix in the config")
)

// Git errors
var (
	ErrNoCommits = NewAppError(TypeGit, "No commits between the given references", nil)

	ErrCountCommits = NewAppError(TypeGit, "Failed to count commits", nil)

	ErrGetCommits = NewAppError(TypeGit, "Failed to get commits", nil).
			WithSuggestion("Make sure both references exist: git log <previous>..<current>")

	ErrListTags = NewAppError(TypeGit, "Failed to list tags", nil).
			WithSuggestion("List available tags: git tag -l")

	ErrGetTagDate = NewAppError(TypeGit, "Failed to get tag date", nil)

	ErrGetRepoURL = NewAppError(TypeGit, "Failed to get repository URL", nil).
			WithSuggestion("Add a remote: git remote add origin <url>\n   Or set repository_url in the config")

	ErrExtractRepoInfo = NewAppError(TypeGit, "Failed to extract repository info", nil)
)

// Configuration errors
var (
	ErrConfigInvalid = NewAppError(TypeConfiguration, "Configuration is invalid", nil).
				WithSuggestion("Review it with: matelog config show")

	ErrConfigLoad = NewAppError(TypeConfiguration, "Failed to load configuration", nil).
			WithSuggestion("Recreate it with: matelog config init --force")

	ErrConfigExists = NewAppError(TypeConfiguration, "Configuration file already exists", nil).
			WithSuggestion("Overwrite it with: matelog config init --force")
)

// Output errors
var (
	ErrUnknownFormat = NewAppError(TypeOutput, "Unknown output format", nil).
				WithSuggestion("Use one of: markdown, yaml, json")

	ErrWriteOutput = NewAppError(TypeOutput, "Failed to write changelog", nil).
			WithSuggestion("Check the output directory exists and is writable")
)
