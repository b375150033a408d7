// Package git is the version-control collaborator of the changelog pipeline.
// Reference lookups and tag dates go through go-git; range queries (log,
// rev-list, rev-parse, for-each-ref, describe) shell out to the git CLI.
package git

import (
	"context"
	stdErrors "errors"
	"fmt"
	"os"
	"os/exec"
	"strconv"
	"strings"

	gogit "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/thomas-vilte/matelog/internal/errors"
	"github.com/thomas-vilte/matelog/internal/logger"
	"github.com/thomas-vilte/matelog/internal/regex"
)

const dateLayout = "2006-01-02"

type GitService struct {
	repoPath string
}

// NewGitService returns a service bound to repoPath. An empty path means the
// current working directory.
func NewGitService(repoPath string) *GitService {
	return &GitService{repoPath: repoPath}
}

// CheckEnvironment verifies the git binary is available and the service path
// is inside a repository.
func (s *GitService) CheckEnvironment(ctx context.Context) error {
	log := logger.FromContext(ctx)

	gitPath, err := exec.LookPath("git")
	if err != nil {
		return errors.ErrGitNotInstalled.WithError(err)
	}
	log.Debug("git executable found", "path", gitPath)

	if _, err := s.openRepo(); err != nil {
		return errors.ErrNotInGitRepo.WithError(err).WithContext("path", s.repoPath)
	}
	return nil
}

// RefExists reports whether ref resolves to a commit (tag, branch, HEAD or hash).
func (s *GitService) RefExists(ctx context.Context, ref string) (bool, error) {
	repo, err := s.openRepo()
	if err != nil {
		return false, errors.ErrNotInGitRepo.WithError(err)
	}

	hash, err := repo.ResolveRevision(plumbing.Revision(ref))
	if err != nil {
		if stdErrors.Is(err, plumbing.ErrReferenceNotFound) || stdErrors.Is(err, plumbing.ErrObjectNotFound) {
			return false, nil
		}
		return false, fmt.Errorf("resolving %s: %w", ref, err)
	}

	logger.Debug(ctx, "reference resolved", "ref", ref, "hash", hash.String())
	return true, nil
}

// CommitHash returns the hash of the commit ref points to, peeling annotated tags.
func (s *GitService) CommitHash(ctx context.Context, ref string) (string, error) {
	output, err := s.run(ctx, "rev-parse", "--verify", "--quiet", ref+"^{commit}")
	if err != nil {
		return "", errors.ErrReferenceNotFound.WithError(err).WithContext("ref", ref)
	}
	return strings.TrimSpace(output), nil
}

// IsTag reports whether name is a tag in the repository.
func (s *GitService) IsTag(_ context.Context, name string) bool {
	repo, err := s.openRepo()
	if err != nil {
		return false
	}
	_, err = repo.Tag(name)
	return err == nil
}

// ListTags returns the tags starting with prefix, oldest first by creation date.
// When reachableFrom is set only tags merged into that reference are listed.
func (s *GitService) ListTags(ctx context.Context, prefix, reachableFrom string) ([]string, error) {
	args := []string{"for-each-ref", "--sort=creatordate", "--format=%(refname:short)"}
	if reachableFrom != "" {
		args = append(args, "--merged="+reachableFrom)
	}
	args = append(args, "refs/tags/"+prefix+"*")

	output, err := s.run(ctx, args...)
	if err != nil {
		return nil, errors.ErrListTags.WithError(err).WithContext("prefix", prefix)
	}
	return splitLines(output), nil
}

// CommitCount counts the commits reachable from to but not from from.
func (s *GitService) CommitCount(ctx context.Context, from, to string) (int, error) {
	output, err := s.run(ctx, "rev-list", "--count", rangeSpec(from, to))
	if err != nil {
		return 0, errors.ErrCountCommits.WithError(err)
	}

	count, err := strconv.Atoi(strings.TrimSpace(output))
	if err != nil {
		return 0, errors.ErrCountCommits.WithError(err)
	}
	return count, nil
}

// LogSubjects returns the subject line of every commit in from..to.
// Merge commits are included; their subjects carry the branch name.
func (s *GitService) LogSubjects(ctx context.Context, from, to string, newestFirst bool) ([]string, error) {
	args := []string{"log", "--format=%s"}
	if !newestFirst {
		args = append(args, "--reverse")
	}
	args = append(args, rangeSpec(from, to))

	output, err := s.run(ctx, args...)
	if err != nil {
		return nil, errors.ErrGetCommits.WithError(err).WithContext("ref", rangeSpec(from, to))
	}
	return splitLines(output), nil
}

// TagDate returns the tagger date of an annotated tag, or the committer date
// of the commit a lightweight tag or any other reference points to, as YYYY-MM-DD.
func (s *GitService) TagDate(_ context.Context, ref string) (string, error) {
	repo, err := s.openRepo()
	if err != nil {
		return "", errors.ErrGetTagDate.WithError(err)
	}

	if tagRef, err := repo.Tag(ref); err == nil {
		if tagObj, err := repo.TagObject(tagRef.Hash()); err == nil {
			return tagObj.Tagger.When.Format(dateLayout), nil
		}
	}

	hash, err := repo.ResolveRevision(plumbing.Revision(ref))
	if err != nil {
		return "", errors.ErrGetTagDate.WithError(err).WithContext("ref", ref)
	}
	commit, err := repo.CommitObject(*hash)
	if err != nil {
		return "", errors.ErrGetTagDate.WithError(err).WithContext("ref", ref)
	}
	return commit.Committer.When.Format(dateLayout), nil
}

// NearestVersionTag returns the closest tag matching pattern reachable from ref,
// or "" when there is none.
func (s *GitService) NearestVersionTag(ctx context.Context, ref, pattern string) (string, error) {
	args := []string{"describe", "--tags", "--abbrev=0"}
	if pattern != "" {
		args = append(args, "--match", pattern)
	}
	args = append(args, ref)

	output, err := s.run(ctx, args...)
	if err != nil {
		// describe fails when no tag matches
		logger.Debug(ctx, "no version tag found", "ref", ref, "pattern", pattern, "error", err)
		return "", nil
	}
	return strings.TrimSpace(output), nil
}

// RepositoryURL returns the browser URL of the origin remote, e.g. https://github.com/owner/repo.
func (s *GitService) RepositoryURL(ctx context.Context) (string, error) {
	output, err := s.run(ctx, "remote", "get-url", "origin")
	if err != nil {
		return "", errors.ErrGetRepoURL.WithError(err)
	}

	host, owner, repo, err := parseRepoURL(strings.TrimSpace(output))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("https://%s/%s/%s", host, owner, repo), nil
}

func (s *GitService) openRepo() (*gogit.Repository, error) {
	path := s.repoPath
	if path == "" {
		var err error
		path, err = os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("getting current directory: %w", err)
		}
	}

	repo, err := gogit.PlainOpenWithOptions(path, &gogit.PlainOpenOptions{
		DetectDotGit: true,
	})
	if err != nil {
		return nil, fmt.Errorf("opening repository at %s: %w", path, err)
	}
	return repo, nil
}

func (s *GitService) run(ctx context.Context, args ...string) (string, error) {
	if s.repoPath != "" {
		args = append([]string{"-C", s.repoPath}, args...)
	}

	cmd := exec.CommandContext(ctx, "git", args...)
	var stderr strings.Builder
	cmd.Stderr = &stderr

	logger.Debug(ctx, "running git", "args", strings.Join(args, " "))

	output, err := cmd.Output()
	if err != nil {
		if msg := strings.TrimSpace(stderr.String()); msg != "" {
			return "", fmt.Errorf("%w: %s", err, msg)
		}
		return "", err
	}
	return string(output), nil
}

func rangeSpec(from, to string) string {
	if from == "" {
		return to
	}
	return from + ".." + to
}

func splitLines(output string) []string {
	output = strings.TrimRight(output, "\n")
	if output == "" {
		return []string{}
	}
	return strings.Split(output, "\n")
}

func parseRepoURL(url string) (string, string, string, error) {
	var matches []string
	if regex.SSHRepo.MatchString(url) {
		matches = regex.SSHRepo.FindStringSubmatch(url)
	} else if regex.HTTPSRepo.MatchString(url) {
		matches = regex.HTTPSRepo.FindStringSubmatch(url)
	}

	if len(matches) >= 4 {
		repoName := strings.TrimSuffix(matches[3], ".git")
		return matches[1], matches[2], repoName, nil
	}

	return "", "", "", errors.ErrExtractRepoInfo.WithContext("ref", url)
}
