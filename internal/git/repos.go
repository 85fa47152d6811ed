// Package git discovers local repositories and reads their reflogs.
package git

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"regexp"
	"strings"
)

// Scanner finds git repositories immediately under a root directory.
type Scanner struct {
	root string
}

// Config holds scanner configuration.
type Config struct {
	Root string // Directory whose immediate children are checked for repositories
}

// NewScanner creates a scanner from environment variables.
func NewScanner() (*Scanner, error) {
	root := os.Getenv("GIT_REPOSITORIES_ROOT_DIRECTORY")
	if root == "" {
		return nil, fmt.Errorf("GIT_REPOSITORIES_ROOT_DIRECTORY not set")
	}
	return NewScannerWithConfig(Config{Root: root})
}

// NewScannerWithConfig creates a scanner with explicit configuration.
func NewScannerWithConfig(cfg Config) (*Scanner, error) {
	if cfg.Root == "" {
		return nil, fmt.Errorf("root directory is required")
	}
	info, err := os.Stat(cfg.Root)
	if err != nil {
		return nil, fmt.Errorf("stat root directory: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("root is not a directory: %s", cfg.Root)
	}
	return &Scanner{root: cfg.Root}, nil
}

// Repository is a git repository found under the scanner root.
type Repository struct {
	Name string `json:"name"`
	Path string `json:"path"`
}

// Repositories lists the immediate child directories of the root that
// contain a .git directory. Nested repositories are not searched for.
func (s *Scanner) Repositories() ([]Repository, error) {
	entries, err := os.ReadDir(s.root)
	if err != nil {
		return nil, fmt.Errorf("read root directory: %w", err)
	}

	var repos []Repository
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		path := filepath.Join(s.root, entry.Name())
		if info, err := os.Stat(filepath.Join(path, ".git")); err != nil || !info.IsDir() {
			continue
		}
		repos = append(repos, Repository{Name: entry.Name(), Path: path})
	}
	return repos, nil
}

// Reflog is one parsed reflog entry.
type Reflog struct {
	Hash    string `json:"hash"`
	Refs    string `json:"refs,omitempty"`
	Date    string `json:"date"`
	Action  string `json:"action"`
	Message string `json:"message"`
}

// RepositoryReflogs pairs a repository with its reflog entries for a window.
type RepositoryReflogs struct {
	Repository Repository `json:"repository"`
	Reflog     []Reflog   `json:"reflog"`
}

var reflogLine = regexp.MustCompile(`^([a-f0-9]+)(?: \(([^)]+)\))? HEAD@\{([^}]+)\}: ([^:]+): (.+)$`)

func parseReflogLine(line string) (Reflog, bool) {
	m := reflogLine.FindStringSubmatch(strings.TrimSpace(line))
	if m == nil {
		return Reflog{}, false
	}
	return Reflog{
		Hash:    m[1],
		Refs:    m[2],
		Date:    m[3],
		Action:  strings.TrimSpace(m[4]),
		Message: strings.TrimSpace(m[5]),
	}, true
}

func repositoryReflog(ctx context.Context, repo Repository, since, until string) ([]Reflog, error) {
	cmd := exec.CommandContext(ctx, "git", "-C", repo.Path, "reflog", "--date=iso", "--since", since, "--until", until)
	out, err := cmd.Output()
	if err != nil {
		return nil, fmt.Errorf("git reflog %s: %w", repo.Name, err)
	}

	entries := []Reflog{}
	for _, line := range strings.Split(string(out), "\n") {
		if entry, ok := parseReflogLine(line); ok {
			entries = append(entries, entry)
		}
	}
	return entries, nil
}

// Reflogs runs git reflog across every repository under the root for the
// given window. Repositories with no activity are dropped unless
// includeEmpty is set.
func (s *Scanner) Reflogs(ctx context.Context, since, until string, includeEmpty bool) ([]RepositoryReflogs, error) {
	repos, err := s.Repositories()
	if err != nil {
		return nil, err
	}

	results := []RepositoryReflogs{}
	for _, repo := range repos {
		reflog, err := repositoryReflog(ctx, repo, since, until)
		if err != nil {
			// TODO: surface per-repository errors instead of skipping
			continue
		}
		if len(reflog) == 0 && !includeEmpty {
			continue
		}
		results = append(results, RepositoryReflogs{Repository: repo, Reflog: reflog})
	}
	return results, nil
}
