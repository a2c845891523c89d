package project

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// FindGitDir walks up from start looking for the repository's git
// directory. It returns "" with a nil error outside a repository.
//
// A .git directory is returned as is. A .git file (linked worktree or
// submodule) contains a "gitdir: <path>" pointer, which is resolved
// relative to the file's directory.
func FindGitDir(start string) (string, error) {
	dir, err := filepath.Abs(start)
	if err != nil {
		return "", fmt.Errorf("failed to resolve %s: %w", start, err)
	}

	for {
		gitPath := filepath.Join(dir, ".git")

		// Lstat, not Stat: we need to know whether .git itself is a file
		// or a directory.
		info, err := os.Lstat(gitPath)
		if err == nil {
			if info.IsDir() {
				return gitPath, nil
			}
			return readGitFile(gitPath)
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return "", nil
		}
		dir = parent
	}
}

// readGitFile resolves the "gitdir:" pointer in a .git file.
func readGitFile(gitPath string) (string, error) {
	content, err := os.ReadFile(gitPath)
	if err != nil {
		return "", fmt.Errorf("failed to read %s: %w", gitPath, err)
	}

	line := strings.TrimSpace(strings.SplitN(string(content), "\n", 2)[0])
	target, ok := strings.CutPrefix(line, "gitdir:")
	if !ok {
		return "", fmt.Errorf("%s is not a gitdir pointer", gitPath)
	}

	target = strings.TrimSpace(target)
	if !filepath.IsAbs(target) {
		target = filepath.Join(filepath.Dir(gitPath), target)
	}
	return filepath.Clean(target), nil
}

// HooksDir returns the hooks directory for gitDir.
//
// Linked worktrees share hooks with the main repository: their git
// directory holds a "commondir" file pointing at it.
func HooksDir(gitDir string) string {
	data, err := os.ReadFile(filepath.Join(gitDir, "commondir"))
	if err != nil {
		return filepath.Join(gitDir, "hooks")
	}

	common := strings.TrimSpace(string(data))
	if !filepath.IsAbs(common) {
		common = filepath.Join(gitDir, common)
	}
	return filepath.Join(filepath.Clean(common), "hooks")
}
