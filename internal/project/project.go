package project

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/shinji-kodama/devboot/internal/logging"
	"github.com/shinji-kodama/devboot/internal/model"
)

// PreCommitHookName is the git hook file installed by `pre-commit install`.
const PreCommitHookName = "pre-commit"

// Discover describes the project rooted at dir.
//
// Missing files leave the corresponding fields empty. Malformed files are
// logged and skipped; only a directory that cannot be resolved is an error.
func Discover(dir string) (*model.Project, error) {
	logger := logging.GetLogger("project")

	root, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve project directory %s: %w", dir, err)
	}
	p := &model.Project{Root: root}

	pyPath := filepath.Join(root, PyProjectFile)
	if py, err := LoadPyProject(pyPath); err == nil {
		p.Name = py.Name
		p.Version = py.Version
		p.UsesPoetry = py.UsesPoetry
	} else if !errors.Is(err, os.ErrNotExist) {
		logger.Warn().Err(err).Str("path", pyPath).Msg("Ignoring unreadable pyproject.toml")
	}

	gitDir, err := FindGitDir(root)
	if err != nil {
		logger.Warn().Err(err).Msg("Could not resolve git directory")
	}
	if gitDir != "" {
		p.GitDir = gitDir
		p.HookPath = filepath.Join(HooksDir(gitDir), PreCommitHookName)
	}

	// .pre-commit-config.yaml lives at the repository top level, which may
	// be above the working directory.
	if cfgPath := findUp(root, PreCommitConfigFile); cfgPath != "" {
		if cfg, err := LoadPreCommitConfig(cfgPath); err == nil {
			p.HookRepos = cfg.RepoNames()
			p.HookIDs = cfg.HookIDs()
		} else {
			logger.Warn().Err(err).Str("path", cfgPath).Msg("Ignoring unreadable pre-commit config")
		}
	}

	logger.Debug().
		Str("root", p.Root).
		Str("name", p.Name).
		Bool("poetry", p.UsesPoetry).
		Str("gitDir", p.GitDir).
		Int("hookRepos", len(p.HookRepos)).
		Msg("Project discovered")

	return p, nil
}

// HookInstalled reports whether the pre-commit hook file exists.
func HookInstalled(p *model.Project) bool {
	if p == nil || p.HookPath == "" {
		return false
	}
	info, err := os.Stat(p.HookPath)
	return err == nil && !info.IsDir()
}

// findUp returns the first path named name in dir or one of its parents,
// stopping after the directory that contains .git.
func findUp(dir, name string) string {
	for {
		candidate := filepath.Join(dir, name)
		if _, err := os.Stat(candidate); err == nil {
			return candidate
		}
		if _, err := os.Lstat(filepath.Join(dir, ".git")); err == nil {
			return ""
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return ""
		}
		dir = parent
	}
}
