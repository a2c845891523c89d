// Package poetry drives the Poetry dependency manager.
//
// Poetry owns the virtual environment entirely: devboot never computes
// its location, it only asks Poetry with `poetry config virtualenvs.path`.
package poetry

import (
	"context"
	"strings"

	"github.com/shinji-kodama/devboot/internal/config"
	"github.com/shinji-kodama/devboot/internal/model"
	"github.com/shinji-kodama/devboot/internal/runner"
)

// Manager builds Poetry invocations in a project directory. Only the
// configuration query is run through the Manager itself; the bootstrap
// sequence runs the built commands directly.
type Manager struct {
	command     string
	installArgs []string
	hookCommand []string
	pathKey     string
	dir         string
	runner      runner.Runner
}

// NewManager creates a Manager from the poetry configuration.
func NewManager(cfg config.PoetryConfig, dir string, r runner.Runner) *Manager {
	return &Manager{
		command:     cfg.Command,
		installArgs: append([]string(nil), cfg.InstallArgs...),
		hookCommand: append([]string(nil), cfg.HookCommand...),
		pathKey:     cfg.PathKey,
		dir:         dir,
		runner:      r,
	}
}

// PathKey returns the configuration key holding the virtualenv location.
func (m *Manager) PathKey() string {
	return m.pathKey
}

// InstallCommand returns `poetry install [args...]`.
func (m *Manager) InstallCommand() model.Command {
	return m.cmd(append([]string{"install"}, m.installArgs...)...)
}

// HookCommand returns `poetry run pre-commit install`: the hook installer
// runs inside the managed environment.
func (m *Manager) HookCommand() model.Command {
	return m.cmd(append([]string{"run"}, m.hookCommand...)...)
}

// ConfigCommand returns `poetry config <key>`.
func (m *Manager) ConfigCommand(key string) model.Command {
	return m.cmd("config", key)
}

// ConfigValue returns the trimmed value of a Poetry configuration key.
func (m *Manager) ConfigValue(ctx context.Context, key string) (string, error) {
	out, err := m.runner.Output(ctx, m.ConfigCommand(key))
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(out), nil
}

// VirtualenvsPath returns the directory Poetry stores virtualenvs in.
func (m *Manager) VirtualenvsPath(ctx context.Context) (string, error) {
	return m.ConfigValue(ctx, m.pathKey)
}

func (m *Manager) cmd(args ...string) model.Command {
	return model.Command{Name: m.command, Args: args, Dir: m.dir}
}
