package bootstrap

import (
	"github.com/shinji-kodama/devboot/internal/config"
	"github.com/shinji-kodama/devboot/internal/model"
	"github.com/shinji-kodama/devboot/internal/pip"
	"github.com/shinji-kodama/devboot/internal/poetry"
)

// Step titles, printed as banners by the text reporter.
const (
	TitleInstallDependencies = "Installing project dependencies"
	TitleInstallHooks        = "Installing pre-commit hooks"
	TitleQueryEnvPath        = "Virtual environment path:"
)

// InstallManagerTitle returns the banner of the installer step.
func InstallManagerTitle(pkg string) string {
	return "Installing " + pkg
}

// Plan returns the bootstrap steps for a project in dir, in the order of
// model.Steps. Nothing is executed and nothing on disk is consulted: the
// plan depends only on cfg.
func Plan(cfg *config.Config, dir string) []model.Step {
	installer := pip.NewInstaller(cfg.Installer, dir)
	manager := poetry.NewManager(cfg.Poetry, dir, nil)

	kinds := model.Steps()
	steps := make([]model.Step, 0, len(kinds))
	for _, kind := range kinds {
		step := model.Step{Kind: kind}
		switch kind {
		case model.StepInstallManager:
			step.Title = InstallManagerTitle(cfg.Installer.Package)
			step.Command = installer.InstallCommand(cfg.Installer.Package)
		case model.StepInstallDependencies:
			step.Title = TitleInstallDependencies
			step.Command = manager.InstallCommand()
		case model.StepInstallHooks:
			step.Title = TitleInstallHooks
			step.Command = manager.HookCommand()
		case model.StepQueryEnvPath:
			step.Title = TitleQueryEnvPath
			step.Command = manager.ConfigCommand(manager.PathKey())
			step.Capture = true
		}
		steps = append(steps, step)
	}
	return steps
}
