// Package pip builds the command that installs the dependency manager with
// a Python package installer.
//
// The installer is invoked unconditionally: there is no "already
// installed" check, so re-running devboot always re-invokes it and relies
// on pip's own idempotence.
package pip

import (
	"github.com/shinji-kodama/devboot/internal/config"
	"github.com/shinji-kodama/devboot/internal/model"
)

// Installer builds `<command> <args...> <package>`.
type Installer struct {
	command string
	args    []string
	dir     string
}

// NewInstaller creates an Installer from the installer configuration.
// Commands run in dir.
func NewInstaller(cfg config.InstallerConfig, dir string) *Installer {
	return &Installer{
		command: cfg.Command,
		args:    append([]string(nil), cfg.Args...),
		dir:     dir,
	}
}

// InstallCommand returns the command that installs pkg.
func (i *Installer) InstallCommand(pkg string) model.Command {
	args := make([]string, 0, len(i.args)+1)
	args = append(args, i.args...)
	args = append(args, pkg)
	return model.Command{Name: i.command, Args: args, Dir: i.dir}
}
