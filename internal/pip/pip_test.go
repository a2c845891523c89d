package pip

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/shinji-kodama/devboot/internal/config"
)

func TestInstallCommand(t *testing.T) {
	tests := []struct {
		name string
		cfg  config.InstallerConfig
		want string
	}{
		{
			name: "default pip",
			cfg:  config.InstallerConfig{Command: "pip", Args: []string{"install"}},
			want: "pip install poetry",
		},
		{
			name: "python -m pip with user flag",
			cfg:  config.InstallerConfig{Command: "python3", Args: []string{"-m", "pip", "install", "--user"}},
			want: "python3 -m pip install --user poetry",
		},
		{
			name: "no args",
			cfg:  config.InstallerConfig{Command: "pipx"},
			want: "pipx poetry",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			i := NewInstaller(tt.cfg, "/src/anvil")
			c := i.InstallCommand("poetry")
			assert.Equal(t, tt.want, c.String())
			assert.Equal(t, "/src/anvil", c.Dir)
		})
	}
}

// TestInstallCommand_DoesNotAliasConfig guards against appending the
// package name into the configuration's backing array.
func TestInstallCommand_DoesNotAliasConfig(t *testing.T) {
	args := make([]string, 1, 4)
	args[0] = "install"
	cfg := config.InstallerConfig{Command: "pip", Args: args}

	i := NewInstaller(cfg, "")
	_ = i.InstallCommand("poetry")
	_ = i.InstallCommand("other")

	assert.Equal(t, []string{"install"}, cfg.Args)
	assert.Equal(t, "pip install other", i.InstallCommand("other").String())
}
