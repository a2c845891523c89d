package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shinji-kodama/devboot/internal/model"
)

// writeFile creates a file under dir and returns its path.
func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

// isolated returns Options that ignore the developer's real user config.
func isolated(dir string) Options {
	return Options{Dir: dir, SkipUserFile: true}
}

// TestLoad_Defaults verifies that with no files and no environment the
// configuration reproduces the classic bootstrap script.
func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load(isolated(t.TempDir()))
	require.NoError(t, err)

	assert.Equal(t, "pip", cfg.Installer.Command)
	assert.Equal(t, []string{"install"}, cfg.Installer.Args)
	assert.Equal(t, "poetry", cfg.Installer.Package)
	assert.Equal(t, "poetry", cfg.Poetry.Command)
	assert.Empty(t, cfg.Poetry.InstallArgs)
	assert.Equal(t, []string{"pre-commit", "install"}, cfg.Poetry.HookCommand)
	assert.Equal(t, "virtualenvs.path", cfg.Poetry.PathKey)
	assert.Equal(t, []string{"poetry run pytest OR poetry run scripts/run_tests.sh"}, cfg.Hints)
	assert.False(t, cfg.Strict)
	assert.Empty(t, cfg.Sources)
}

// TestLoad_ProjectYAML verifies that a project-level YAML file overrides
// the defaults while leaving unspecified keys alone.
func TestLoad_ProjectYAML(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, ".devboot.yaml", `
installer:
  command: pip3
poetry:
  install_args: ["--no-root", "--sync"]
strict: true
`)

	cfg, err := Load(isolated(dir))
	require.NoError(t, err)

	assert.Equal(t, "pip3", cfg.Installer.Command)
	assert.Equal(t, "poetry", cfg.Installer.Package, "unspecified keys keep their defaults")
	assert.Equal(t, []string{"--no-root", "--sync"}, cfg.Poetry.InstallArgs)
	assert.True(t, cfg.Strict)
	assert.Equal(t, []string{path}, cfg.Sources)
}

// TestLoad_ProjectJSONC verifies that comments and trailing commas in a
// JSON project file are accepted.
func TestLoad_ProjectJSONC(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, ".devboot.json", `{
  // use the user-level pip
  "installer": {"args": ["install", "--user"],},
  /* project specific hints */
  "hints": ["poetry run pytest -x"],
}`)

	cfg, err := Load(isolated(dir))
	require.NoError(t, err)

	assert.Equal(t, []string{"install", "--user"}, cfg.Installer.Args)
	assert.Equal(t, []string{"poetry run pytest -x"}, cfg.Hints)
}

// TestLoad_ProjectFilePriority verifies that only the first project file in
// ProjectFileNames order is loaded.
func TestLoad_ProjectFilePriority(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, ".devboot.yaml", "installer:\n  command: from-yaml\n")
	writeFile(t, dir, ".devboot.json", `{"installer": {"command": "from-json"}}`)

	cfg, err := Load(isolated(dir))
	require.NoError(t, err)
	assert.Equal(t, "from-yaml", cfg.Installer.Command)
}

// TestLoad_Precedence verifies the full layering order:
// user < project < --config < environment.
func TestLoad_Precedence(t *testing.T) {
	dir := t.TempDir()
	userFile := writeFile(t, t.TempDir(), "devboot/config.yaml", `
installer:
  command: user-pip
  package: user-poetry
poetry:
  command: user-poetry-bin
  path_key: user.key
`)
	writeFile(t, dir, ".devboot.yaml", `
installer:
  package: project-poetry
poetry:
  command: project-poetry-bin
  path_key: project.key
`)
	explicit := writeFile(t, t.TempDir(), "override.yml", `
poetry:
  command: explicit-poetry-bin
  path_key: explicit.key
`)
	t.Setenv("DEVBOOT_POETRY_PATH_KEY", "env.key")

	cfg, err := Load(Options{Dir: dir, File: explicit, UserFile: userFile})
	require.NoError(t, err)

	assert.Equal(t, "user-pip", cfg.Installer.Command)
	assert.Equal(t, "project-poetry", cfg.Installer.Package)
	assert.Equal(t, "explicit-poetry-bin", cfg.Poetry.Command)
	assert.Equal(t, "env.key", cfg.Poetry.PathKey)
	require.Len(t, cfg.Sources, 3)
	assert.Equal(t, userFile, cfg.Sources[0])
	assert.Equal(t, explicit, cfg.Sources[2])
}

// TestLoad_EnvironmentSlicesAndBools verifies weakly typed decoding of
// environment overrides.
func TestLoad_EnvironmentSlicesAndBools(t *testing.T) {
	t.Setenv("DEVBOOT_POETRY_HOOK_COMMAND", "pre-commit install --install-hooks")
	t.Setenv("DEVBOOT_STRICT", "true")
	t.Setenv("DEVBOOT_INSTALLER_PACKAGE", "poetry==1.8.3")

	cfg, err := Load(isolated(t.TempDir()))
	require.NoError(t, err)

	assert.Equal(t, []string{"pre-commit", "install", "--install-hooks"}, cfg.Poetry.HookCommand)
	assert.True(t, cfg.Strict)
	assert.Equal(t, "poetry==1.8.3", cfg.Installer.Package)
}

// TestLoad_EnvironmentArgsSplitOnWhitespace verifies that argument lists
// from the environment become separate argv elements.
func TestLoad_EnvironmentArgsSplitOnWhitespace(t *testing.T) {
	t.Setenv("DEVBOOT_INSTALLER_ARGS", "install  --user")
	t.Setenv("DEVBOOT_POETRY_INSTALL_ARGS", "--with dev\t--no-root")

	cfg, err := Load(isolated(t.TempDir()))
	require.NoError(t, err)

	assert.Equal(t, []string{"install", "--user"}, cfg.Installer.Args)
	assert.Equal(t, []string{"--with", "dev", "--no-root"}, cfg.Poetry.InstallArgs)
}

// TestLoad_EnvironmentHintsKeepCommas verifies that a hint containing a
// comma stays one line and that newlines separate hints.
func TestLoad_EnvironmentHintsKeepCommas(t *testing.T) {
	dir := t.TempDir()

	t.Setenv("DEVBOOT_HINTS", "poetry run pytest, then scripts/run_tests.sh")
	cfg, err := Load(isolated(dir))
	require.NoError(t, err)
	assert.Equal(t, []string{"poetry run pytest, then scripts/run_tests.sh"}, cfg.Hints)

	t.Setenv("DEVBOOT_HINTS", "make test\r\n\npoetry run pytest -k smoke\n")
	cfg, err = Load(isolated(dir))
	require.NoError(t, err)
	assert.Equal(t, []string{"make test", "poetry run pytest -k smoke"}, cfg.Hints)
}

// TestLoad_FileHintStringIsOneHint verifies that a scalar hints value in a
// file is not split on commas.
func TestLoad_FileHintStringIsOneHint(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, ".devboot.yaml", "hints: \"pytest, then lint\"\n")

	cfg, err := Load(isolated(dir))
	require.NoError(t, err)
	assert.Equal(t, []string{"pytest, then lint"}, cfg.Hints)
}

// TestLoad_MissingUserFileIsIgnored verifies that an absent user file is
// not an error.
func TestLoad_MissingUserFileIsIgnored(t *testing.T) {
	cfg, err := Load(Options{
		Dir:      t.TempDir(),
		UserFile: filepath.Join(t.TempDir(), "nope", "config.yaml"),
	})
	require.NoError(t, err)
	assert.Empty(t, cfg.Sources)
}

// TestLoad_Errors verifies that configuration problems surface as
// CLIErrors with ExitConfigError.
func TestLoad_Errors(t *testing.T) {
	tests := []struct {
		name  string
		setup func(t *testing.T, dir string) Options
	}{
		{
			name: "explicit file missing",
			setup: func(t *testing.T, dir string) Options {
				o := isolated(dir)
				o.File = filepath.Join(dir, "missing.yaml")
				return o
			},
		},
		{
			name: "unsupported extension",
			setup: func(t *testing.T, dir string) Options {
				o := isolated(dir)
				o.File = writeFile(t, dir, "devboot.toml", "x = 1\n")
				return o
			},
		},
		{
			name: "malformed yaml",
			setup: func(t *testing.T, dir string) Options {
				writeFile(t, dir, ".devboot.yaml", "installer: [unclosed\n")
				return isolated(dir)
			},
		},
		{
			name: "malformed json",
			setup: func(t *testing.T, dir string) Options {
				writeFile(t, dir, ".devboot.json", `{"installer": `)
				return isolated(dir)
			},
		},
		{
			name: "empty installer command",
			setup: func(t *testing.T, dir string) Options {
				writeFile(t, dir, ".devboot.yaml", "installer:\n  command: \"\"\n")
				return isolated(dir)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			_, err := Load(tt.setup(t, dir))
			require.Error(t, err)

			var cliErr *model.CLIError
			require.True(t, errors.As(err, &cliErr))
			assert.Equal(t, model.ExitConfigError, cliErr.Code)
		})
	}
}

// TestValidate lists every validation rule.
func TestValidate(t *testing.T) {
	valid := func() Config {
		return Config{
			Installer: InstallerConfig{Command: "pip", Args: []string{"install"}, Package: "poetry"},
			Poetry: PoetryConfig{
				Command:     "poetry",
				HookCommand: []string{"pre-commit", "install"},
				PathKey:     "virtualenvs.path",
			},
		}
	}

	cfg := valid()
	assert.NoError(t, cfg.Validate())

	tests := []struct {
		name   string
		mutate func(c *Config)
		want   string
	}{
		{"installer command", func(c *Config) { c.Installer.Command = " " }, "installer.command"},
		{"installer package", func(c *Config) { c.Installer.Package = "" }, "installer.package"},
		{"poetry command", func(c *Config) { c.Poetry.Command = "" }, "poetry.command"},
		{"hook command empty", func(c *Config) { c.Poetry.HookCommand = nil }, "poetry.hook_command"},
		{"hook command blank", func(c *Config) { c.Poetry.HookCommand = []string{""} }, "poetry.hook_command"},
		{"path key", func(c *Config) { c.Poetry.PathKey = "" }, "poetry.path_key"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := valid()
			tt.mutate(&c)
			err := c.Validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestEnvKey(t *testing.T) {
	assert.Equal(t, "strict", envKey("DEVBOOT_STRICT"))
	assert.Equal(t, "poetry.install_args", envKey("DEVBOOT_POETRY_INSTALL_ARGS"))
	assert.Equal(t, "installer.command", envKey("DEVBOOT_INSTALLER_COMMAND"))
}

func TestEnvValue(t *testing.T) {
	tests := []struct {
		name    string
		value   string
		wantKey string
		want    interface{}
	}{
		{"DEVBOOT_INSTALLER_ARGS", "install --user", "installer.args", []string{"install", "--user"}},
		{"DEVBOOT_POETRY_HOOK_COMMAND", " pre-commit  install ", "poetry.hook_command", []string{"pre-commit", "install"}},
		{"DEVBOOT_HINTS", "a, b", "hints", []string{"a, b"}},
		{"DEVBOOT_INSTALLER_PACKAGE", "poetry==1.8.3", "installer.package", "poetry==1.8.3"},
		{"DEVBOOT_STRICT", "1", "strict", "1"},
	}
	for _, tt := range tests {
		key, value := envValue(tt.name, tt.value)
		assert.Equal(t, tt.wantKey, key, tt.name)
		assert.Equal(t, tt.want, value, tt.name)
	}
}

func TestDefaultUserFile(t *testing.T) {
	path := DefaultUserFile()
	assert.Equal(t, "config.yaml", filepath.Base(path))
	assert.Equal(t, AppName, filepath.Base(filepath.Dir(path)))
}
