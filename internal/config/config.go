package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/adrg/xdg"
	"github.com/go-viper/mapstructure/v2"
	"github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/rawbytes"
	"github.com/knadh/koanf/v2"
	"github.com/tidwall/jsonc"

	"github.com/shinji-kodama/devboot/internal/logging"
	"github.com/shinji-kodama/devboot/internal/model"
)

const (
	// AppName names the user configuration directory.
	AppName = "devboot"

	// EnvPrefix is the prefix of environment variable overrides.
	EnvPrefix = "DEVBOOT_"

	// DefaultTestHint is the usage hint printed at the end of a run.
	DefaultTestHint = "poetry run pytest OR poetry run scripts/run_tests.sh"
)

// ProjectFileNames are the project-level config files, in lookup order.
// Only the first one found is loaded.
var ProjectFileNames = []string{".devboot.yaml", ".devboot.yml", ".devboot.json"}

// Config is the resolved devboot configuration.
type Config struct {
	Installer InstallerConfig `koanf:"installer"`
	Poetry    PoetryConfig    `koanf:"poetry"`

	// Hints are printed verbatim after the run.
	Hints []string `koanf:"hints"`

	// Strict makes the run exit non-zero when any step failed. All steps
	// are still attempted.
	Strict bool `koanf:"strict"`

	// Sources lists the files merged into this Config, lowest precedence
	// first. Defaults and environment are not listed.
	Sources []string `koanf:"-"`
}

// InstallerConfig describes how the dependency manager is installed.
type InstallerConfig struct {
	// Command is the package installer executable.
	Command string `koanf:"command"`

	// Args precede the package name.
	Args []string `koanf:"args"`

	// Package is the dependency manager's package name.
	Package string `koanf:"package"`
}

// PoetryConfig describes the dependency manager invocations.
type PoetryConfig struct {
	// Command is the dependency manager executable.
	Command string `koanf:"command"`

	// InstallArgs are appended to `<command> install`.
	InstallArgs []string `koanf:"install_args"`

	// HookCommand runs inside the managed environment via `<command> run`.
	HookCommand []string `koanf:"hook_command"`

	// PathKey is the configuration key queried for the virtualenv location.
	PathKey string `koanf:"path_key"`
}

// Options controls where Load looks for configuration.
type Options struct {
	// Dir is the project directory searched for ProjectFileNames.
	// Empty means the current directory.
	Dir string

	// File is an explicit config file (--config). It must exist.
	File string

	// UserFile overrides the user config location. Empty means
	// DefaultUserFile().
	UserFile string

	// SkipUserFile disables the user config layer.
	SkipUserFile bool
}

// Defaults returns the built-in configuration as a flat koanf key map.
func Defaults() map[string]interface{} {
	return map[string]interface{}{
		"installer.command":   "pip",
		"installer.args":      []string{"install"},
		"installer.package":   "poetry",
		"poetry.command":      "poetry",
		"poetry.install_args": []string{},
		"poetry.hook_command": []string{"pre-commit", "install"},
		"poetry.path_key":     "virtualenvs.path",
		"hints":               []string{DefaultTestHint},
		"strict":              false,
	}
}

// DefaultUserFile returns the XDG location of the user config file.
func DefaultUserFile() string {
	return filepath.Join(xdg.ConfigHome, AppName, "config.yaml")
}

// Load resolves the configuration from all layers.
//
// Missing user and project files are skipped silently. A missing or
// malformed explicit file, a malformed layered file, or an invalid result
// is returned as a CLIError with ExitConfigError.
func Load(opts Options) (*Config, error) {
	k := koanf.New(".")

	// 1. Defaults
	if err := k.Load(confmap.Provider(Defaults(), "."), nil); err != nil {
		return nil, model.WrapCLIError(model.ExitConfigError, "failed to load default config", err)
	}

	var sources []string

	// 2. User file
	if !opts.SkipUserFile {
		userFile := opts.UserFile
		if userFile == "" {
			userFile = DefaultUserFile()
		}
		loaded, err := loadOptionalFile(k, userFile)
		if err != nil {
			return nil, err
		}
		if loaded {
			sources = append(sources, userFile)
		}
	}

	// 3. Project file
	if projectFile := FindProjectFile(opts.Dir); projectFile != "" {
		if err := loadFile(k, projectFile); err != nil {
			return nil, err
		}
		sources = append(sources, projectFile)
	}

	// 4. Explicit file
	if opts.File != "" {
		if _, err := os.Stat(opts.File); err != nil {
			return nil, model.WrapCLIError(model.ExitConfigError,
				fmt.Sprintf("config file not found: %s", opts.File), err)
		}
		if err := loadFile(k, opts.File); err != nil {
			return nil, err
		}
		sources = append(sources, opts.File)
	}

	// 5. Environment
	if err := k.Load(env.ProviderWithValue(EnvPrefix, ".", envValue), nil); err != nil {
		return nil, model.WrapCLIError(model.ExitConfigError, "failed to load environment overrides", err)
	}

	var cfg Config
	unmarshalConf := koanf.UnmarshalConf{
		Tag: "koanf",
		DecoderConfig: &mapstructure.DecoderConfig{
			Result:           &cfg,
			WeaklyTypedInput: true,
		},
	}
	if err := k.UnmarshalWithConf("", &cfg, unmarshalConf); err != nil {
		return nil, model.WrapCLIError(model.ExitConfigError, "failed to decode configuration", err)
	}
	cfg.Sources = sources

	if err := cfg.Validate(); err != nil {
		return nil, model.WrapCLIError(model.ExitConfigError, "invalid configuration", err)
	}

	logger := logging.GetLogger("config")
	logger.Debug().Strs("sources", sources).Msg("Configuration loaded")
	return &cfg, nil
}

// envKey maps DEVBOOT_POETRY_INSTALL_ARGS to poetry.install_args: only the
// first underscore separates the section from the key.
func envKey(s string) string {
	key := strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
	return strings.Replace(key, "_", ".", 1)
}

// argvKeys hold argument lists; their environment values are split on
// whitespace like a shell would split an unquoted word list.
var argvKeys = map[string]bool{
	"installer.args":      true,
	"poetry.install_args": true,
	"poetry.hook_command": true,
}

// envValue maps an environment variable to its koanf key and value.
//
// DEVBOOT_INSTALLER_ARGS="install --user" becomes ["install", "--user"].
// DEVBOOT_HINTS holds one hint per line, so hints may contain commas and
// spaces. Every other value is passed through as a string.
func envValue(name, value string) (string, interface{}) {
	key := envKey(name)
	switch {
	case argvKeys[key]:
		return key, strings.Fields(value)
	case key == "hints":
		return key, splitLines(value)
	default:
		return key, value
	}
}

// splitLines returns the non-empty lines of s, otherwise unchanged.
func splitLines(s string) []string {
	var lines []string
	for _, line := range strings.Split(s, "\n") {
		line = strings.TrimSuffix(line, "\r")
		if line != "" {
			lines = append(lines, line)
		}
	}
	return lines
}

// FindProjectFile returns the first of ProjectFileNames present in dir,
// or "" if none exists.
func FindProjectFile(dir string) string {
	for _, name := range ProjectFileNames {
		path := filepath.Join(dir, name)
		if info, err := os.Stat(path); err == nil && !info.IsDir() {
			return path
		}
	}
	return ""
}

// loadOptionalFile loads path if it exists and reports whether it did.
func loadOptionalFile(k *koanf.Koanf, path string) (bool, error) {
	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return false, nil
		}
		return false, model.WrapCLIError(model.ExitConfigError,
			fmt.Sprintf("failed to stat config file %s", path), err)
	}
	return true, loadFile(k, path)
}

// loadFile merges a YAML or JSON(C) file into k, chosen by extension.
func loadFile(k *koanf.Koanf, path string) error {
	var err error
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err = k.Load(file.Provider(path), yaml.Parser())
	case ".json", ".jsonc":
		var data []byte
		data, err = os.ReadFile(path)
		if err == nil {
			// Strip comments and trailing commas before handing the bytes
			// to the strict JSON parser.
			err = k.Load(rawbytes.Provider(jsonc.ToJSON(data)), json.Parser())
		}
	default:
		return model.NewCLIError(model.ExitConfigError,
			fmt.Sprintf("unsupported config file type %q (use .yaml, .yml or .json): %s", filepath.Ext(path), path))
	}
	if err != nil {
		return model.WrapCLIError(model.ExitConfigError,
			fmt.Sprintf("failed to load config file %s", path), err)
	}
	return nil
}

// Validate checks that every command the bootstrap needs is set.
func (c *Config) Validate() error {
	var errs []error
	if strings.TrimSpace(c.Installer.Command) == "" {
		errs = append(errs, errors.New("installer.command must not be empty"))
	}
	if strings.TrimSpace(c.Installer.Package) == "" {
		errs = append(errs, errors.New("installer.package must not be empty"))
	}
	if strings.TrimSpace(c.Poetry.Command) == "" {
		errs = append(errs, errors.New("poetry.command must not be empty"))
	}
	if len(c.Poetry.HookCommand) == 0 || strings.TrimSpace(c.Poetry.HookCommand[0]) == "" {
		errs = append(errs, errors.New("poetry.hook_command must not be empty"))
	}
	if strings.TrimSpace(c.Poetry.PathKey) == "" {
		errs = append(errs, errors.New("poetry.path_key must not be empty"))
	}
	return errors.Join(errs...)
}
