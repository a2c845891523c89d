// Package config loads devboot's layered configuration.
//
// With no configuration at all, devboot behaves exactly like the classic
// bootstrap script it replaces: `pip install poetry`, `poetry install`,
// `poetry run pre-commit install`, `poetry config virtualenvs.path`, and the
// usage hint "poetry run pytest OR poetry run scripts/run_tests.sh".
//
// Every value can be overridden. Sources are merged with koanf, lowest
// precedence first:
//
//  1. built-in defaults
//  2. the user file, $XDG_CONFIG_HOME/devboot/config.yaml
//  3. the project file, .devboot.yaml, .devboot.yml or .devboot.json
//  4. the file given with --config
//  5. DEVBOOT_<SECTION>_<KEY> environment variables
//
// JSON files may contain comments; they are stripped with
// github.com/tidwall/jsonc before parsing.
package config
