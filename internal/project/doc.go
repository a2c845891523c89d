// Package project inspects the directory being bootstrapped.
//
// Everything here is informational. The bootstrap sequence never branches
// on what this package finds: a directory without pyproject.toml or outside
// a git repository is bootstrapped exactly the same way, and the external
// tools report whatever is wrong with it.
//
// Discovery covers three files:
//   - pyproject.toml, for the project name and whether Poetry manages it
//   - .pre-commit-config.yaml, for the configured hook repositories
//   - the git directory, for the location of the installed pre-commit hook
package project
