package project

import (
	"fmt"
	"os"

	toml "github.com/pelletier/go-toml/v2"
)

// PyProjectFile is the Python project metadata file name.
const PyProjectFile = "pyproject.toml"

// PyProject holds the pyproject.toml fields devboot reports on.
type PyProject struct {
	Name       string
	Version    string
	UsesPoetry bool
}

// rawPyProject mirrors the subset of pyproject.toml we read. Both the
// Poetry-specific [tool.poetry] table and the PEP 621 [project] table are
// supported; Poetry's wins when both set a name.
type rawPyProject struct {
	Project *struct {
		Name    string `toml:"name"`
		Version string `toml:"version"`
	} `toml:"project"`
	Tool struct {
		Poetry *struct {
			Name    string `toml:"name"`
			Version string `toml:"version"`
		} `toml:"poetry"`
	} `toml:"tool"`
}

// LoadPyProject parses the pyproject.toml at path.
func LoadPyProject(path string) (*PyProject, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	return ParsePyProject(data)
}

// ParsePyProject parses pyproject.toml contents.
func ParsePyProject(data []byte) (*PyProject, error) {
	var raw rawPyProject
	if err := toml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("failed to parse TOML: %w", err)
	}

	p := &PyProject{}
	if raw.Project != nil {
		p.Name = raw.Project.Name
		p.Version = raw.Project.Version
	}
	if poetry := raw.Tool.Poetry; poetry != nil {
		p.UsesPoetry = true
		if poetry.Name != "" {
			p.Name = poetry.Name
		}
		if poetry.Version != "" {
			p.Version = poetry.Version
		}
	}
	return p, nil
}
