package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

const (
	// FileName is the project config file; its directory is the project root.
	FileName = "guide.yaml"
	// StateDir holds build state, timing, and hook logs.
	StateDir = ".guidebook"
)

type Hook struct {
	Run     string `yaml:"run"`
	Timeout int    `yaml:"timeout"` // minutes
}

type Hooks struct {
	PostBuild *Hook `yaml:"post-build"`
}

type Serve struct {
	Addr string `yaml:"addr"`
}

// VarEntry is one custom variable, kept in declaration order.
type VarEntry struct {
	Key   string
	Value string
}

// OrderedVars is a YAML mapping decoded in document order, so later
// values can reference earlier ones.
type OrderedVars []VarEntry

func (v *OrderedVars) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.MappingNode {
		return fmt.Errorf("line %d: vars must be a mapping", node.Line)
	}
	out := make(OrderedVars, 0, len(node.Content)/2)
	for i := 0; i+1 < len(node.Content); i += 2 {
		k, val := node.Content[i], node.Content[i+1]
		if val.Kind != yaml.ScalarNode {
			return fmt.Errorf("line %d: var %q must be a scalar", val.Line, k.Value)
		}
		out = append(out, VarEntry{Key: k.Value, Value: val.Value})
	}
	*v = out
	return nil
}

type Config struct {
	Title         string      `yaml:"title"`
	Source        string      `yaml:"source"`
	Output        string      `yaml:"output"`
	Format        string      `yaml:"format"`
	IncludeDrafts bool        `yaml:"include-drafts"`
	Vars          OrderedVars `yaml:"vars"`
	Hooks         Hooks       `yaml:"hooks"`
	Serve         Serve       `yaml:"serve"`
}

// Load reads a YAML config file and returns a validated Config.
func Load(path, projectRoot string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}
	if err := Validate(&cfg, projectRoot); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// SourcePath resolves the content source against the project root.
func (c *Config) SourcePath(projectRoot string) string {
	return resolve(projectRoot, c.Source)
}

// OutputPath resolves the output file against the project root.
func (c *Config) OutputPath(projectRoot string) string {
	return resolve(projectRoot, c.Output)
}

func resolve(root, p string) string {
	if filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(root, p)
}

// FindProjectRoot walks up from dir looking for guide.yaml.
func FindProjectRoot(dir string) (string, error) {
	for {
		if _, err := os.Stat(filepath.Join(dir, FileName)); err == nil {
			return dir, nil
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", fmt.Errorf("no %s found (searched from cwd to root); run 'guidebook init' to create one", FileName)
		}
		dir = parent
	}
}
