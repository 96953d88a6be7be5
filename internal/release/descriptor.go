package release

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v2"
)

// DefaultDescriptorFile is the descriptor read when no --config is given
const DefaultDescriptorFile = "release.yml"

// Descriptor is the YAML release configuration.
type Descriptor struct {
	AppName string `yaml:"app_name"`
	Version string `yaml:"version"`
	Icon    string `yaml:"icon"`
	Entry   string `yaml:"entry"`

	// CleanDirs are removed before the bundler runs; DistDir is always
	// cleaned and receives the bundled output.
	CleanDirs []string `yaml:"clean_dirs"`
	DistDir   string   `yaml:"dist_dir"`

	Bundler   CommandSpec   `yaml:"bundler"`
	Installer InstallerSpec `yaml:"installer"`
}

// CommandSpec names an external tool invocation.
type CommandSpec struct {
	Command string   `yaml:"command"`
	Args    []string `yaml:"args"`
}

// InstallerSpec configures the installer compilation step.
type InstallerSpec struct {
	Script string `yaml:"script"`

	// Compiler is looked up on PATH first; FallbackPath is tried when the
	// lookup fails.
	Compiler     string `yaml:"compiler"`
	FallbackPath string `yaml:"fallback_path"`
}

// LoadDescriptor reads and validates a release descriptor file.
func LoadDescriptor(path string) (Descriptor, error) {
	var desc Descriptor
	data, err := os.ReadFile(path)
	if err != nil {
		return desc, fmt.Errorf("reading descriptor: %w", err)
	}
	if err := yaml.UnmarshalStrict(data, &desc); err != nil {
		return desc, fmt.Errorf("parsing descriptor: %w", err)
	}
	if err := desc.Validate(); err != nil {
		return desc, err
	}
	return desc, nil
}

// Validate checks that the descriptor names everything the run needs.
func (d Descriptor) Validate() error {
	if d.AppName == "" {
		return fmt.Errorf("descriptor: app_name is required")
	}
	if d.Bundler.Command == "" {
		return fmt.Errorf("descriptor: bundler.command is required")
	}
	if d.Installer.Script == "" {
		return fmt.Errorf("descriptor: installer.script is required")
	}
	if d.Installer.Compiler == "" && d.Installer.FallbackPath == "" {
		return fmt.Errorf("descriptor: installer needs a compiler or fallback_path")
	}
	return nil
}
