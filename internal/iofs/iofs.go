// Package iofs prepares the directories and files valemdb keeps in the
// user's home directory and reads the embedded seed data.
package iofs

import (
	_ "embed"
	"os"

	"github.com/gnames/valemdb/pkg/config"
	"github.com/gnames/valemdb/pkg/schema"
	"gopkg.in/yaml.v3"
)

//go:embed config.yaml
var ConfigYAML string

//go:embed process_types.yaml
var ProcessTypesYAML string

type processTypesFile struct {
	ProcessTypes []schema.ProcessType `yaml:"process_types"`
}

func EnsureDirs(homeDir string) error {
	dirs := []string{
		config.ConfigDir(homeDir),
		config.CacheDir(homeDir),
		config.LogDir(homeDir),
	}
	for _, v := range dirs {
		if err := touchDir(v); err != nil {
			return err
		}
	}
	return nil
}

func touchDir(dir string) error {
	info, err := os.Stat(dir)
	if err == nil && info.IsDir() {
		return nil
	}

	if err := os.MkdirAll(dir, 0755); err != nil {
		return CreateDirError(dir, err)
	}

	return nil
}

func EnsureConfigFile(homeDir string) error {
	configPath := config.ConfigFilePath(homeDir)

	if _, err := os.Stat(configPath); err == nil {
		return nil
	}

	if err := os.WriteFile(configPath, []byte(ConfigYAML), 0644); err != nil {
		return CopyFileError(configPath, err)
	}

	return nil
}

// ProcessTypes returns the embedded process type table.
func ProcessTypes() ([]schema.ProcessType, error) {
	return decodeProcessTypes("process_types.yaml", []byte(ProcessTypesYAML))
}

// ReadProcessTypes reads a process type table in the format of the
// embedded one.
func ReadProcessTypes(path string) ([]schema.ProcessType, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, ReadFileError(path, err)
	}
	return decodeProcessTypes(path, data)
}

func decodeProcessTypes(path string, data []byte) ([]schema.ProcessType, error) {
	var f processTypesFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, ParseFileError(path, err)
	}
	return f.ProcessTypes, nil
}
