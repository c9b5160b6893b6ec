package util

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

func LoadAndExpandYaml(baseDir, filename string) (string, error) {
	file := filepath.Join(baseDir, filename+".yml")
	if _, err := os.Stat(file); err != nil {
		return "", fmt.Errorf("%s.yml not found", filename)
	}

	raw, err := os.ReadFile(file)
	if err != nil {
		return "", fmt.Errorf("read file: %w", err)
	}

	expanded, err := ExpandEnvStrict(string(raw))
	if err != nil {
		return "", fmt.Errorf("%s.yml: %w", filename, err)
	}

	return expanded, nil
}

// DecodeYaml expands and unmarshals baseDir/filename.yml into out. Keys absent
// from the file keep whatever out already holds.
func DecodeYaml(baseDir, filename string, out any) error {
	expanded, err := LoadAndExpandYaml(baseDir, filename)
	if err != nil {
		return err
	}

	if err := yaml.Unmarshal([]byte(expanded), out); err != nil {
		return fmt.Errorf("parse %s.yml: %w", filename, err)
	}
	return nil
}
