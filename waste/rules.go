package waste

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// LoadTables reads a rules file. An empty path yields the built-in tables; a
// table missing from the file falls back to its built-in counterpart.
func LoadTables(path string) (Tables, bool, error) {
	clean := strings.TrimSpace(path)
	if clean == "" {
		return DefaultTables(), false, nil
	}
	data, err := os.ReadFile(filepath.Clean(clean))
	if err != nil {
		return DefaultTables(), false, fmt.Errorf("read rules: %w", err)
	}
	var overrides Tables
	if err := json.Unmarshal(data, &overrides); err != nil {
		return DefaultTables(), false, fmt.Errorf("decode rules: %w", err)
	}
	return overrides.withDefaults(), true, nil
}

// LoadResolver builds a resolver from the rules file at path. On failure the
// built-in resolver is returned together with the error.
func LoadResolver(path string) (*Resolver, bool, error) {
	tables, fromFile, err := LoadTables(path)
	if err != nil {
		return defaultResolver, false, err
	}
	if !fromFile {
		return defaultResolver, false, nil
	}
	return NewResolver(tables), true, nil
}

// WriteDefaultRules writes the built-in tables to path when the file does not
// exist yet, giving users a starting point for editing outside of the binary.
func WriteDefaultRules(path string) (bool, error) {
	clean := strings.TrimSpace(path)
	if clean == "" {
		return false, errors.New("rules path is empty")
	}
	clean = filepath.Clean(clean)
	if _, err := os.Stat(clean); err == nil {
		return false, nil
	} else if !errors.Is(err, os.ErrNotExist) {
		return false, fmt.Errorf("stat rules: %w", err)
	}
	if dir := filepath.Dir(clean); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return false, fmt.Errorf("create rules dir: %w", err)
		}
	}
	data, err := json.MarshalIndent(DefaultTables(), "", "  ")
	if err != nil {
		return false, fmt.Errorf("encode rules: %w", err)
	}
	if err := os.WriteFile(clean, append(data, '\n'), 0o644); err != nil {
		return false, fmt.Errorf("write rules: %w", err)
	}
	return true, nil
}
