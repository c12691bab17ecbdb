// Package data assembles the values templates render with, from YAML files,
// .env files and inline key=value pairs.
package data

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Data is the context handed to templates.
type Data map[string]any

// LoadFile reads one data file. The format follows the extension: .yaml and
// .yml are YAML, .json is JSON, and .env (or a name starting with .env) is a
// dotenv file whose values are strings.
func LoadFile(path string) (Data, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read data file %s: %w", path, err)
	}

	out := make(Data)
	base := filepath.Base(path)
	switch ext := strings.ToLower(filepath.Ext(path)); {
	case ext == ".yaml" || ext == ".yml":
		if err := yaml.Unmarshal(raw, &out); err != nil {
			return nil, fmt.Errorf("failed to parse %s: %w", path, err)
		}
	case ext == ".json":
		if err := json.Unmarshal(raw, &out); err != nil {
			return nil, fmt.Errorf("failed to parse %s: %w", path, err)
		}
	case ext == ".env" || strings.HasPrefix(base, ".env"):
		vars, err := godotenv.UnmarshalBytes(raw)
		if err != nil {
			return nil, fmt.Errorf("failed to parse %s: %w", path, err)
		}
		for k, v := range vars {
			out[k] = v
		}
	default:
		return nil, fmt.Errorf("unsupported data file %s (want .yaml, .yml, .json or .env)", path)
	}
	return out, nil
}

// ParseInline parses key=value pairs as given to --set.
func ParseInline(pairs []string) (Data, error) {
	out := make(Data, len(pairs))
	for _, pair := range pairs {
		key, value, ok := strings.Cut(pair, "=")
		key = strings.TrimSpace(key)
		if !ok || key == "" {
			return nil, fmt.Errorf("invalid --set %q (want key=value)", pair)
		}
		out[key] = value
	}
	return out, nil
}

// Merge combines sets left to right; later keys win.
func Merge(sets ...Data) Data {
	out := make(Data)
	for _, s := range sets {
		for k, v := range s {
			out[k] = v
		}
	}
	return out
}

// Load reads files in order, then applies inline pairs on top.
func Load(files, inline []string) (Data, error) {
	sets := make([]Data, 0, len(files)+1)
	for _, f := range files {
		if f == "" {
			continue
		}
		d, err := LoadFile(f)
		if err != nil {
			return nil, err
		}
		sets = append(sets, d)
	}

	vars, err := ParseInline(inline)
	if err != nil {
		return nil, err
	}
	return Merge(append(sets, vars)...), nil
}
