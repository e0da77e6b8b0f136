package profile

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/charmbracelet/log"
	"gopkg.in/yaml.v3"
)

// Parse decodes and validates a single YAML profile. Unknown keys are rejected.
func Parse(data []byte) (*Profile, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	var p Profile
	if err := dec.Decode(&p); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("%w: empty document", ErrInvalidProfile)
		}
		return nil, fmt.Errorf("%w: %v", ErrInvalidProfile, err)
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}
	return &p, nil
}

// Load reads and validates the profile at path
func Load(path string) (*Profile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read profile: %w", err)
	}
	p, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return p, nil
}

// LoadDir loads every *.yaml and *.yml file in dir in name order. Invalid
// files are logged and skipped; a later file with a duplicate profile name
// is skipped too.
func LoadDir(dir string, logger *log.Logger) ([]*Profile, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read profile directory: %w", err)
	}

	var profiles []*Profile
	seen := map[string]string{}
	for _, e := range entries {
		ext := strings.ToLower(filepath.Ext(e.Name()))
		if e.IsDir() || (ext != ".yaml" && ext != ".yml") {
			continue
		}
		path := filepath.Join(dir, e.Name())
		p, err := Load(path)
		if err != nil {
			logger.Warn("Skipping profile", "path", path, "error", err)
			continue
		}
		if first, dup := seen[p.Name]; dup {
			logger.Warn("Skipping duplicate profile", "name", p.Name, "path", path, "first", first)
			continue
		}
		seen[p.Name] = path
		profiles = append(profiles, p)
	}
	return profiles, nil
}

// Find returns the profile named name, ignoring case
func Find(profiles []*Profile, name string) (*Profile, bool) {
	i := slices.IndexFunc(profiles, func(p *Profile) bool { return strings.EqualFold(p.Name, name) })
	if i < 0 {
		return nil, false
	}
	return profiles[i], true
}

// Names lists profile names in order
func Names(profiles []*Profile) []string {
	out := make([]string, len(profiles))
	for i, p := range profiles {
		out[i] = p.Name
	}
	return out
}

// Encode writes a profile as YAML to w
func Encode(w io.Writer, p *Profile) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(p); err != nil {
		return err
	}
	return enc.Close()
}

// Marshal encodes a profile as YAML
func Marshal(p *Profile) ([]byte, error) {
	var buf bytes.Buffer
	if err := Encode(&buf, p); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
