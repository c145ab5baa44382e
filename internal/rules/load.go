package rules

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/tallyfold/mis/internal/taxonomy"
)

// File is the on-disk shape of a user rule file.
//
//	rules:
//	  - pattern: "landlord"
//	    head: operating
//	    subhead: "Office Rent"
//	ignore:
//	  - pattern: "petty cash"
//	    reason: "Cash movement"
type File struct {
	Rules  []Rule       `yaml:"rules"`
	Ignore []IgnoreRule `yaml:"ignore"`
}

// LoadFile reads user rules from a YAML file. Rules naming an unknown
// head are rejected here; patterns that fail to compile are loaded anyway
// and reported through Set.Rejected, preserving the never-throws matching
// contract.
func LoadFile(path string) (File, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return File{}, err
	}
	var f File
	if err := yaml.Unmarshal(b, &f); err != nil {
		return File{}, fmt.Errorf("parse rules file %s: %w", path, err)
	}
	for i, r := range f.Rules {
		if !taxonomy.Valid(r.Head) {
			return File{}, fmt.Errorf("rules file %s: rule %d: unknown head %q", path, i, r.Head)
		}
		f.Rules[i].Source = SourceUser
	}
	return f, nil
}
