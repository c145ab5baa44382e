package rules

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/tallyfold/mis/internal/taxonomy"
)

func writeRulesFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "rules.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadFile(t *testing.T) {
	path := writeRulesFile(t, `
rules:
  - pattern: "landlord"
    head: operating
    subhead: "Office Rent"
  - pattern: "zomato"
    head: operating
    subhead: "Miscellaneous"
ignore:
  - pattern: "petty cash"
    reason: "Cash movement"
`)
	f, err := LoadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if len(f.Rules) != 2 || len(f.Ignore) != 1 {
		t.Fatalf("rules=%d ignore=%d", len(f.Rules), len(f.Ignore))
	}
	if f.Rules[0].Head != taxonomy.HeadOperating || f.Rules[0].Source != SourceUser {
		t.Fatalf("rule = %+v", f.Rules[0])
	}
	if f.Ignore[0].Reason != "Cash movement" {
		t.Fatalf("ignore = %+v", f.Ignore[0])
	}
}

func TestLoadFileRejectsUnknownHead(t *testing.T) {
	path := writeRulesFile(t, `
rules:
  - pattern: "landlord"
    head: capex
    subhead: "Anything"
`)
	if _, err := LoadFile(path); err == nil {
		t.Fatal("unknown head must fail the load")
	}
}

func TestLoadFileKeepsBadPatterns(t *testing.T) {
	// A non-compiling pattern loads fine; the set reports it as rejected
	// and never matches it.
	path := writeRulesFile(t, `
rules:
  - pattern: "("
    head: operating
    subhead: "Salaries"
`)
	f, err := LoadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	set := NewSet(f.Rules, f.Ignore)
	if len(set.Rejected()) != 1 {
		t.Fatalf("rejected = %+v", set.Rejected())
	}
}

func TestLoadFileMissing(t *testing.T) {
	if _, err := LoadFile(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Fatal("missing file must error")
	}
}
