package meta

import (
	"strings"
	"testing"
)

func TestStableJSONSortsKeys(t *testing.T) {
	m := New(map[string]string{"register": "FY26 UP", "gst_type": "CGST"})
	b, err := m.MarshalStableJSON()
	if err != nil {
		t.Fatal(err)
	}
	want := `{"gst_type":"CGST","register":"FY26 UP"}`
	if string(b) != want {
		t.Fatalf("got %s, want %s", b, want)
	}
}

func TestValidateLimits(t *testing.T) {
	m := New(nil)
	m.Set("k", strings.Repeat("v", MaxValLen))
	if err := m.Validate(); err != nil {
		t.Fatalf("at-limit value must pass: %v", err)
	}

	over := Metadata{"k": strings.Repeat("v", MaxValLen+1)}
	if err := over.Validate(); err == nil {
		t.Fatal("over-limit value must fail")
	}
}

func TestUnmarshalNull(t *testing.T) {
	var m Metadata
	if err := m.UnmarshalJSON([]byte("null")); err != nil {
		t.Fatal(err)
	}
	if len(m) != 0 {
		t.Fatalf("m = %+v", m)
	}
}
