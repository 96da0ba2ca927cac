package models

import "testing"

func TestParseEmitSet(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		want    []string
		wantErr bool
	}{
		{"single", "name", []string{EmitName}, false},
		{"comma separated", "name,html,attach", []string{EmitName, EmitHTML, EmitAttach}, false},
		{"plus separated", "name+attach", []string{EmitName, EmitAttach}, false},
		{"space separated", "html attach", []string{EmitHTML, EmitAttach}, false},
		{"body alias", "body", []string{EmitHTML}, false},
		{"mixed case", "NAME,Html", []string{EmitName, EmitHTML}, false},
		{"duplicate is idempotent", "html,body", []string{EmitHTML}, false},
		{"invalid value", "name,bogus", nil, true},
		{"empty", "", nil, true},
		{"only separators", ", ,", nil, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			set, err := ParseEmitSet(tt.raw)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("ParseEmitSet(%q) = %v, want error", tt.raw, set)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseEmitSet(%q): %v", tt.raw, err)
			}
			if len(set) != len(tt.want) {
				t.Fatalf("ParseEmitSet(%q) = %v, want modes %v", tt.raw, set, tt.want)
			}
			for _, mode := range tt.want {
				if !set.Has(mode) {
					t.Errorf("ParseEmitSet(%q) missing %q", tt.raw, mode)
				}
			}
		})
	}
}

func TestEmitSetString(t *testing.T) {
	set, err := ParseEmitSet("attach,name")
	if err != nil {
		t.Fatalf("ParseEmitSet: %v", err)
	}
	if got := set.String(); got != "attach,name" {
		t.Errorf("String() = %q, want %q", got, "attach,name")
	}
}
