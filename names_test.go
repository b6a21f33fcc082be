package adis

import "testing"

func TestNamesResolve(t *testing.T) {
	names := Names{
		"00800001": "exact",
		"0001":     "short suffix",
		"1":        "one",
	}
	tests := []struct {
		item   string
		want   string
		wantOK bool
	}{
		{"00800001", "exact", true},
		{"00900001", "short suffix", true},
		{"00000021", "one", true},
		{"00000002", "", false},
	}
	for _, tt := range tests {
		got, ok := names.Resolve(tt.item)
		if got != tt.want || ok != tt.wantOK {
			t.Errorf("Resolve(%q) = %q, %v, want %q, %v", tt.item, got, ok, tt.want, tt.wantOK)
		}
	}
}

// TestAnnotate verifies that Annotate names every definition, falling
// back to the item number, and leaves its input untouched.
func TestAnnotate(t *testing.T) {
	m := mustParse(t, sample).Mapping(Options{})
	named := m.Annotate(Names{"0001": "animal id", "00000004": "weight"})

	first, _ := named[0].Get("123456")
	if got := first.Definitions[0].Name; got != "animal id" {
		t.Errorf("00000001 name = %q", got)
	}
	if got := first.Definitions[1].Name; got != "00000002" {
		t.Errorf("00000002 name = %q, want item number fallback", got)
	}
	second, _ := named[1].Get("654321")
	if got := second.Definitions[1].Name; got != "weight" {
		t.Errorf("00000004 name = %q", got)
	}

	orig, _ := m[0].Get("123456")
	if orig.Definitions[0].Name != "" {
		t.Errorf("Annotate modified its input: %q", orig.Definitions[0].Name)
	}
}

// TestAnnotatedMappingRebuilds verifies that names are presentation only:
// an annotated mapping converts back to the same document.
func TestAnnotatedMappingRebuilds(t *testing.T) {
	named := mustParse(t, sample).Mapping(Options{}).Annotate(Names{"1": "x"})
	d, err := FromMapping(named)
	if err != nil {
		t.Fatal(err)
	}
	if got := mustDump(t, d); got != sample {
		t.Errorf("Dump() =\n%q\nwant\n%q", got, sample)
	}
}
