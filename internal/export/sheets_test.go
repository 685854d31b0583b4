package export

import "testing"

func TestSanitizeSheetName(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"Broiler batch 7", "Broiler batch 7"},
		{"Q3/Q4 layers", "Q3-Q4 layers"},
		{"what? [draft]", "what draft"},
		{"  ", "Project"},
		{"a:b*c", "abc"},
	}
	for _, tc := range cases {
		if got := sanitizeSheetName(tc.in); got != tc.want {
			t.Errorf("sanitizeSheetName(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestSanitizeSheetNameCapsLength(t *testing.T) {
	long := make([]byte, 150)
	for i := range long {
		long[i] = 'x'
	}
	if got := sanitizeSheetName(string(long)); len(got) != 100 {
		t.Errorf("len = %d, want 100", len(got))
	}
}
