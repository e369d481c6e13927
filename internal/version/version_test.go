package version

import "testing"

func TestDescribe(t *testing.T) {
	cases := []struct {
		name     string
		version  string
		revision string
		want     string
	}{
		{"release", "v1.2.3", "", "v1.2.3"},
		{"release with revision", "v1.2.3", "0123456789abcdef0123", "v1.2.3 0123456789ab"},
		{"empty", "", "", "(devel)"},
		{"devel", "(devel)", "abc", "(devel) abc"},
		{"dirty", "v1.2.3+dirty", "", "(devel)"},
		{"pseudo", "v0.0.0-20250101120000-abcdef123456", "", "(devel)"},
		{"prerelease pseudo", "v1.2.4-0.20250101120000-abcdef123456", "", "(devel)"},
		{"prerelease", "v1.3.0-rc.1", "", "v1.3.0-rc.1"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := describe(tc.version, tc.revision); got != tc.want {
				t.Fatalf("describe(%q, %q) = %q, want %q", tc.version, tc.revision, got, tc.want)
			}
		})
	}
}
