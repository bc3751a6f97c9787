package uischema

import "testing"

func TestSanitizeText(t *testing.T) {
	cases := map[string]string{
		"  Full Name  ":                        "Full Name",
		`<b>PAN</b> Number`:                    "PAN Number",
		`Notes<script>alert('x')</script>`:     "Notes",
		"Salary & Benefits":                    "Salary & Benefits",
		"   ":                                  "",
		`<img src=x onerror="alert(1)">Photo`: "Photo",
	}
	for input, want := range cases {
		if got := sanitizeText(input); got != want {
			t.Errorf("sanitizeText(%q) = %q, want %q", input, got, want)
		}
	}
}
