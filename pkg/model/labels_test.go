package model

import "testing"

func TestDefaultLabeler(t *testing.T) {
	cases := map[string]string{
		"fullName":         "Full name",
		"emailAddress":     "Email address",
		"PANNumber":        "PAN number",
		"aadharNumber":     "Aadhar number",
		"date_of_joining":  "Date of joining",
		"permanentAddress": "Permanent address",
		"":                 "",
	}
	for input, want := range cases {
		if got := DefaultLabeler(input); got != want {
			t.Fatalf("DefaultLabeler(%q) = %q, want %q", input, got, want)
		}
	}
}
