package email

import "testing"

func TestValidate(t *testing.T) {
	valid := []string{
		"alice@example.com",
		"a.b+tag@sub.example.org",
		"x@localhost",
	}
	for _, addr := range valid {
		if !Validate(addr) {
			t.Errorf("expected %q to be valid", addr)
		}
	}

	invalid := []string{
		"",
		"not-an-email",
		"@example.com",
		"alice@",
		"John Doe <john@example.com>",
		"two@@example.com",
	}
	for _, addr := range invalid {
		if Validate(addr) {
			t.Errorf("expected %q to be invalid", addr)
		}
	}
}

func TestDeriveNameFromEmail(t *testing.T) {
	cases := []struct {
		in          string
		first, last string
	}{
		{"john.doe@example.com", "John", "Doe"},
		{"alice@example.com", "Alice", "User"},
		{"a_b-c@example.com", "A", "C"},
		{"", "User", "User"},
	}
	for _, tc := range cases {
		first, last := DeriveNameFromEmail(tc.in)
		if first != tc.first || last != tc.last {
			t.Errorf("DeriveNameFromEmail(%q) = %q, %q; want %q, %q", tc.in, first, last, tc.first, tc.last)
		}
	}
}
