package inputval

import "testing"

func TestIsValidEmail(t *testing.T) {
	tests := []struct {
		email string
		want  bool
	}{
		{"user@example.com", true},
		{"user.name@example.com", true},
		{"user+tag@example.com", true},
		{"user@subdomain.example.com", true},
		{"a@b.co", true},
		{"user@localhost", true},

		{"", false},
		{"   ", false},
		{"user", false},
		{"user@", false},
		{"@example.com", false},
		{".user@example.com", false},
		{"user.@example.com", false},
		{"user..name@example.com", false},
		{"user@.example.com", false},
		{"user@example..com", false},
		{"User Name <user@example.com>", false},
		{"user @example.com", false},
	}

	for _, tt := range tests {
		t.Run(tt.email, func(t *testing.T) {
			if got := IsValidEmail(tt.email); got != tt.want {
				t.Errorf("IsValidEmail(%q) = %v, want %v", tt.email, got, tt.want)
			}
		})
	}
}

func TestIsValidZip(t *testing.T) {
	tests := []struct {
		zip  string
		want bool
	}{
		{"12345", true},
		{"123456789", true},
		{"1234", false},
		{"123456", false},
		{"12345-6789", false},
		{"abcde", false},
	}
	for _, tt := range tests {
		if got := IsValidZip(tt.zip); got != tt.want {
			t.Errorf("IsValidZip(%q) = %v, want %v", tt.zip, got, tt.want)
		}
	}
}

func TestParseDate(t *testing.T) {
	if _, msg := ParseDate("Pickup Date", "2025-06-15"); msg != "" {
		t.Errorf("valid date rejected: %s", msg)
	}
	cases := []string{
		"06/15/2025",
		"2025-13-01",
		"2025-00-10",
		"2025-01-32",
		"1899-01-01",
		"2101-01-01",
		"2025-02-30", // fails calendar parse
		"",
	}
	for _, c := range cases {
		if _, msg := ParseDate("Pickup Date", c); msg == "" {
			t.Errorf("ParseDate(%q) accepted, want rejection", c)
		}
	}
}

func TestParseDateOrdering(t *testing.T) {
	pickup, msg := ParseDate("Pickup Date", "2025-06-15")
	if msg != "" {
		t.Fatal(msg)
	}
	delivery, msg := ParseDate("Delivery Date", "2025-06-14")
	if msg != "" {
		t.Fatal(msg)
	}
	if !delivery.Before(pickup) {
		t.Error("expected delivery before pickup for ordering check")
	}
}

func TestParseMiles(t *testing.T) {
	if mi, msg := ParseMiles("120"); msg != "" || mi != 120 {
		t.Errorf("ParseMiles(120) = %d, %q", mi, msg)
	}
	if _, msg := ParseMiles("-5"); msg == "" {
		t.Error("ParseMiles(-5) accepted, want non-negative integer error")
	} else if msg != "Miles must be a non-negative integer." {
		t.Errorf("ParseMiles(-5) message = %q", msg)
	}
	if _, msg := ParseMiles("2000001"); msg == "" {
		t.Error("ParseMiles above bound accepted")
	}
	if _, msg := ParseMiles("12.5"); msg == "" {
		t.Error("ParseMiles(12.5) accepted, want integer error")
	}
	if mi, msg := ParseMiles(""); msg != "" || mi != 0 {
		t.Errorf("ParseMiles(\"\") = %d, %q, want 0 and no error", mi, msg)
	}
}

func TestParseRate(t *testing.T) {
	if r, msg := ParseRate("1500.50"); msg != "" || r != 1500.50 {
		t.Errorf("ParseRate(1500.50) = %v, %q", r, msg)
	}
	if _, msg := ParseRate("-1"); msg == "" {
		t.Error("ParseRate(-1) accepted")
	}
	if _, msg := ParseRate("10000001"); msg == "" {
		t.Error("ParseRate above bound accepted")
	}
}
