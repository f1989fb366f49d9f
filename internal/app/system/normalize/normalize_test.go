package normalize

import "testing"

func TestEmail(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"user@example.com", "user@example.com"},
		{"USER@EXAMPLE.COM", "user@example.com"},
		{"  Admin@Acme.Com  ", "admin@acme.com"},
		{"", ""},
		{"   ", ""},
		{"Mixed.Case@Domain.ORG", "mixed.case@domain.org"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got := Email(tt.input)
			if got != tt.want {
				t.Errorf("Email(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestName(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"John Doe", "John Doe"},
		{"  John Doe  ", "John Doe"},
		{"", ""},
		{"UPPERCASE NAME", "UPPERCASE NAME"}, // Name preserves case
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got := Name(tt.input)
			if got != tt.want {
				t.Errorf("Name(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestRole(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"admin", "Admin"},
		{"ADMIN", "Admin"},
		{"  Regular  ", "Regular"},
		{"", "Regular"},
		{"weird", "weird"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got := Role(tt.input)
			if got != tt.want {
				t.Errorf("Role(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestFirmType(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"carrier", "Carrier"},
		{"Carrier", "Carrier"},
		{"BROKER", "Broker"},
		{" shipper ", "Shipper"},
		{"other", "Other"},
		{"fleet", "fleet"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got := FirmType(tt.input)
			if got != tt.want {
				t.Errorf("FirmType(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestFrequency(t *testing.T) {
	if got := Frequency(" Weekly "); got != "weekly" {
		t.Errorf("Frequency = %q, want %q", got, "weekly")
	}
}

func TestStatus(t *testing.T) {
	if got := Status("Disabled"); got != "disabled" {
		t.Errorf("Status = %q, want %q", got, "disabled")
	}
}
