package bootstrap

import (
	"testing"
	"time"

	"go.uber.org/zap"
)

func TestCodeTTLText(t *testing.T) {
	cases := []struct {
		d    time.Duration
		want string
	}{
		{time.Minute, "1 minute"},
		{10 * time.Minute, "10 minutes"},
		{90 * time.Minute, "90 minutes"},
		{time.Hour, "1 hour"},
		{2 * time.Hour, "2 hours"},
	}
	for _, tc := range cases {
		if got := codeTTLText(tc.d); got != tc.want {
			t.Errorf("codeTTLText(%s): got %q, want %q", tc.d, got, tc.want)
		}
	}
}

func TestValidateConfig_RejectsBadInput(t *testing.T) {
	logger := zap.NewNop()

	base := AppConfig{
		MongoURI:   "mongodb://localhost:27017",
		CodeExpiry: 10 * time.Minute,
	}

	if err := ValidateConfig(nil, base, logger); err != nil {
		t.Errorf("valid config rejected: %v", err)
	}

	bad := base
	bad.MongoURI = "not-a-uri"
	if err := ValidateConfig(nil, bad, logger); err == nil {
		t.Error("bad MongoDB URI accepted")
	}

	bad = base
	bad.CodeExpiry = 5 * time.Second
	if err := ValidateConfig(nil, bad, logger); err == nil {
		t.Error("sub-minute code expiry accepted")
	}

	bad = base
	bad.GoogleClientID = "id-without-secret"
	if err := ValidateConfig(nil, bad, logger); err == nil {
		t.Error("half-configured Google OAuth accepted")
	}
}
