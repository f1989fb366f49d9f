package recordapi

import (
	"context"
	"errors"
	"fmt"
	"testing"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		err  error
		want Kind
	}{
		{errors.New("Not Authorized to access listFirms on type Query"), KindAuthorizationDenied},
		{errors.New("Unauthorized"), KindAuthorizationDenied},
		{errors.New("Missing credentials in config"), KindAuthorizationDenied},
		{errors.New("mongo: no documents in result"), KindNotFound},
		{errors.New("record not found"), KindNotFound},
		{errors.New("connection reset by peer"), KindOther},
	}
	for _, tt := range tests {
		if got := Classify(tt.err); got != tt.want {
			t.Errorf("Classify(%q) = %v, want %v", tt.err, got, tt.want)
		}
	}
}

func TestClassifyWrapped(t *testing.T) {
	inner := Denied("loads.list", errors.New("boom"))
	outer := fmt.Errorf("listing loads: %w", inner)
	if got := Classify(outer); got != KindAuthorizationDenied {
		t.Errorf("Classify(wrapped) = %v, want KindAuthorizationDenied", got)
	}
}

func TestWithAuthFallback_UserSucceeds(t *testing.T) {
	var modes []AuthMode
	err := WithAuthFallback(context.Background(), func(ctx context.Context, mode AuthMode) error {
		modes = append(modes, mode)
		return nil
	})
	if err != nil {
		t.Fatal(err)
	}
	if len(modes) != 1 || modes[0] != ModeUser {
		t.Errorf("modes = %v, want [ModeUser]", modes)
	}
}

func TestWithAuthFallback_DeniedFallsBackToGuest(t *testing.T) {
	var modes []AuthMode
	err := WithAuthFallback(context.Background(), func(ctx context.Context, mode AuthMode) error {
		modes = append(modes, mode)
		if mode == ModeUser {
			return Denied("firms.list", errors.New("Not Authorized"))
		}
		return nil
	})
	if err != nil {
		t.Fatal(err)
	}
	if len(modes) != 2 || modes[1] != ModeGuest {
		t.Errorf("modes = %v, want [ModeUser ModeGuest]", modes)
	}
}

func TestWithAuthFallback_OtherErrorNotRetried(t *testing.T) {
	calls := 0
	want := errors.New("disk on fire")
	err := WithAuthFallback(context.Background(), func(ctx context.Context, mode AuthMode) error {
		calls++
		return want
	})
	if !errors.Is(err, want) {
		t.Errorf("err = %v, want %v", err, want)
	}
	if calls != 1 {
		t.Errorf("calls = %d, want 1", calls)
	}
}
