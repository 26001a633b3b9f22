package token

import (
	"errors"
	"strings"
	"testing"
	"time"
)

func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

func TestIssueVerifyRoundTrip(t *testing.T) {
	issuedAt := time.Date(2025, 1, 2, 10, 0, 0, 0, time.UTC)
	claims := []map[string]any{
		{"email": "a@b.com"},
		{"email": "c@d.com", "name": "Carol", "admin": true, "age": float64(31)},
		{},
	}
	secrets := []string{"s", "another-much-longer-secret-value"}

	for _, secret := range secrets {
		for _, claim := range claims {
			svc := NewService([]byte(secret), WithClock(fixedClock(issuedAt)))
			raw, err := svc.Issue(claim)
			if err != nil {
				t.Fatalf("Issue: %v", err)
			}

			verifier := NewService([]byte(secret), WithClock(fixedClock(issuedAt.Add(TTL-time.Minute))))
			got, err := verifier.Verify(raw)
			if err != nil {
				t.Fatalf("Verify: %v", err)
			}
			if len(got.Attributes) != len(claim) {
				t.Fatalf("attributes = %#v, want %#v", got.Attributes, claim)
			}
			for k, v := range claim {
				if got.Attributes[k] != v {
					t.Fatalf("attribute %q = %#v, want %#v", k, got.Attributes[k], v)
				}
			}
			if !got.ExpiresAt.Equal(issuedAt.Add(TTL)) {
				t.Fatalf("ExpiresAt = %v, want %v", got.ExpiresAt, issuedAt.Add(TTL))
			}
			if !got.IssuedAt.Equal(issuedAt) {
				t.Fatalf("IssuedAt = %v, want %v", got.IssuedAt, issuedAt)
			}
		}
	}
}

func TestIssueOverridesReservedClaims(t *testing.T) {
	now := time.Date(2025, 1, 2, 10, 0, 0, 0, time.UTC)
	svc := NewService([]byte("secret"), WithClock(fixedClock(now)))

	raw, err := svc.Issue(map[string]any{"email": "a@b.com", "exp": float64(now.Add(100 * time.Hour).Unix())})
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}
	got, err := svc.Verify(raw)
	if err != nil {
		t.Fatalf("Verify: %v", err)
	}
	if !got.ExpiresAt.Equal(now.Add(TTL)) {
		t.Fatalf("caller exp was kept: %v", got.ExpiresAt)
	}
	if got.Email() != "a@b.com" {
		t.Fatalf("Email() = %q", got.Email())
	}
}

func TestVerifyRejectsWrongSecret(t *testing.T) {
	raw, err := NewService([]byte("secret-a")).Issue(map[string]any{"email": "a@b.com"})
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}
	_, err = NewService([]byte("secret-b")).Verify(raw)
	if !errors.Is(err, ErrInvalidSignature) {
		t.Fatalf("Verify error = %v, want ErrInvalidSignature", err)
	}
}

func TestVerifyRejectsTamperedPayload(t *testing.T) {
	svc := NewService([]byte("secret"))
	raw, err := svc.Issue(map[string]any{"email": "a@b.com"})
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}
	other, err := svc.Issue(map[string]any{"email": "mallory@evil.com"})
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}

	parts := strings.Split(raw, ".")
	forged := strings.Join([]string{parts[0], strings.Split(other, ".")[1], parts[2]}, ".")
	if _, err := svc.Verify(forged); !errors.Is(err, ErrInvalidSignature) {
		t.Fatalf("Verify error = %v, want ErrInvalidSignature", err)
	}
}

func TestVerifyRejectsExpired(t *testing.T) {
	issuedAt := time.Date(2025, 1, 2, 10, 0, 0, 0, time.UTC)
	raw, err := NewService([]byte("secret"), WithClock(fixedClock(issuedAt))).Issue(map[string]any{"email": "a@b.com"})
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}

	late := NewService([]byte("secret"), WithClock(fixedClock(issuedAt.Add(TTL+time.Second))))
	if _, err := late.Verify(raw); !errors.Is(err, ErrExpired) {
		t.Fatalf("Verify error = %v, want ErrExpired", err)
	}
}

func TestVerifyRejectsMalformed(t *testing.T) {
	svc := NewService([]byte("secret"))
	for _, raw := range []string{"", "not-a-token", "a.b"} {
		if _, err := svc.Verify(raw); !errors.Is(err, ErrMalformed) {
			t.Errorf("Verify(%q) error = %v, want ErrMalformed", raw, err)
		}
	}
}

func TestMissingSecret(t *testing.T) {
	svc := NewService(nil)
	if _, err := svc.Issue(map[string]any{}); !errors.Is(err, ErrMissingSecret) {
		t.Fatalf("Issue error = %v, want ErrMissingSecret", err)
	}
	if _, err := svc.Verify("x.y.z"); !errors.Is(err, ErrMissingSecret) {
		t.Fatalf("Verify error = %v, want ErrMissingSecret", err)
	}
}
