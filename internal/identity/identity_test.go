package identity

import (
	"errors"
	"testing"
	"time"
)

func TestVerifier_RoundTrip(t *testing.T) {
	v := NewVerifier("secret", "https://id.sehatsetu.test", "sehatsetu")

	tok, err := v.Sign("uid-1", "dr@example.com", "Dr. Rao", time.Hour)
	if err != nil {
		t.Fatalf("sign: %v", err)
	}

	claims, err := v.Verify(tok)
	if err != nil {
		t.Fatalf("verify: %v", err)
	}
	if claims.Subject != "uid-1" || claims.Email != "dr@example.com" || claims.Name != "Dr. Rao" {
		t.Errorf("unexpected claims %+v", claims)
	}
}

func TestVerifier_Rejects(t *testing.T) {
	v := NewVerifier("secret", "iss", "aud")

	expired, _ := v.Sign("uid-1", "", "", -time.Minute)
	otherKey, _ := NewVerifier("other", "iss", "aud").Sign("uid-1", "", "", time.Hour)
	otherAud, _ := NewVerifier("secret", "iss", "elsewhere").Sign("uid-1", "", "", time.Hour)
	noSubject, _ := v.Sign("", "", "", time.Hour)

	cases := map[string]string{
		"expired":    expired,
		"wrong key":  otherKey,
		"wrong aud":  otherAud,
		"no subject": noSubject,
		"garbage":    "not-a-jwt",
	}
	for name, tok := range cases {
		t.Run(name, func(t *testing.T) {
			if _, err := v.Verify(tok); !errors.Is(err, ErrInvalidToken) {
				t.Fatalf("expected ErrInvalidToken, got %v", err)
			}
		})
	}
}
