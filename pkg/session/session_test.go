package session

import (
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const testSecret = "test-session-secret"

func signToken(t *testing.T, secret string, claims Claims) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(secret))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return signed
}

func TestVerify(t *testing.T) {
	tokenString := signToken(t, testSecret, Claims{
		Email:     "ada@example.com",
		FirstName: "Ada",
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "user_abc",
			Issuer:    "https://id.example.com",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	})

	verifier := NewVerifier(testSecret, "https://id.example.com")
	claims, err := verifier.Verify(tokenString)
	if err != nil {
		t.Fatalf("Verify failed: %v", err)
	}
	if claims.Subject != "user_abc" {
		t.Errorf("unexpected subject: %s", claims.Subject)
	}
	if claims.Email != "ada@example.com" {
		t.Errorf("unexpected email: %s", claims.Email)
	}
	if claims.FirstName != "Ada" {
		t.Errorf("unexpected first name: %s", claims.FirstName)
	}
}

func TestVerifyWrongSecret(t *testing.T) {
	tokenString := signToken(t, "some-other-secret", Claims{
		RegisteredClaims: jwt.RegisteredClaims{Subject: "user_abc"},
	})

	verifier := NewVerifier(testSecret, "")
	if _, err := verifier.Verify(tokenString); err == nil {
		t.Fatal("expected error for token signed with a different secret")
	}
}

func TestVerifyExpiredToken(t *testing.T) {
	tokenString := signToken(t, testSecret, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "user_abc",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Hour)),
		},
	})

	verifier := NewVerifier(testSecret, "")
	if _, err := verifier.Verify(tokenString); err == nil {
		t.Fatal("expected error for expired token")
	}
}

func TestVerifyMissingSubject(t *testing.T) {
	tokenString := signToken(t, testSecret, Claims{Email: "no-subject@example.com"})

	verifier := NewVerifier(testSecret, "")
	_, err := verifier.Verify(tokenString)
	if err == nil {
		t.Fatal("expected error for token without subject")
	}
	if !strings.Contains(err.Error(), "subject") {
		t.Errorf("error should mention the subject, got: %v", err)
	}
}

func TestVerifyIssuerMismatch(t *testing.T) {
	tokenString := signToken(t, testSecret, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject: "user_abc",
			Issuer:  "https://evil.example.com",
		},
	})

	verifier := NewVerifier(testSecret, "https://id.example.com")
	if _, err := verifier.Verify(tokenString); err == nil {
		t.Fatal("expected error for issuer mismatch")
	}
}

func TestVerifyRejectsUnsignedToken(t *testing.T) {
	token := jwt.NewWithClaims(jwt.SigningMethodNone, Claims{
		RegisteredClaims: jwt.RegisteredClaims{Subject: "user_abc"},
	})
	tokenString, err := token.SignedString(jwt.UnsafeAllowNoneSignatureType)
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}

	verifier := NewVerifier(testSecret, "")
	if _, err := verifier.Verify(tokenString); err == nil {
		t.Fatal("expected error for alg=none token")
	}
}
