package util

import "testing"

func TestJWTRoundTrip(t *testing.T) {
	secret := []byte("test-secret")
	token, err := GenerateJWT(42, "user@example.com", secret)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	claims, err := ValidateJWT(token, secret)
	if err != nil {
		t.Fatalf("validate: %v", err)
	}
	if claims.UserID != 42 || claims.Email != "user@example.com" {
		t.Fatalf("claims = %+v", claims)
	}
	if claims.Issuer != "foodgram" {
		t.Fatalf("issuer = %q, want foodgram", claims.Issuer)
	}
}

func TestJWTRejectsWrongKey(t *testing.T) {
	token, err := GenerateJWT(42, "user@example.com", []byte("right-key"))
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if _, err := ValidateJWT(token, []byte("wrong-key")); err == nil {
		t.Fatal("token validated under the wrong key")
	}
}

func TestJWTRejectsGarbage(t *testing.T) {
	if _, err := ValidateJWT("not.a.token", []byte("test-secret")); err == nil {
		t.Fatal("garbage token validated")
	}
}
