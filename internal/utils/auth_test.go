package utils

import "testing"

func TestPasswordHashRoundTrip(t *testing.T) {
	hash, err := HashPassword("1234")
	if err != nil {
		t.Fatalf("HashPassword: %v", err)
	}

	if !CheckPasswordHash("1234", hash) {
		t.Error("correct password rejected")
	}
	if CheckPasswordHash("wrong", hash) {
		t.Error("wrong password accepted")
	}
}

func TestMasterTokenRoundTrip(t *testing.T) {
	secret := "test-secret"

	token, err := GenerateMasterToken(secret)
	if err != nil {
		t.Fatalf("GenerateMasterToken: %v", err)
	}

	claims, err := ValidateToken(token, secret)
	if err != nil {
		t.Fatalf("ValidateToken: %v", err)
	}
	if claims["role"] != "master" {
		t.Errorf("role claim = %v, want master", claims["role"])
	}

	if _, err := ValidateToken(token, "other-secret"); err == nil {
		t.Error("token validated with the wrong secret")
	}
}
