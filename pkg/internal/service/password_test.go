package service_test

import (
	"testing"

	"github.com/yeisme/ecolevault/pkg/apperr"
	"github.com/yeisme/ecolevault/pkg/configs"
	"github.com/yeisme/ecolevault/pkg/internal/service"
)

func authCfg() *configs.AuthConfig {
	return &configs.AuthConfig{PasswordMinLength: 8}
}

func TestValidatePassword(t *testing.T) {
	cases := []struct {
		name     string
		username string
		password string
		wantErr  bool
	}{
		{"valid", "amira", "s3cure-Pass!", false},
		{"too short", "amira", "abc1", true},
		{"contains username", "amira", "amira12345", true},
		{"username contains password", "abcdefghij", "abcdefgh", true},
		{"common password", "amira", "password123", true},
		{"purely numeric", "amira", "19283746501", true},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			err := service.ValidatePassword(authCfg(), c.username, c.password)
			if (err != nil) != c.wantErr {
				t.Fatalf("ValidatePassword(%q, %q) = %v, wantErr=%v", c.username, c.password, err, c.wantErr)
			}

			if err != nil && apperr.KindOf(err) != apperr.KindValidation {
				t.Fatalf("expected validation kind, got %v", apperr.KindOf(err))
			}
		})
	}
}

func TestHashAndCheckPassword(t *testing.T) {
	hash, err := service.HashPassword("s3cure-Pass!")
	if err != nil {
		t.Fatalf("hash password: %v", err)
	}

	if hash == "s3cure-Pass!" {
		t.Fatal("hash must not equal plaintext")
	}

	if !service.CheckPassword(hash, "s3cure-Pass!") {
		t.Fatal("expected password to match")
	}

	if service.CheckPassword(hash, "wrong-pass") {
		t.Fatal("expected mismatch to fail")
	}
}
