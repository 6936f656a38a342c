package globals

import "testing"

// A secret supplied only through a .env file lands in the environment after
// package init has already run; Init must pick it up.
func TestInitReadsSecretSetAfterPackageInit(t *testing.T) {
	t.Cleanup(Init)
	t.Setenv("JWT_SECRET_KEY", "env-file-secret")

	Init()
	if string(JwtSecret) != "env-file-secret" {
		t.Fatalf("JwtSecret = %q, want the late-set environment value", JwtSecret)
	}
}

func TestInitFallsBackWhenUnset(t *testing.T) {
	t.Cleanup(Init)
	t.Setenv("JWT_SECRET_KEY", "")

	Init()
	if string(JwtSecret) != "your-super-secret-jwt-key-change-this-in-production" {
		t.Fatalf("JwtSecret = %q, want the dev fallback", JwtSecret)
	}
}
