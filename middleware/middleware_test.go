package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"expofloor/globals"
	"expofloor/models"

	"github.com/golang-jwt/jwt/v5"
	"github.com/julienschmidt/httprouter"
)

func signToken(t *testing.T, claims *Claims) string {
	t.Helper()
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(globals.JwtSecret)
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return token
}

func TestAuthenticate_InjectsCaller(t *testing.T) {
	token := signToken(t, &Claims{
		Username: "bob",
		UserID:   "user-1",
		Role:     models.RoleUser,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	})

	var caller struct {
		id   string
		role string
	}
	handler := Authenticate(func(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
		c := CallerFromRequest(r)
		caller.id = c.ID
		caller.role = c.Role
	})

	req := httptest.NewRequest(http.MethodGet, "/api/floorplans", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	handler(rec, req, nil)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if caller.id != "user-1" || caller.role != models.RoleUser {
		t.Fatalf("caller = %+v", caller)
	}
}

func TestAuthenticate_MissingToken(t *testing.T) {
	handler := Authenticate(func(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
		t.Fatal("handler must not run")
	})

	req := httptest.NewRequest(http.MethodGet, "/api/floorplans", nil)
	rec := httptest.NewRecorder()
	handler(rec, req, nil)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}

func TestAuthenticate_BadToken(t *testing.T) {
	for _, header := range []string{"Bearer not-a-jwt", "Basic abc", "Bearer "} {
		handler := Authenticate(func(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
			t.Fatalf("handler must not run for header %q", header)
		})

		req := httptest.NewRequest(http.MethodGet, "/api/floorplans", nil)
		req.Header.Set("Authorization", header)
		rec := httptest.NewRecorder()
		handler(rec, req, nil)

		if rec.Code != http.StatusUnauthorized {
			t.Fatalf("header %q: expected 401, got %d", header, rec.Code)
		}
	}
}

func TestAuthenticate_ExpiredToken(t *testing.T) {
	token := signToken(t, &Claims{
		UserID: "user-1",
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Minute)),
		},
	})

	handler := Authenticate(func(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
		t.Fatal("handler must not run")
	})

	req := httptest.NewRequest(http.MethodGet, "/api/floorplans", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	handler(rec, req, nil)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}

func TestValidateJWT_RequiresBearerScheme(t *testing.T) {
	token := signToken(t, &Claims{
		UserID: "user-1",
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	})

	// "Token: " is seven characters, so blind slicing would parse the JWT.
	if _, err := ValidateJWT("Token: " + token); err == nil {
		t.Error("non-bearer scheme must be rejected")
	}
	if _, err := ValidateJWT(token); err == nil {
		t.Error("bare token without a scheme must be rejected")
	}
	if _, err := ValidateJWT(""); err == nil {
		t.Error("empty header must be rejected")
	}

	claims, err := ValidateJWT("Bearer " + token)
	if err != nil {
		t.Fatalf("valid bearer token rejected: %v", err)
	}
	if claims.UserID != "user-1" {
		t.Errorf("UserID = %q", claims.UserID)
	}
}

func TestCallerFromRequest_Anonymous(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/api/public/floorplans", nil)
	if c := CallerFromRequest(req); !c.IsAnonymous() {
		t.Fatalf("expected anonymous caller, got %+v", c)
	}
}
