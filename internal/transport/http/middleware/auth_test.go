package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"perfai/internal/auth"
)

func TestAuthAttachesUserContext(t *testing.T) {
	token, err := auth.GenerateToken("test-secret", auth.Claims{
		UserID:     3,
		Username:   "budi",
		RoleID:     1,
		EmployeeID: 8,
	}, time.Hour)
	if err != nil {
		t.Fatalf("token generation failed: %v", err)
	}

	var got UserContext
	var ok bool
	handler := Auth("test-secret")(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got, ok = GetUser(r.Context())
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	handler.ServeHTTP(httptest.NewRecorder(), req)

	if !ok {
		t.Fatal("expected user context to be set")
	}
	if got.UserID != 3 || got.Username != "budi" || got.EmployeeID != 8 {
		t.Fatalf("unexpected user context: %+v", got)
	}
}

func TestAuthInvalidTokenIsAnonymous(t *testing.T) {
	var ok bool
	handler := Auth("test-secret")(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, ok = GetUser(r.Context())
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer not-a-token")
	handler.ServeHTTP(httptest.NewRecorder(), req)

	if ok {
		t.Fatal("invalid token must not attach a user context")
	}
}

func TestRequireAuthRejectsAnonymous(t *testing.T) {
	handler := RequireAuth(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler must not run for anonymous request")
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}

func TestRequireEmployeeRejectsUnlinkedUser(t *testing.T) {
	token, err := auth.GenerateToken("test-secret", auth.Claims{UserID: 3, Username: "budi"}, time.Hour)
	if err != nil {
		t.Fatalf("token generation failed: %v", err)
	}

	handler := Auth("test-secret")(RequireEmployee(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler must not run without an employee link")
	})))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	if rec.Code != http.StatusForbidden {
		t.Fatalf("expected 403, got %d", rec.Code)
	}
}
