package auth

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/arjun-dc/blog-platform/backend/internal/models"
)

func newTestHandler(t *testing.T) (*Handler, *models.User) {
	t.Helper()
	alice := seedUser(t, "alice", "alice@x.com", "secret1")
	svc := NewService(
		&fakeDirectory{users: map[string]*models.User{"alice": alice}},
		NewTokens("test-secret"),
		discard(),
	)
	return NewHandler(svc), alice
}

func postJSON(t *testing.T, h http.HandlerFunc, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
	rec := httptest.NewRecorder()
	h(rec, req)
	return rec
}

func TestLoginEndpoint(t *testing.T) {
	h, _ := newTestHandler(t)

	rec := postJSON(t, h.Login, `{"username":"alice","password":"secret1"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
	}
	var resp models.LoginResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.AccessToken == "" || resp.RefreshToken == "" {
		t.Fatal("missing tokens in response")
	}

	rec = postJSON(t, h.Login, `{"username":"alice","password":"wrongpw"}`)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("bad password: status = %d", rec.Code)
	}
}

func TestLoginEndpointRejectsBadShape(t *testing.T) {
	h, _ := newTestHandler(t)

	if rec := postJSON(t, h.Login, `not json`); rec.Code != http.StatusBadRequest {
		t.Fatalf("malformed body: status = %d", rec.Code)
	}
	if rec := postJSON(t, h.Login, `{"username":"al","password":"secret1"}`); rec.Code != http.StatusBadRequest {
		t.Fatalf("short username: status = %d", rec.Code)
	}
}

func TestRefreshEndpoint(t *testing.T) {
	h, _ := newTestHandler(t)

	login := postJSON(t, h.Login, `{"username":"alice","password":"secret1"}`)
	var pair models.LoginResponse
	if err := json.Unmarshal(login.Body.Bytes(), &pair); err != nil {
		t.Fatalf("decode: %v", err)
	}

	rec := postJSON(t, h.Refresh, `{"refresh_token":"`+pair.RefreshToken+`"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
	}
	var resp models.RefreshResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.AccessToken == "" {
		t.Fatal("missing access token")
	}

	if rec := postJSON(t, h.Refresh, `{"refresh_token":"bogus"}`); rec.Code != http.StatusUnauthorized {
		t.Fatalf("bogus token: status = %d", rec.Code)
	}
}
