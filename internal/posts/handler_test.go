package posts

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/arjun-dc/blog-platform/backend/internal/auth"
	"github.com/arjun-dc/blog-platform/backend/internal/middleware"
	"github.com/arjun-dc/blog-platform/backend/internal/models"
)

func newTestRouter(t *testing.T) (*chi.Mux, *fakePostStore, *fakeUserChecker, *auth.Tokens) {
	t.Helper()
	store := &fakePostStore{
		authors: map[primitive.ObjectID]models.UserSummary{},
		now:     time.Now(),
	}
	users := &fakeUserChecker{users: map[string]*models.UserPublic{}}
	h := NewHandler(NewService(store, users, discard()))
	tokens := auth.NewTokens("test-secret")
	guard := middleware.RequireAuth(tokens)

	r := chi.NewRouter()
	r.Get("/posts", h.List)
	r.Get("/posts/{id}", h.Get)
	r.With(guard).Post("/posts", h.Create)
	r.With(guard).Patch("/posts/{id}", h.Update)
	r.With(guard).Delete("/posts/{id}", h.Delete)
	return r, store, users, tokens
}

func doJSON(t *testing.T, r http.Handler, method, path, token, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func bearerFor(t *testing.T, tokens *auth.Tokens, id primitive.ObjectID, username string) string {
	t.Helper()
	tok, err := tokens.Issue(id.Hex(), username, time.Hour)
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}
	return tok
}

func TestCreateRequiresToken(t *testing.T) {
	r, _, _, _ := newTestRouter(t)

	rec := doJSON(t, r, http.MethodPost, "/posts", "", `{"title":"Hello World","content":"This is a test post"}`)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("no token: status = %d", rec.Code)
	}

	rec = doJSON(t, r, http.MethodPost, "/posts", "bogus-token", `{"title":"Hello World","content":"This is a test post"}`)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("bad token: status = %d", rec.Code)
	}
}

// The ownership scenario: A creates, B is refused, A succeeds, the read
// shows the merged result.
func TestOwnershipScenario(t *testing.T) {
	r, store, users, tokens := newTestRouter(t)
	alice := addUser(store, users, "alice", "alice@x.com")
	bob := addUser(store, users, "bob", "bob@x.com")

	rec := doJSON(t, r, http.MethodPost, "/posts", bearerFor(t, tokens, alice, "alice"),
		`{"title":"Hello World","content":"This is a test post"}`)
	if rec.Code != http.StatusCreated {
		t.Fatalf("create: status = %d, body %s", rec.Code, rec.Body.String())
	}
	var created models.Post
	if err := json.Unmarshal(rec.Body.Bytes(), &created); err != nil {
		t.Fatalf("decode: %v", err)
	}

	rec = doJSON(t, r, http.MethodPatch, "/posts/"+created.ID.Hex(), bearerFor(t, tokens, bob, "bob"),
		`{"title":"Hijacked"}`)
	if rec.Code != http.StatusForbidden {
		t.Fatalf("bob update: status = %d", rec.Code)
	}

	rec = doJSON(t, r, http.MethodPatch, "/posts/"+created.ID.Hex(), bearerFor(t, tokens, alice, "alice"),
		`{"title":"Hello Again"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("alice update: status = %d, body %s", rec.Code, rec.Body.String())
	}

	rec = doJSON(t, r, http.MethodGet, "/posts/"+created.ID.Hex(), "", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("get: status = %d", rec.Code)
	}
	var got models.PostWithAuthor
	if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if got.Title != "Hello Again" || got.Content != "This is a test post" {
		t.Fatalf("got %+v", got)
	}
	if got.User.Username != "alice" {
		t.Fatalf("author = %q", got.User.Username)
	}
}

func TestListIsPublicAndJoined(t *testing.T) {
	r, store, users, tokens := newTestRouter(t)
	alice := addUser(store, users, "alice", "alice@x.com")

	doJSON(t, r, http.MethodPost, "/posts", bearerFor(t, tokens, alice, "alice"),
		`{"title":"First post","content":"content of the first post"}`)
	doJSON(t, r, http.MethodPost, "/posts", bearerFor(t, tokens, alice, "alice"),
		`{"title":"Second post","content":"content of the second post"}`)

	rec := doJSON(t, r, http.MethodGet, "/posts", "", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("list: status = %d", rec.Code)
	}
	var got []models.PostWithAuthor
	if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("len = %d", len(got))
	}
	if got[0].Title != "Second post" {
		t.Fatalf("order: first item is %q", got[0].Title)
	}
	if got[0].User.Email != "alice@x.com" {
		t.Fatalf("author = %+v", got[0].User)
	}
}

func TestDeleteStatusCodes(t *testing.T) {
	r, store, users, tokens := newTestRouter(t)
	alice := addUser(store, users, "alice", "alice@x.com")
	bob := addUser(store, users, "bob", "bob@x.com")

	rec := doJSON(t, r, http.MethodPost, "/posts", bearerFor(t, tokens, alice, "alice"),
		`{"title":"Hello World","content":"This is a test post"}`)
	var created models.Post
	if err := json.Unmarshal(rec.Body.Bytes(), &created); err != nil {
		t.Fatalf("decode: %v", err)
	}

	if rec := doJSON(t, r, http.MethodDelete, "/posts/"+created.ID.Hex(), bearerFor(t, tokens, bob, "bob"), ""); rec.Code != http.StatusForbidden {
		t.Fatalf("bob delete: status = %d", rec.Code)
	}
	if rec := doJSON(t, r, http.MethodDelete, "/posts/"+created.ID.Hex(), bearerFor(t, tokens, alice, "alice"), ""); rec.Code != http.StatusNoContent {
		t.Fatalf("alice delete: status = %d", rec.Code)
	}
	if rec := doJSON(t, r, http.MethodDelete, "/posts/"+created.ID.Hex(), bearerFor(t, tokens, alice, "alice"), ""); rec.Code != http.StatusNotFound {
		t.Fatalf("delete again: status = %d", rec.Code)
	}
}
