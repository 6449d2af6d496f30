package models

import (
	"testing"

	"github.com/arjun-dc/blog-platform/backend/internal/apperr"
)

func TestCreateUserRequestValidate(t *testing.T) {
	cases := []struct {
		name string
		req  CreateUserRequest
		ok   bool
	}{
		{"valid", CreateUserRequest{"alice", "alice@x.com", "secret1"}, true},
		{"short username", CreateUserRequest{"al", "alice@x.com", "secret1"}, false},
		{"bad email", CreateUserRequest{"alice", "not-an-email", "secret1"}, false},
		{"email with display name", CreateUserRequest{"alice", "Alice <alice@x.com>", "secret1"}, false},
		{"short password", CreateUserRequest{"alice", "alice@x.com", "pw"}, false},
		{"all empty", CreateUserRequest{}, false},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			err := c.req.Validate()
			if c.ok && err != nil {
				t.Fatalf("Validate: %v", err)
			}
			if !c.ok {
				if err == nil {
					t.Fatal("expected validation error")
				}
				if !apperr.IsInvalidInput(err) {
					t.Fatalf("wrong kind: %v", err)
				}
			}
		})
	}
}

func TestUpdateUserRequestValidateSkipsAbsentFields(t *testing.T) {
	if err := (&UpdateUserRequest{}).Validate(); err != nil {
		t.Fatalf("empty update should pass: %v", err)
	}
	bad := "x"
	if err := (&UpdateUserRequest{Username: &bad}).Validate(); err == nil {
		t.Fatal("short username should fail when present")
	}
}

func TestPostRequestValidate(t *testing.T) {
	ok := CreatePostRequest{Title: "Hello World", Content: "This is a test post"}
	if err := ok.Validate(); err != nil {
		t.Fatalf("Validate: %v", err)
	}
	if err := (&CreatePostRequest{Title: "Hi", Content: "This is a test post"}).Validate(); err == nil {
		t.Fatal("short title should fail")
	}
	if err := (&CreatePostRequest{Title: "Hello", Content: "short"}).Validate(); err == nil {
		t.Fatal("short content should fail")
	}

	tiny := "x"
	if err := (&UpdatePostRequest{Content: &tiny}).Validate(); err == nil {
		t.Fatal("short content should fail when present")
	}
	if err := (&UpdatePostRequest{}).Validate(); err != nil {
		t.Fatalf("empty update should pass: %v", err)
	}
}

func TestUserPublicHasNoPasswordField(t *testing.T) {
	u := User{Username: "alice", Email: "alice@x.com", Password: "hash"}
	pub := u.Public()
	if pub.Username != "alice" || pub.Email != "alice@x.com" {
		t.Fatalf("Public lost fields: %+v", pub)
	}
}
