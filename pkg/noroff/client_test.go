package noroff

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/h2non/gock"

	"feedclient/pkg/models"
)

const testBaseURL = "http://noroff.test"

func testCreds() models.Credentials {
	return models.Credentials{AccessToken: "token-abc", APIKey: "key-xyz"}
}

func TestValidEmail(t *testing.T) {
	tests := []struct {
		email string
		want  bool
	}{
		{"ann@noroff.no", true},
		{"bob@stud.noroff.no", true},
		{"eve@gmail.com", false},
		{"", false},
		{"noroff.no@gmail.com", false},
	}

	for _, tt := range tests {
		if got := ValidEmail(tt.email); got != tt.want {
			t.Errorf("ValidEmail(%q): want %v, got %v", tt.email, got, tt.want)
		}
	}
}

func TestClient_RegisterBadDomainSkipsNetwork(t *testing.T) {
	defer gock.Off()

	// No mock is installed: any request attempt would surface as a
	// network error here, not a validation one.
	c := New(testBaseURL)
	err := c.Register(context.Background(), "Eve", "eve@gmail.com", "secret123")

	var re *RequestError
	if !errors.As(err, &re) {
		t.Fatalf("want *RequestError, got %v", err)
	}
	if re.Kind != KindValidation {
		t.Errorf("want validation error kind, got %v", re.Kind)
	}
	if gock.HasUnmatchedRequest() {
		t.Error("want no network request for a rejected email domain")
	}
}

func TestClient_Register(t *testing.T) {
	defer gock.Off()

	gock.New(testBaseURL).
		Post("/auth/register").
		MatchType("json").
		JSON(map[string]string{"name": "Ann", "email": "ann@noroff.no", "password": "secret123"}).
		Reply(http.StatusCreated).
		JSON(map[string]any{"data": map[string]string{"name": "Ann", "email": "ann@noroff.no"}})

	c := New(testBaseURL)
	if err := c.Register(context.Background(), "Ann", "ann@noroff.no", "secret123"); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestClient_RegisterRejected(t *testing.T) {
	defer gock.Off()

	gock.New(testBaseURL).
		Post("/auth/register").
		Reply(http.StatusBadRequest).
		JSON(map[string]any{"errors": []map[string]string{{"message": "Profile already exists"}}})

	c := New(testBaseURL)
	err := c.Register(context.Background(), "Ann", "ann@noroff.no", "secret123")

	var re *RequestError
	if !errors.As(err, &re) {
		t.Fatalf("want *RequestError, got %v", err)
	}
	if re.Kind != KindServer {
		t.Errorf("want server error kind, got %v", re.Kind)
	}
	if re.Status != http.StatusBadRequest {
		t.Errorf("want status %d, got %d", http.StatusBadRequest, re.Status)
	}
}

func TestClient_Login(t *testing.T) {
	defer gock.Off()

	gock.New(testBaseURL).
		Post("/auth/login").
		Reply(http.StatusOK).
		JSON(map[string]any{"data": map[string]string{
			"name":        "Ann",
			"email":       "ann@noroff.no",
			"accessToken": "token-abc",
		}})

	c := New(testBaseURL)
	profile, token, err := c.Login(context.Background(), "ann@noroff.no", "secret123")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if token != "token-abc" {
		t.Errorf("want token %q, got %q", "token-abc", token)
	}
	if profile.Name != "Ann" {
		t.Errorf("want profile name %q, got %q", "Ann", profile.Name)
	}
	if profile.Email != "ann@noroff.no" {
		t.Errorf("want profile email %q, got %q", "ann@noroff.no", profile.Email)
	}
}

func TestClient_LoginMissingToken(t *testing.T) {
	defer gock.Off()

	gock.New(testBaseURL).
		Post("/auth/login").
		Reply(http.StatusOK).
		JSON(map[string]any{"data": map[string]string{"name": "Ann"}})

	c := New(testBaseURL)
	_, _, err := c.Login(context.Background(), "ann@noroff.no", "secret123")

	var re *RequestError
	if !errors.As(err, &re) {
		t.Fatalf("want *RequestError, got %v", err)
	}
	if re.Kind != KindServer {
		t.Errorf("want server error kind for tokenless response, got %v", re.Kind)
	}
}

func TestClient_CreateAPIKey(t *testing.T) {
	defer gock.Off()

	gock.New(testBaseURL).
		Post("/auth/create-api-key").
		MatchHeader("Authorization", "Bearer token-abc").
		Reply(http.StatusCreated).
		JSON(map[string]any{"data": map[string]string{"key": "key-xyz"}})

	c := New(testBaseURL)
	key, err := c.CreateAPIKey(context.Background(), "token-abc", "My Key")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if key != "key-xyz" {
		t.Errorf("want key %q, got %q", "key-xyz", key)
	}
}

func TestClient_Posts(t *testing.T) {
	defer gock.Off()

	gock.New(testBaseURL).
		Get("/social/posts").
		MatchParam("sort", "created").
		MatchParam("sortOrder", "desc").
		MatchParam("_author", "true").
		MatchHeader("Authorization", "Bearer token-abc").
		MatchHeader("X-Noroff-API-Key", "key-xyz").
		Reply(http.StatusOK).
		JSON(map[string]any{"data": []map[string]any{
			{"id": 2, "title": "Dogs", "body": "woof", "author": map[string]string{"name": "Bob"}},
			{"id": 1, "title": "Cats", "body": "meow", "author": map[string]string{"name": "Ann"}},
		}})

	c := New(testBaseURL)
	posts, err := c.Posts(context.Background(), testCreds())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(posts) != 2 {
		t.Fatalf("want 2 posts, got %d", len(posts))
	}
	if posts[0].ID != 2 || posts[1].ID != 1 {
		t.Errorf("want server order preserved, got ids %d, %d", posts[0].ID, posts[1].ID)
	}
	if posts[0].Author.Name != "Bob" {
		t.Errorf("want embedded author %q, got %q", "Bob", posts[0].Author.Name)
	}
}

func TestClient_CreatePost(t *testing.T) {
	defer gock.Off()

	gock.New(testBaseURL).
		Post("/social/posts").
		JSON(map[string]string{"title": "Cats", "body": "meow"}).
		Reply(http.StatusCreated).
		JSON(map[string]any{"data": map[string]any{"id": 7, "title": "Cats", "body": "meow"}})

	c := New(testBaseURL)
	post, err := c.CreatePost(context.Background(), testCreds(), "Cats", "meow")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if post.ID != 7 {
		t.Errorf("want created post id 7, got %d", post.ID)
	}
}

func TestClient_UpdatePost(t *testing.T) {
	defer gock.Off()

	gock.New(testBaseURL).
		Put("/social/posts/7").
		JSON(map[string]string{"title": "Cats v2", "body": "meow"}).
		Reply(http.StatusOK).
		JSON(map[string]any{"data": map[string]any{"id": 7, "title": "Cats v2", "body": "meow"}})

	c := New(testBaseURL)
	post, err := c.UpdatePost(context.Background(), testCreds(), 7, "Cats v2", "meow")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if post.Title != "Cats v2" {
		t.Errorf("want title %q, got %q", "Cats v2", post.Title)
	}
}

func TestClient_DeletePost(t *testing.T) {
	defer gock.Off()

	gock.New(testBaseURL).
		Delete("/social/posts/7").
		Reply(http.StatusNoContent)

	c := New(testBaseURL)
	if err := c.DeletePost(context.Background(), testCreds(), 7); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestClient_DeletePostRejected(t *testing.T) {
	defer gock.Off()

	gock.New(testBaseURL).
		Delete("/social/posts/7").
		Reply(http.StatusForbidden)

	c := New(testBaseURL)
	err := c.DeletePost(context.Background(), testCreds(), 7)

	var re *RequestError
	if !errors.As(err, &re) {
		t.Fatalf("want *RequestError, got %v", err)
	}
	if re.Kind != KindServer {
		t.Errorf("want server error kind, got %v", re.Kind)
	}
}
