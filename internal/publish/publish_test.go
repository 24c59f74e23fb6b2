package publish

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"ai-menu-planner/internal/config"
)

// A syntactically valid id:secret admin key (the secret is hex).
const testAdminKey = "6261636b737461676501:aabbccddeeff00112233445566778899"

func TestCreatePost(t *testing.T) {
	var gotAuth, gotPath string
	var gotBody map[string]any

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotPath = r.URL.Path
		json.NewDecoder(r.Body).Decode(&gotBody)

		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(PostsResponse{Posts: []Post{{ID: "p1", Title: "Menu de la semaine"}}})
	}))
	defer server.Close()

	client := NewClient(&config.Config{CMSURL: server.URL, CMSAdminKey: testAdminKey})

	post, err := client.CreatePost("Menu de la semaine", "<p>contenu</p>", true)
	if err != nil {
		t.Fatalf("CreatePost failed: %v", err)
	}
	if post.ID != "p1" {
		t.Errorf("Expected post ID 'p1', got '%s'", post.ID)
	}

	if !strings.HasPrefix(gotAuth, "Ghost ") {
		t.Errorf("Expected a Ghost token authorization header, got %q", gotAuth)
	}
	if gotPath != "/ghost/api/v3/admin/posts/" {
		t.Errorf("Unexpected request path: %s", gotPath)
	}

	posts := gotBody["posts"].([]any)
	sent := posts[0].(map[string]any)
	if sent["status"] != "published" {
		t.Errorf("Expected status 'published', got '%v'", sent["status"])
	}
	if sent["title"] != "Menu de la semaine" {
		t.Errorf("Unexpected title: %v", sent["title"])
	}
}

func TestCreatePostDraftStatus(t *testing.T) {
	var gotBody map[string]any
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewDecoder(r.Body).Decode(&gotBody)
		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(PostsResponse{Posts: []Post{{ID: "p2"}}})
	}))
	defer server.Close()

	client := NewClient(&config.Config{CMSURL: server.URL, CMSAdminKey: testAdminKey})
	if _, err := client.CreatePost("Brouillon", "<p>x</p>", false); err != nil {
		t.Fatalf("CreatePost failed: %v", err)
	}

	sent := gotBody["posts"].([]any)[0].(map[string]any)
	if sent["status"] != "draft" {
		t.Errorf("Expected status 'draft', got '%v'", sent["status"])
	}
}

func TestCreatePostAPIError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"errors":[{"message":"unauthorized"}]}`, http.StatusUnauthorized)
	}))
	defer server.Close()

	client := NewClient(&config.Config{CMSURL: server.URL, CMSAdminKey: testAdminKey})
	if _, err := client.CreatePost("Menu", "<p>x</p>", true); err == nil {
		t.Error("Expected an error for a non-2xx response")
	}
}

func TestCreateAdminTokenInvalidKey(t *testing.T) {
	cases := []struct {
		name string
		key  string
	}{
		{"NoColon", "justonepart"},
		{"NonHexSecret", "id:not-hex!"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			client := NewClient(&config.Config{CMSURL: "http://localhost", CMSAdminKey: tc.key})
			if _, err := client.CreatePost("Menu", "<p>x</p>", true); err == nil {
				t.Error("Expected an error for a malformed admin key")
			}
		})
	}
}
