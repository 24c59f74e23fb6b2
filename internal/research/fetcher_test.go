package research

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestFetchCleanText(t *testing.T) {
	page := `<html><head><style>body { color: red }</style></head><body>
		<nav>Accueil | Recettes</nav>
		<script>trackVisitor();</script>
		<div class="ads">Publicité</div>
		<article>Recette du poulet rôti aux herbes.</article>
		<footer>Mentions légales</footer>
	</body></html>`

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(page))
	}))
	defer server.Close()

	text, err := NewFetcher().FetchCleanText(context.Background(), server.URL)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	if !strings.Contains(text, "Recette du poulet rôti aux herbes.") {
		t.Errorf("Expected the article text, got: %q", text)
	}
	for _, junk := range []string{"trackVisitor", "color: red", "Publicité", "Accueil", "Mentions légales"} {
		if strings.Contains(text, junk) {
			t.Errorf("Expected %q to be stripped", junk)
		}
	}
}

func TestFetchCleanTextNon200(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}))
	defer server.Close()

	if _, err := NewFetcher().FetchCleanText(context.Background(), server.URL); err == nil {
		t.Error("Expected an error for a 404 response")
	}
}
