package dish

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestImportFromURL(t *testing.T) {
	repo := newTestRepo(t)
	importer := NewImporter(repo)
	ctx := context.Background()

	t.Run("OpenGraphTitle", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.Write([]byte(`<html><head>
				<meta property="og:title" content="Lemon Chicken" />
				<title>Lemon Chicken Recipe | Some Food Blog</title>
			</head><body></body></html>`))
		}))
		defer srv.Close()

		d, err := importer.ImportFromURL(ctx, srv.URL)
		if err != nil {
			t.Fatalf("ImportFromURL failed: %v", err)
		}
		if d.Name != "Lemon Chicken" {
			t.Errorf("Expected name 'Lemon Chicken', got '%s'", d.Name)
		}
		if d.Type != TypeOther {
			t.Errorf("Expected imported dish type 'other', got '%s'", d.Type)
		}
	})

	t.Run("TitleTagFallback", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.Write([]byte(`<html><head><title>Minestrone Soup</title></head><body></body></html>`))
		}))
		defer srv.Close()

		d, err := importer.ImportFromURL(ctx, srv.URL)
		if err != nil {
			t.Fatalf("ImportFromURL failed: %v", err)
		}
		if d.Name != "Minestrone Soup" {
			t.Errorf("Expected name 'Minestrone Soup', got '%s'", d.Name)
		}
	})

	t.Run("FetchError", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusNotFound)
		}))
		defer srv.Close()

		if _, err := importer.ImportFromURL(ctx, srv.URL); err == nil {
			t.Fatal("Expected an error for a 404 page, got nil")
		}
	})
}
