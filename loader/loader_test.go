package loader

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoader_Load_PlainText(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.Write([]byte("Resolución CREG 101-028 de 2025"))
	}))
	defer server.Close()

	loader := New(DefaultConfig())

	text, err := loader.Load(context.Background(), server.URL)
	require.NoError(t, err)
	assert.Equal(t, "Resolución CREG 101-028 de 2025", text)
}

func TestLoader_Load_HTMLDropsScripts(t *testing.T) {
	page := `<!DOCTYPE html>
<html><head><title>Noticia</title><script>var tracking = "spy";</script></head>
<body>
<nav>Inicio | Secciones</nav>
<article><p>La CREG expidió una nueva resolución sobre tarifas de energía
que modifica el esquema de remuneración de la distribución eléctrica en
Colombia y entra en vigencia el próximo mes.</p></article>
<footer>Derechos reservados</footer>
</body></html>`

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.Write([]byte(page))
	}))
	defer server.Close()

	loader := New(DefaultConfig())

	text, err := loader.Load(context.Background(), server.URL)
	require.NoError(t, err)
	assert.Contains(t, text, "La CREG expidió una nueva resolución")
	assert.NotContains(t, text, "tracking")
}

func TestLoader_Load_TruncatesLongDocuments(t *testing.T) {
	body := strings.Repeat("ñ", 300)

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.Write([]byte(body))
	}))
	defer server.Close()

	config := DefaultConfig()
	config.MaxChars = 100
	loader := New(config)

	text, err := loader.Load(context.Background(), server.URL)
	require.NoError(t, err)

	require.True(t, strings.HasSuffix(text, truncationMarker))
	kept := strings.TrimSuffix(text, truncationMarker)
	assert.Len(t, []rune(kept), 100)
}

func TestLoader_Load_RejectsInvalidURLs(t *testing.T) {
	loader := New(DefaultConfig())

	for _, rawURL := range []string{
		"ftp://example.com/file",
		"file:///etc/passwd",
		"/relative/path",
		"",
	} {
		_, err := loader.Load(context.Background(), rawURL)
		assert.ErrorIs(t, err, ErrInvalidURL, "url %q", rawURL)
	}
}

func TestLoader_Load_BadStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}))
	defer server.Close()

	loader := New(DefaultConfig())

	_, err := loader.Load(context.Background(), server.URL)
	assert.ErrorIs(t, err, ErrBadStatus)
}

func TestLoader_Load_SendsUserAgent(t *testing.T) {
	var gotAgent string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAgent = r.Header.Get("User-Agent")
		w.Write([]byte("ok"))
	}))
	defer server.Close()

	config := DefaultConfig()
	config.UserAgent = "observatorio-test/9.9"
	loader := New(config)

	_, err := loader.Load(context.Background(), server.URL)
	require.NoError(t, err)
	assert.Equal(t, "observatorio-test/9.9", gotAgent)
}

func TestConverter_Convert(t *testing.T) {
	converter := NewConverter()

	markdown, err := converter.Convert([]byte(
		`<html><body><script>alert(1)</script><h1>Título</h1><p>Contenido del boletín.</p></body></html>`))
	require.NoError(t, err)

	assert.Contains(t, markdown, "# Título")
	assert.Contains(t, markdown, "Contenido del boletín.")
	assert.NotContains(t, markdown, "alert")
}
