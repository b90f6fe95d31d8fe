package metadata_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/artmarkt/marketplace-api/internal/pkg/metadata"
)

func TestResolve(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"name":"Sunset","description":"Oil on canvas","image":"https://img.test.local/sunset.png"}`))
	}))
	defer srv.Close()

	client := metadata.NewClient(5 * time.Second)

	meta, err := client.Resolve(context.Background(), srv.URL)
	require.NoError(t, err)
	assert.Equal(t, metadata.AssetMetadata{
		Name:        "Sunset",
		Description: "Oil on canvas",
		Image:       "https://img.test.local/sunset.png",
	}, meta)
}

func TestResolveNon200(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	client := metadata.NewClient(5 * time.Second)

	_, err := client.Resolve(context.Background(), srv.URL)
	assert.ErrorIs(t, err, metadata.ErrBadStatus)
}

func TestResolveRejectsNonHTTPSchemes(t *testing.T) {
	client := metadata.NewClient(5 * time.Second)

	for _, uri := range []string{"ipfs://QmHash", "file:///etc/passwd", "ftp://host/x.json"} {
		_, err := client.Resolve(context.Background(), uri)
		assert.ErrorIs(t, err, metadata.ErrUnsupportedScheme)
	}
}

func TestResolveBadJSON(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("not json"))
	}))
	defer srv.Close()

	client := metadata.NewClient(5 * time.Second)

	_, err := client.Resolve(context.Background(), srv.URL)
	assert.Error(t, err)
}
