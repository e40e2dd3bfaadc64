package ingest

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBlobMetadataOwnerResolves(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodHead, r.Method)
		w.Header().Set("x-ms-meta-userid", "user42")
	}))
	t.Cleanup(srv.Close)

	id, err := BlobMetadataOwner(srv.URL + "/uploads/usage.csv")(context.Background())

	require.NoError(t, err)
	assert.Equal(t, "user42", id.ID)
}

func TestBlobMetadataOwnerMissingTag(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// blob exists but was uploaded without the userid tag
	}))
	t.Cleanup(srv.Close)

	_, err := BlobMetadataOwner(srv.URL + "/uploads/usage.csv")(context.Background())

	require.Error(t, err)
	assert.Contains(t, err.Error(), "x-ms-meta-userid")
}

func TestBlobMetadataOwnerBlobGone(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	t.Cleanup(srv.Close)

	_, err := BlobMetadataOwner(srv.URL + "/uploads/usage.csv")(context.Background())

	var se *SourceError
	require.ErrorAs(t, err, &se)
}
