package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func postEvents(t *testing.T, body string) *httptest.ResponseRecorder {
	t.Helper()
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.POST("/api/events", StorageEvents)

	req := httptest.NewRequest(http.MethodPost, "/api/events", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestStorageEventsValidationHandshake(t *testing.T) {
	w := postEvents(t, `[{
		"id": "ev1",
		"eventType": "Microsoft.EventGrid.SubscriptionValidationEvent",
		"data": {"validationCode": "code-123"}
	}]`)

	require.Equal(t, http.StatusOK, w.Code)
	var resp map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "code-123", resp["validationResponse"])
}

func TestStorageEventsBlobCreatedAccepted(t *testing.T) {
	w := postEvents(t, `[{
		"id": "ev2",
		"eventType": "Microsoft.Storage.BlobCreated",
		"subject": "/blobServices/default/containers/uploads/blobs/usage.csv",
		"data": {"url": "https://acct.blob.core.windows.net/uploads/usage.csv"}
	}]`)

	assert.Equal(t, http.StatusAccepted, w.Code)
}

func TestStorageEventsIgnoresUnknownTypes(t *testing.T) {
	w := postEvents(t, `[{
		"id": "ev3",
		"eventType": "Microsoft.Storage.BlobDeleted",
		"data": {"url": "https://acct.blob.core.windows.net/uploads/usage.csv"}
	}]`)

	assert.Equal(t, http.StatusAccepted, w.Code)
}

func TestStorageEventsBadPayload(t *testing.T) {
	w := postEvents(t, `{"not": "an array"}`)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}
