package api

import (
	"encoding/base64"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func principalFor(json string) string {
	return base64.StdEncoding.EncodeToString([]byte(json))
}

func TestDecodePrincipal(t *testing.T) {
	id, ok := decodePrincipal(principalFor(`{"userId":"user1","email":"user1@example.com"}`))

	require.True(t, ok)
	assert.Equal(t, "user1", id.ID)
	assert.Equal(t, "user1@example.com", id.Email)
}

func TestDecodePrincipalEmailFallsBackToUserDetails(t *testing.T) {
	id, ok := decodePrincipal(principalFor(`{"userId":"user1","userDetails":"user1@example.com"}`))

	require.True(t, ok)
	assert.Equal(t, "user1@example.com", id.Email)
}

func TestDecodePrincipalRejects(t *testing.T) {
	tests := []struct {
		name   string
		header string
	}{
		{"empty header", ""},
		{"not base64", "%%%not-base64%%%"},
		{"not json", principalFor("plain text")},
		{"missing user id", principalFor(`{"email":"user1@example.com"}`)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, ok := decodePrincipal(tt.header)
			assert.False(t, ok)
		})
	}
}

func TestAuthRequiredBlocksAnonymous(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/protected", AuthRequired(), func(c *gin.Context) {
		c.JSON(http.StatusOK, APIResponse{Message: CurrentIdentity(c).ID})
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/protected", nil))

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "Unauthorized")
}

func TestAuthRequiredPassesIdentityThrough(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/protected", AuthRequired(), func(c *gin.Context) {
		c.JSON(http.StatusOK, APIResponse{Message: CurrentIdentity(c).ID})
	})

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("x-ms-client-principal", principalFor(`{"userId":"user1","email":"user1@example.com"}`))
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "user1")
}
