package api

import (
	"encoding/base64"
	"encoding/json"
	"net/http"

	"github.com/lgn-lvx3/pge-nrg-api/src/ingest"

	"github.com/gin-gonic/gin"
)

// principalHeader carries the authenticated principal injected by the
// auth proxy in front of the service, base64-encoded JSON.
const principalHeader = "x-ms-client-principal"

const identityKey = "identity"

type clientPrincipal struct {
	UserId           string   `json:"userId"`
	UserDetails      string   `json:"userDetails"`
	Email            string   `json:"email"`
	UserRoles        []string `json:"userRoles"`
	IdentityProvider string   `json:"identityProvider"`
}

// decodePrincipal parses the proxy header into an identity. Returns
// false when the header is absent or unparseable.
func decodePrincipal(header string) (ingest.Identity, bool) {
	if header == "" {
		return ingest.Identity{}, false
	}
	raw, err := base64.StdEncoding.DecodeString(header)
	if err != nil {
		return ingest.Identity{}, false
	}
	var principal clientPrincipal
	if err := json.Unmarshal(raw, &principal); err != nil || principal.UserId == "" {
		return ingest.Identity{}, false
	}

	email := principal.Email
	if email == "" {
		// static web apps put the email in userDetails
		email = principal.UserDetails
	}
	return ingest.Identity{ID: principal.UserId, Email: email}, true
}

// AuthRequired rejects requests without a resolvable caller identity.
func AuthRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		identity, ok := decodePrincipal(c.GetHeader(principalHeader))
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, APIResponse{Message: "Unauthorized"})
			return
		}
		c.Set(identityKey, identity)
		c.Next()
	}
}

// CurrentIdentity returns the identity set by AuthRequired.
func CurrentIdentity(c *gin.Context) ingest.Identity {
	identity, _ := c.Get(identityKey)
	id, _ := identity.(ingest.Identity)
	return id
}
