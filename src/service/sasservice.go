package service

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/lgn-lvx3/pge-nrg-api/config/toml"
)

const (
	sasVersion     = "2021-08-06"
	sasPermissions = "cw" // create + write, enough for one upload
)

// SasServiceImpl mints short-lived signed upload URLs for the blob
// container the storage events watch. Pure and stateless, nothing here
// touches the store. The account fields override config when set.
type SasServiceImpl struct {
	AccountName string
	AccountKey  string
	Container   string
}

// GenerateUploadUrl returns a container-scoped signed URL for filename,
// valid until expiresOn.
func (s *SasServiceImpl) GenerateUploadUrl(filename string, expiresOn time.Time) (string, error) {
	cfg := toml.GetConfig().Blob
	if s.AccountName != "" {
		cfg = toml.BlobConfig{AccountName: s.AccountName, AccountKey: s.AccountKey, Container: s.Container}
	}
	if cfg.AccountName == "" || cfg.AccountKey == "" {
		return "", errors.New("blob storage account is not configured")
	}
	if filename == "" {
		return "", errors.New("filename is required")
	}

	expiry := expiresOn.UTC().Format("2006-01-02T15:04:05Z")
	resource := fmt.Sprintf("/blob/%s/%s", cfg.AccountName, cfg.Container)

	// Service SAS string-to-sign, newline-joined fields in wire order.
	stringToSign := strings.Join([]string{
		sasPermissions, // sp
		"",             // st
		expiry,         // se
		resource,       // canonicalized resource
		"",             // identifier
		"",             // ip
		"https",        // protocol
		sasVersion,     // sv
	}, "\n")

	key, err := base64.StdEncoding.DecodeString(cfg.AccountKey)
	if err != nil {
		return "", fmt.Errorf("decoding account key: %w", err)
	}
	mac := hmac.New(sha256.New, key)
	mac.Write([]byte(stringToSign))
	sig := base64.StdEncoding.EncodeToString(mac.Sum(nil))

	query := url.Values{}
	query.Set("sv", sasVersion)
	query.Set("sr", "c")
	query.Set("sp", sasPermissions)
	query.Set("se", expiry)
	query.Set("spr", "https")
	query.Set("sig", sig)

	return fmt.Sprintf("https://%s.blob.core.windows.net/%s/%s?%s",
		cfg.AccountName, cfg.Container, url.PathEscape(filename), query.Encode()), nil
}
