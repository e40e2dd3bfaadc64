package service

import (
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testSasService() *SasServiceImpl {
	return &SasServiceImpl{
		AccountName: "testacct",
		AccountKey:  "c2VjcmV0a2V5", // "secretkey"
		Container:   "uploads",
	}
}

func TestGenerateUploadUrlShape(t *testing.T) {
	expires := time.Date(2026, 1, 2, 15, 4, 5, 0, time.UTC)

	raw, err := testSasService().GenerateUploadUrl("usage.csv", expires)
	require.NoError(t, err)

	u, err := url.Parse(raw)
	require.NoError(t, err)
	assert.Equal(t, "testacct.blob.core.windows.net", u.Host)
	assert.Equal(t, "/uploads/usage.csv", u.Path)

	q := u.Query()
	assert.Equal(t, "2021-08-06", q.Get("sv"))
	assert.Equal(t, "c", q.Get("sr"))
	assert.Equal(t, "cw", q.Get("sp"))
	assert.Equal(t, "2026-01-02T15:04:05Z", q.Get("se"))
	assert.Equal(t, "https", q.Get("spr"))
	assert.NotEmpty(t, q.Get("sig"))
}

func TestGenerateUploadUrlDeterministic(t *testing.T) {
	expires := time.Date(2026, 1, 2, 15, 0, 0, 0, time.UTC)
	svc := testSasService()

	first, err := svc.GenerateUploadUrl("usage.csv", expires)
	require.NoError(t, err)
	second, err := svc.GenerateUploadUrl("usage.csv", expires)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestGenerateUploadUrlSignatureIsContainerScoped(t *testing.T) {
	expires := time.Date(2026, 1, 2, 15, 0, 0, 0, time.UTC)
	svc := testSasService()

	a, err := svc.GenerateUploadUrl("a.csv", expires)
	require.NoError(t, err)
	b, err := svc.GenerateUploadUrl("b.csv", expires)
	require.NoError(t, err)

	ua, _ := url.Parse(a)
	ub, _ := url.Parse(b)
	assert.Equal(t, ua.Query().Get("sig"), ub.Query().Get("sig"),
		"signature covers the container, not the blob name")
}

func TestGenerateUploadUrlEscapesFilename(t *testing.T) {
	raw, err := testSasService().GenerateUploadUrl("my usage.csv", time.Now().Add(time.Hour))

	require.NoError(t, err)
	assert.Contains(t, raw, "my%20usage.csv")
	assert.False(t, strings.Contains(raw, "my usage"))
}

func TestGenerateUploadUrlErrors(t *testing.T) {
	_, err := testSasService().GenerateUploadUrl("", time.Now().Add(time.Hour))
	assert.Error(t, err, "empty filename")

	unconfigured := &SasServiceImpl{}
	_, err = unconfigured.GenerateUploadUrl("usage.csv", time.Now().Add(time.Hour))
	assert.Error(t, err, "missing account config")

	badKey := &SasServiceImpl{AccountName: "testacct", AccountKey: "%%%not-base64%%%", Container: "uploads"}
	_, err = badKey.GenerateUploadUrl("usage.csv", time.Now().Add(time.Hour))
	assert.Error(t, err, "account key must be base64")
}
