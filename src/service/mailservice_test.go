package service

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/lgn-lvx3/pge-nrg-api/entity"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func alertFixture() (entity.AlertEntity, entity.EnergyEntryEntity) {
	alert := entity.AlertEntity{
		Id:        "alert1",
		UserId:    "user1",
		UserEmail: "user1@example.com",
		Threshold: 100,
	}
	entry := entity.EnergyEntryEntity{
		Id:        "user1-2024-01-01",
		UserId:    "user1",
		EntryDate: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		Usage:     150,
	}
	return alert, entry
}

func TestSendThresholdAlert(t *testing.T) {
	var got sendgridMessage
	var auth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		auth = r.Header.Get("Authorization")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.WriteHeader(http.StatusAccepted)
	}))
	t.Cleanup(srv.Close)

	alert, entry := alertFixture()
	mail := &MailServiceImpl{Endpoint: srv.URL, Client: srv.Client()}

	require.NoError(t, mail.SendThresholdAlert(alert, entry))

	assert.True(t, strings.HasPrefix(auth, "Bearer "))
	require.Len(t, got.Personalizations, 1)
	assert.Equal(t, "user1@example.com", got.Personalizations[0].To[0].Email)
	assert.Equal(t, "Your energy usage is over your threshold.", got.Subject)
	require.Len(t, got.Content, 1)
	assert.Equal(t,
		"Your entry on 2024-01-01 was 150kWh, which is over your threshold of 100kWh by 50kWh.",
		got.Content[0].Value)
}

func TestSendThresholdAlertApiFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	t.Cleanup(srv.Close)

	alert, entry := alertFixture()
	mail := &MailServiceImpl{Endpoint: srv.URL, Client: srv.Client()}

	err := mail.SendThresholdAlert(alert, entry)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "401")
}

func TestSendThresholdAlertNoEmail(t *testing.T) {
	alert, entry := alertFixture()
	alert.UserEmail = ""
	mail := &MailServiceImpl{}

	assert.Error(t, mail.SendThresholdAlert(alert, entry))
}
