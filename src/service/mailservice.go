package service

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/lgn-lvx3/pge-nrg-api/config/toml"
	"github.com/lgn-lvx3/pge-nrg-api/entity"
)

const sendgridSendUrl = "https://api.sendgrid.com/v3/mail/send"

// MailServiceImpl sends templated notification mail through the SendGrid
// v3 REST API. Endpoint and Client are overridable for tests.
type MailServiceImpl struct {
	Endpoint string
	Client   *http.Client
}

type sendgridMessage struct {
	Personalizations []sendgridPersonalization `json:"personalizations"`
	From             sendgridAddress           `json:"from"`
	Subject          string                    `json:"subject"`
	Content          []sendgridContent         `json:"content"`
}

type sendgridPersonalization struct {
	To []sendgridAddress `json:"to"`
}

type sendgridAddress struct {
	Email string `json:"email"`
}

type sendgridContent struct {
	Type  string `json:"type"`
	Value string `json:"value"`
}

// SendThresholdAlert mails the alert owner that an entry exceeded their
// threshold. Fire and forget from the caller's point of view.
func (m *MailServiceImpl) SendThresholdAlert(alert entity.AlertEntity, entry entity.EnergyEntryEntity) error {
	if alert.UserEmail == "" {
		return fmt.Errorf("alert %s has no email address", alert.Id)
	}

	msg := sendgridMessage{
		Personalizations: []sendgridPersonalization{{To: []sendgridAddress{{Email: alert.UserEmail}}}},
		From:             sendgridAddress{Email: toml.GetConfig().Sendgrid.FromEmail},
		Subject:          "Your energy usage is over your threshold.",
		Content: []sendgridContent{{
			Type: "text/plain",
			Value: fmt.Sprintf("Your entry on %s was %vkWh, which is over your threshold of %vkWh by %vkWh.",
				entry.EntryDate.Format("2006-01-02"), entry.Usage, alert.Threshold, entry.Usage-alert.Threshold),
		}},
	}

	body, err := json.Marshal(msg)
	if err != nil {
		return err
	}

	endpoint := m.Endpoint
	if endpoint == "" {
		endpoint = sendgridSendUrl
	}
	client := m.Client
	if client == nil {
		client = &http.Client{Timeout: 10 * time.Second}
	}

	req, err := http.NewRequest(http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+toml.GetConfig().Sendgrid.ApiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 300 {
		return fmt.Errorf("sendgrid returned %s", resp.Status)
	}
	return nil
}
