package service

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/lgn-lvx3/pge-nrg-api/config/log"
	redisUtil "github.com/lgn-lvx3/pge-nrg-api/config/redis"
	"github.com/lgn-lvx3/pge-nrg-api/config/toml"
	"github.com/lgn-lvx3/pge-nrg-api/entity"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// ErrNoEntries means the user has no history to analyze.
var ErrNoEntries = errors.New("no energy entries found for this user")

// recommendSampleSize caps how much history goes into the prompt.
const recommendSampleSize = 1000

const recommendCacheTTL = 3600 // seconds

// RecommendServiceImpl turns a user's usage history into human-readable
// efficiency recommendations via an Azure OpenAI chat deployment.
// Endpoint and Client are overridable for tests.
type RecommendServiceImpl struct {
	Endpoint string
	Client   *http.Client
}

type Recommendation struct {
	Summary          string   `json:"summary"`
	Recommendations  []string `json:"recommendations"`
	EstimatedSavings string   `json:"estimatedSavings"`
	Entries          int      `json:"entries"`
}

type promptEntry struct {
	Date  string  `json:"date"`
	Usage float64 `json:"usage"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Messages []chatMessage `json:"messages"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

// ForUser builds recommendations from the user's most recent entries.
// Responses are cached for an hour per user since history changes at
// most daily.
func (r *RecommendServiceImpl) ForUser(ctx context.Context, db *gorm.DB, userId string) (*Recommendation, error) {
	cacheKey := "recommendations:" + userId
	if rc, err := redisUtil.GetRedisClient(); err == nil {
		if cached := rc.RGet(cacheKey); cached != "" {
			var rec Recommendation
			if json.Unmarshal([]byte(cached), &rec) == nil {
				return &rec, nil
			}
		}
	}

	var entries []entity.EnergyEntryEntity
	err := db.Where("user_id = ? AND type = ?", userId, entity.TypeEnergyEntry).
		Order("entry_date DESC").
		Limit(recommendSampleSize).
		Find(&entries).Error
	if err != nil {
		return nil, err
	}
	if len(entries) == 0 {
		return nil, ErrNoEntries
	}

	formatted := make([]promptEntry, len(entries))
	for i, e := range entries {
		formatted[i] = promptEntry{Date: e.EntryDate.Format("2006-01-02"), Usage: e.Usage}
	}
	data, err := json.MarshalIndent(formatted, "", "  ")
	if err != nil {
		return nil, err
	}

	prompt := fmt.Sprintf(`You are an energy efficiency expert. Analyze the following energy consumption data and provide specific recommendations for reducing energy usage.
Focus on practical, actionable advice that can be implemented easily. Include estimated savings where possible. Be concise without losing important information. List a few of the most important recommendations.

Energy Consumption Data:
%s

Please provide your response in the following JSON format:
{
    "summary": "A brief summary of the consumption patterns",
    "recommendations": ["List of specific recommendations"],
    "estimatedSavings": "Estimated savings in kWh or percentage"
}`, data)

	content, err := r.complete(ctx, prompt)
	if err != nil {
		return nil, err
	}

	var rec Recommendation
	if err := json.Unmarshal([]byte(content), &rec); err != nil {
		return nil, fmt.Errorf("unparseable model response: %w", err)
	}
	rec.Entries = len(entries)

	if rc, err := redisUtil.GetRedisClient(); err == nil {
		if cached, err := json.Marshal(rec); err == nil {
			if err := rc.RSet(cacheKey, string(cached), recommendCacheTTL); err != nil {
				log.Logger.Warn("recommendation cache write failed", zap.Error(err))
			}
		}
	}
	return &rec, nil
}

func (r *RecommendServiceImpl) complete(ctx context.Context, prompt string) (string, error) {
	cfg := toml.GetConfig().Openai

	endpoint := r.Endpoint
	if endpoint == "" {
		if cfg.Endpoint == "" || cfg.Deployment == "" {
			return "", errors.New("openai configuration is missing")
		}
		endpoint = fmt.Sprintf("%s/openai/deployments/%s/chat/completions?api-version=%s",
			cfg.Endpoint, cfg.Deployment, cfg.ApiVersion)
	}
	client := r.Client
	if client == nil {
		client = &http.Client{Timeout: 60 * time.Second}
	}

	body, err := json.Marshal(chatRequest{Messages: []chatMessage{
		{Role: "system", Content: "You are an energy efficiency expert providing specific, actionable recommendations."},
		{Role: "user", Content: prompt},
	}})
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("api-key", cfg.ApiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("chat completion returned %s", resp.Status)
	}

	var parsed chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return "", err
	}
	if len(parsed.Choices) == 0 || parsed.Choices[0].Message.Content == "" {
		return "", errors.New("no response from model")
	}
	return parsed.Choices[0].Message.Content, nil
}
