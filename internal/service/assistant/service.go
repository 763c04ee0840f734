// Package assistant relays "Ask Mobi" questions to the Gemini generateContent
// API. Provider trouble never surfaces to the caller: every failure path
// collapses to the fixed fallback reply.
package assistant

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/mobimama/mobimama-api/pkg/apperror"
	"github.com/mobimama/mobimama-api/pkg/circuitbreaker"
	"github.com/mobimama/mobimama-api/pkg/logger"
	"github.com/mobimama/mobimama-api/pkg/metrics"
)

// Fallback is the exact reply returned whenever the provider cannot answer.
const Fallback = "Sorry, Mobi is currently unavailable. Please try again later."

const defaultBaseURL = "https://generativelanguage.googleapis.com"

const systemPrompt = "You are Mobi, a friendly maternal health assistant for pregnant women " +
	"and new mothers in Ghana. Give short, practical, supportive answers. " +
	"You are not a doctor: for anything urgent or serious, advise the user " +
	"to visit their clinic. %s"

type AssistantServicer interface {
	Ask(ctx context.Context, message, language string) string
}

type Config struct {
	APIKey  string
	Model   string
	Timeout time.Duration
	// BaseURL overrides the provider endpoint, used by tests.
	BaseURL string
}

type Service struct {
	client  *http.Client
	cfg     Config
	breaker *circuitbreaker.CircuitBreaker
	metrics *metrics.Metrics
	logger  *logger.Logger
}

func NewService(cfg Config, m *metrics.Metrics, log *logger.Logger) *Service {
	if cfg.Model == "" {
		cfg.Model = "gemini-2.5-flash"
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 10 * time.Second
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = defaultBaseURL
	}
	return &Service{
		client:  &http.Client{Timeout: cfg.Timeout},
		cfg:     cfg,
		breaker: circuitbreaker.New(circuitbreaker.Settings{
			Name:        "gemini",
			MaxFailures: 3,
			Cooldown:    time.Minute,
		}),
		metrics: m,
		logger:  log,
	}
}

// Ask relays the question and returns the reply text, or Fallback if the
// provider is down, slow, or misconfigured. One retry on transient failures.
func (s *Service) Ask(ctx context.Context, message, language string) string {
	start := time.Now()

	var reply string
	err := s.breaker.Execute(func() error {
		var callErr error
		for attempt := 0; attempt < 2; attempt++ {
			reply, callErr = s.generate(ctx, message, language)
			if callErr == nil {
				return nil
			}
			if ctx.Err() != nil {
				break
			}
		}
		return callErr
	})

	if s.metrics != nil {
		s.metrics.AssistantLatency.Observe(time.Since(start).Seconds())
	}

	if err != nil {
		s.observe("fallback")
		if s.logger != nil {
			s.logger.Warn("assistant relay failed", map[string]interface{}{"error": err.Error()})
		}
		return Fallback
	}

	s.observe("ok")
	return reply
}

func (s *Service) observe(outcome string) {
	if s.metrics != nil {
		s.metrics.AssistantRequests.WithLabelValues(outcome).Inc()
	}
}

type generateRequest struct {
	SystemInstruction *contentBlock  `json:"system_instruction,omitempty"`
	Contents          []contentBlock `json:"contents"`
}

type contentBlock struct {
	Role  string `json:"role,omitempty"`
	Parts []part `json:"parts"`
}

type part struct {
	Text string `json:"text"`
}

type generateResponse struct {
	Candidates []struct {
		Content contentBlock `json:"content"`
	} `json:"candidates"`
}

func (s *Service) generate(ctx context.Context, message, language string) (string, error) {
	if s.cfg.APIKey == "" {
		return "", apperror.External("assistant", fmt.Errorf("no api key configured"))
	}

	langHint := "Reply in simple English."
	if language == "tw" {
		langHint = "Reply in Twi."
	}

	body, err := json.Marshal(generateRequest{
		SystemInstruction: &contentBlock{
			Parts: []part{{Text: fmt.Sprintf(systemPrompt, langHint)}},
		},
		Contents: []contentBlock{
			{Role: "user", Parts: []part{{Text: message}}},
		},
	})
	if err != nil {
		return "", fmt.Errorf("failed to encode request: %w", err)
	}

	url := fmt.Sprintf("%s/v1beta/models/%s:generateContent", s.cfg.BaseURL, s.cfg.Model)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-goog-api-key", s.cfg.APIKey)

	resp, err := s.client.Do(req)
	if err != nil {
		return "", apperror.External("assistant", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		payload, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return "", apperror.External("assistant", fmt.Errorf("status %d: %s", resp.StatusCode, payload))
	}

	var decoded generateResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return "", apperror.External("assistant", err)
	}

	if len(decoded.Candidates) == 0 || len(decoded.Candidates[0].Content.Parts) == 0 {
		return "", apperror.External("assistant", fmt.Errorf("empty candidate list"))
	}

	reply := strings.TrimSpace(decoded.Candidates[0].Content.Parts[0].Text)
	if reply == "" {
		return "", apperror.External("assistant", fmt.Errorf("blank reply"))
	}
	return reply, nil
}
