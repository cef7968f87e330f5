package push

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"connecta_backend/internal/config"
)

// Provider delivers push notifications to user devices.
type Provider interface {
	Send(tokens []string, title, body string, data map[string]string) error
}

// ExpoProvider posts messages to the Expo push endpoint.
type ExpoProvider struct {
	HTTPClient *http.Client
	Endpoint   string
	AuthToken  string
}

func NewExpoProvider() *ExpoProvider {
	cfg := config.GetConfig()
	return &ExpoProvider{
		HTTPClient: &http.Client{Timeout: 10 * time.Second},
		Endpoint:   cfg.Push.Endpoint,
		AuthToken:  cfg.Push.Token,
	}
}

type expoMessage struct {
	To    []string          `json:"to"`
	Title string            `json:"title"`
	Body  string            `json:"body"`
	Data  map[string]string `json:"data,omitempty"`
	Sound string            `json:"sound"`
}

func (p *ExpoProvider) Send(tokens []string, title, body string, data map[string]string) error {
	if len(tokens) == 0 {
		return nil
	}

	msg := expoMessage{
		To:    tokens,
		Title: title,
		Body:  body,
		Data:  data,
		Sound: "default",
	}
	jsonBody, err := json.Marshal(msg)
	if err != nil {
		return err
	}

	req, err := http.NewRequest("POST", p.Endpoint, bytes.NewBuffer(jsonBody))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	if p.AuthToken != "" {
		req.Header.Set("Authorization", "Bearer "+p.AuthToken)
	}

	resp, err := p.HTTPClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		respBody, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("push endpoint returned %d: %s", resp.StatusCode, string(respBody))
	}
	return nil
}
