package gateway

import (
	"bytes"
	"crypto/subtle"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"connecta_backend/internal/config"
)

// Client talks to the Flutterwave REST API.
type Client struct {
	HTTPClient    *http.Client
	BaseURL       string
	SecretKey     string
	WebhookSecret string
}

func NewClient() *Client {
	cfg := config.GetConfig()
	return &Client{
		HTTPClient:    &http.Client{Timeout: 15 * time.Second},
		BaseURL:       cfg.Gateway.BaseURL,
		SecretKey:     cfg.Gateway.SecretKey,
		WebhookSecret: cfg.Gateway.WebhookSecret,
	}
}

type ChargeRequest struct {
	TxRef       string            `json:"tx_ref"`
	Amount      string            `json:"amount"`
	Currency    string            `json:"currency"`
	RedirectURL string            `json:"redirect_url"`
	Customer    ChargeCustomer    `json:"customer"`
	Meta        map[string]string `json:"meta,omitempty"`
}

type ChargeCustomer struct {
	Email string `json:"email"`
	Name  string `json:"name"`
}

type ChargeResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
	Data    struct {
		Link string `json:"link"`
	} `json:"data"`
}

// CreateCharge opens a hosted checkout and returns the payment link.
func (c *Client) CreateCharge(req *ChargeRequest) (*ChargeResponse, error) {
	jsonBody, err := json.Marshal(req)
	if err != nil {
		return nil, err
	}

	httpReq, err := http.NewRequest("POST", c.BaseURL+"/payments", bytes.NewBuffer(jsonBody))
	if err != nil {
		return nil, err
	}
	httpReq.Header.Set("Authorization", "Bearer "+c.SecretKey)
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.HTTPClient.Do(httpReq)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	bodyBytes, _ := io.ReadAll(resp.Body)

	var apiResp ChargeResponse
	if err := json.Unmarshal(bodyBytes, &apiResp); err != nil {
		return nil, fmt.Errorf("failed to parse gateway response: %w", err)
	}

	if apiResp.Status != "success" {
		return nil, fmt.Errorf("gateway error: %s", apiResp.Message)
	}

	return &apiResp, nil
}

type VerifyResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
	Data    struct {
		ID                int64   `json:"id"`
		TxRef             string  `json:"tx_ref"`
		FlwRef            string  `json:"flw_ref"`
		Amount            float64 `json:"amount"`
		Currency          string  `json:"currency"`
		TransactionStatus string  `json:"status"`
		CustomerEmail     string  `json:"customer_email"`
		Raw               json.RawMessage
	} `json:"data"`
}

// VerifyTransaction confirms a transaction by reference before any wallet
// movement. Never trust the webhook payload alone.
func (c *Client) VerifyTransaction(txRef string) (*VerifyResponse, error) {
	url := fmt.Sprintf("%s/transactions/verify_by_reference?tx_ref=%s", c.BaseURL, txRef)
	httpReq, err := http.NewRequest("GET", url, nil)
	if err != nil {
		return nil, err
	}
	httpReq.Header.Set("Authorization", "Bearer "+c.SecretKey)

	resp, err := c.HTTPClient.Do(httpReq)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	bodyBytes, _ := io.ReadAll(resp.Body)

	var apiResp VerifyResponse
	if err := json.Unmarshal(bodyBytes, &apiResp); err != nil {
		return nil, fmt.Errorf("failed to parse gateway response: %w", err)
	}
	apiResp.Data.Raw = bodyBytes

	if apiResp.Status != "success" {
		return nil, fmt.Errorf("gateway error: %s", apiResp.Message)
	}

	return &apiResp, nil
}

// ValidateWebhookSignature checks the verif-hash header Flutterwave sends
// with every webhook.
func (c *Client) ValidateWebhookSignature(signature string) bool {
	if c.WebhookSecret == "" || signature == "" {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(signature), []byte(c.WebhookSecret)) == 1
}
