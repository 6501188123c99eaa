package infra

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

// SMSClient talks to the SMS gateway's REST API. The gateway is a best-effort
// collaborator; callers decide what to do with failures.
type SMSClient struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

func NewSMSClient(baseURL, apiKey string, timeout time.Duration) *SMSClient {
	return &SMSClient{
		baseURL:    baseURL,
		apiKey:     apiKey,
		httpClient: &http.Client{Timeout: timeout},
	}
}

func (c *SMSClient) Send(ctx context.Context, phone, message string) error {
	payload, err := json.Marshal(map[string]string{
		"to":   phone,
		"text": message,
	})
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/messages", bytes.NewReader(payload))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("sms gateway returned status %d", resp.StatusCode)
	}
	return nil
}
