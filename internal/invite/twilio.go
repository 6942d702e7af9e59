package invite

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// SMSSender sends a text message and returns the provider's message id.
type SMSSender interface {
	SendSMS(ctx context.Context, to, body string) (string, error)
}

// TwilioClient sends SMS through the Twilio Messages API.
type TwilioClient struct {
	httpClient *http.Client
	baseURL    string
	accountSID string
	authToken  string
	from       string
}

// NewTwilioClient creates a new TwilioClient. baseURL is the API root
// (https://api.twilio.com in production).
func NewTwilioClient(baseURL, accountSID, authToken, from string) *TwilioClient {
	return &TwilioClient{
		httpClient: &http.Client{Timeout: 15 * time.Second},
		baseURL:    baseURL,
		accountSID: accountSID,
		authToken:  authToken,
		from:       from,
	}
}

// twilioResponse is the subset of the Messages API response we read.
type twilioResponse struct {
	SID     string `json:"sid"`
	Message string `json:"message"`
}

// SendSMS posts the message and returns the provider message SID.
func (c *TwilioClient) SendSMS(ctx context.Context, to, body string) (string, error) {
	form := url.Values{}
	form.Set("To", to)
	form.Set("From", c.from)
	form.Set("Body", body)

	endpoint := fmt.Sprintf("%s/2010-04-01/Accounts/%s/Messages.json", c.baseURL, c.accountSID)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	req.SetBasicAuth(c.accountSID, c.authToken)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to reach sms provider: %w", err)
	}
	defer resp.Body.Close()

	var decoded twilioResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return "", fmt.Errorf("failed to decode provider response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		if decoded.Message != "" {
			return "", fmt.Errorf("sms provider error: status %d: %s", resp.StatusCode, decoded.Message)
		}
		return "", fmt.Errorf("sms provider error: status %d", resp.StatusCode)
	}

	if decoded.SID == "" {
		return "", fmt.Errorf("sms provider returned no message id")
	}
	return decoded.SID, nil
}
