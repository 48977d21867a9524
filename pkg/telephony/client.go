package telephony

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"

	"github.com/virio-ai/go-translator/internal/httpc"
)

// Client talks to a Vapi-style call control API: speech delivery into
// active calls and outbound dialing.
type Client struct {
	config  *Config
	client  *http.Client
	logger  *slog.Logger
	baseURL string
}

// NewClient creates a new call control client.
func NewClient(opts ...Option) (*Client, error) {
	cfg := DefaultConfig()
	cfg.Apply(opts...)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &Client{
		config:  cfg,
		client:  httpc.NewClient(cfg.Timeout),
		logger:  cfg.Logger.With("component", "telephony.client"),
		baseURL: strings.TrimSuffix(cfg.BaseURL, "/"),
	}, nil
}

// Speak plays text to one channel of an active call.
func (c *Client) Speak(ctx context.Context, callID string, req SpeakRequest) error {
	url := fmt.Sprintf("%s/call/%s/say", c.baseURL, callID)

	resp, err := c.post(ctx, url, req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return c.parseError(resp)
	}

	c.logger.Debug("spoke into call",
		"call_id", callID,
		"channel", req.Channel,
		"chars", len(req.Text),
	)
	return nil
}

// CallRequest starts one outbound leg. ConferenceID joins the leg to
// an existing conference when set.
type CallRequest struct {
	PhoneNumberID string `json:"phoneNumberId"`
	ConferenceID  string `json:"conferenceId,omitempty"`
	Customer      struct {
		Number string `json:"number"`
	} `json:"customer"`
}

// Call is the provider's view of one call leg.
type Call struct {
	ID           string `json:"id"`
	ConferenceID string `json:"conferenceId,omitempty"`
	Status       string `json:"status,omitempty"`
}

// CreateCall dials one outbound leg.
func (c *Client) CreateCall(ctx context.Context, req CallRequest) (*Call, error) {
	if req.PhoneNumberID == "" {
		req.PhoneNumberID = c.config.PhoneNumberID
	}
	if req.PhoneNumberID == "" {
		return nil, ErrNoPhoneNumberID
	}

	resp, err := c.post(ctx, c.baseURL+"/call", req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, c.parseError(resp)
	}

	var call Call
	if err := json.NewDecoder(resp.Body).Decode(&call); err != nil {
		return nil, fmt.Errorf("telephony: decode call: %w", err)
	}
	return &call, nil
}

// ConferenceCall dials two parties and bridges them into one
// conference. The agent leg is dialed first; the customer leg joins
// the conference the provider assigned to it.
func (c *Client) ConferenceCall(ctx context.Context, customerNumber, agentNumber string) (string, error) {
	agentLeg := CallRequest{}
	agentLeg.Customer.Number = agentNumber

	leg, err := c.CreateCall(ctx, agentLeg)
	if err != nil {
		return "", fmt.Errorf("telephony: dial agent leg: %w", err)
	}
	if leg.ConferenceID == "" {
		return "", ErrNoConference
	}
	c.logger.Info("agent leg started", "call_id", leg.ID, "conference_id", leg.ConferenceID)

	customerLeg := CallRequest{ConferenceID: leg.ConferenceID}
	customerLeg.Customer.Number = customerNumber

	joined, err := c.CreateCall(ctx, customerLeg)
	if err != nil {
		return "", fmt.Errorf("telephony: dial customer leg: %w", err)
	}
	c.logger.Info("customer leg added", "call_id", joined.ID, "conference_id", leg.ConferenceID)

	return leg.ConferenceID, nil
}

// post sends an authenticated JSON POST.
func (c *Client) post(ctx context.Context, url string, payload interface{}) (*http.Response, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("telephony: marshal payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, "POST", url, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("telephony: create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.config.APIKey)

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("telephony: %w", err)
	}
	return resp, nil
}

// parseError extracts an APIError from an error response.
func (c *Client) parseError(resp *http.Response) error {
	body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))

	var apiErr struct {
		Message string `json:"message"`
		Error   string `json:"error"`
	}
	if err := json.Unmarshal(body, &apiErr); err == nil {
		msg := apiErr.Message
		if msg == "" {
			msg = apiErr.Error
		}
		if msg != "" {
			return &APIError{StatusCode: resp.StatusCode, Message: msg}
		}
	}
	return &APIError{StatusCode: resp.StatusCode, Message: strings.TrimSpace(string(body))}
}

// Verify Client implements Speaker at compile time.
var _ Speaker = (*Client)(nil)
