package resend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	guestsdomain "wedding-registry-go/internal/domain/guests"
)

const defaultBaseURL = "https://api.resend.com"

type Config struct {
	APIKey string
	// BaseURL is overridden in tests.
	BaseURL           string
	From              string
	NotificationEmail string
	SiteURL           string
	CoupleNames       string
	WeddingDate       string
}

// Client sends RSVP emails through the Resend REST API.
type Client struct {
	cfg  Config
	http *http.Client
}

type sendRequest struct {
	From    string   `json:"from"`
	To      []string `json:"to"`
	Subject string   `json:"subject"`
	HTML    string   `json:"html"`
}

// APIError is a non-2xx answer from Resend.
type APIError struct {
	Status int
	Body   string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("resend: status %d: %s", e.Status, e.Body)
}

func NewClient(cfg Config, httpClient *http.Client) *Client {
	if cfg.BaseURL == "" {
		cfg.BaseURL = defaultBaseURL
	}
	cfg.BaseURL = strings.TrimRight(cfg.BaseURL, "/")
	cfg.SiteURL = strings.TrimRight(cfg.SiteURL, "/")
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 15 * time.Second}
	}
	return &Client{cfg: cfg, http: httpClient}
}

func (c *Client) SendGuestConfirmation(ctx context.Context, msg guestsdomain.Confirmation) error {
	if strings.TrimSpace(msg.Email) == "" {
		return nil
	}
	html, err := render(guestTemplate, guestView{
		Confirmation: msg,
		FirstName:    firstName(msg.Name),
		CoupleNames:  c.cfg.CoupleNames,
		WeddingDate:  c.cfg.WeddingDate,
		SiteURL:      c.cfg.SiteURL,
	})
	if err != nil {
		return fmt.Errorf("render guest confirmation: %w", err)
	}
	return c.send(ctx, sendRequest{
		From:    c.cfg.From,
		To:      []string{msg.Email},
		Subject: fmt.Sprintf("RSVP Confirmed - %s", c.cfg.CoupleNames),
		HTML:    html,
	})
}

// SendCoupleNotification is a no-op when no notification address is set.
func (c *Client) SendCoupleNotification(ctx context.Context, msg guestsdomain.Notification) error {
	if c.cfg.NotificationEmail == "" || len(msg.Rows) == 0 {
		return nil
	}
	html, err := render(coupleTemplate, coupleView{Notification: msg, SiteURL: c.cfg.SiteURL})
	if err != nil {
		return fmt.Errorf("render couple notification: %w", err)
	}
	return c.send(ctx, sendRequest{
		From:    c.cfg.From,
		To:      []string{c.cfg.NotificationEmail},
		Subject: coupleSubject(msg),
		HTML:    html,
	})
}

func coupleSubject(msg guestsdomain.Notification) string {
	subject := fmt.Sprintf("New RSVP: %s - %s", msg.SubmittedBy, statusText(msg.Rows[0].Response))
	if extra := len(msg.Rows) - 1; extra > 0 {
		subject += fmt.Sprintf(" (+%d family)", extra)
	}
	return subject
}

func (c *Client) send(ctx context.Context, payload sendRequest) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.BaseURL+"/emails", bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+c.cfg.APIKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("resend: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return &APIError{Status: resp.StatusCode, Body: strings.TrimSpace(string(raw))}
	}
	_, _ = io.Copy(io.Discard, resp.Body)
	return nil
}
