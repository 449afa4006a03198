package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"klubnika/config"
)

// SMSClient posts transactional messages to the SMS provider's REST
// endpoint.
type SMSClient struct {
	httpClient *http.Client
	endpoint   string
	apiKey     string
	sender     string
	log        *slog.Logger
}

func NewSMSClient(cfg config.SMS, log *slog.Logger) *SMSClient {
	return &SMSClient{
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
		endpoint: cfg.Endpoint,
		apiKey:   cfg.APIKey,
		sender:   cfg.Sender,
		log:      log,
	}
}

func (s *SMSClient) send(ctx context.Context, mobile, message string) error {
	payload := map[string]string{
		"sender":  s.sender,
		"to":      mobile,
		"message": message,
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal sms payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.endpoint, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("new sms request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+s.apiKey)

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("sms http do: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		b, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("sms provider error %d: %s", resp.StatusCode, string(b))
	}
	return nil
}

// SendBill texts the customer their paid total and invoice link right
// after an online order is confirmed.
func (s *SMSClient) SendBill(ctx context.Context, mobile string, amount float64, shortID, invoiceLink string) error {
	msg := fmt.Sprintf("Klubnika Cafe: payment of Rs.%.2f received for order #%s. Invoice: %s", amount, shortID, invoiceLink)
	return s.send(ctx, mobile, msg)
}

func (s *SMSClient) SendStatusUpdate(ctx context.Context, mobile, shortID, status, trackingLink string) error {
	msg := fmt.Sprintf("Klubnika Cafe: order #%s is now %s. Track it here: %s", shortID, status, trackingLink)
	return s.send(ctx, mobile, msg)
}

func (s *SMSClient) SendDelivered(ctx context.Context, mobile, shortID, ratingsLink string) error {
	msg := fmt.Sprintf("Klubnika Cafe: order #%s delivered. Bon Appetit! Rate us: %s", shortID, ratingsLink)
	return s.send(ctx, mobile, msg)
}
