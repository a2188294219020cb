package calendar

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// Client отправляет события записей во внешний календарь через webhook.
// Выключенный клиент ничего не отправляет.
type Client struct {
	webhookURL string
	enabled    bool
	httpClient *http.Client
	metrics    Metrics
	log        Logger
}

// NewClient создает новый экземпляр клиента календаря
func NewClient(webhookURL string, enabled bool, timeout time.Duration, metrics Metrics, log Logger) *Client {
	return &Client{
		webhookURL: webhookURL,
		enabled:    enabled && webhookURL != "",
		httpClient: &http.Client{
			Timeout: timeout,
		},
		metrics: metrics,
		log:     log,
	}
}

// Notify отправляет событие
func (c *Client) Notify(ctx context.Context, ev Event) error {
	if !c.enabled {
		return nil
	}

	err := c.send(ctx, ev)
	if c.metrics != nil {
		c.metrics.RecordCalendarNotification(ev.Operation.String(), err)
	}
	if err != nil {
		c.log.Warn("Calendar notification failed: appointment=%s op=%s: %v", ev.AppointmentID, ev.Operation, err)
		return err
	}

	c.log.Info("Calendar notified: appointment=%s op=%s", ev.AppointmentID, ev.Operation)
	return nil
}

func (c *Client) send(ctx context.Context, ev Event) error {
	body, err := json.Marshal(toPayload(ev))
	if err != nil {
		return fmt.Errorf("%w: failed to encode payload: %v", ErrInternal, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.webhookURL, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("%w: failed to create request: %v", ErrInternal, err)
	}

	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: failed to execute request: %v", ErrInternal, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		respBody, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return fmt.Errorf("%w: unexpected status code %d: %s", ErrInvalidResponse, resp.StatusCode, string(respBody))
	}

	return nil
}
