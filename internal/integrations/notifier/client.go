package notifier

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// Имя сервиса в метриках внешних запросов
const metricsTarget = "notifier"

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// MetricsRecorder учитывает обращения к внешним сервисам
type MetricsRecorder interface {
	ObserveExternalRequest(target string, failed bool)
}

// Client клиент роутера уведомлений
type Client struct {
	baseURL    string
	httpClient *http.Client
	metrics    MetricsRecorder
	log        Logger
}

// NewClient создает новый экземпляр клиента
func NewClient(baseURL string, timeout time.Duration, metrics MetricsRecorder, log Logger) *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		metrics: metrics,
		log:     log,
	}
}

// SendReservationCreated отправляет событие о созданной брони
// Семантика fire-and-forget: вызывающая сторона логирует ошибку и продолжает,
// коммит брони при ошибке доставки не откатывается
func (c *Client) SendReservationCreated(ctx context.Context, event *ReservationCreatedEvent) error {
	url := fmt.Sprintf("%s/internal/events/reservation-created", c.baseURL)

	body, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("%w: failed to marshal event: %v", ErrInternal, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("%w: failed to create request: %v", ErrInternal, err)
	}

	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.observeRequest(true)
		return fmt.Errorf("%w: reservation_id=%d: %v", ErrDeliveryFailed, event.ReservationID, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusAccepted {
		c.observeRequest(true)
		respBody, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("%w: reservation_id=%d: status %d: %s",
			ErrDeliveryFailed, event.ReservationID, resp.StatusCode, string(respBody))
	}

	c.observeRequest(false)
	c.log.Info("SendReservationCreated: event delivered for reservation_id=%d", event.ReservationID)
	return nil
}

// observeRequest учитывает исход запроса в метриках, если они включены
func (c *Client) observeRequest(failed bool) {
	if c.metrics != nil {
		c.metrics.ObserveExternalRequest(metricsTarget, failed)
	}
}
