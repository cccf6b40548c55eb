package gcalsync

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// Имя сервиса в метриках внешних запросов
const metricsTarget = "gcalsync"

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

// Client клиент сервиса синхронизации внешних календарей
// Сервис владеет Google OAuth токенами сотрудников и отдает busy-периоды
// их подключенных календарей
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

// FetchBusyPeriods получает busy-периоды внешнего календаря сотрудника
// за диапазон [from, to). Запрос идемпотентен и не имеет побочных эффектов.
//
// Отсутствие подключенного календаря (404) отдается как ErrStaffNotConnected.
// Некорректное тело ответа - как ErrInvalidResponse. Любая ошибка транспорта
// или неожиданный статус-код приводят к ErrExternalCalendarUnavailable:
// агрегатор должен пометить сотрудника полностью занятым на весь диапазон,
// а не угадывать его доступность
func (c *Client) FetchBusyPeriods(ctx context.Context, staffID int64, from, to time.Time) ([]BusyPeriod, error) {
	url := fmt.Sprintf("%s/internal/staff/%d/busy-periods?from=%s&to=%s",
		c.baseURL, staffID, from.UTC().Format(time.RFC3339), to.UTC().Format(time.RFC3339))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to create request: %v", ErrInternal, err)
	}

	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.observeRequest(true)
		c.log.Error("FetchBusyPeriods: request failed for staff_id=%d: %v", staffID, err)
		return nil, fmt.Errorf("%w: staff_id=%d: %v", ErrExternalCalendarUnavailable, staffID, err)
	}
	defer resp.Body.Close()

	// Обработка статус-кодов
	switch resp.StatusCode {
	case http.StatusOK:
		// Продолжаем обработку
	case http.StatusNotFound:
		// Нет привязанного календаря - не сбой, но busy-периодов не будет
		c.observeRequest(false)
		c.log.Info("FetchBusyPeriods: staff_id=%d has no connected calendar", staffID)
		return nil, fmt.Errorf("%w: staff_id=%d", ErrStaffNotConnected, staffID)
	default:
		c.observeRequest(true)
		body, _ := io.ReadAll(resp.Body)
		c.log.Error("FetchBusyPeriods: unexpected status %d for staff_id=%d: %s",
			resp.StatusCode, staffID, string(body))
		return nil, fmt.Errorf("%w: staff_id=%d: status %d", ErrExternalCalendarUnavailable, staffID, resp.StatusCode)
	}

	// Парсим ответ
	var parsed BusyPeriodsResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		c.observeRequest(true)
		c.log.Error("FetchBusyPeriods: failed to decode response for staff_id=%d: %v", staffID, err)
		return nil, fmt.Errorf("%w: staff_id=%d: %v", ErrInvalidResponse, staffID, err)
	}

	c.observeRequest(false)
	return parsed.Periods, nil
}

// observeRequest учитывает исход запроса в метриках, если они включены
func (c *Client) observeRequest(failed bool) {
	if c.metrics != nil {
		c.metrics.ObserveExternalRequest(metricsTarget, failed)
	}
}
