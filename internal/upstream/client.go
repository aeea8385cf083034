package upstream

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"strings"
	"time"

	"santiye-backend/internal/logger"
)

// Client - legacy .NET API istemcisi. Tüm domain verisinin tek doğru kaynağı
// bu API'dir; servis her mutasyondan sonra tam veri setini yeniden çeker.
type Client struct {
	baseURL    string
	httpClient *http.Client
	maxRetries int           // ilk deneme hariç tekrar sayısı
	backoff    time.Duration // N. tekrar öncesi bekleme = backoff × N
	sleep      func(time.Duration)
}

func New(baseURL string) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: 30 * time.Second},
		maxRetries: 2,
		backoff:    2 * time.Second,
		sleep:      time.Sleep,
	}
}

// APIError - upstream'in tekrar denenmeyen hata cevabı
type APIError struct {
	StatusCode int
	Body       string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("upstream %d: %s", e.StatusCode, e.Body)
}

// UserMessage - kullanıcıya gösterilecek Türkçe sınıflandırma
func (e *APIError) UserMessage() string {
	switch {
	case e.StatusCode == http.StatusBadRequest:
		return "Girdiğiniz alanları kontrol edin"
	case e.StatusCode >= 500:
		return "Sunucu hatası, lütfen daha sonra tekrar deneyin"
	default:
		if e.Body != "" {
			return e.Body
		}
		return fmt.Sprintf("İstek başarısız (HTTP %d)", e.StatusCode)
	}
}

// isTimeoutErr - transport seviyesindeki timeout'lar tekrar denenebilir
func isTimeoutErr(err error) bool {
	if err == nil {
		return false
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return true
	}
	msg := err.Error()
	return strings.Contains(msg, "timeout") || strings.Contains(msg, "TimeoutError")
}

func retryableStatus(code int) bool {
	return code == http.StatusServiceUnavailable || code == http.StatusGatewayTimeout
}

// doRaw - retry politikasının tek uygulandığı yer. Sadece 503/504 ve timeout
// hataları tekrar denenir; N. tekrardan önce backoff × N beklenir. 204 cevabı
// gövdesiz kabul edilir ve nil döner.
func (c *Client) doRaw(ctx context.Context, method, path string, body any) ([]byte, string, error) {
	var payload []byte
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return nil, "", fmt.Errorf("istek gövdesi serileştirilemedi: %w", err)
		}
		payload = b
	}

	var lastErr error
	attempts := c.maxRetries + 1

	for attempt := 1; attempt <= attempts; attempt++ {
		if attempt > 1 {
			c.sleep(time.Duration(attempt-1) * c.backoff)
		}

		var reqBody io.Reader
		if payload != nil {
			reqBody = bytes.NewReader(payload)
		}
		req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
		if err != nil {
			return nil, "", err
		}
		if payload != nil {
			req.Header.Set("Content-Type", "application/json")
		}

		resp, err := c.httpClient.Do(req)
		if err != nil {
			if isTimeoutErr(err) && attempt < attempts {
				lastErr = err
				logger.Get().WithField("path", path).WithField("attempt", attempt).Warn("upstream timeout, tekrar denenecek")
				continue
			}
			return nil, "", err
		}

		data, readErr := io.ReadAll(resp.Body)
		resp.Body.Close()
		if readErr != nil {
			return nil, "", readErr
		}

		switch {
		case resp.StatusCode == http.StatusNoContent:
			return nil, resp.Header.Get("Content-Type"), nil
		case resp.StatusCode >= 200 && resp.StatusCode < 300:
			return data, resp.Header.Get("Content-Type"), nil
		case retryableStatus(resp.StatusCode) && attempt < attempts:
			lastErr = &APIError{StatusCode: resp.StatusCode, Body: strings.TrimSpace(string(data))}
			logger.Get().WithField("path", path).WithField("status", resp.StatusCode).WithField("attempt", attempt).Warn("upstream geçici hata, tekrar denenecek")
			continue
		default:
			return nil, "", &APIError{StatusCode: resp.StatusCode, Body: strings.TrimSpace(string(data))}
		}
	}

	return nil, "", fmt.Errorf("upstream istek %d denemede başarısız: %w", attempts, lastErr)
}

// doJSON - 204 → nil, diğer başarılı cevaplar ham JSON olarak döner
func (c *Client) doJSON(ctx context.Context, method, path string, body any) (json.RawMessage, error) {
	data, _, err := c.doRaw(ctx, method, path, body)
	if err != nil {
		return nil, err
	}
	if data == nil {
		return nil, nil
	}
	return json.RawMessage(data), nil
}
