// Package httputil handler paketlerinin ortak küçük yardımcıları.
package httputil

import (
	"errors"
	"time"

	"santiye-backend/internal/upstream"

	"github.com/gofiber/fiber/v2"
)

// UpstreamError - upstream hatasını kullanıcıya gösterilecek fiber hatasına
// çevirir. Retry politikası istemcide tükendiyse buraya son hata düşer.
func UpstreamError(err error) error {
	var apiErr *upstream.APIError
	if errors.As(err, &apiErr) {
		status := fiber.StatusBadGateway
		if apiErr.StatusCode == fiber.StatusBadRequest || apiErr.StatusCode == fiber.StatusNotFound {
			status = apiErr.StatusCode
		}
		return fiber.NewError(status, apiErr.UserMessage())
	}
	return fiber.NewError(fiber.StatusBadGateway, "Sunucuya ulaşılamadı, lütfen tekrar deneyin")
}

// DateQuery - "YYYY-MM-DD" formatında opsiyonel query parametresi
func DateQuery(c *fiber.Ctx, name string) (*time.Time, error) {
	v := c.Query(name)
	if v == "" {
		return nil, nil
	}
	t, err := time.Parse("2006-01-02", v)
	if err != nil {
		return nil, fiber.NewError(fiber.StatusBadRequest, name+" tarihi geçersiz, 'YYYY-MM-DD' olmalı")
	}
	return &t, nil
}

// RangeQuery - start/end parametreleri; verilmezse içinde bulunulan ay
func RangeQuery(c *fiber.Ctx) (time.Time, time.Time, error) {
	start, err := DateQuery(c, "start")
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	end, err := DateQuery(c, "end")
	if err != nil {
		return time.Time{}, time.Time{}, err
	}

	now := time.Now()
	if start == nil {
		s := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
		start = &s
	}
	if end == nil {
		e := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location()).AddDate(0, 1, -1)
		end = &e
	}
	return *start, *end, nil
}
