package personel

import (
	"fmt"

	"santiye-backend/internal/audit"
	"santiye-backend/internal/auth"
	"santiye-backend/internal/dataset"
	"santiye-backend/internal/finance"
	"santiye-backend/internal/httputil"
	"santiye-backend/internal/logger"
	"santiye-backend/internal/models"
	"santiye-backend/internal/upstream"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

var validate = validator.New()

// yazma sonrası tam veri seti yenileme; hata mutasyonu geri döndürmez,
// sadece loglanır (bir sonraki okuma tekrar dener)
func reloadAfterWrite(c *fiber.Ctx) {
	if err := dataset.Reload(c.Context()); err != nil {
		logger.LogError("personel", "reloadAfterWrite", "write-then-refetch", nil, err)
	}
}

func writeAudit(c *fiber.Ctx, entityType string, entityID int, action models.AuditAction, desc string, before, after any) {
	userID, email, err := auth.CurrentUser(c)
	if err != nil {
		return
	}
	if logErr := audit.WriteLog(audit.LogOptions{
		UserID:      userID,
		UserEmail:   email,
		EntityType:  entityType,
		EntityID:    entityID,
		Action:      action,
		Description: desc,
		Before:      before,
		After:       after,
	}); logErr != nil {
		logger.LogError("personel", "writeAudit", entityType, nil, logErr)
	}
}

// -------------------------------------------------
// GET /api/personel
// -------------------------------------------------
func ListPersonelHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		return c.JSON(dataset.Snapshot().Personeller)
	}
}

type CreatePersonelRequest struct {
	Name      string `json:"name" validate:"required"`
	Note      string `json:"note"`
	ForemanID *int   `json:"foremanId"`
}

// upstream .NET API'nin beklediği gövde
type personelUpstreamBody struct {
	AdSoyad    string `json:"AdSoyad"`
	Not        string `json:"Not,omitempty"`
	UstabasiID *int   `json:"UstabasiId,omitempty"`
}

// -------------------------------------------------
// POST /api/personel
// -------------------------------------------------
func CreatePersonelHandler(api *upstream.Client) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body CreatePersonelRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz istek gövdesi")
		}
		if err := validate.Struct(body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "İsim zorunlu")
		}

		_, err := api.CreatePersonel(c.Context(), personelUpstreamBody{
			AdSoyad:    body.Name,
			Not:        body.Note,
			UstabasiID: body.ForemanID,
		})
		if err != nil {
			return httputil.UpstreamError(err)
		}

		writeAudit(c, "personel", 0, models.AuditActionCreate, fmt.Sprintf("Personel eklendi: %s", body.Name), nil, body)
		reloadAfterWrite(c)

		return c.SendStatus(fiber.StatusCreated)
	}
}

// -------------------------------------------------
// PUT /api/personel/:id
// -------------------------------------------------
func UpdatePersonelHandler(api *upstream.Client) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := c.ParamsInt("id")
		if err != nil || id <= 0 {
			return fiber.NewError(fiber.StatusBadRequest, "id geçersiz")
		}

		var body CreatePersonelRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz istek gövdesi")
		}
		if err := validate.Struct(body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "İsim zorunlu")
		}

		before, _ := dataset.Snapshot().PersonelByID(id)

		_, err = api.UpdatePersonel(c.Context(), id, personelUpstreamBody{
			AdSoyad:    body.Name,
			Not:        body.Note,
			UstabasiID: body.ForemanID,
		})
		if err != nil {
			return httputil.UpstreamError(err)
		}

		writeAudit(c, "personel", id, models.AuditActionUpdate, fmt.Sprintf("Personel güncellendi: %s", body.Name), before, body)
		reloadAfterWrite(c)

		return c.SendStatus(fiber.StatusOK)
	}
}

// -------------------------------------------------
// DELETE /api/personel/:id
// -------------------------------------------------
func DeletePersonelHandler(api *upstream.Client) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := c.ParamsInt("id")
		if err != nil || id <= 0 {
			return fiber.NewError(fiber.StatusBadRequest, "id geçersiz")
		}

		before, _ := dataset.Snapshot().PersonelByID(id)

		if err := api.DeletePersonel(c.Context(), id); err != nil {
			return httputil.UpstreamError(err)
		}

		writeAudit(c, "personel", id, models.AuditActionDelete, fmt.Sprintf("Personel silindi: %s", before.Name), before, nil)
		reloadAfterWrite(c)

		return c.SendStatus(fiber.StatusNoContent)
	}
}

// -------------------------------------------------
// GET /api/personel/odemeler
// -------------------------------------------------
func ListOdemelerHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		return c.JSON(dataset.Snapshot().Odemeler)
	}
}

type CreateOdemeRequest struct {
	PersonelID    int                 `json:"personnelId" validate:"required,gt=0"`
	Amount        float64             `json:"amount" validate:"required,gt=0"`
	Date          string              `json:"date" validate:"required"`
	CustomerJobID *int                `json:"customerJobId"`
	Payer         models.Odeyen       `json:"payer"`
	PaymentMethod models.OdemeYontemi `json:"paymentMethod"`
}

type odemeUpstreamBody struct {
	PersonelID   int     `json:"PersonelId"`
	Tutar        float64 `json:"Tutar"`
	Tarih        string  `json:"Tarih"`
	MusteriIsID  *int    `json:"MusteriIsId,omitempty"`
	Odeyen       string  `json:"Odeyen"`
	OdemeYontemi string  `json:"OdemeYontemi"`
}

// -------------------------------------------------
// POST /api/personel/odemeler
// -------------------------------------------------
func CreateOdemeHandler(api *upstream.Client) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body CreateOdemeRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz istek gövdesi")
		}
		if err := validate.Struct(body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Personel, tutar ve tarih zorunlu; tutar 0'dan büyük olmalı")
		}

		switch body.Payer {
		case models.OdeyenOmer, models.OdeyenBaris, models.OdeyenKasa:
			// ok
		default:
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz ödeyen (Omer|Baris|Kasa)")
		}

		switch body.PaymentMethod {
		case models.OdemeNakit, models.OdemeKart, models.OdemeTransfer:
			// ok
		default:
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz ödeme yöntemi (cash|card|transfer)")
		}

		_, err := api.CreatePersonelOdeme(c.Context(), odemeUpstreamBody{
			PersonelID:   body.PersonelID,
			Tutar:        body.Amount,
			Tarih:        body.Date,
			MusteriIsID:  body.CustomerJobID,
			Odeyen:       string(body.Payer),
			OdemeYontemi: string(body.PaymentMethod),
		})
		if err != nil {
			return httputil.UpstreamError(err)
		}

		writeAudit(c, "personel_odeme", 0, models.AuditActionCreate,
			fmt.Sprintf("Ödeme eklendi: personel %d - %.2f TL", body.PersonelID, body.Amount), nil, body)
		reloadAfterWrite(c)

		return c.SendStatus(fiber.StatusCreated)
	}
}

// -------------------------------------------------
// DELETE /api/personel/odemeler/:id
// -------------------------------------------------
func DeleteOdemeHandler(api *upstream.Client) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := c.ParamsInt("id")
		if err != nil || id <= 0 {
			return fiber.NewError(fiber.StatusBadRequest, "id geçersiz")
		}

		if err := api.DeletePersonelOdeme(c.Context(), id); err != nil {
			return httputil.UpstreamError(err)
		}

		writeAudit(c, "personel_odeme", id, models.AuditActionDelete, fmt.Sprintf("Ödeme silindi: %d", id), nil, nil)
		reloadAfterWrite(c)

		return c.SendStatus(fiber.StatusNoContent)
	}
}

type BakiyeItem struct {
	finance.PersonelOzet
	Name string `json:"name"`
}

// -------------------------------------------------
// GET /api/personel/bakiye?start=2025-12-01&end=2025-12-31[&personelId=3]
// -------------------------------------------------
func BakiyeHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		start, end, err := httputil.RangeQuery(c)
		if err != nil {
			return err
		}

		d := dataset.Snapshot()

		var tekil *int
		if v := c.QueryInt("personelId"); v > 0 {
			tekil = &v
		}

		items := make([]BakiyeItem, 0, len(d.Personeller))
		for _, p := range d.Personeller {
			if tekil != nil && p.ID != *tekil {
				continue
			}
			ozet := finance.PersonelOzeti(p.ID, d.Isler, d.Odemeler, start, end)
			items = append(items, BakiyeItem{PersonelOzet: ozet, Name: p.Name})
		}

		return c.JSON(items)
	}
}
