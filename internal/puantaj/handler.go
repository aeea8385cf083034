package puantaj

import (
	"fmt"

	"santiye-backend/internal/audit"
	"santiye-backend/internal/auth"
	"santiye-backend/internal/dataset"
	"santiye-backend/internal/httputil"
	"santiye-backend/internal/ledger"
	"santiye-backend/internal/logger"
	"santiye-backend/internal/models"
	"santiye-backend/internal/upstream"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

var validate = validator.New()

func reloadAfterWrite(c *fiber.Ctx) {
	if err := dataset.Reload(c.Context()); err != nil {
		logger.LogError("puantaj", "reloadAfterWrite", "write-then-refetch", nil, err)
	}
}

func writeAudit(c *fiber.Ctx, entityID int, action models.AuditAction, desc string, before, after any) {
	userID, email, err := auth.CurrentUser(c)
	if err != nil {
		return
	}
	if logErr := audit.WriteLog(audit.LogOptions{
		UserID:      userID,
		UserEmail:   email,
		EntityType:  "puantaj",
		EntityID:    entityID,
		Action:      action,
		Description: desc,
		Before:      before,
		After:       after,
	}); logErr != nil {
		logger.LogError("puantaj", "writeAudit", "puantaj", nil, logErr)
	}
}

// -------------------------------------------------
// GET /api/puantaj?start=&end=&personelId=&musteriIsId=
// -------------------------------------------------
func ListHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		start, err := httputil.DateQuery(c, "start")
		if err != nil {
			return err
		}
		end, err := httputil.DateQuery(c, "end")
		if err != nil {
			return err
		}

		personelID := c.QueryInt("personelId")
		musteriIsID := c.QueryInt("musteriIsId")

		d := dataset.Snapshot()
		out := make([]models.PuantajKaydi, 0, len(d.PuantajKayitlari))
		for _, k := range d.PuantajKayitlari {
			if start != nil && k.Tarih.Before(ledger.DayStart(*start)) {
				continue
			}
			if end != nil && k.Tarih.After(ledger.DayEnd(*end)) {
				continue
			}
			if personelID > 0 && k.PersonelID != personelID {
				continue
			}
			if musteriIsID > 0 && k.MusteriIsID != musteriIsID {
				continue
			}
			out = append(out, k)
		}
		return c.JSON(out)
	}
}

type PuantajRequest struct {
	PersonelID  int     `json:"personelId" validate:"required,gt=0"`
	MusteriIsID int     `json:"musteriIsId" validate:"required,gt=0"`
	Tarih       string  `json:"tarih" validate:"required"`
	GunlukUcret float64 `json:"gunlukUcret" validate:"gte=0"`
	Konum       string  `json:"konum"`
	IsTanimi    string  `json:"isTanimi"`
}

type puantajUpstreamBody struct {
	PersonelID  int     `json:"PersonelId"`
	MusteriIsID int     `json:"MusteriIsId"`
	Tarih       string  `json:"Tarih"`
	GunlukUcret float64 `json:"GunlukUcret"`
	Konum       string  `json:"Konum,omitempty"`
	IsTanimi    string  `json:"IsTanimi,omitempty"`
}

// -------------------------------------------------
// POST /api/puantaj
// -------------------------------------------------
func CreateHandler(api *upstream.Client) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body PuantajRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz istek gövdesi")
		}
		if err := validate.Struct(body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Personel, iş ve tarih zorunlu; ücret negatif olamaz")
		}

		if _, ok := dataset.Snapshot().IsByID(body.MusteriIsID); !ok {
			return fiber.NewError(fiber.StatusBadRequest, "İş bulunamadı")
		}

		if _, err := api.CreatePuantaj(c.Context(), puantajUpstreamBody{
			PersonelID:  body.PersonelID,
			MusteriIsID: body.MusteriIsID,
			Tarih:       body.Tarih,
			GunlukUcret: body.GunlukUcret,
			Konum:       body.Konum,
			IsTanimi:    body.IsTanimi,
		}); err != nil {
			return httputil.UpstreamError(err)
		}

		writeAudit(c, 0, models.AuditActionCreate,
			fmt.Sprintf("Puantaj eklendi: personel %d, iş %d", body.PersonelID, body.MusteriIsID), nil, body)
		reloadAfterWrite(c)

		return c.SendStatus(fiber.StatusCreated)
	}
}

// -------------------------------------------------
// PUT /api/puantaj/:id
// -------------------------------------------------
func UpdateHandler(api *upstream.Client) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := c.ParamsInt("id")
		if err != nil || id <= 0 {
			return fiber.NewError(fiber.StatusBadRequest, "id geçersiz")
		}

		var body PuantajRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz istek gövdesi")
		}
		if err := validate.Struct(body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Personel, iş ve tarih zorunlu; ücret negatif olamaz")
		}

		if _, err := api.UpdatePuantaj(c.Context(), id, puantajUpstreamBody{
			PersonelID:  body.PersonelID,
			MusteriIsID: body.MusteriIsID,
			Tarih:       body.Tarih,
			GunlukUcret: body.GunlukUcret,
			Konum:       body.Konum,
			IsTanimi:    body.IsTanimi,
		}); err != nil {
			return httputil.UpstreamError(err)
		}

		writeAudit(c, id, models.AuditActionUpdate, fmt.Sprintf("Puantaj güncellendi: %d", id), nil, body)
		reloadAfterWrite(c)

		return c.SendStatus(fiber.StatusOK)
	}
}

// -------------------------------------------------
// DELETE /api/puantaj/:id
// -------------------------------------------------
func DeleteHandler(api *upstream.Client) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := c.ParamsInt("id")
		if err != nil || id <= 0 {
			return fiber.NewError(fiber.StatusBadRequest, "id geçersiz")
		}

		if err := api.DeletePuantaj(c.Context(), id); err != nil {
			return httputil.UpstreamError(err)
		}

		writeAudit(c, id, models.AuditActionDelete, fmt.Sprintf("Puantaj silindi: %d", id), nil, nil)
		reloadAfterWrite(c)

		return c.SendStatus(fiber.StatusNoContent)
	}
}

// -------------------------------------------------
// GET /api/puantaj/musteri-gruplari - kayıtlar işleri üzerinden müşteriye bağlanır
// -------------------------------------------------
func MusteriGruplariHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		d := dataset.Snapshot()
		return c.JSON(ledger.GroupPuantajByMusteri(d.PuantajKayitlari, d.Isler))
	}
}

// -------------------------------------------------
// GET /api/puantaj/report/pdf?startDate=&endDate=&groupBy=
//
// PDF'i upstream üretir; burada sadece blob aktarılır.
// -------------------------------------------------
func ReportPDFHandler(api *upstream.Client) fiber.Handler {
	return func(c *fiber.Ctx) error {
		startDate := c.Query("startDate")
		endDate := c.Query("endDate")
		if startDate == "" || endDate == "" {
			return fiber.NewError(fiber.StatusBadRequest, "startDate ve endDate zorunlu")
		}

		data, contentType, err := api.PuantajReportPDF(c.Context(), startDate, endDate, c.Query("groupBy"))
		if err != nil {
			return httputil.UpstreamError(err)
		}
		if data == nil {
			return fiber.NewError(fiber.StatusBadGateway, "Rapor alınamadı")
		}

		if contentType == "" {
			contentType = "application/pdf"
		}
		c.Set("Content-Type", contentType)
		c.Set("Content-Disposition", fmt.Sprintf(`attachment; filename="puantaj-%s-%s.pdf"`, startDate, endDate))
		return c.Send(data)
	}
}
