package kasa

import (
	"fmt"

	"santiye-backend/internal/audit"
	"santiye-backend/internal/auth"
	"santiye-backend/internal/dataset"
	"santiye-backend/internal/finance"
	"santiye-backend/internal/httputil"
	"santiye-backend/internal/ledger"
	"santiye-backend/internal/logger"
	"santiye-backend/internal/models"
	"santiye-backend/internal/upstream"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
)

var validate = validator.New()

func reloadAfterWrite(c *fiber.Ctx) {
	if err := dataset.Reload(c.Context()); err != nil {
		logger.LogError("kasa", "reloadAfterWrite", "write-then-refetch", nil, err)
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
		logger.LogError("kasa", "writeAudit", entityType, nil, logErr)
	}
}

func parseFilter(c *fiber.Ctx) (ledger.Filter, error) {
	var f ledger.Filter

	start, err := httputil.DateQuery(c, "start")
	if err != nil {
		return f, err
	}
	end, err := httputil.DateQuery(c, "end")
	if err != nil {
		return f, err
	}
	f.StartDate = start
	f.EndDate = end

	if v := c.Query("type"); v != "" {
		tur := models.DefterTur(v)
		if tur != models.DefterGelir && tur != models.DefterGider {
			return f, fiber.NewError(fiber.StatusBadRequest, "type geçersiz (income|expense)")
		}
		f.Tur = &tur
	}
	if v := c.Query("payer"); v != "" {
		payer := models.Odeyen(v)
		switch payer {
		case models.OdeyenOmer, models.OdeyenBaris, models.OdeyenKasa:
			f.Payer = &payer
		default:
			return f, fiber.NewError(fiber.StatusBadRequest, "payer geçersiz (Omer|Baris|Kasa)")
		}
	}
	if v := c.Query("status"); v != "" {
		durum := models.DefterDurum(v)
		if durum != models.DefterOdendi && durum != models.DefterOdenmedi {
			return f, fiber.NewError(fiber.StatusBadRequest, "status geçersiz (paid|unpaid)")
		}
		f.Durum = &durum
	}
	if v := c.Query("paymentMethod"); v != "" {
		y := models.OdemeYontemi(v)
		switch y {
		case models.OdemeNakit, models.OdemeKart, models.OdemeTransfer:
			f.PaymentMethod = &y
		default:
			return f, fiber.NewError(fiber.StatusBadRequest, "paymentMethod geçersiz (cash|card|transfer)")
		}
	}

	return f, nil
}

// -------------------------------------------------
// GET /api/kasa/defter?start=&end=&type=&payer=&status=&paymentMethod=
// -------------------------------------------------
func ListDefterHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		f, err := parseFilter(c)
		if err != nil {
			return err
		}

		d := dataset.Snapshot()
		txns := make([]ledger.Txn, 0, len(d.DefterKayitlari))
		for _, e := range d.DefterKayitlari {
			kind := ledger.KindGelir
			if e.Type == models.DefterGider {
				kind = ledger.KindGider
			}
			txns = append(txns, ledger.Txn{
				ID:          fmt.Sprintf("defter-%d", e.ID),
				Kind:        kind,
				Tur:         e.Type,
				Durum:       e.Status,
				Date:        e.Date,
				Amount:      decimal.NewFromFloat(e.Amount),
				Description: e.Description,
			})
		}
		return c.JSON(ledger.Apply(txns, f))
	}
}

type DefterEntryRequest struct {
	Type        models.DefterTur   `json:"type" validate:"required"`
	Status      models.DefterDurum `json:"status" validate:"required"`
	Amount      float64            `json:"amount" validate:"required,gt=0"`
	Description string             `json:"description" validate:"required"`
	Date        string             `json:"date" validate:"required"`
	DueDate     string             `json:"dueDate"`
	PaidDate    string             `json:"paidDate"`
	Notes       string             `json:"notes"`
}

type defterUpstreamBody struct {
	Tur         string  `json:"Tur"`
	Durum       string  `json:"Durum"`
	Tutar       float64 `json:"Tutar"`
	Aciklama    string  `json:"Aciklama"`
	Tarih       string  `json:"Tarih"`
	VadeTarihi  string  `json:"VadeTarihi,omitempty"`
	OdemeTarihi string  `json:"OdemeTarihi,omitempty"`
	Notlar      string  `json:"Notlar,omitempty"`
}

func checkDefterRequest(body DefterEntryRequest) error {
	if body.Type != models.DefterGelir && body.Type != models.DefterGider {
		return fiber.NewError(fiber.StatusBadRequest, "Geçersiz tür (income|expense)")
	}
	if body.Status != models.DefterOdendi && body.Status != models.DefterOdenmedi {
		return fiber.NewError(fiber.StatusBadRequest, "Geçersiz durum (paid|unpaid)")
	}
	return nil
}

// -------------------------------------------------
// POST /api/kasa/defter
// -------------------------------------------------
func CreateDefterHandler(api *upstream.Client) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body DefterEntryRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz istek gövdesi")
		}
		if err := validate.Struct(body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Tür, durum, açıklama ve tarih zorunlu; tutar 0'dan büyük olmalı")
		}
		if err := checkDefterRequest(body); err != nil {
			return err
		}

		if _, err := api.CreateDefterEntry(c.Context(), defterUpstreamBody{
			Tur:         string(body.Type),
			Durum:       string(body.Status),
			Tutar:       body.Amount,
			Aciklama:    body.Description,
			Tarih:       body.Date,
			VadeTarihi:  body.DueDate,
			OdemeTarihi: body.PaidDate,
			Notlar:      body.Notes,
		}); err != nil {
			return httputil.UpstreamError(err)
		}

		writeAudit(c, "defter", 0, models.AuditActionCreate,
			fmt.Sprintf("Defter kaydı eklendi: %s - %.2f TL", body.Description, body.Amount), nil, body)
		reloadAfterWrite(c)

		return c.SendStatus(fiber.StatusCreated)
	}
}

// -------------------------------------------------
// PUT /api/kasa/defter/:id
// -------------------------------------------------
func UpdateDefterHandler(api *upstream.Client) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := c.ParamsInt("id")
		if err != nil || id <= 0 {
			return fiber.NewError(fiber.StatusBadRequest, "id geçersiz")
		}

		var body DefterEntryRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz istek gövdesi")
		}
		if err := validate.Struct(body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Tür, durum, açıklama ve tarih zorunlu; tutar 0'dan büyük olmalı")
		}
		if err := checkDefterRequest(body); err != nil {
			return err
		}

		if _, err := api.UpdateDefterEntry(c.Context(), id, defterUpstreamBody{
			Tur:         string(body.Type),
			Durum:       string(body.Status),
			Tutar:       body.Amount,
			Aciklama:    body.Description,
			Tarih:       body.Date,
			VadeTarihi:  body.DueDate,
			OdemeTarihi: body.PaidDate,
			Notlar:      body.Notes,
		}); err != nil {
			return httputil.UpstreamError(err)
		}

		writeAudit(c, "defter", id, models.AuditActionUpdate, fmt.Sprintf("Defter kaydı güncellendi: %d", id), nil, body)
		reloadAfterWrite(c)

		return c.SendStatus(fiber.StatusOK)
	}
}

// -------------------------------------------------
// DELETE /api/kasa/defter/:id
// -------------------------------------------------
func DeleteDefterHandler(api *upstream.Client) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := c.ParamsInt("id")
		if err != nil || id <= 0 {
			return fiber.NewError(fiber.StatusBadRequest, "id geçersiz")
		}

		if err := api.DeleteDefterEntry(c.Context(), id); err != nil {
			return httputil.UpstreamError(err)
		}

		writeAudit(c, "defter", id, models.AuditActionDelete, fmt.Sprintf("Defter kaydı silindi: %d", id), nil, nil)
		reloadAfterWrite(c)

		return c.SendStatus(fiber.StatusNoContent)
	}
}

// -------------------------------------------------
// GET /api/kasa/defter/notlar
// -------------------------------------------------
func ListNotlarHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		return c.JSON(dataset.Snapshot().DefterNotlari)
	}
}

type DefterNoteRequest struct {
	Text      string `json:"text" validate:"required"`
	Completed bool   `json:"completed"`
	Category  string `json:"category"`
	DueDate   string `json:"dueDate"`
}

type notUpstreamBody struct {
	Metin      string `json:"Metin"`
	Tamamlandi bool   `json:"Tamamlandi"`
	Kategori   string `json:"Kategori,omitempty"`
	VadeTarihi string `json:"VadeTarihi,omitempty"`
}

// -------------------------------------------------
// POST /api/kasa/defter/notlar
// -------------------------------------------------
func CreateNotHandler(api *upstream.Client) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body DefterNoteRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz istek gövdesi")
		}
		if err := validate.Struct(body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Not metni zorunlu")
		}

		if _, err := api.CreateDefterNote(c.Context(), notUpstreamBody{
			Metin:      body.Text,
			Tamamlandi: body.Completed,
			Kategori:   body.Category,
			VadeTarihi: body.DueDate,
		}); err != nil {
			return httputil.UpstreamError(err)
		}

		writeAudit(c, "defter_not", 0, models.AuditActionCreate, "Not eklendi", nil, body)
		reloadAfterWrite(c)

		return c.SendStatus(fiber.StatusCreated)
	}
}

// -------------------------------------------------
// PUT /api/kasa/defter/notlar/:id
// -------------------------------------------------
func UpdateNotHandler(api *upstream.Client) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := c.ParamsInt("id")
		if err != nil || id <= 0 {
			return fiber.NewError(fiber.StatusBadRequest, "id geçersiz")
		}

		var body DefterNoteRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz istek gövdesi")
		}
		if err := validate.Struct(body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Not metni zorunlu")
		}

		if _, err := api.UpdateDefterNote(c.Context(), id, notUpstreamBody{
			Metin:      body.Text,
			Tamamlandi: body.Completed,
			Kategori:   body.Category,
			VadeTarihi: body.DueDate,
		}); err != nil {
			return httputil.UpstreamError(err)
		}

		writeAudit(c, "defter_not", id, models.AuditActionUpdate, fmt.Sprintf("Not güncellendi: %d", id), nil, body)
		reloadAfterWrite(c)

		return c.SendStatus(fiber.StatusOK)
	}
}

// -------------------------------------------------
// DELETE /api/kasa/defter/notlar/:id
// -------------------------------------------------
func DeleteNotHandler(api *upstream.Client) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := c.ParamsInt("id")
		if err != nil || id <= 0 {
			return fiber.NewError(fiber.StatusBadRequest, "id geçersiz")
		}

		if err := api.DeleteDefterNote(c.Context(), id); err != nil {
			return httputil.UpstreamError(err)
		}

		writeAudit(c, "defter_not", id, models.AuditActionDelete, fmt.Sprintf("Not silindi: %d", id), nil, nil)
		reloadAfterWrite(c)

		return c.SendStatus(fiber.StatusNoContent)
	}
}

// -------------------------------------------------
// GET /api/kasa/ortakgiderler?includeDeleted=true
// -------------------------------------------------
func ListOrtakGiderHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		d := dataset.Snapshot()

		if c.Query("includeDeleted") == "true" {
			return c.JSON(d.OrtakGiderler)
		}

		aktif := make([]models.OrtakGider, 0, len(d.OrtakGiderler))
		for _, g := range d.OrtakGiderler {
			if g.DeletedAt == nil {
				aktif = append(aktif, g)
			}
		}
		return c.JSON(aktif)
	}
}

type OrtakGiderRequest struct {
	Description   string              `json:"description" validate:"required"`
	Amount        float64             `json:"amount" validate:"required,gt=0"`
	Payer         models.Odeyen       `json:"payer" validate:"required"`
	PaymentMethod models.OdemeYontemi `json:"paymentMethod" validate:"required"`
	Status        models.DefterDurum  `json:"status"`
	Date          string              `json:"date" validate:"required"`
}

type ortakGiderUpstreamBody struct {
	Aciklama     string  `json:"Aciklama"`
	Tutar        float64 `json:"Tutar"`
	Odeyen       string  `json:"Odeyen"`
	OdemeYontemi string  `json:"OdemeYontemi"`
	Durum        string  `json:"Durum"`
	Tarih        string  `json:"Tarih"`
}

// -------------------------------------------------
// POST /api/kasa/ortakgiderler
//
// Doğrulama upstream'e gitmeden yapılır: tutar > 0 ve açıklama dolu
// olmadan istek hiç çıkmaz.
// -------------------------------------------------
func CreateOrtakGiderHandler(api *upstream.Client) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body OrtakGiderRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz istek gövdesi")
		}
		if err := validate.Struct(body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Açıklama, tutar, ödeyen ve tarih zorunlu; tutar 0'dan büyük olmalı")
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
		if body.Status == "" {
			body.Status = models.DefterOdendi
		}

		if _, err := api.CreateOrtakGider(c.Context(), ortakGiderUpstreamBody{
			Aciklama:     body.Description,
			Tutar:        body.Amount,
			Odeyen:       string(body.Payer),
			OdemeYontemi: string(body.PaymentMethod),
			Durum:        string(body.Status),
			Tarih:        body.Date,
		}); err != nil {
			return httputil.UpstreamError(err)
		}

		writeAudit(c, "ortak_gider", 0, models.AuditActionCreate,
			fmt.Sprintf("Ortak gider eklendi: %s - %.2f TL", body.Description, body.Amount), nil, body)
		reloadAfterWrite(c)

		return c.SendStatus(fiber.StatusCreated)
	}
}

// -------------------------------------------------
// DELETE /api/kasa/ortakgiderler/:id - soft delete, geri alınabilir
// -------------------------------------------------
func SoftDeleteOrtakGiderHandler(api *upstream.Client) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := c.ParamsInt("id")
		if err != nil || id <= 0 {
			return fiber.NewError(fiber.StatusBadRequest, "id geçersiz")
		}

		if err := api.SoftDeleteOrtakGider(c.Context(), id); err != nil {
			return httputil.UpstreamError(err)
		}

		writeAudit(c, "ortak_gider", id, models.AuditActionDelete, fmt.Sprintf("Ortak gider silindi (geri alınabilir): %d", id), nil, nil)
		reloadAfterWrite(c)

		return c.SendStatus(fiber.StatusNoContent)
	}
}

// -------------------------------------------------
// POST /api/kasa/ortakgiderler/:id/restore
// -------------------------------------------------
func RestoreOrtakGiderHandler(api *upstream.Client) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := c.ParamsInt("id")
		if err != nil || id <= 0 {
			return fiber.NewError(fiber.StatusBadRequest, "id geçersiz")
		}

		if err := api.RestoreOrtakGider(c.Context(), id); err != nil {
			return httputil.UpstreamError(err)
		}

		writeAudit(c, "ortak_gider", id, models.AuditActionUpdate, fmt.Sprintf("Ortak gider geri alındı: %d", id), nil, nil)
		reloadAfterWrite(c)

		return c.SendStatus(fiber.StatusOK)
	}
}

// -------------------------------------------------
// DELETE /api/kasa/ortakgiderler/:id/kalici
//
// Upstream çağrısı başarısız olursa kayıt LOKALDEN DE SİLİNMEZ; hata
// olduğu gibi kullanıcıya döner. (Eski istemci hatayı yutup kaydı yine de
// düşürüyordu; bu sunucu/istemci tutarsızlığı bilinçli olarak düzeltildi.)
// -------------------------------------------------
func PermanentDeleteOrtakGiderHandler(api *upstream.Client) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := c.ParamsInt("id")
		if err != nil || id <= 0 {
			return fiber.NewError(fiber.StatusBadRequest, "id geçersiz")
		}

		if err := api.PermanentDeleteOrtakGider(c.Context(), id); err != nil {
			return httputil.UpstreamError(err)
		}

		writeAudit(c, "ortak_gider", id, models.AuditActionDelete, fmt.Sprintf("Ortak gider kalıcı silindi: %d", id), nil, nil)
		reloadAfterWrite(c)

		return c.SendStatus(fiber.StatusNoContent)
	}
}

// -------------------------------------------------
// GET /api/kasa/ozet?start=&end= - soft-delete edilmişler toplam dışı
// -------------------------------------------------
func KasaOzetHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		start, end, err := httputil.RangeQuery(c)
		if err != nil {
			return err
		}
		return c.JSON(finance.KasaOzeti(dataset.Snapshot().OrtakGiderler, start, end))
	}
}
