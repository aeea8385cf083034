package musteri

import (
	"fmt"

	"santiye-backend/internal/audit"
	"santiye-backend/internal/auth"
	"santiye-backend/internal/config"
	"santiye-backend/internal/dataset"
	"santiye-backend/internal/finance"
	"santiye-backend/internal/httputil"
	"santiye-backend/internal/ledger"
	"santiye-backend/internal/logger"
	"santiye-backend/internal/models"
	"santiye-backend/internal/upstream"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var validate = validator.New()

func reloadAfterWrite(c *fiber.Ctx) {
	if err := dataset.Reload(c.Context()); err != nil {
		logger.LogError("musteri", "reloadAfterWrite", "write-then-refetch", nil, err)
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
		logger.LogError("musteri", "writeAudit", entityType, nil, logErr)
	}
}

// -------------------------------------------------
// GET /api/musteriler
// -------------------------------------------------
func ListMusterilerHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		return c.JSON(dataset.Snapshot().Musteriler)
	}
}

type MusteriRequest struct {
	Name           string `json:"name" validate:"required"`
	ContactInfo    string `json:"contactInfo"`
	Address        string `json:"address"`
	JobDescription string `json:"jobDescription"`
}

type musteriUpstreamBody struct {
	AdSoyad  string `json:"AdSoyad"`
	Iletisim string `json:"Iletisim,omitempty"`
	Adres    string `json:"Adres,omitempty"`
	IsTanimi string `json:"IsTanimi,omitempty"`
}

// -------------------------------------------------
// POST /api/musteriler
// -------------------------------------------------
func CreateMusteriHandler(api *upstream.Client) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body MusteriRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz istek gövdesi")
		}
		if err := validate.Struct(body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Müşteri adı zorunlu")
		}

		_, err := api.CreateMusteri(c.Context(), musteriUpstreamBody{
			AdSoyad:  body.Name,
			Iletisim: body.ContactInfo,
			Adres:    body.Address,
			IsTanimi: body.JobDescription,
		})
		if err != nil {
			return httputil.UpstreamError(err)
		}

		writeAudit(c, "musteri", 0, models.AuditActionCreate, fmt.Sprintf("Müşteri eklendi: %s", body.Name), nil, body)
		reloadAfterWrite(c)

		return c.SendStatus(fiber.StatusCreated)
	}
}

// -------------------------------------------------
// PUT /api/musteriler/:id
// -------------------------------------------------
func UpdateMusteriHandler(api *upstream.Client) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := c.ParamsInt("id")
		if err != nil || id <= 0 {
			return fiber.NewError(fiber.StatusBadRequest, "id geçersiz")
		}

		var body MusteriRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz istek gövdesi")
		}
		if err := validate.Struct(body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Müşteri adı zorunlu")
		}

		before, _ := dataset.Snapshot().MusteriByID(id)

		if _, err := api.UpdateMusteri(c.Context(), id, musteriUpstreamBody{
			AdSoyad:  body.Name,
			Iletisim: body.ContactInfo,
			Adres:    body.Address,
			IsTanimi: body.JobDescription,
		}); err != nil {
			return httputil.UpstreamError(err)
		}

		writeAudit(c, "musteri", id, models.AuditActionUpdate, fmt.Sprintf("Müşteri güncellendi: %s", body.Name), before, body)
		reloadAfterWrite(c)

		return c.SendStatus(fiber.StatusOK)
	}
}

// -------------------------------------------------
// DELETE /api/musteriler/:id
// -------------------------------------------------
func DeleteMusteriHandler(api *upstream.Client) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := c.ParamsInt("id")
		if err != nil || id <= 0 {
			return fiber.NewError(fiber.StatusBadRequest, "id geçersiz")
		}

		before, _ := dataset.Snapshot().MusteriByID(id)

		if err := api.DeleteMusteri(c.Context(), id); err != nil {
			return httputil.UpstreamError(err)
		}

		writeAudit(c, "musteri", id, models.AuditActionDelete, fmt.Sprintf("Müşteri silindi: %s", before.Name), before, nil)
		reloadAfterWrite(c)

		return c.SendStatus(fiber.StatusNoContent)
	}
}

// -------------------------------------------------
// GET /api/musteriler/isler
//
// Müşterisi silinmiş (orphan) işler listeden düşer ama veri setinde kalır;
// ?includeOrphans=true ile tamamı alınabilir.
// -------------------------------------------------
func ListIslerHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		d := dataset.Snapshot()

		if c.Query("includeOrphans") == "true" {
			return c.JSON(d.Isler)
		}

		known := make(map[int]bool, len(d.Musteriler))
		for _, m := range d.Musteriler {
			known[m.ID] = true
		}

		isler := make([]models.MusteriIs, 0, len(d.Isler))
		for _, job := range d.Isler {
			if known[job.MusteriID] {
				isler = append(isler, job)
			}
		}
		return c.JSON(isler)
	}
}

type IsRequest struct {
	MusteriID           int                 `json:"customerId" validate:"required,gt=0"`
	Location            string              `json:"location"`
	Description         string              `json:"description"`
	Date                string              `json:"date" validate:"required"`
	Income              float64             `json:"income" validate:"gte=0"`
	IncomePaymentMethod models.GelirYontemi `json:"incomePaymentMethod"`
	IncomeGoldType      models.AltinTuru    `json:"incomeGoldType"`
}

type isUpstreamBody struct {
	MusteriID         int     `json:"MusteriId"`
	Konum             string  `json:"Konum,omitempty"`
	Aciklama          string  `json:"Aciklama,omitempty"`
	Tarih             string  `json:"Tarih"`
	Gelir             float64 `json:"Gelir"`
	GelirOdemeYontemi string  `json:"GelirOdemeYontemi"`
	AltinTuru         string  `json:"AltinTuru,omitempty"`
}

func checkIsRequest(body *IsRequest) error {
	if body.IncomePaymentMethod == "" {
		body.IncomePaymentMethod = models.GelirTRY
	}
	switch body.IncomePaymentMethod {
	case models.GelirTRY, models.GelirUSD, models.GelirEUR, models.GelirGold:
		// ok
	default:
		return fiber.NewError(fiber.StatusBadRequest, "Geçersiz gelir yöntemi (TRY|USD|EUR|GOLD)")
	}

	if body.IncomePaymentMethod == models.GelirGold {
		switch body.IncomeGoldType {
		case models.AltinGram, models.AltinCeyrek, models.AltinTam:
			// ok
		default:
			return fiber.NewError(fiber.StatusBadRequest, "Altın türü zorunlu (gram|quarter|full)")
		}
	} else {
		body.IncomeGoldType = ""
	}
	return nil
}

// -------------------------------------------------
// POST /api/musteriler/isler
// -------------------------------------------------
func CreateIsHandler(api *upstream.Client) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body IsRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz istek gövdesi")
		}
		if err := validate.Struct(body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Müşteri ve tarih zorunlu; gelir negatif olamaz")
		}
		if err := checkIsRequest(&body); err != nil {
			return err
		}

		if _, ok := dataset.Snapshot().MusteriByID(body.MusteriID); !ok {
			return fiber.NewError(fiber.StatusBadRequest, "Müşteri bulunamadı")
		}

		if _, err := api.CreateIs(c.Context(), isUpstreamBody{
			MusteriID:         body.MusteriID,
			Konum:             body.Location,
			Aciklama:          body.Description,
			Tarih:             body.Date,
			Gelir:             body.Income,
			GelirOdemeYontemi: string(body.IncomePaymentMethod),
			AltinTuru:         string(body.IncomeGoldType),
		}); err != nil {
			return httputil.UpstreamError(err)
		}

		writeAudit(c, "musteri_is", 0, models.AuditActionCreate, fmt.Sprintf("İş eklendi: %s", body.Location), nil, body)
		reloadAfterWrite(c)

		return c.SendStatus(fiber.StatusCreated)
	}
}

// -------------------------------------------------
// PUT /api/musteriler/isler/:id
// -------------------------------------------------
func UpdateIsHandler(api *upstream.Client) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := c.ParamsInt("id")
		if err != nil || id <= 0 {
			return fiber.NewError(fiber.StatusBadRequest, "id geçersiz")
		}

		var body IsRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz istek gövdesi")
		}
		if err := validate.Struct(body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Müşteri ve tarih zorunlu; gelir negatif olamaz")
		}
		if err := checkIsRequest(&body); err != nil {
			return err
		}

		before, _ := dataset.Snapshot().IsByID(id)

		if _, err := api.UpdateIs(c.Context(), id, isUpstreamBody{
			MusteriID:         body.MusteriID,
			Konum:             body.Location,
			Aciklama:          body.Description,
			Tarih:             body.Date,
			Gelir:             body.Income,
			GelirOdemeYontemi: string(body.IncomePaymentMethod),
			AltinTuru:         string(body.IncomeGoldType),
		}); err != nil {
			return httputil.UpstreamError(err)
		}

		writeAudit(c, "musteri_is", id, models.AuditActionUpdate, fmt.Sprintf("İş güncellendi: %d", id), before, body)
		reloadAfterWrite(c)

		return c.SendStatus(fiber.StatusOK)
	}
}

// -------------------------------------------------
// DELETE /api/musteriler/isler/:id
// -------------------------------------------------
func DeleteIsHandler(api *upstream.Client) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := c.ParamsInt("id")
		if err != nil || id <= 0 {
			return fiber.NewError(fiber.StatusBadRequest, "id geçersiz")
		}

		before, _ := dataset.Snapshot().IsByID(id)

		if err := api.DeleteIs(c.Context(), id); err != nil {
			return httputil.UpstreamError(err)
		}

		writeAudit(c, "musteri_is", id, models.AuditActionDelete, fmt.Sprintf("İş silindi: %d", id), before, nil)
		reloadAfterWrite(c)

		return c.SendStatus(fiber.StatusNoContent)
	}
}

type HakedisRequest struct {
	PersonelID    int                 `json:"personnelId" validate:"required,gt=0"`
	Payment       float64             `json:"payment" validate:"gte=0"`
	DaysWorked    float64             `json:"daysWorked" validate:"gte=0"`
	PaymentMethod models.OdemeYontemi `json:"paymentMethod"`
}

// -------------------------------------------------
// PUT /api/musteriler/isler/:id/hakedisler/bulk
//
// Tam değiştirme: upstream listeyi komple yeniler, artımlı patch yok.
// -------------------------------------------------
func ReplaceHakedislerHandler(api *upstream.Client) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := c.ParamsInt("id")
		if err != nil || id <= 0 {
			return fiber.NewError(fiber.StatusBadRequest, "id geçersiz")
		}

		var body []HakedisRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz istek gövdesi")
		}
		for _, h := range body {
			if err := validate.Struct(h); err != nil {
				return fiber.NewError(fiber.StatusBadRequest, "Hakediş satırında personel zorunlu, tutarlar negatif olamaz")
			}
		}

		before, _ := dataset.Snapshot().IsByID(id)

		hakedisler := make([]models.IsHakedis, 0, len(body))
		for _, h := range body {
			hakedisler = append(hakedisler, models.IsHakedis{
				PersonelID:    h.PersonelID,
				Payment:       h.Payment,
				DaysWorked:    h.DaysWorked,
				PaymentMethod: h.PaymentMethod,
			})
		}

		if err := api.ReplaceHakedisler(c.Context(), id, hakedisler); err != nil {
			return httputil.UpstreamError(err)
		}

		writeAudit(c, "musteri_is", id, models.AuditActionUpdate,
			fmt.Sprintf("Hakedişler güncellendi: iş %d, %d satır", id, len(hakedisler)), before.Hakedisler, hakedisler)
		reloadAfterWrite(c)

		return c.SendStatus(fiber.StatusOK)
	}
}

type MalzemeRequest struct {
	ID        string  `json:"id"`
	Name      string  `json:"name" validate:"required"`
	Unit      string  `json:"unit"`
	Quantity  float64 `json:"quantity" validate:"gte=0"`
	UnitPrice float64 `json:"unitPrice" validate:"gte=0"`
}

// -------------------------------------------------
// PUT /api/musteriler/isler/:id/malzemeler/bulk
// -------------------------------------------------
func ReplaceMalzemelerHandler(api *upstream.Client) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := c.ParamsInt("id")
		if err != nil || id <= 0 {
			return fiber.NewError(fiber.StatusBadRequest, "id geçersiz")
		}

		var body []MalzemeRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz istek gövdesi")
		}

		malzemeler := make([]models.Malzeme, 0, len(body))
		for _, m := range body {
			if err := validate.Struct(m); err != nil {
				return fiber.NewError(fiber.StatusBadRequest, "Malzeme adı zorunlu, miktar ve fiyat negatif olamaz")
			}
			if m.ID == "" {
				m.ID = uuid.NewString()
			}
			malzemeler = append(malzemeler, models.Malzeme{
				ID:        m.ID,
				Name:      m.Name,
				Unit:      m.Unit,
				Quantity:  m.Quantity,
				UnitPrice: m.UnitPrice,
			})
		}

		if err := api.ReplaceMalzemeler(c.Context(), id, malzemeler); err != nil {
			return httputil.UpstreamError(err)
		}

		writeAudit(c, "musteri_is", id, models.AuditActionUpdate,
			fmt.Sprintf("Malzemeler güncellendi: iş %d, %d satır", id, len(malzemeler)), nil, malzemeler)
		reloadAfterWrite(c)

		return c.SendStatus(fiber.StatusOK)
	}
}

// -------------------------------------------------
// GET /api/musteriler/isler/:id/ozet - tek işin kâr/zarar dökümü
// -------------------------------------------------
func IsOzetHandler(cfg *config.Config) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := c.ParamsInt("id")
		if err != nil || id <= 0 {
			return fiber.NewError(fiber.StatusBadRequest, "id geçersiz")
		}

		job, ok := dataset.Snapshot().IsByID(id)
		if !ok {
			return fiber.NewError(fiber.StatusNotFound, "İş bulunamadı")
		}

		policy := finance.Policy{IncludeForeignIncome: cfg.IncludeForeignIncome}
		return c.JSON(finance.IsOzeti(job, decimal.Zero, policy))
	}
}

// -------------------------------------------------
// GET /api/musteriler/:id/ozet - müşterinin tüm işleri üzerinden toplamlar
// -------------------------------------------------
func MusteriOzetHandler(cfg *config.Config) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := c.ParamsInt("id")
		if err != nil || id <= 0 {
			return fiber.NewError(fiber.StatusBadRequest, "id geçersiz")
		}

		d := dataset.Snapshot()
		if _, ok := d.MusteriByID(id); !ok {
			return fiber.NewError(fiber.StatusNotFound, "Müşteri bulunamadı")
		}

		policy := finance.Policy{IncludeForeignIncome: cfg.IncludeForeignIncome}
		return c.JSON(finance.MusteriOzeti(id, d.Isler, policy))
	}
}

// -------------------------------------------------
// GET /api/musteriler/isler/konum-gruplari - konuma göre iş listesi
// -------------------------------------------------
func KonumGruplariHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		return c.JSON(ledger.GroupIslerByKonum(dataset.Snapshot().Isler))
	}
}
