package rapor

import (
	"fmt"

	"santiye-backend/internal/config"
	"santiye-backend/internal/dataset"
	"santiye-backend/internal/finance"
	"santiye-backend/internal/httputil"
	"santiye-backend/internal/ledger"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
)

// personelTxns - bir personelin hakediş (iş tarihli) ve fiili ödeme
// hareketlerini tek düz listeye çevirir; ekstre bu liste üzerinden kurulur
func personelTxns(d dataset.Data, personelID int) []ledger.Txn {
	var txns []ledger.Txn

	for _, job := range d.Isler {
		for i, h := range job.Hakedisler {
			if h.PersonelID != personelID {
				continue
			}
			txns = append(txns, ledger.Txn{
				ID:          fmt.Sprintf("hakedis-%d-%d", job.ID, i),
				Kind:        ledger.KindHakedis,
				IsID:        job.ID,
				MusteriID:   job.MusteriID,
				PersonelID:  h.PersonelID,
				Date:        job.Date,
				Amount:      decimal.NewFromFloat(h.Payment),
				Location:    job.Location,
				Description: job.Description,
			})
		}
	}

	for _, o := range d.Odemeler {
		if o.PersonelID != personelID {
			continue
		}
		t := ledger.Txn{
			ID:            fmt.Sprintf("odeme-%d", o.ID),
			Kind:          ledger.KindOdeme,
			PersonelID:    o.PersonelID,
			Payer:         o.Payer,
			PaymentMethod: o.PaymentMethod,
			Date:          o.Date,
			Amount:        decimal.NewFromFloat(o.Amount),
		}
		if o.CustomerJobID != nil {
			t.IsID = *o.CustomerJobID
		}
		txns = append(txns, t)
	}

	return txns
}

// -------------------------------------------------
// GET /api/rapor/ekstre?personelId=3&start=2025-12-01&end=2025-12-31
//
// Aynı işe ait, aynı güne düşen hakediş/ödeme hareketleri tek satırda
// gruplanır; tek kalanlar düz satır olarak döner.
// -------------------------------------------------
func EkstreHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		personelID := c.QueryInt("personelId")
		if personelID <= 0 {
			return fiber.NewError(fiber.StatusBadRequest, "personelId zorunlu")
		}

		start, end, err := httputil.RangeQuery(c)
		if err != nil {
			return err
		}

		d := dataset.Snapshot()
		if _, ok := d.PersonelByID(personelID); !ok {
			return fiber.NewError(fiber.StatusNotFound, "Personel bulunamadı")
		}

		txns := ledger.Apply(personelTxns(d, personelID), ledger.Filter{StartDate: &start, EndDate: &end})
		return c.JSON(ledger.GroupStatement(txns))
	}
}

// -------------------------------------------------
// GET /api/rapor/aylik-ozet?year=2025&month=12
// -------------------------------------------------
func AylikOzetHandler(cfg *config.Config) fiber.Handler {
	return func(c *fiber.Ctx) error {
		yearStr := c.Query("year")
		monthStr := c.Query("month")
		if yearStr == "" || monthStr == "" {
			return fiber.NewError(fiber.StatusBadRequest, "year ve month zorunlu")
		}

		var year, month int
		if _, err := fmt.Sscan(yearStr, &year); err != nil || year < 2000 {
			return fiber.NewError(fiber.StatusBadRequest, "year geçersiz")
		}
		if _, err := fmt.Sscan(monthStr, &month); err != nil || month < 1 || month > 12 {
			return fiber.NewError(fiber.StatusBadRequest, "month geçersiz")
		}

		d := dataset.Snapshot()
		policy := finance.Policy{IncludeForeignIncome: cfg.IncludeForeignIncome}
		return c.JSON(finance.AylikOzeti(year, month, d.Isler, d.OrtakGiderler, policy))
	}
}
