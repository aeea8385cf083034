package rapor

import (
	"fmt"
	"strings"
	"time"

	"santiye-backend/internal/config"
	"santiye-backend/internal/dataset"
	"santiye-backend/internal/finance"
	"santiye-backend/internal/httputil"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"
)

// normalizeTurkish: Türkçe karakterleri ASCII karşılıklarına çevirir
// (dosya adlarında sorun çıkarmaması için)
func normalizeTurkish(s string) string {
	replacements := map[rune]string{
		'ç': "c", 'Ç': "C",
		'ğ': "g", 'Ğ': "G",
		'ı': "i", 'İ': "I",
		'ö': "o", 'Ö': "O",
		'ş': "s", 'Ş': "S",
		'ü': "u", 'Ü': "U",
	}

	var result strings.Builder
	for _, r := range s {
		if replacement, ok := replacements[r]; ok {
			result.WriteString(replacement)
		} else {
			result.WriteRune(r)
		}
	}
	return result.String()
}

func sendXLSX(c *fiber.Ctx, f *excelize.File, filename string) error {
	buf, err := f.WriteToBuffer()
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Excel dosyası oluşturulamadı")
	}
	c.Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Set("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, normalizeTurkish(filename)))
	return c.Send(buf.Bytes())
}

// -------------------------------------------------
// GET /api/rapor/personel-bakiye/xlsx?start=&end=
//
// Tüm personelin dönem bakiyeleri tek sheet'te.
// -------------------------------------------------
func PersonelBakiyeXLSXHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		start, end, err := httputil.RangeQuery(c)
		if err != nil {
			return err
		}

		d := dataset.Snapshot()

		f := excelize.NewFile()
		defer f.Close()

		sheet := "Personel Bakiye"
		f.SetSheetName("Sheet1", sheet)

		headers := []string{"Personel", "Hakediş (TL)", "Ödenen (TL)", "Bakiye (TL)", "Durum"}
		for i, h := range headers {
			cell, _ := excelize.CoordinatesToCellName(i+1, 1)
			f.SetCellValue(sheet, cell, h)
		}

		row := 2
		for _, p := range d.Personeller {
			ozet := finance.PersonelOzeti(p.ID, d.Isler, d.Odemeler, start, end)
			if ozet.TotalDue.IsZero() && ozet.TotalPaid.IsZero() {
				continue
			}
			name := p.Name
			if name == "" {
				name = fmt.Sprintf("Personel %d", p.ID)
			}
			due, _ := ozet.TotalDue.Float64()
			paid, _ := ozet.TotalPaid.Float64()
			balance, _ := ozet.Balance.Float64()

			f.SetCellValue(sheet, fmt.Sprintf("A%d", row), name)
			f.SetCellValue(sheet, fmt.Sprintf("B%d", row), due)
			f.SetCellValue(sheet, fmt.Sprintf("C%d", row), paid)
			f.SetCellValue(sheet, fmt.Sprintf("D%d", row), balance)
			f.SetCellValue(sheet, fmt.Sprintf("E%d", row), string(ozet.Status))
			row++
		}

		filename := fmt.Sprintf("personel-bakiye-%s-%s.xlsx", start.Format("2006-01-02"), end.Format("2006-01-02"))
		return sendXLSX(c, f, filename)
	}
}

// -------------------------------------------------
// GET /api/rapor/is-karlilik/xlsx
//
// İş bazında maliyet/kâr dökümü. TRY dışı gelirler politika kapalıysa
// TL sütununa sıfır yazılır, gelir kendi biriminde ayrı sütunda gösterilir.
// -------------------------------------------------
func IsKarlilikXLSXHandler(cfg *config.Config) fiber.Handler {
	return func(c *fiber.Ctx) error {
		d := dataset.Snapshot()
		policy := finance.Policy{IncludeForeignIncome: cfg.IncludeForeignIncome}

		f := excelize.NewFile()
		defer f.Close()

		sheet := "Is Karlilik"
		f.SetSheetName("Sheet1", sheet)

		headers := []string{"İş", "Konum", "Tarih", "Gelir", "Birim", "Gelir (TL)", "Personel Maliyeti", "Malzeme Maliyeti", "Net Kâr (TL)"}
		for i, h := range headers {
			cell, _ := excelize.CoordinatesToCellName(i+1, 1)
			f.SetCellValue(sheet, cell, h)
		}

		row := 2
		for _, job := range d.Isler {
			ozet := finance.IsOzeti(job, decimal.Zero, policy)
			gelirTL, _ := ozet.GelirTL.Float64()
			personel, _ := ozet.PersonelMaliyet.Float64()
			malzeme, _ := ozet.MalzemeMaliyet.Float64()
			netKar, _ := ozet.NetKar.Float64()

			f.SetCellValue(sheet, fmt.Sprintf("A%d", row), job.Description)
			f.SetCellValue(sheet, fmt.Sprintf("B%d", row), job.Location)
			f.SetCellValue(sheet, fmt.Sprintf("C%d", row), job.Date.Format("2006-01-02"))
			f.SetCellValue(sheet, fmt.Sprintf("D%d", row), job.Income)
			f.SetCellValue(sheet, fmt.Sprintf("E%d", row), string(job.IncomePaymentMethod))
			f.SetCellValue(sheet, fmt.Sprintf("F%d", row), gelirTL)
			f.SetCellValue(sheet, fmt.Sprintf("G%d", row), personel)
			f.SetCellValue(sheet, fmt.Sprintf("H%d", row), malzeme)
			f.SetCellValue(sheet, fmt.Sprintf("I%d", row), netKar)
			row++
		}

		filename := fmt.Sprintf("is-karlilik-%s.xlsx", time.Now().Format("2006-01-02"))
		return sendXLSX(c, f, filename)
	}
}
