package finance

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"santiye-backend/internal/models"
)

func date(s string) time.Time {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return t
}

func ptr(t time.Time) *time.Time { return &t }

func TestOdemeDurumu(t *testing.T) {
	start := date("2025-01-01")
	end := date("2025-12-31")

	tests := []struct {
		name string
		due  float64
		paid float64
		want OdemeDurumu
	}{
		{"borç var hiç ödeme yok", 1000, 0, DurumOdenmedi},
		{"kısmi ödeme", 1000, 400, DurumKismi},
		{"tam ödeme", 1000, 1000, DurumOdendi},
		{"fazla ödeme yine paid", 1000, 1200, DurumOdendi},
		{"alacak sıfırsa paid", 0, 0, DurumOdendi},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			isler := []models.MusteriIs{{
				ID:   1,
				Date: date("2025-06-15"),
				Hakedisler: []models.IsHakedis{
					{PersonelID: 1, Payment: tt.due},
				},
			}}
			var odemeler []models.PersonelOdeme
			if tt.paid > 0 {
				odemeler = append(odemeler, models.PersonelOdeme{
					ID: 1, PersonelID: 1, Amount: tt.paid, Date: date("2025-06-20"),
				})
			}

			ozet := PersonelOzeti(1, isler, odemeler, start, end)
			assert.Equal(t, tt.want, ozet.Status)
		})
	}
}

func TestPersonelOzeti_Balance(t *testing.T) {
	start := date("2025-06-01")
	end := date("2025-06-30")

	isler := []models.MusteriIs{
		{ID: 1, Date: date("2025-06-10"), Hakedisler: []models.IsHakedis{
			{PersonelID: 1, Payment: 1500},
			{PersonelID: 2, Payment: 2000}, // başka personel, sayılmaz
		}},
		{ID: 2, Date: date("2025-07-01"), Hakedisler: []models.IsHakedis{
			{PersonelID: 1, Payment: 9999}, // aralık dışı
		}},
	}
	odemeler := []models.PersonelOdeme{
		{ID: 1, PersonelID: 1, Amount: 500, Date: date("2025-06-12")},
		{ID: 2, PersonelID: 1, Amount: 400, Date: date("2025-05-30")}, // aralık dışı
	}

	ozet := PersonelOzeti(1, isler, odemeler, start, end)

	assert.True(t, ozet.TotalDue.Equal(decimal.NewFromInt(1500)), "alacak: %s", ozet.TotalDue)
	assert.True(t, ozet.TotalPaid.Equal(decimal.NewFromInt(500)), "ödenen: %s", ozet.TotalPaid)
	assert.True(t, ozet.Balance.Equal(decimal.NewFromInt(1000)), "bakiye: %s", ozet.Balance)
	assert.Equal(t, DurumKismi, ozet.Status)
}

func TestIsOzeti(t *testing.T) {
	job := models.MusteriIs{
		ID:                  3,
		Income:              50000,
		IncomePaymentMethod: models.GelirTRY,
		Hakedisler: []models.IsHakedis{
			{PersonelID: 1, Payment: 5000},
			{PersonelID: 2, Payment: 3000},
		},
		Malzemeler: []models.Malzeme{
			{ID: "m1", Quantity: 10, UnitPrice: 120},
			{ID: "m2", Quantity: 2.5, UnitPrice: 400},
		},
	}

	ozet := IsOzeti(job, decimal.NewFromInt(1000), Policy{})

	assert.True(t, ozet.PersonelMaliyet.Equal(decimal.NewFromInt(8000)))
	assert.True(t, ozet.MalzemeMaliyet.Equal(decimal.NewFromInt(2200)))
	assert.True(t, ozet.ToplamMaliyet.Equal(decimal.NewFromInt(11200)))
	assert.True(t, ozet.GelirTL.Equal(decimal.NewFromInt(50000)))
	assert.True(t, ozet.NetKar.Equal(decimal.NewFromInt(38800)))
}

func TestTLGelir_ForeignIncomePolicy(t *testing.T) {
	usdJob := models.MusteriIs{ID: 1, Income: 3000, IncomePaymentMethod: models.GelirUSD}

	assert.True(t, TLGelir(usdJob, Policy{}).IsZero(),
		"politika kapalıyken yabancı gelir TL toplamına katılmaz")
	assert.True(t, TLGelir(usdJob, Policy{IncludeForeignIncome: true}).Equal(decimal.NewFromInt(3000)))

	tryJob := models.MusteriIs{ID: 2, Income: 7500, IncomePaymentMethod: models.GelirTRY}
	assert.True(t, TLGelir(tryJob, Policy{}).Equal(decimal.NewFromInt(7500)))
}

func TestMusteriOzeti(t *testing.T) {
	isler := []models.MusteriIs{
		{ID: 1, MusteriID: 9, Income: 10000, IncomePaymentMethod: models.GelirTRY,
			Hakedisler: []models.IsHakedis{{PersonelID: 1, Payment: 4000}}},
		{ID: 2, MusteriID: 9, Income: 2000, IncomePaymentMethod: models.GelirUSD},
		{ID: 3, MusteriID: 5, Income: 99999, IncomePaymentMethod: models.GelirTRY}, // başka müşteri
	}

	ozet := MusteriOzeti(9, isler, Policy{})

	assert.Equal(t, 2, ozet.IsSayisi)
	assert.True(t, ozet.ToplamGelirTL.Equal(decimal.NewFromInt(10000)), "USD iş TL toplamına girmez")
	assert.True(t, ozet.ToplamMaliyet.Equal(decimal.NewFromInt(4000)))
	assert.True(t, ozet.NetKar.Equal(decimal.NewFromInt(6000)))
}

func TestKasaOzeti_SoftDeleteExcluded(t *testing.T) {
	start := date("2025-09-01")
	end := date("2025-09-30")

	giderler := []models.OrtakGider{
		{ID: 1, Amount: 800, Payer: models.OdeyenKasa, Date: date("2025-09-05")},
		{ID: 2, Amount: 300, Payer: models.OdeyenOmer, Date: date("2025-09-10")},
		{ID: 3, Amount: 5000, Payer: models.OdeyenKasa, Date: date("2025-09-12"),
			DeletedAt: ptr(date("2025-09-15"))},
	}

	ozet := KasaOzeti(giderler, start, end)

	assert.True(t, ozet.ToplamGider.Equal(decimal.NewFromInt(1100)),
		"silinen gider toplama katılmaz: %s", ozet.ToplamGider)
	assert.Equal(t, 2, ozet.AktifSayi)
	assert.Equal(t, 1, ozet.SilinmisSayi, "silinen kayıt sayımda görünür")
	require.Contains(t, ozet.OdeyenBazinda, models.OdeyenKasa)
	assert.True(t, ozet.OdeyenBazinda[models.OdeyenKasa].Equal(decimal.NewFromInt(800)))
}

func TestAylikOzeti(t *testing.T) {
	isler := []models.MusteriIs{
		{ID: 1, Date: date("2025-09-10"), Income: 20000, IncomePaymentMethod: models.GelirTRY,
			Hakedisler: []models.IsHakedis{{PersonelID: 1, Payment: 6000}},
			Malzemeler: []models.Malzeme{{ID: "m1", Quantity: 5, UnitPrice: 200}}},
		{ID: 2, Date: date("2025-10-01"), Income: 99999, IncomePaymentMethod: models.GelirTRY}, // sonraki ay
	}
	giderler := []models.OrtakGider{
		{ID: 1, Amount: 1500, Payer: models.OdeyenKasa, Date: date("2025-09-20")},
	}

	ozet := AylikOzeti(2025, 9, isler, giderler, Policy{})

	assert.True(t, ozet.GelirTL.Equal(decimal.NewFromInt(20000)))
	assert.True(t, ozet.PersonelMaliyet.Equal(decimal.NewFromInt(6000)))
	assert.True(t, ozet.MalzemeMaliyet.Equal(decimal.NewFromInt(1000)))
	assert.True(t, ozet.OrtakGiderler.Equal(decimal.NewFromInt(1500)))
	assert.True(t, ozet.NetKar.Equal(decimal.NewFromInt(11500)))
}
