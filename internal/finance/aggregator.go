// Package finance türetilmiş finansal görünümleri hesaplar: personel bakiyesi,
// iş/müşteri kâr-zararı, ortak kasa toplamları. Tüm para aritmetiği
// decimal ile yapılır; hesaplamalar saf fonksiyondur, her çağrıda
// filtrelenmiş girdiden sıfırdan hesaplanır.
package finance

import (
	"time"

	"github.com/shopspring/decimal"

	"santiye-backend/internal/ledger"
	"santiye-backend/internal/models"
)

// Policy - TRY dışı iş gelirlerinin (USD/EUR/GOLD) TL bazlı toplamlara
// katılıp katılmayacağını belirler. Kaynak uygulama bunu görünümden görünüme
// farklı yapıyordu; burada tek, açık bir ayar.
type Policy struct {
	IncludeForeignIncome bool
}

type OdemeDurumu string

const (
	DurumOdendi   OdemeDurumu = "paid"
	DurumKismi    OdemeDurumu = "partial"
	DurumOdenmedi OdemeDurumu = "unpaid"
)

// PersonelOzet - bir personelin tarih aralığındaki hakediş/ödeme dengesi
type PersonelOzet struct {
	PersonelID int             `json:"personnelId"`
	TotalDue   decimal.Decimal `json:"totalDue"`
	TotalPaid  decimal.Decimal `json:"totalPaid"`
	Balance    decimal.Decimal `json:"balance"`
	Status     OdemeDurumu     `json:"paymentStatus"`
}

// PersonelOzeti - aralıktaki işlerin hakedişlerinden alacak, fiili ödemelerden
// ödenen hesaplanır; bakiye = alacak - ödenen.
func PersonelOzeti(personelID int, isler []models.MusteriIs, odemeler []models.PersonelOdeme, start, end time.Time) PersonelOzet {
	due := decimal.Zero
	for _, job := range isler {
		if !ledger.InRange(job.Date, start, end) {
			continue
		}
		for _, h := range job.Hakedisler {
			if h.PersonelID == personelID {
				due = due.Add(decimal.NewFromFloat(h.Payment))
			}
		}
	}

	paid := decimal.Zero
	for _, o := range odemeler {
		if o.PersonelID != personelID || !ledger.InRange(o.Date, start, end) {
			continue
		}
		paid = paid.Add(decimal.NewFromFloat(o.Amount))
	}

	balance := due.Sub(paid)

	return PersonelOzet{
		PersonelID: personelID,
		TotalDue:   due,
		TotalPaid:  paid,
		Balance:    balance,
		Status:     odemeDurumu(due, paid, balance),
	}
}

// odemeDurumu - üçlü durum:
//
//	paid:    alacak sıfır (borç yok) VEYA bakiye <= 0
//	partial: bakiye > 0 ve bir miktar ödenmiş
//	unpaid:  bakiye > 0 ve hiç ödeme yok
func odemeDurumu(due, paid, balance decimal.Decimal) OdemeDurumu {
	if due.IsZero() || balance.Sign() <= 0 {
		return DurumOdendi
	}
	if paid.Sign() > 0 {
		return DurumKismi
	}
	return DurumOdenmedi
}

// IsOzet - tek işin maliyet/kâr dökümü
type IsOzet struct {
	IsID            int             `json:"jobId"`
	PersonelMaliyet decimal.Decimal `json:"personnelCost"`
	MalzemeMaliyet  decimal.Decimal `json:"materialCost"`
	DigerGiderler   decimal.Decimal `json:"otherExpenses"`
	ToplamMaliyet   decimal.Decimal `json:"totalCost"`
	GelirTL         decimal.Decimal `json:"incomeTRY"`
	NetKar          decimal.Decimal `json:"netProfit"`
}

// IsOzeti - maliyet = hakedişler + malzemeler + diğer giderler;
// net kâr = TL'ye sayılan gelir - maliyet
func IsOzeti(job models.MusteriIs, digerGiderler decimal.Decimal, p Policy) IsOzet {
	personel := decimal.Zero
	for _, h := range job.Hakedisler {
		personel = personel.Add(decimal.NewFromFloat(h.Payment))
	}

	malzeme := decimal.Zero
	for _, m := range job.Malzemeler {
		malzeme = malzeme.Add(decimal.NewFromFloat(m.Quantity).Mul(decimal.NewFromFloat(m.UnitPrice)))
	}

	gelir := TLGelir(job, p)
	toplam := personel.Add(malzeme).Add(digerGiderler)

	return IsOzet{
		IsID:            job.ID,
		PersonelMaliyet: personel,
		MalzemeMaliyet:  malzeme,
		DigerGiderler:   digerGiderler,
		ToplamMaliyet:   toplam,
		GelirTL:         gelir,
		NetKar:          gelir.Sub(toplam),
	}
}

// TLGelir - işin TL toplamlarına katılacak geliri. TRY dışı gelirler kendi
// biriminde gösterilir; politika açık izin vermedikçe TL toplamına katılmaz.
func TLGelir(job models.MusteriIs, p Policy) decimal.Decimal {
	if job.IncomePaymentMethod == models.GelirTRY || p.IncludeForeignIncome {
		return decimal.NewFromFloat(job.Income)
	}
	return decimal.Zero
}

// MusteriOzet - müşterinin tüm işleri üzerinden toplamlar
type MusteriOzet struct {
	MusteriID     int             `json:"customerId"`
	IsSayisi      int             `json:"jobCount"`
	ToplamGelirTL decimal.Decimal `json:"totalIncomeTRY"`
	ToplamMaliyet decimal.Decimal `json:"totalCost"`
	NetKar        decimal.Decimal `json:"netProfit"`
}

func MusteriOzeti(musteriID int, isler []models.MusteriIs, p Policy) MusteriOzet {
	ozet := MusteriOzet{MusteriID: musteriID, ToplamGelirTL: decimal.Zero, ToplamMaliyet: decimal.Zero, NetKar: decimal.Zero}
	for _, job := range isler {
		if job.MusteriID != musteriID {
			continue
		}
		iso := IsOzeti(job, decimal.Zero, p)
		ozet.IsSayisi++
		ozet.ToplamGelirTL = ozet.ToplamGelirTL.Add(iso.GelirTL)
		ozet.ToplamMaliyet = ozet.ToplamMaliyet.Add(iso.ToplamMaliyet)
	}
	ozet.NetKar = ozet.ToplamGelirTL.Sub(ozet.ToplamMaliyet)
	return ozet
}

// KasaOzet - ortak kasa durumu. Soft-delete edilmiş giderler toplamlara
// katılmaz ama ham koleksiyonda sayılmaya devam eder.
type KasaOzet struct {
	ToplamGider   decimal.Decimal                   `json:"totalExpense"`
	OdeyenBazinda map[models.Odeyen]decimal.Decimal `json:"byPayer"`
	AktifSayi     int                               `json:"activeCount"`
	SilinmisSayi  int                               `json:"deletedCount"`
}

func KasaOzeti(giderler []models.OrtakGider, start, end time.Time) KasaOzet {
	ozet := KasaOzet{
		ToplamGider:   decimal.Zero,
		OdeyenBazinda: make(map[models.Odeyen]decimal.Decimal),
	}
	for _, g := range giderler {
		if g.DeletedAt != nil {
			ozet.SilinmisSayi++
			continue
		}
		ozet.AktifSayi++
		if !ledger.InRange(g.Date, start, end) {
			continue
		}
		tutar := decimal.NewFromFloat(g.Amount)
		ozet.ToplamGider = ozet.ToplamGider.Add(tutar)
		mevcut, ok := ozet.OdeyenBazinda[g.Payer]
		if !ok {
			mevcut = decimal.Zero
		}
		ozet.OdeyenBazinda[g.Payer] = mevcut.Add(tutar)
	}
	return ozet
}

// AylikOzet - TL bazlı aylık gelir/gider/kâr özeti
type AylikOzet struct {
	Year            int             `json:"year"`
	Month           int             `json:"month"`
	GelirTL         decimal.Decimal `json:"incomeTRY"`
	PersonelMaliyet decimal.Decimal `json:"personnelCost"`
	MalzemeMaliyet  decimal.Decimal `json:"materialCost"`
	OrtakGiderler   decimal.Decimal `json:"sharedExpenses"`
	NetKar          decimal.Decimal `json:"netProfit"`
}

func AylikOzeti(year, month int, isler []models.MusteriIs, giderler []models.OrtakGider, p Policy) AylikOzet {
	loc := time.Now().Location()
	start := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, loc)
	end := start.AddDate(0, 1, -1)

	ozet := AylikOzet{
		Year: year, Month: month,
		GelirTL: decimal.Zero, PersonelMaliyet: decimal.Zero,
		MalzemeMaliyet: decimal.Zero, OrtakGiderler: decimal.Zero,
	}

	for _, job := range isler {
		if !ledger.InRange(job.Date, start, end) {
			continue
		}
		iso := IsOzeti(job, decimal.Zero, p)
		ozet.GelirTL = ozet.GelirTL.Add(iso.GelirTL)
		ozet.PersonelMaliyet = ozet.PersonelMaliyet.Add(iso.PersonelMaliyet)
		ozet.MalzemeMaliyet = ozet.MalzemeMaliyet.Add(iso.MalzemeMaliyet)
	}

	kasa := KasaOzeti(giderler, start, end)
	ozet.OrtakGiderler = kasa.ToplamGider

	ozet.NetKar = ozet.GelirTL.Sub(ozet.PersonelMaliyet).Sub(ozet.MalzemeMaliyet).Sub(ozet.OrtakGiderler)
	return ozet
}
