// Package ledger düz işlem listeleri üzerinde filtreleme, sıralama ve
// gruplama yapar. Tarih aralıkları iki uçta da dahildir: başlangıç günün
// 00:00:00.000'ına, bitiş 23:59:59.999'una normalize edilir; böylece tek
// günlük aralık o güne damgalanmış her işlemi saat farkına bakmadan yakalar.
package ledger

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"santiye-backend/internal/models"
)

type TxnKind string

const (
	KindHakedis TxnKind = "earning"
	KindOdeme   TxnKind = "payment"
	KindGelir   TxnKind = "income"
	KindGider   TxnKind = "expense"
)

// Txn - defter/ekstre görünümlerinin ortak işlem satırı
type Txn struct {
	ID            string              `json:"id"`
	Kind          TxnKind             `json:"kind"`
	IsID          int                 `json:"jobId,omitempty"`
	MusteriID     int                 `json:"customerId,omitempty"`
	PersonelID    int                 `json:"personnelId,omitempty"`
	Tur           models.DefterTur    `json:"type,omitempty"`
	Durum         models.DefterDurum  `json:"status,omitempty"`
	Payer         models.Odeyen       `json:"payer,omitempty"`
	PaymentMethod models.OdemeYontemi `json:"paymentMethod,omitempty"`
	Date          time.Time           `json:"date"`
	Amount        decimal.Decimal     `json:"amount"`
	Location      string              `json:"location,omitempty"`
	Description   string              `json:"description,omitempty"`
}

type Filter struct {
	StartDate     *time.Time
	EndDate       *time.Time
	Tur           *models.DefterTur
	Payer         *models.Odeyen
	Durum         *models.DefterDurum
	PaymentMethod *models.OdemeYontemi
}

func DayStart(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

func DayEnd(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 23, 59, 59, 999000000, t.Location())
}

// InRange - gün sınırlarına normalize edilmiş, iki ucu dahil aralık kontrolü
func InRange(t, start, end time.Time) bool {
	s := DayStart(start)
	e := DayEnd(end)
	return !t.Before(s) && !t.After(e)
}

// Apply - filtre + en-yeni-önce sıralama. Eşit tarihlerde stable sort girdi
// sırasını korur.
func Apply(txns []Txn, f Filter) []Txn {
	out := make([]Txn, 0, len(txns))
	for _, t := range txns {
		if f.StartDate != nil && t.Date.Before(DayStart(*f.StartDate)) {
			continue
		}
		if f.EndDate != nil && t.Date.After(DayEnd(*f.EndDate)) {
			continue
		}
		if f.Tur != nil && t.Tur != *f.Tur {
			continue
		}
		if f.Payer != nil && t.Payer != *f.Payer {
			continue
		}
		if f.Durum != nil && t.Durum != *f.Durum {
			continue
		}
		if f.PaymentMethod != nil && t.PaymentMethod != *f.PaymentMethod {
			continue
		}
		out = append(out, t)
	}
	SortNewestFirst(out)
	return out
}

func SortNewestFirst(txns []Txn) {
	sort.SliceStable(txns, func(i, j int) bool {
		return txns[i].Date.After(txns[j].Date)
	})
}
