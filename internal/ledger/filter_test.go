package ledger

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"santiye-backend/internal/models"
)

func day(s string) time.Time {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return t
}

func at(s string) time.Time {
	t, err := time.Parse("2006-01-02 15:04:05", s)
	if err != nil {
		panic(err)
	}
	return t
}

func datePtr(t time.Time) *time.Time { return &t }

func TestInRange_InclusiveBounds(t *testing.T) {
	start := day("2025-06-01")
	end := day("2025-06-30")

	tests := []struct {
		name string
		ts   time.Time
		want bool
	}{
		{"başlangıç günü gece yarısı dahil", at("2025-06-01 00:00:00"), true},
		{"bitiş günü son saniye dahil", at("2025-06-30 23:59:59"), true},
		{"bitiş gününün öğleni dahil", at("2025-06-30 12:30:00"), true},
		{"bitişten bir gün sonra gece yarısı hariç", at("2025-07-01 00:00:00"), false},
		{"başlangıçtan önceki gece hariç", at("2025-05-31 23:59:59"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, InRange(tt.ts, start, end))
		})
	}
}

func TestInRange_SingleDayRange(t *testing.T) {
	d := day("2025-06-15")
	// tek günlük aralık o güne damgalı her saati yakalar
	assert.True(t, InRange(at("2025-06-15 00:00:00"), d, d))
	assert.True(t, InRange(at("2025-06-15 18:45:00"), d, d))
	assert.False(t, InRange(at("2025-06-16 00:00:00"), d, d))
}

func TestApply_FiltersAndSorts(t *testing.T) {
	gider := models.DefterGider
	kasa := models.OdeyenKasa

	txns := []Txn{
		{ID: "a", Tur: models.DefterGelir, Payer: kasa, Date: day("2025-06-10"), Amount: decimal.NewFromInt(100)},
		{ID: "b", Tur: gider, Payer: kasa, Date: day("2025-06-12"), Amount: decimal.NewFromInt(200)},
		{ID: "c", Tur: gider, Payer: models.OdeyenOmer, Date: day("2025-06-14"), Amount: decimal.NewFromInt(300)},
		{ID: "d", Tur: gider, Payer: kasa, Date: day("2025-07-01"), Amount: decimal.NewFromInt(400)},
	}

	got := Apply(txns, Filter{
		StartDate: datePtr(day("2025-06-01")),
		EndDate:   datePtr(day("2025-06-30")),
		Tur:       &gider,
		Payer:     &kasa,
	})

	require.Len(t, got, 1)
	assert.Equal(t, "b", got[0].ID)
}

func TestApply_SortNewestFirstStable(t *testing.T) {
	sameDay := at("2025-06-10 09:00:00")
	txns := []Txn{
		{ID: "eski", Date: day("2025-06-01")},
		{ID: "ayni-1", Date: sameDay},
		{ID: "ayni-2", Date: sameDay},
		{ID: "yeni", Date: day("2025-06-20")},
	}

	got := Apply(txns, Filter{})

	require.Len(t, got, 4)
	assert.Equal(t, "yeni", got[0].ID)
	assert.Equal(t, "ayni-1", got[1].ID, "eşit tarihte girdi sırası korunur")
	assert.Equal(t, "ayni-2", got[2].ID)
	assert.Equal(t, "eski", got[3].ID)
}

func TestApply_NoFilterReturnsAll(t *testing.T) {
	txns := []Txn{
		{ID: "a", Date: day("2025-01-01")},
		{ID: "b", Date: day("2025-02-01")},
	}
	assert.Len(t, Apply(txns, Filter{}), 2)
}
