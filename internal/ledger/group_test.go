package ledger

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"santiye-backend/internal/models"
)

func TestGroupStatement_Threshold(t *testing.T) {
	txns := []Txn{
		{ID: "a", IsID: 5, Date: at("2025-06-10 09:00:00")},
		{ID: "b", IsID: 5, Date: at("2025-06-10 15:00:00")}, // aynı iş, aynı gün
		{ID: "c", IsID: 5, Date: at("2025-06-11 09:00:00")}, // aynı iş, ertesi gün
		{ID: "d", IsID: 7, Date: at("2025-06-10 10:00:00")}, // başka iş
	}

	lines := GroupStatement(txns)

	require.Len(t, lines, 3)

	assert.True(t, lines[0].Grouped, "aynı iş + aynı gün iki işlem tek grup satırı olur")
	assert.Len(t, lines[0].Txns, 2)
	assert.Equal(t, 5, lines[0].IsID)
	assert.Equal(t, "2025-06-10", lines[0].Day)

	assert.False(t, lines[1].Grouped, "tek kalan işlem düz satırdır")
	assert.Equal(t, "c", lines[1].Txns[0].ID)

	assert.False(t, lines[2].Grouped)
	assert.Equal(t, 7, lines[2].IsID)
}

func TestGroupStatement_NoJobNeverGroups(t *testing.T) {
	txns := []Txn{
		{ID: "a", IsID: 0, Date: at("2025-06-10 09:00:00")},
		{ID: "b", IsID: 0, Date: at("2025-06-10 15:00:00")},
	}

	lines := GroupStatement(txns)

	require.Len(t, lines, 2, "iş referansı olmayan işlemler gruplanmaz")
	assert.False(t, lines[0].Grouped)
	assert.False(t, lines[1].Grouped)
}

func TestGroupStatement_LineStaysAtFirstMemberPosition(t *testing.T) {
	txns := []Txn{
		{ID: "a", IsID: 1, Date: at("2025-06-10 09:00:00")},
		{ID: "b", IsID: 2, Date: at("2025-06-10 10:00:00")},
		{ID: "c", IsID: 1, Date: at("2025-06-10 11:00:00")}, // ilk satıra katılır
	}

	lines := GroupStatement(txns)

	require.Len(t, lines, 2)
	assert.Equal(t, 1, lines[0].IsID)
	assert.True(t, lines[0].Grouped)
	assert.Equal(t, []string{"a", "c"}, []string{lines[0].Txns[0].ID, lines[0].Txns[1].ID})
	assert.Equal(t, 2, lines[1].IsID)
}

func TestGroupIslerByKonum(t *testing.T) {
	isler := []models.MusteriIs{
		{ID: 1, Location: "Karşıyaka"},
		{ID: 2, Location: ""},
		{ID: 3, Location: "Karşıyaka"},
		{ID: 4, Location: "Bornova"},
	}

	groups := GroupIslerByKonum(isler)

	require.Len(t, groups, 3)
	assert.Equal(t, "Karşıyaka", groups[0].Konum)
	assert.Len(t, groups[0].Isler, 2)
	assert.Equal(t, "Diğer", groups[1].Konum, "konumu boş işler Diğer altında toplanır")
	assert.Equal(t, "Bornova", groups[2].Konum)
}

func TestGroupPuantajByMusteri(t *testing.T) {
	isler := []models.MusteriIs{
		{ID: 10, MusteriID: 1},
		{ID: 20, MusteriID: 2},
	}
	kayitlar := []models.PuantajKaydi{
		{KayitID: 1, MusteriIsID: 10},
		{KayitID: 2, MusteriIsID: 20},
		{KayitID: 3, MusteriIsID: 10},
		{KayitID: 4, MusteriIsID: 999}, // işi bulunamayan kayıt
	}

	groups := GroupPuantajByMusteri(kayitlar, isler)

	require.Len(t, groups, 3)
	assert.Equal(t, 1, groups[0].MusteriID)
	assert.Len(t, groups[0].Kayitlar, 2)
	assert.Equal(t, 2, groups[1].MusteriID)
	assert.Equal(t, 0, groups[2].MusteriID, "işi bulunamayan kayıt sıfır grubuna düşer")
}
