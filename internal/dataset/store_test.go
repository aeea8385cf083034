package dataset

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"santiye-backend/internal/upstream"
)

func TestBuild_FullPipeline(t *testing.T) {
	raw := &upstream.RawDataset{
		Personeller: []map[string]any{
			{"Id": float64(1), "AdSoyad": "Ali Usta"},
			{"Id": float64(2), "AdSoyad": "EMPTY"},
		},
		Musteriler: []map[string]any{
			{"Id": float64(10), "AdSoyad": "Yılmaz İnşaat"},
		},
		Isler: []map[string]any{
			{
				"Id": float64(100), "MusteriId": float64(10), "Tarih": "2025-08-01",
				"Gelir": float64(40000),
				"Hakedisler": []any{
					map[string]any{"PersonelId": float64(1), "Odeme": float64(999)},
				},
			},
		},
		// ayrı koleksiyon gömülü listeyi komple değiştirir
		Hakedisler: []map[string]any{
			{"MusteriIsId": float64(100), "PersonelId": float64(2), "Odeme": float64(1500)},
			{"MusteriIsId": float64(100), "PersonelId": float64(1), "Odeme": float64(2000)},
		},
		PersonelOdemeleri: []map[string]any{
			{"Id": float64(5), "PersonelId": float64(1), "Tutar": "750", "Tarih": "2025-08-05"},
		},
	}

	d := Build(raw)

	require.Len(t, d.Personeller, 2)
	assert.Equal(t, "Ali Usta", d.Personeller[0].Name)
	assert.Equal(t, "", d.Personeller[1].Name)

	require.Len(t, d.Isler, 1)
	job := d.Isler[0]
	require.Len(t, job.Hakedisler, 2, "ayrı hakediş koleksiyonu gömülü listeyi değiştirir")
	assert.Equal(t, 1500.0, job.Hakedisler[0].Payment)
	assert.Equal(t, []int{2, 1}, job.PersonelIDs)

	require.Len(t, d.Odemeler, 1)
	assert.Equal(t, 750.0, d.Odemeler[0].Amount)
	assert.False(t, d.LoadedAt.IsZero())
}

func TestBuild_EmbeddedEarningsSurviveWithoutSeparateCollection(t *testing.T) {
	raw := &upstream.RawDataset{
		Isler: []map[string]any{
			{
				"Id": float64(1), "MusteriId": float64(1), "Tarih": "2025-08-01",
				"Hakedisler": []any{
					map[string]any{"PersonelId": float64(3), "Odeme": float64(800)},
				},
			},
		},
	}

	d := Build(raw)

	require.Len(t, d.Isler, 1)
	require.Len(t, d.Isler[0].Hakedisler, 1)
	assert.Equal(t, 3, d.Isler[0].Hakedisler[0].PersonelID)
	assert.Equal(t, []int{3}, d.Isler[0].PersonelIDs)
}

func TestLookups(t *testing.T) {
	d := Build(&upstream.RawDataset{
		Users: []map[string]any{
			{"Id": float64(1), "Email": "omer@example.com", "Rol": "admin"},
		},
		Personeller: []map[string]any{{"Id": float64(4), "AdSoyad": "Kemal"}},
		Musteriler:  []map[string]any{{"Id": float64(9), "AdSoyad": "Demir Ltd"}},
		Isler:       []map[string]any{{"Id": float64(12), "MusteriId": float64(9), "Tarih": "2025-08-01"}},
	})

	u, ok := d.UserByEmail("omer@example.com")
	require.True(t, ok)
	assert.Equal(t, "admin", string(u.Role))

	_, ok = d.UserByEmail("yok@example.com")
	assert.False(t, ok)

	p, ok := d.PersonelByID(4)
	require.True(t, ok)
	assert.Equal(t, "Kemal", p.Name)

	m, ok := d.MusteriByID(9)
	require.True(t, ok)
	assert.Equal(t, "Demir Ltd", m.Name)

	j, ok := d.IsByID(12)
	require.True(t, ok)
	assert.Equal(t, 9, j.MusteriID)

	_, ok = d.IsByID(999)
	assert.False(t, ok)
}
