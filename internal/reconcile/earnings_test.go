package reconcile

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"santiye-backend/internal/models"
)

func TestMergeEarnings_ReplaceNotMerge(t *testing.T) {
	isler := []models.MusteriIs{
		{
			ID: 10,
			Hakedisler: []models.IsHakedis{
				{PersonelID: 1, Payment: 100},
			},
		},
	}
	flat := []JobEarning{
		{JobID: 10, Hakedis: models.IsHakedis{PersonelID: 2, Payment: 200}},
	}

	got := MergeEarnings(isler, flat)

	require.Len(t, got, 1)
	require.Len(t, got[0].Hakedisler, 1, "gömülü liste merge edilmez, komple değiştirilir")
	assert.Equal(t, 2, got[0].Hakedisler[0].PersonelID)
	assert.Equal(t, 200.0, got[0].Hakedisler[0].Payment)
	assert.Equal(t, []int{2}, got[0].PersonelIDs)
}

func TestMergeEarnings_JobWithoutSeparateRecordsPassesThrough(t *testing.T) {
	isler := []models.MusteriIs{
		{
			ID: 5,
			Hakedisler: []models.IsHakedis{
				{PersonelID: 7, Payment: 900},
			},
		},
	}

	got := MergeEarnings(isler, nil)

	require.Len(t, got, 1)
	assert.Equal(t, 7, got[0].Hakedisler[0].PersonelID)
	assert.Equal(t, []int{7}, got[0].PersonelIDs, "boş PersonelIDs gömülü hakedişlerden türetilir")
}

func TestMergeEarnings_PersonelIDsUniqueFirstSeen(t *testing.T) {
	flat := []JobEarning{
		{JobID: 1, Hakedis: models.IsHakedis{PersonelID: 3, Payment: 100}},
		{JobID: 1, Hakedis: models.IsHakedis{PersonelID: 1, Payment: 150}},
		{JobID: 1, Hakedis: models.IsHakedis{PersonelID: 3, Payment: 50}},
		{JobID: 1, Hakedis: models.IsHakedis{PersonelID: 0, Payment: 75}},
		{JobID: 1, Hakedis: models.IsHakedis{PersonelID: -2, Payment: 25}},
	}

	got := MergeEarnings([]models.MusteriIs{{ID: 1}}, flat)

	require.Len(t, got, 1)
	assert.Len(t, got[0].Hakedisler, 5, "sentinel id'li satırlar hakediş listesinde kalır")
	assert.Equal(t, []int{3, 1}, got[0].PersonelIDs, "ilk görülme sırası korunur, 0 ve negatif elenir")
}

func TestMergeEarnings_InvalidJobIDIgnored(t *testing.T) {
	flat := []JobEarning{
		{JobID: 0, Hakedis: models.IsHakedis{PersonelID: 1, Payment: 100}},
		{JobID: -3, Hakedis: models.IsHakedis{PersonelID: 2, Payment: 200}},
	}

	got := MergeEarnings([]models.MusteriIs{{ID: 4}}, flat)

	require.Len(t, got, 1)
	assert.Empty(t, got[0].Hakedisler)
	assert.Empty(t, got[0].PersonelIDs)
}

func TestFlatten_RoundTrip(t *testing.T) {
	isler := []models.MusteriIs{
		{ID: 1, Hakedisler: []models.IsHakedis{{PersonelID: 1, Payment: 100}, {PersonelID: 2, Payment: 200}}},
		{ID: 2, Hakedisler: []models.IsHakedis{{PersonelID: 3, Payment: 300}}},
	}

	flat := Flatten(isler)
	require.Len(t, flat, 3)
	assert.Equal(t, 1, flat[0].JobID)
	assert.Equal(t, 2, flat[2].JobID)

	// düzleştirilmiş liste geri bağlanınca aynı hakedişler çıkar
	got := MergeEarnings(isler, flat)
	require.Len(t, got, 2)
	assert.Equal(t, isler[0].Hakedisler, got[0].Hakedisler)
	assert.Equal(t, isler[1].Hakedisler, got[1].Hakedisler)
}
