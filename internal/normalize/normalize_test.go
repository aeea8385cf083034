package normalize

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPersonel_NameSentinel(t *testing.T) {
	tests := []struct {
		name     string
		raw      map[string]any
		wantName string
	}{
		{
			name:     "EMPTY sentinel normalizes to empty string",
			raw:      map[string]any{"Id": float64(1), "AdSoyad": "EMPTY"},
			wantName: "",
		},
		{
			name:     "padded lowercase sentinel",
			raw:      map[string]any{"Id": float64(2), "adSoyad": "  empty "},
			wantName: "",
		},
		{
			name:     "mixed case sentinel",
			raw:      map[string]any{"Id": float64(3), "name": "Empty"},
			wantName: "",
		},
		{
			name:     "real name passes through untouched",
			raw:      map[string]any{"Id": float64(4), "AdSoyad": "Mehmet Usta"},
			wantName: "Mehmet Usta",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Personel(tt.raw)
			assert.Equal(t, tt.wantName, got.Name)
		})
	}
}

func TestPersonel_FieldPriorityOrder(t *testing.T) {
	// PascalCase Türkçe alan, camelCase ve İngilizce eşanlamlılardan önce gelir
	raw := map[string]any{
		"AdSoyad": "Ali",
		"adSoyad": "Veli",
		"name":    "Ahmet",
	}
	assert.Equal(t, "Ali", Personel(raw).Name)

	delete(raw, "AdSoyad")
	assert.Equal(t, "Veli", Personel(raw).Name)

	delete(raw, "adSoyad")
	assert.Equal(t, "Ahmet", Personel(raw).Name)
}

func TestMalzeme_NumericCoercion(t *testing.T) {
	tests := []struct {
		name     string
		quantity any
		want     float64
	}{
		{"number stays number", float64(3), 3},
		{"numeric string coerces", "3", 3},
		{"padded numeric string coerces", " 2.5 ", 2.5},
		{"garbage coerces to zero", "abc", 0},
		{"missing coerces to zero", nil, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			raw := map[string]any{"Id": "m1", "Ad": "Boya"}
			if tt.quantity != nil {
				raw["Miktar"] = tt.quantity
			}
			assert.Equal(t, tt.want, Malzeme(raw).Quantity)
		})
	}
}

func TestMalzeme_CoercionIdempotent(t *testing.T) {
	raw := map[string]any{"Id": "m1", "Ad": "Alçı", "Miktar": "3", "BirimFiyat": "12.5"}
	first := Malzeme(raw)

	// normalize çıktısını tekrar ham kayıt gibi besle
	again := Malzeme(map[string]any{
		"Id":         first.ID,
		"Ad":         first.Name,
		"Miktar":     first.Quantity,
		"BirimFiyat": first.UnitPrice,
	})

	assert.Equal(t, first.Quantity, again.Quantity)
	assert.Equal(t, first.UnitPrice, again.UnitPrice)
}

func TestMusteriIs_BadDateFallsBackToNow(t *testing.T) {
	before := time.Now().Add(-time.Second)
	job := MusteriIs(map[string]any{"Id": float64(1), "MusteriId": float64(2), "Tarih": "bozuk-tarih"})
	after := time.Now().Add(time.Second)

	assert.True(t, job.Date.After(before) && job.Date.Before(after), "geçersiz tarih 'şimdi'ye düşmeli")
}

func TestMusteriIs_NestedCollections(t *testing.T) {
	raw := map[string]any{
		"Id":        float64(7),
		"MusteriId": float64(3),
		"Tarih":     "2025-11-05",
		"Gelir":     float64(50000),
		"Hakedisler": []any{
			map[string]any{"PersonelId": float64(1), "Odeme": float64(1500), "CalisilanGun": float64(3)},
			map[string]any{"personnelId": float64(2), "payment": "2000"},
		},
		"Malzemeler": []any{
			map[string]any{"Id": "m1", "Ad": "Çimento", "Miktar": float64(10), "BirimFiyat": float64(120)},
		},
	}

	job := MusteriIs(raw)
	require.Len(t, job.Hakedisler, 2)
	assert.Equal(t, 1, job.Hakedisler[0].PersonelID)
	assert.Equal(t, 1500.0, job.Hakedisler[0].Payment)
	assert.Equal(t, 2000.0, job.Hakedisler[1].Payment)
	require.Len(t, job.Malzemeler, 1)
	assert.Equal(t, "Çimento", job.Malzemeler[0].Name)
}

func TestMusteriIs_GoldTypeOnlyForGoldIncome(t *testing.T) {
	gold := MusteriIs(map[string]any{
		"Id": float64(1), "MusteriId": float64(1), "Tarih": "2025-10-01",
		"GelirOdemeYontemi": "GOLD", "AltinTuru": "quarter",
	})
	assert.Equal(t, "GOLD", string(gold.IncomePaymentMethod))
	assert.Equal(t, "quarter", string(gold.IncomeGoldType))

	try := MusteriIs(map[string]any{
		"Id": float64(2), "MusteriId": float64(1), "Tarih": "2025-10-01",
		"GelirOdemeYontemi": "TRY", "AltinTuru": "quarter",
	})
	assert.Empty(t, string(try.IncomeGoldType), "altın türü sadece GOLD gelirde taşınır")
}

func TestOrtakGider_SoftDeleteMarker(t *testing.T) {
	g := OrtakGider(map[string]any{
		"Id": float64(5), "Aciklama": "Mazot", "Tutar": float64(800),
		"Odeyen": "Kasa", "Tarih": "2025-09-01", "SilinmeTarihi": "2025-09-10T14:00:00",
	})
	require.NotNil(t, g.DeletedAt)
	assert.Equal(t, 10, g.DeletedAt.Day())

	aktif := OrtakGider(map[string]any{"Id": float64(6), "Aciklama": "Nakliye", "Tutar": float64(300), "Tarih": "2025-09-02"})
	assert.Nil(t, aktif.DeletedAt)
}

func TestBatch_MalformedRecordDoesNotAbort(t *testing.T) {
	// tek bozuk kayıt partiyi durdurmaz: her kayıt varsayılanlarla geçer
	batch := []map[string]any{
		{"Id": float64(1), "AdSoyad": "Hasan"},
		{"Id": "not-a-number", "AdSoyad": float64(42), "UstabasiId": "garbage"},
		{"Id": float64(3), "AdSoyad": "Kemal"},
	}

	var got []string
	for _, rec := range batch {
		got = append(got, Personel(rec).Name)
	}

	require.Len(t, got, 3)
	assert.Equal(t, "Hasan", got[0])
	assert.Equal(t, "42", got[1]) // sayısal değer string temsile düşer, panic yok
	assert.Equal(t, "Kemal", got[2])
}

func TestPuantajKaydi(t *testing.T) {
	k := PuantajKaydi(map[string]any{
		"KayitId": float64(11), "PersonelId": float64(4), "MusteriIsId": float64(9),
		"Tarih": "2025-12-01", "GunlukUcret": "1250", "Konum": "Bornova",
	})
	assert.Equal(t, 11, k.KayitID)
	assert.Equal(t, 4, k.PersonelID)
	assert.Equal(t, 9, k.MusteriIsID)
	assert.Equal(t, 1250.0, k.GunlukUcret)
	assert.Equal(t, "Bornova", k.Konum)
}
