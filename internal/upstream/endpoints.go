package upstream

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"

	"santiye-backend/internal/models"
)

// RawDataset - /Data/all cevabının normalize edilmemiş hali. Alan adları
// backend sürümüne göre PascalCase/Türkçe veya camelCase/İngilizce
// gelebildiği için kayıtlar map olarak taşınır, normalize katmanı çözer.
type RawDataset struct {
	Users             []map[string]any
	Personeller       []map[string]any
	Musteriler        []map[string]any
	Isler             []map[string]any
	Hakedisler        []map[string]any // işlerden ayrı gelen hakediş koleksiyonu (opsiyonel)
	PersonelOdemeleri []map[string]any
	OrtakGiderler     []map[string]any
	DefterKayitlari   []map[string]any
	DefterNotlari     []map[string]any
	PuantajKayitlari  []map[string]any
}

// koleksiyon adaylarını sırayla dene; ilk bulunan kazanır
func pickCollection(payload map[string]json.RawMessage, keys ...string) []map[string]any {
	for _, k := range keys {
		raw, ok := payload[k]
		if !ok {
			continue
		}
		var rows []map[string]any
		if err := json.Unmarshal(raw, &rows); err != nil {
			continue
		}
		return rows
	}
	return nil
}

// FetchAll - GET /Data/all, tüm veri setini tek seferde çeker
func (c *Client) FetchAll(ctx context.Context) (*RawDataset, error) {
	raw, err := c.doJSON(ctx, http.MethodGet, "/Data/all", nil)
	if err != nil {
		return nil, err
	}
	if raw == nil {
		return nil, fmt.Errorf("/Data/all boş cevap döndü")
	}

	var payload map[string]json.RawMessage
	if err := json.Unmarshal(raw, &payload); err != nil {
		return nil, fmt.Errorf("/Data/all cevabı çözümlenemedi: %w", err)
	}

	ds := &RawDataset{
		Users:             pickCollection(payload, "users", "Users", "Kullanicilar"),
		Personeller:       pickCollection(payload, "personnel", "Personnel", "Personeller"),
		Musteriler:        pickCollection(payload, "customers", "Customers", "Musteriler"),
		Isler:             pickCollection(payload, "customerJobs", "CustomerJobs", "MusteriIsleri"),
		Hakedisler:        pickCollection(payload, "jobEarnings", "JobEarnings", "Hakedisler", "hakedisler"),
		PersonelOdemeleri: pickCollection(payload, "personnelPayments", "PersonnelPayments", "PersonelOdemeleri"),
		OrtakGiderler:     pickCollection(payload, "sharedExpenses", "SharedExpenses", "OrtakGiderler"),
		DefterKayitlari:   pickCollection(payload, "defterEntries", "DefterEntries", "DefterKayitlari"),
		DefterNotlari:     pickCollection(payload, "defterNotes", "DefterNotes", "DefterNotlari"),
		PuantajKayitlari:  pickCollection(payload, "workDays", "WorkDays", "PuantajKayitlari"),
	}
	return ds, nil
}

// ---- Personel ----

func (c *Client) CreatePersonel(ctx context.Context, body any) (json.RawMessage, error) {
	return c.doJSON(ctx, http.MethodPost, "/Personel", body)
}

func (c *Client) UpdatePersonel(ctx context.Context, id int, body any) (json.RawMessage, error) {
	return c.doJSON(ctx, http.MethodPut, fmt.Sprintf("/Personel/%d", id), body)
}

func (c *Client) DeletePersonel(ctx context.Context, id int) error {
	_, err := c.doJSON(ctx, http.MethodDelete, fmt.Sprintf("/Personel/%d", id), nil)
	return err
}

func (c *Client) CreatePersonelOdeme(ctx context.Context, body any) (json.RawMessage, error) {
	return c.doJSON(ctx, http.MethodPost, "/Personel/odemeler", body)
}

func (c *Client) DeletePersonelOdeme(ctx context.Context, id int) error {
	_, err := c.doJSON(ctx, http.MethodDelete, fmt.Sprintf("/Personel/odemeler/%d", id), nil)
	return err
}

// ---- Müşteri ve işler ----

func (c *Client) CreateMusteri(ctx context.Context, body any) (json.RawMessage, error) {
	return c.doJSON(ctx, http.MethodPost, "/Musteriler", body)
}

func (c *Client) UpdateMusteri(ctx context.Context, id int, body any) (json.RawMessage, error) {
	return c.doJSON(ctx, http.MethodPut, fmt.Sprintf("/Musteriler/%d", id), body)
}

func (c *Client) DeleteMusteri(ctx context.Context, id int) error {
	_, err := c.doJSON(ctx, http.MethodDelete, fmt.Sprintf("/Musteriler/%d", id), nil)
	return err
}

func (c *Client) CreateIs(ctx context.Context, body any) (json.RawMessage, error) {
	return c.doJSON(ctx, http.MethodPost, "/Musteriler/isler", body)
}

func (c *Client) UpdateIs(ctx context.Context, id int, body any) (json.RawMessage, error) {
	return c.doJSON(ctx, http.MethodPut, fmt.Sprintf("/Musteriler/isler/%d", id), body)
}

func (c *Client) DeleteIs(ctx context.Context, id int) error {
	_, err := c.doJSON(ctx, http.MethodDelete, fmt.Sprintf("/Musteriler/isler/%d", id), nil)
	return err
}

// ReplaceHakedisler - işin hakediş listesini komple değiştirir (artımlı patch değil)
func (c *Client) ReplaceHakedisler(ctx context.Context, isID int, hakedisler []models.IsHakedis) error {
	_, err := c.doJSON(ctx, http.MethodPut, fmt.Sprintf("/Musteriler/isler/%d/hakedisler/bulk", isID), hakedisler)
	return err
}

// ReplaceMalzemeler - işin malzeme listesini komple değiştirir
func (c *Client) ReplaceMalzemeler(ctx context.Context, isID int, malzemeler []models.Malzeme) error {
	_, err := c.doJSON(ctx, http.MethodPut, fmt.Sprintf("/Musteriler/isler/%d/malzemeler/bulk", isID), malzemeler)
	return err
}

// ---- Kasa / defter ----

func (c *Client) CreateOrtakGider(ctx context.Context, body any) (json.RawMessage, error) {
	return c.doJSON(ctx, http.MethodPost, "/Kasa/ortakgiderler", body)
}

func (c *Client) UpdateOrtakGider(ctx context.Context, id int, body any) (json.RawMessage, error) {
	return c.doJSON(ctx, http.MethodPut, fmt.Sprintf("/Kasa/ortakgiderler/%d", id), body)
}

// SoftDeleteOrtakGider - kaydı silinmiş işaretler, geri alınabilir
func (c *Client) SoftDeleteOrtakGider(ctx context.Context, id int) error {
	_, err := c.doJSON(ctx, http.MethodDelete, fmt.Sprintf("/Kasa/ortakgiderler/%d", id), nil)
	return err
}

func (c *Client) RestoreOrtakGider(ctx context.Context, id int) error {
	_, err := c.doJSON(ctx, http.MethodPost, fmt.Sprintf("/Kasa/ortakgiderler/%d/restore", id), nil)
	return err
}

// PermanentDeleteOrtakGider - kalıcı silme; başarısız olursa lokal durum
// DEĞİŞTİRİLMEZ, hata çağırana döner
func (c *Client) PermanentDeleteOrtakGider(ctx context.Context, id int) error {
	_, err := c.doJSON(ctx, http.MethodDelete, fmt.Sprintf("/Kasa/ortakgiderler/%d/kalici", id), nil)
	return err
}

func (c *Client) CreateDefterEntry(ctx context.Context, body any) (json.RawMessage, error) {
	return c.doJSON(ctx, http.MethodPost, "/Kasa/defter", body)
}

func (c *Client) UpdateDefterEntry(ctx context.Context, id int, body any) (json.RawMessage, error) {
	return c.doJSON(ctx, http.MethodPut, fmt.Sprintf("/Kasa/defter/%d", id), body)
}

func (c *Client) DeleteDefterEntry(ctx context.Context, id int) error {
	_, err := c.doJSON(ctx, http.MethodDelete, fmt.Sprintf("/Kasa/defter/%d", id), nil)
	return err
}

func (c *Client) CreateDefterNote(ctx context.Context, body any) (json.RawMessage, error) {
	return c.doJSON(ctx, http.MethodPost, "/Kasa/defter/notlar", body)
}

func (c *Client) UpdateDefterNote(ctx context.Context, id int, body any) (json.RawMessage, error) {
	return c.doJSON(ctx, http.MethodPut, fmt.Sprintf("/Kasa/defter/notlar/%d", id), body)
}

func (c *Client) DeleteDefterNote(ctx context.Context, id int) error {
	_, err := c.doJSON(ctx, http.MethodDelete, fmt.Sprintf("/Kasa/defter/notlar/%d", id), nil)
	return err
}

// ---- Puantaj ----

func (c *Client) CreatePuantaj(ctx context.Context, body any) (json.RawMessage, error) {
	return c.doJSON(ctx, http.MethodPost, "/Puantaj", body)
}

func (c *Client) UpdatePuantaj(ctx context.Context, id int, body any) (json.RawMessage, error) {
	return c.doJSON(ctx, http.MethodPut, fmt.Sprintf("/Puantaj/%d", id), body)
}

func (c *Client) DeletePuantaj(ctx context.Context, id int) error {
	_, err := c.doJSON(ctx, http.MethodDelete, fmt.Sprintf("/Puantaj/%d", id), nil)
	return err
}

// PuantajReportPDF - upstream'in ürettiği PDF raporunu byte olarak döner
func (c *Client) PuantajReportPDF(ctx context.Context, startDate, endDate, groupBy string) ([]byte, string, error) {
	q := url.Values{}
	q.Set("startDate", startDate)
	q.Set("endDate", endDate)
	if groupBy != "" {
		q.Set("groupBy", groupBy)
	}
	return c.doRaw(ctx, http.MethodGet, "/Puantaj/report/pdf?"+q.Encode(), nil)
}
