// Package dataset kanonik veri setini bellekte tutar. Sunucu "write-then-refetch"
// politikasıyla çalışır: her mutasyondan sonra tam veri seti upstream'den
// yeniden çekilir, lokal artımlı patch yapılmaz. Eşzamanlı iki Reload çakışırsa
// son biten kazanır; upstream yazmaları serileştirdiği için bu yeterlidir.
package dataset

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"santiye-backend/internal/logger"
	"santiye-backend/internal/models"
	"santiye-backend/internal/normalize"
	"santiye-backend/internal/reconcile"
	"santiye-backend/internal/upstream"
)

type Data struct {
	Users            []models.User
	Personeller      []models.Personel
	Musteriler       []models.Musteri
	Isler            []models.MusteriIs
	Odemeler         []models.PersonelOdeme
	OrtakGiderler    []models.OrtakGider
	DefterKayitlari  []models.DefterEntry
	DefterNotlari    []models.DefterNote
	PuantajKayitlari []models.PuantajKaydi
	LoadedAt         time.Time
}

var (
	mu  sync.RWMutex
	cur Data
	api *upstream.Client
)

func Init(c *upstream.Client) {
	api = c
}

// Reload - tam veri seti yenileme: çek → normalize et → hakedişleri bağla → değiştir
func Reload(ctx context.Context) error {
	raw, err := api.FetchAll(ctx)
	if err != nil {
		return fmt.Errorf("veri seti çekilemedi: %w", err)
	}

	d := Build(raw)

	mu.Lock()
	cur = d
	mu.Unlock()

	logger.Get().WithField("isler", len(d.Isler)).WithField("personel", len(d.Personeller)).Info("veri seti yenilendi")
	return nil
}

// Build - ham payload'dan kanonik veri seti üretir. Normalizasyon kayıt bazında
// hatasızdır: bozuk kayıt varsayılanlarla geçer, parti durmaz.
func Build(raw *upstream.RawDataset) Data {
	d := Data{LoadedAt: time.Now()}

	for _, rec := range raw.Users {
		d.Users = append(d.Users, normalize.User(rec))
	}
	for _, rec := range raw.Personeller {
		d.Personeller = append(d.Personeller, normalize.Personel(rec))
	}
	for _, rec := range raw.Musteriler {
		d.Musteriler = append(d.Musteriler, normalize.Musteri(rec))
	}
	for _, rec := range raw.Isler {
		d.Isler = append(d.Isler, normalize.MusteriIs(rec))
	}
	for _, rec := range raw.PersonelOdemeleri {
		d.Odemeler = append(d.Odemeler, normalize.PersonelOdeme(rec))
	}
	for _, rec := range raw.OrtakGiderler {
		d.OrtakGiderler = append(d.OrtakGiderler, normalize.OrtakGider(rec))
	}
	for _, rec := range raw.DefterKayitlari {
		d.DefterKayitlari = append(d.DefterKayitlari, normalize.DefterEntry(rec))
	}
	for _, rec := range raw.DefterNotlari {
		d.DefterNotlari = append(d.DefterNotlari, normalize.DefterNote(rec))
	}
	for _, rec := range raw.PuantajKayitlari {
		d.PuantajKayitlari = append(d.PuantajKayitlari, normalize.PuantajKaydi(rec))
	}

	// Ayrı hakediş koleksiyonu: iş id'siyle etiketle ve işlere geri bağla
	var flat []reconcile.JobEarning
	for _, rec := range raw.Hakedisler {
		jobID := 0
		for _, k := range []string{"MusteriIsId", "musteriIsId", "customerJobId", "CustomerJobId", "IsId", "isId", "jobId", "JobId"} {
			if v, ok := rec[k]; ok {
				if f, ok := v.(float64); ok {
					jobID = int(f)
					break
				}
			}
		}
		flat = append(flat, reconcile.JobEarning{JobID: jobID, Hakedis: normalize.IsHakedis(rec)})
	}
	d.Isler = reconcile.MergeEarnings(d.Isler, flat)

	return d
}

// Snapshot - veri setinin o anki kopyası. Slice'lar paylaşılır ama hiçbir
// handler yerinde mutasyon yapmaz; yazmalar upstream'e gider.
func Snapshot() Data {
	mu.RLock()
	defer mu.RUnlock()
	return cur
}

// MusteriByID - snapshot üzerinde müşteri araması
func (d Data) MusteriByID(id int) (models.Musteri, bool) {
	for _, m := range d.Musteriler {
		if m.ID == id {
			return m, true
		}
	}
	return models.Musteri{}, false
}

func (d Data) PersonelByID(id int) (models.Personel, bool) {
	for _, p := range d.Personeller {
		if p.ID == id {
			return p, true
		}
	}
	return models.Personel{}, false
}

func (d Data) IsByID(id int) (models.MusteriIs, bool) {
	for _, j := range d.Isler {
		if j.ID == id {
			return j, true
		}
	}
	return models.MusteriIs{}, false
}

func (d Data) UserByEmail(email string) (models.User, bool) {
	for _, u := range d.Users {
		if strings.EqualFold(u.Email, email) {
			return u, true
		}
	}
	return models.User{}, false
}
