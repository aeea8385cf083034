package ledger

import (
	"time"

	"santiye-backend/internal/models"
)

// StatementLine - ekstre satırı. Aynı işe ait ve aynı takvim gününe düşen
// işlemler tek grupta birleşir; grup yalnızca >= 2 üye olduğunda oluşur,
// tek kalan işlem düz satır olarak döner (Grouped=false). Bu eşik satır
// sayılarını değiştirmemek için korunmalıdır.
type StatementLine struct {
	IsID    int    `json:"jobId,omitempty"`
	Day     string `json:"day"`
	Grouped bool   `json:"grouped"`
	Txns    []Txn  `json:"transactions"`
}

// GroupStatement - girdi sırası korunur: her satır ilk üyesinin konumunda
// durur. İş referansı olmayan işlemler (IsID=0) hiç gruplanmaz.
func GroupStatement(txns []Txn) []StatementLine {
	type key struct {
		isID int
		day  string
	}

	index := make(map[key]int)
	var lines []StatementLine

	for _, t := range txns {
		day := t.Date.Format(time.DateOnly)
		if t.IsID <= 0 {
			lines = append(lines, StatementLine{Day: day, Txns: []Txn{t}})
			continue
		}
		k := key{isID: t.IsID, day: day}
		if i, ok := index[k]; ok {
			lines[i].Txns = append(lines[i].Txns, t)
			lines[i].Grouped = true
			continue
		}
		index[k] = len(lines)
		lines = append(lines, StatementLine{IsID: t.IsID, Day: day, Txns: []Txn{t}})
	}

	return lines
}

// KonumGrubu - iş listesinin konuma göre gruplanmış hali
type KonumGrubu struct {
	Konum string             `json:"location"`
	Isler []models.MusteriIs `json:"jobs"`
}

// GroupIslerByKonum - ilk görülme sırasıyla konum grupları üretir; konumu
// boş işler "Diğer" altında toplanır
func GroupIslerByKonum(isler []models.MusteriIs) []KonumGrubu {
	index := make(map[string]int)
	var groups []KonumGrubu

	for _, job := range isler {
		konum := job.Location
		if konum == "" {
			konum = "Diğer"
		}
		if i, ok := index[konum]; ok {
			groups[i].Isler = append(groups[i].Isler, job)
			continue
		}
		index[konum] = len(groups)
		groups = append(groups, KonumGrubu{Konum: konum, Isler: []models.MusteriIs{job}})
	}

	return groups
}

// MusteriPuantajGrubu - puantaj kayıtlarının müşteriye göre gruplanmış hali
type MusteriPuantajGrubu struct {
	MusteriID int                   `json:"customerId"`
	Kayitlar  []models.PuantajKaydi `json:"records"`
}

// GroupPuantajByMusteri - kayıt, işi üzerinden müşteriye bağlanır. İşi
// bulunamayan kayıtlar MusteriID=0 grubuna düşer (orphan işler görünümden
// atılır ama veri silinmez).
func GroupPuantajByMusteri(kayitlar []models.PuantajKaydi, isler []models.MusteriIs) []MusteriPuantajGrubu {
	jobCustomer := make(map[int]int, len(isler))
	for _, job := range isler {
		jobCustomer[job.ID] = job.MusteriID
	}

	index := make(map[int]int)
	var groups []MusteriPuantajGrubu

	for _, k := range kayitlar {
		musteriID := jobCustomer[k.MusteriIsID]
		if i, ok := index[musteriID]; ok {
			groups[i].Kayitlar = append(groups[i].Kayitlar, k)
			continue
		}
		index[musteriID] = len(groups)
		groups = append(groups, MusteriPuantajGrubu{MusteriID: musteriID, Kayitlar: []models.PuantajKaydi{k}})
	}

	return groups
}
