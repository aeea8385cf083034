// Package reconcile iş kayıtlarıyla ayrı gelen hakediş koleksiyonunu birleştirir.
package reconcile

import (
	"santiye-backend/internal/models"
)

// JobEarning - ait olduğu iş id'siyle etiketlenmiş hakediş satırı
type JobEarning struct {
	JobID   int
	Hakedis models.IsHakedis
}

// MergeEarnings - ayrı koleksiyondan gelen hakedişleri işlere geri bağlar.
// Kural: bir iş için ayrı koleksiyonda kayıt varsa, işin gömülü hakediş
// listesi MERGE edilmez, KOMPLE DEĞİŞTİRİLİR (ayrı koleksiyon kazanır) ve
// PersonelIDs bu listeden yeniden türetilir. Ayrı kaydı olmayan işler
// olduğu gibi geçer; PersonelIDs'i hâlâ boş ama hakedişi dolu olan işlerde
// id listesi hakedişlerden çıkarılır.
func MergeEarnings(isler []models.MusteriIs, flat []JobEarning) []models.MusteriIs {
	byJob := make(map[int][]models.IsHakedis)
	for _, e := range flat {
		if e.JobID <= 0 {
			continue
		}
		byJob[e.JobID] = append(byJob[e.JobID], e.Hakedis)
	}

	out := make([]models.MusteriIs, len(isler))
	for i, job := range isler {
		if earned, ok := byJob[job.ID]; ok && len(earned) > 0 {
			job.Hakedisler = earned
			job.PersonelIDs = uniquePersonelIDs(earned)
		}
		if len(job.PersonelIDs) == 0 && len(job.Hakedisler) > 0 {
			job.PersonelIDs = uniquePersonelIDs(job.Hakedisler)
		}
		out[i] = job
	}
	return out
}

// uniquePersonelIDs - ilk görülme sırasını korur; 0 ve negatif id'ler sentinel
// sayılır ve elenir (boş kayıtların seçim listelerine sızmaması için)
func uniquePersonelIDs(hakedisler []models.IsHakedis) []int {
	seen := make(map[int]bool, len(hakedisler))
	var ids []int
	for _, h := range hakedisler {
		if h.PersonelID <= 0 || seen[h.PersonelID] {
			continue
		}
		seen[h.PersonelID] = true
		ids = append(ids, h.PersonelID)
	}
	return ids
}

// Flatten - işlerin üzerinde gömülü gelen hakedişleri iş id'siyle etiketleyip
// tek düz listeye toplar (backend iki şekilde de gönderebiliyor)
func Flatten(isler []models.MusteriIs) []JobEarning {
	var flat []JobEarning
	for _, job := range isler {
		for _, h := range job.Hakedisler {
			flat = append(flat, JobEarning{JobID: job.ID, Hakedis: h})
		}
	}
	return flat
}
