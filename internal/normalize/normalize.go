// Package normalize ham upstream kayıtlarını kanonik modele çevirir.
// Sözleşme: hiçbir kayıt için panic/hata üretilmez; eksik ya da bozuk alanlar
// varsayılana düşer ve tek bozuk kayıt partinin kalanını durdurmaz.
package normalize

import (
	"santiye-backend/internal/models"
)

func Personel(rec map[string]any) models.Personel {
	p := models.Personel{
		ID:   numInt(rec, keysID),
		Name: cleanName(str(rec, keysAdSoyad)),
	}
	if noteRec, ok := pickRaw(rec, keysNot); ok {
		switch n := noteRec.(type) {
		case string:
			if n != "" {
				p.Note = &models.PersonelNotu{Text: n}
			}
		case map[string]any:
			text := str(n, keysMetin)
			if text != "" {
				p.Note = &models.PersonelNotu{Text: text, UpdatedAt: date(n, keysGuncelleme)}
			}
		}
	}
	if v, ok := pickRaw(rec, keysUstabasiID); ok {
		if f, ok := v.(float64); ok && f > 0 {
			id := int(f)
			p.ForemanID = &id
		}
	}
	return p
}

func Musteri(rec map[string]any) models.Musteri {
	return models.Musteri{
		ID:             numInt(rec, keysID),
		Name:           cleanName(str(rec, keysAdSoyad)),
		ContactInfo:    str(rec, keysIletisim),
		Address:        str(rec, keysAdres),
		JobDescription: str(rec, keysIsTanimi),
	}
}

func IsHakedis(rec map[string]any) models.IsHakedis {
	return models.IsHakedis{
		PersonelID:    numInt(rec, keysPersonelID),
		Payment:       num(rec, keysOdeme),
		DaysWorked:    num(rec, keysGunSayisi),
		PaymentMethod: models.OdemeYontemi(str(rec, keysOdemeYontemi)),
	}
}

func Malzeme(rec map[string]any) models.Malzeme {
	return models.Malzeme{
		ID:        str(rec, keysID),
		Name:      str(rec, keysAd),
		Unit:      str(rec, keysBirim),
		Quantity:  num(rec, keysMiktar),
		UnitPrice: num(rec, keysBirimFiyat),
	}
}

func MusteriIs(rec map[string]any) models.MusteriIs {
	job := models.MusteriIs{
		ID:                  numInt(rec, keysID),
		MusteriID:           numInt(rec, keysMusteriID),
		Location:            str(rec, keysKonum),
		Description:         str(rec, keysAciklama),
		Date:                date(rec, keysTarih),
		Income:              num(rec, keysGelir),
		IncomePaymentMethod: models.GelirYontemi(str(rec, keysGelirYontemi)),
		PersonelIDs:         intSlice(rec, keysPersonelIDs),
	}
	if job.IncomePaymentMethod == "" {
		job.IncomePaymentMethod = models.GelirTRY
	}
	if job.IncomePaymentMethod == models.GelirGold {
		job.IncomeGoldType = models.AltinTuru(str(rec, keysAltinTuru))
	}
	for _, h := range rawSlice(rec, keysHakedisler) {
		job.Hakedisler = append(job.Hakedisler, IsHakedis(h))
	}
	for _, m := range rawSlice(rec, keysMalzemeler) {
		job.Malzemeler = append(job.Malzemeler, Malzeme(m))
	}
	return job
}

func PersonelOdeme(rec map[string]any) models.PersonelOdeme {
	o := models.PersonelOdeme{
		ID:            numInt(rec, keysID),
		PersonelID:    numInt(rec, keysPersonelID),
		Amount:        num(rec, keysTutar),
		Date:          date(rec, keysTarih),
		Payer:         models.Odeyen(str(rec, keysOdeyen)),
		PaymentMethod: models.OdemeYontemi(str(rec, keysOdemeYontemi)),
	}
	if jobID := numInt(rec, keysMusteriIsID); jobID > 0 {
		o.CustomerJobID = &jobID
	}
	return o
}

func DefterEntry(rec map[string]any) models.DefterEntry {
	return models.DefterEntry{
		ID:          numInt(rec, keysID),
		Type:        models.DefterTur(str(rec, keysTur)),
		Status:      models.DefterDurum(str(rec, keysDurum)),
		Amount:      num(rec, keysTutar),
		Description: str(rec, keysAciklama),
		Date:        date(rec, keysTarih),
		DueDate:     dateP(rec, keysVade),
		PaidDate:    dateP(rec, keysOdemeTarih),
		Notes:       str(rec, keysNotlar),
	}
}

func DefterNote(rec map[string]any) models.DefterNote {
	return models.DefterNote{
		ID:        numInt(rec, keysID),
		Text:      str(rec, keysMetin),
		Completed: boolVal(rec, keysTamamlandi),
		Category:  str(rec, keysKategori),
		DueDate:   dateP(rec, keysVade),
	}
}

func OrtakGider(rec map[string]any) models.OrtakGider {
	return models.OrtakGider{
		ID:            numInt(rec, keysID),
		Description:   str(rec, keysAciklama),
		Amount:        num(rec, keysTutar),
		Payer:         models.Odeyen(str(rec, keysOdeyen)),
		PaymentMethod: models.OdemeYontemi(str(rec, keysOdemeYontemi)),
		Status:        models.DefterDurum(str(rec, keysDurum)),
		Date:          date(rec, keysTarih),
		DeletedAt:     dateP(rec, keysSilinme),
	}
}

func PuantajKaydi(rec map[string]any) models.PuantajKaydi {
	return models.PuantajKaydi{
		KayitID:     numInt(rec, keysKayitID),
		PersonelID:  numInt(rec, keysPersonelID),
		MusteriIsID: numInt(rec, keysMusteriIsID),
		Tarih:       date(rec, keysTarih),
		GunlukUcret: num(rec, keysGunlukUcret),
		Konum:       str(rec, keysKonum),
		IsTanimi:    str(rec, keysIsTanimi),
	}
}

func User(rec map[string]any) models.User {
	u := models.User{
		ID:           numInt(rec, keysID),
		Name:         cleanName(str(rec, keysAdSoyad)),
		Email:        str(rec, keysEmail),
		PasswordHash: str(rec, keysSifre),
		Role:         models.UserRole(str(rec, keysRol)),
	}
	if u.Role == "" {
		u.Role = models.RoleStandard
	}
	return u
}
