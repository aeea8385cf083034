package models

import "time"

// PuantajKaydi - tek personelin tek güne ait puantaj satırı
type PuantajKaydi struct {
	KayitID     int       `json:"kayitId"`
	PersonelID  int       `json:"personelId"`
	MusteriIsID int       `json:"musteriIsId"`
	Tarih       time.Time `json:"tarih"`
	GunlukUcret float64   `json:"gunlukUcret"`
	Konum       string    `json:"konum,omitempty"`
	IsTanimi    string    `json:"isTanimi,omitempty"`
}
