package models

import "time"

type ViewName string

const (
	ViewDashboard  ViewName = "dashboard"
	ViewMusteriler ViewName = "musteriler"
	ViewPersonel   ViewName = "personel"
	ViewPuantaj    ViewName = "puantaj"
	ViewDefter     ViewName = "defter"
	ViewKasa       ViewName = "kasa"
)

// ValidView - izin verilen sekme isimleri dışındaki değerler kaydedilmez
func ValidView(v ViewName) bool {
	switch v {
	case ViewDashboard, ViewMusteriler, ViewPersonel, ViewPuantaj, ViewDefter, ViewKasa:
		return true
	}
	return false
}

// UserPreference - SPA'nın localStorage'da tuttuğu oturum dışı durumun
// sunucu tarafı karşılığı (son seçili sekme, hatırlanan email).
type UserPreference struct {
	ID              uint     `gorm:"primaryKey"`
	UserID          int      `gorm:"uniqueIndex;not null"`
	CurrentView     ViewName `gorm:"size:30"`
	RememberedEmail string   `gorm:"size:100"`
	UpdatedAt       time.Time
}
