package models

import "time"

type AuditAction string

const (
	AuditActionCreate AuditAction = "create"
	AuditActionUpdate AuditAction = "update"
	AuditActionDelete AuditAction = "delete"
)

// AuditLog - upstream'e iletilen her mutasyonun yerel kaydı. Domain verisi
// upstream'de yaşar; bu tablo sadece kimin neyi değiştirdiğini tutar.
type AuditLog struct {
	ID            uint        `gorm:"primaryKey"`
	CorrelationID string      `gorm:"size:36;index"` // istek başına uuid
	UserID        int         `gorm:"index"`
	UserEmail     string      `gorm:"size:100"`
	EntityType    string      `gorm:"size:50;index;not null"` // personel / musteri_is / ortak_gider / puantaj ...
	EntityID      int         `gorm:"index"`
	Action        AuditAction `gorm:"size:20;not null"`
	Description   string      `gorm:"size:255"`
	BeforeData    string      `gorm:"type:jsonb;default:'null'"`
	AfterData     string      `gorm:"type:jsonb;default:'null'"`
	CreatedAt     time.Time
}
