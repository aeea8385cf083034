package audit

import (
	"encoding/json"
	"fmt"

	"santiye-backend/internal/database"
	"santiye-backend/internal/models"

	"github.com/google/uuid"
)

type LogOptions struct {
	UserID      int
	UserEmail   string
	EntityType  string
	EntityID    int
	Action      models.AuditAction
	Description string
	Before      any
	After       any
}

// WriteLog - upstream'e iletilen mutasyonun yerel kaydı. Log hatası kritik
// değildir; çağıran taraf hatayı loglayıp devam eder.
func WriteLog(opts LogOptions) error {
	// PostgreSQL jsonb için boş string yerine "null" JSON string'i kullanmalıyız
	beforeStr := "null"
	afterStr := "null"

	if opts.Before != nil {
		if b, err := json.Marshal(opts.Before); err == nil {
			beforeStr = string(b)
		}
	}
	if opts.After != nil {
		if b, err := json.Marshal(opts.After); err == nil {
			afterStr = string(b)
		}
	}

	log := models.AuditLog{
		CorrelationID: uuid.NewString(),
		UserID:        opts.UserID,
		UserEmail:     opts.UserEmail,
		EntityType:    opts.EntityType,
		EntityID:      opts.EntityID,
		Action:        opts.Action,
		Description:   opts.Description,
		BeforeData:    beforeStr,
		AfterData:     afterStr,
	}

	if err := database.DB.Create(&log).Error; err != nil {
		return fmt.Errorf("audit log kaydedilemedi: %w", err)
	}

	return nil
}
