package database

import (
	"log"

	"santiye-backend/internal/config"
	"santiye-backend/internal/models"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var DB *gorm.DB

// Init - lokal Postgres bağlantısı. Domain verisi burada TUTULMAZ; tek doğru
// kaynak upstream API'dir. Bu veritabanı sadece kullanıcı tercihleri ve
// audit log için kullanılır.
func Init(cfg *config.Config) {
	var err error

	DB, err = gorm.Open(postgres.Open(cfg.DatabaseDSN), &gorm.Config{})
	if err != nil {
		log.Fatalf("Veritabanına bağlanılamadı: %v", err)
	}

	err = DB.AutoMigrate(
		&models.UserPreference{},
		&models.AuditLog{},
	)
	if err != nil {
		log.Fatalf("AutoMigrate hatası: %v", err)
	}

	log.Println("Veritabanı bağlantısı başarılı. Migration tamamlandı.")
}
