package auth

import (
	"strings"

	"santiye-backend/internal/config"
	"santiye-backend/internal/database"
	"santiye-backend/internal/dataset"
	"santiye-backend/internal/models"

	"github.com/gofiber/fiber/v2"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm/clause"
)

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Remember bool   `json:"remember"` // işaretliyse email tercihlerde saklanır
}

// LoginHandler - kullanıcı listesi upstream'den gelir; bu servis şifre yazmaz,
// sadece hash doğrulaması yapıp oturum token'ı üretir.
func LoginHandler(cfg *config.Config) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body LoginRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz istek gövdesi")
		}

		body.Email = strings.TrimSpace(strings.ToLower(body.Email))
		if body.Email == "" || body.Password == "" {
			return fiber.NewError(fiber.StatusBadRequest, "Email ve şifre zorunlu")
		}

		user, ok := dataset.Snapshot().UserByEmail(body.Email)
		if !ok {
			return fiber.NewError(fiber.StatusUnauthorized, "Email veya şifre hatalı")
		}

		if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(body.Password)); err != nil {
			return fiber.NewError(fiber.StatusUnauthorized, "Email veya şifre hatalı")
		}

		token, err := GenerateToken(cfg.JWTSecret, &user)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Token oluşturulamadı")
		}

		if body.Remember {
			pref := models.UserPreference{UserID: user.ID, RememberedEmail: user.Email}
			database.DB.Clauses(clause.OnConflict{
				Columns:   []clause.Column{{Name: "user_id"}},
				DoUpdates: clause.AssignmentColumns([]string{"remembered_email", "updated_at"}),
			}).Create(&pref)
		}

		return c.JSON(fiber.Map{
			"token": token,
			"user": fiber.Map{
				"id":    user.ID,
				"name":  user.Name,
				"email": user.Email,
				"role":  user.Role,
			},
		})
	}
}

func MeHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, email, err := CurrentUser(c)
		if err != nil {
			return err
		}

		u, found := dataset.Snapshot().UserByEmail(email)
		if !found {
			// veri seti henüz yüklenmemiş olabilir; token'daki bilgiyle cevapla
			return c.JSON(fiber.Map{"user_id": userID, "email": email})
		}

		return c.JSON(fiber.Map{
			"user_id": u.ID,
			"name":    u.Name,
			"email":   u.Email,
			"role":    u.Role,
		})
	}
}

type PreferencesRequest struct {
	CurrentView     models.ViewName `json:"currentView"`
	RememberedEmail string          `json:"rememberedEmail"`
}

// GetPreferencesHandler - SPA'nın localStorage yerine kullandığı sunucu
// tarafı tercihler (son sekme, hatırlanan email)
func GetPreferencesHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, _, err := CurrentUser(c)
		if err != nil {
			return err
		}

		var pref models.UserPreference
		if err := database.DB.Where("user_id = ?", userID).First(&pref).Error; err != nil {
			// kayıt yoksa boş tercihlerle dön
			return c.JSON(PreferencesRequest{})
		}

		return c.JSON(PreferencesRequest{
			CurrentView:     pref.CurrentView,
			RememberedEmail: pref.RememberedEmail,
		})
	}
}

func UpdatePreferencesHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, _, err := CurrentUser(c)
		if err != nil {
			return err
		}

		var body PreferencesRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz istek gövdesi")
		}

		if body.CurrentView != "" && !models.ValidView(body.CurrentView) {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz sekme adı")
		}

		pref := models.UserPreference{
			UserID:          userID,
			CurrentView:     body.CurrentView,
			RememberedEmail: body.RememberedEmail,
		}
		if err := database.DB.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"current_view", "remembered_email", "updated_at"}),
		}).Create(&pref).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Tercihler kaydedilemedi")
		}

		return c.JSON(fiber.Map{"ok": true})
	}
}
