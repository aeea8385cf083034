package main

import (
	"context"
	"log"
	"strings"
	"time"

	"santiye-backend/internal/audit"
	"santiye-backend/internal/auth"
	"santiye-backend/internal/config"
	"santiye-backend/internal/database"
	"santiye-backend/internal/dataset"
	"santiye-backend/internal/kasa"
	"santiye-backend/internal/models"
	"santiye-backend/internal/musteri"
	"santiye-backend/internal/personel"
	"santiye-backend/internal/puantaj"
	"santiye-backend/internal/rapor"
	"santiye-backend/internal/upstream"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
)

func main() {
	cfg := config.Load()
	database.Init(cfg)

	api := upstream.New(cfg.UpstreamBaseURL)
	dataset.Init(api)

	// İlk yükleme: upstream geçici olarak kapalıysa sunucu yine de açılır,
	// veri seti ilk başarılı yenilemede dolar.
	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	if err := dataset.Reload(ctx); err != nil {
		log.Println("[WARN] İlk veri seti yüklemesi başarısız:", err)
	}
	cancel()

	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			if e, ok := err.(*fiber.Error); ok {
				return c.Status(e.Code).JSON(fiber.Map{
					"error": e.Message,
				})
			}
			log.Println("Unexpected error:", err)
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "Beklenmeyen sunucu hatası",
			})
		},
	})

	// CORS origins'i virgülle ayrılmış string'den array'e çevir
	corsOrigins := strings.Split(cfg.CORSOrigins, ",")
	for i := range corsOrigins {
		corsOrigins[i] = strings.TrimSpace(corsOrigins[i])
	}
	app.Use(cors.New(cors.Config{
		AllowOrigins: strings.Join(corsOrigins, ","),
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
		AllowMethods: "GET,POST,PUT,DELETE,OPTIONS",
	}))

	apiGroup := app.Group("/api")

	// Public auth
	apiGroup.Post("/auth/login", auth.LoginHandler(cfg))

	// Protected
	protected := apiGroup.Group("")
	protected.Use(auth.JWTMiddleware(cfg))

	protected.Get("/auth/me", auth.MeHandler())
	protected.Get("/auth/preferences", auth.GetPreferencesHandler())
	protected.Put("/auth/preferences", auth.UpdatePreferencesHandler())

	// Veri seti
	protected.Post("/data/refresh", func(c *fiber.Ctx) error {
		if err := dataset.Reload(c.Context()); err != nil {
			return fiber.NewError(fiber.StatusBadGateway, "Veri seti yenilenemedi")
		}
		return c.JSON(fiber.Map{"loadedAt": dataset.Snapshot().LoadedAt})
	})

	// Personel
	protected.Get("/personel", personel.ListPersonelHandler())
	protected.Post("/personel", personel.CreatePersonelHandler(api))
	protected.Put("/personel/:id", personel.UpdatePersonelHandler(api))
	protected.Delete("/personel/:id", personel.DeletePersonelHandler(api))
	protected.Get("/personel/odemeler", personel.ListOdemelerHandler())
	protected.Post("/personel/odemeler", personel.CreateOdemeHandler(api))
	protected.Delete("/personel/odemeler/:id", personel.DeleteOdemeHandler(api))
	protected.Get("/personel/bakiye", personel.BakiyeHandler())

	// Müşteriler ve işler
	protected.Get("/musteriler", musteri.ListMusterilerHandler())
	protected.Post("/musteriler", musteri.CreateMusteriHandler(api))
	protected.Put("/musteriler/:id", musteri.UpdateMusteriHandler(api))
	protected.Delete("/musteriler/:id", musteri.DeleteMusteriHandler(api))
	protected.Get("/musteriler/isler", musteri.ListIslerHandler())
	protected.Get("/musteriler/isler/konum-gruplari", musteri.KonumGruplariHandler())
	protected.Post("/musteriler/isler", musteri.CreateIsHandler(api))
	protected.Put("/musteriler/isler/:id", musteri.UpdateIsHandler(api))
	protected.Delete("/musteriler/isler/:id", musteri.DeleteIsHandler(api))
	protected.Put("/musteriler/isler/:id/hakedisler/bulk", musteri.ReplaceHakedislerHandler(api))
	protected.Put("/musteriler/isler/:id/malzemeler/bulk", musteri.ReplaceMalzemelerHandler(api))
	protected.Get("/musteriler/isler/:id/ozet", musteri.IsOzetHandler(cfg))
	protected.Get("/musteriler/:id/ozet", musteri.MusteriOzetHandler(cfg))

	// Kasa / defter
	protected.Get("/kasa/defter", kasa.ListDefterHandler())
	protected.Post("/kasa/defter", kasa.CreateDefterHandler(api))
	protected.Put("/kasa/defter/:id", kasa.UpdateDefterHandler(api))
	protected.Delete("/kasa/defter/:id", kasa.DeleteDefterHandler(api))
	protected.Get("/kasa/defter/notlar", kasa.ListNotlarHandler())
	protected.Post("/kasa/defter/notlar", kasa.CreateNotHandler(api))
	protected.Put("/kasa/defter/notlar/:id", kasa.UpdateNotHandler(api))
	protected.Delete("/kasa/defter/notlar/:id", kasa.DeleteNotHandler(api))
	protected.Get("/kasa/ortakgiderler", kasa.ListOrtakGiderHandler())
	protected.Post("/kasa/ortakgiderler", kasa.CreateOrtakGiderHandler(api))
	protected.Delete("/kasa/ortakgiderler/:id", kasa.SoftDeleteOrtakGiderHandler(api))
	protected.Post("/kasa/ortakgiderler/:id/restore", kasa.RestoreOrtakGiderHandler(api))
	protected.Delete("/kasa/ortakgiderler/:id/kalici", kasa.PermanentDeleteOrtakGiderHandler(api))
	protected.Get("/kasa/ozet", kasa.KasaOzetHandler())

	// Puantaj
	protected.Get("/puantaj", puantaj.ListHandler())
	protected.Post("/puantaj", puantaj.CreateHandler(api))
	protected.Put("/puantaj/:id", puantaj.UpdateHandler(api))
	protected.Delete("/puantaj/:id", puantaj.DeleteHandler(api))
	protected.Get("/puantaj/musteri-gruplari", puantaj.MusteriGruplariHandler())
	protected.Get("/puantaj/report/pdf", puantaj.ReportPDFHandler(api))

	// Raporlar
	protected.Get("/rapor/ekstre", rapor.EkstreHandler())
	protected.Get("/rapor/aylik-ozet", rapor.AylikOzetHandler(cfg))
	protected.Get("/rapor/personel-bakiye/xlsx", rapor.PersonelBakiyeXLSXHandler())
	protected.Get("/rapor/is-karlilik/xlsx", rapor.IsKarlilikXLSXHandler(cfg))

	// Audit logs (sadece admin)
	adminRoutes := protected.Group("/audit-logs")
	adminRoutes.Use(auth.RequireRole(models.RoleAdmin))
	adminRoutes.Get("/", audit.ListAuditLogsHandler())

	log.Println("Server çalışıyor port:", cfg.HTTPPort)
	if err := app.Listen(":" + cfg.HTTPPort); err != nil {
		log.Fatal(err)
	}
}
