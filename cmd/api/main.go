package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/andresjj98/appagencia-api/internal/application/auth"
	"github.com/andresjj98/appagencia-api/internal/application/changerequest"
	"github.com/andresjj98/appagencia-api/internal/application/document"
	"github.com/andresjj98/appagencia-api/internal/application/installment"
	"github.com/andresjj98/appagencia-api/internal/application/notification"
	"github.com/andresjj98/appagencia-api/internal/application/reservation"
	appsettings "github.com/andresjj98/appagencia-api/internal/application/settings"
	"github.com/andresjj98/appagencia-api/internal/application/user"
	"github.com/andresjj98/appagencia-api/internal/infrastructure/cache"
	"github.com/andresjj98/appagencia-api/internal/infrastructure/fiscal"
	infrapdf "github.com/andresjj98/appagencia-api/internal/infrastructure/pdf"
	"github.com/andresjj98/appagencia-api/internal/infrastructure/postgres"
	"github.com/andresjj98/appagencia-api/internal/infrastructure/queue"
	"github.com/andresjj98/appagencia-api/internal/infrastructure/render"
	"github.com/andresjj98/appagencia-api/internal/infrastructure/storage"
	httpRouter "github.com/andresjj98/appagencia-api/internal/interfaces/http"
	"github.com/andresjj98/appagencia-api/pkg/config"
	"github.com/andresjj98/appagencia-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: "info",
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("iniciando aplicación")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	userRepo := postgres.NewUserRepository(pool)
	officeRepo := postgres.NewOfficeRepository(pool)
	resRepo := postgres.NewReservationRepository(pool)
	insRepo := postgres.NewInstallmentRepository(pool)
	crRepo := postgres.NewChangeRequestRepository(pool)
	settingsRepo := postgres.NewSettingsRepository(pool)
	notifRepo := postgres.NewNotificationRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	settingsCache := cache.NewRedisCache(cfg.Cache, log)
	defer settingsCache.Close()
	settingsUC := appsettings.NewUseCase(settingsRepo, settingsCache)

	publisher := queue.NewPublisher(cfg.Queue.URL, log)
	defer publisher.Close()
	notificationUC := notification.NewUseCase(notifRepo, userRepo, publisher, log)

	// El pie de página de los PDFs y la moneda de plantillas y diffs salen de
	// los ajustes del negocio vigentes al arranque; si aún no hay fila de
	// ajustes se usan valores por defecto.
	footer := ""
	currency := "COP"
	if s, err := settingsUC.Current(ctx); err == nil {
		footer = s.InvoiceFooter
		if s.Currency != "" {
			currency = s.Currency
		}
	} else {
		log.Warn().Err(err).Msg("ajustes del negocio no disponibles al arranque")
	}

	reservationUC := reservation.NewUseCase(resRepo, insRepo, settingsRepo, txRunner, notificationUC)
	installmentUC := installment.NewUseCase(insRepo, resRepo)
	changeRequestUC := changerequest.NewUseCase(crRepo, resRepo, notificationUC, currency)
	userUC := user.NewUseCase(userRepo, officeRepo)
	authUC := auth.NewUseCase(userRepo, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})

	pdfGenerator := infrapdf.NewMarotoGenerator(footer)
	fiscalExporter := fiscal.NewExporter()
	fileStorage := storage.NewSupabaseStorage(cfg.Storage)
	templateRenderer := render.NewRenderer(currency)
	documentUC := document.NewUseCase(resRepo, insRepo, settingsRepo, pdfGenerator, fiscalExporter, fileStorage, templateRenderer)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 30,
		IdleTimeout:  time.Second * 60,
		BodyLimit:    12 << 20, // comprobantes adjuntos
	})
	app.Use(recover.New())

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:          authUC,
		ReservationUC:   reservationUC,
		InstallmentUC:   installmentUC,
		ChangeRequestUC: changeRequestUC,
		SettingsUC:      settingsUC,
		UserUC:          userUC,
		DocumentUC:      documentUC,
		NotificationUC:  notificationUC,
		JWTSecret:       cfg.JWT.Secret,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}
