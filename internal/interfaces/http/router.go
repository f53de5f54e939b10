package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/andresjj98/appagencia-api/internal/application/auth"
	"github.com/andresjj98/appagencia-api/internal/application/changerequest"
	"github.com/andresjj98/appagencia-api/internal/application/document"
	"github.com/andresjj98/appagencia-api/internal/application/installment"
	"github.com/andresjj98/appagencia-api/internal/application/notification"
	"github.com/andresjj98/appagencia-api/internal/application/reservation"
	"github.com/andresjj98/appagencia-api/internal/application/settings"
	"github.com/andresjj98/appagencia-api/internal/application/user"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC          *auth.UseCase
	ReservationUC   *reservation.UseCase
	InstallmentUC   *installment.UseCase
	ChangeRequestUC *changerequest.UseCase
	SettingsUC      *settings.UseCase
	UserUC          *user.UseCase
	DocumentUC      *document.UseCase
	NotificationUC  *notification.UseCase
	JWTSecret       string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (público)
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	// Reservas
	reservations := protected.Group("/reservations")
	reservationHandler := NewReservationHandler(deps.ReservationUC)
	reservations.Post("/", reservationHandler.Create)
	reservations.Get("/", reservationHandler.List)
	reservations.Get("/:id", reservationHandler.Get)
	reservations.Put("/:id", reservationHandler.Update)
	reservations.Post("/:id/approve", reservationHandler.Approve)
	reservations.Post("/:id/reject", reservationHandler.Reject)
	reservations.Post("/:id/cancel", reservationHandler.Cancel)
	reservations.Post("/:id/complete", reservationHandler.Complete)

	// Cuotas de pago
	installmentHandler := NewInstallmentHandler(deps.InstallmentUC)
	reservations.Get("/:id/installments", installmentHandler.ListByReservation)
	installments := protected.Group("/installments")
	installments.Patch("/:id/status", installmentHandler.UpdateStatus)
	installments.Post("/reconcile", installmentHandler.Reconcile)

	// Solicitudes de cambio
	changeRequestHandler := NewChangeRequestHandler(deps.ChangeRequestUC)
	reservations.Post("/:id/change-requests", changeRequestHandler.Create)
	reservations.Get("/:id/change-requests", changeRequestHandler.ListByReservation)
	changeRequests := protected.Group("/change-requests")
	changeRequests.Get("/:id", changeRequestHandler.Get)
	changeRequests.Post("/:id/approve", changeRequestHandler.Approve)
	changeRequests.Post("/:id/reject", changeRequestHandler.Reject)

	// Documentos de reserva y comprobantes de pago
	documentHandler := NewDocumentHandler(deps.DocumentUC)
	reservations.Get("/:id/documents/invoice", documentHandler.Invoice)
	reservations.Get("/:id/documents/voucher", documentHandler.Voucher)
	reservations.Get("/:id/documents/contract", documentHandler.Contract)
	reservations.Get("/:id/documents/fiscal", documentHandler.FiscalXML)
	installments.Post("/:id/receipt", documentHandler.UploadReceipt)
	installments.Get("/:id/receipt", documentHandler.ReceiptURL)

	// Ajustes del negocio
	settingsGroup := protected.Group("/settings")
	settingsHandler := NewSettingsHandler(deps.SettingsUC)
	settingsGroup.Get("/", settingsHandler.Get)
	settingsGroup.Put("/", settingsHandler.Update)

	// Usuarios y oficinas
	userHandler := NewUserHandler(deps.UserUC)
	users := protected.Group("/users")
	users.Get("/", userHandler.List)
	users.Get("/:id", userHandler.Get)
	users.Patch("/:id", userHandler.Update)
	offices := protected.Group("/offices")
	offices.Post("/", userHandler.CreateOffice)
	offices.Get("/", userHandler.ListOffices)

	// Notificaciones
	notifications := protected.Group("/notifications")
	notificationHandler := NewNotificationHandler(deps.NotificationUC)
	notifications.Get("/", notificationHandler.List)
	notifications.Patch("/:id/read", notificationHandler.MarkRead)
}
