package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound           = errors.New("recurso no encontrado")
	ErrUserNotFound       = errors.New("usuario no encontrado")
	ErrEmailAlreadyExists = errors.New("el email ya está registrado")
	ErrInvalidInput       = errors.New("entrada inválida")
	ErrDuplicate          = errors.New("recurso duplicado")
	ErrUnauthorized       = errors.New("no autorizado")
	ErrForbidden          = errors.New("acceso denegado")
	ErrConflict           = errors.New("conflicto con el estado actual")

	// ErrInvalidTransition la transición de estado solicitada no está permitida
	// (ej. aprobar una reserva que no está pendiente).
	ErrInvalidTransition = errors.New("transición de estado no permitida")

	// ErrPaymentLocked la cuota ya está pagada en el respaldo y solo un
	// superadmin puede modificar su estado.
	ErrPaymentLocked = errors.New("la cuota ya fue pagada y no puede modificarse")

	// ErrRequestResolved la solicitud de cambio ya fue resuelta y es
	// historial inmutable.
	ErrRequestResolved = errors.New("la solicitud de cambio ya fue resuelta")

	// ErrNoDocumentData el registro de la reserva no tiene forma reconocible
	// y no se puede generar un documento con él.
	ErrNoDocumentData = errors.New("no se puede construir el documento con los datos recibidos")
)
