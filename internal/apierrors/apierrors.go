// Package apierrors clasifica la prosa de error del backend en un título
// corto para el usuario. El contrato de error upstream es efectivamente "un
// string", así que esto es matching por substring: frágil por construcción y
// reemplazable por códigos estructurados si el backend los expone algún día.
package apierrors

import (
	"errors"
	"strings"

	"nooryx-gateway/internal/forms"
)

// Alert la forma renderizable de un fallo de mutación: se muestra inline
// sobre el footer del diálogo, con el mensaje crudo del server como detalle.
type Alert struct {
	Type    string `json:"type"` // "error" | "warning"
	Title   string `json:"title"`
	Message string `json:"message"`
}

const (
	TypeError   = "error"
	TypeWarning = "warning"
)

// Classify deriva un Alert del error de una transacción. El título se elige
// por substrings del mensaje en minúsculas, con variantes por acción.
func Classify(action forms.Action, err error) Alert {
	msg := err.Error()
	lower := strings.ToLower(msg)

	var upstream *UpstreamStatusError
	if errors.As(err, &upstream) {
		msg = upstream.Message
		lower = strings.ToLower(upstream.Message)
	}

	switch {
	case containsAny(lower, "not enough", "insufficient"):
		return Alert{TypeError, insufficientTitle(action), msg}

	case strings.Contains(lower, "no units"):
		return Alert{TypeError, "No reserved units to release", msg}

	case containsAny(lower, "doesn't exist", "does not exist", "not found"):
		return Alert{TypeWarning, "SKU or location not found", msg}

	case strings.Contains(lower, "cannot be the same"):
		return Alert{TypeError, "Locations must be different", msg}

	case containsAny(lower, "concurrent", "modified by another"):
		return Alert{TypeWarning, "Inventory changed while you were editing", msg}

	case strings.Contains(lower, "configuration"):
		// Antes que el caso de campos faltantes: los mensajes de
		// configuración suelen incluir "missing"
		return Alert{TypeError, "Configuration problem", msg}

	case containsAny(lower, "required", "missing", "invalid"):
		return Alert{TypeError, "Missing or invalid fields", msg}

	case containsAny(lower, "rate limit", "too many requests"):
		return Alert{TypeWarning, "Too many requests", msg}

	case containsAny(lower, "timeout", "timed out", "connection", "refused", "unreachable"):
		return Alert{TypeError, "Connection trouble", msg}

	case isServerError(lower, upstream):
		return Alert{TypeError, "Server error", msg}

	default:
		return Alert{TypeError, "Something went wrong", msg}
	}
}

func insufficientTitle(action forms.Action) string {
	switch action {
	case forms.ActionShip:
		return "Not enough stock to ship"
	case forms.ActionReserve:
		return "Not enough available units to reserve"
	case forms.ActionTransfer:
		return "Not enough stock to transfer"
	case forms.ActionAdjust:
		return "Adjustment exceeds available stock"
	default:
		return "Not enough stock"
	}
}

func isServerError(lower string, upstream *UpstreamStatusError) bool {
	if upstream != nil && upstream.StatusCode >= 500 {
		return true
	}
	return strings.Contains(lower, "internal")
}

func containsAny(s string, subs ...string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}

// UpstreamStatusError error tipado del cliente HTTP hacia el backend; carga
// el status y el mensaje crudo del server
type UpstreamStatusError struct {
	StatusCode int
	Message    string
}

func (e *UpstreamStatusError) Error() string {
	if e.Message == "" {
		return "upstream request failed"
	}
	return e.Message
}
