package forms

import (
	"context"
	"errors"
	"sync"
)

// ErrSubmitInFlight un submit ya está en curso para esta sesión
var ErrSubmitInFlight = errors.New("a submit is already in flight")

// preservedThresholds valores de umbrales guardados al apagar el toggle de
// alertas, para restaurarlos exactos al volver a encenderlo
type preservedThresholds struct {
	reorderPoint      any
	lowStockThreshold any
}

// Session es la instancia programática de un diálogo de formulario: mantiene
// los valores mientras el diálogo está abierto, preserva los umbrales al
// alternar el toggle de alertas y garantiza un solo submit en vuelo. Los
// valores no sobreviven al cierre de la sesión.
type Session struct {
	cfg    FormConfig
	engine *Engine

	mu         sync.Mutex
	values     Values
	preserved  *preservedThresholds
	submitting bool
}

// NewSession abre una sesión sembrada con los defaults del contexto
func NewSession(cfg FormConfig, ctx Context, engine *Engine) *Session {
	return &Session{
		cfg:    cfg,
		engine: engine,
		values: initialValues(cfg, ctx),
	}
}

func initialValues(cfg FormConfig, ctx Context) Values {
	if ctx.IsZero() || cfg.GetDefaultValues == nil {
		return cfg.DefaultValues.Clone()
	}
	return cfg.GetDefaultValues(ctx)
}

// Set actualiza el valor de un campo
func (s *Session) Set(name string, value any) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.values[name] = value
}

// Get lee el valor actual de un campo
func (s *Session) Get(name string) any {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.values[name]
}

// Values copia de los valores actuales
func (s *Session) Values() Values {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.values.Clone()
}

// SetAlerts alterna el toggle de alertas. Al apagarlo se limpia reorder_point
// y se guardan los valores actuales; al encenderlo se restauran exactamente
// los últimos conocidos en lugar de resetear a defaults, para no pisar un
// umbral ya tipeado solo porque el usuario tocó el switch dos veces.
func (s *Session) SetAlerts(on bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !on {
		s.preserved = &preservedThresholds{
			reorderPoint:      s.values["reorder_point"],
			lowStockThreshold: s.values["low_stock_threshold"],
		}
		s.values["alerts"] = false
		s.values["reorder_point"] = 0
		return
	}

	s.values["alerts"] = true
	if s.preserved != nil {
		s.values["reorder_point"] = s.preserved.reorderPoint
		s.values["low_stock_threshold"] = s.preserved.lowStockThreshold
	}
}

// Submit valida, transforma y envía el formulario a través de post. Mientras
// hay un submit en vuelo los reintentos devuelven ErrSubmitInFlight. Si el
// envío falla los valores tipeados se conservan; si tiene éxito la sesión se
// resetea a defaults y se devuelve el mensaje de éxito para el toast.
func (s *Session) Submit(ctx context.Context, post func(context.Context, Values) error) (string, error) {
	s.mu.Lock()
	if s.submitting {
		s.mu.Unlock()
		return "", ErrSubmitInFlight
	}
	s.submitting = true
	values := s.values.Clone()
	s.mu.Unlock()

	defer func() {
		s.mu.Lock()
		s.submitting = false
		s.mu.Unlock()
	}()

	if errs := s.engine.ValidateForm(s.cfg, values); len(errs) > 0 {
		return "", errs
	}

	payload := s.cfg.TransformPayload(values)
	if err := post(ctx, payload); err != nil {
		return "", err
	}

	msg := s.cfg.SuccessMessage(values)

	s.mu.Lock()
	s.values = s.cfg.DefaultValues.Clone()
	s.preserved = nil
	s.mu.Unlock()

	return msg, nil
}
