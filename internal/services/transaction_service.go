package services

import (
	"context"
	"fmt"

	"nooryx-gateway/internal/apiclient"
	"nooryx-gateway/internal/cache"
	"nooryx-gateway/internal/forms"
	"nooryx-gateway/internal/models"

	"go.uber.org/zap"
)

// SubmitResult resultado de registrar una transacción
type SubmitResult struct {
	Message string                    `json:"message"`
	Result  *models.TransactionResult `json:"result,omitempty"`
}

// TransactionService orquesta el ciclo completo de una transacción de
// inventario: validar contra la configuración del formulario,
// transformar el payload y registrarla upstream
type TransactionService interface {
	Submit(ctx context.Context, action forms.Action, values forms.Values) (*SubmitResult, error)
	UpdateAlerts(ctx context.Context, skuCode string, update models.SKUUpdate) error
}

type transactionService struct {
	api    apiclient.InventoryAPI
	engine *forms.Engine
	cache  *cache.QueryCache
	logger *zap.Logger
}

// NewTransactionService crea una nueva instancia del servicio
func NewTransactionService(api apiclient.InventoryAPI, engine *forms.Engine, queryCache *cache.QueryCache, logger *zap.Logger) TransactionService {
	return &transactionService{
		api:    api,
		engine: engine,
		cache:  queryCache,
		logger: logger,
	}
}

// Submit valida, transforma y registra una transacción. Los errores de
// validación se devuelven como forms.ValidationErrors para que el
// handler los distinga de las fallas upstream.
func (s *transactionService) Submit(ctx context.Context, action forms.Action, values forms.Values) (*SubmitResult, error) {
	logger := s.logger.With(
		zap.String("operation", "submit_transaction"),
		zap.String("action", string(action)),
	)

	cfg, ok := forms.Config(action)
	if !ok {
		return nil, fmt.Errorf("tipo de transacción desconocido: %s", action)
	}

	if errs := s.engine.ValidateForm(cfg, values); len(errs) > 0 {
		logger.Warn("Transacción rechazada por validación",
			zap.Int("field_errors", len(errs)))
		return nil, errs
	}

	payload := cfg.TransformPayload(values)

	result, err := s.api.PostTransaction(ctx, payload)
	if err != nil {
		logger.Error("Error registrando transacción upstream", zap.Error(err))
		return nil, err
	}

	// Los listados y el resumen quedaron viejos
	s.cache.InvalidateGroup(ctx, "inventory")
	s.cache.InvalidateGroup(ctx, "transactions")

	logger.Info("Transacción registrada",
		zap.String("sku_code", result.SKUCode),
		zap.Int("on_hand", result.OnHand))

	return &SubmitResult{
		Message: cfg.SuccessMessage(payload),
		Result:  result,
	}, nil
}

// UpdateAlerts actualiza los umbrales de alerta de un SKU
func (s *transactionService) UpdateAlerts(ctx context.Context, skuCode string, update models.SKUUpdate) error {
	skuCode = forms.NormalizeCode(skuCode)
	if skuCode == "" {
		return fmt.Errorf("sku_code es requerido")
	}

	if err := s.api.UpdateSKU(ctx, skuCode, update); err != nil {
		s.logger.Error("Error actualizando alertas de SKU",
			zap.String("sku_code", skuCode),
			zap.Error(err))
		return err
	}

	// Los umbrales solo afectan al resumen, las métricas y los listados
	// de SKUs; el resto del grupo inventory sigue vigente
	s.cache.Invalidate(ctx, "inventory:summary")
	s.cache.Invalidate(ctx, "inventory:metrics")
	s.cache.InvalidateGroup(ctx, "inventory:skus")
	return nil
}
