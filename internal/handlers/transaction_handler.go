package handlers

import (
	"errors"
	"net/http"

	"nooryx-gateway/internal/apierrors"
	"nooryx-gateway/internal/forms"
	"nooryx-gateway/internal/models"
	"nooryx-gateway/internal/services"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// TransactionHandler maneja formularios y registro de transacciones
type TransactionHandler struct {
	transactionService services.TransactionService
	logger             *zap.Logger
}

// NewTransactionHandler crea una nueva instancia del handler
func NewTransactionHandler(transactionService services.TransactionService, logger *zap.Logger) *TransactionHandler {
	return &TransactionHandler{
		transactionService: transactionService,
		logger:             logger,
	}
}

// ListForms devuelve los tipos de transacción soportados
func (h *TransactionHandler) ListForms(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "✅ Tipos de transacción disponibles",
		"data":    forms.Actions(),
	})
}

// GetForm devuelve la configuración resuelta de un formulario. Los
// hints de contexto viajan como query params: sku_code, sku_name,
// location, barcode.
func (h *TransactionHandler) GetForm(c *gin.Context) {
	logger := h.logger.With(zap.String("handler", "get_form"))

	action := forms.Action(c.Param("action"))
	cfg, ok := forms.Config(action)
	if !ok {
		logger.Warn("Tipo de transacción desconocido", zap.String("action", string(action)))
		c.JSON(http.StatusNotFound, gin.H{
			"success": false,
			"message": "❌ Tipo de transacción desconocido",
			"error":   "unknown transaction type: " + string(action),
		})
		return
	}

	resolved := forms.Resolve(cfg, formContext(c))

	logger.Info("Formulario resuelto",
		zap.String("action", string(action)),
		zap.Int("half_width", len(resolved.HalfWidth)),
		zap.Int("full_width", len(resolved.FullWidth)))

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "✅ Formulario obtenido correctamente",
		"data":    resolved,
	})
}

// Submit registra una transacción del tipo indicado en la URL
func (h *TransactionHandler) Submit(c *gin.Context) {
	logger := h.logger.With(zap.String("handler", "submit_transaction"))

	action := forms.Action(c.Param("action"))
	if _, ok := forms.Config(action); !ok {
		logger.Warn("Tipo de transacción desconocido", zap.String("action", string(action)))
		c.JSON(http.StatusNotFound, gin.H{
			"success": false,
			"message": "❌ Tipo de transacción desconocido",
			"error":   "unknown transaction type: " + string(action),
		})
		return
	}

	var values forms.Values
	if err := c.ShouldBindJSON(&values); err != nil {
		logger.Error("Error binding JSON", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"message": "❌ Error en el formato de datos",
			"error":   err.Error(),
		})
		return
	}

	result, err := h.transactionService.Submit(c.Request.Context(), action, values)
	if err != nil {
		h.submitError(c, logger, action, err)
		return
	}

	logger.Info("Transacción registrada",
		zap.String("action", string(action)),
		zap.String("result_message", result.Message))

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "✅ " + result.Message,
		"data":    result,
	})
}

// submitError traduce los tres tipos de falla de un submit: validación
// local (400 con errores por campo), falla upstream (alerta clasificada
// con el status del upstream) y todo lo demás (500)
func (h *TransactionHandler) submitError(c *gin.Context, logger *zap.Logger, action forms.Action, err error) {
	var verrs forms.ValidationErrors
	if errors.As(err, &verrs) {
		logger.Warn("Submit rechazado por validación",
			zap.String("action", string(action)),
			zap.Int("field_errors", len(verrs)))
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"message": "❌ Datos de entrada inválidos",
			"errors":  verrs,
		})
		return
	}

	var upstream *apierrors.UpstreamStatusError
	if errors.As(err, &upstream) {
		alert := apierrors.Classify(action, err)
		logger.Error("Submit rechazado por upstream",
			zap.String("action", string(action)),
			zap.Int("upstream_status", upstream.StatusCode),
			zap.String("alert_title", alert.Title))
		c.JSON(upstreamStatus(upstream.StatusCode), gin.H{
			"success": false,
			"message": "❌ " + alert.Title,
			"alert":   alert,
		})
		return
	}

	alert := apierrors.Classify(action, err)
	logger.Error("Error procesando transacción",
		zap.String("action", string(action)),
		zap.Error(err))
	c.JSON(http.StatusInternalServerError, gin.H{
		"success": false,
		"message": "❌ " + alert.Title,
		"alert":   alert,
		"error":   err.Error(),
	})
}

// UpdateAlerts actualiza los umbrales de alerta de un SKU
func (h *TransactionHandler) UpdateAlerts(c *gin.Context) {
	logger := h.logger.With(zap.String("handler", "update_alerts"))

	skuCode := c.Param("code")

	var update models.SKUUpdate
	if err := c.ShouldBindJSON(&update); err != nil {
		logger.Error("Error binding JSON", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"message": "❌ Error en el formato de datos",
			"error":   err.Error(),
		})
		return
	}

	if err := h.transactionService.UpdateAlerts(c.Request.Context(), skuCode, update); err != nil {
		var upstream *apierrors.UpstreamStatusError
		if errors.As(err, &upstream) {
			alert := apierrors.Classify("", err)
			c.JSON(upstreamStatus(upstream.StatusCode), gin.H{
				"success": false,
				"message": "❌ " + alert.Title,
				"alert":   alert,
			})
			return
		}
		logger.Error("Error actualizando alertas", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"message": "❌ Error actualizando alertas del SKU",
			"error":   err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "✅ Alertas actualizadas correctamente",
		"data": gin.H{
			"sku_code": forms.NormalizeCode(skuCode),
		},
	})
}

// formContext arma los hints de contexto desde la query string
func formContext(c *gin.Context) forms.Context {
	var ctx forms.Context

	if barcode := c.Query("barcode"); barcode != "" {
		ctx.Barcode = &forms.BarcodeContext{
			Barcode: barcode,
			SkuCode: c.Query("sku_code"),
			SkuName: c.Query("sku_name"),
		}
	} else if code := c.Query("sku_code"); code != "" {
		ctx.SKU = &forms.SkuContext{
			Code: code,
			Name: c.Query("sku_name"),
		}
	}

	if location := c.Query("location"); location != "" {
		ctx.Location = &forms.LocationContext{Code: location}
	}

	return ctx
}

// upstreamStatus decide qué status devolver al cliente: los 4xx del
// upstream se propagan tal cual, los 5xx se colapsan a 502
func upstreamStatus(code int) int {
	if code >= 400 && code < 500 {
		return code
	}
	return http.StatusBadGateway
}
