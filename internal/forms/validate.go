package forms

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
)

var (
	// Códigos de SKU/ubicación tras trim + mayúsculas
	codeRe = regexp.MustCompile(`^[A-Z0-9-]+$`)
	// Nombres: letras, dígitos, espacios y guiones
	nameRe = regexp.MustCompile(`^[A-Za-z0-9 -]+$`)
)

// FieldError error de validación de un campo individual
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationErrors el conjunto de errores de un submit; bloquea el envío
// mientras no esté vacío
type ValidationErrors []FieldError

func (e ValidationErrors) Error() string {
	if len(e) == 0 {
		return "validation failed"
	}
	parts := make([]string, len(e))
	for i, fe := range e {
		parts[i] = fe.Field + ": " + fe.Message
	}
	return strings.Join(parts, "; ")
}

// Engine evalúa las reglas declarativas de los campos con
// go-playground/validator como motor de reglas.
type Engine struct {
	validate *validator.Validate
}

// NewEngine crea el motor y registra las reglas custom de dominio
func NewEngine() *Engine {
	v := validator.New()

	// skucode: el valor debe matchear ^[A-Z0-9-]+$ después de normalizar
	_ = v.RegisterValidation("skucode", func(fl validator.FieldLevel) bool {
		return codeRe.MatchString(NormalizeCode(fl.Field().String()))
	})

	// skuname: letras/dígitos/espacios/guiones
	_ = v.RegisterValidation("skuname", func(fl validator.FieldLevel) bool {
		return nameRe.MatchString(strings.TrimSpace(fl.Field().String()))
	})

	return &Engine{validate: v}
}

// ValidateForm evalúa todos los campos de la configuración contra los valores
// actuales. Los sub-campos de un switch apagado no se evalúan, salvo
// low_stock_threshold que está siempre visible.
func (e *Engine) ValidateForm(cfg FormConfig, values Values) ValidationErrors {
	var errs ValidationErrors
	for _, field := range cfg.Fields {
		if field.Kind == KindSwitch {
			on := boolValue(values, field.Name)
			for _, sub := range field.SubFields {
				if !on && sub.Name == "reorder_point" {
					// Apagar el toggle quita el requisito del reorder point
					continue
				}
				errs = append(errs, e.validateField(sub, values)...)
			}
			continue
		}
		errs = append(errs, e.validateField(field, values)...)
	}
	return errs
}

func (e *Engine) validateField(field FieldConfig, values Values) ValidationErrors {
	value := values[field.Name]

	// El cero numérico y el false booleano cuentan como presentes; solo nil y
	// strings en blanco son ausencia.
	if isEmpty(value) {
		if field.Required {
			return ValidationErrors{{Field: field.Name, Message: field.Label + " is required"}}
		}
		return nil
	}

	// Los campos numéricos se coercionan antes de evaluar Min/Max: las
	// reglas comparan el número, no la representación. Un "0" entre
	// comillas es un cero, no un string de largo uno.
	if field.Kind == KindNumber {
		n, ok := numberValue(value)
		if !ok {
			return ValidationErrors{{Field: field.Name, Message: field.Label + " must be a number"}}
		}
		value = n
	}

	var errs ValidationErrors
	if tag := e.buildTag(field); tag != "" {
		if err := e.validate.Var(value, tag); err != nil {
			errs = append(errs, FieldError{Field: field.Name, Message: ruleMessage(field)})
		}
	}
	if field.Rules.Custom != nil {
		if err := field.Rules.Custom(value, values); err != nil {
			errs = append(errs, FieldError{Field: field.Name, Message: err.Error()})
		}
	}
	return errs
}

// buildTag traduce las reglas declarativas al tag de validator
func (e *Engine) buildTag(field FieldConfig) string {
	var parts []string
	r := field.Rules
	if r.Min != nil {
		parts = append(parts, fmt.Sprintf("gte=%g", *r.Min))
	}
	if r.Max != nil {
		parts = append(parts, fmt.Sprintf("lte=%g", *r.Max))
	}
	if r.MinLength > 0 {
		parts = append(parts, fmt.Sprintf("min=%d", r.MinLength))
	}
	if r.MaxLength > 0 {
		parts = append(parts, fmt.Sprintf("max=%d", r.MaxLength))
	}
	if r.Tag != "" {
		parts = append(parts, r.Tag)
	}
	return strings.Join(parts, ",")
}

// ruleMessage mensaje legible para un fallo de regla declarativa
func ruleMessage(field FieldConfig) string {
	r := field.Rules
	switch {
	case r.Tag == "skucode":
		return field.Label + " may only contain letters, numbers and dashes"
	case r.Tag == "skuname":
		return field.Label + " may only contain letters, numbers, spaces and dashes"
	case r.Min != nil && *r.Min >= 1:
		return field.Label + fmt.Sprintf(" must be at least %g", *r.Min)
	case r.Min != nil:
		return field.Label + " is out of range"
	case r.MaxLength > 0:
		return field.Label + fmt.Sprintf(" must be %d characters or fewer", r.MaxLength)
	default:
		return field.Label + " is invalid"
	}
}

// isEmpty valor ausente para efectos de "required": nil o string vacío tras
// trim. El cero numérico y el false booleano cuentan como presentes.
func isEmpty(value any) bool {
	if value == nil {
		return true
	}
	if s, ok := value.(string); ok {
		return strings.TrimSpace(s) == ""
	}
	return false
}
