// Package forms define la configuración declarativa de los formularios de
// transacción (receive, ship, adjust, reserve, unreserve, transfer) y el
// motor genérico que los resuelve, valida y transforma en payloads de wire.
package forms

import (
	"fmt"
	"strconv"
	"strings"
)

// FieldKind enum cerrado de tipos de campo; el resolver hace dispatch
// exhaustivo sobre él. Cada variante embebe solo los datos que necesita en
// lugar de sobrecargar campos opcionales.
type FieldKind string

const (
	KindText         FieldKind = "text"
	KindNumber       FieldKind = "number"
	KindTextarea     FieldKind = "textarea"
	KindSelect       FieldKind = "select"
	KindAutocomplete FieldKind = "autocomplete"
	KindSwitch       FieldKind = "switch"
)

// Width hint de layout para la grilla del formulario
type Width string

const (
	WidthFull Width = "full"
	WidthHalf Width = "half"
)

// Option una opción de un campo select
type Option struct {
	Value string `json:"value"`
	Label string `json:"label"`
}

// Rules reglas declarativas de validación de un campo. Min/Max aplican a
// campos numéricos, MinLength/MaxLength a texto; Tag es un tag adicional de
// go-playground/validator (p.ej. "skucode"); Custom corre al final con acceso
// al resto de los valores del formulario.
type Rules struct {
	Min       *float64                          `json:"min,omitempty"`
	Max       *float64                          `json:"max,omitempty"`
	MinLength int                               `json:"min_length,omitempty"`
	MaxLength int                               `json:"max_length,omitempty"`
	Tag       string                            `json:"tag,omitempty"`
	Custom    func(value any, all Values) error `json:"-"`
}

// FieldConfig descripción declarativa de un campo del formulario
type FieldConfig struct {
	Name      string        `json:"name"`
	Label     string        `json:"label"`
	Kind      FieldKind     `json:"kind"`
	Required  bool          `json:"required"`
	Width     Width         `json:"width,omitempty"`
	Step      float64       `json:"step,omitempty"`
	Options   []Option      `json:"options,omitempty"`
	Rules     Rules         `json:"rules,omitempty"`
	SubFields []FieldConfig `json:"sub_fields,omitempty"`
}

// Values valores crudos del formulario y payloads de wire
type Values map[string]any

// Clone copia superficial de los valores
func (v Values) Clone() Values {
	out := make(Values, len(v))
	for k, val := range v {
		out[k] = val
	}
	return out
}

// stringValue lee un valor como string; valores ausentes o de otro tipo
// devuelven vacío
func stringValue(v Values, name string) string {
	s, _ := v[name].(string)
	return s
}

// boolValue lee un valor como bool
func boolValue(v Values, name string) bool {
	b, _ := v[name].(bool)
	return b
}

// intValue lee un valor numérico como entero. Los números que llegan por JSON
// decodifican como float64; solo se aceptan si son enteros exactos.
func intValue(v Values, name string) (int, bool) {
	switch n := v[name].(type) {
	case int:
		return n, true
	case int64:
		return int(n), true
	case float64:
		if n == float64(int(n)) {
			return int(n), true
		}
		return 0, false
	case string:
		if i, err := strconv.Atoi(strings.TrimSpace(n)); err == nil {
			return i, true
		}
		return 0, false
	default:
		return 0, false
	}
}

// floatValue lee un valor numérico como float64
func floatValue(v Values, name string) (float64, bool) {
	return numberValue(v[name])
}

// numberValue coerciona un valor a float64. Acepta los tipos numéricos de Go,
// el float64 del decoder de JSON y strings numéricos: una cantidad que llega
// entre comillas sigue siendo una cantidad.
func numberValue(value any) (float64, bool) {
	switch n := value.(type) {
	case float64:
		return n, true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case string:
		if f, err := strconv.ParseFloat(strings.TrimSpace(n), 64); err == nil {
			return f, true
		}
		return 0, false
	default:
		return 0, false
	}
}

// NormalizeCode recorta espacios y pasa a mayúsculas un código de SKU o
// ubicación. Idempotente.
func NormalizeCode(s string) string {
	return strings.ToUpper(strings.TrimSpace(s))
}

// requireInt regla custom: el valor debe ser un entero
func requireInt(value any, _ Values) error {
	if _, ok := intValue(Values{"v": value}, "v"); !ok {
		return fmt.Errorf("must be a whole number")
	}
	return nil
}

// requireNonzeroInt regla custom para la cantidad de ajuste: entero con signo
// distinto de cero
func requireNonzeroInt(value any, all Values) error {
	if err := requireInt(value, all); err != nil {
		return err
	}
	if n, _ := intValue(Values{"v": value}, "v"); n == 0 {
		return fmt.Errorf("must not be zero")
	}
	return nil
}
