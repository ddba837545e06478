package forms

import "strings"

// ResolvedForm el formulario listo para renderizar por el cliente genérico:
// defaults calculados, campos redundantes ocultos y layout particionado.
type ResolvedForm struct {
	Action      Action        `json:"action"`
	Title       string        `json:"title"`
	Description string        `json:"description"`
	Defaults    Values        `json:"defaults"`
	HalfWidth   []FieldConfig `json:"half_width"`
	FullWidth   []FieldConfig `json:"full_width"`
	// Trailing siempre al final y fuera de la grilla: notes y alerts
	Trailing []FieldConfig `json:"trailing"`
}

// Resolve aplica el contrato de resolución de campos: defaults derivados del
// contexto, ocultamiento de campos ya fijados por el contexto y partición de
// layout con notes/alerts al final.
func Resolve(cfg FormConfig, ctx Context) ResolvedForm {
	out := ResolvedForm{
		Action:      cfg.Action,
		Title:       cfg.Title,
		Description: cfg.Description,
	}

	if cfg.DescribeFor != nil {
		out.Description = cfg.DescribeFor(ctx)
	}

	if ctx.IsZero() || cfg.GetDefaultValues == nil {
		out.Defaults = cfg.DefaultValues.Clone()
	} else {
		out.Defaults = cfg.GetDefaultValues(ctx)
	}

	hidden := hiddenFields(ctx)
	for _, field := range cfg.Fields {
		if hidden[field.Name] {
			continue
		}
		field = withResolvedStep(field)

		switch field.Name {
		case "notes", "alerts":
			out.Trailing = append(out.Trailing, field)
			continue
		}

		if field.Width == WidthHalf {
			out.HalfWidth = append(out.HalfWidth, field)
		} else {
			out.FullWidth = append(out.FullWidth, field)
		}
	}
	return out
}

// hiddenFields nombres de campos que el contexto ya fijó y no se renderizan
func hiddenFields(ctx Context) map[string]bool {
	hidden := map[string]bool{}
	if ctx.SKU != nil || ctx.Barcode != nil {
		hidden["sku_code"] = true
		hidden["sku_name"] = true
	}
	if ctx.Location != nil {
		hidden["location"] = true
	}
	return hidden
}

// withResolvedStep dispatch por tipo de campo: los numéricos con nombre de
// moneda usan paso 0.01, el resto paso 1. Los sub-campos heredan la misma
// regla.
func withResolvedStep(field FieldConfig) FieldConfig {
	if field.Kind == KindNumber {
		field.Step = numberStep(field.Name)
	}
	if len(field.SubFields) > 0 {
		subs := make([]FieldConfig, len(field.SubFields))
		for i, sub := range field.SubFields {
			subs[i] = withResolvedStep(sub)
		}
		field.SubFields = subs
	}
	return field
}

func numberStep(name string) float64 {
	if strings.Contains(name, "cost") || strings.Contains(name, "price") {
		return 0.01
	}
	return 1
}
