package forms

import "fmt"

// Action identificador de cada tipo de transacción
type Action string

const (
	ActionReceive   Action = "receive"
	ActionShip      Action = "ship"
	ActionAdjust    Action = "adjust"
	ActionReserve   Action = "reserve"
	ActionUnreserve Action = "unreserve"
	ActionTransfer  Action = "transfer"
)

// Actions devuelve los tipos de transacción soportados, en orden estable
func Actions() []Action {
	return []Action{ActionReceive, ActionShip, ActionAdjust, ActionReserve, ActionUnreserve, ActionTransfer}
}

// SkuContext hint inmutable de un caller que ya sabe qué SKU aplica (p.ej. el
// formulario abierto desde la ficha de un SKU)
type SkuContext struct {
	Code string
	Name string
}

// LocationContext hint de ubicación ya fijada por el caller
type LocationContext struct {
	Code string
}

// BarcodeContext hint de un escaneo de código de barras ya resuelto
type BarcodeContext struct {
	Barcode string
	SkuCode string
	SkuName string
}

// Context agrupa los hints opcionales; solo se usan para pre-llenar defaults
// y ocultar campos redundantes
type Context struct {
	SKU      *SkuContext
	Location *LocationContext
	Barcode  *BarcodeContext
}

// IsZero indica si no hay ningún hint presente
func (c Context) IsZero() bool {
	return c.SKU == nil && c.Location == nil && c.Barcode == nil
}

// FormConfig descripción declarativa y estática de un tipo de transacción
type FormConfig struct {
	Action        Action
	Title         string
	Description   string
	DescribeFor   func(ctx Context) string
	Fields        []FieldConfig
	DefaultValues Values
	// GetDefaultValues deriva defaults de los hints de contexto; con contexto
	// vacío se usan DefaultValues tal cual
	GetDefaultValues func(ctx Context) Values
	TransformPayload func(values Values) Values
	SuccessMessage   func(values Values) string
}

// Config busca la configuración de un tipo de transacción
func Config(action Action) (FormConfig, bool) {
	cfg, ok := registry[action]
	return cfg, ok
}

var registry = map[Action]FormConfig{
	ActionReceive:   receiveConfig(),
	ActionShip:      shipConfig(),
	ActionAdjust:    adjustConfig(),
	ActionReserve:   reserveConfig(),
	ActionUnreserve: unreserveConfig(),
	ActionTransfer:  transferConfig(),
}

// ===== CAMPOS COMPARTIDOS =====

func f(v float64) *float64 { return &v }

func skuCodeField() FieldConfig {
	return FieldConfig{
		Name:     "sku_code",
		Label:    "SKU code",
		Kind:     KindAutocomplete,
		Required: true,
		Width:    WidthHalf,
		Rules:    Rules{Tag: "skucode"},
	}
}

func skuNameField() FieldConfig {
	// Se completa automáticamente al seleccionar un SKU; editable solo al
	// crear un SKU nuevo desde el autocomplete
	return FieldConfig{
		Name:  "sku_name",
		Label: "SKU name",
		Kind:  KindText,
		Width: WidthHalf,
		Rules: Rules{Tag: "skuname", MaxLength: 120},
	}
}

func locationField(name, label string) FieldConfig {
	return FieldConfig{
		Name:     name,
		Label:    label,
		Kind:     KindAutocomplete,
		Required: true,
		Width:    WidthHalf,
		Rules:    Rules{Tag: "skucode"},
	}
}

func quantityField() FieldConfig {
	return FieldConfig{
		Name:     "qty",
		Label:    "Quantity",
		Kind:     KindNumber,
		Required: true,
		Width:    WidthHalf,
		Rules:    Rules{Min: f(1), Custom: requireInt},
	}
}

// signedQuantityField cantidad del ajuste: entero con signo, distinto de cero
func signedQuantityField() FieldConfig {
	return FieldConfig{
		Name:     "qty",
		Label:    "Adjustment quantity",
		Kind:     KindNumber,
		Required: true,
		Width:    WidthHalf,
		Rules:    Rules{Custom: requireNonzeroInt},
	}
}

func unitCostField() FieldConfig {
	return FieldConfig{
		Name:  "unit_cost",
		Label: "Unit cost",
		Kind:  KindNumber,
		Width: WidthHalf,
		Rules: Rules{Min: f(0)},
	}
}

func notesField() FieldConfig {
	return FieldConfig{
		Name:  "notes",
		Label: "Notes",
		Kind:  KindTextarea,
		Width: WidthFull,
		Rules: Rules{MaxLength: 500},
	}
}

func reasonSelectField() FieldConfig {
	return FieldConfig{
		Name:     "reason",
		Label:    "Reason",
		Kind:     KindSelect,
		Required: true,
		Width:    WidthHalf,
		Options: []Option{
			{Value: "recount", Label: "Cycle count correction"},
			{Value: "damage", Label: "Damaged goods"},
			{Value: "shrinkage", Label: "Shrinkage"},
			{Value: "return", Label: "Customer return"},
			{Value: "other", Label: "Other"},
		},
	}
}

func reasonTextField() FieldConfig {
	return FieldConfig{
		Name:  "reason",
		Label: "Reason",
		Kind:  KindText,
		Width: WidthHalf,
		Rules: Rules{MaxLength: 200},
	}
}

// alertsField toggle de alertas: al encenderlo se revela reorder_point;
// low_stock_threshold se muestra siempre debajo
func alertsField() FieldConfig {
	return FieldConfig{
		Name:  "alerts",
		Label: "Low-stock alerts",
		Kind:  KindSwitch,
		SubFields: []FieldConfig{
			{
				Name:     "reorder_point",
				Label:    "Reorder point",
				Kind:     KindNumber,
				Required: true,
				Rules:    Rules{Min: f(0), Custom: requireInt},
			},
			{
				Name:  "low_stock_threshold",
				Label: "Low stock threshold",
				Kind:  KindNumber,
				Rules: Rules{Min: f(0), Custom: requireInt},
			},
		},
	}
}

// contextDefaults aplica los hints de contexto sobre una copia de defaults
func contextDefaults(defaults Values, ctx Context) Values {
	v := defaults.Clone()
	if ctx.SKU != nil {
		v["sku_code"] = ctx.SKU.Code
		v["sku_name"] = ctx.SKU.Name
	}
	if ctx.Barcode != nil {
		v["sku_code"] = ctx.Barcode.SkuCode
		v["sku_name"] = ctx.Barcode.SkuName
	}
	if ctx.Location != nil {
		v["location"] = ctx.Location.Code
	}
	return v
}

// ===== CONFIGS POR ACCIÓN =====

func receiveConfig() FormConfig {
	defaults := Values{
		"sku_code": "", "sku_name": "", "location": "",
		"qty": 1, "unit_cost": 0.0,
		"alerts": false, "reorder_point": 0, "low_stock_threshold": 0,
		"notes": "",
	}
	return FormConfig{
		Action:      ActionReceive,
		Title:       "Receive stock",
		Description: "Add incoming units to a location.",
		DescribeFor: func(ctx Context) string {
			if ctx.SKU != nil {
				return fmt.Sprintf("Add incoming units of %s.", ctx.SKU.Code)
			}
			return "Add incoming units to a location."
		},
		Fields: []FieldConfig{
			skuCodeField(), skuNameField(),
			locationField("location", "Location"),
			quantityField(), unitCostField(),
			alertsField(), notesField(),
		},
		DefaultValues:    defaults,
		GetDefaultValues: func(ctx Context) Values { return contextDefaults(defaults, ctx) },
		TransformPayload: transformReceive,
		SuccessMessage: func(v Values) string {
			qty, _ := intValue(v, "qty")
			return fmt.Sprintf("Received %d × %s into %s", qty,
				NormalizeCode(stringValue(v, "sku_code")), NormalizeCode(stringValue(v, "location")))
		},
	}
}

func shipConfig() FormConfig {
	defaults := Values{"sku_code": "", "sku_name": "", "location": "", "qty": 1, "notes": ""}
	return FormConfig{
		Action:      ActionShip,
		Title:       "Ship stock",
		Description: "Remove units that left the warehouse.",
		Fields: []FieldConfig{
			skuCodeField(), skuNameField(),
			locationField("location", "Location"),
			quantityField(), notesField(),
		},
		DefaultValues:    defaults,
		GetDefaultValues: func(ctx Context) Values { return contextDefaults(defaults, ctx) },
		TransformPayload: func(v Values) Values { return basePayload(ActionShip, v) },
		SuccessMessage: func(v Values) string {
			qty, _ := intValue(v, "qty")
			return fmt.Sprintf("Shipped %d × %s from %s", qty,
				NormalizeCode(stringValue(v, "sku_code")), NormalizeCode(stringValue(v, "location")))
		},
	}
}

func adjustConfig() FormConfig {
	defaults := Values{"sku_code": "", "sku_name": "", "location": "", "qty": 0, "reason": "", "notes": ""}
	return FormConfig{
		Action:      ActionAdjust,
		Title:       "Adjust stock",
		Description: "Correct on-hand counts up or down.",
		Fields: []FieldConfig{
			skuCodeField(), skuNameField(),
			locationField("location", "Location"),
			signedQuantityField(), reasonSelectField(), notesField(),
		},
		DefaultValues:    defaults,
		GetDefaultValues: func(ctx Context) Values { return contextDefaults(defaults, ctx) },
		TransformPayload: func(v Values) Values { return basePayload(ActionAdjust, v) },
		SuccessMessage: func(v Values) string {
			qty, _ := intValue(v, "qty")
			return fmt.Sprintf("Adjusted %s by %+d at %s",
				NormalizeCode(stringValue(v, "sku_code")), qty, NormalizeCode(stringValue(v, "location")))
		},
	}
}

func reserveConfig() FormConfig {
	defaults := Values{"sku_code": "", "sku_name": "", "location": "", "qty": 1, "reason": "", "notes": ""}
	return FormConfig{
		Action:      ActionReserve,
		Title:       "Reserve stock",
		Description: "Hold units for an order or customer.",
		Fields: []FieldConfig{
			skuCodeField(), skuNameField(),
			locationField("location", "Location"),
			quantityField(), reasonTextField(), notesField(),
		},
		DefaultValues:    defaults,
		GetDefaultValues: func(ctx Context) Values { return contextDefaults(defaults, ctx) },
		TransformPayload: func(v Values) Values { return basePayload(ActionReserve, v) },
		SuccessMessage: func(v Values) string {
			qty, _ := intValue(v, "qty")
			return fmt.Sprintf("Reserved %d × %s at %s", qty,
				NormalizeCode(stringValue(v, "sku_code")), NormalizeCode(stringValue(v, "location")))
		},
	}
}

func unreserveConfig() FormConfig {
	defaults := Values{"sku_code": "", "sku_name": "", "location": "", "qty": 1, "reason": "", "notes": ""}
	return FormConfig{
		Action:      ActionUnreserve,
		Title:       "Release reservation",
		Description: "Return reserved units to available stock.",
		Fields: []FieldConfig{
			skuCodeField(), skuNameField(),
			locationField("location", "Location"),
			quantityField(), reasonTextField(), notesField(),
		},
		DefaultValues:    defaults,
		GetDefaultValues: func(ctx Context) Values { return contextDefaults(defaults, ctx) },
		TransformPayload: func(v Values) Values { return basePayload(ActionUnreserve, v) },
		SuccessMessage: func(v Values) string {
			qty, _ := intValue(v, "qty")
			return fmt.Sprintf("Released %d × %s at %s", qty,
				NormalizeCode(stringValue(v, "sku_code")), NormalizeCode(stringValue(v, "location")))
		},
	}
}

func transferConfig() FormConfig {
	defaults := Values{"sku_code": "", "sku_name": "", "location": "", "target_location": "", "qty": 1, "notes": ""}
	target := locationField("target_location", "To location")
	target.Rules.Custom = func(value any, all Values) error {
		from := NormalizeCode(stringValue(all, "location"))
		to := NormalizeCode(stringValue(Values{"v": value}, "v"))
		if from != "" && from == to {
			return fmt.Errorf("target location cannot be the same as the source")
		}
		return nil
	}
	return FormConfig{
		Action:      ActionTransfer,
		Title:       "Transfer stock",
		Description: "Move units between locations.",
		Fields: []FieldConfig{
			skuCodeField(), skuNameField(),
			locationField("location", "From location"),
			target, quantityField(), notesField(),
		},
		DefaultValues:    defaults,
		GetDefaultValues: func(ctx Context) Values { return contextDefaults(defaults, ctx) },
		TransformPayload: transformTransfer,
		SuccessMessage: func(v Values) string {
			qty, _ := intValue(v, "qty")
			return fmt.Sprintf("Transferred %d × %s from %s to %s", qty,
				NormalizeCode(stringValue(v, "sku_code")),
				NormalizeCode(stringValue(v, "location")),
				NormalizeCode(stringValue(v, "target_location")))
		},
	}
}
