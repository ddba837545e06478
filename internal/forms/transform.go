package forms

import "strings"

// basePayload construye el payload de wire común a todas las acciones:
// normaliza códigos, copia la cantidad y anida el texto libre en txn_metadata.
// Idempotente: aplicarlo sobre su propia salida produce el mismo payload.
func basePayload(action Action, v Values) Values {
	out := Values{
		"action":   string(action),
		"sku_code": NormalizeCode(stringValue(v, "sku_code")),
		"location": NormalizeCode(stringValue(v, "location")),
	}
	if name := strings.TrimSpace(stringValue(v, "sku_name")); name != "" {
		out["sku_name"] = name
	}
	if qty, ok := intValue(v, "qty"); ok {
		out["qty"] = qty
	}
	if meta := metadataBag(v); len(meta) > 0 {
		out["txn_metadata"] = meta
	}
	return out
}

// metadataBag junta el texto libre (notes, reason) en la bolsa de metadata.
// Acepta una bolsa ya anidada para que re-aplicar el transform sea estable.
func metadataBag(v Values) map[string]string {
	meta := map[string]string{}
	switch m := v["txn_metadata"].(type) {
	case map[string]string:
		for k, s := range m {
			meta[k] = s
		}
	case Values:
		for k, val := range m {
			if s, ok := val.(string); ok {
				meta[k] = s
			}
		}
	case map[string]any:
		for k, val := range m {
			if s, ok := val.(string); ok {
				meta[k] = s
			}
		}
	}
	for _, name := range []string{"notes", "reason"} {
		if s := strings.TrimSpace(stringValue(v, name)); s != "" {
			meta[name] = s
		}
	}
	return meta
}

// transformReceive agrega a la base los campos propios del receive: costo
// unitario y umbrales de alerta. reorder_point se elimina del payload cuando
// el toggle de alertas está apagado.
func transformReceive(v Values) Values {
	out := basePayload(ActionReceive, v)

	if cost, ok := floatValue(v, "unit_cost"); ok && cost > 0 {
		out["unit_cost"] = cost
	}

	alertsOn := boolValue(v, "alerts") || boolValue(v, "alerts_enabled")
	out["alerts_enabled"] = alertsOn
	if alertsOn {
		if rp, ok := intValue(v, "reorder_point"); ok {
			out["reorder_point"] = rp
		}
	}
	if lt, ok := intValue(v, "low_stock_threshold"); ok {
		out["low_stock_threshold"] = lt
	}
	return out
}

func transformTransfer(v Values) Values {
	out := basePayload(ActionTransfer, v)
	out["target_location"] = NormalizeCode(stringValue(v, "target_location"))
	return out
}
