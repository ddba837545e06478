// Package composer compone el mensaje de salud de inventario del dashboard a
// partir de un InventorySummary. Función pura, sin efectos: el mismo snapshot
// produce siempre el mismo MessageResult.
package composer

import (
	"fmt"

	"nooryx-gateway/internal/models"
)

// Compose mapea un snapshot de inventario a un MessageResult. La selección de
// template es por prioridad, primera coincidencia gana:
//
//  1. inventario vacío
//  2. sin low stock ni out of stock (sano, con o sin SKUs inactivos)
//  3. solo low stock
//  4. solo out of stock
//  5. low stock y out of stock combinados
//  6. fallback de monitoreo (inalcanzable: 2-5 agotan los signos de ambos contadores)
//
// Listas ausentes se tratan como vacías.
func Compose(s models.InventorySummary) MessageResult {
	switch {
	case s.EmptyInventory:
		return emptyMessage()
	case s.LowStock == 0 && s.OutOfStock == 0:
		if len(s.InactiveInStock) > 0 {
			return inactiveMessage(s.InactiveInStock)
		}
		return healthyMessage()
	case s.LowStock > 0 && s.OutOfStock == 0:
		return lowStockMessage(s)
	case s.OutOfStock > 0 && s.LowStock == 0:
		return outOfStockMessage(s)
	case s.LowStock > 0 && s.OutOfStock > 0:
		return combinedMessage(s)
	}
	return monitoringMessage()
}

// result aplica el heurístico de expansión sobre el texto plano renderizado
func result(primary, full Message) MessageResult {
	return MessageResult{
		Primary:   primary,
		Full:      full,
		CanExpand: ShouldShowToggle(primary.String(), full.String()),
	}
}

// fixed mensaje no expandible con el mismo contenido corto y expandido
func fixed(m Message) MessageResult {
	return MessageResult{Primary: m, Full: m, CanExpand: false}
}

func emptyMessage() MessageResult {
	primary := Message{text("Your inventory is empty.")}
	// La versión expandida lleva los call-to-action, pero el mensaje no es
	// expandible: los clientes la renderizan directamente.
	full := Message{
		text("Your inventory is empty. "),
		ctaLink("Receive stock", "/transactions/receive"),
		text(" or "),
		ctaLink("import your catalog", "/settings/import"),
		text(" to get started."),
	}
	return MessageResult{Primary: primary, Full: full, CanExpand: false}
}

func healthyMessage() MessageResult {
	return fixed(Message{text("All clear. Inventory levels are healthy.")})
}

func monitoringMessage() MessageResult {
	return fixed(Message{text("We're keeping an eye on your inventory.")})
}

func inactiveMessage(inactive []string) MessageResult {
	primary := Message{text(fmt.Sprintf(
		"Inventory is healthy, but %s moved in a while.",
		countPhrase(len(inactive), "1 SKU hasn't", "%d SKUs haven't"),
	))}
	full := concat(
		Message{text("Inventory is healthy, but ")},
		skuList(inactive),
		Message{text(fmt.Sprintf(
			" %s sitting in stock without recent movement. Consider reviewing whether %s still worth keeping on hand.",
			listVerb(inactive, "is", "are"),
			listVerb(inactive, "it's", "they're"),
		))},
	)
	return result(primary, full)
}

func lowStockMessage(s models.InventorySummary) MessageResult {
	countSentence := countPhrase(s.LowStock, "1 SKU is running low.", "%d SKUs are running low.")
	primary := Message{text(countSentence)}

	if len(s.FastMoverLowStock) == 0 {
		full := Message{text(countSentence + " Restock soon to avoid missed shipments.")}
		return result(primary, full)
	}

	full := concat(
		Message{text(countSentence + " " + fastMoverNoun(s.FastMoverLowStock) + " ")},
		skuList(s.FastMoverLowStock),
		Message{text(" could sell out soon.")},
	)
	return result(primary, full)
}

func outOfStockMessage(s models.InventorySummary) MessageResult {
	countSentence := countPhrase(s.OutOfStock, "1 SKU is out of stock.", "%d SKUs are out of stock.")
	primary := Message{text(countSentence)}

	fast := s.FastMoverOutOfStock
	switch {
	case len(fast) == 0:
		pronoun := "them"
		if s.OutOfStock == 1 {
			pronoun = "it"
		}
		full := Message{text(countSentence + " Receive stock to make " + pronoun + " sellable again.")}
		return result(primary, full)

	case len(fast) == s.OutOfStock:
		// Todos los agotados son fast movers: resumir sin enumerar códigos
		full := Message{text(countSentence + " All are fast-moving items, so restocking should be a priority.")}
		return result(primary, full)

	case len(fast) <= maxRenderedSKUs:
		full := concat(
			Message{text(countSentence + " " + fastMoverNoun(fast) + " ")},
			skuList(fast),
			Message{text(" " + listVerb(fast, "is", "are") + " among them.")},
		)
		return result(primary, full)

	default:
		// Más de dos fast movers pero no todos: contar sin nombrar
		full := Message{text(countSentence + fmt.Sprintf(" %d fast-moving items are among them.", len(fast)))}
		return result(primary, full)
	}
}

func combinedMessage(s models.InventorySummary) MessageResult {
	countSentence := countPhrase(s.LowStock, "1 SKU is running low", "%d SKUs are running low") +
		" and " + countPhrase(s.OutOfStock, "1 is out of stock.", "%d are out of stock.")
	primary := Message{text(countSentence)}

	full := Message{text(countSentence)}

	// Una sola cláusula de fast movers: los agotados tienen prioridad sobre
	// los que están bajos cuando ambas listas traen datos.
	switch {
	case len(s.FastMoverOutOfStock) > 0:
		full = concat(full,
			Message{text(" " + fastMoverNoun(s.FastMoverOutOfStock) + " ")},
			skuList(s.FastMoverOutOfStock),
			Message{text(" " + listVerb(s.FastMoverOutOfStock, "is", "are") + " already out of stock.")},
		)
	case len(s.FastMoverLowStock) > 0:
		full = concat(full,
			Message{text(" " + fastMoverNoun(s.FastMoverLowStock) + " ")},
			skuList(s.FastMoverLowStock),
			Message{text(" could sell out soon.")},
		)
	}

	if len(s.InactiveInStock) > 0 {
		full = concat(full,
			Message{text(" Meanwhile, ")},
			skuList(s.InactiveInStock),
			Message{text(" " + listVerb(s.InactiveInStock, "is", "are") + " in stock but not moving.")},
		)
	}

	return result(primary, full)
}

// countPhrase elige la forma singular o plural según el contador
func countPhrase(n int, singular, pluralFmt string) string {
	if n == 1 {
		return singular
	}
	return fmt.Sprintf(pluralFmt, n)
}

// listVerb concuerda el verbo con la lista renderizada; las listas truncadas
// ("and others") siempre son plurales
func listVerb(skus []string, singular, plural string) string {
	if len(skus) == 1 {
		return singular
	}
	return plural
}

func fastMoverNoun(skus []string) string {
	if len(skus) == 1 {
		return "Fast mover"
	}
	return "Fast movers"
}
