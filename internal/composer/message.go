package composer

import "strings"

// Segment es un fragmento renderizable de un mensaje. Texto plano cuando solo
// Text está presente; link a la ficha de un SKU cuando SKU no es vacío; link
// de call-to-action cuando Href no es vacío.
type Segment struct {
	Text string `json:"text"`
	SKU  string `json:"sku,omitempty"`
	Href string `json:"href,omitempty"`
}

// Message es una secuencia ordenada de segmentos
type Message []Segment

// String concatena el texto plano del mensaje (sin markup de links)
func (m Message) String() string {
	var b strings.Builder
	for _, seg := range m {
		b.WriteString(seg.Text)
	}
	return b.String()
}

// MessageResult es la salida del composer: versión corta, versión expandida
// y si corresponde mostrar el toggle de expandir.
//
// Invariante: si Primary y Full son textualmente idénticos, CanExpand es false.
type MessageResult struct {
	Primary   Message `json:"primary"`
	Full      Message `json:"full"`
	CanExpand bool    `json:"can_expand"`
}

func text(s string) Segment { return Segment{Text: s} }

func skuLink(code string) Segment { return Segment{Text: code, SKU: code} }

func ctaLink(label, href string) Segment { return Segment{Text: label, Href: href} }

// maxRenderedSKUs límite de SKUs renderizados como links individuales
const maxRenderedSKUs = 2

// skuList renderiza como máximo los primeros dos SKUs como links. Con dos
// items sin truncar se unen con " and "; con más de dos se renderizan los dos
// primeros unidos con ", " seguidos del literal "and others". La puntuación
// exacta es parte de la superficie del producto, no un detalle interno.
func skuList(skus []string) Message {
	switch {
	case len(skus) == 0:
		return nil
	case len(skus) == 1:
		return Message{skuLink(skus[0])}
	case len(skus) == 2:
		return Message{skuLink(skus[0]), text(" and "), skuLink(skus[1])}
	default:
		return Message{skuLink(skus[0]), text(", "), skuLink(skus[1]), text(" and others")}
	}
}

func concat(msgs ...Message) Message {
	var out Message
	for _, m := range msgs {
		out = append(out, m...)
	}
	return out
}
