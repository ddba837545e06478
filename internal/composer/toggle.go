package composer

import "strings"

// Umbrales del heurístico anti-flicker: deltas cortos se absorben en un
// mensaje siempre expandido en lugar de exponer un control "see more".
const (
	minWordDiff    = 20
	minPctIncrease = 0.6
)

// ShouldShowToggle decide si el toggle expandir/colapsar vale la pena dado el
// texto corto y el expandido. Solo se muestra cuando el expandido agrega al
// menos minWordDiff palabras y eso representa un incremento de al menos
// minPctIncrease sobre el corto. Textos idénticos nunca muestran toggle.
func ShouldShowToggle(primary, full string) bool {
	if primary == full {
		return false
	}

	primaryWords := len(strings.Fields(primary))
	fullWords := len(strings.Fields(full))

	wordDiff := fullWords - primaryWords
	if primaryWords == 0 || wordDiff < minWordDiff {
		return false
	}

	pctIncrease := float64(wordDiff) / float64(primaryWords)
	return pctIncrease >= minPctIncrease
}
