package composer

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"nooryx-gateway/internal/models"
)

func linkedSKUs(m Message) []string {
	var out []string
	for _, seg := range m {
		if seg.SKU != "" {
			out = append(out, seg.SKU)
		}
	}
	return out
}

func TestComposeHealthy(t *testing.T) {
	res := Compose(models.InventorySummary{})

	assert.Equal(t, "All clear. Inventory levels are healthy.", res.Primary.String())
	assert.Equal(t, res.Primary.String(), res.Full.String())
	assert.False(t, res.CanExpand)
}

func TestComposeEmptyInventory(t *testing.T) {
	res := Compose(models.InventorySummary{EmptyInventory: true})

	assert.Equal(t, "Your inventory is empty.", res.Primary.String())
	assert.False(t, res.CanExpand)

	// La versión expandida trae los call-to-action como links
	var hrefs []string
	for _, seg := range res.Full {
		if seg.Href != "" {
			hrefs = append(hrefs, seg.Href)
		}
	}
	assert.Equal(t, []string{"/transactions/receive", "/settings/import"}, hrefs)
}

func TestComposeEmptyWinsOverCounts(t *testing.T) {
	// empty_inventory gana aunque vengan contadores residuales
	res := Compose(models.InventorySummary{
		EmptyInventory: true,
		LowStock:       3,
		OutOfStock:     2,
	})
	assert.Equal(t, "Your inventory is empty.", res.Primary.String())
}

func TestComposeHealthyWithInactiveSKUs(t *testing.T) {
	t.Run("singular", func(t *testing.T) {
		res := Compose(models.InventorySummary{InactiveInStock: []string{"SKU-1"}})

		assert.Equal(t, "Inventory is healthy, but 1 SKU hasn't moved in a while.", res.Primary.String())
		assert.Equal(t, []string{"SKU-1"}, linkedSKUs(res.Full))
		assert.Contains(t, res.Full.String(), "SKU-1 is sitting in stock")
	})

	t.Run("plural truncated", func(t *testing.T) {
		res := Compose(models.InventorySummary{InactiveInStock: []string{"A-1", "B-2", "C-3", "D-4"}})

		assert.Equal(t, "Inventory is healthy, but 4 SKUs haven't moved in a while.", res.Primary.String())
		// Máximo dos links, luego el literal "and others"
		assert.Equal(t, []string{"A-1", "B-2"}, linkedSKUs(res.Full))
		assert.Contains(t, res.Full.String(), "A-1, B-2 and others are sitting in stock")
	})
}

func TestComposeLowStockOnly(t *testing.T) {
	t.Run("generic", func(t *testing.T) {
		res := Compose(models.InventorySummary{LowStock: 4})

		assert.Equal(t, "4 SKUs are running low.", res.Primary.String())
		assert.Empty(t, linkedSKUs(res.Full))
	})

	t.Run("fast movers listed", func(t *testing.T) {
		res := Compose(models.InventorySummary{
			LowStock:          3,
			FastMoverLowStock: []string{"FAST-1", "FAST-2"},
		})

		assert.Equal(t, []string{"FAST-1", "FAST-2"}, linkedSKUs(res.Full))
		assert.Contains(t, res.Full.String(), "FAST-1 and FAST-2 could sell out soon")
	})

	t.Run("fast movers truncated", func(t *testing.T) {
		res := Compose(models.InventorySummary{
			LowStock:          5,
			FastMoverLowStock: []string{"F-1", "F-2", "F-3"},
		})

		assert.Equal(t, []string{"F-1", "F-2"}, linkedSKUs(res.Full))
		assert.Contains(t, res.Full.String(), "F-1, F-2 and others")
	})
}

func TestComposeOutOfStockAllFastMovers(t *testing.T) {
	// Todos los agotados son fast movers: no se enumeran códigos
	res := Compose(models.InventorySummary{
		OutOfStock:          5,
		FastMoverOutOfStock: []string{"F-1", "F-2", "F-3", "F-4", "F-5"},
	})

	require.Contains(t, res.Full.String(), "All are fast-moving items")
	assert.Empty(t, linkedSKUs(res.Full))
}

func TestComposeOutOfStockFewFastMovers(t *testing.T) {
	// Subconjunto de hasta dos: se enumeran como links unidos con "and"
	res := Compose(models.InventorySummary{
		OutOfStock:          5,
		FastMoverOutOfStock: []string{"F-1", "F-2"},
	})

	assert.Equal(t, []string{"F-1", "F-2"}, linkedSKUs(res.Full))
	assert.Contains(t, res.Full.String(), "F-1 and F-2 are among them")
}

func TestComposeOutOfStockManyFastMovers(t *testing.T) {
	// Tres de cinco: se cuenta sin nombrar
	res := Compose(models.InventorySummary{
		OutOfStock:          5,
		FastMoverOutOfStock: []string{"F-1", "F-2", "F-3"},
	})

	assert.Contains(t, res.Full.String(), "3 fast-moving items")
	assert.Empty(t, linkedSKUs(res.Full))
}

func TestComposeOutOfStockNoFastMovers(t *testing.T) {
	res := Compose(models.InventorySummary{OutOfStock: 2})

	assert.Equal(t, "2 SKUs are out of stock.", res.Primary.String())
	assert.Contains(t, res.Full.String(), "Receive stock")
}

func TestComposeCombined(t *testing.T) {
	res := Compose(models.InventorySummary{LowStock: 3, OutOfStock: 2})

	assert.Equal(t, "3 SKUs are running low and 2 are out of stock.", res.Primary.String())
}

func TestComposeCombinedOutOfStockFastMoversWin(t *testing.T) {
	// Con ambas listas presentes solo se agrega la cláusula de agotados
	res := Compose(models.InventorySummary{
		LowStock:            2,
		OutOfStock:          1,
		FastMoverOutOfStock: []string{"OOS-1"},
		FastMoverLowStock:   []string{"LOW-1", "LOW-2"},
	})

	assert.Equal(t, []string{"OOS-1"}, linkedSKUs(res.Full))
	assert.Contains(t, res.Full.String(), "OOS-1 is already out of stock")
	assert.NotContains(t, res.Full.String(), "LOW-1")
}

func TestComposeCombinedLowFastMoversWhenNoOOSList(t *testing.T) {
	res := Compose(models.InventorySummary{
		LowStock:          2,
		OutOfStock:        1,
		FastMoverLowStock: []string{"LOW-1"},
	})

	assert.Equal(t, []string{"LOW-1"}, linkedSKUs(res.Full))
	assert.Contains(t, res.Full.String(), "could sell out soon")
}

func TestComposeCombinedInactiveClause(t *testing.T) {
	res := Compose(models.InventorySummary{
		LowStock:        1,
		OutOfStock:      1,
		InactiveInStock: []string{"IDLE-1"},
	})

	assert.Contains(t, res.Full.String(), "Meanwhile, IDLE-1 is in stock but not moving.")
}

func TestShouldShowToggle(t *testing.T) {
	words := func(n int) string {
		return strings.TrimSpace(strings.Repeat("w ", n))
	}

	tests := []struct {
		name    string
		primary string
		full    string
		want    bool
	}{
		{"identical strings", "same text here", "same text here", false},
		{"diff below 20 words", words(10), words(29), false},
		{"diff 20 and pct above", words(10), words(30), true},
		{"diff large but pct below", words(100), words(150), false},
		{"pct exactly at threshold", words(50), words(80), true},
		{"empty primary", "", words(30), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ShouldShowToggle(tt.primary, tt.full))
		})
	}
}

func TestMessageResultInvariant(t *testing.T) {
	// Si primary y full son idénticos, can_expand es false en todos los templates
	summaries := []models.InventorySummary{
		{},
		{EmptyInventory: true},
		{LowStock: 2},
		{OutOfStock: 3},
		{LowStock: 1, OutOfStock: 1},
		{InactiveInStock: []string{"A-1"}},
	}

	for _, s := range summaries {
		res := Compose(s)
		if res.Primary.String() == res.Full.String() {
			assert.False(t, res.CanExpand)
		}
	}
}
