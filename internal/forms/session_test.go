package forms

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newReceiveSession(t *testing.T) *Session {
	t.Helper()
	cfg, ok := Config(ActionReceive)
	require.True(t, ok)
	return NewSession(cfg, Context{}, NewEngine())
}

func TestSessionAlertsTogglePreservesThresholds(t *testing.T) {
	s := newReceiveSession(t)

	s.SetAlerts(true)
	s.Set("reorder_point", 25)
	s.Set("low_stock_threshold", 8)

	// Apagar limpia reorder_point y quita el requisito
	s.SetAlerts(false)
	assert.Equal(t, 0, s.Get("reorder_point"))
	assert.Equal(t, false, s.Get("alerts"))

	// Volver a encender restaura exactamente los valores previos, no defaults
	s.SetAlerts(true)
	assert.Equal(t, 25, s.Get("reorder_point"))
	assert.Equal(t, 8, s.Get("low_stock_threshold"))
}

func TestSessionSeedsContextDefaults(t *testing.T) {
	cfg, _ := Config(ActionReceive)
	s := NewSession(cfg, Context{SKU: &SkuContext{Code: "ABC-1", Name: "Widget"}}, NewEngine())

	assert.Equal(t, "ABC-1", s.Get("sku_code"))
	assert.Equal(t, "Widget", s.Get("sku_name"))
}

func TestSessionSubmitSuccessResets(t *testing.T) {
	s := newReceiveSession(t)
	s.Set("sku_code", "abc-1")
	s.Set("location", "wh-1")
	s.Set("qty", 5)

	var posted Values
	msg, err := s.Submit(context.Background(), func(_ context.Context, payload Values) error {
		posted = payload
		return nil
	})

	require.NoError(t, err)
	assert.Equal(t, "Received 5 × ABC-1 into WH-1", msg)
	assert.Equal(t, "ABC-1", posted["sku_code"])

	// La sesión vuelve a defaults tras el éxito
	assert.Equal(t, "", s.Get("sku_code"))
}

func TestSessionSubmitValidationBlocks(t *testing.T) {
	s := newReceiveSession(t)

	var called bool
	_, err := s.Submit(context.Background(), func(context.Context, Values) error {
		called = true
		return nil
	})

	var verrs ValidationErrors
	require.ErrorAs(t, err, &verrs)
	assert.NotEmpty(t, verrs)
	// Los fallos de validación nunca llegan a la red
	assert.False(t, called)
}

func TestSessionSubmitFailureKeepsValues(t *testing.T) {
	s := newReceiveSession(t)
	s.Set("sku_code", "ABC-1")
	s.Set("location", "WH-1")
	s.Set("qty", 2)

	_, err := s.Submit(context.Background(), func(context.Context, Values) error {
		return errors.New("insufficient stock")
	})

	require.Error(t, err)
	// Los valores tipeados se conservan para reintentar
	assert.Equal(t, "ABC-1", s.Get("sku_code"))
	assert.Equal(t, 2, s.Get("qty"))
}

func TestSessionSingleSubmitInFlight(t *testing.T) {
	s := newReceiveSession(t)
	s.Set("sku_code", "ABC-1")
	s.Set("location", "WH-1")
	s.Set("qty", 1)

	release := make(chan struct{})
	started := make(chan struct{})

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		_, _ = s.Submit(context.Background(), func(context.Context, Values) error {
			close(started)
			<-release
			return nil
		})
	}()

	<-started
	_, err := s.Submit(context.Background(), func(context.Context, Values) error { return nil })
	assert.ErrorIs(t, err, ErrSubmitInFlight)

	close(release)
	wg.Wait()
}
