package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"nooryx-gateway/internal/cache"
	"nooryx-gateway/internal/forms"
	"nooryx-gateway/internal/models"
)

func newTransactionService(api *mockInventoryAPI, qc *cache.QueryCache) TransactionService {
	return NewTransactionService(api, forms.NewEngine(), qc, zap.NewNop())
}

func validReceiveValues() forms.Values {
	return forms.Values{
		"sku_code": "kb-01",
		"location": "WH-MAIN",
		"qty":      5,
	}
}

func TestSubmitHappyPath(t *testing.T) {
	api := new(mockInventoryAPI)
	api.On("PostTransaction", mock.Anything, mock.MatchedBy(func(p forms.Values) bool {
		return p["action"] == "receive" && p["sku_code"] == "KB-01"
	})).Return(&models.TransactionResult{SKUCode: "KB-01", OnHand: 5}, nil)

	svc := newTransactionService(api, newTestCache())

	result, err := svc.Submit(context.Background(), forms.ActionReceive, validReceiveValues())
	require.NoError(t, err)
	assert.Equal(t, "Received 5 × KB-01 into WH-MAIN", result.Message)
	assert.Equal(t, 5, result.Result.OnHand)
	api.AssertExpectations(t)
}

func TestSubmitValidationFailureSkipsUpstream(t *testing.T) {
	api := new(mockInventoryAPI)
	svc := newTransactionService(api, newTestCache())

	_, err := svc.Submit(context.Background(), forms.ActionReceive, forms.Values{
		"sku_code": "KB-01",
		// location y qty ausentes
	})
	require.Error(t, err)

	var verrs forms.ValidationErrors
	require.True(t, errors.As(err, &verrs))
	assert.NotEmpty(t, verrs)
	api.AssertNotCalled(t, "PostTransaction", mock.Anything, mock.Anything)
}

func TestSubmitUnknownAction(t *testing.T) {
	svc := newTransactionService(new(mockInventoryAPI), newTestCache())

	_, err := svc.Submit(context.Background(), forms.Action("melt"), forms.Values{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "melt")
}

func TestSubmitInvalidatesCacheGroups(t *testing.T) {
	qc := newTestCache()
	ctx := context.Background()
	qc.Set(ctx, "inventory:summary", 1)
	qc.Set(ctx, "transactions:list:p1", 2)
	qc.Set(ctx, "search:kb", 3)

	api := new(mockInventoryAPI)
	api.On("PostTransaction", mock.Anything, mock.Anything).
		Return(&models.TransactionResult{SKUCode: "KB-01"}, nil)

	svc := newTransactionService(api, qc)

	_, err := svc.Submit(ctx, forms.ActionReceive, validReceiveValues())
	require.NoError(t, err)

	var out int
	assert.False(t, qc.Get(ctx, "inventory:summary", &out))
	assert.False(t, qc.Get(ctx, "transactions:list:p1", &out))
	assert.True(t, qc.Get(ctx, "search:kb", &out))
}

func TestSubmitUpstreamErrorKeepsCache(t *testing.T) {
	qc := newTestCache()
	ctx := context.Background()
	qc.Set(ctx, "inventory:summary", 1)

	api := new(mockInventoryAPI)
	api.On("PostTransaction", mock.Anything, mock.Anything).
		Return(nil, errors.New("not enough available stock"))

	svc := newTransactionService(api, qc)

	_, err := svc.Submit(ctx, forms.ActionShip, forms.Values{
		"sku_code": "KB-01",
		"location": "WH-MAIN",
		"qty":      99,
	})
	require.Error(t, err)

	var out int
	assert.True(t, qc.Get(ctx, "inventory:summary", &out))
}

func TestUpdateAlertsNormalizesCode(t *testing.T) {
	api := new(mockInventoryAPI)
	enabled := true
	api.On("UpdateSKU", mock.Anything, "KB-01", mock.Anything).Return(nil)

	svc := newTransactionService(api, newTestCache())

	err := svc.UpdateAlerts(context.Background(), " kb-01 ", models.SKUUpdate{AlertsEnabled: &enabled})
	require.NoError(t, err)
	api.AssertExpectations(t)
}

func TestUpdateAlertsInvalidatesThresholdViews(t *testing.T) {
	qc := newTestCache()
	ctx := context.Background()
	qc.Set(ctx, "inventory:summary", 1)
	qc.Set(ctx, "inventory:metrics", 2)
	qc.Set(ctx, "inventory:skus:p1:s25", 3)
	qc.Set(ctx, "inventory:trend:30d", 4)

	api := new(mockInventoryAPI)
	api.On("UpdateSKU", mock.Anything, "KB-01", mock.Anything).Return(nil)

	svc := newTransactionService(api, qc)

	enabled := true
	err := svc.UpdateAlerts(ctx, "KB-01", models.SKUUpdate{AlertsEnabled: &enabled})
	require.NoError(t, err)

	// Las vistas que reflejan los umbrales caen; la tendencia no depende
	// de ellos y sobrevive
	var out int
	assert.False(t, qc.Get(ctx, "inventory:summary", &out))
	assert.False(t, qc.Get(ctx, "inventory:metrics", &out))
	assert.False(t, qc.Get(ctx, "inventory:skus:p1:s25", &out))
	assert.True(t, qc.Get(ctx, "inventory:trend:30d", &out))
}

func TestUpdateAlertsRequiresCode(t *testing.T) {
	svc := newTransactionService(new(mockInventoryAPI), newTestCache())

	err := svc.UpdateAlerts(context.Background(), "   ", models.SKUUpdate{})
	require.Error(t, err)
}
