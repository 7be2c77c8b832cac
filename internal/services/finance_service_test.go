package services

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"storefront/internal/models/db_models"
	"storefront/internal/models/request_models"
	"storefront/internal/repositories"
	"storefront/internal/testutil"
	"storefront/pkg/utils"
)

func newFinanceFixture(t *testing.T) (*financeService, repositories.FinanceRepository, repositories.OrderRepository) {
	db := testutil.OpenDB(t)
	orders := repositories.NewOrderRepository(db)
	finance := repositories.NewFinanceRepository(db)
	svc := NewFinanceService(orders, finance, testConfig(), zap.NewNop()).(*financeService)
	svc.now = func() time.Time { return time.Unix(1760000000, 0) }
	return svc, finance, orders
}

func TestFinanceService_PageValidation(t *testing.T) {
	svc, _, _ := newFinanceFixture(t)
	ctx := context.Background()

	tests := []struct {
		name     string
		page     int
		pageSize int
		want     error
	}{
		{"zero page", 0, 20, utils.ErrInvalidPage},
		{"zero page size", 1, 0, utils.ErrInvalidPageSize},
		{"page size too large", 1, 101, utils.ErrInvalidPageSize},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.ListFinance(ctx, tt.page, tt.pageSize)
			assert.ErrorIs(t, err, tt.want)
			_, err = svc.ListOrders(ctx, tt.page, tt.pageSize)
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestFinanceService_CreateManualRecord(t *testing.T) {
	svc, _, _ := newFinanceFixture(t)
	ctx := context.Background()
	clientID := uuid.NewString()

	resp, err := svc.CreateManualRecord(ctx, request_models.CreateFinanceRecordRequest{
		ClientID:    clientID,
		ClientName:  " Ana ",
		Title:       "Encomenda festa",
		TotalAmount: dec("250.5"),
	})

	require.NoError(t, err)
	assert.Equal(t, string(db_models.FinanceStatusPending), resp.Status)
	assert.Equal(t, string(db_models.EntryTypeManual), resp.EntryType)
	assert.Equal(t, "250.50", resp.TotalAmount)
	assert.Equal(t, "brl", resp.Currency)
	assert.Equal(t, "Ana", resp.ClientName)
	require.NotNil(t, resp.ClientID)
	assert.Equal(t, clientID, *resp.ClientID)
	assert.Nil(t, resp.GatewaySessionID)

	page, err := svc.ListFinance(ctx, 1, 20)
	require.NoError(t, err)
	assert.Equal(t, int64(1), page.Total)
	require.Len(t, page.Items, 1)
	assert.Equal(t, resp.ID, page.Items[0].ID)
}

func TestFinanceService_CreateManualRecordRejectsBadInput(t *testing.T) {
	svc, _, _ := newFinanceFixture(t)
	ctx := context.Background()

	tests := []struct {
		name string
		req  request_models.CreateFinanceRecordRequest
	}{
		{"zero amount", request_models.CreateFinanceRecordRequest{Title: "X", TotalAmount: dec("0")}},
		{"negative amount", request_models.CreateFinanceRecordRequest{Title: "X", TotalAmount: dec("-1")}},
		{"blank title", request_models.CreateFinanceRecordRequest{Title: "  ", TotalAmount: dec("1")}},
		{"bad client id", request_models.CreateFinanceRecordRequest{ClientID: "nope", Title: "X", TotalAmount: dec("1")}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.CreateManualRecord(ctx, tt.req)
			assert.ErrorIs(t, err, utils.ErrValidation)
		})
	}
}

func TestFinanceService_ConfirmPaid(t *testing.T) {
	svc, finance, _ := newFinanceFixture(t)
	ctx := context.Background()

	created, err := svc.CreateManualRecord(ctx, request_models.CreateFinanceRecordRequest{Title: "Plano X", TotalAmount: dec("99")})
	require.NoError(t, err)

	_, err = svc.ConfirmPaid(ctx, created.ID)
	assert.ErrorIs(t, err, utils.ErrInvalidTransition, "pending records need a submitted payment first")

	id := uuid.MustParse(created.ID)
	_, err = finance.MarkPaymentSubmitted(ctx, id, "cs_test_inv")
	require.NoError(t, err)

	resp, err := svc.ConfirmPaid(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, string(db_models.FinanceStatusPaid), resp.Status)
	require.NotNil(t, resp.PaidAt)
	assert.Equal(t, int64(1760000000), *resp.PaidAt)

	// confirming twice is harmless
	resp, err = svc.ConfirmPaid(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, string(db_models.FinanceStatusPaid), resp.Status)

	_, err = svc.ConfirmPaid(ctx, uuid.NewString())
	assert.ErrorIs(t, err, utils.ErrRecordNotFound)

	_, err = svc.ConfirmPaid(ctx, "not-a-uuid")
	assert.ErrorIs(t, err, utils.ErrValidation)
}

func TestFinanceService_ListOrders(t *testing.T) {
	svc, _, orders := newFinanceFixture(t)
	ctx := context.Background()

	for _, sid := range []string{"cs_a", "cs_b", "cs_c"} {
		_, err := orders.CreateIfAbsent(ctx, &db_models.Order{
			BaseModel:        db_models.BaseModel{ID: OrderIDForSession(sid)},
			CustomerEmail:    "ana@example.com",
			AmountTotal:      dec("10"),
			Currency:         "brl",
			Status:           db_models.OrderStatusPending,
			GatewaySessionID: sid,
		})
		require.NoError(t, err)
	}

	page, err := svc.ListOrders(ctx, 1, 2)
	require.NoError(t, err)
	assert.Equal(t, int64(3), page.Total)
	assert.Len(t, page.Items, 2)
	assert.Equal(t, "10.00", page.Items[0].AmountTotal)

	page, err = svc.ListOrders(ctx, 2, 2)
	require.NoError(t, err)
	assert.Len(t, page.Items, 1)
}
