package usecase_test

import (
	"context"
	"testing"

	"github.com/AankTia/ecommerce-app/internal/domain/model"
	repo "github.com/AankTia/ecommerce-app/internal/repository"
	"github.com/AankTia/ecommerce-app/internal/usecase"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func newOrderFixture() (*usecase.OrderUsecase, *TxManagerMock, *OrderRepoMock, *OrderItemRepoMock) {
	orders := &OrderRepoMock{}
	orderItems := &OrderItemRepoMock{}

	txm := &TxManagerMock{Repos: &TxReposMock{
		orders:     orders,
		orderItems: orderItems,
	}}

	return usecase.NewOrderUsecase(txm), txm, orders, orderItems
}

func TestOrderUsecase_GetMyOrderDetail(t *testing.T) {
	uc, txm, orders, orderItems := newOrderFixture()

	txm.On("WithinTx", mock.Anything).Return(nil)
	orders.On("FindByID", mock.Anything, int64(42)).Return(model.Order{
		ID:         42,
		UserID:     10,
		Status:     model.OrderStatusPaid,
		TotalPrice: 6497,
	}, nil)
	orderItems.On("ListByOrderID", mock.Anything, int64(42)).Return([]model.OrderItem{
		{OrderID: 42, ProductID: 1, ProductNameSnapshot: "Coffee Beans", UnitPriceSnapshot: 1999, Quantity: 3},
		{OrderID: 42, ProductID: 2, ProductNameSnapshot: "Filter", UnitPriceSnapshot: 500, Quantity: 1},
	}, nil)

	out, err := uc.GetMyOrderDetail(context.Background(), 10, 42)

	assert.NoError(t, err)
	assert.Equal(t, "PAID", out.Status)
	assert.Equal(t, int64(6497), out.TotalPrice)
	assert.Len(t, out.Items, 2)
}

func TestOrderUsecase_GetMyOrderDetail_OtherUsersOrderIsNotFound(t *testing.T) {
	uc, txm, orders, _ := newOrderFixture()

	txm.On("WithinTx", mock.Anything).Return(nil)
	orders.On("FindByID", mock.Anything, int64(42)).Return(model.Order{
		ID:     42,
		UserID: 999,
		Status: model.OrderStatusPending,
	}, nil)

	_, err := uc.GetMyOrderDetail(context.Background(), 10, 42)

	he, ok := usecase.AsHTTPError(err)
	assert.True(t, ok)
	assert.Equal(t, 404, he.Status)
}

func TestOrderUsecase_GetMyOrderDetail_NotFound(t *testing.T) {
	uc, txm, orders, _ := newOrderFixture()

	txm.On("WithinTx", mock.Anything).Return(nil)
	orders.On("FindByID", mock.Anything, int64(42)).Return(model.Order{}, repo.ErrNotFound)

	_, err := uc.GetMyOrderDetail(context.Background(), 10, 42)

	he, ok := usecase.AsHTTPError(err)
	assert.True(t, ok)
	assert.Equal(t, 404, he.Status)
}

func TestOrderUsecase_ListMyOrders(t *testing.T) {
	uc, txm, orders, orderItems := newOrderFixture()

	txm.On("WithinTx", mock.Anything).Return(nil)
	orders.On("ListByUserID", mock.Anything, int64(10), 1, 50).Return([]model.Order{
		{ID: 2, UserID: 10, Status: model.OrderStatusPaid, TotalPrice: 500},
		{ID: 1, UserID: 10, Status: model.OrderStatusCanceled, TotalPrice: 1999},
	}, int64(2), nil)
	orderItems.On("ListByOrderID", mock.Anything, int64(2)).Return([]model.OrderItem{}, nil)
	orderItems.On("ListByOrderID", mock.Anything, int64(1)).Return([]model.OrderItem{}, nil)

	outs, err := uc.ListMyOrders(context.Background(), 10)

	assert.NoError(t, err)
	assert.Len(t, outs, 2)
	assert.Equal(t, "PAID", outs[0].Status)
}
