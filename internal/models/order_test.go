package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOrderVongDoiDayDu(t *testing.T) {
	o := ServiceOrder{TrangThai: OrderPending}

	require.NoError(t, o.Transition(OrderInProgress))
	require.NoError(t, o.Transition(OrderCompleted))
	assert.Equal(t, OrderCompleted, o.TrangThai)
}

func TestOrderHuyChiKhiPending(t *testing.T) {
	o := ServiceOrder{TrangThai: OrderPending}
	require.NoError(t, o.Transition(OrderCancelled))

	// Đã chạy rồi thì không huỷ được nữa
	o2 := ServiceOrder{TrangThai: OrderInProgress}
	assert.ErrorIs(t, o2.Transition(OrderCancelled), ErrChuyenTrangThai)
	assert.Equal(t, OrderInProgress, o2.TrangThai, "trạng thái giữ nguyên khi chuyển fail")
}

func TestOrderKhongQuayLui(t *testing.T) {
	tests := []struct {
		hienTai string
		next    string
	}{
		{OrderCompleted, OrderInProgress},
		{OrderCompleted, OrderCancelled},
		{OrderCancelled, OrderInProgress},
		{OrderInProgress, OrderInProgress},
		{OrderPending, OrderCompleted}, // Không nhảy cóc qua in-progress
	}

	for _, tt := range tests {
		o := ServiceOrder{TrangThai: tt.hienTai}
		assert.ErrorIs(t, o.Transition(tt.next), ErrChuyenTrangThai, "%s -> %s phải bị chặn", tt.hienTai, tt.next)
	}
}

func TestOrderPredicates(t *testing.T) {
	assert.True(t, ServiceOrder{TrangThai: OrderPending}.CanStart())
	assert.True(t, ServiceOrder{TrangThai: OrderPending}.CanCancel())
	assert.False(t, ServiceOrder{TrangThai: OrderPending}.CanComplete())

	assert.True(t, ServiceOrder{TrangThai: OrderInProgress}.CanComplete())
	assert.False(t, ServiceOrder{TrangThai: OrderInProgress}.CanStart())

	assert.False(t, ServiceOrder{TrangThai: OrderCompleted}.CanCancel())
}
