package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInvoiceStatus(t *testing.T) {
	tests := []struct {
		name string
		paid float64
		want string
	}{
		{"chưa thu", 0, InvoicePending},
		{"thu một phần", 200000, InvoicePartial},
		{"thu đủ", 420000, InvoicePaid},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			iv := Invoice{Total: 420000, Paid: tt.paid}
			assert.Equal(t, tt.want, iv.Status())
		})
	}
}

func TestApplyPaymentDungBangSoConLai(t *testing.T) {
	// Kịch bản hay gặp ở quầy: thu nốt phần còn lại
	iv := Invoice{Total: 420000, Paid: 200000}

	require.NoError(t, iv.ApplyPayment(220000))
	assert.Zero(t, iv.Remaining())
	assert.Equal(t, InvoicePaid, iv.Status())
}

func TestApplyPaymentSoTienXau(t *testing.T) {
	iv := Invoice{Total: 420000, Paid: 200000}

	assert.ErrorIs(t, iv.ApplyPayment(0), ErrSoTienKhongHopLe)
	assert.ErrorIs(t, iv.ApplyPayment(-50000), ErrSoTienKhongHopLe)
	assert.ErrorIs(t, iv.ApplyPayment(220001), ErrVuotSoTienConLai)
	assert.Equal(t, float64(200000), iv.Paid, "hoá đơn không đổi khi bị từ chối")
}

func TestApplyPaymentNhieuLan(t *testing.T) {
	iv := Invoice{Total: 300000}

	require.NoError(t, iv.ApplyPayment(100000))
	require.NoError(t, iv.ApplyPayment(100000))
	assert.Equal(t, InvoicePartial, iv.Status())

	require.NoError(t, iv.ApplyPayment(100000))
	assert.Equal(t, InvoicePaid, iv.Status())

	// Đã thu đủ: mọi khoản thêm đều bị chặn
	assert.ErrorIs(t, iv.ApplyPayment(1), ErrVuotSoTienConLai)
}
