package models

import (
	"errors"
	"time"
)

// Trạng thái hoá đơn suy ra từ số tiền, không lưu cột riêng:
// chưa thu đồng nào = pending, thu một phần = partial, đủ = paid
const (
	InvoicePending = "pending"
	InvoicePartial = "partial"
	InvoicePaid    = "paid"
)

// Hình thức thanh toán
const (
	PayTienMat = "tienmat"
	PayThe     = "the" // Thẻ / ví điện tử, đi qua cổng thanh toán
	PayVietQR  = "vietqr"
)

var (
	ErrSoTienKhongHopLe = errors.New("số tiền thanh toán phải lớn hơn 0")
	ErrVuotSoTienConLai = errors.New("số tiền thanh toán vượt quá số còn phải thu")
)

// Invoice là hoá đơn của một lượt tiếp nhận (tổng tiền các chỉ định)
type Invoice struct {
	ID             uint64  `gorm:"primaryKey" json:"id"`
	SoHoaDon       string  `gorm:"uniqueIndex;size:30" json:"so_hoa_don"`
	PatientID      uint64  `gorm:"not null;index" json:"patient_id"`
	RegistrationID uint64  `gorm:"not null;index" json:"registration_id"`
	Total          float64 `gorm:"not null" json:"total"`
	Paid           float64 `gorm:"default:0" json:"paid"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Patient  Patient          `gorm:"foreignKey:PatientID" json:"patient"`
	Receipts []PaymentReceipt `gorm:"foreignKey:InvoiceID" json:"receipts,omitempty"`
}

func (iv Invoice) Remaining() float64 { return iv.Total - iv.Paid }

func (iv Invoice) Status() string {
	switch {
	case iv.Paid <= 0:
		return InvoicePending
	case iv.Paid < iv.Total:
		return InvoicePartial
	default:
		return InvoicePaid
	}
}

// ApplyPayment cộng tiền vào hoá đơn sau khi đã qua kiểm tra:
// số tiền phải > 0 và không vượt số còn lại (bằng đúng số còn lại thì OK)
func (iv *Invoice) ApplyPayment(amount float64) error {
	if amount <= 0 {
		return ErrSoTienKhongHopLe
	}
	if amount > iv.Remaining() {
		return ErrVuotSoTienConLai
	}
	iv.Paid += amount
	return nil
}

// PaymentReceipt là một phiếu thu (một lần bấm xác nhận thanh toán)
type PaymentReceipt struct {
	ID         uint64  `gorm:"primaryKey" json:"id"`
	InvoiceID  uint64  `gorm:"not null;index" json:"invoice_id"`
	SoPhieu    string  `gorm:"uniqueIndex;size:30" json:"so_phieu"`
	Amount     float64 `gorm:"not null" json:"amount"`
	Method     string  `gorm:"size:20;not null" json:"method"` // tienmat / the / vietqr
	GatewayRef string  `gorm:"size:100" json:"gateway_ref"`    // Order ID bên cổng thanh toán (nếu có)
	TrangThai  string  `gorm:"size:20;default:success" json:"trang_thai"`

	CreatedAt time.Time `json:"created_at"`
}
