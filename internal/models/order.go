package models

import (
	"errors"
	"time"
)

// Vòng đời chỉ định cận lâm sàng: pending -> in-progress -> completed,
// huỷ chỉ được phép khi còn pending. Một chiều, không quay lui.
const (
	OrderPending    = "pending"
	OrderInProgress = "in-progress"
	OrderCompleted  = "completed"
	OrderCancelled  = "cancelled"
)

var ErrChuyenTrangThai = errors.New("chuyển trạng thái chỉ định không hợp lệ")

// ServiceOrder là một chỉ định dịch vụ gắn vào lượt tiếp nhận
// (xét nghiệm, chụp chiếu... kèm độ ưu tiên và ghi chú)
type ServiceOrder struct {
	ID             uint64  `gorm:"primaryKey" json:"id"`
	RegistrationID uint64  `gorm:"not null;index" json:"registration_id"`
	ServiceID      uint64  `gorm:"not null" json:"service_id"`
	MaDichVu       string  `gorm:"size:30" json:"ma_dich_vu"`
	TenDichVu      string  `gorm:"size:200" json:"ten_dich_vu"` // Snapshot lúc chỉ định, đổi tên danh mục không ảnh hưởng
	Gia            float64 `json:"gia"`                         // Snapshot giá
	DoUuTien       string  `gorm:"size:50;default:thuong" json:"do_uu_tien"`
	GhiChu         string  `gorm:"type:text" json:"ghi_chu"`
	TrangThai      string  `gorm:"size:20;default:pending" json:"trang_thai"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Service *Service `gorm:"foreignKey:ServiceID" json:"service,omitempty"`
}

func (o ServiceOrder) CanStart() bool    { return o.TrangThai == OrderPending }
func (o ServiceOrder) CanComplete() bool { return o.TrangThai == OrderInProgress }
func (o ServiceOrder) CanCancel() bool   { return o.TrangThai == OrderPending }

// Transition đổi trạng thái theo đúng vòng đời một chiều ở trên
func (o *ServiceOrder) Transition(next string) error {
	ok := false
	switch next {
	case OrderInProgress:
		ok = o.CanStart()
	case OrderCompleted:
		ok = o.CanComplete()
	case OrderCancelled:
		ok = o.CanCancel()
	}
	if !ok {
		return ErrChuyenTrangThai
	}
	o.TrangThai = next
	return nil
}
