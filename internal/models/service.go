package models

import (
	"strings"
	"time"
)

// Trạng thái dịch vụ trong danh mục
const (
	ServiceActive = "active"
	ServicePaused = "paused"
)

// Service là một dịch vụ trong danh mục (contract cũ gọi là DichVu):
// xét nghiệm, chẩn đoán hình ảnh, khám chuyên khoa...
type Service struct {
	ID          uint64 `gorm:"primaryKey" json:"id"`
	MaDichVu    string `gorm:"uniqueIndex;size:30;not null" json:"ma_dich_vu"`
	TenDichVu   string `gorm:"size:200;not null" json:"ten_dich_vu"`
	TenKhongDau string `gorm:"size:200;index" json:"ten_khong_dau"`
	Nhom        string `gorm:"size:30;index" json:"nhom"` // xet-nghiem, cdha, kham...
	Khoa        string `gorm:"size:100" json:"khoa"`
	DonViTinh   string `gorm:"size:30" json:"don_vi_tinh"`

	GiaDichVu  float64 `gorm:"default:0" json:"gia_dich_vu"`
	GiaBaoHiem float64 `gorm:"default:0" json:"gia_bao_hiem"`
	GiaMin     float64 `gorm:"default:0" json:"gia_min"`
	GiaMax     float64 `gorm:"default:0" json:"gia_max"`

	TrangThai string    `gorm:"size:20;default:active" json:"trang_thai"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type ServiceInput struct {
	MaDichVu   string  `json:"ma_dich_vu" binding:"required"`
	TenDichVu  string  `json:"ten_dich_vu" binding:"required"`
	Nhom       string  `json:"nhom" binding:"required"`
	Khoa       string  `json:"khoa"`
	DonViTinh  string  `json:"don_vi_tinh"`
	GiaDichVu  float64 `json:"gia_dich_vu" binding:"min=0"`
	GiaBaoHiem float64 `json:"gia_bao_hiem" binding:"min=0"`
	GiaMin     float64 `json:"gia_min" binding:"min=0"`
	GiaMax     float64 `json:"gia_max" binding:"min=0"`
	TrangThai  string  `json:"trang_thai" binding:"omitempty,oneof=active paused"`
}

// ServiceQuery gom toàn bộ điều kiện lọc danh mục.
// Cả màn danh sách lẫn màn tìm kiếm nâng cao đều đi qua đúng một struct này,
// tránh chuyện hai đường lọc cho ra kết quả khác nhau.
type ServiceQuery struct {
	Keyword   string   `form:"keyword"`
	Nhom      string   `form:"nhom"`
	Khoa      string   `form:"khoa"`
	TrangThai string   `form:"trang_thai"`
	GiaTu     *float64 `form:"gia_tu"`
	GiaDen    *float64 `form:"gia_den"`
	TuNgay    string   `form:"tu_ngay"`  // Lọc theo ngày tạo, YYYY-MM-DD
	DenNgay   string   `form:"den_ngay"`
	Page      int      `form:"page"`
	PageSize  int      `form:"page_size"`
}

// Matches kiểm tra một dịch vụ có khớp bộ lọc không.
// Keyword so khớp substring không phân biệt hoa thường trên mã + tên + tên không dấu.
func (s Service) Matches(q ServiceQuery) bool {
	if q.Keyword != "" {
		kw := strings.ToLower(q.Keyword)
		gop := strings.ToLower(s.MaDichVu + " " + s.TenDichVu + " " + s.TenKhongDau)
		if !strings.Contains(gop, kw) {
			return false
		}
	}
	if q.Nhom != "" && s.Nhom != q.Nhom {
		return false
	}
	if q.Khoa != "" && s.Khoa != q.Khoa {
		return false
	}
	if q.TrangThai != "" && s.TrangThai != q.TrangThai {
		return false
	}
	if q.GiaTu != nil && s.GiaDichVu < *q.GiaTu {
		return false
	}
	if q.GiaDen != nil && s.GiaDichVu > *q.GiaDen {
		return false
	}
	if q.TuNgay != "" {
		if t, err := time.Parse("2006-01-02", q.TuNgay); err == nil && s.CreatedAt.Before(t) {
			return false
		}
	}
	if q.DenNgay != "" {
		if t, err := time.Parse("2006-01-02", q.DenNgay); err == nil && s.CreatedAt.After(t.AddDate(0, 0, 1)) {
			return false
		}
	}
	return true
}

// LocDichVu lọc một danh sách đã fetch sẵn (dùng cho export và test)
func LocDichVu(list []Service, q ServiceQuery) []Service {
	out := make([]Service, 0, len(list))
	for _, s := range list {
		if s.Matches(q) {
			out = append(out, s)
		}
	}
	return out
}
