package models

import "time"

// Trạng thái lượt khám
const (
	RegChoKham  = "cho-kham"
	RegDangKham = "dang-kham"
	RegDaKham   = "da-kham"
)

// Registration là một lượt tiếp nhận khám (contract cũ gọi là TiepNhan)
type Registration struct {
	ID         uint64 `gorm:"primaryKey" json:"id"`
	MaTiepNhan string `gorm:"uniqueIndex;size:30" json:"ma_tiep_nhan"`
	PatientID  uint64 `gorm:"not null;index" json:"patient_id"`

	Khoa       string  `gorm:"size:100" json:"khoa"`
	Phong      string  `gorm:"size:50" json:"phong"`
	BacSiID    *uint64 `json:"bac_si_id"` // Pointer vì có thể chưa chọn bác sĩ
	NgayKham   string  `gorm:"type:date" json:"ngay_kham"`
	GioKham    string  `gorm:"size:10" json:"gio_kham"`
	TrieuChung string  `gorm:"type:text" json:"trieu_chung"`
	TrangThai  string  `gorm:"size:20;default:cho-kham" json:"trang_thai"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Preload để trả data đầy đủ một lần
	Patient Patient        `gorm:"foreignKey:PatientID" json:"patient"`
	BacSi   *User          `gorm:"foreignKey:BacSiID" json:"bac_si,omitempty"`
	Orders  []ServiceOrder `gorm:"foreignKey:RegistrationID" json:"orders,omitempty"`
}

// ===== Payload POST /api/TiepNhan =====
// Giữ nguyên tên field theo contract frontend cũ (benhNhan, lichKham, lstClsYeuCau)

type TiepNhanPayload struct {
	BenhNhan     BenhNhanPayload `json:"benhNhan" binding:"required"`
	LichKham     LichKhamPayload `json:"lichKham" binding:"required"`
	LstClsYeuCau []ClsYeuCau     `json:"lstClsYeuCau"`
}

type BenhNhanPayload struct {
	MaBenhNhan  string `json:"maBenhNhan"` // Có sẵn = bệnh nhân cũ, rỗng = tạo mới
	TenBenhNhan string `json:"tenBenhNhan"`
	NgaySinh    string `json:"ngaySinh"`
	GioiTinh    string `json:"gioiTinh"`
	SoDienThoai string `json:"soDienThoai"`
	SoCCCD      string `json:"soCCCD"`
	SoBHYT      string `json:"soBHYT"`
	MaDanToc    string `json:"maDanToc"`
	QuocGia     string `json:"quocGia"`
	MaTinh      string `json:"maTinh"`
	MaHuyen     string `json:"maHuyen"`
	MaXa        string `json:"maXa"`
	DiaChi      string `json:"diaChi"`
	DiaChiDayDu string `json:"diaChiDayDu"`
}

type LichKhamPayload struct {
	Khoa       string `json:"khoa"`
	Phong      string `json:"phong"`
	BacSiID    uint64 `json:"bacSiId"`
	NgayKham   string `json:"ngayKham"`
	GioKham    string `json:"gioKham"`
	TrieuChung string `json:"trieuChung"`
}

type ClsYeuCau struct {
	DichVuID uint64 `json:"dichVuId"`
	MaDichVu string `json:"maDichVu"`
	DoUuTien string `json:"doUuTien"`
	GhiChu   string `json:"ghiChu"`
}
