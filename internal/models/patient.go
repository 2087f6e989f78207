package models

import "time"

// Patient là hồ sơ bệnh nhân (contract cũ gọi là BenhNhan)
type Patient struct {
	ID            uint64 `gorm:"primaryKey" json:"id"`
	MaBenhNhan    string `gorm:"uniqueIndex;size:30" json:"ma_benh_nhan"`
	SoCCCD        string `gorm:"size:20;index" json:"so_cccd"`
	HoTen         string `gorm:"size:100;not null" json:"ho_ten"`
	HoTenKhongDau string `gorm:"size:100;index" json:"ho_ten_khong_dau"` // Để search không cần gõ dấu
	NgaySinh      string `gorm:"type:date" json:"ngay_sinh"`             // Format YYYY-MM-DD
	GioiTinh      string `gorm:"size:10" json:"gioi_tinh"`               // nam / nu / khac
	Phone         string `gorm:"size:20;index" json:"phone"`
	SoBHYT        string `gorm:"size:30" json:"so_bhyt"`
	MaDanToc      string `gorm:"size:10" json:"ma_dan_toc"`

	// Địa chỉ tách theo cấp hành chính + chuỗi gộp lại
	QuocGia     string `gorm:"size:10;default:VN" json:"quoc_gia"`
	MaTinh      string `gorm:"size:10" json:"ma_tinh"`
	MaHuyen     string `gorm:"size:10" json:"ma_huyen"`
	MaXa        string `gorm:"size:10" json:"ma_xa"`
	DiaChi      string `gorm:"size:255" json:"dia_chi"` // Số nhà, tên đường
	DiaChiDayDu string `gorm:"size:500" json:"dia_chi_day_du"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Age tính tuổi theo ngày sinh, sinh nhật chưa tới thì chưa cộng
func (p Patient) Age(now time.Time) int {
	dob, err := time.Parse("2006-01-02", p.NgaySinh)
	if err != nil {
		return 0
	}
	age := now.Year() - dob.Year()
	if now.YearDay() < dob.YearDay() {
		age--
	}
	if age < 0 {
		return 0
	}
	return age
}

// TenHienThi format tên kèm mã để hiện trong danh sách chọn
func (p Patient) TenHienThi() string {
	if p.MaBenhNhan == "" {
		return p.HoTen
	}
	return p.HoTen + " (" + p.MaBenhNhan + ")"
}

type CreatePatientInput struct {
	SoCCCD      string `json:"so_cccd"`
	HoTen       string `json:"ho_ten" binding:"required"`
	NgaySinh    string `json:"ngay_sinh" binding:"required"`
	GioiTinh    string `json:"gioi_tinh" binding:"required,oneof=nam nu khac"`
	Phone       string `json:"phone" binding:"required"`
	SoBHYT      string `json:"so_bhyt"`
	MaDanToc    string `json:"ma_dan_toc"`
	QuocGia     string `json:"quoc_gia"`
	MaTinh      string `json:"ma_tinh"`
	MaHuyen     string `json:"ma_huyen"`
	MaXa        string `json:"ma_xa"`
	DiaChi      string `json:"dia_chi"`
	DiaChiDayDu string `json:"dia_chi_day_du"`
}
