package models

import (
	"encoding/json"
	"time"
)

// ExamRecord là phiếu khám của bác sĩ cho một lượt tiếp nhận:
// sinh hiệu lưu dạng JSON, kết luận dạng text
type ExamRecord struct {
	ID             uint64    `gorm:"primaryKey" json:"id"`
	RegistrationID uint64    `gorm:"not null;index" json:"registration_id"`
	BacSiID        uint64    `gorm:"not null" json:"bac_si_id"`
	LoggedAt       time.Time `gorm:"autoCreateTime" json:"logged_at"`

	VitalsData json.RawMessage `gorm:"type:json" json:"vitals_data"`
	KetLuan    string          `gorm:"type:text" json:"ket_luan"`

	Registration *Registration `gorm:"foreignKey:RegistrationID" json:"registration,omitempty"`
}

// VitalsDetail là struct phụ để đọc/ghi cột JSON
type VitalsDetail struct {
	Mach    string `json:"mach"`     // lần/phút
	NhietDo string `json:"nhiet_do"` // độ C
	HuyetAp string `json:"huyet_ap"` // "120/80"
	CanNang string `json:"can_nang"` // kg
}
