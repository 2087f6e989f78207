package models

import (
	"time"

	"gorm.io/gorm"
)

// Role nhân viên trong hệ thống
const (
	RoleAdmin    uint = 1
	RoleThuNgan  uint = 2
	RoleBacSi    uint = 3
	RoleTiepNhan uint = 4
)

// User là tài khoản nhân viên (admin, thu ngân, bác sĩ, nhân viên tiếp nhận)
type User struct {
	ID           uint64         `gorm:"primaryKey" json:"id"`
	RoleID       uint           `gorm:"not null" json:"role_id"`
	FullName     string         `gorm:"size:100;not null" json:"full_name"`
	Email        string         `gorm:"uniqueIndex;size:100;not null" json:"email"`
	PasswordHash string         `gorm:"not null" json:"-"` // json:"-" để không lộ hash ra ngoài
	Phone        string         `gorm:"column:phone_number;size:20" json:"phone"`
	BranchID     uint           `gorm:"default:1" json:"branch_id"` // Chi nhánh / cơ sở
	ChuyenKhoa   string         `gorm:"size:100" json:"chuyen_khoa"` // Chỉ dùng cho bác sĩ
	FCMToken     string         `gorm:"size:255" json:"-"`
	IsActive     bool           `gorm:"default:true" json:"is_active"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`
}

type RegisterInput struct {
	FullName   string `json:"full_name" binding:"required"`
	Email      string `json:"email" binding:"required,email"`
	Password   string `json:"password" binding:"required,min=6"`
	RoleID     uint   `json:"role_id" binding:"required,oneof=1 2 3 4"`
	Phone      string `json:"phone"`
	BranchID   uint   `json:"branch_id"`
	ChuyenKhoa string `json:"chuyen_khoa"`
}

type LoginInput struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
	FCMToken string `json:"fcm_token"`
}
