package config

import (
	"fmt"
	"log"
	"os"

	"clinic-backend/internal/models"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"
)

// DB là kết nối dùng chung cho toàn bộ handler
var DB *gorm.DB

func ConnectDB() {
	// Lấy thông tin kết nối từ .env
	user := getEnv("DB_USER", "root")
	pass := os.Getenv("DB_PASSWORD")
	host := getEnv("DB_HOST", "127.0.0.1")
	port := getEnv("DB_PORT", "3306")
	name := getEnv("DB_NAME", "clinic")

	dsn := fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=True&loc=Local",
		user, pass, host, port, name)

	var err error
	DB, err = gorm.Open(mysql.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatalf("Không kết nối được MySQL: %v", err)
	}

	// Tự tạo bảng khi chạy lần đầu
	err = DB.AutoMigrate(
		&models.User{},
		&models.Patient{},
		&models.Service{},
		&models.Registration{},
		&models.ServiceOrder{},
		&models.Invoice{},
		&models.PaymentReceipt{},
		&models.ExamRecord{},
		&models.AdminUnit{},
		&models.Ethnicity{},
	)
	if err != nil {
		log.Fatalf("AutoMigrate lỗi: %v", err)
	}

	log.Println("Kết nối MySQL thành công")
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
