package main

import (
	"fmt"
	"log"
	"time"

	"clinic-backend/internal/config"
	"clinic-backend/internal/models"
	"clinic-backend/pkg/utils"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/joho/godotenv"
)

// Seed dữ liệu demo: tài khoản, danh mục dịch vụ, đơn vị hành chính mẫu,
// dân tộc và một mớ bệnh nhân giả để test màn tìm kiếm.
func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("Không thấy file .env, dùng biến môi trường hệ thống")
	}

	config.ConnectDB()
	gofakeit.Seed(time.Now().UnixNano())

	seedUsers()
	seedAdminUnits()
	seedEthnicities()
	seedServices()
	seedPatients(200)

	log.Println("Seed xong")
}

func seedUsers() {
	users := []struct {
		fullName   string
		email      string
		roleID     uint
		chuyenKhoa string
	}{
		{"Quản trị hệ thống", "admin@clinic.local", models.RoleAdmin, ""},
		{"Trần Thị Thu", "thungan@clinic.local", models.RoleThuNgan, ""},
		{"BS. Lê Văn Minh", "bs.minh@clinic.local", models.RoleBacSi, "Nội tổng quát"},
		{"BS. Phạm Thị Hoa", "bs.hoa@clinic.local", models.RoleBacSi, "Tai mũi họng"},
		{"Nguyễn Văn Quầy", "tiepnhan@clinic.local", models.RoleTiepNhan, ""},
	}

	hash, _ := utils.HashPassword("123456") // Mật khẩu demo, nhớ đổi trước khi lên prod
	for _, u := range users {
		user := models.User{
			FullName:     u.fullName,
			Email:        u.email,
			PasswordHash: hash,
			RoleID:       u.roleID,
			Phone:        "09" + gofakeit.DigitN(8),
			BranchID:     1,
			ChuyenKhoa:   u.chuyenKhoa,
			IsActive:     true,
		}
		config.DB.Where(models.User{Email: u.email}).FirstOrCreate(&user)
	}
	log.Println("Seed tài khoản: xong")
}

func seedAdminUnits() {
	type unit struct {
		cap   int
		ma    string
		ten   string
		maCha string
	}

	units := []unit{
		{models.CapQuocGia, "VN", "Việt Nam", ""},
		{models.CapTinh, "01", "Hà Nội", "VN"},
		{models.CapTinh, "79", "TP. Hồ Chí Minh", "VN"},
		{models.CapTinh, "48", "Đà Nẵng", "VN"},
		{models.CapHuyen, "001", "Ba Đình", "01"},
		{models.CapHuyen, "002", "Hoàn Kiếm", "01"},
		{models.CapHuyen, "760", "Quận 1", "79"},
		{models.CapHuyen, "770", "Quận 3", "79"},
		{models.CapHuyen, "490", "Hải Châu", "48"},
		{models.CapXa, "00001", "Phúc Xá", "001"},
		{models.CapXa, "00004", "Trúc Bạch", "001"},
		{models.CapXa, "00037", "Hàng Bạc", "002"},
		{models.CapXa, "26734", "Bến Nghé", "760"},
		{models.CapXa, "26740", "Bến Thành", "760"},
		{models.CapXa, "27154", "Võ Thị Sáu", "770"},
		{models.CapXa, "20254", "Thạch Thang", "490"},
	}

	for _, u := range units {
		row := models.AdminUnit{Cap: u.cap, Ma: u.ma, Ten: u.ten, MaCha: u.maCha}
		config.DB.Where(models.AdminUnit{Ma: u.ma}).FirstOrCreate(&row)
	}
	log.Println("Seed đơn vị hành chính: xong")
}

func seedEthnicities() {
	list := []models.Ethnicity{
		{Ma: "01", Ten: "Kinh"},
		{Ma: "02", Ten: "Tày"},
		{Ma: "03", Ten: "Thái"},
		{Ma: "04", Ten: "Hoa"},
		{Ma: "05", Ten: "Khơ-me"},
		{Ma: "06", Ten: "Mường"},
	}
	for _, e := range list {
		row := e
		config.DB.Where(models.Ethnicity{Ma: e.Ma}).FirstOrCreate(&row)
	}
	log.Println("Seed dân tộc: xong")
}

func seedServices() {
	services := []models.Service{
		{MaDichVu: "XN001", TenDichVu: "Xét nghiệm công thức máu", Nhom: "xet-nghiem", Khoa: "Khoa Xét Nghiệm", DonViTinh: "lần", GiaDichVu: 120000, GiaBaoHiem: 90000},
		{MaDichVu: "XN002", TenDichVu: "Xét nghiệm đường huyết", Nhom: "xet-nghiem", Khoa: "Khoa Xét Nghiệm", DonViTinh: "lần", GiaDichVu: 80000, GiaBaoHiem: 60000},
		{MaDichVu: "XN003", TenDichVu: "Xét nghiệm nước tiểu", Nhom: "xet-nghiem", Khoa: "Khoa Xét Nghiệm", DonViTinh: "lần", GiaDichVu: 70000, GiaBaoHiem: 50000},
		{MaDichVu: "CDHA001", TenDichVu: "Chụp X-quang ngực thẳng", Nhom: "cdha", Khoa: "Chẩn Đoán Hình Ảnh", DonViTinh: "lần", GiaDichVu: 150000, GiaBaoHiem: 100000},
		{MaDichVu: "CDHA002", TenDichVu: "Siêu âm ổ bụng", Nhom: "cdha", Khoa: "Chẩn Đoán Hình Ảnh", DonViTinh: "lần", GiaDichVu: 200000, GiaBaoHiem: 150000},
		{MaDichVu: "KB001", TenDichVu: "Khám nội tổng quát", Nhom: "kham", Khoa: "Khoa Khám Bệnh", DonViTinh: "lượt", GiaDichVu: 100000, GiaBaoHiem: 70000},
		{MaDichVu: "KB002", TenDichVu: "Khám tai mũi họng", Nhom: "kham", Khoa: "Khoa Khám Bệnh", DonViTinh: "lượt", GiaDichVu: 100000, GiaBaoHiem: 70000},
	}

	for _, s := range services {
		row := s
		row.TenKhongDau = utils.BoDau(s.TenDichVu)
		row.TrangThai = models.ServiceActive
		config.DB.Where(models.Service{MaDichVu: s.MaDichVu}).FirstOrCreate(&row)
	}
	log.Println("Seed danh mục dịch vụ: xong")
}

func seedPatients(count int) {
	ho := []string{"Nguyễn", "Trần", "Lê", "Phạm", "Hoàng", "Vũ", "Đặng", "Bùi", "Đỗ", "Hồ"}
	demNam := []string{"Văn An", "Hữu Bình", "Minh Cường", "Quốc Dũng", "Thanh Hải", "Đức Long"}
	demNu := []string{"Thị Anh", "Ngọc Bích", "Thu Cúc", "Thuỳ Dung", "Thanh Hằng", "Kim Liên"}

	log.Printf("Seed %d bệnh nhân giả...", count)
	for i := 0; i < count; i++ {
		gioiTinh := "nam"
		dem := demNam
		if gofakeit.Bool() {
			gioiTinh = "nu"
			dem = demNu
		}
		hoTen := fmt.Sprintf("%s %s", ho[gofakeit.Number(0, len(ho)-1)], dem[gofakeit.Number(0, len(dem)-1)])
		ngaySinh := gofakeit.DateRange(
			time.Date(1940, 1, 1, 0, 0, 0, 0, time.UTC),
			time.Date(2020, 12, 31, 0, 0, 0, 0, time.UTC),
		).Format("2006-01-02")

		patient := models.Patient{
			MaBenhNhan:    fmt.Sprintf("BN-SEED%04d", i),
			HoTen:         hoTen,
			HoTenKhongDau: utils.BoDau(hoTen),
			NgaySinh:      ngaySinh,
			GioiTinh:      gioiTinh,
			Phone:         "09" + gofakeit.DigitN(8),
			SoCCCD:        gofakeit.DigitN(12),
			MaDanToc:      "01",
			QuocGia:       "VN",
		}
		config.DB.Where(models.Patient{MaBenhNhan: patient.MaBenhNhan}).FirstOrCreate(&patient)
	}
	log.Println("Seed bệnh nhân: xong")
}
