package handlers

import (
	"fmt"
	"log"
	"net/http"
	"strconv"

	"clinic-backend/internal/config"
	"clinic-backend/internal/models"
	"clinic-backend/pkg/utils"

	"github.com/gin-gonic/gin"
	"github.com/xuri/excelize/v2"
)

// Thứ tự cột file Excel danh mục dịch vụ, dùng chung cho cả export lẫn import
var serviceExcelHeader = []string{
	"Mã dịch vụ",
	"Tên dịch vụ",
	"Nhóm",
	"Khoa",
	"Đơn vị tính",
	"Giá dịch vụ",
	"Giá bảo hiểm",
	"Giá tối thiểu",
	"Giá tối đa",
	"Trạng thái",
}

// ExportServices xuất danh mục ra Excel, tôn trọng đúng bộ lọc đang chọn trên màn hình
// Route: GET /api/DichVu/Export
func ExportServices(c *gin.Context) {
	var q models.ServiceQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		utils.APIResponse(c, http.StatusBadRequest, false, "Bộ lọc không hợp lệ", err.Error())
		return
	}

	var services []models.Service
	buildServiceQuery(q).Order("ma_dich_vu asc").Find(&services)

	data, err := GenerateServiceExcel(services)
	if err != nil {
		log.Printf("Export dịch vụ lỗi: %v", err)
		utils.APIResponse(c, http.StatusInternalServerError, false, "Không tạo được file Excel", nil)
		return
	}

	c.Header("Content-Disposition", `attachment; filename="danh-muc-dich-vu.xlsx"`)
	c.Data(http.StatusOK, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", data)
}

// GenerateServiceExcel dựng file xlsx từ danh sách dịch vụ
func GenerateServiceExcel(services []models.Service) ([]byte, error) {
	f := excelize.NewFile()
	// Không defer Close ở đây vì WriteToBuffer cần file còn mở

	sheetName := "DichVu"
	index, err := f.NewSheet(sheetName)
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("tạo sheet lỗi: %w", err)
	}
	f.DeleteSheet("Sheet1")
	f.SetActiveSheet(index)

	// Header in đậm có nền cho dễ nhìn
	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{
			Type:    "pattern",
			Color:   []string{"#E6F3FF"},
			Pattern: 1,
		},
	})
	if err != nil {
		f.Close()
		return nil, err
	}

	for i, h := range serviceExcelHeader {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(sheetName, cell, h)
		f.SetCellStyle(sheetName, cell, cell, headerStyle)
	}

	for i, s := range services {
		row := i + 2
		values := []interface{}{
			s.MaDichVu, s.TenDichVu, s.Nhom, s.Khoa, s.DonViTinh,
			s.GiaDichVu, s.GiaBaoHiem, s.GiaMin, s.GiaMax, s.TrangThai,
		}
		for j, v := range values {
			cell, _ := excelize.CoordinatesToCellName(j+1, row)
			f.SetCellValue(sheetName, cell, v)
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		f.Close()
		return nil, err
	}
	f.Close()
	return buf.Bytes(), nil
}

// ImportServices nhập danh mục từ file Excel upload lên.
// Mã dịch vụ đã có thì cập nhật, chưa có thì tạo mới. Dòng lỗi bỏ qua và đếm lại.
// Route: POST /api/DichVu/Import (multipart, field "file")
func ImportServices(c *gin.Context) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		utils.APIResponse(c, http.StatusBadRequest, false, "Thiếu file upload", nil)
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		utils.APIResponse(c, http.StatusBadRequest, false, "Không đọc được file", nil)
		return
	}
	defer file.Close()

	f, err := excelize.OpenReader(file)
	if err != nil {
		utils.APIResponse(c, http.StatusBadRequest, false, "File không phải định dạng Excel hợp lệ", nil)
		return
	}
	defer f.Close()

	rows, err := f.GetRows("DichVu")
	if err != nil || len(rows) < 2 {
		utils.APIResponse(c, http.StatusBadRequest, false, "File không có dữ liệu (cần sheet DichVu, dòng đầu là tiêu đề)", nil)
		return
	}

	var created, updated, skipped int
	for _, row := range rows[1:] { // Bỏ dòng tiêu đề
		if len(row) < 2 || row[0] == "" || row[1] == "" {
			skipped++
			continue
		}

		s := models.Service{
			MaDichVu:    row[0],
			TenDichVu:   row[1],
			TenKhongDau: utils.BoDau(row[1]),
			TrangThai:   models.ServiceActive,
		}
		if len(row) > 2 {
			s.Nhom = row[2]
		}
		if len(row) > 3 {
			s.Khoa = row[3]
		}
		if len(row) > 4 {
			s.DonViTinh = row[4]
		}
		s.GiaDichVu = parseGia(row, 5)
		s.GiaBaoHiem = parseGia(row, 6)
		s.GiaMin = parseGia(row, 7)
		s.GiaMax = parseGia(row, 8)
		if len(row) > 9 && (row[9] == models.ServiceActive || row[9] == models.ServicePaused) {
			s.TrangThai = row[9]
		}

		var cu models.Service
		if err := config.DB.Where("ma_dich_vu = ?", s.MaDichVu).First(&cu).Error; err == nil {
			s.ID = cu.ID
			s.CreatedAt = cu.CreatedAt
			if err := config.DB.Save(&s).Error; err != nil {
				skipped++
				continue
			}
			updated++
		} else {
			if err := config.DB.Create(&s).Error; err != nil {
				skipped++
				continue
			}
			created++
		}
	}

	utils.APIResponse(c, http.StatusOK, true, "Import danh mục hoàn tất", gin.H{
		"created": created,
		"updated": updated,
		"skipped": skipped,
	})
}

func parseGia(row []string, idx int) float64 {
	if len(row) <= idx || row[idx] == "" {
		return 0
	}
	v, err := strconv.ParseFloat(row[idx], 64)
	if err != nil || v < 0 {
		return 0
	}
	return v
}
