package handlers

import (
	"fmt"
	"log"
	"net/http"
	"time"

	"clinic-backend/internal/config"
	"clinic-backend/internal/models"
	"clinic-backend/pkg/utils"

	"github.com/gin-gonic/gin"
	"github.com/xuri/excelize/v2"
)

// GetDashboardStats số liệu tổng quan cho màn dashboard
// Route: GET /api/BaoCao/Dashboard
func GetDashboardStats(c *gin.Context) {
	homNay := time.Now().Format("2006-01-02")

	var tiepNhanHomNay int64
	config.DB.Model(&models.Registration{}).Where("ngay_kham = ?", homNay).Count(&tiepNhanHomNay)

	var dangCho int64
	config.DB.Model(&models.Registration{}).
		Where("ngay_kham = ? AND trang_thai = ?", homNay, models.RegChoKham).
		Count(&dangCho)

	// Doanh thu = tổng tiền các phiếu thu thành công trong ngày
	type Result struct {
		Total float64
	}
	var res Result
	config.DB.Table("payment_receipts").
		Where("trang_thai = ? AND DATE(created_at) = ?", "success", homNay).
		Select("COALESCE(SUM(amount), 0) as total"). // COALESCE để null thành 0
		Scan(&res)

	var dichVuHoatDong int64
	config.DB.Model(&models.Service{}).Where("trang_thai = ?", models.ServiceActive).Count(&dichVuHoatDong)

	utils.APIResponse(c, http.StatusOK, true, "Số liệu dashboard", gin.H{
		"tiep_nhan_hom_nay": tiepNhanHomNay,
		"dang_cho_kham":     dangCho,
		"doanh_thu_hom_nay": res.Total,
		"dich_vu_hoat_dong": dichVuHoatDong,
	})
}

type doanhThuNgay struct {
	Ngay     string  `json:"ngay"`
	SoPhieu  int64   `json:"so_phieu"`
	DoanhThu float64 `json:"doanh_thu"`
}

func layDoanhThuTheoNgay(tuNgay, denNgay string) []doanhThuNgay {
	var rows []doanhThuNgay
	config.DB.Table("payment_receipts").
		Where("trang_thai = ? AND DATE(created_at) BETWEEN ? AND ?", "success", tuNgay, denNgay).
		Select("DATE(created_at) as ngay, COUNT(*) as so_phieu, COALESCE(SUM(amount), 0) as doanh_thu").
		Group("DATE(created_at)").
		Order("ngay asc").
		Scan(&rows)
	return rows
}

// GetRevenueReport doanh thu theo ngày trong một khoảng thời gian
// Route: GET /api/BaoCao/DoanhThu?tu_ngay=&den_ngay=
func GetRevenueReport(c *gin.Context) {
	tuNgay := c.DefaultQuery("tu_ngay", time.Now().AddDate(0, 0, -30).Format("2006-01-02"))
	denNgay := c.DefaultQuery("den_ngay", time.Now().Format("2006-01-02"))

	rows := layDoanhThuTheoNgay(tuNgay, denNgay)

	utils.APIResponse(c, http.StatusOK, true, "Doanh thu theo ngày", gin.H{
		"tu_ngay":  tuNgay,
		"den_ngay": denNgay,
		"items":    rows,
	})
}

// ExportRevenueReport xuất báo cáo doanh thu ra Excel
// Route: GET /api/BaoCao/DoanhThu/Export?tu_ngay=&den_ngay=
func ExportRevenueReport(c *gin.Context) {
	tuNgay := c.DefaultQuery("tu_ngay", time.Now().AddDate(0, 0, -30).Format("2006-01-02"))
	denNgay := c.DefaultQuery("den_ngay", time.Now().Format("2006-01-02"))

	rows := layDoanhThuTheoNgay(tuNgay, denNgay)

	f := excelize.NewFile()
	sheetName := "DoanhThu"
	index, err := f.NewSheet(sheetName)
	if err != nil {
		f.Close()
		utils.APIResponse(c, http.StatusInternalServerError, false, "Không tạo được file Excel", nil)
		return
	}
	f.DeleteSheet("Sheet1")
	f.SetActiveSheet(index)

	headers := []string{"Ngày", "Số phiếu thu", "Doanh thu"}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(sheetName, cell, h)
	}
	for i, r := range rows {
		f.SetCellValue(sheetName, fmt.Sprintf("A%d", i+2), r.Ngay)
		f.SetCellValue(sheetName, fmt.Sprintf("B%d", i+2), r.SoPhieu)
		f.SetCellValue(sheetName, fmt.Sprintf("C%d", i+2), r.DoanhThu)
	}

	buf, err := f.WriteToBuffer()
	f.Close()
	if err != nil {
		log.Printf("Export doanh thu lỗi: %v", err)
		utils.APIResponse(c, http.StatusInternalServerError, false, "Không tạo được file Excel", nil)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="doanh-thu-%s-%s.xlsx"`, tuNgay, denNgay))
	c.Data(http.StatusOK, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", buf.Bytes())
}
