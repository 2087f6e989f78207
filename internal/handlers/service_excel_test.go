package handlers

import (
	"bytes"
	"testing"

	"clinic-backend/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func TestGenerateServiceExcel(t *testing.T) {
	services := []models.Service{
		{MaDichVu: "XN001", TenDichVu: "Xét nghiệm công thức máu", Nhom: "xet-nghiem", Khoa: "Khoa Xét Nghiệm", DonViTinh: "lần", GiaDichVu: 120000, GiaBaoHiem: 90000, TrangThai: models.ServiceActive},
		{MaDichVu: "CDHA002", TenDichVu: "Siêu âm ổ bụng", Nhom: "cdha", Khoa: "Chẩn Đoán Hình Ảnh", DonViTinh: "lần", GiaDichVu: 200000, TrangThai: models.ServicePaused},
	}

	data, err := GenerateServiceExcel(services)
	require.NoError(t, err)
	require.NotEmpty(t, data)

	// Mở lại file vừa sinh, kiểm tra đúng shape mà ImportServices đọc vào
	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows("DichVu")
	require.NoError(t, err)
	require.Len(t, rows, 3, "1 dòng tiêu đề + 2 dòng dữ liệu")

	assert.Equal(t, serviceExcelHeader, rows[0])
	assert.Equal(t, "XN001", rows[1][0])
	assert.Equal(t, "Xét nghiệm công thức máu", rows[1][1])
	assert.Equal(t, "120000", rows[1][5])
	assert.Equal(t, models.ServiceActive, rows[1][9])
	assert.Equal(t, "CDHA002", rows[2][0])
	assert.Equal(t, models.ServicePaused, rows[2][9])
}

func TestGenerateServiceExcelRong(t *testing.T) {
	data, err := GenerateServiceExcel(nil)
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows("DichVu")
	require.NoError(t, err)
	require.Len(t, rows, 1, "chỉ còn dòng tiêu đề")
}

func TestParseGia(t *testing.T) {
	row := []string{"XN001", "Tên", "nhom", "khoa", "lần", "120000", "abc", "-5"}

	assert.Equal(t, float64(120000), parseGia(row, 5))
	assert.Zero(t, parseGia(row, 6), "không phải số thì về 0")
	assert.Zero(t, parseGia(row, 7), "giá âm thì về 0")
	assert.Zero(t, parseGia(row, 9), "thiếu cột thì về 0")
}
