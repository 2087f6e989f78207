package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func danhMucMau() []Service {
	return []Service{
		{ID: 1, MaDichVu: "XN001", TenDichVu: "Xét nghiệm công thức máu", TenKhongDau: "Xet nghiem cong thuc mau", Nhom: "xet-nghiem", Khoa: "Khoa Xét Nghiệm", GiaDichVu: 120000, TrangThai: ServiceActive},
		{ID: 2, MaDichVu: "CDHA002", TenDichVu: "Siêu âm ổ bụng", TenKhongDau: "Sieu am o bung", Nhom: "cdha", Khoa: "Chẩn Đoán Hình Ảnh", GiaDichVu: 200000, TrangThai: ServiceActive},
		{ID: 3, MaDichVu: "XN009", TenDichVu: "Xét nghiệm HbA1c", TenKhongDau: "Xet nghiem HbA1c", Nhom: "xet-nghiem", Khoa: "Khoa Xét Nghiệm", GiaDichVu: 250000, TrangThai: ServicePaused},
	}
}

func TestLocTheoTrangThai(t *testing.T) {
	got := LocDichVu(danhMucMau(), ServiceQuery{TrangThai: ServiceActive})

	require.Len(t, got, 2)
	for _, s := range got {
		assert.Equal(t, ServiceActive, s.TrangThai)
	}
}

func TestLocTheoKeyword(t *testing.T) {
	list := danhMucMau()

	// Keyword khớp cả tên có dấu lẫn tên không dấu, không phân biệt hoa thường
	assert.Len(t, LocDichVu(list, ServiceQuery{Keyword: "xét nghiệm"}), 2)
	assert.Len(t, LocDichVu(list, ServiceQuery{Keyword: "xet nghiem"}), 2)
	assert.Len(t, LocDichVu(list, ServiceQuery{Keyword: "SIEU AM"}), 1)
	assert.Len(t, LocDichVu(list, ServiceQuery{Keyword: "cdha002"}), 1)
	assert.Empty(t, LocDichVu(list, ServiceQuery{Keyword: "noi soi"}))
}

func TestLocTheoKhoangGia(t *testing.T) {
	tu, den := 150000.0, 220000.0
	got := LocDichVu(danhMucMau(), ServiceQuery{GiaTu: &tu, GiaDen: &den})

	require.Len(t, got, 1)
	assert.Equal(t, "CDHA002", got[0].MaDichVu)

	// Biên bằng đúng giá vẫn khớp
	bang := 200000.0
	assert.Len(t, LocDichVu(danhMucMau(), ServiceQuery{GiaTu: &bang, GiaDen: &bang}), 1)
}

func TestLocKetHopNhieuDieuKien(t *testing.T) {
	got := LocDichVu(danhMucMau(), ServiceQuery{
		Keyword:   "xet nghiem",
		Nhom:      "xet-nghiem",
		TrangThai: ServiceActive,
	})

	require.Len(t, got, 1)
	assert.Equal(t, "XN001", got[0].MaDichVu)
}

func TestLocTheoNgayTao(t *testing.T) {
	list := danhMucMau()
	list[0].CreatedAt = time.Date(2025, 1, 5, 10, 0, 0, 0, time.UTC)
	list[1].CreatedAt = time.Date(2025, 2, 20, 10, 0, 0, 0, time.UTC)
	list[2].CreatedAt = time.Date(2025, 3, 15, 10, 0, 0, 0, time.UTC)

	got := LocDichVu(list, ServiceQuery{TuNgay: "2025-02-01", DenNgay: "2025-02-28"})

	require.Len(t, got, 1)
	assert.Equal(t, "CDHA002", got[0].MaDichVu)
}

func TestQueryRongKhopTatCa(t *testing.T) {
	assert.Len(t, LocDichVu(danhMucMau(), ServiceQuery{}), 3)
}
