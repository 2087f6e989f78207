// Package draft quản lý bản nháp tiếp nhận của nhân viên quầy:
// gom form bệnh nhân + lịch khám + danh sách chỉ định vào một chỗ,
// validate trước khi submit và lưu tạm vào Redis theo từng nhân viên.
package draft

import (
	"regexp"
	"strings"
	"time"

	"clinic-backend/internal/models"
)

// BenhNhanForm là phần thông tin bệnh nhân của bản nháp
type BenhNhanForm struct {
	MaBenhNhan  string `json:"maBenhNhan"` // Rỗng = bệnh nhân mới
	HoTen       string `json:"hoTen"`
	NgaySinh    string `json:"ngaySinh"` // YYYY-MM-DD
	GioiTinh    string `json:"gioiTinh"` // nam / nu / khac
	SoDienThoai string `json:"soDienThoai"`
	SoCCCD      string `json:"soCCCD"`
	SoBHYT      string `json:"soBHYT"`
	MaDanToc    string `json:"maDanToc"`

	QuocGia  string `json:"quocGia"`
	MaTinh   string `json:"maTinh"`
	TenTinh  string `json:"tenTinh"`
	MaHuyen  string `json:"maHuyen"`
	TenHuyen string `json:"tenHuyen"`
	MaXa     string `json:"maXa"`
	TenXa    string `json:"tenXa"`
	DiaChi   string `json:"diaChi"` // Số nhà, tên đường

	// Địa chỉ gộp. Mặc định tự build lại mỗi lần đổi cấp hành chính;
	// DiaChiTuNhap = true nghĩa là người dùng đã tự sửa, không ghi đè nữa.
	DiaChiDayDu  string `json:"diaChiDayDu"`
	DiaChiTuNhap bool   `json:"diaChiTuNhap"`
}

// LichKhamForm là phần đăng ký khám của bản nháp
type LichKhamForm struct {
	Khoa       string `json:"khoa"`
	Phong      string `json:"phong"`
	BacSiID    uint64 `json:"bacSiId"`
	NgayKham   string `json:"ngayKham"` // YYYY-MM-DD
	GioKham    string `json:"gioKham"`  // HH:MM
	TrieuChung string `json:"trieuChung"`
}

// ChiDinhItem là một dịch vụ đã chọn trong bản nháp
type ChiDinhItem struct {
	DichVuID  uint64  `json:"dichVuId"`
	MaDichVu  string  `json:"maDichVu"`
	TenDichVu string  `json:"tenDichVu"`
	Gia       float64 `json:"gia"`
	DoUuTien  string  `json:"doUuTien"`
	GhiChu    string  `json:"ghiChu"`
}

// Draft là bản nháp đầy đủ, đúng shape lưu xuống Redis
type Draft struct {
	BenhNhan BenhNhanForm  `json:"benhNhan"`
	LichKham LichKhamForm  `json:"lichKham"`
	ChiDinh  []ChiDinhItem `json:"chiDinh"`
}

func NewDraft() Draft {
	return Draft{
		BenhNhan: BenhNhanForm{QuocGia: "VN"},
		ChiDinh:  []ChiDinhItem{},
	}
}

// ===== Cascade đơn vị hành chính =====
// Bảng luật: đổi cấp nào thì các field cấp dưới bị xoá theo.
// Đổi tỉnh xoá cả huyện + xã + số nhà/đường, đổi huyện xoá xã + số nhà/đường;
// đổi xã thì số nhà/đường vẫn giữ. Gom một chỗ để invariant
// "con không được sống lâu hơn cha" test được độc lập.
var cascadeClear = map[int][]string{
	models.CapTinh:  {"MaHuyen", "TenHuyen", "MaXa", "TenXa", "DiaChi"},
	models.CapHuyen: {"MaXa", "TenXa", "DiaChi"},
}

func (d *Draft) clearField(name string) {
	switch name {
	case "MaHuyen":
		d.BenhNhan.MaHuyen = ""
	case "TenHuyen":
		d.BenhNhan.TenHuyen = ""
	case "MaXa":
		d.BenhNhan.MaXa = ""
	case "TenXa":
		d.BenhNhan.TenXa = ""
	case "DiaChi":
		d.BenhNhan.DiaChi = ""
	}
}

func (d *Draft) applyCascade(cap int) {
	for _, f := range cascadeClear[cap] {
		d.clearField(f)
	}
}

// SetTinh chọn tỉnh mới: huyện + xã bị xoá ngay trong cùng một update
func (d *Draft) SetTinh(ma, ten string) {
	d.BenhNhan.MaTinh = ma
	d.BenhNhan.TenTinh = ten
	d.applyCascade(models.CapTinh)
	d.RebuildDiaChiDayDu()
}

func (d *Draft) SetHuyen(ma, ten string) {
	d.BenhNhan.MaHuyen = ma
	d.BenhNhan.TenHuyen = ten
	d.applyCascade(models.CapHuyen)
	d.RebuildDiaChiDayDu()
}

func (d *Draft) SetXa(ma, ten string) {
	d.BenhNhan.MaXa = ma
	d.BenhNhan.TenXa = ten
	d.RebuildDiaChiDayDu()
}

func (d Draft) fieldValue(name string) string {
	switch name {
	case "MaHuyen":
		return d.BenhNhan.MaHuyen
	case "TenHuyen":
		return d.BenhNhan.TenHuyen
	case "MaXa":
		return d.BenhNhan.MaXa
	case "TenXa":
		return d.BenhNhan.TenXa
	case "DiaChi":
		return d.BenhNhan.DiaChi
	}
	return ""
}

// ApplyCascadeFrom so bản nháp mới với bản đang lưu: cấp cha nào đổi thì
// các cấp dưới bị xoá theo bảng luật, rồi build lại địa chỉ.
// Chỉ xoá field còn y nguyên giá trị cũ — đó là đồ thừa của cấp cha trước;
// field client chọn mới trong cùng lần lưu thì giữ (kể cả lần lưu đầu tiên,
// khi bản cũ còn trống). Đây là chốt chặn phía server, client gửi huyện/xã
// mồ côi cũng không lọt vào Redis.
func (d *Draft) ApplyCascadeFrom(truoc Draft) {
	var cap int
	switch {
	case d.BenhNhan.MaTinh != truoc.BenhNhan.MaTinh:
		cap = models.CapTinh
	case d.BenhNhan.MaHuyen != truoc.BenhNhan.MaHuyen:
		cap = models.CapHuyen
	}
	if cap != 0 {
		for _, f := range cascadeClear[cap] {
			if d.fieldValue(f) == truoc.fieldValue(f) {
				d.clearField(f)
			}
		}
	}
	d.RebuildDiaChiDayDu()
}

// RebuildDiaChiDayDu ghép lại địa chỉ đầy đủ từ đường + xã + huyện + tỉnh.
// Chỉ ghi đè khi người dùng chưa tự sửa và chuỗi mới thực sự khác chuỗi cũ.
func (d *Draft) RebuildDiaChiDayDu() {
	if d.BenhNhan.DiaChiTuNhap {
		return
	}
	phan := []string{}
	for _, p := range []string{d.BenhNhan.DiaChi, d.BenhNhan.TenXa, d.BenhNhan.TenHuyen, d.BenhNhan.TenTinh} {
		if strings.TrimSpace(p) != "" {
			phan = append(phan, strings.TrimSpace(p))
		}
	}
	moi := strings.Join(phan, ", ")
	if moi != d.BenhNhan.DiaChiDayDu {
		d.BenhNhan.DiaChiDayDu = moi
	}
}

// ===== Validate =====

// SĐT Việt Nam: bắt đầu bằng 0, tổng 10-11 số
var phonePattern = regexp.MustCompile(`^0\d{9,10}$`)

// Validate kiểm tra đủ field bắt buộc trước khi submit.
// Trả về map field -> thông báo; map rỗng nghĩa là hợp lệ.
// Chỉ check có/đúng format, không check nghiệp vụ chéo (đúng như quầy làm tay).
func (d Draft) Validate() map[string]string {
	errs := map[string]string{}

	if strings.TrimSpace(d.BenhNhan.HoTen) == "" {
		errs["hoTen"] = "Vui lòng nhập họ tên bệnh nhân"
	}
	if d.BenhNhan.NgaySinh == "" {
		errs["ngaySinh"] = "Vui lòng chọn ngày sinh"
	} else if _, err := time.Parse("2006-01-02", d.BenhNhan.NgaySinh); err != nil {
		errs["ngaySinh"] = "Ngày sinh không đúng định dạng YYYY-MM-DD"
	}
	switch d.BenhNhan.GioiTinh {
	case "nam", "nu", "khac":
	default:
		errs["gioiTinh"] = "Vui lòng chọn giới tính"
	}
	if d.BenhNhan.SoDienThoai == "" {
		errs["soDienThoai"] = "Vui lòng nhập số điện thoại"
	} else if !phonePattern.MatchString(d.BenhNhan.SoDienThoai) {
		errs["soDienThoai"] = "Số điện thoại không hợp lệ"
	}

	if strings.TrimSpace(d.LichKham.Khoa) == "" {
		errs["khoa"] = "Vui lòng chọn khoa khám"
	}
	if d.LichKham.NgayKham == "" {
		errs["ngayKham"] = "Vui lòng chọn ngày khám"
	} else if _, err := time.Parse("2006-01-02", d.LichKham.NgayKham); err != nil {
		errs["ngayKham"] = "Ngày khám không đúng định dạng YYYY-MM-DD"
	}
	if d.LichKham.GioKham == "" {
		errs["gioKham"] = "Vui lòng chọn giờ khám"
	} else if _, err := time.Parse("15:04", d.LichKham.GioKham); err != nil {
		errs["gioKham"] = "Giờ khám không đúng định dạng HH:MM"
	}

	if len(d.ChiDinh) == 0 {
		errs["chiDinh"] = "Vui lòng chọn ít nhất một dịch vụ"
	}

	return errs
}

// ToPayload chuyển bản nháp thành payload POST /api/TiepNhan
func (d Draft) ToPayload() models.TiepNhanPayload {
	lst := make([]models.ClsYeuCau, 0, len(d.ChiDinh))
	for _, cd := range d.ChiDinh {
		lst = append(lst, models.ClsYeuCau{
			DichVuID: cd.DichVuID,
			MaDichVu: cd.MaDichVu,
			DoUuTien: cd.DoUuTien,
			GhiChu:   cd.GhiChu,
		})
	}

	return models.TiepNhanPayload{
		BenhNhan: models.BenhNhanPayload{
			MaBenhNhan:  d.BenhNhan.MaBenhNhan,
			TenBenhNhan: d.BenhNhan.HoTen,
			NgaySinh:    d.BenhNhan.NgaySinh,
			GioiTinh:    d.BenhNhan.GioiTinh,
			SoDienThoai: d.BenhNhan.SoDienThoai,
			SoCCCD:      d.BenhNhan.SoCCCD,
			SoBHYT:      d.BenhNhan.SoBHYT,
			MaDanToc:    d.BenhNhan.MaDanToc,
			QuocGia:     d.BenhNhan.QuocGia,
			MaTinh:      d.BenhNhan.MaTinh,
			MaHuyen:     d.BenhNhan.MaHuyen,
			MaXa:        d.BenhNhan.MaXa,
			DiaChi:      d.BenhNhan.DiaChi,
			DiaChiDayDu: d.BenhNhan.DiaChiDayDu,
		},
		LichKham: models.LichKhamPayload{
			Khoa:       d.LichKham.Khoa,
			Phong:      d.LichKham.Phong,
			BacSiID:    d.LichKham.BacSiID,
			NgayKham:   d.LichKham.NgayKham,
			GioKham:    d.LichKham.GioKham,
			TrieuChung: d.LichKham.TrieuChung,
		},
		LstClsYeuCau: lst,
	}
}
