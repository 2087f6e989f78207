package draft

// AddChiDinh thêm một dịch vụ vào danh sách chọn.
// Idempotent theo id: đã có rồi thì bỏ qua, không nhân đôi.
func (d *Draft) AddChiDinh(item ChiDinhItem) {
	for _, cd := range d.ChiDinh {
		if cd.DichVuID == item.DichVuID {
			return
		}
	}
	if item.DoUuTien == "" {
		item.DoUuTien = "thuong"
	}
	d.ChiDinh = append(d.ChiDinh, item)
}

// RemoveChiDinh bỏ một dịch vụ khỏi danh sách theo id
func (d *Draft) RemoveChiDinh(dichVuID uint64) {
	out := d.ChiDinh[:0]
	for _, cd := range d.ChiDinh {
		if cd.DichVuID != dichVuID {
			out = append(out, cd)
		}
	}
	d.ChiDinh = out
}

// ChiDinhPatch chỉ chứa field được phép sửa sau khi đã chọn
type ChiDinhPatch struct {
	DoUuTien *string `json:"doUuTien"`
	GhiChu   *string `json:"ghiChu"`
}

// UpdateChiDinh merge patch vào đúng một item khớp id, item khác giữ nguyên
func (d *Draft) UpdateChiDinh(dichVuID uint64, patch ChiDinhPatch) {
	for i := range d.ChiDinh {
		if d.ChiDinh[i].DichVuID != dichVuID {
			continue
		}
		if patch.DoUuTien != nil {
			d.ChiDinh[i].DoUuTien = *patch.DoUuTien
		}
		if patch.GhiChu != nil {
			d.ChiDinh[i].GhiChu = *patch.GhiChu
		}
		return
	}
}

// TongTien cộng giá các chỉ định đã chọn (hiện trên thanh tổng của màn tiếp nhận)
func (d Draft) TongTien() float64 {
	var tong float64
	for _, cd := range d.ChiDinh {
		tong += cd.Gia
	}
	return tong
}
