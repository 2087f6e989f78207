package models

// Cấp đơn vị hành chính (contract cũ: DonViHanhChinh)
const (
	CapQuocGia = 1
	CapTinh    = 2
	CapHuyen   = 3
	CapXa      = 4
)

// AdminUnit là một node trong cây 4 cấp: quốc gia -> tỉnh -> huyện -> xã.
// Mỗi cấp load lazy theo mã cha, frontend chỉ hỏi đúng cấp đang cần.
type AdminUnit struct {
	ID    uint64 `gorm:"primaryKey" json:"id"`
	Cap   int    `gorm:"index;not null" json:"cap"`
	Ma    string `gorm:"uniqueIndex;size:10;not null" json:"ma"`
	Ten   string `gorm:"size:100;not null" json:"ten"`
	MaCha string `gorm:"index;size:10" json:"ma_cha"` // Rỗng với cấp quốc gia
}

// Ethnicity là dân tộc (contract cũ: DanToc)
type Ethnicity struct {
	ID  uint64 `gorm:"primaryKey" json:"id"`
	Ma  string `gorm:"uniqueIndex;size:10;not null" json:"ma"`
	Ten string `gorm:"size:50;not null" json:"ten"`
}
