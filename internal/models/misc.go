package models

// FileReferenceModel tracks uploaded files and whether any content still
// references them.
type FileReferenceModel struct {
	Base
	FileURL  string `json:"file_url"  gorm:"index;not null"`
	FileName string `json:"file_name"`
	Status   string `json:"status"    gorm:"index;default:'pending'"` // pending | active
	RefID    string `json:"ref_id"    gorm:"index"`
	RefType  string `json:"ref_type"  gorm:"index"` // project | experience | achievement | profile
}

func (FileReferenceModel) TableName() string { return "file_references" }

// OptionModel is a generic key-value store for site-wide settings and
// counters (e.g. the site-wide like count).
type OptionModel struct {
	ID    uint   `json:"-" gorm:"primaryKey;autoIncrement"`
	Name  string `json:"name"  gorm:"uniqueIndex;not null"`
	Value string `json:"value" gorm:"type:longtext"`
}

func (OptionModel) TableName() string { return "options" }
