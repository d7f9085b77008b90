package models

// ContentModel stores editable site copy as (section, field) -> value, e.g.
// ("hero", "headline") or ("about", "intro").
type ContentModel struct {
	Base
	Section string `json:"section" gorm:"uniqueIndex:idx_content_section_field;not null"`
	Field   string `json:"field"   gorm:"uniqueIndex:idx_content_section_field;not null"`
	Value   string `json:"value"   gorm:"type:longtext"`
}

func (ContentModel) TableName() string { return "contents" }
