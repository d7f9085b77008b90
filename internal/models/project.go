package models

import "time"

// ProjectModel is a portfolio project entry. Slug is unique within projects
// and derived from the title at create time.
type ProjectModel struct {
	Base
	Title        string      `json:"title"        gorm:"not null"`
	Slug         string      `json:"slug"         gorm:"uniqueIndex;not null"`
	Summary      string      `json:"summary"      gorm:"type:text"`
	Text         string      `json:"text"         gorm:"type:longtext"`
	CoverImage   string      `json:"cover_image"`
	Images       StringArray `json:"images"       gorm:"type:longtext"`
	Technologies StringArray `json:"technologies" gorm:"type:longtext"`
	DemoURL      string      `json:"demo_url"`
	RepoURL      string      `json:"repo_url"`
	CompletedAt  *time.Time  `json:"completed_at"`
	Featured     bool        `json:"featured"     gorm:"index"`
	Published    bool        `json:"published"    gorm:"index"`
	SortOrder    int         `json:"sort_order"`
	ViewCount    int64       `json:"view_count"`
}

func (ProjectModel) TableName() string { return "projects" }
