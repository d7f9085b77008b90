package models

import "time"

// ExperienceModel is a work experience entry. EndedAt nil means the role is
// current.
type ExperienceModel struct {
	Base
	Role         string      `json:"role"         gorm:"not null"`
	Company      string      `json:"company"      gorm:"not null"`
	Slug         string      `json:"slug"         gorm:"uniqueIndex;not null"`
	Location     string      `json:"location"`
	Text         string      `json:"text"         gorm:"type:longtext"`
	Technologies StringArray `json:"technologies" gorm:"type:longtext"`
	CompanyLogo  string      `json:"company_logo"`
	StartedAt    time.Time   `json:"started_at"`
	EndedAt      *time.Time  `json:"ended_at"`
	Published    bool        `json:"published"    gorm:"index"`
	SortOrder    int         `json:"sort_order"`
}

func (ExperienceModel) TableName() string { return "experiences" }
