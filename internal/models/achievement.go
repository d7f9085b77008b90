package models

import "time"

// Achievement kinds.
const (
	AchievementCertification = "certification"
	AchievementAward         = "award"
	AchievementPublication   = "publication"
)

// AchievementModel is a certification, award, or publication entry.
type AchievementModel struct {
	Base
	Title         string     `json:"title"          gorm:"not null"`
	Slug          string     `json:"slug"           gorm:"uniqueIndex;not null"`
	Issuer        string     `json:"issuer"`
	Kind          string     `json:"kind"           gorm:"index;default:'certification'"`
	AwardedAt     *time.Time `json:"awarded_at"`
	CredentialURL string     `json:"credential_url"`
	BadgeImage    string     `json:"badge_image"`
	Text          string     `json:"text"           gorm:"type:longtext"`
	Featured      bool       `json:"featured"       gorm:"index"`
	Published     bool       `json:"published"      gorm:"index"`
}

func (AchievementModel) TableName() string { return "achievements" }
