package models

import "time"

// UserModel represents the portfolio owner. There is exactly one row in
// practice; registration is closed after the first account.
type UserModel struct {
	Base
	Username      string     `json:"username"   gorm:"uniqueIndex;not null"`
	Password      string     `json:"-"          gorm:"not null"`
	Name          string     `json:"name"`
	Title         string     `json:"title"`
	Bio           string     `json:"bio"        gorm:"type:text"`
	Email         string     `json:"email"`
	Location      string     `json:"location"`
	Avatar        string     `json:"avatar"`
	HeroImage     string     `json:"hero_image"`
	GitHubURL     string     `json:"github_url"`
	LinkedInURL   string     `json:"linkedin_url"`
	WebsiteURL    string     `json:"website_url"`
	ResumeURL     string     `json:"resume_url"`
	LastLoginTime *time.Time `json:"last_login_time"`
	LastLoginIP   string     `json:"last_login_ip"`
	APITokens     []APIToken `json:"api_tokens,omitempty" gorm:"foreignKey:UserID"`
}

func (UserModel) TableName() string { return "users" }

// APIToken represents a personal API token for programmatic access.
type APIToken struct {
	Base
	UserID    string     `json:"-"          gorm:"index;not null"`
	Token     string     `json:"token"      gorm:"uniqueIndex;not null"`
	Name      string     `json:"name"`
	ExpiredAt *time.Time `json:"expired_at"`
}

func (APIToken) TableName() string { return "api_tokens" }
