package models

// Item types that accept comments and likes. The store accepts arbitrary
// values; these constants cover the items the frontend knows about.
const (
	ItemTypeProject     = "project"
	ItemTypeExperience  = "experience"
	ItemTypeAchievement = "achievement"
	ItemTypeContact     = "contact"
)

// CommentModel is an append-only comment against an (item_type, item_id)
// pair. Authorship is exactly one of: AuthorID set (authenticated) or both
// AuthorName and AuthorEmail set (anonymous).
type CommentModel struct {
	Base
	ItemType    string         `json:"item_type"    gorm:"index:idx_comment_item;not null"`
	ItemID      string         `json:"item_id"      gorm:"index:idx_comment_item;not null"`
	Text        string         `json:"text"         gorm:"type:text;not null"`
	AuthorID    *string        `json:"author_id"    gorm:"index"`
	AuthorName  string         `json:"author_name"`
	AuthorEmail string         `json:"author_email"`
	ParentID    *string        `json:"parent_id"    gorm:"index"`
	Approved    bool           `json:"approved"     gorm:"index;default:true"`
	IP          string         `json:"-"`
	Agent       string         `json:"-"            gorm:"type:text"`
	Children    []CommentModel `json:"children,omitempty" gorm:"foreignKey:ParentID"`
}

func (CommentModel) TableName() string { return "comments" }
