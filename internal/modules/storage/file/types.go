package file

import "time"

type uploadResponse struct {
	URL      string `json:"url"`
	FileName string `json:"fileName"`
	Size     int64  `json:"size"`
	Type     string `json:"type"`
}

type fileInfoResponse struct {
	Name     string    `json:"name"`
	URL      string    `json:"url"`
	Size     int64     `json:"size"`
	Modified time.Time `json:"modified"`
}

type referenceResponse struct {
	ID       string    `json:"id"`
	FileURL  string    `json:"fileUrl"`
	FileName string    `json:"fileName"`
	Status   string    `json:"status"`
	RefID    string    `json:"refId"`
	RefType  string    `json:"refType"`
	Created  time.Time `json:"created"`
}

// BindReferenceDTO marks an uploaded file as referenced by a content item, so
// the orphan sweep leaves it alone.
type BindReferenceDTO struct {
	FileURL string `json:"fileUrl" binding:"required"`
	RefType string `json:"refType" binding:"required,oneof=project experience achievement profile"`
	RefID   string `json:"refId" binding:"required"`
}

type cleanupResponse struct {
	Deleted int `json:"deleted"`
}
