// Package file handles uploads, either to the local static directory or to an
// S3-compatible bucket, and tracks uploaded files so unreferenced ones can be
// swept.
package file

import (
	"context"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/folio-space/core/internal/config"
	"github.com/folio-space/core/internal/models"
	"gorm.io/gorm"
)

// Uploads younger than this are never treated as orphans, so an in-progress
// editor session cannot lose its images to the sweep.
const orphanGracePeriod = 24 * time.Hour

const localURLPrefix = "/api/files/"

var errFileNotFound = errors.New("file not found")

type Service struct {
	db  *gorm.DB
	cfg *config.AppConfig
	s3  *s3Uploader
}

func NewService(db *gorm.DB, cfg *config.AppConfig) *Service {
	s := &Service{db: db, cfg: cfg}
	if cfg.S3.Enable {
		s.s3 = newS3Uploader(cfg.S3)
	}
	return s
}

// SaveUpload validates and stores one uploaded file, records a pending
// reference row, and returns the public URL.
func (s *Service) SaveUpload(ctx context.Context, typ string, fh *multipart.FileHeader) (*uploadResponse, error) {
	if err := validateUpload(fh.Filename, fh.Size, s.cfg.Upload.AllowedExtensions, s.cfg.Upload.MaxSizeMB); err != nil {
		return nil, err
	}

	src, err := fh.Open()
	if err != nil {
		return nil, fmt.Errorf("open upload: %w", err)
	}
	defer src.Close()
	payload, err := io.ReadAll(src)
	if err != nil {
		return nil, fmt.Errorf("read upload: %w", err)
	}

	name := buildFileName(fh.Filename)

	var fileURL string
	if s.s3 != nil {
		contentType := detectContentType(fh.Filename, payload, fh.Header.Get("Content-Type"))
		fileURL, err = s.s3.Put(ctx, typ+"/"+name, contentType, payload)
		if err != nil {
			return nil, err
		}
	} else {
		dir := filepath.Join(s.cfg.StaticDir(), typ)
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create upload dir: %w", err)
		}
		if err := os.WriteFile(filepath.Join(dir, name), payload, 0o644); err != nil {
			return nil, fmt.Errorf("write upload: %w", err)
		}
		fileURL = localURLPrefix + typ + "/" + name
	}

	ref := models.FileReferenceModel{FileURL: fileURL, FileName: name}
	if err := s.db.Create(&ref).Error; err != nil {
		return nil, err
	}

	return &uploadResponse{
		URL: fileURL, FileName: name, Size: int64(len(payload)), Type: typ,
	}, nil
}

// ResolveLocalPath maps a (type, name) pair to a path under the static
// directory, rejecting anything that would escape it.
func (s *Service) ResolveLocalPath(typ, name string) (string, error) {
	typ = normalizeType(typ)
	name = safeName(name)
	if typ == "" || name == "" {
		return "", errFileNotFound
	}
	path := filepath.Join(s.cfg.StaticDir(), typ, name)
	if info, err := os.Stat(path); err != nil || info.IsDir() {
		return "", errFileNotFound
	}
	return path, nil
}

// ListByType lists locally stored files of one type, newest first.
func (s *Service) ListByType(typ string) ([]fileInfoResponse, error) {
	typ = normalizeType(typ)
	if typ == "" {
		return nil, errFileNotFound
	}
	entries, err := os.ReadDir(filepath.Join(s.cfg.StaticDir(), typ))
	if err != nil {
		if os.IsNotExist(err) {
			return []fileInfoResponse{}, nil
		}
		return nil, err
	}

	items := make([]fileInfoResponse, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			continue
		}
		items = append(items, fileInfoResponse{
			Name:     entry.Name(),
			URL:      localURLPrefix + typ + "/" + entry.Name(),
			Size:     info.Size(),
			Modified: info.ModTime(),
		})
	}
	sort.Slice(items, func(i, j int) bool { return items[i].Modified.After(items[j].Modified) })
	return items, nil
}

// Delete removes a stored file and its reference row.
func (s *Service) Delete(ctx context.Context, typ, name string) error {
	typ = normalizeType(typ)
	name = safeName(name)
	if typ == "" || name == "" {
		return errFileNotFound
	}

	removed := false
	path := filepath.Join(s.cfg.StaticDir(), typ, name)
	if _, err := os.Stat(path); err == nil {
		if err := os.Remove(path); err != nil {
			return err
		}
		removed = true
	}

	var refs []models.FileReferenceModel
	if err := s.db.Where("file_name = ?", name).Find(&refs).Error; err != nil {
		return err
	}
	for _, ref := range refs {
		if s.s3 != nil {
			if key := s.s3.keyFromURL(ref.FileURL); key != "" {
				if err := s.s3.Delete(ctx, key); err != nil {
					return err
				}
				removed = true
			}
		}
		if err := s.db.Delete(&models.FileReferenceModel{}, "id = ?", ref.ID).Error; err != nil {
			return err
		}
	}

	if !removed && len(refs) == 0 {
		return errFileNotFound
	}
	return nil
}

// BindReference marks a pending upload as referenced by a content item.
func (s *Service) BindReference(dto *BindReferenceDTO) (*models.FileReferenceModel, error) {
	res := s.db.Model(&models.FileReferenceModel{}).
		Where("file_url = ?", dto.FileURL).
		Updates(map[string]interface{}{
			"status":   "active",
			"ref_type": dto.RefType,
			"ref_id":   dto.RefID,
		})
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, errFileNotFound
	}

	var ref models.FileReferenceModel
	if err := s.db.Where("file_url = ?", dto.FileURL).First(&ref).Error; err != nil {
		return nil, err
	}
	return &ref, nil
}

// ListOrphans returns pending references past the grace period.
func (s *Service) ListOrphans() ([]models.FileReferenceModel, error) {
	var refs []models.FileReferenceModel
	err := s.db.
		Where("status = ? AND created_at < ?", "pending", time.Now().Add(-orphanGracePeriod)).
		Order("created_at ASC").
		Find(&refs).Error
	return refs, err
}

func (s *Service) CountOrphans() (int64, error) {
	var count int64
	err := s.db.Model(&models.FileReferenceModel{}).
		Where("status = ? AND created_at < ?", "pending", time.Now().Add(-orphanGracePeriod)).
		Count(&count).Error
	return count, err
}

// CleanupOrphans deletes orphaned uploads from storage and drops their rows.
// Storage failures skip the row so a later sweep can retry.
func (s *Service) CleanupOrphans(ctx context.Context) (int, error) {
	refs, err := s.ListOrphans()
	if err != nil {
		return 0, err
	}

	deleted := 0
	for _, ref := range refs {
		if err := s.removeStored(ctx, ref); err != nil {
			continue
		}
		if err := s.db.Delete(&models.FileReferenceModel{}, "id = ?", ref.ID).Error; err != nil {
			return deleted, err
		}
		deleted++
	}
	return deleted, nil
}

func (s *Service) removeStored(ctx context.Context, ref models.FileReferenceModel) error {
	if s.s3 != nil {
		if key := s.s3.keyFromURL(ref.FileURL); key != "" {
			return s.s3.Delete(ctx, key)
		}
	}
	if path := s.localPathFromURL(ref.FileURL); path != "" {
		if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
			return err
		}
	}
	return nil
}

// localPathFromURL maps a locally served URL back to its path on disk, or ""
// for URLs that do not point at local storage.
func (s *Service) localPathFromURL(fileURL string) string {
	rest, ok := strings.CutPrefix(fileURL, localURLPrefix)
	if !ok {
		return ""
	}
	typ, name, ok := strings.Cut(rest, "/")
	if !ok {
		return ""
	}
	typ = normalizeType(typ)
	name = safeName(name)
	if typ == "" || name == "" {
		return ""
	}
	return filepath.Join(s.cfg.StaticDir(), typ, name)
}
