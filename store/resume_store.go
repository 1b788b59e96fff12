package store

import (
	"encoding/json"
	"fmt"

	"avolkov/resume-api/model"

	"gorm.io/gorm"
)

// Pagination describes the window a List call returned, shaped for the
// client's pager.
type Pagination struct {
	Page        int   `json:"page"`
	Limit       int   `json:"limit"`
	Total       int64 `json:"total"`
	TotalPages  int   `json:"totalPages"`
	HasNextPage bool  `json:"hasNextPage"`
	HasPrevPage bool  `json:"hasPrevPage"`
}

// ResumeStore persists résumé documents. Saving always inserts a new
// row, there is no update or delete path.
type ResumeStore struct {
	db *gorm.DB
}

func NewResumeStore(db *gorm.DB) *ResumeStore {
	return &ResumeStore{db: db}
}

// Save inserts a résumé owned by userID. Callers validate shape and
// size beforehand, data arrives already compacted.
func (s *ResumeStore) Save(userID, title string, data json.RawMessage) (*model.Resume, error) {
	id, err := newID()
	if err != nil {
		return nil, fmt.Errorf("failed to generate resume ID, %w", err)
	}

	res := &model.Resume{
		ID:     id,
		UserID: userID,
		Title:  title,
		Data:   data,
	}

	if err := s.db.Create(res).Error; err != nil {
		return nil, fmt.Errorf("failed to create resume, %w", err)
	}

	return res, nil
}

// List returns one page of the user's résumés, most recently updated
// first, along with the pager info computed from the total count.
func (s *ResumeStore) List(userID string, page, limit int) ([]model.Resume, *Pagination, error) {
	var total int64

	err := s.db.
		Model(&model.Resume{}).
		Where("user_id = ?", userID).
		Count(&total).
		Error
	if err != nil {
		return nil, nil, fmt.Errorf("failed to count resumes, %w", err)
	}

	entries := []model.Resume{}

	err = s.db.
		Where("user_id = ?", userID).
		Order("updated_at desc").
		Offset((page - 1) * limit).
		Limit(limit).
		Find(&entries).
		Error
	if err != nil {
		return nil, nil, fmt.Errorf("failed to list resumes, %w", err)
	}

	totalPages := int((total + int64(limit) - 1) / int64(limit))

	return entries, &Pagination{
		Page:        page,
		Limit:       limit,
		Total:       total,
		TotalPages:  totalPages,
		HasNextPage: page < totalPages,
		HasPrevPage: page > 1,
	}, nil
}

// CountAll reports the number of stored résumés for the status
// endpoint.
func (s *ResumeStore) CountAll() (int64, error) {
	var n int64
	err := s.db.Model(&model.Resume{}).Count(&n).Error
	return n, err
}
