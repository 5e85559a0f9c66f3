package store

import (
	"errors"
	"fmt"
	"math"

	"gorm.io/gorm"

	"github.com/namishh/bubble/models"
)

// Pagination describes one page of a listing.
type Pagination struct {
	Page       int
	PerPage    int
	Total      int
	TotalPages int
}

func NewPagination(page, perPage int, total int64) Pagination {
	if page < 1 {
		page = 1
	}
	if perPage <= 0 {
		perPage = 10
	}
	totalPages := int(math.Ceil(float64(total) / float64(perPage)))
	return Pagination{
		Page:       page,
		PerPage:    perPage,
		Total:      int(total),
		TotalPages: totalPages,
	}
}

func (p Pagination) HasPrev() bool { return p.Page > 1 }
func (p Pagination) HasNext() bool { return p.Page < p.TotalPages }
func (p Pagination) PrevPage() int { return p.Page - 1 }
func (p Pagination) NextPage() int { return p.Page + 1 }

// PostStore is the persistent collection of posts. It knows nothing about
// authorization; ownership checks belong to the handlers.
type PostStore interface {
	ListByOwner(ownerID uint, page, perPage int) ([]models.Post, Pagination, error)
	Get(id uint) (*models.Post, error)
	Create(title, content string, ownerID uint) (*models.Post, error)
	Update(post *models.Post, title, content string) error
	Delete(post *models.Post) error
}

type GormPostStore struct {
	db *gorm.DB
}

func NewPostStore(db *gorm.DB) *GormPostStore {
	return &GormPostStore{db: db}
}

// ListByOwner returns the owner's posts newest first. Pages are 1-indexed;
// a page past the end yields an empty slice, not an error.
func (s *GormPostStore) ListByOwner(ownerID uint, page, perPage int) ([]models.Post, Pagination, error) {
	if page < 1 {
		page = 1
	}
	if perPage < 1 {
		perPage = 4
	}

	var total int64
	if err := s.db.Model(&models.Post{}).Where("user_id = ?", ownerID).Count(&total).Error; err != nil {
		return nil, Pagination{}, fmt.Errorf("count posts: %w", err)
	}

	var posts []models.Post
	offset := (page - 1) * perPage
	if err := s.db.Where("user_id = ?", ownerID).
		Order("created_at DESC, id DESC").
		Limit(perPage).
		Offset(offset).
		Find(&posts).Error; err != nil {
		return nil, Pagination{}, fmt.Errorf("list posts: %w", err)
	}

	return posts, NewPagination(page, perPage, total), nil
}

func (s *GormPostStore) Get(id uint) (*models.Post, error) {
	var post models.Post
	if err := s.db.First(&post, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get post: %w", err)
	}
	return &post, nil
}

func (s *GormPostStore) Create(title, content string, ownerID uint) (*models.Post, error) {
	post := models.Post{
		Title:   title,
		Content: content,
		UserID:  ownerID,
	}
	if err := s.db.Create(&post).Error; err != nil {
		return nil, fmt.Errorf("create post: %w", err)
	}
	return &post, nil
}

func (s *GormPostStore) Update(post *models.Post, title, content string) error {
	post.Title = title
	post.Content = content
	if err := s.db.Save(post).Error; err != nil {
		return fmt.Errorf("update post: %w", err)
	}
	return nil
}

func (s *GormPostStore) Delete(post *models.Post) error {
	if err := s.db.Delete(post).Error; err != nil {
		return fmt.Errorf("delete post: %w", err)
	}
	return nil
}
