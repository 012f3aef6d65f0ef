package po

import (
	"encoding/json"
	"fmt"
	"time"

	"gorm.io/datatypes"

	"learnhub/domain/course"
)

// CoursePO Course persistence object
// Note: Only used for database mapping, does not contain any business logic
// The embedded collections (thumbnail, content, reviews) live in JSON
// columns; engagement appends target nested paths inside them.
type CoursePO struct {
	ID             string         `gorm:"primaryKey;size:64"`
	Name           string         `gorm:"size:255;not null"`
	Description    string         `gorm:"type:text"`
	Price          float64        `gorm:"not null"`
	Thumbnail      datatypes.JSON `gorm:"type:json"`
	DemoURL        string         `gorm:"size:512"`
	Status         string         `gorm:"size:20;index;not null"`
	PurchasedCount int            `gorm:"not null;default:0"`
	OwnerID        string         `gorm:"size:64;index;not null"` // Only store ID, no association with User
	Content        datatypes.JSON `gorm:"type:json"`
	Reviews        datatypes.JSON `gorm:"type:json"`
	RatingAverage  float64        `gorm:"not null;default:0"`
	Version        int            `gorm:"not null;default:0"` // optimistic-lock counter for scalar saves
	CreatedAt      time.Time      `gorm:"autoCreateTime;index"`
	UpdatedAt      time.Time      `gorm:"autoUpdateTime"`
}

// TableName Specify table name
func (CoursePO) TableName() string {
	return "courses"
}

// FromCourseDomain Convert domain model to persistence object
func FromCourseDomain(c *course.Course) (*CoursePO, error) {
	dto := c.ToDTO()

	thumbnail, err := json.Marshal(dto.Thumbnail)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal course thumbnail: %w", err)
	}
	content, err := json.Marshal(dto.Content)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal course content: %w", err)
	}
	reviews, err := json.Marshal(dto.Reviews)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal course reviews: %w", err)
	}

	return &CoursePO{
		ID:             dto.ID,
		Name:           dto.Name,
		Description:    dto.Description,
		Price:          dto.Price,
		Thumbnail:      thumbnail,
		DemoURL:        dto.DemoURL,
		Status:         string(dto.Status),
		PurchasedCount: dto.PurchasedCount,
		OwnerID:        dto.OwnerID,
		Content:        content,
		Reviews:        reviews,
		RatingAverage:  dto.RatingAverage,
		Version:        dto.Version,
		CreatedAt:      dto.CreatedAt,
		UpdatedAt:      dto.UpdatedAt,
	}, nil
}

// ToDomain Convert persistence object to domain model
func (po *CoursePO) ToDomain() (*course.Course, error) {
	var thumbnail course.Thumbnail
	if len(po.Thumbnail) > 0 {
		if err := json.Unmarshal(po.Thumbnail, &thumbnail); err != nil {
			return nil, fmt.Errorf("failed to unmarshal course thumbnail: %w", err)
		}
	}
	content := []course.ContentItem{}
	if len(po.Content) > 0 {
		if err := json.Unmarshal(po.Content, &content); err != nil {
			return nil, fmt.Errorf("failed to unmarshal course content: %w", err)
		}
	}
	reviews := []course.Review{}
	if len(po.Reviews) > 0 {
		if err := json.Unmarshal(po.Reviews, &reviews); err != nil {
			return nil, fmt.Errorf("failed to unmarshal course reviews: %w", err)
		}
	}

	return course.FromDTO(course.DTO{
		ID:             po.ID,
		Name:           po.Name,
		Description:    po.Description,
		Price:          po.Price,
		Thumbnail:      thumbnail,
		DemoURL:        po.DemoURL,
		Status:         course.Status(po.Status),
		PurchasedCount: po.PurchasedCount,
		OwnerID:        po.OwnerID,
		Content:        content,
		Reviews:        reviews,
		RatingAverage:  po.RatingAverage,
		Version:        po.Version,
		CreatedAt:      po.CreatedAt,
		UpdatedAt:      po.UpdatedAt,
	}), nil
}
