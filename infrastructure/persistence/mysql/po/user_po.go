package po

import (
	"encoding/json"
	"fmt"
	"time"

	"gorm.io/datatypes"

	"learnhub/domain/user"
)

// UserPO User persistence object
// Note: Only used for database mapping, does not contain any business logic
// Course references are JSON arrays of ids; ownership resolution and the
// delete cascade query into them with MySQL JSON functions.
type UserPO struct {
	ID             string         `gorm:"primaryKey;size:64"`
	Name           string         `gorm:"size:100;not null"`
	Email          string         `gorm:"size:255;uniqueIndex;not null"`
	Role           string         `gorm:"size:20;not null"`
	Courses        datatypes.JSON `gorm:"type:json"` // enrolled course ids
	CreatedCourses datatypes.JSON `gorm:"type:json"` // owned course ids
	CreatedAt      time.Time      `gorm:"autoCreateTime;index"`
	UpdatedAt      time.Time      `gorm:"autoUpdateTime"`
}

// TableName Specify table name
func (UserPO) TableName() string {
	return "users"
}

// FromUserDomain Convert domain model to persistence object
func FromUserDomain(u *user.User) (*UserPO, error) {
	dto := u.ToDTO()

	courses, err := json.Marshal(emptyIfNil(dto.EnrolledCourses))
	if err != nil {
		return nil, fmt.Errorf("failed to marshal user courses: %w", err)
	}
	createdCourses, err := json.Marshal(emptyIfNil(dto.CreatedCourses))
	if err != nil {
		return nil, fmt.Errorf("failed to marshal user created courses: %w", err)
	}

	return &UserPO{
		ID:             dto.ID,
		Name:           dto.Name,
		Email:          dto.Email,
		Role:           string(dto.Role),
		Courses:        courses,
		CreatedCourses: createdCourses,
		CreatedAt:      dto.CreatedAt,
		UpdatedAt:      dto.UpdatedAt,
	}, nil
}

// ToDomain Convert persistence object to domain model
func (po *UserPO) ToDomain() (*user.User, error) {
	role, err := user.ParseRole(po.Role)
	if err != nil {
		return nil, err
	}

	courses := []string{}
	if len(po.Courses) > 0 {
		if err := json.Unmarshal(po.Courses, &courses); err != nil {
			return nil, fmt.Errorf("failed to unmarshal user courses: %w", err)
		}
	}
	createdCourses := []string{}
	if len(po.CreatedCourses) > 0 {
		if err := json.Unmarshal(po.CreatedCourses, &createdCourses); err != nil {
			return nil, fmt.Errorf("failed to unmarshal user created courses: %w", err)
		}
	}

	return user.FromDTO(user.DTO{
		ID:              po.ID,
		Name:            po.Name,
		Email:           po.Email,
		Role:            role,
		EnrolledCourses: courses,
		CreatedCourses:  createdCourses,
		CreatedAt:       po.CreatedAt,
		UpdatedAt:       po.UpdatedAt,
	}), nil
}

func emptyIfNil(ids []string) []string {
	if ids == nil {
		return []string{}
	}
	return ids
}
