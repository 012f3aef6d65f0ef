/*
Package user - user subdomain.

Users are an input to the engagement engine rather than its center: they
supply the requester identity, enrollment membership, and course ownership
(the created_courses list). Authentication itself happens outside this
module; the identity arriving here is trusted.
*/
package user

import (
	"time"
)

// Role closed role enumeration. Role strings arriving from the identity
// boundary must be parsed through ParseRole; there is no silent
// fall-through for unrecognized values.
type Role string

const (
	RoleAdmin   Role = "admin"
	RoleTutor   Role = "tutor"
	RoleLearner Role = "user"
)

// ParseRole validates a role string from the identity boundary
func ParseRole(s string) (Role, error) {
	switch Role(s) {
	case RoleAdmin, RoleTutor, RoleLearner:
		return Role(s), nil
	default:
		return "", NewUnknownRoleError(s)
	}
}

// Identity the authenticated requester as supplied by the identity
// boundary: who they are, what they own, what they are enrolled in.
// The engine trusts this input and performs no authentication itself.
type Identity struct {
	ID              string
	Name            string
	Email           string
	Role            Role
	EnrolledCourses []string // course ids the requester may access
	CreatedCourses  []string // course ids the requester owns
}

// IsEnrolledIn membership check against the enrollment list
func (i Identity) IsEnrolledIn(courseID string) bool {
	for _, id := range i.EnrolledCourses {
		if id == courseID {
			return true
		}
	}
	return false
}

// Owns ownership check against the created-courses list
func (i Identity) Owns(courseID string) bool {
	for _, id := range i.CreatedCourses {
		if id == courseID {
			return true
		}
	}
	return false
}

// User user aggregate. Only the fields the engine reads/mutates are
// modeled: profile basics plus the two course-reference lists that drive
// ownership resolution, enrollment checks and delete cascades.
type User struct {
	id              string
	name            string
	email           string
	role            Role
	enrolledCourses []string
	createdCourses  []string
	createdAt       time.Time
	updatedAt       time.Time
}

// DTO flat representation for rehydrating a User from persistence
type DTO struct {
	ID              string
	Name            string
	Email           string
	Role            Role
	EnrolledCourses []string
	CreatedCourses  []string
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// FromDTO rehydrate a User from its persisted form
func FromDTO(dto DTO) *User {
	return &User{
		id:              dto.ID,
		name:            dto.Name,
		email:           dto.Email,
		role:            dto.Role,
		enrolledCourses: dto.EnrolledCourses,
		createdCourses:  dto.CreatedCourses,
		createdAt:       dto.CreatedAt,
		updatedAt:       dto.UpdatedAt,
	}
}

// ToDTO flatten for persistence
func (u *User) ToDTO() DTO {
	return DTO{
		ID:              u.id,
		Name:            u.name,
		Email:           u.email,
		Role:            u.role,
		EnrolledCourses: append([]string(nil), u.enrolledCourses...),
		CreatedCourses:  append([]string(nil), u.createdCourses...),
		CreatedAt:       u.createdAt,
		UpdatedAt:       u.updatedAt,
	}
}

func (u *User) ID() string                { return u.id }
func (u *User) Name() string              { return u.name }
func (u *User) Email() string             { return u.email }
func (u *User) Role() Role                { return u.role }
func (u *User) EnrolledCourses() []string { return u.enrolledCourses }
func (u *User) CreatedCourses() []string  { return u.createdCourses }
func (u *User) CreatedAt() time.Time      { return u.createdAt }

// Identity the requester view of this user
func (u *User) Identity() Identity {
	return Identity{
		ID:              u.id,
		Name:            u.name,
		Email:           u.email,
		Role:            u.role,
		EnrolledCourses: append([]string(nil), u.enrolledCourses...),
		CreatedCourses:  append([]string(nil), u.createdCourses...),
	}
}

// RecordCreatedCourse appends a new course to both reference lists: the
// creator owns it and can also access it as content.
func (u *User) RecordCreatedCourse(courseID string) {
	u.createdCourses = append(u.createdCourses, courseID)
	u.enrolledCourses = append(u.enrolledCourses, courseID)
	u.updatedAt = time.Now()
}
