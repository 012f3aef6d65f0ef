package mocks

import (
	"context"
	"sort"
	"sync"

	"learnhub/domain/user"
)

// MockUserRepository Mock implementation of user repository
// FindOwnersOf returns matches ordered by user id so tests get the same
// "store order" the MySQL implementation produces.
type MockUserRepository struct {
	users map[string]user.DTO
	mu    sync.RWMutex

	FailNextWrite error
}

// NewMockUserRepository Create Mock user repository
func NewMockUserRepository() *MockUserRepository {
	return &MockUserRepository{
		users: make(map[string]user.DTO),
	}
}

// Add seed a user into the mock store
func (r *MockUserRepository) Add(u *user.User) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.users[u.ID()] = u.ToDTO()
}

func (r *MockUserRepository) FindByID(ctx context.Context, id string) (*user.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	dto, exists := r.users[id]
	if !exists {
		return nil, user.NewUserNotFoundError(id)
	}
	return user.FromDTO(dto), nil
}

func (r *MockUserRepository) Save(ctx context.Context, u *user.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.FailNextWrite != nil {
		err := r.FailNextWrite
		r.FailNextWrite = nil
		return err
	}
	if _, exists := r.users[u.ID()]; !exists {
		return user.NewUserNotFoundError(u.ID())
	}
	r.users[u.ID()] = u.ToDTO()
	return nil
}

func (r *MockUserRepository) FindOwnersOf(ctx context.Context, courseID string) ([]*user.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	ids := make([]string, 0)
	for id, dto := range r.users {
		for _, owned := range dto.CreatedCourses {
			if owned == courseID {
				ids = append(ids, id)
				break
			}
		}
	}
	sort.Strings(ids)

	owners := make([]*user.User, len(ids))
	for i, id := range ids {
		owners[i] = user.FromDTO(r.users[id])
	}
	return owners, nil
}

func (r *MockUserRepository) RemoveCourseRefs(ctx context.Context, courseID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.FailNextWrite != nil {
		err := r.FailNextWrite
		r.FailNextWrite = nil
		return err
	}
	for id, dto := range r.users {
		dto.EnrolledCourses = removeID(dto.EnrolledCourses, courseID)
		dto.CreatedCourses = removeID(dto.CreatedCourses, courseID)
		r.users[id] = dto
	}
	return nil
}

func removeID(ids []string, target string) []string {
	out := ids[:0]
	for _, id := range ids {
		if id != target {
			out = append(out, id)
		}
	}
	return out
}

var _ user.Repository = (*MockUserRepository)(nil)
