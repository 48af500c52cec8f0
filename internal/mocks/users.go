package mocks

import (
	"context"
	"errors"
	"sync"

	"github.com/media-site/internal/authors"
	"github.com/media-site/internal/models"
)

// ErrUserServiceDown is returned for ids listed in MockUserService.Fail
var ErrUserServiceDown = errors.New("user service unavailable")

// MockUserService is an in-memory user directory
type MockUserService struct {
	mu        sync.Mutex
	Directory map[string]*models.Author
	Fail      map[string]bool
	Calls     map[string]int
	ListErr   error
}

// Verify interface compliance
var _ authors.UserService = (*MockUserService)(nil)

func NewMockUserService(users ...*models.Author) *MockUserService {
	m := &MockUserService{
		Directory: make(map[string]*models.Author),
		Fail:      make(map[string]bool),
		Calls:     make(map[string]int),
	}
	for _, u := range users {
		m.Directory[u.ID] = u
	}
	return m
}

func (m *MockUserService) UserByID(ctx context.Context, id string) (*models.Author, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Calls[id]++
	if m.Fail[id] {
		return nil, ErrUserServiceDown
	}
	return m.Directory[id], nil
}

// Users pages through the directory ordered by id, 20 per page
func (m *MockUserService) Users(ctx context.Context, page int, search string) (*models.AuthorList, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.ListErr != nil {
		return nil, m.ListErr
	}

	all := make([]*models.Author, 0, len(m.Directory))
	for _, u := range m.Directory {
		all = append(all, u)
	}
	sortAuthors(all)

	offset := (page - 1) * authors.PerPage
	return &models.AuthorList{
		Users:      window(all, offset, authors.PerPage),
		TotalUsers: len(all),
	}, nil
}

// CallCount returns how many lookups id received
func (m *MockUserService) CallCount(id string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.Calls[id]
}
