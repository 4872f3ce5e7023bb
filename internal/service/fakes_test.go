package service

import (
	"context"
	"sync"

	"vitrifiye-studio/internal/catalog"
	"vitrifiye-studio/internal/models"
	"vitrifiye-studio/internal/repository"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type staticSource []models.Product

func (s staticSource) LoadProducts(_ context.Context) ([]models.Product, error) {
	return s, nil
}

func testCatalog() *catalog.Store {
	return catalog.NewStore(staticSource{
		{ID: 1, Title: "Lavabo A", Category: models.CategoryLavabo, Style: models.StyleModern, Color: "beyaz", Price: 300000, IsActive: true},
		{ID: 2, Title: "Lavabo B", Category: models.CategoryLavabo, Style: models.StyleModern, Color: "beyaz", Price: 600000, IsActive: true},
		{ID: 3, Title: "Klozet", Category: models.CategoryKlozet, Style: models.StyleModern, Price: 400000, IsActive: true},
		{ID: 4, Title: "Batarya", Category: models.CategoryBatarya, Style: models.StyleKlasik, Price: 200000, IsActive: true},
		{ID: 5, Title: "Eski Lavabo", Category: models.CategoryLavabo, Style: models.StyleModern, Price: 100000, IsActive: false},
	}, zap.NewNop())
}

type memoryResults struct {
	mu      sync.Mutex
	nextID  int64
	results map[int64]*models.QuizResult
	gets    int
}

func newMemoryResults() *memoryResults {
	return &memoryResults{results: make(map[int64]*models.QuizResult)}
}

func (m *memoryResults) Create(_ context.Context, result *models.QuizResult) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.nextID++
	result.ID = m.nextID
	stored := *result
	m.results[result.ID] = &stored
	return nil
}

func (m *memoryResults) GetByID(_ context.Context, id int64) (*models.QuizResult, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.gets++
	res, ok := m.results[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	out := *res
	return &out, nil
}

func (m *memoryResults) ListByUser(_ context.Context, userID uuid.UUID) ([]*models.QuizResult, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []*models.QuizResult
	for _, r := range m.results {
		if r.UserID != nil && *r.UserID == userID {
			res := *r
			out = append(out, &res)
		}
	}
	return out, nil
}

type memoryConfigs struct {
	mu      sync.Mutex
	nextID  int64
	configs map[int64]*models.Configuration
}

func newMemoryConfigs() *memoryConfigs {
	return &memoryConfigs{configs: make(map[int64]*models.Configuration)}
}

func (m *memoryConfigs) Create(_ context.Context, cfg *models.Configuration) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.nextID++
	cfg.ID = m.nextID
	stored := *cfg
	m.configs[cfg.ID] = &stored
	return nil
}

func (m *memoryConfigs) Update(_ context.Context, cfg *models.Configuration) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.configs[cfg.ID]; !ok {
		return repository.ErrNotFound
	}
	stored := *cfg
	m.configs[cfg.ID] = &stored
	return nil
}

func (m *memoryConfigs) GetByID(_ context.Context, id int64) (*models.Configuration, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	cfg, ok := m.configs[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	out := *cfg
	return &out, nil
}

func (m *memoryConfigs) ListByUser(_ context.Context, userID uuid.UUID) ([]*models.Configuration, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []*models.Configuration
	for _, c := range m.configs {
		if c.OwnedBy(userID) {
			cfg := *c
			out = append(out, &cfg)
		}
	}
	return out, nil
}

func (m *memoryConfigs) ListPublic(_ context.Context, limit uint64) ([]*models.Configuration, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []*models.Configuration
	for _, c := range m.configs {
		if c.IsPublic && uint64(len(out)) < limit {
			cfg := *c
			out = append(out, &cfg)
		}
	}
	return out, nil
}

func (m *memoryConfigs) Delete(_ context.Context, id int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.configs[id]; !ok {
		return repository.ErrNotFound
	}
	delete(m.configs, id)
	return nil
}

type memoryUsers struct {
	mu    sync.Mutex
	users map[uuid.UUID]*models.User
}

func newMemoryUsers() *memoryUsers {
	return &memoryUsers{users: make(map[uuid.UUID]*models.User)}
}

func (m *memoryUsers) Create(_ context.Context, user *models.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	u := *user
	m.users[user.ID] = &u
	return nil
}

func (m *memoryUsers) GetByEmail(_ context.Context, email string) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.users {
		if u.Email == email {
			out := *u
			return &out, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (m *memoryUsers) GetByID(_ context.Context, id uuid.UUID) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.users[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	out := *u
	return &out, nil
}
