package handlers

import (
	"context"
	"io"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/portfolio-api/internal/domain/entity"
	repo "github.com/oksasatya/portfolio-api/internal/domain/repository"
	"github.com/oksasatya/portfolio-api/pkg/listquery"
)

func quietLogger() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}

type memUsers struct {
	mu    sync.Mutex
	users []*entity.User
}

func (m *memUsers) Create(_ context.Context, u *entity.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, e := range m.users {
		if e.Email == entity.NormalizeEmail(u.Email) {
			return repo.ErrConflict
		}
	}
	if u.Role == "" {
		u.Role = entity.RoleViewer
		if len(m.users) == 0 {
			u.Role = entity.RoleOwner
		}
	}
	u.ID, u.Email, u.CreatedAt = uuid.NewString(), entity.NormalizeEmail(u.Email), time.Now()
	cp := *u
	m.users = append(m.users, &cp)
	return nil
}

func (m *memUsers) find(match func(*entity.User) bool) (*entity.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.users {
		if match(u) {
			cp := *u
			return &cp, nil
		}
	}
	return nil, repo.ErrNotFound
}

func (m *memUsers) GetByID(_ context.Context, id string) (*entity.User, error) {
	return m.find(func(u *entity.User) bool { return u.ID == id })
}

func (m *memUsers) GetByEmail(_ context.Context, email string) (*entity.User, error) {
	return m.find(func(u *entity.User) bool { return u.Email == entity.NormalizeEmail(email) })
}

func (m *memUsers) List(_ context.Context) ([]entity.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]entity.User, 0, len(m.users))
	for _, u := range m.users {
		out = append(out, *u)
	}
	return out, nil
}

func (m *memUsers) UpdateRole(_ context.Context, id string, role entity.Role) (*entity.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	owners := 0
	var target *entity.User
	for _, u := range m.users {
		if u.Role == entity.RoleOwner {
			owners++
		}
		if u.ID == id {
			target = u
		}
	}
	if target == nil {
		return nil, repo.ErrNotFound
	}
	if target.Role == entity.RoleOwner && role != entity.RoleOwner && owners <= 1 {
		return nil, repo.ErrLastOwner
	}
	target.Role = role
	cp := *target
	return &cp, nil
}

// memRecords is a generic in-memory ResourceRepository; setID assigns ids
// on create.
type memRecords[T any] struct {
	mu     sync.Mutex
	recs   []*T
	id     func(*T) string
	setID  func(*T, string)
	schema *listquery.Schema
}

func (m *memRecords[T]) Schema() *listquery.Schema { return m.schema }

func (m *memRecords[T]) List(_ context.Context, q *listquery.Query) (*listquery.Page, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	page := &listquery.Page{Total: int64(len(m.recs)), Items: []map[string]any{}}
	for i := q.Offset(); i < len(m.recs) && i < q.Offset()+q.Limit; i++ {
		page.Items = append(page.Items, map[string]any{"id": m.id(m.recs[i])})
	}
	return page, nil
}

func (m *memRecords[T]) index(id string) int {
	for i, r := range m.recs {
		if m.id(r) == id {
			return i
		}
	}
	return -1
}

func (m *memRecords[T]) GetByID(_ context.Context, id string) (*T, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	i := m.index(id)
	if i < 0 {
		return nil, repo.ErrNotFound
	}
	cp := *m.recs[i]
	return &cp, nil
}

func (m *memRecords[T]) Create(_ context.Context, rec *T) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.setID(rec, uuid.NewString())
	cp := *rec
	m.recs = append(m.recs, &cp)
	return nil
}

func (m *memRecords[T]) Update(_ context.Context, rec *T) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	i := m.index(m.id(rec))
	if i < 0 {
		return repo.ErrNotFound
	}
	cp := *rec
	m.recs[i] = &cp
	return nil
}

func (m *memRecords[T]) Delete(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	i := m.index(id)
	if i < 0 {
		return repo.ErrNotFound
	}
	m.recs = append(m.recs[:i], m.recs[i+1:]...)
	return nil
}

var baseSchema = &listquery.Schema{Fields: []listquery.Field{
	{Name: "id", Type: listquery.UUID},
	{Name: "created_at", Type: listquery.Timestamp},
}}

func memProjects() *memRecords[entity.Project] {
	return &memRecords[entity.Project]{
		id:     func(p *entity.Project) string { return p.ID },
		setID:  func(p *entity.Project, id string) { p.ID = id },
		schema: baseSchema,
	}
}

func memExperience() *memRecords[entity.Experience] {
	return &memRecords[entity.Experience]{
		id:     func(e *entity.Experience) string { return e.ID },
		setID:  func(e *entity.Experience, id string) { e.ID = id },
		schema: baseSchema,
	}
}

type memProfiles struct {
	mu       sync.Mutex
	profiles map[string]*entity.Profile
}

func (m *memProfiles) GetByID(_ context.Context, id string) (*entity.Profile, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, p := range m.profiles {
		if p.ID == id {
			cp := *p
			return &cp, nil
		}
	}
	return nil, repo.ErrNotFound
}

func (m *memProfiles) GetByUserID(_ context.Context, userID string) (*entity.Profile, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if p, ok := m.profiles[userID]; ok {
		cp := *p
		return &cp, nil
	}
	return nil, repo.ErrNotFound
}

func (m *memProfiles) GetPublic(_ context.Context) (*entity.Profile, error) {
	return nil, repo.ErrNotFound
}

func (m *memProfiles) Create(_ context.Context, p *entity.Profile) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.profiles[p.UserID]; ok {
		return repo.ErrConflict
	}
	p.ID = uuid.NewString()
	cp := *p
	m.profiles[p.UserID] = &cp
	return nil
}

func (m *memProfiles) Update(_ context.Context, p *entity.Profile) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := *p
	m.profiles[p.UserID] = &cp
	return nil
}

func (m *memProfiles) Delete(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for k, p := range m.profiles {
		if p.ID == id {
			delete(m.profiles, k)
			return nil
		}
	}
	return repo.ErrNotFound
}

func (m *memProfiles) SetMedia(_ context.Context, userID, email string, field repo.MediaField, url string) (*entity.Profile, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.profiles[userID]
	if !ok {
		p = &entity.Profile{ID: uuid.NewString(), UserID: userID, Email: email}
		m.profiles[userID] = p
	}
	if field == repo.MediaResume {
		p.ResumeURL = url
	} else {
		p.ProfileImageURL = url
	}
	cp := *p
	return &cp, nil
}

type countingStore struct{ calls int }

func (s *countingStore) Save(_ context.Context, obj repo.Object) (string, error) {
	s.calls++
	return "/uploads/" + obj.Kind + obj.Ext, nil
}
