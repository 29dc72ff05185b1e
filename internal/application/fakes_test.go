package application

import (
	"context"
	"encoding/json"
	"io"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/portfolio-api/config"
	"github.com/oksasatya/portfolio-api/internal/domain/entity"
	repo "github.com/oksasatya/portfolio-api/internal/domain/repository"
	"github.com/oksasatya/portfolio-api/pkg/listquery"
)

func quietLogger() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}

func testConfig() *config.Config {
	return &config.Config{AppName: "Folio", SiteURL: "https://folio.example.dev"}
}

// fakeUserRepo mirrors the store rules: first account is owner, emails are
// unique case-insensitively, the last owner cannot be demoted.
type fakeUserRepo struct {
	mu    sync.Mutex
	users map[string]*entity.User

	GetByIDFn func(ctx context.Context, id string) (*entity.User, error)
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: map[string]*entity.User{}}
}

func (f *fakeUserRepo) Create(_ context.Context, u *entity.User) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	email := entity.NormalizeEmail(u.Email)
	for _, existing := range f.users {
		if existing.Email == email {
			return repo.ErrConflict
		}
	}
	if u.Role == "" {
		u.Role = entity.RoleViewer
		if len(f.users) == 0 {
			u.Role = entity.RoleOwner
		}
	}
	now := time.Now()
	u.ID, u.Email, u.CreatedAt, u.UpdatedAt = uuid.NewString(), email, now, now
	cp := *u
	f.users[u.ID] = &cp
	return nil
}

func (f *fakeUserRepo) GetByID(ctx context.Context, id string) (*entity.User, error) {
	if f.GetByIDFn != nil {
		return f.GetByIDFn(ctx, id)
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	u, ok := f.users[id]
	if !ok {
		return nil, repo.ErrNotFound
	}
	cp := *u
	return &cp, nil
}

func (f *fakeUserRepo) GetByEmail(_ context.Context, email string) (*entity.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, u := range f.users {
		if u.Email == entity.NormalizeEmail(email) {
			cp := *u
			return &cp, nil
		}
	}
	return nil, repo.ErrNotFound
}

func (f *fakeUserRepo) List(_ context.Context) ([]entity.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []entity.User
	for _, u := range f.users {
		out = append(out, *u)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}

func (f *fakeUserRepo) UpdateRole(_ context.Context, id string, role entity.Role) (*entity.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	u, ok := f.users[id]
	if !ok {
		return nil, repo.ErrNotFound
	}
	if u.Role == entity.RoleOwner && role != entity.RoleOwner {
		owners := 0
		for _, other := range f.users {
			if other.Role == entity.RoleOwner {
				owners++
			}
		}
		if owners <= 1 {
			return nil, repo.ErrLastOwner
		}
	}
	u.Role = role
	u.UpdatedAt = time.Now()
	cp := *u
	return &cp, nil
}

// fakeProjectRepo keeps projects in insertion order.
type fakeProjectRepo struct {
	mu       sync.Mutex
	projects []*entity.Project

	CreateFn func(ctx context.Context, p *entity.Project) error
}

func (f *fakeProjectRepo) Schema() *listquery.Schema {
	return &listquery.Schema{Table: "projects", Fields: []listquery.Field{
		{Name: "id", Type: listquery.UUID},
		{Name: "title", Type: listquery.Text},
		{Name: "user_id", Type: listquery.UUID},
		{Name: "created_at", Type: listquery.Timestamp},
	}}
}

func (f *fakeProjectRepo) List(_ context.Context, q *listquery.Query) (*listquery.Page, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	page := &listquery.Page{Total: int64(len(f.projects)), Items: []map[string]any{}}
	for i := q.Offset(); i < len(f.projects) && i < q.Offset()+q.Limit; i++ {
		p := f.projects[i]
		page.Items = append(page.Items, map[string]any{"id": p.ID, "title": p.Title})
	}
	return page, nil
}

func (f *fakeProjectRepo) find(id string) (int, bool) {
	for i, p := range f.projects {
		if p.ID == id {
			return i, true
		}
	}
	return 0, false
}

func (f *fakeProjectRepo) GetByID(_ context.Context, id string) (*entity.Project, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	i, ok := f.find(id)
	if !ok {
		return nil, repo.ErrNotFound
	}
	cp := *f.projects[i]
	return &cp, nil
}

func (f *fakeProjectRepo) Create(ctx context.Context, p *entity.Project) error {
	if f.CreateFn != nil {
		return f.CreateFn(ctx, p)
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	p.ID = uuid.NewString()
	p.CreatedAt = time.Now()
	cp := *p
	f.projects = append(f.projects, &cp)
	return nil
}

func (f *fakeProjectRepo) Update(_ context.Context, p *entity.Project) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	i, ok := f.find(p.ID)
	if !ok {
		return repo.ErrNotFound
	}
	cp := *p
	f.projects[i] = &cp
	return nil
}

func (f *fakeProjectRepo) Delete(_ context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	i, ok := f.find(id)
	if !ok {
		return repo.ErrNotFound
	}
	f.projects = append(f.projects[:i], f.projects[i+1:]...)
	return nil
}

type fakeIndexer struct {
	indexed []string
	removed []string
}

func (f *fakeIndexer) Index(_ context.Context, p *entity.Project) { f.indexed = append(f.indexed, p.ID) }
func (f *fakeIndexer) Remove(_ context.Context, id string)        { f.removed = append(f.removed, id) }

// fakeProfileRepo stores at most one profile per user.
type fakeProfileRepo struct {
	mu       sync.Mutex
	profiles map[string]*entity.Profile // by user id
	owner    *entity.User

	GetPublicFn func(ctx context.Context) (*entity.Profile, error)
}

func newFakeProfileRepo() *fakeProfileRepo {
	return &fakeProfileRepo{profiles: map[string]*entity.Profile{}}
}

func (f *fakeProfileRepo) GetByID(_ context.Context, id string) (*entity.Profile, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, p := range f.profiles {
		if p.ID == id {
			cp := *p
			return &cp, nil
		}
	}
	return nil, repo.ErrNotFound
}

func (f *fakeProfileRepo) GetByUserID(_ context.Context, userID string) (*entity.Profile, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	p, ok := f.profiles[userID]
	if !ok {
		return nil, repo.ErrNotFound
	}
	cp := *p
	return &cp, nil
}

func (f *fakeProfileRepo) GetPublic(ctx context.Context) (*entity.Profile, error) {
	if f.GetPublicFn != nil {
		return f.GetPublicFn(ctx)
	}
	if f.owner == nil {
		return nil, repo.ErrNotFound
	}
	p, err := f.GetByUserID(ctx, f.owner.ID)
	if err != nil {
		return nil, err
	}
	p.User = &entity.UserSummary{ID: f.owner.ID, Email: f.owner.Email}
	p.UserID = ""
	return p, nil
}

func (f *fakeProfileRepo) Create(_ context.Context, p *entity.Profile) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.profiles[p.UserID]; ok {
		return repo.ErrConflict
	}
	p.ID = uuid.NewString()
	cp := *p
	f.profiles[p.UserID] = &cp
	return nil
}

func (f *fakeProfileRepo) Update(_ context.Context, p *entity.Profile) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.profiles[p.UserID]; !ok {
		return repo.ErrNotFound
	}
	cp := *p
	f.profiles[p.UserID] = &cp
	return nil
}

func (f *fakeProfileRepo) Delete(_ context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for uid, p := range f.profiles {
		if p.ID == id {
			delete(f.profiles, uid)
			return nil
		}
	}
	return repo.ErrNotFound
}

func (f *fakeProfileRepo) SetMedia(_ context.Context, userID, email string, field repo.MediaField, url string) (*entity.Profile, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	p, ok := f.profiles[userID]
	if !ok {
		p = &entity.Profile{ID: uuid.NewString(), UserID: userID, Email: email}
		f.profiles[userID] = p
	}
	switch field {
	case repo.MediaProfileImage:
		p.ProfileImageURL = url
	case repo.MediaResume:
		p.ResumeURL = url
	}
	cp := *p
	return &cp, nil
}

type fakeCache struct {
	mu      sync.Mutex
	values  map[string][]byte
	deletes int
}

func newFakeCache() *fakeCache { return &fakeCache{values: map[string][]byte{}} }

func (f *fakeCache) GetJSON(_ context.Context, key string, dest any) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	b, ok := f.values[key]
	if !ok {
		return false, nil
	}
	return true, json.Unmarshal(b, dest)
}

func (f *fakeCache) SetJSON(_ context.Context, key string, value any, _ time.Duration) error {
	b, err := json.Marshal(value)
	if err != nil {
		return err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.values[key] = b
	return nil
}

func (f *fakeCache) Delete(_ context.Context, keys ...string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, k := range keys {
		delete(f.values, k)
	}
	f.deletes++
	return nil
}

// fakeStore records saved objects and returns a host-relative URL.
type fakeStore struct {
	saved []repo.Object
	err   error
}

func (f *fakeStore) Save(_ context.Context, obj repo.Object) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	f.saved = append(f.saved, obj)
	return "/uploads/" + strings.ReplaceAll(obj.Kind, "-", "_") + obj.Ext, nil
}

type fakePublisher struct {
	mu   sync.Mutex
	jobs []any
	err  error
}

func (f *fakePublisher) PublishJSON(_ context.Context, body any) error {
	if f.err != nil {
		return f.err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.jobs = append(f.jobs, body)
	return nil
}
