package storage

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"github.com/oksasatya/portfolio-api/internal/domain/repository"
)

// URLPrefix is where the router serves Dir.
const URLPrefix = "/uploads"

// LocalStore writes uploads into a directory served statically under URLPrefix.
type LocalStore struct {
	Dir   string
	now   func() time.Time
	newID func() string
}

func NewLocalStore(dir string) *LocalStore {
	return &LocalStore{Dir: dir, now: time.Now, newID: uuid.NewString}
}

func (s *LocalStore) Save(_ context.Context, obj repository.Object) (string, error) {
	if err := os.MkdirAll(s.Dir, 0o755); err != nil {
		return "", fmt.Errorf("create upload dir: %w", err)
	}
	name := fmt.Sprintf("%d-%s%s", s.now().UnixNano(), s.newID(), obj.Ext)
	// O_EXCL: never overwrite an earlier upload
	f, err := os.OpenFile(filepath.Join(s.Dir, name), os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return "", err
	}
	if _, err := f.Write(obj.Data); err != nil {
		_ = f.Close()
		_ = os.Remove(f.Name())
		return "", err
	}
	if err := f.Close(); err != nil {
		return "", err
	}
	return URLPrefix + "/" + name, nil
}

var _ repository.ObjectStore = (*LocalStore)(nil)
