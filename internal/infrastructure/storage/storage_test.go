package storage

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/oksasatya/portfolio-api/internal/domain/repository"
)

func TestLocalStoreSave(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "uploads")
	s := NewLocalStore(dir)
	s.now = func() time.Time { return time.Unix(0, 42) }
	s.newID = func() string { return "abc" }

	url, err := s.Save(context.Background(), repository.Object{Kind: "resume", Ext: ".pdf", Data: []byte("%PDF-1.4")})
	require.NoError(t, err)
	require.Equal(t, "/uploads/42-abc.pdf", url)

	b, err := os.ReadFile(filepath.Join(dir, "42-abc.pdf"))
	require.NoError(t, err)
	require.Equal(t, "%PDF-1.4", string(b))

	// same name twice is refused rather than overwritten
	_, err = s.Save(context.Background(), repository.Object{Ext: ".pdf", Data: []byte("other")})
	require.Error(t, err)
}

func TestGCSObjectPath(t *testing.T) {
	s := NewGCSStore(nil, "bucket")
	s.newID = func() string { return "id" }
	require.Equal(t, "uploads/profile-image/u1/id.png",
		s.ObjectPath(repository.Object{Kind: "profile-image", OwnerID: "u1", Ext: ".png"}))

	_, err := NewGCSStore(nil, "").Save(context.Background(), repository.Object{})
	require.Error(t, err)
}
