package application

import "context"

// ProjectSearcher runs full-text queries over indexed projects.
type ProjectSearcher interface {
	Search(ctx context.Context, q string, size int) ([]map[string]any, error)
}
