package repository

import "context"

// Object is an uploaded file ready to be written to storage.
type Object struct {
	Kind        string // profile-image, project-image, resume
	OwnerID     string
	Ext         string // with leading dot
	ContentType string
	Data        []byte
}

// ObjectStore persists uploaded files and returns the URL they are served
// from. A URL starting with "/" is relative to the API host.
type ObjectStore interface {
	Save(ctx context.Context, obj Object) (string, error)
}
