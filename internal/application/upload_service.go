package application

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/portfolio-api/internal/domain/entity"
	repo "github.com/oksasatya/portfolio-api/internal/domain/repository"
	"github.com/oksasatya/portfolio-api/pkg/apperror"
	"github.com/oksasatya/portfolio-api/pkg/helpers"
)

type UploadKind string

const (
	UploadProfileImage UploadKind = "profile-image"
	UploadProjectImage UploadKind = "project-image"
	UploadResume       UploadKind = "resume"
)

var (
	imageTypes  = []string{"image/jpeg", "image/png", "image/gif", "image/heic", "image/heif", "image/webp"}
	resumeTypes = []string{"application/pdf"}
)

func (k UploadKind) allowed() []string {
	if k == UploadResume {
		return resumeTypes
	}
	return imageTypes
}

func (k UploadKind) Valid() bool {
	switch k {
	case UploadProfileImage, UploadProjectImage, UploadResume:
		return true
	}
	return false
}

// UploadRequest is one uploaded file. ProjectID is only read for project
// images. BaseURL prefixes store URLs that are host-relative.
type UploadRequest struct {
	Kind      UploadKind
	Body      io.Reader
	ProjectID string
	BaseURL   string
}

type UploadResult struct {
	URL         string          `json:"url"`
	Kind        UploadKind      `json:"kind"`
	ContentType string          `json:"content_type"`
	Size        int             `json:"size"`
	Profile     *entity.Profile `json:"profile,omitempty"`
	Project     *entity.Project `json:"project,omitempty"`
}

type UploadService struct {
	Store    repo.ObjectStore
	Profiles *ProfileService
	Projects *ProjectService
	MaxBytes int64
	Logger   logrus.FieldLogger
}

func NewUploadService(store repo.ObjectStore, profiles *ProfileService, projects *ProjectService, maxBytes int64, logger logrus.FieldLogger) *UploadService {
	return &UploadService{Store: store, Profiles: profiles, Projects: projects, MaxBytes: maxBytes, Logger: logger}
}

// Upload validates size and content type, stores the file and records its
// URL. Nothing is stored when validation fails.
func (s *UploadService) Upload(ctx context.Context, actor *entity.User, req UploadRequest) (*UploadResult, error) {
	if !req.Kind.Valid() {
		return nil, apperror.Validation(fmt.Sprintf("Unknown upload kind %q", req.Kind))
	}
	if req.Kind == UploadProjectImage && !actor.HasRole(entity.RoleOwner, entity.RoleAdmin) {
		return nil, apperror.Forbidden(fmt.Sprintf("User role %s is not authorized to upload project images", actor.Role))
	}
	data, err := io.ReadAll(io.LimitReader(req.Body, s.MaxBytes+1))
	if err != nil {
		return nil, apperror.Validation("Could not read uploaded file").WithCause(err)
	}
	if len(data) == 0 {
		return nil, apperror.Validation("Please upload a file")
	}
	if int64(len(data)) > s.MaxBytes {
		return nil, apperror.Validation(fmt.Sprintf("File too large, maximum size is %d bytes", s.MaxBytes))
	}

	mt := mimetype.Detect(data)
	if !mimetype.EqualsAny(mt.String(), req.Kind.allowed()...) {
		return nil, apperror.Validation(fmt.Sprintf("File type %s is not allowed for %s uploads", mt.String(), req.Kind))
	}

	if req.Kind == UploadProjectImage && req.ProjectID != "" {
		project, err := s.Projects.Get(ctx, req.ProjectID)
		if err != nil {
			return nil, err
		}
		if !actor.CanModify(project.UserID) {
			return nil, s.Projects.forbidden("update")
		}
	}

	url, err := s.Store.Save(ctx, repo.Object{
		Kind:        string(req.Kind),
		OwnerID:     actor.ID,
		Ext:         mt.Extension(),
		ContentType: mt.String(),
		Data:        data,
	})
	if err != nil {
		helpers.LogError(s.Logger, "store upload failed", err, logrus.Fields{"kind": req.Kind, "user_id": actor.ID})
		return nil, apperror.Upload("File upload failed", err)
	}
	if strings.HasPrefix(url, "/") {
		url = strings.TrimRight(req.BaseURL, "/") + url
	}

	res := &UploadResult{URL: url, Kind: req.Kind, ContentType: mt.String(), Size: len(data)}
	switch req.Kind {
	case UploadProfileImage:
		res.Profile, err = s.Profiles.SetMedia(ctx, actor, repo.MediaProfileImage, url)
	case UploadResume:
		res.Profile, err = s.Profiles.SetMedia(ctx, actor, repo.MediaResume, url)
	case UploadProjectImage:
		if req.ProjectID != "" {
			res.Project, err = s.Projects.Update(ctx, actor, req.ProjectID, func(p *entity.Project) error {
				p.ImageURL = url
				return nil
			})
		}
	}
	if err != nil {
		return nil, err
	}
	return res, nil
}
