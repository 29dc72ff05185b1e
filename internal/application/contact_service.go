package application

import (
	"context"
	"errors"

	"github.com/sirupsen/logrus"

	"github.com/oksasatya/portfolio-api/config"
	repo "github.com/oksasatya/portfolio-api/internal/domain/repository"
	"github.com/oksasatya/portfolio-api/pkg/apperror"
	"github.com/oksasatya/portfolio-api/pkg/helpers"
	"github.com/oksasatya/portfolio-api/pkg/mailer"
	mailtpl "github.com/oksasatya/portfolio-api/pkg/mailer/templates"
)

type ContactInput struct {
	Name    string
	Email   string
	Subject string
	Message string
}

// ContactService relays visitor messages to the portfolio owner by email.
type ContactService struct {
	Profiles repo.ProfileRepository
	Mail     *Notifier
	Cfg      *config.Config
	Logger   logrus.FieldLogger
}

func NewContactService(profiles repo.ProfileRepository, mail *Notifier, cfg *config.Config, logger logrus.FieldLogger) *ContactService {
	return &ContactService{Profiles: profiles, Mail: mail, Cfg: cfg, Logger: logger}
}

func (s *ContactService) Send(ctx context.Context, in ContactInput) error {
	if !s.Mail.Enabled() {
		return apperror.Unavailable("Contact form is currently unavailable")
	}
	p, err := s.Profiles.GetPublic(ctx)
	if errors.Is(err, repo.ErrNotFound) {
		return apperror.NotFound("There is no portfolio owner to contact yet")
	}
	if err != nil {
		return err
	}
	to := p.Email
	if to == "" && p.User != nil {
		to = p.User.Email
	}

	err = s.Mail.Send(ctx, mailer.EmailJob{
		To:       to,
		ReplyTo:  in.Email,
		Template: mailtpl.Contact,
		Data:     mailtpl.NewContactData(s.Cfg, p.FullName, to, in.Name, in.Email, in.Subject, in.Message),
	})
	if err != nil {
		helpers.LogError(s.Logger, "enqueue contact message failed", err, logrus.Fields{"from": in.Email})
		return apperror.Unavailable("Your message could not be sent, please try again later").WithCause(err)
	}
	return nil
}
