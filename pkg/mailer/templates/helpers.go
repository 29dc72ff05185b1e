package templates

import (
	"strings"
	"time"

	"github.com/oksasatya/portfolio-api/config"
)

// Option pattern
type Option func(*EmailData)

func WithTime(t time.Time) Option {
	return func(d *EmailData) { d.Time = t.UTC().Format("02 January 2006, 15:04 MST") }
}

func WithRoleChange(previous, current string) Option {
	return func(d *EmailData) {
		d.PreviousRole = previous
		d.Role = current
	}
}

// NewBaseEmailData fills the fields every template shares, then applies opts.
func NewBaseEmailData(cfg *config.Config, typ, name, email, recipient string, opts ...Option) EmailData {
	d := EmailData{
		Name:           strings.TrimSpace(name),
		Email:          email,
		RecipientEmail: recipient,
		Type:           typ,
		AppName:        cfg.AppName,
		SiteURL:        cfg.SiteURL,
	}
	for _, opt := range opts {
		opt(&d)
	}
	return d
}

func NewWelcomeData(cfg *config.Config, email, role string, opts ...Option) map[string]any {
	opts = append([]Option{func(d *EmailData) { d.Role = role }}, opts...)
	return ToMap(NewBaseEmailData(cfg, Welcome, "", email, email, opts...))
}

func NewRoleChangedData(cfg *config.Config, email, previous, current string, opts ...Option) map[string]any {
	opts = append([]Option{WithRoleChange(previous, current)}, opts...)
	return ToMap(NewBaseEmailData(cfg, RoleChanged, "", email, email, opts...))
}

func NewContactData(cfg *config.Config, ownerName, ownerEmail, senderName, senderEmail, subject, message string, opts ...Option) map[string]any {
	opts = append([]Option{func(d *EmailData) {
		d.SenderName = senderName
		d.SenderEmail = senderEmail
		d.Subject = subject
		d.Message = message
	}}, opts...)
	return ToMap(NewBaseEmailData(cfg, Contact, ownerName, ownerEmail, ownerEmail, opts...))
}
