package domain

import (
	"strings"
	"time"
)

// Project represents project data used by this package.
type Project struct {
	ID           string
	Slug         string
	Name         string
	Description  string
	TicketPrefix string
	CreatedAt    time.Time
	UpdatedAt    time.Time
	ArchivedAt   *time.Time
}

// NewProject constructs a new value for this package. The ticket prefix
// defaults to "T" when blank.
func NewProject(id, name, description, ticketPrefix string, now time.Time) (Project, error) {
	id = strings.TrimSpace(id)
	name = strings.TrimSpace(name)
	if id == "" {
		return Project{}, ErrInvalidID
	}
	if name == "" {
		return Project{}, ErrInvalidName
	}
	prefix, err := NormalizeTicketPrefix(ticketPrefix)
	if err != nil {
		return Project{}, err
	}

	return Project{
		ID:           id,
		Slug:         normalizeSlug(name),
		Name:         name,
		Description:  strings.TrimSpace(description),
		TicketPrefix: prefix,
		CreatedAt:    now.UTC(),
		UpdatedAt:    now.UTC(),
	}, nil
}

// Rename renames the requested operation.
func (p *Project) Rename(name string, now time.Time) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return ErrInvalidName
	}
	p.Name = name
	p.Slug = normalizeSlug(name)
	p.UpdatedAt = now.UTC()
	return nil
}

// Archive archives the requested operation.
func (p *Project) Archive(now time.Time) {
	ts := now.UTC()
	p.ArchivedAt = &ts
	p.UpdatedAt = ts
}

// Restore restores the requested operation.
func (p *Project) Restore(now time.Time) {
	p.ArchivedAt = nil
	p.UpdatedAt = now.UTC()
}

// NormalizeTicketPrefix uppercases and validates a ticket prefix: one to
// five ASCII letters. Blank input falls back to "T".
func NormalizeTicketPrefix(prefix string) (string, error) {
	prefix = strings.ToUpper(strings.TrimSpace(prefix))
	if prefix == "" {
		return "T", nil
	}
	if len(prefix) > 5 {
		return "", ErrInvalidPrefix
	}
	for _, r := range prefix {
		if r < 'A' || r > 'Z' {
			return "", ErrInvalidPrefix
		}
	}
	return prefix, nil
}

// normalizeSlug normalizes slug.
func normalizeSlug(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return ""
	}

	var b strings.Builder
	prevDash := false
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z':
			b.WriteRune(r)
			prevDash = false
		case r >= '0' && r <= '9':
			b.WriteRune(r)
			prevDash = false
		default:
			if !prevDash {
				b.WriteByte('-')
				prevDash = true
			}
		}
	}
	return strings.Trim(b.String(), "-")
}
