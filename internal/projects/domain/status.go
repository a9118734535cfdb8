package domain

import "fmt"

// Status is the lifecycle state of a project. It is the only status type in
// the codebase; the repository maps it to the TEXT column.
type Status string

const (
	StatusDevelopment Status = "Development"
	StatusActive      Status = "Active"
	StatusInactive    Status = "Inactive"
	StatusArchived    Status = "Archived"
)

var AllStatuses = []Status{StatusDevelopment, StatusActive, StatusInactive, StatusArchived}

func (s Status) Valid() bool {
	switch s {
	case StatusDevelopment, StatusActive, StatusInactive, StatusArchived:
		return true
	}
	return false
}

// ParseStatus maps a stored value back to a Status.
func ParseStatus(v string) (Status, error) {
	s := Status(v)
	if !s.Valid() {
		return "", fmt.Errorf("unknown project status %q", v)
	}
	return s, nil
}
