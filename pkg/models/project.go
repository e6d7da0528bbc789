// Package models holds the project types shared by the API client, the server and the dashboard.
package models

import (
	"errors"
	"fmt"
	"sort"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// Field names for the project draft
const (
	// FieldName is the name field of a project draft
	FieldName = "name"
	// FieldClient is the client field of a project draft
	FieldClient = "client"
	// FieldDescription is the description field of a project draft
	FieldDescription = "description"
	// FieldStatus is the status field of a project draft
	FieldStatus = "status"
)

// ProjectStatus is the lifecycle stage of a project
type ProjectStatus string

// Project status constants
const (
	// StatusDraft is a project that has not started yet
	StatusDraft ProjectStatus = "draft"
	// StatusInProgress is a project currently being delivered
	StatusInProgress ProjectStatus = "in_progress"
	// StatusDelivered is a project handed over to the client
	StatusDelivered ProjectStatus = "delivered"
	// StatusArchived is a project kept for history only
	StatusArchived ProjectStatus = "archived"
)

// Statuses returns every project status in display order.
func Statuses() []ProjectStatus {
	return []ProjectStatus{StatusDraft, StatusInProgress, StatusDelivered, StatusArchived}
}

// String returns the string representation of the project status
func (s ProjectStatus) String() string {
	return string(s)
}

// IsValid reports whether s is one of the known statuses.
func (s ProjectStatus) IsValid() bool {
	for _, known := range Statuses() {
		if s == known {
			return true
		}
	}
	return false
}

// ParseProjectStatus converts a string to a ProjectStatus
func ParseProjectStatus(str string) (ProjectStatus, error) {
	status := ProjectStatus(str)
	if !status.IsValid() {
		return "", fmt.Errorf("invalid project status: %s", str)
	}
	return status, nil
}

// Project is a client engagement as exposed by the API.
//
// Status is decoded as-is: values outside the enumeration are kept so that
// they can be reported and displayed with a fallback label.
type Project struct {
	ID          string        `json:"id"`
	Name        string        `json:"name"`
	Client      string        `json:"client"`
	Description string        `json:"description"`
	Status      ProjectStatus `json:"status"`
	CreatedAt   time.Time     `json:"created_at"`
}

// Draft holds the not-yet-persisted fields of a new project.
type Draft struct {
	Name        string        `json:"name"`
	Client      string        `json:"client"`
	Description string        `json:"description"`
	Status      ProjectStatus `json:"status"`
}

// NewDraft returns the empty draft a form starts from.
func NewDraft() Draft {
	return Draft{Status: StatusDraft}
}

// Validate checks the fields required to create a project.
// The returned error is a validation.Errors keyed by field name.
func (d Draft) Validate() error {
	statuses := make([]interface{}, 0, len(Statuses()))
	for _, s := range Statuses() {
		statuses = append(statuses, s)
	}
	return validation.ValidateStruct(&d,
		validation.Field(&d.Name, validation.Required),
		validation.Field(&d.Client, validation.Required),
		validation.Field(&d.Status, validation.In(statuses...)),
	)
}

// WithDefaults returns a copy of d with an empty status set to draft.
func (d Draft) WithDefaults() Draft {
	if d.Status == "" {
		d.Status = StatusDraft
	}
	return d
}

// InvalidFields returns the sorted field names reported by a Draft.Validate error.
// It returns nil if err is not a field validation error.
func InvalidFields(err error) []string {
	var errs validation.Errors
	if !errors.As(err, &errs) {
		return nil
	}
	fields := make([]string, 0, len(errs))
	for field := range errs {
		fields = append(fields, field)
	}
	sort.Strings(fields)
	return fields
}
