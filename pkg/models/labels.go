package models

import (
	"fmt"
	"strings"
)

// FallbackLabelPrefix marks the label of a status that has no configured label
const FallbackLabelPrefix = "? "

// StatusLabels maps every project status to its display label.
type StatusLabels map[ProjectStatus]string

// DefaultStatusLabels returns the labels used when none are configured.
func DefaultStatusLabels() StatusLabels {
	return StatusLabels{
		StatusDraft:      "Brouillon",
		StatusInProgress: "En cours",
		StatusDelivered:  "Livré",
		StatusArchived:   "Archivé",
	}
}

// Validate ensures the mapping is total over the known statuses and has no extra keys.
func (l StatusLabels) Validate() error {
	var missing []string
	for _, s := range Statuses() {
		if strings.TrimSpace(l[s]) == "" {
			missing = append(missing, s.String())
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("status labels missing for: %s", strings.Join(missing, ", "))
	}
	for s := range l {
		if !s.IsValid() {
			return fmt.Errorf("status label defined for unknown status: %s", s)
		}
	}
	return nil
}

// Label returns the display label of s. For an unmapped status it returns a
// fallback label built from the raw value and false.
func (l StatusLabels) Label(s ProjectStatus) (string, bool) {
	if label, ok := l[s]; ok {
		return label, true
	}
	return FallbackLabelPrefix + s.String(), false
}

// Clone returns an independent copy of the mapping.
func (l StatusLabels) Clone() StatusLabels {
	out := make(StatusLabels, len(l))
	for k, v := range l {
		out[k] = v
	}
	return out
}
