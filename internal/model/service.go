package model

import "strings"

// ServiceCategory is the coarse classification of a free-text service label.
type ServiceCategory string

// The fixed category set. Everything outside Data/Broadband/Voice is Other.
const (
	ServiceData      ServiceCategory = "Data"
	ServiceBroadband ServiceCategory = "Broadband"
	ServiceVoice     ServiceCategory = "Voice"
	ServiceOther     ServiceCategory = "Other"
)

// Categorize maps a free-text service label into the fixed category set.
// Rules are case-insensitive substring checks applied in a fixed order;
// the first match wins.
func Categorize(label string) ServiceCategory {
	t := strings.ToLower(label)
	switch {
	case strings.Contains(t, "broadband"):
		return ServiceBroadband
	case strings.Contains(t, "voice"), strings.Contains(t, "tele"):
		return ServiceVoice
	case strings.Contains(t, "data"):
		return ServiceData
	default:
		return ServiceOther
	}
}

// Category returns the record's service category.
func (r Record) Category() ServiceCategory {
	return Categorize(r.ServiceLabel())
}
