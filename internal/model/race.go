package model

import (
	"net/url"
	"slices"
	"strings"
)

// RaceKey identifies an electoral contest. District is empty for at-large
// offices.
type RaceKey struct {
	Jurisdiction string `json:"jurisdiction"`
	Office       string `json:"office"`
	District     string `json:"district"`
}

// Label is the canonical display and selection string for a race, e.g.
// "City - Mayor" or "County - Supervisor District 3". Every place that needs to
// match a candidate to a race goes through this function.
func (k RaceKey) Label() string {
	label := k.Jurisdiction + " - " + k.Office
	if k.District != "" {
		label += " District " + k.District
	}
	return label
}

// String implements fmt.Stringer.
func (k RaceKey) String() string {
	return k.Label()
}

// RaceLabels returns the sorted, de-duplicated race labels of candidates.
func RaceLabels(candidates []Candidate) []string {
	seen := make(map[string]bool, len(candidates))
	labels := make([]string, 0, len(candidates))
	for _, c := range candidates {
		label := c.Race().Label()
		if seen[label] {
			continue
		}
		seen[label] = true
		labels = append(labels, label)
	}
	slices.Sort(labels)
	return labels
}

// Tracking parameters appended to outbound jurisdiction links.
var jurisdictionUTM = url.Values{
	"utm_source":   {"sd_campaign_tracker"},
	"utm_medium":   {"jurisdiction_link"},
	"utm_campaign": {"county_tracker"},
}

// JurisdictionURL decorates a jurisdiction link with tracking parameters.
// Jurisdictions that are not http(s) URLs yield "#".
func JurisdictionURL(jurisdiction string) string {
	if !strings.HasPrefix(jurisdiction, "http") {
		return "#"
	}
	separator := "?"
	if strings.Contains(jurisdiction, "?") {
		separator = "&"
	}
	return jurisdiction + separator + jurisdictionUTM.Encode()
}
