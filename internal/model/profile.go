package model

import (
	"bytes"
	"encoding/json"
	"strconv"
)

// Data-quality tiers reported in profile metadata.
const (
	QualityHigh   = "high"
	QualityMedium = "medium"
	QualityLow    = "low"
)

// ConsolidatedProfile is the normalized person profile built once per
// SearchRun from the full source-result mapping.
type ConsolidatedProfile struct {
	Person         Person          `json:"person"`
	Contact        Contact         `json:"contact"`
	Relationships  Relationships   `json:"relationships"`
	OnlinePresence OnlinePresence  `json:"online_presence"`
	Background     *Background     `json:"background,omitempty"`
	Metadata       ProfileMetadata `json:"metadata"`
}

// Person holds the identity fields of the profile.
type Person struct {
	Name            string       `json:"name,omitempty"`
	Confidence      float64      `json:"confidence,omitempty"`
	Age             LooseString  `json:"age,omitempty"`
	CurrentLocation *LocationRef `json:"current_location,omitempty"`
}

// LocationRef is a city/state/address triple.
type LocationRef struct {
	City    string `json:"city,omitempty"`
	State   string `json:"state,omitempty"`
	Address string `json:"address,omitempty"`
}

// Contact aggregates phones, emails and addresses.
type Contact struct {
	Phones    []Phone   `json:"phones"`
	Emails    []string  `json:"emails"`
	Addresses []Address `json:"addresses"`
}

// Relationships lists relatives and associates.
type Relationships struct {
	Relatives  []Relative `json:"relatives"`
	Associates []string   `json:"associates"`
}

// OnlinePresence lists social profiles and websites.
type OnlinePresence struct {
	SocialMedia []Profile `json:"social_media"`
	Websites    []string  `json:"websites"`
	Profiles    []string  `json:"profiles,omitempty"`
}

// Background holds record flags surfaced by aggregator sources.
type Background struct {
	CriminalRecords bool     `json:"criminal_records"`
	CourtRecords    bool     `json:"court_records"`
	BusinessRecords []string `json:"business_records,omitempty"`
}

// ProfileMetadata describes how and from what the profile was built.
type ProfileMetadata struct {
	SourcesUsed         []string `json:"sources_used"`
	DataQuality         string   `json:"data_quality"`
	LastUpdated         string   `json:"last_updated,omitempty"`
	ConsolidationMethod string   `json:"consolidation_method,omitempty"`
}

// LooseString is a string that also accepts bare JSON numbers when
// unmarshaling. Models asked for "age or age range" sometimes return 42
// instead of "42".
type LooseString string

// UnmarshalJSON implements json.Unmarshaler.
func (s *LooseString) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || string(data) == "null" {
		*s = ""
		return nil
	}
	if data[0] == '"' {
		var v string
		if err := json.Unmarshal(data, &v); err != nil {
			return err
		}
		*s = LooseString(v)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	*s = LooseString(n.String())
	return nil
}

// MarshalJSON implements json.Marshaler.
func (s LooseString) MarshalJSON() ([]byte, error) {
	return []byte(strconv.Quote(string(s))), nil
}
