package model

// SourceResult is the outcome of one adapter call: either a provider-shaped
// success document (whichever sections the provider fills) or a typed
// failure carrying the source name and a human-readable cause. Produced
// exclusively by its adapter; owned by the SearchRun afterward.
type SourceResult struct {
	Source     string                    `json:"source"`
	Records    []Record                  `json:"results,omitempty"`
	Matches    []FaceMatch               `json:"matches,omitempty"`
	Queries    []EngineQuery             `json:"queries,omitempty"`
	Platforms  map[string]PlatformResult `json:"platforms,omitempty"`
	Note       string                    `json:"note,omitempty"`
	Suggestion string                    `json:"suggestion,omitempty"`
	Error      string                    `json:"error,omitempty"`
}

// Failed reports whether the result is a typed failure.
func (r SourceResult) Failed() bool {
	return r.Error != ""
}

// Failure builds a failure result for the named source.
func Failure(source string, err error) SourceResult {
	return SourceResult{Source: source, Error: err.Error()}
}

// Record is a person record from a people-search aggregator.
type Record struct {
	Name       string     `json:"name,omitempty"`
	Age        string     `json:"age,omitempty"`
	Addresses  []Address  `json:"addresses,omitempty"`
	Phones     []Phone    `json:"phones,omitempty"`
	Emails     []string   `json:"emails,omitempty"`
	Relatives  []Relative `json:"relatives,omitempty"`
	Associates []string   `json:"associates,omitempty"`
}

// Phone is a phone number with an optional line type.
type Phone struct {
	Number     string  `json:"number"`
	Type       string  `json:"type,omitempty"`
	Confidence float64 `json:"confidence,omitempty"`
}

// Address is a postal address, current or previous.
type Address struct {
	Full       string  `json:"full"`
	Type       string  `json:"type,omitempty"`
	Confidence float64 `json:"confidence,omitempty"`
}

// Relative links a person to a possible family member.
type Relative struct {
	Name         string `json:"name"`
	Relationship string `json:"relationship,omitempty"`
}

// FaceMatch is one hit from a reverse face search.
type FaceMatch struct {
	URL       string  `json:"url,omitempty"`
	Thumbnail string  `json:"thumbnail,omitempty"`
	Score     float64 `json:"score,omitempty"`
	Site      string  `json:"site,omitempty"`
	Title     string  `json:"title,omitempty"`
	Snippet   string  `json:"snippet,omitempty"`
}

// EngineQuery groups the web hits returned for one search-engine query.
type EngineQuery struct {
	Type    string   `json:"type"`
	Query   string   `json:"query"`
	Results []WebHit `json:"results"`
}

// WebHit is a single search-engine result.
type WebHit struct {
	Title      string `json:"title"`
	URL        string `json:"url"`
	Snippet    string `json:"snippet,omitempty"`
	DisplayURL string `json:"display_url,omitempty"`
}

// PlatformResult holds profile lookups for one social platform.
type PlatformResult struct {
	Platform string    `json:"platform"`
	Profiles []Profile `json:"profiles"`
	Error    string    `json:"error,omitempty"`
}

// Profile is a social profile reference.
type Profile struct {
	Platform string `json:"platform"`
	Username string `json:"username,omitempty"`
	URL      string `json:"url"`
	Avatar   string `json:"avatar,omitempty"`
	Exists   bool   `json:"exists,omitempty"`
}

// DedupeRecords removes records sharing a (name, age) composite key,
// keeping the first occurrence.
func DedupeRecords(records []Record) []Record {
	seen := make(map[string]struct{}, len(records))
	out := records[:0:0]
	for _, r := range records {
		key := r.Name + "\x00" + r.Age
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, r)
	}
	return out
}
