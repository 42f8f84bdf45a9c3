package aggregate

// Completion temperatures. Extraction tolerates a little variety; the
// consolidation reducer wants the most deterministic answer the provider
// will give.
const (
	nameExtractionTemperature = 0.3
	consolidationTemperature  = 0.2
)

func faceNamesPrompt(results string) string {
	return `Analyze the following reverse face search results and extract the most likely person names.
Look for names in titles, snippets, and URLs. Return the top 5 most confident names, ordered by confidence.

Face Search Results:
` + results + `

Return format: {"names": ["Full Name 1", "Full Name 2", ...]}
Return only the JSON object, no other text.`
}

func textNamesPrompt(text string) string {
	return `Extract all person names from the following text. Return them as a JSON array.

Text: ` + text + `

Return format: {"names": ["Name 1", "Name 2", ...]}
Return only the JSON object, no other text.`
}

func consolidationPrompt(sources string) string {
	return `Consolidate the following person data from multiple sources into a single, comprehensive profile.

Data Sources:
` + sources + `

Create a consolidated profile with the following structure:
{
  "person": {
    "name": "Full Name",
    "confidence": 0.0-1.0,
    "age": "age or age range",
    "current_location": {
      "city": "City",
      "state": "State",
      "address": "Full Address if available"
    }
  },
  "contact": {
    "phones": [{"number": "...", "type": "mobile/landline", "confidence": 0.0-1.0}],
    "emails": ["email@example.com"],
    "addresses": [{"full": "...", "type": "current/previous", "confidence": 0.0-1.0}]
  },
  "relationships": {
    "relatives": [{"name": "...", "relationship": "..."}],
    "associates": ["name"]
  },
  "online_presence": {
    "social_media": [{"platform": "...", "url": "...", "username": "..."}],
    "websites": ["url"],
    "profiles": ["url"]
  },
  "background": {
    "criminal_records": true/false,
    "court_records": true/false,
    "business_records": ["..."]
  },
  "metadata": {
    "sources_used": ["source1", "source2"],
    "data_quality": "high/medium/low"
  }
}

Resolve any conflicts between sources and include confidence scores.
Return only the JSON object, no other text.`
}
