package aggregate

import (
	"context"
	"encoding/json"
	"regexp"

	"go.uber.org/zap"

	"github.com/sells-group/people-aggregator/internal/llm"
	"github.com/sells-group/people-aggregator/internal/model"
)

// namePattern matches two- or three-word capitalized sequences, the shape of
// most Western full names. Crude, but it only has to carry the fallback path.
var namePattern = regexp.MustCompile(`\b([A-Z][a-z]+ [A-Z][a-z]+(?: [A-Z][a-z]+)?)\b`)

const maxExtractedNames = 5

// nameFromFaceResults extracts candidate names from the face-search phase
// output and returns the highest-confidence one, or "" when none was found.
func (a *Aggregator) nameFromFaceResults(ctx context.Context, names []string, results []model.SourceResult) string {
	bySource := make(map[string]model.SourceResult, len(results))
	for i, name := range names {
		bySource[name] = results[i]
	}

	raw, err := json.Marshal(bySource)
	if err != nil {
		return ""
	}

	candidates := a.completeNames(ctx, faceNamesPrompt(string(raw)), string(raw))
	if len(candidates) == 0 {
		return ""
	}
	return candidates[0]
}

// ExtractNames pulls person names out of arbitrary text, capped at the top
// candidates in confidence order.
func (a *Aggregator) ExtractNames(ctx context.Context, text string) []string {
	return a.completeNames(ctx, textNamesPrompt(text), text)
}

// completeNames asks the completion provider for names and falls back to
// pattern extraction over the raw input on any fault.
func (a *Aggregator) completeNames(ctx context.Context, prompt, fallbackInput string) []string {
	if a.llm == nil {
		return fallbackNames(fallbackInput)
	}

	out, err := a.llm.Complete(ctx, prompt, nameExtractionTemperature)
	if err == nil {
		var parsed struct {
			Names []string `json:"names"`
		}
		if err = json.Unmarshal([]byte(llm.StripFences(out)), &parsed); err == nil {
			if len(parsed.Names) > maxExtractedNames {
				parsed.Names = parsed.Names[:maxExtractedNames]
			}
			return parsed.Names
		}
	}
	zap.L().Warn("aggregate: llm name extraction failed, using pattern fallback", zap.Error(err))
	return fallbackNames(fallbackInput)
}

// fallbackNames runs the capitalized-name pattern over the text, keeping the
// first occurrence of each name.
func fallbackNames(text string) []string {
	matches := namePattern.FindAllString(text, -1)
	seen := make(map[string]struct{}, len(matches))
	var out []string
	for _, m := range matches {
		if _, ok := seen[m]; ok {
			continue
		}
		seen[m] = struct{}{}
		out = append(out, m)
		if len(out) == maxExtractedNames {
			break
		}
	}
	return out
}
