package recognizer

import (
	"encoding/json"
	"fmt"
	"strings"
)

// finalResult mirrors the engine's finalized JSON record. The word list is
// absent when nothing was recognized.
type finalResult struct {
	Text   string     `json:"text"`
	Result []WordSpan `json:"result"`
}

// ParseResult decodes an engine's finalized JSON output into a typed Result.
// The loosely structured record is converted at this boundary so nothing
// downstream handles untyped maps.
func ParseResult(data []byte) (Result, error) {
	var raw finalResult
	if err := json.Unmarshal(data, &raw); err != nil {
		return Result{}, fmt.Errorf("failed to parse recognizer result: %w", err)
	}

	res := Result{
		Text:  strings.TrimSpace(raw.Text),
		Words: raw.Result,
	}

	if res.Text == "" && len(res.Words) > 0 {
		// A word list with no text is an engine inconsistency; rebuild the
		// text from the surface forms to keep the join invariant.
		words := make([]string, len(res.Words))
		for i, w := range res.Words {
			words[i] = w.Word
		}
		res.Text = strings.Join(words, " ")
	}

	return res, nil
}
