package recognizer

import (
	"strings"
	"testing"
)

func TestParseResultWithWords(t *testing.T) {
	data := []byte(`{
		"result": [
			{"conf": 0.98, "start": 0.33, "end": 0.81, "word": "hello"},
			{"conf": 0.95, "start": 0.90, "end": 1.35, "word": "world"}
		],
		"text": "hello world"
	}`)

	res, err := ParseResult(data)
	if err != nil {
		t.Fatalf("ParseResult failed: %v", err)
	}

	if res.Text != "hello world" {
		t.Errorf("Expected text 'hello world', got '%s'", res.Text)
	}

	if len(res.Words) != 2 {
		t.Fatalf("Expected 2 word spans, got %d", len(res.Words))
	}

	first := res.Words[0]
	if first.Word != "hello" || first.Start != 0.33 || first.End != 0.81 || first.Conf != 0.98 {
		t.Errorf("Unexpected first word span: %+v", first)
	}

	// Text must be the join of the word surface forms
	joined := make([]string, len(res.Words))
	for i, w := range res.Words {
		joined[i] = w.Word
	}
	if strings.Join(joined, " ") != res.Text {
		t.Errorf("Text '%s' is not the join of word spans %v", res.Text, joined)
	}

	if res.Empty() {
		t.Error("Result with text must not report empty")
	}
}

func TestParseResultSilence(t *testing.T) {
	// Silence or non-speech audio yields an empty-text record with no word
	// list; this is a valid outcome, not an error.
	res, err := ParseResult([]byte(`{"text": ""}`))
	if err != nil {
		t.Fatalf("ParseResult failed: %v", err)
	}

	if res.Text != "" {
		t.Errorf("Expected empty text, got '%s'", res.Text)
	}

	if len(res.Words) != 0 {
		t.Errorf("Expected no word spans, got %d", len(res.Words))
	}

	if !res.Empty() {
		t.Error("Empty-text result must report empty")
	}
}

func TestParseResultTrimsWhitespace(t *testing.T) {
	res, err := ParseResult([]byte(`{"text": "  hello there \n"}`))
	if err != nil {
		t.Fatalf("ParseResult failed: %v", err)
	}

	if res.Text != "hello there" {
		t.Errorf("Expected trimmed text 'hello there', got '%s'", res.Text)
	}
}

func TestParseResultRebuildsTextFromWords(t *testing.T) {
	data := []byte(`{
		"result": [
			{"conf": 1.0, "start": 0.0, "end": 0.5, "word": "one"},
			{"conf": 1.0, "start": 0.5, "end": 1.0, "word": "two"}
		],
		"text": ""
	}`)

	res, err := ParseResult(data)
	if err != nil {
		t.Fatalf("ParseResult failed: %v", err)
	}

	if res.Text != "one two" {
		t.Errorf("Expected rebuilt text 'one two', got '%s'", res.Text)
	}
}

func TestParseResultMalformed(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{name: "not json", data: "garbage"},
		{name: "truncated", data: `{"text": "hel`},
		{name: "wrong types", data: `{"text": 42}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := ParseResult([]byte(tt.data)); err == nil {
				t.Errorf("Expected parse error for %s", tt.name)
			}
		})
	}
}
