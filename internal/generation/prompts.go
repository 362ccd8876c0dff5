package generation

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
	"text/template"

	"github.com/marchen/vocabforge/internal/domain"
)

// Prompt is a provider-agnostic chat prompt: a system instruction plus the
// user message carrying the actual request.
type Prompt struct {
	System string
	User   string
}

const wordProfileSystem = "You are a professional English teaching assistant " +
	"who produces detailed word study material for Chinese learners."

var wordProfileTemplate = template.Must(template.New("word_profile").Parse(
	`Generate complete study material for the English word "{{.Word}}" and return it as a single JSON object with exactly these fields:

1. "phonetic": the IPA transcription (British and American where they differ)
2. "pronunciation": the syllable split, separated by middle dots (e.g. con·tem·po·rary)
3. "part_of_speech": an array of word classes (a word may have several)
4. "translations": an array with the 2-3 most common Chinese translations
5. "common_phrases": an array of 1-3 objects, each {"text": "...", "translation": "..."} with a Chinese translation
6. "etymology": a root and affix analysis
7. "examples": an array of exactly 2 objects, each {"sentence": "...", "translation": "..."} with a Chinese translation

Return valid JSON only, with no surrounding prose.`))

var essayTemplate = template.Must(template.New("essay").Parse(
	`Write a short {{.Style}} that meets all of the following requirements:

1. It must use every one of these words: {{.Words}}
2. Keep it short and memorable (30-150 words), suitable for recitation
3. Give each word a memorable moment; its use in the text should be vivid
4. The plot should be interesting and easy to remember
5. The language should be natural and idiomatic

Return it as a JSON object in exactly this shape:
{
    "title": "the title",
    "english_content": "the English text",
    "chinese_translation": "the Chinese translation"
}

Return valid JSON only, with no surrounding prose.`))

// essayStyles maps an essay type to the register the writing prompt asks for.
var essayStyles = map[domain.EssayType]string{
	domain.EssayTypeStory:     "story",
	domain.EssayTypeFairyTale: "fairy tale",
	domain.EssayTypeNews:      "news report",
	domain.EssayTypeProphecy:  "prophecy",
}

// WordProfilePrompt builds the enrichment prompt for one word.
func WordProfilePrompt(word string) (Prompt, error) {
	if word == "" {
		return Prompt{}, fmt.Errorf("%w: word cannot be empty", ErrInvalidConfig)
	}

	var buf bytes.Buffer
	if err := wordProfileTemplate.Execute(&buf, struct{ Word string }{Word: word}); err != nil {
		return Prompt{}, fmt.Errorf("failed to execute word profile template: %w", err)
	}

	return Prompt{System: wordProfileSystem, User: buf.String()}, nil
}

// EssayPrompt builds the composition prompt for a word batch. Unknown essay
// types fall back to the plain story register, matching IsValidEssayType
// being checked at the API boundary rather than here.
func EssayPrompt(words []string, essayType domain.EssayType) (Prompt, error) {
	if len(words) == 0 {
		return Prompt{}, fmt.Errorf("%w: word list cannot be empty", ErrInvalidConfig)
	}

	style, ok := essayStyles[essayType]
	if !ok {
		style = essayStyles[domain.EssayTypeStory]
	}

	var buf bytes.Buffer
	err := essayTemplate.Execute(&buf, struct {
		Style string
		Words string
	}{Style: style, Words: strings.Join(words, ", ")})
	if err != nil {
		return Prompt{}, fmt.Errorf("failed to execute essay template: %w", err)
	}

	system := fmt.Sprintf("You are a creative writing expert who crafts "+
		"interesting, memorable %ss for language learners.", style)
	return Prompt{System: system, User: buf.String()}, nil
}

// DecodePayload parses a model response into v. Models frequently wrap JSON
// in a Markdown code fence despite instructions, so fences are stripped
// before decoding. Any parse failure maps to ErrMalformedResponse.
func DecodePayload(raw string, v any) error {
	cleaned := strings.TrimSpace(raw)
	if cleaned == "" {
		return fmt.Errorf("%w: empty response body", ErrMalformedResponse)
	}

	if strings.HasPrefix(cleaned, "```") {
		cleaned = strings.TrimPrefix(cleaned, "```json")
		cleaned = strings.TrimPrefix(cleaned, "```")
		cleaned = strings.TrimSuffix(strings.TrimSpace(cleaned), "```")
		cleaned = strings.TrimSpace(cleaned)
	}

	if err := json.Unmarshal([]byte(cleaned), v); err != nil {
		return fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}
	return nil
}
