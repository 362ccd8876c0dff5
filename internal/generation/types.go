package generation

import "github.com/marchen/vocabforge/internal/domain"

// WordProfileSchema is the expected JSON shape of a word enrichment response.
type WordProfileSchema struct {
	// Phonetic is the IPA transcription, e.g. /kənˈtempərəri/.
	Phonetic string `json:"phonetic"`

	// Pronunciation is the syllable split, e.g. con·tem·po·rary.
	Pronunciation string `json:"pronunciation"`

	// PartsOfSpeech lists the word classes, e.g. ["adjective", "noun"].
	PartsOfSpeech []string `json:"part_of_speech"`

	// Translations holds the two or three most common translations.
	Translations []string `json:"translations"`

	// CommonPhrases holds up to three phrases with translations.
	CommonPhrases []PhraseSchema `json:"common_phrases"`

	// Etymology is the root/affix analysis.
	Etymology string `json:"etymology"`

	// Examples holds example sentences with translations.
	Examples []ExampleSchema `json:"examples"`
}

// PhraseSchema is one common phrase in a word profile response.
type PhraseSchema struct {
	Text        string `json:"text"`
	Translation string `json:"translation"`
}

// ExampleSchema is one example sentence in a word profile response.
type ExampleSchema struct {
	Sentence    string `json:"sentence"`
	Translation string `json:"translation"`
}

// Content converts a validated profile into the domain learning payload.
func (s *WordProfileSchema) Content() *domain.LearningContent {
	content := &domain.LearningContent{
		Phonetic:      s.Phonetic,
		Pronunciation: s.Pronunciation,
		PartsOfSpeech: s.PartsOfSpeech,
		Translations:  s.Translations,
		Etymology:     s.Etymology,
	}
	for _, p := range s.CommonPhrases {
		content.CommonPhrases = append(content.CommonPhrases, domain.Phrase(p))
	}
	for _, e := range s.Examples {
		content.Examples = append(content.Examples, domain.Example(e))
	}
	return content
}

// EssaySchema is the expected JSON shape of an essay generation response.
type EssaySchema struct {
	Title       string `json:"title"`
	EnglishText string `json:"english_content"`
	Translation string `json:"chinese_translation"`
}
