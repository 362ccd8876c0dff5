package anki

// Field is one named field of a note model.
type Field struct {
	Name string
}

// Template is one card template of a model. Question and Answer hold Anki's
// mustache-style HTML templates; each template yields one card per note.
type Template struct {
	Name     string
	Question string
	Answer   string
}

// Model describes a note type: its fields, card templates and styling.
type Model struct {
	ID        int64
	Name      string
	Fields    []Field
	Templates []Template
	CSS       string
}

// Stable model IDs. Anki matches imported note types by ID, so re-importing
// an export updates existing notes instead of duplicating them.
const (
	wordModelID  = 1607392319
	essayModelID = 1607392320

	wordDeckID  = 1607392321
	essayDeckID = 1607392322
)

// WordModel returns the note type used for vocabulary cards: one note per
// word, three cards (recognition, spelling, reverse).
func WordModel() *Model {
	return &Model{
		ID:   wordModelID,
		Name: "VocabForge Word",
		Fields: []Field{
			{Name: "Word"},
			{Name: "Content"},
			{Name: "MainTranslation"},
		},
		Templates: []Template{
			{
				Name: "Word Recognition",
				Question: `<div class="card-front word-recognition">
  <h2 class="word">{{Word}}</h2>
  <div class="hint">请回想这个单词的意思</div>
</div>`,
				Answer: `<div class="card-back">
  <h2 class="word">{{Word}}</h2>
  {{Content}}
</div>`,
			},
			{
				Name: "Word Spelling",
				Question: `<div class="card-front word-spelling">
  <div class="spelling-hint">
    <h3>请拼写这个单词:</h3>
    <div class="meaning">{{MainTranslation}}</div>
  </div>
</div>`,
				Answer: `<div class="card-back">
  <h2 class="word spelling-answer">{{Word}}</h2>
  {{Content}}
</div>`,
			},
			{
				Name: "Word Reverse",
				Question: `<div class="card-front word-reverse">
  <h3>这个中文意思对应的英语单词是:</h3>
  <div class="chinese-meaning">{{MainTranslation}}</div>
  <div class="hint">请回想对应的英语单词</div>
</div>`,
				Answer: `<div class="card-back">
  <h2 class="word reverse-answer">{{Word}}</h2>
  {{Content}}
</div>`,
			},
		},
		CSS: cardCSS,
	}
}

// EssayModel returns the note type used for essay cards: one note per
// essay, two cards (translation, reverse).
func EssayModel() *Model {
	return &Model{
		ID:   essayModelID,
		Name: "VocabForge Essay",
		Fields: []Field{
			{Name: "Title"},
			{Name: "EnglishContent"},
			{Name: "ChineseContent"},
			{Name: "Words"},
		},
		Templates: []Template{
			{
				Name: "Essay Translation",
				Question: `<div class="card-front essay-translation">
  <h3>{{Title}}</h3>
  <div class="english-text">{{EnglishContent}}</div>
  {{#Words}}<div class="essay-words"><strong>相关单词:</strong> {{Words}}</div>{{/Words}}
  <div class="hint">请翻译这篇短文</div>
</div>`,
				Answer: `<div class="card-back">
  <h3>{{Title}}</h3>
  <div class="translation-pair">
    <div class="english"><h4>英文原文:</h4><p>{{EnglishContent}}</p></div>
    <div class="chinese"><h4>中文翻译:</h4><p>{{ChineseContent}}</p></div>
  </div>
</div>`,
			},
			{
				Name: "Essay Reverse",
				Question: `<div class="card-front essay-reverse">
  <h3>{{Title}}</h3>
  <div class="chinese-text">{{ChineseContent}}</div>
  {{#Words}}<div class="essay-words"><strong>相关单词:</strong> {{Words}}</div>{{/Words}}
  <div class="hint">请根据中文翻译回想英文原文</div>
</div>`,
				Answer: `<div class="card-back">
  <h3>{{Title}}</h3>
  <div class="translation-pair">
    <div class="chinese"><h4>中文翻译:</h4><p>{{ChineseContent}}</p></div>
    <div class="english"><h4>英文原文:</h4><p>{{EnglishContent}}</p></div>
  </div>
</div>`,
			},
		},
		CSS: cardCSS,
	}
}

// cardCSS is the shared stylesheet baked into both note types.
const cardCSS = `.card {
  font-family: 'Helvetica Neue', Arial, sans-serif;
  line-height: 1.4;
  margin: 8px;
  padding: 12px;
  background: #f8f9fa;
  border-radius: 6px;
}
.card-front { text-align: center; padding: 15px 10px; }
.word { font-size: 2.0em; font-weight: bold; color: #3498db; }
.hint { color: #7f8c8d; font-style: italic; margin-top: 10px; font-size: 0.9em; }
.card-back { padding: 12px; }
.word-content {
  background: white;
  padding: 12px;
  border-radius: 6px;
  border-left: 3px solid #3498db;
  text-align: left;
}
.word-content > div { margin-bottom: 8px; padding: 4px 0; border-bottom: 1px solid #ecf0f1; font-size: 0.9em; }
.word-content > div:last-child { border-bottom: none; }
.phonetic { color: #e74c3c; }
.pronunciation { color: #9b59b6; font-weight: bold; font-size: 0.9em; }
.pos { color: #f39c12; font-weight: bold; font-size: 0.9em; }
.translations ul, .phrases ul, .examples ol { margin: 6px 0; padding-left: 16px; }
.meaning { font-size: 1.2em; color: #856404; margin: 10px 0; }
.spelling-hint { background: #fff3cd; padding: 15px; border-radius: 6px; border: 2px dashed #ffc107; }
.spelling-answer, .reverse-answer { background: #667eea; color: white; padding: 15px; border-radius: 6px; }
.chinese-meaning { font-size: 1.3em; color: #e74c3c; padding: 15px; background: #fdedec; border-radius: 6px; }
.english-text, .chinese-text {
  background: white;
  padding: 12px;
  border-radius: 6px;
  border-left: 3px solid #3498db;
  margin: 12px 0;
  text-align: left;
}
.translation-pair > div { margin-bottom: 12px; padding: 10px; border-radius: 6px; text-align: left; }
.english { background: #e8f4fd; border-left: 3px solid #3498db; }
.chinese { background: #fef9e7; border-left: 3px solid #f1c40f; }
.essay-words { background: #e7f3ff; padding: 10px; border-radius: 6px; margin: 12px 0; font-size: 0.9em; }`
