package service

import (
	"fmt"
	"lesson_quiz_backend/internal/model"
	"lesson_quiz_backend/internal/util"
	"slices"
	"sort"
	"strings"
)

const (
	distractorCount    = 3
	mcqBaseChars       = 80
	trueFalseChars     = 120
	shortAnswerChars   = 70
	fallbackAnswerWord = "answer"
	negationPrefix     = "It is not true that "
)

// QuestionGeneratorOptions 出题器的不可变配置
type QuestionGeneratorOptions struct {
	// Kinds 按下标取模轮换的题型
	Kinds []model.QuestionType
	// StopWords 不参与词频统计的常见词
	StopWords []string
	// NegationAuxiliaries 判断题否定时在其后插入 "not" 的助动词
	NegationAuxiliaries []string
	// TrueProbability 判断题保持原句（答案为 true）的概率
	TrueProbability float64
}

func DefaultQuestionGeneratorOptions() QuestionGeneratorOptions {
	return QuestionGeneratorOptions{
		Kinds: []model.QuestionType{
			model.QuestionMCQ,
			model.QuestionTrueFalse,
			model.QuestionShortAnswer,
		},
		StopWords: []string{
			"about", "which", "between", "their", "there", "where", "when", "have", "with",
			"that", "this", "what", "from", "your", "they", "these", "those", "would",
			"could", "should", "while", "other", "every", "again", "through",
		},
		NegationAuxiliaries: []string{
			"is", "are", "was", "were", "has", "have", "do", "does", "can", "will", "may",
			"should", "could",
		},
		TrueProbability: 0.7,
	}
}

type QuestionGenerator struct {
	kinds           []model.QuestionType
	stopWords       map[string]struct{}
	auxiliaries     map[string]struct{}
	trueProbability float64
	rand            util.Rand
}

// NewQuestionGenerator r 为 nil 时使用全局随机源
func NewQuestionGenerator(opts QuestionGeneratorOptions, r util.Rand) *QuestionGenerator {
	defaults := DefaultQuestionGeneratorOptions()
	if len(opts.Kinds) == 0 {
		opts.Kinds = defaults.Kinds
	}
	if opts.StopWords == nil {
		opts.StopWords = defaults.StopWords
	}
	if opts.NegationAuxiliaries == nil {
		opts.NegationAuxiliaries = defaults.NegationAuxiliaries
	}
	if r == nil {
		r = util.DefaultRand()
	}

	return &QuestionGenerator{
		kinds:           slices.Clone(opts.Kinds),
		stopWords:       toSet(opts.StopWords),
		auxiliaries:     toSet(opts.NegationAuxiliaries),
		trueProbability: opts.TrueProbability,
		rand:            r,
	}
}

func toSet(items []string) map[string]struct{} {
	set := make(map[string]struct{}, len(items))
	for _, item := range items {
		set[strings.ToLower(item)] = struct{}{}
	}
	return set
}

// lessonTerms 一次出题所需的分词结果
type lessonTerms struct {
	sentences   []string
	words       []string
	distinct    []string
	candidates  []string
	isCandidate map[string]bool
}

func (g *QuestionGenerator) analyze(text string) *lessonTerms {
	t := &lessonTerms{
		sentences:   util.SplitSentences(text),
		words:       util.ExtractWords(text),
		isCandidate: make(map[string]bool),
	}

	freq := make(map[string]int)
	seen := make(map[string]bool)
	for _, w := range t.words {
		if !seen[w] {
			seen[w] = true
			t.distinct = append(t.distinct, w)
		}
		if _, stop := g.stopWords[w]; stop {
			continue
		}
		if freq[w] == 0 {
			t.candidates = append(t.candidates, w)
			t.isCandidate[w] = true
		}
		freq[w]++
	}

	// 词频相同按首次出现顺序
	sort.SliceStable(t.candidates, func(i, j int) bool {
		return freq[t.candidates[i]] > freq[t.candidates[j]]
	})
	return t
}

// Generate 生成 count 道题，题型按 Kinds 轮换；count 由调用方限制在 [1,20]
func (g *QuestionGenerator) Generate(text string, count int) []model.Question {
	terms := g.analyze(text)
	questions := make([]model.Question, 0, count)

	for i := 0; i < count; i++ {
		base := text
		if len(terms.sentences) > 0 {
			base = terms.sentences[i%len(terms.sentences)]
		}

		switch g.kinds[i%len(g.kinds)] {
		case model.QuestionMCQ:
			questions = append(questions, g.multipleChoice(terms, base, i))
		case model.QuestionTrueFalse:
			questions = append(questions, g.trueFalse(base))
		default:
			questions = append(questions, g.shortAnswer(terms, base, i))
		}
	}
	return questions
}

func (g *QuestionGenerator) multipleChoice(terms *lessonTerms, base string, i int) model.Question {
	correct := pickTarget(terms, i)
	options := append([]string{correct}, g.distractors(terms, correct, distractorCount)...)
	options = util.Shuffle(g.rand, options)

	correctIndex := -1
	want := util.Normalize(correct)
	for idx, opt := range options {
		options[idx] = util.CapitalizeFirst(opt)
		if correctIndex < 0 && util.Normalize(opt) == want {
			correctIndex = idx
		}
	}

	return model.Question{
		Type:         model.QuestionMCQ,
		Question:     fmt.Sprintf(`In the lesson above, which of the following best answers: "%s"?`, util.Truncate(base, mcqBaseChars)),
		Options:      options,
		CorrectIndex: correctIndex,
		Hint:         fmt.Sprintf(`Look around the part where "%s" is mentioned in the lesson.`, correct),
		Answer:       fmt.Sprintf("%s — (extracted from the lesson content).", util.CapitalizeFirst(correct)),
	}
}

func (g *QuestionGenerator) trueFalse(base string) model.Question {
	truth := g.rand.Float64() < g.trueProbability
	statement := util.Truncate(util.CollapseSpaces(base), trueFalseChars)

	q := model.Question{
		Type:          model.QuestionTrueFalse,
		Question:      statement,
		CorrectAnswer: truth,
		Hint:          "Try to remember what the lesson said about this part.",
		Answer:        "True — this matches the lesson.",
	}
	if !truth {
		q.Question = g.negate(statement)
		q.Answer = "False — this was changed slightly from the lesson."
	}
	return q
}

func (g *QuestionGenerator) shortAnswer(terms *lessonTerms, base string, i int) model.Question {
	word := pickTarget(terms, i+1)
	return model.Question{
		Type:     model.QuestionShortAnswer,
		Question: fmt.Sprintf(`Briefly explain or name: "%s"`, util.Truncate(base, shortAnswerChars)),
		Hint:     fmt.Sprintf(`A short answer referring to "%s" would help.`, word),
		Answer:   fmt.Sprintf("One good short answer: %s (from the lesson).", util.CapitalizeFirst(word)),
	}
}

// pickTarget 关键词 -> 任意词 -> "answer"
func pickTarget(terms *lessonTerms, i int) string {
	switch {
	case len(terms.candidates) > 0:
		return terms.candidates[i%len(terms.candidates)]
	case len(terms.words) > 0:
		return terms.words[i%len(terms.words)]
	default:
		return fallbackAnswerWord
	}
}

// distractors 优先取其他关键词（按出现顺序），不足时从词池随机补，仍不足时用 correct+字母 造词
func (g *QuestionGenerator) distractors(terms *lessonTerms, correct string, count int) []string {
	pool := make([]string, 0, len(terms.distinct))
	for _, w := range terms.distinct {
		if w != correct {
			pool = append(pool, w)
		}
	}

	picks := make([]string, 0, count)
	for _, w := range pool {
		if len(picks) == count {
			break
		}
		if terms.isCandidate[w] {
			picks = append(picks, w)
		}
	}

	for i := 0; len(picks) < count && i < len(pool); i++ {
		p := pool[(i+g.rand.Intn(len(pool)))%len(pool)]
		if !slices.Contains(picks, p) {
			picks = append(picks, p)
		}
	}

	for letter := 'a' + rune(len(picks)); len(picks) < count; letter++ {
		variant := correct + string(letter)
		if !slices.Contains(picks, variant) {
			picks = append(picks, variant)
		}
	}
	return picks
}

// negate 在第一个助动词后插入 not，找不到则加前缀
func (g *QuestionGenerator) negate(sentence string) string {
	tokens := strings.Split(sentence, " ")
	for i, tok := range tokens {
		if _, ok := g.auxiliaries[lettersOnly(tok)]; !ok {
			continue
		}
		negated := make([]string, 0, len(tokens)+1)
		negated = append(negated, tokens[:i+1]...)
		negated = append(negated, "not")
		negated = append(negated, tokens[i+1:]...)
		return strings.Join(negated, " ")
	}
	return negationPrefix + sentence
}

func lettersOnly(s string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(s) {
		if r >= 'a' && r <= 'z' {
			b.WriteRune(r)
		}
	}
	return b.String()
}
