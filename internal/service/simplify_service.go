package service

import (
	"lesson_quiz_backend/internal/util"
	"sort"
	"strings"
)

const (
	maxChosenSentences = 6
	maxHeadingChars    = 80
	maxHeadingTokens   = 8

	noContentHTML = "<p>No content provided.</p>"
	closingHTML   = "<p><strong>Summary:</strong> This is a simplified version to help learning. Try the practice questions below!</p>"
)

// Simplifier 把课文压缩成简短的 HTML 摘要，纯函数无状态
type Simplifier struct{}

func NewSimplifier() *Simplifier {
	return &Simplifier{}
}

func (s *Simplifier) Simplify(text string) string {
	sentences := util.SplitSentences(text)
	if len(sentences) == 0 {
		return noContentHTML
	}

	var b strings.Builder
	if heading, ok := detectHeading(text); ok {
		b.WriteString("<h3>")
		b.WriteString(util.EscapeHTML(heading))
		b.WriteString("</h3>")
	}

	for _, sentence := range chooseSentences(sentences) {
		b.WriteString("<p>")
		b.WriteString(util.EscapeHTML(sentence))
		b.WriteString("</p>")
	}

	b.WriteString(closingHTML)
	return b.String()
}

// detectHeading 第一行足够短时当作标题
func detectHeading(text string) (string, bool) {
	firstLine, _, _ := strings.Cut(text, "\n")
	firstLine = strings.TrimSpace(firstLine)
	if firstLine == "" || util.RuneLen(firstLine) >= maxHeadingChars {
		return "", false
	}
	if len(strings.Split(firstLine, " ")) > maxHeadingTokens {
		return "", false
	}
	return firstLine, true
}

// chooseSentences 首句 + 其余句子中最长的 5 句（长度相同保持原顺序）
func chooseSentences(sentences []string) []string {
	rest := make([]string, len(sentences)-1)
	copy(rest, sentences[1:])
	sort.SliceStable(rest, func(i, j int) bool {
		return util.RuneLen(rest[i]) > util.RuneLen(rest[j])
	})

	chosen := make([]string, 0, maxChosenSentences)
	chosen = append(chosen, sentences[0])
	for _, s := range rest {
		if len(chosen) == maxChosenSentences {
			break
		}
		chosen = append(chosen, s)
	}
	return chosen
}
