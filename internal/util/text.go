package util

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"
)

var (
	nonWordChars = regexp.MustCompile(`[^a-zA-Z0-9\s]`)
	spaceRuns    = regexp.MustCompile(`\s+`)
	htmlEscaper  = strings.NewReplacer(
		"&", "&amp;",
		"<", "&lt;",
		">", "&gt;",
		`"`, "&quot;",
	)
)

// SplitSentences 按句末标点(. ! ?)之后的空白切分句子，换行先视为空格
func SplitSentences(text string) []string {
	text = strings.ReplaceAll(text, "\r\n", " ")
	text = strings.ReplaceAll(text, "\n", " ")

	runes := []rune(text)
	sentences := make([]string, 0)
	start := 0
	for i := 1; i < len(runes); i++ {
		if !unicode.IsSpace(runes[i]) || !isSentenceEnd(runes[i-1]) {
			continue
		}
		end := i
		for i < len(runes) && unicode.IsSpace(runes[i]) {
			i++
		}
		sentences = appendTrimmed(sentences, string(runes[start:end]))
		start = i
	}
	if start < len(runes) {
		sentences = appendTrimmed(sentences, string(runes[start:]))
	}
	return sentences
}

func isSentenceEnd(r rune) bool {
	return r == '.' || r == '!' || r == '?'
}

func appendTrimmed(list []string, s string) []string {
	if s = strings.TrimSpace(s); s != "" {
		list = append(list, s)
	}
	return list
}

// ExtractWords 去掉标点后按空白切词，只保留长度大于 3 的词并转小写
func ExtractWords(text string) []string {
	cleaned := nonWordChars.ReplaceAllString(text, " ")
	words := make([]string, 0)
	for _, w := range strings.Fields(cleaned) {
		if len(w) > 3 {
			words = append(words, strings.ToLower(w))
		}
	}
	return words
}

// Truncate 超过 n 个字符时截断为 n-1 个字符并追加省略号
func Truncate(s string, n int) string {
	if s == "" {
		return ""
	}
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return strings.TrimSpace(string(runes[:n-1])) + "..."
}

// TruncateRunes 按字符数直接截断，不加省略号
func TruncateRunes(s string, n int) string {
	if n < 0 || utf8.RuneCountInString(s) <= n {
		return s
	}
	return string([]rune(s)[:n])
}

// EscapeHTML 只转义 & < > "
func EscapeHTML(s string) string {
	return htmlEscaper.Replace(s)
}

// Normalize 转小写并去掉非字母数字字符，用于选项比对
func Normalize(s string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(s) {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
		}
	}
	return b.String()
}

func CapitalizeFirst(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if size == 0 {
		return ""
	}
	return string(unicode.ToUpper(r)) + s[size:]
}

func CollapseSpaces(s string) string {
	return spaceRuns.ReplaceAllString(s, " ")
}

// Shuffle 返回打乱后的副本（Fisher-Yates），不修改入参
func Shuffle(r Rand, items []string) []string {
	out := make([]string, len(items))
	copy(out, items)
	for i := len(out) - 1; i > 0; i-- {
		j := r.Intn(i + 1)
		out[i], out[j] = out[j], out[i]
	}
	return out
}

// RuneLen 字符数
func RuneLen(s string) int {
	return utf8.RuneCountInString(s)
}
