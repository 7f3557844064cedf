package service

import (
	"lesson_quiz_backend/internal/util"
	"net/url"
	"strings"

	readability "github.com/go-shiori/go-readability"
)

var lessonPageURL = &url.URL{Scheme: "http", Host: "localhost", Path: "/lesson"}

// ExtractLessonText 从粘贴的 HTML 页面中提取正文，标题放在第一行以便识别为小标题
func ExtractLessonText(html string) (string, error) {
	article, err := readability.FromReader(strings.NewReader(html), lessonPageURL)
	if err != nil {
		return "", util.InvalidInput("Could not extract readable text from the HTML content.")
	}

	text := strings.TrimSpace(article.TextContent)
	title := strings.TrimSpace(article.Title)
	if title != "" && !strings.HasPrefix(text, title) {
		text = title + "\n" + text
	}
	if text == "" {
		return "", util.InvalidInput("The HTML content does not contain any readable text.")
	}
	return text, nil
}
