package service

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSimplifyWaterCycle(t *testing.T) {
	text := "The Water Cycle\nWater evaporates from oceans. Vapor rises and cools into clouds. Clouds release rain & snow. Rain flows back to the sea."

	want := "<h3>The Water Cycle</h3>" +
		"<p>The Water Cycle Water evaporates from oceans.</p>" +
		"<p>Vapor rises and cools into clouds.</p>" +
		"<p>Clouds release rain &amp; snow.</p>" +
		"<p>Rain flows back to the sea.</p>" +
		closingHTML

	s := NewSimplifier()
	assert.Equal(t, want, s.Simplify(text))
	assert.Equal(t, s.Simplify(text), s.Simplify(text))
}

func TestSimplifyEmpty(t *testing.T) {
	s := NewSimplifier()
	assert.Equal(t, noContentHTML, s.Simplify(""))
	assert.Equal(t, noContentHTML, s.Simplify("  \n\t "))
}

func TestSimplifyNoHeadingForLongFirstLine(t *testing.T) {
	text := "This first line has far too many words to be treated as a heading. Second sentence here."
	out := NewSimplifier().Simplify(text)

	assert.NotContains(t, out, "<h3>")
	assert.True(t, strings.HasPrefix(out, "<p>This first line has far too many words to be treated as a heading.</p>"))
}

func TestSimplifyKeepsFirstAndFiveLongest(t *testing.T) {
	text := "Start. " +
		"One two three four five six seven. " +
		"Tiny. " +
		"Alpha beta gamma delta epsilon. " +
		"Short one. " +
		"This is the longest sentence of them all by far. " +
		"Medium sized sentence here. " +
		"Another medium line."

	want := "<p>Start.</p>" +
		"<p>This is the longest sentence of them all by far.</p>" +
		"<p>One two three four five six seven.</p>" +
		"<p>Alpha beta gamma delta epsilon.</p>" +
		"<p>Medium sized sentence here.</p>" +
		"<p>Another medium line.</p>" +
		closingHTML

	// 整段不足以作为标题，"Tiny." 和 "Short one." 被舍弃
	assert.Equal(t, want, NewSimplifier().Simplify(text))
}

func TestSimplifyEscapesMarkup(t *testing.T) {
	out := NewSimplifier().Simplify(`Use <b>bold</b> & "quotes" carefully in every long paragraph of text here.`)

	assert.NotContains(t, out, "<b>")
	assert.Contains(t, out, "&lt;b&gt;bold&lt;/b&gt; &amp; &quot;quotes&quot;")
}
