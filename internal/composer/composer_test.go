package composer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBufferFormattingOverSelection(t *testing.T) {
	b := NewBuffer()
	b.Insert("hello world")

	b.Select(0, 5)
	b.Bold()
	assert.Equal(t, "<b>hello</b> world", b.HTML())

	// A second toggle over the same range removes the formatting.
	b.Bold()
	assert.Equal(t, "hello world", b.HTML())
}

func TestBufferMixedSelectionSetsFlag(t *testing.T) {
	b := NewBuffer()
	b.Insert("abcdef")
	b.Select(0, 3)
	b.Italic()
	// Selection partially overlaps the italic run: the toggle applies the
	// flag to the whole selection rather than removing it.
	b.Select(2, 5)
	b.Italic()
	assert.Equal(t, "<i>abcde</i>f", b.HTML())
}

func TestBufferNestedFormats(t *testing.T) {
	b := NewBuffer()
	b.Insert("hi")
	b.Select(0, 2)
	b.Bold()
	b.Underline()
	assert.Equal(t, "<b><u>hi</u></b>", b.HTML())
}

func TestBufferIsEmpty(t *testing.T) {
	b := NewBuffer()
	assert.True(t, b.IsEmpty())
	b.Insert("   \n\t ")
	assert.True(t, b.IsEmpty(), "whitespace-only content counts as empty")
	b.Insert("x")
	assert.False(t, b.IsEmpty())
}

func TestBufferCollapsedSelectionIsNoop(t *testing.T) {
	b := NewBuffer()
	b.Insert("abc")
	b.Select(1, 1)
	b.Bold()
	assert.Equal(t, "abc", b.HTML())
}

func TestBufferEscapesText(t *testing.T) {
	b := NewBuffer()
	b.Insert("<script>")
	assert.Equal(t, "&lt;script&gt;", b.HTML())
}

func TestSanitizeKeepsInlineFormatting(t *testing.T) {
	out, err := Sanitize(`<div>hello <b>bold</b> and <em>italic</em></div>`)
	require.NoError(t, err)
	assert.Equal(t, "hello <b>bold</b> and <i>italic</i>", out)
}

func TestSanitizeStripsDangerousMarkup(t *testing.T) {
	out, err := Sanitize(`<div onclick="x()">hi<script>alert(1)</script> there</div>`)
	require.NoError(t, err)
	assert.Equal(t, "hi there", out)
}

func TestSanitizeBreaksOnDivsAndBr(t *testing.T) {
	out, err := Sanitize(`<div>line one</div><div>line two<br>line three</div>`)
	require.NoError(t, err)
	assert.Equal(t, "line one\nline two\nline three", out)
}

func TestIsBlank(t *testing.T) {
	assert.True(t, IsBlank(""))
	assert.True(t, IsBlank("  \n "))
	assert.True(t, IsBlank("<b></b><u> </u>"), "formatting with no text is still empty")
	assert.False(t, IsBlank("<b>x</b>"))
}
