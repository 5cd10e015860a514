// Package composer models the reply editor's text buffer: inline
// bold/italic/underline formatting applied to the current selection, and an
// empty flag derived from the trimmed text. Sending is not wired to any
// backend endpoint; the buffer only normalizes what was typed.
package composer

import (
	"html"
	"strings"
)

// Format flags per rune.
type Format uint8

const (
	Bold Format = 1 << iota
	Italic
	Underline
)

// Buffer is an editable rich-text buffer with a single selection range.
type Buffer struct {
	runes   []rune
	formats []Format
	selLo   int
	selHi   int
}

func NewBuffer() *Buffer { return &Buffer{} }

// Insert appends s at the end of the buffer, inheriting no formatting, and
// collapses the selection after the inserted text.
func (b *Buffer) Insert(s string) {
	rs := []rune(s)
	b.runes = append(b.runes, rs...)
	b.formats = append(b.formats, make([]Format, len(rs))...)
	b.selLo = len(b.runes)
	b.selHi = b.selLo
}

// Select sets the selection range in rune offsets, clamped to the buffer.
func (b *Buffer) Select(lo, hi int) {
	if lo > hi {
		lo, hi = hi, lo
	}
	if lo < 0 {
		lo = 0
	}
	if hi > len(b.runes) {
		hi = len(b.runes)
	}
	b.selLo, b.selHi = lo, hi
}

// toggle applies f over the selection: if every selected rune already has f,
// the flag is removed, otherwise it is set (editor toggle semantics).
func (b *Buffer) toggle(f Format) {
	if b.selLo == b.selHi {
		return
	}
	all := true
	for i := b.selLo; i < b.selHi; i++ {
		if b.formats[i]&f == 0 {
			all = false
			break
		}
	}
	for i := b.selLo; i < b.selHi; i++ {
		if all {
			b.formats[i] &^= f
		} else {
			b.formats[i] |= f
		}
	}
}

func (b *Buffer) Bold()      { b.toggle(Bold) }
func (b *Buffer) Italic()    { b.toggle(Italic) }
func (b *Buffer) Underline() { b.toggle(Underline) }

// IsEmpty reports whether the trimmed text content is empty; the editor uses
// it to toggle placeholder visibility.
func (b *Buffer) IsEmpty() bool {
	return strings.TrimSpace(string(b.runes)) == ""
}

func (b *Buffer) Text() string { return string(b.runes) }

// HTML renders the buffer as escaped text with b/i/u runs.
func (b *Buffer) HTML() string {
	var out strings.Builder
	var open Format
	closeTags := func(from Format) {
		// Close in reverse nesting order.
		if from&Underline != 0 {
			out.WriteString("</u>")
		}
		if from&Italic != 0 {
			out.WriteString("</i>")
		}
		if from&Bold != 0 {
			out.WriteString("</b>")
		}
	}
	openTags := func(to Format) {
		if to&Bold != 0 {
			out.WriteString("<b>")
		}
		if to&Italic != 0 {
			out.WriteString("<i>")
		}
		if to&Underline != 0 {
			out.WriteString("<u>")
		}
	}
	for i, r := range b.runes {
		if b.formats[i] != open {
			closeTags(open)
			open = b.formats[i]
			openTags(open)
		}
		out.WriteString(html.EscapeString(string(r)))
	}
	closeTags(open)
	return out.String()
}
