// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

// Package page is the document the actions write to: the nick display, the
// message input and the post list.
package page

import (
	"html"
	"io"
	"slices"
	"strings"
)

// Document holds the three attachment points. Like the cache it is only
// touched from the transport loop.
type Document struct {
	Title string

	nick  string
	input string
	meows []string
}

func New() *Document {
	return &Document{Title: "Cludder"}
}

func (d *Document) SetNick(nick string) { d.nick = nick }
func (d *Document) Nick() string        { return d.nick }

func (d *Document) SetInput(s string) { d.input = s }
func (d *Document) Input() string     { return d.input }

// Prepend puts an already rendered fragment at the top of the post list.
func (d *Document) Prepend(fragment string) {
	d.meows = append([]string{fragment}, d.meows...)
}

// Append puts an already rendered fragment at the bottom of the post list.
func (d *Document) Append(fragment string) {
	d.meows = append(d.meows, fragment)
}

// Clear empties the post list.
func (d *Document) Clear() {
	d.meows = nil
}

// Fragments returns a copy of the post list, top first.
func (d *Document) Fragments() []string {
	return slices.Clone(d.meows)
}

// HTML renders the whole page. Fragments are inserted as is; they are
// escaped when rendered.
func (d *Document) HTML() string {
	var b strings.Builder
	b.WriteString("<!DOCTYPE html>\n<html>\n<head>\n")
	b.WriteString(`<meta charset="utf-8">` + "\n")
	b.WriteString("<title>" + html.EscapeString(d.Title) + "</title>\n")
	b.WriteString("</head>\n<body>\n")
	b.WriteString(`<div id="nick">` + html.EscapeString(d.nick) + "</div>\n")
	b.WriteString(`<input id="meow" type="text" value="` + html.EscapeString(d.input) + `">` + "\n")
	b.WriteString(`<div id="meows">` + "\n")
	for _, m := range d.meows {
		b.WriteString(m)
		b.WriteString("\n")
	}
	b.WriteString("</div>\n</body>\n</html>\n")
	return b.String()
}

// WriteTo implements io.WriterTo.
func (d *Document) WriteTo(w io.Writer) (int64, error) {
	n, err := io.WriteString(w, d.HTML())
	return int64(n), err
}
