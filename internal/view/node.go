// Package view describes pages as a tree of display components. The server
// renders the tree with html/template; reactive updates replace the content
// of single nodes by id.
package view

import "html/template"

// Kind selects how a node is rendered.
type Kind string

const (
	KindDiv      Kind = "div"
	KindHeader   Kind = "h1"
	KindLabel    Kind = "label"
	KindDropdown Kind = "dropdown"
	KindGraph    Kind = "graph"
	KindTextarea Kind = "textarea"
	KindText     Kind = "text"
	KindStats    Kind = "stats"
)

// Option is one dropdown entry.
type Option struct {
	Label string
	Value string
}

// Stat is one labelled number in a stats node.
type Stat struct {
	Label string
	Value float64
}

// Node is one display component.
type Node struct {
	Kind     Kind
	ID       string
	Text     string
	For      string // label target id
	Value    string // dropdown selection or textarea content
	Options  []Option
	Stats    []Stat
	SVG      template.HTML
	Rows     int
	Children []*Node
}

// Div groups children.
func Div(id string, children ...*Node) *Node {
	return &Node{Kind: KindDiv, ID: id, Children: children}
}

// Header is a page title.
func Header(text string) *Node {
	return &Node{Kind: KindHeader, Text: text}
}

// Label captions the input with id forID.
func Label(text, forID string) *Node {
	return &Node{Kind: KindLabel, Text: text, For: forID}
}

// Dropdown is a single-select control.
func Dropdown(id string, options []Option, value string) *Node {
	return &Node{Kind: KindDropdown, ID: id, Options: options, Value: value}
}

// Graph holds a rendered chart. svg must come from the chart renderer.
func Graph(id string, svg []byte) *Node {
	return &Node{Kind: KindGraph, ID: id, SVG: template.HTML(svg)}
}

// Textarea is a multi-line text input.
func Textarea(id, value string, rows int) *Node {
	return &Node{Kind: KindTextarea, ID: id, Value: value, Rows: rows}
}

// Text is read-only text that keeps line breaks.
func Text(id, text string) *Node {
	return &Node{Kind: KindText, ID: id, Text: text}
}

// Stats lists labelled numbers.
func Stats(id string, stats []Stat) *Node {
	return &Node{Kind: KindStats, ID: id, Stats: stats}
}

// Find returns the first node with the given id, depth first.
func (n *Node) Find(id string) *Node {
	if n == nil {
		return nil
	}
	if n.ID == id {
		return n
	}
	for _, c := range n.Children {
		if found := c.Find(id); found != nil {
			return found
		}
	}
	return nil
}

// Walk calls fn for n and every descendant, depth first.
func (n *Node) Walk(fn func(*Node)) {
	if n == nil {
		return
	}
	fn(n)
	for _, c := range n.Children {
		c.Walk(fn)
	}
}
