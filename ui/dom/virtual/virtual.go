// Package virtual contains an in-memory document that is not drawn by a browser.
package virtual

import (
	"strings"

	"github.com/jacobpatterson1549/selene-tiles/ui/dom"
)

type (
	// Document is a tree of elements rooted at the body.
	Document struct {
		// Body is the root element of the document.
		Body *Element
		// ConfirmFunc answers questions asked by Confirm.
		// Confirm returns false if it is not set.
		ConfirmFunc func(message string) bool
	}

	// Element is a node in the document.
	// Text nodes have no tag.
	Element struct {
		tag        string
		text       string
		parent     *Element
		children   []*Element
		attributes map[string]string
		properties map[string]bool
		listeners  map[string][]func()
	}
)

var (
	_ dom.Document = new(Document)
	_ dom.Element  = new(Element)
)

// NewDocument creates a document with an empty body.
func NewDocument() *Document {
	d := Document{
		Body: newElement("body"),
	}
	return &d
}

// newElement creates an element with the tag.
func newElement(tag string) *Element {
	e := Element{
		tag: tag,
	}
	return &e
}

// CreateElement makes a new element that is not attached to the document.
func (*Document) CreateElement(tag string) dom.Element {
	return newElement(tag)
}

// ElementByID finds the first element in the body with the id attribute.
func (d *Document) ElementByID(id string) (dom.Element, bool) {
	e := d.Body.find(func(e *Element) bool {
		return e.attributes["id"] == id
	})
	if e == nil {
		return nil, false
	}
	return e, true
}

// Confirm calls ConfirmFunc.
func (d *Document) Confirm(message string) bool {
	if d.ConfirmFunc == nil {
		return false
	}
	return d.ConfirmFunc(message)
}

// Tag is the name of the element type, which is empty for text nodes.
func (e *Element) Tag() string {
	return e.tag
}

// SetAttribute sets the value of an attribute.
func (e *Element) SetAttribute(name, value string) {
	if e.attributes == nil {
		e.attributes = make(map[string]string)
	}
	e.attributes[name] = value
}

// Attribute reads the value of an attribute.
func (e *Element) Attribute(name string) string {
	return e.attributes[name]
}

// AppendChild adds the child as the last child of the element, removing it from any previous parent.
func (e *Element) AppendChild(child dom.Element) {
	c := child.(*Element)
	if c.parent != nil {
		c.parent.RemoveChild(c)
	}
	c.parent = e
	e.children = append(e.children, c)
}

// AppendText adds a text node.
func (e *Element) AppendText(text string) {
	t := Element{
		text:   text,
		parent: e,
	}
	e.children = append(e.children, &t)
}

// RemoveChild removes the child from the element.
// Panics if the node is not a child of the element, like browsers do.
func (e *Element) RemoveChild(child dom.Element) {
	c := child.(*Element)
	for i, c2 := range e.children {
		if c2 == c {
			e.children = append(e.children[:i], e.children[i+1:]...)
			c.parent = nil
			return
		}
	}
	panic("removing node that is not a child")
}

// ChildCount is the number of child nodes.
func (e *Element) ChildCount() int {
	return len(e.children)
}

// Child gets the child node at the index.
func (e *Element) Child(index int) dom.Element {
	return e.children[index]
}

// Children gets the child nodes.
func (e *Element) Children() []*Element {
	children := make([]*Element, len(e.children))
	copy(children, e.children)
	return children
}

// TextContent is the text of the element and all of its descendants.
func (e *Element) TextContent() string {
	if len(e.tag) == 0 {
		return e.text
	}
	var sb strings.Builder
	for _, c := range e.children {
		sb.WriteString(c.TextContent())
	}
	return sb.String()
}

// SetTextContent replaces all children with the text.
func (e *Element) SetTextContent(text string) {
	for _, c := range e.children {
		c.parent = nil
	}
	e.children = nil
	if len(text) != 0 {
		e.AppendText(text)
	}
}

// Property reads a boolean property.
func (e *Element) Property(name string) bool {
	return e.properties[name]
}

// SetProperty sets a boolean property.
func (e *Element) SetProperty(name string, value bool) {
	if e.properties == nil {
		e.properties = make(map[string]bool)
	}
	e.properties[name] = value
}

// AddEventListener registers the function to be called when the event is dispatched.
func (e *Element) AddEventListener(eventType string, fn func()) {
	if e.listeners == nil {
		e.listeners = make(map[string][]func())
	}
	e.listeners[eventType] = append(e.listeners[eventType], fn)
}

// Dispatch calls the listeners of the event in the order they were added.
// Click events are not dispatched to disabled elements.
func (e *Element) Dispatch(eventType string) {
	if eventType == dom.Click && e.Property(dom.Disabled) {
		return
	}
	for _, fn := range e.listeners[eventType] {
		fn()
	}
}

// HasListener determines if any functions listen for the event.
func (e *Element) HasListener(eventType string) bool {
	return len(e.listeners[eventType]) != 0
}

// find returns the first element in the tree, depth first, that matches.
func (e *Element) find(matches func(e *Element) bool) *Element {
	if matches(e) {
		return e
	}
	for _, c := range e.children {
		if m := c.find(matches); m != nil {
			return m
		}
	}
	return nil
}
