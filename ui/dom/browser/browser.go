//go:build js && wasm

// Package browser contains the javascript bindings for the site.
package browser

import (
	"context"
	"errors"
	"strings"
	"sync"
	"syscall/js"

	"github.com/jacobpatterson1549/selene-tiles/ui/dom"
)

type (
	// Document is the document of the web page.
	Document struct {
		global   js.Value
		document js.Value
		mu       sync.Mutex
		// funcs are the event listeners that are released when the document is done.
		funcs []js.Func
	}

	// Element wraps a node of the document.
	Element struct {
		value js.Value
		doc   *Document
	}
)

var (
	_ dom.Document = new(Document)
	_ dom.Element  = new(Element)
)

// NewDocument creates a Document for the web page.
// Event listeners are released when the context is done.
func NewDocument(ctx context.Context, wg *sync.WaitGroup) *Document {
	global := js.Global()
	d := Document{
		global:   global,
		document: global.Get("document"),
	}
	wg.Add(1)
	go d.releaseFuncsOnDone(ctx, wg)
	return &d
}

// CreateElement creates an element that is not attached to the page.
func (d *Document) CreateElement(tag string) dom.Element {
	value := d.document.Call("createElement", tag)
	return d.element(value)
}

// ElementByID finds the element with the id attribute.
func (d *Document) ElementByID(id string) (dom.Element, bool) {
	value := d.document.Call("getElementById", id)
	if value.IsNull() || value.IsUndefined() {
		return nil, false
	}
	return d.element(value), true
}

// Confirm shows a popup asking the user a yes/no question.
// The true return value implies the "yes" choice.
func (d *Document) Confirm(message string) bool {
	result := d.global.Call("confirm", message)
	return result.Bool()
}

// alert shows a popup in the browser.
func (d *Document) alert(message string) {
	d.global.Call("alert", message)
}

// element wraps the value.
func (d *Document) element(value js.Value) *Element {
	e := Element{
		value: value,
		doc:   d,
	}
	return &e
}

// newJsFunc creates a new javascript function from the provided function.
// The function is released when the document is done.
func (d *Document) newJsFunc(fn func()) js.Func {
	f := js.FuncOf(func(this js.Value, args []js.Value) interface{} {
		defer d.AlertOnPanic()
		fn()
		return nil
	})
	d.mu.Lock()
	defer d.mu.Unlock()
	d.funcs = append(d.funcs, f)
	return f
}

// releaseFuncsOnDone releases the jsFuncs and decrements the waitgroup when the context is done.
// This function should be called on a separate goroutine.
func (d *Document) releaseFuncsOnDone(ctx context.Context, wg *sync.WaitGroup) {
	defer d.AlertOnPanic()
	<-ctx.Done() // BLOCKING
	d.mu.Lock()
	defer d.mu.Unlock()
	for _, f := range d.funcs {
		f.Release()
	}
	d.funcs = nil
	wg.Done()
}

// AlertOnPanic checks to see if a panic has occurred.
// This function should be deferred as the first statement for each goroutine.
func (d *Document) AlertOnPanic() {
	if r := recover(); r != nil {
		err := recoverError(r)
		f := []string{
			"FATAL: site shutting down",
			"See browser console for more information",
			"Message: " + err.Error(),
		}
		message := strings.Join(f, "\n")
		d.alert(message)
		panic(err)
	}
}

// SetAttribute sets the value of an attribute.
func (e *Element) SetAttribute(name, value string) {
	e.value.Call("setAttribute", name, value)
}

// Attribute reads the value of an attribute.
func (e *Element) Attribute(name string) string {
	value := e.value.Call("getAttribute", name)
	if value.IsNull() || value.IsUndefined() {
		return ""
	}
	return value.String()
}

// AppendChild adds the child as the last child of the element.
func (e *Element) AppendChild(child dom.Element) {
	c := child.(*Element)
	e.value.Call("appendChild", c.value)
}

// AppendText adds a text node as the last child of the element.
func (e *Element) AppendText(text string) {
	textNode := e.doc.document.Call("createTextNode", text)
	e.value.Call("appendChild", textNode)
}

// RemoveChild removes the child from the element.
func (e *Element) RemoveChild(child dom.Element) {
	c := child.(*Element)
	e.value.Call("removeChild", c.value)
}

// ChildCount is the number of child nodes.
func (e *Element) ChildCount() int {
	childNodes := e.value.Get("childNodes")
	return childNodes.Length()
}

// Child gets the child node at the index.
func (e *Element) Child(index int) dom.Element {
	childNodes := e.value.Get("childNodes")
	value := childNodes.Index(index)
	return e.doc.element(value)
}

// TextContent is the text of the element and all of its descendants.
func (e *Element) TextContent() string {
	textContent := e.value.Get("textContent")
	return textContent.String()
}

// SetTextContent replaces all children with the text.
func (e *Element) SetTextContent(text string) {
	e.value.Set("textContent", text)
}

// Property reads a boolean property.
func (e *Element) Property(name string) bool {
	value := e.value.Get(name)
	return value.Truthy()
}

// SetProperty sets a boolean property.
func (e *Element) SetProperty(name string, value bool) {
	e.value.Set(name, value)
}

// AddEventListener calls the function each time the event is dispatched to the element.
func (e *Element) AddEventListener(eventType string, fn func()) {
	f := e.doc.newJsFunc(fn)
	e.value.Call("addEventListener", eventType, f)
}

// recoverError converts the recovery interface into a useful error.
// Panics if the interface is not an error or a string.
func recoverError(r interface{}) error {
	switch v := r.(type) {
	case error:
		return v
	case string:
		return errors.New(v)
	default:
		panic([]interface{}{"unknown panic type", v, r})
	}
}
