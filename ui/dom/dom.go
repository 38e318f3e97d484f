// Package dom describes the document that the site is drawn on.
// Implementations include the browser document and an in-memory tree.
package dom

type (
	// Document creates and finds elements and asks the user questions.
	Document interface {
		// CreateElement makes a new element that is not attached to the document.
		CreateElement(tag string) Element
		// ElementByID finds the element with the id attribute.
		ElementByID(id string) (Element, bool)
		// Confirm shows a popup asking the user a yes/no question.
		// The true return value implies the "yes" choice.
		// It blocks until the user answers.
		Confirm(message string) bool
	}

	// Element is a node in the document tree.
	Element interface {
		// SetAttribute sets the value of an attribute, such as "src" or "style".
		SetAttribute(name, value string)
		// Attribute reads the value of an attribute, which is empty if it is not set.
		Attribute(name string) string
		// AppendChild adds the child as the last child of the element.
		AppendChild(child Element)
		// AppendText adds a text node as the last child of the element.
		AppendText(text string)
		// RemoveChild removes the child from the element.
		RemoveChild(child Element)
		// ChildCount is the number of child nodes, including text nodes.
		ChildCount() int
		// Child gets the child node at the index.
		Child(index int) Element
		// TextContent is the text of the element and all of its descendants.
		TextContent() string
		// SetTextContent replaces all children with the text.
		SetTextContent(text string)
		// Property reads a boolean property, such as "checked" or "disabled".
		Property(name string) bool
		// SetProperty sets a boolean property.
		SetProperty(name string, value bool)
		// AddEventListener calls the function each time the event, such as "click" or "change", is dispatched to the element.
		AddEventListener(eventType string, fn func())
	}
)

const (
	// Checked is the property of checkboxes that are selected.
	Checked = "checked"
	// Disabled is the property of buttons that cannot be clicked.
	Disabled = "disabled"
	// Click is the event of elements being pressed.
	Click = "click"
	// Change is the event of inputs that have changed values.
	Change = "change"
)

// RemoveChildren removes all child nodes from the element.
func RemoveChildren(e Element) {
	for i := e.ChildCount() - 1; i >= 0; i-- {
		e.RemoveChild(e.Child(i))
	}
}
