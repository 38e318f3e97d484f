// Package log contains shared logging code
package log

import (
	"fmt"
	"time"

	"github.com/jacobpatterson1549/selene-tiles/ui/dom"
)

// ElementID is the id of the list that log items are added to.
const ElementID = "log"

// Log manages messages for the log list.
type Log struct {
	doc dom.Document
	// TimeFunc is a function which should supply the current time since the unix epoch.
	// This is used for logging message timestamps
	TimeFunc func() int64
}

// New creates a new log.
func New(doc dom.Document, timeFunc func() int64) *Log {
	l := Log{
		doc:      doc,
		TimeFunc: timeFunc,
	}
	return &l
}

// Info logs an info-styled message.
func (l *Log) Info(text string) {
	l.add("info", text)
}

// Warning logs an warning-styled message.
func (l *Log) Warning(text string) {
	l.add("warning", text)
}

// Error logs an error-styled message.
func (l *Log) Error(text string) {
	l.add("error", text)
}

// Printf logs a formatted warning.
// Arguments are handled in the manner of fmt.Printf.
func (l *Log) Printf(format string, v ...interface{}) {
	l.Warning(fmt.Sprintf(format, v...))
}

// Clear clears the log.
func (l *Log) Clear() {
	if e, ok := l.doc.ElementByID(ElementID); ok {
		dom.RemoveChildren(e)
	}
}

// add writes a log item with the specified class.
// Messages are dropped if the page has no log list.
func (l *Log) add(class, text string) {
	logElement, ok := l.doc.ElementByID(ElementID)
	if !ok {
		return
	}
	item := l.doc.CreateElement("li")
	item.SetAttribute("class", class)
	textContent := FormatTime(l.TimeFunc()) + " : " + text
	item.SetTextContent(textContent)
	logElement.AppendChild(item)
}

// FormatTime formats a datetime to HH:MM:SS.
func FormatTime(utcSeconds int64) string {
	t := time.Unix(utcSeconds, 0).Local() // uses local timezone
	return t.Format("15:04:05")
}
