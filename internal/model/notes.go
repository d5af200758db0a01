package model

import (
	"strings"
	"time"
)

// NoteDateFormat is the date layout prefixed to every audit entry.
const NoteDateFormat = "2006-01-02"

// NoteLog is the append-only audit trail stored on a lot, one entry per line.
type NoteLog string

// Append returns the log with "<date>: <message>" added as a new line.
// An empty log becomes exactly the new entry.
func (n NoteLog) Append(date time.Time, message string) NoteLog {
	entry := date.Format(NoteDateFormat) + ": " + message
	if n == "" {
		return NoteLog(entry)
	}
	return n + "\n" + NoteLog(entry)
}

// Lines returns the entries in the order they were written.
func (n NoteLog) Lines() []string {
	if n == "" {
		return nil
	}
	return strings.Split(string(n), "\n")
}
