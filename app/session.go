package app

import "csvalign/domain/table"

// Slot identifies which of the two uploaded spreadsheets a table fills.
type Slot string

const (
	SlotFirst  Slot = "first"
	SlotSecond Slot = "second"
)

// Session is the explicit state of one comparison workflow: the two loaded
// tables, the processing flag gating the single in-flight request, the last
// error message, and the last result. It is only mutated through the named
// transitions below, always under the owning service's lock.
type Session struct {
	First      *table.Table
	Second     *table.Table
	Processing bool
	ErrMessage string
	Result     *table.Table
	ResultCSV  string // fence-stripped model reply, verbatim, for download
}

// loadTable installs a freshly normalized table into a slot. Loading is
// allowed while a request is in flight; only starting a new request is gated.
func (s *Session) loadTable(slot Slot, t table.Table) {
	switch slot {
	case SlotFirst:
		s.First = &t
	case SlotSecond:
		s.Second = &t
	}
}

// startProcessing marks the request in flight and clears the previous error.
func (s *Session) startProcessing() {
	s.Processing = true
	s.ErrMessage = ""
}

// receiveResult installs the parsed result and ends processing.
func (s *Session) receiveResult(t table.Table, csv string) {
	s.Result = &t
	s.ResultCSV = csv
	s.Processing = false
	s.ErrMessage = ""
}

// receiveEmpty clears the prior result without surfacing an error. Used when
// the model returns no text.
func (s *Session) receiveEmpty() {
	s.Result = nil
	s.ResultCSV = ""
	s.Processing = false
	s.ErrMessage = ""
}

// receiveError records the display message and ends processing.
func (s *Session) receiveError(message string) {
	s.Processing = false
	s.ErrMessage = message
}
