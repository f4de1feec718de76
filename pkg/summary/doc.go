// Package summary renders stored form records for display.
//
// FromRecord and FromRecords build a Summary whose rows carry humanized labels
// ("fullName" becomes "Full Name"). A Summary renders as aligned text for the
// terminal (WriteText) or as templ components for the web (Table, Page).
// An empty summary renders EmptyMessage.
//
// RecordQRCode encodes a record's JSON as a PNG data URI so a confirmation can
// be scanned from the summary page.
package summary
