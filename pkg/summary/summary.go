package summary

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/dmitrymomot/formkit/pkg/form"
	"github.com/dmitrymomot/formkit/pkg/sanitizer"
)

// EmptyMessage is shown when nothing has been stored for the form.
const EmptyMessage = "No registration data found. Please register first."

// Row is one labeled value of a record.
type Row struct {
	Key   string
	Label string
	Value string
}

// Entry holds the rows of one stored record, in record order.
type Entry struct {
	Rows []Row
}

// Summary is the display model of the records stored for a form.
type Summary struct {
	Form    string
	Title   string
	Entries []Entry
}

// FromRecord builds a summary holding a single record.
func FromRecord(formName string, rec form.Record) Summary {
	return FromRecords(formName, []form.Record{rec})
}

// FromRecords builds a summary with one entry per record. Records without
// any keys are skipped.
func FromRecords(formName string, recs []form.Record) Summary {
	s := Summary{
		Form:  formName,
		Title: sanitizer.HumanizeKey(formName) + " Summary",
	}
	for _, rec := range recs {
		if rec.Len() == 0 {
			continue
		}
		entry := Entry{Rows: make([]Row, 0, rec.Len())}
		for _, e := range rec.Entries() {
			entry.Rows = append(entry.Rows, Row{
				Key:   e.Key,
				Label: sanitizer.HumanizeKey(e.Key),
				Value: e.Value,
			})
		}
		s.Entries = append(s.Entries, entry)
	}
	return s
}

func (s Summary) IsEmpty() bool {
	return len(s.Entries) == 0
}

// WriteText renders the summary as aligned label/value lines. Multiple
// entries are numbered and separated by a blank line.
func (s Summary) WriteText(w io.Writer) error {
	if s.IsEmpty() {
		_, err := fmt.Fprintln(w, EmptyMessage)
		return err
	}

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	for i, entry := range s.Entries {
		if len(s.Entries) > 1 {
			if i > 0 {
				fmt.Fprintln(tw)
			}
			fmt.Fprintf(tw, "#%d\n", i+1)
		}
		for _, row := range entry.Rows {
			fmt.Fprintf(tw, "%s\t%s\n", row.Label, row.Value)
		}
	}
	return tw.Flush()
}
