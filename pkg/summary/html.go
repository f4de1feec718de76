package summary

import (
	"context"
	"strconv"
	"strings"

	"github.com/a-h/templ"

	"github.com/dmitrymomot/formkit/pkg/theme"
)

// TableID is the element id of the rendered table, for partial updates.
const TableID = "summary-table"

// PageData configures Page.
type PageData struct {
	Summary Summary
	Theme   theme.Mode
	// QRCode is an optional image data URI shown below the table.
	QRCode string
	// ThemeToggleURL and ClearURL are posted to by the page buttons.
	ThemeToggleURL string
	ClearURL       string
	// ScriptSrc is the datastar bundle; the page is static without it.
	ScriptSrc string
}

func entryLabel(i int) string {
	return "#" + strconv.Itoa(i+1)
}

func postAction(url string) string {
	return "@post('" + url + "')"
}

func deleteAction(url string) string {
	return "@delete('" + url + "')"
}

// Render renders a component to a string.
func Render(ctx context.Context, c templ.Component) (string, error) {
	var sb strings.Builder
	if err := c.Render(ctx, &sb); err != nil {
		return "", err
	}
	return sb.String(), nil
}
