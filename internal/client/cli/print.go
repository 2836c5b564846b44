package cli

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/dmitrijs2005/bookshelf/internal/client/models"
)

func newTable(w io.Writer) *tabwriter.Writer {
	return tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
}

// printPage prints the pagination footer and how to get the next page.
func (a *App) printPage(p models.Page, next string) {
	fmt.Fprintf(a.out, "Page %d of %d, %d total\n", p.PageNumber, p.TotalPages, p.TotalCount)
	if p.HasNext() && next != "" {
		fmt.Fprintf(a.out, "Next: %s\n", next)
	}
}

// printMessage prints the server's confirmation, or fallback when it sent none.
func (a *App) printMessage(msg, fallback string) {
	if msg == "" {
		msg = fallback
	}
	fmt.Fprintln(a.out, msg)
}
