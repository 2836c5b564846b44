package cli

import (
	"context"
	"fmt"
)

// Shelf lists "shelf <status> [page]".
func (a *App) Shelf(ctx context.Context, args []string) error {
	if len(args) < 1 || len(args) > 2 {
		return usage("shelf <LIKED|READING|READ|DROP> [page]")
	}
	st, err := parseStatus(args[0])
	if err != nil {
		return err
	}
	page := 1
	if len(args) == 2 {
		if page, err = parsePage(args[1]); err != nil {
			return err
		}
	}

	res, err := a.shelf.List(ctx, st, page)
	if err != nil {
		return err
	}
	if len(res.Books) == 0 {
		fmt.Fprintf(a.out, "Nothing on the %s shelf\n", st)
		return nil
	}

	w := newTable(a.out)
	fmt.Fprintln(w, "ID\tTITLE\tAUTHOR\tPAGE")
	for _, b := range res.Books {
		fmt.Fprintf(w, "%s\t%s\t%s\t%d\n", b.BookID, b.Title, b.AuthorName, b.EndPage)
	}
	w.Flush()

	next := ""
	if res.HasNext() {
		next = fmt.Sprintf("shelf %s %d", st, res.NextPageNumber())
	}
	a.printPage(res.Page, next)
	return nil
}

// Shelve puts a book on a shelf: "shelve <id> <status>".
func (a *App) Shelve(ctx context.Context, args []string) error {
	id, st, err := idStatusArgs(args, "shelve <id> <status>")
	if err != nil {
		return err
	}
	msg, err := a.shelf.Add(ctx, id, st)
	if err != nil {
		return err
	}
	a.printMessage(msg, "Added to "+string(st))
	return nil
}

// Restatus moves a book to another shelf: "restatus <id> <status>".
func (a *App) Restatus(ctx context.Context, args []string) error {
	id, st, err := idStatusArgs(args, "restatus <id> <status>")
	if err != nil {
		return err
	}
	msg, err := a.shelf.Change(ctx, id, st)
	if err != nil {
		return err
	}
	a.printMessage(msg, "Moved to "+string(st))
	return nil
}

func (a *App) Unshelve(ctx context.Context, args []string) error {
	id, err := idArg(args, "unshelve <id>")
	if err != nil {
		return err
	}
	msg, err := a.shelf.Remove(ctx, id)
	if err != nil {
		return err
	}
	a.printMessage(msg, "Removed")
	return nil
}

// Progress records the last page read: "progress <id> <page>".
func (a *App) Progress(ctx context.Context, args []string) error {
	if len(args) != 2 {
		return usage("progress <id> <page>")
	}
	id, page, err := idPageArgs(args, "progress <id> <page>")
	if err != nil {
		return err
	}
	msg, err := a.shelf.SetEndPage(ctx, id, page)
	if err != nil {
		return err
	}
	a.printMessage(msg, fmt.Sprintf("Stopped at page %d", page))
	return nil
}
