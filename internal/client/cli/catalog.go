package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/bookshelf/internal/client/models"
	"github.com/google/uuid"
)

// Search runs "search [words] [| genres]" and prints the first page.
func (a *App) Search(ctx context.Context, args []string) error {
	keyWords, genres := splitSearch(args)
	res, err := a.catalog.Search(ctx, keyWords, genres)
	if err != nil {
		return err
	}
	a.printSearch(res)
	return nil
}

// More prints the next page of the latest search.
func (a *App) More(ctx context.Context, args []string) error {
	res, err := a.catalog.More(ctx)
	if err != nil {
		return err
	}
	a.printSearch(res)
	return nil
}

func (a *App) Book(ctx context.Context, args []string) error {
	id, err := idArg(args, "book <id>")
	if err != nil {
		return err
	}
	b, err := a.catalog.Book(ctx, id)
	if err != nil {
		return err
	}
	a.printBook(b)
	return nil
}

func (a *App) Like(ctx context.Context, args []string) error {
	id, err := idArg(args, "like <id>")
	if err != nil {
		return err
	}
	msg, err := a.catalog.Like(ctx, id)
	if err != nil {
		return err
	}
	a.printMessage(msg, "Liked")
	return nil
}

func (a *App) Unlike(ctx context.Context, args []string) error {
	id, err := idArg(args, "unlike <id>")
	if err != nil {
		return err
	}
	msg, err := a.catalog.Unlike(ctx, id)
	if err != nil {
		return err
	}
	a.printMessage(msg, "Like removed")
	return nil
}

// Read downloads a page of a book and reports where it was saved.
func (a *App) Read(ctx context.Context, args []string) error {
	id, page, err := idPageArgs(args, "read <id> [page]")
	if err != nil {
		return err
	}
	v, err := a.pages.Open(ctx, id, page)
	if err != nil {
		return err
	}

	fmt.Fprintf(a.out, "%s, page %d of %d\n", v.Book.Title, v.Page, v.TotalPages)
	if v.Cached {
		fmt.Fprintln(a.out, "  server unavailable, showing the saved copy")
	}
	if v.Width > 0 && v.Height > 0 {
		fmt.Fprintf(a.out, "  %s %dx%d, %d bytes\n", v.Format, v.Width, v.Height, v.Size)
	} else {
		fmt.Fprintf(a.out, "  %s, %d bytes\n", v.Format, v.Size)
	}
	fmt.Fprintf(a.out, "  saved to %s\n", v.Path)
	if v.Page < v.TotalPages && !v.Cached {
		fmt.Fprintf(a.out, "Next: read %s %d\n", v.Book.ID, v.Page+1)
	}
	return nil
}

// Saved lists pages kept on disk: "saved" for the latest, "saved <id>" for one book.
func (a *App) Saved(ctx context.Context, args []string) error {
	id := uuid.Nil
	if len(args) > 0 {
		var err error
		if id, err = idArg(args, "saved [id]"); err != nil {
			return err
		}
	}

	list, err := a.pages.Saved(ctx, id)
	if err != nil {
		return err
	}
	if len(list) == 0 {
		fmt.Fprintln(a.out, "No saved pages")
		return nil
	}

	w := newTable(a.out)
	fmt.Fprintln(w, "BOOK\tTITLE\tPAGE\tFORMAT\tSAVED\tPATH")
	for _, p := range list {
		fmt.Fprintf(w, "%s\t%s\t%d/%d\t%s\t%s\t%s\n",
			p.BookID, p.Title, p.PageNumber, p.TotalPages, p.Format, p.SavedAt.Local().Format("2006-01-02 15:04"), p.Path)
	}
	w.Flush()
	return nil
}

// Forget deletes the saved pages of "forget <id>".
func (a *App) Forget(ctx context.Context, args []string) error {
	id, err := idArg(args, "forget <id>")
	if err != nil {
		return err
	}
	n, err := a.pages.Forget(ctx, id)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Removed %d saved pages\n", n)
	return nil
}

func (a *App) printSearch(res models.BookSearch) {
	if len(res.Books) == 0 {
		fmt.Fprintln(a.out, "No books found")
		return
	}

	w := newTable(a.out)
	fmt.Fprintln(w, "ID\tTITLE\tAUTHOR\tRATING\tLIKES\tGENRES")
	for _, b := range res.Books {
		author := ""
		if b.Author != nil {
			author = b.Author.Name
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%.1f\t%d\t%s\n",
			b.ID, b.Title, author, b.TotalRating, b.LikesCount, strings.Join(b.Genres, ", "))
	}
	w.Flush()

	a.printPage(res.Page, "more")
}

func (a *App) printBook(b models.Book) {
	fmt.Fprintln(a.out, b.Title)
	if b.Author != nil {
		fmt.Fprintf(a.out, "  by %s\n", b.Author.Name)
	}
	fmt.Fprintf(a.out, "  id:      %s\n", b.ID)
	if len(b.Genres) > 0 {
		fmt.Fprintf(a.out, "  genres:  %s\n", strings.Join(b.Genres, ", "))
	}
	fmt.Fprintf(a.out, "  pages:   %d\n", b.PagesCount)
	fmt.Fprintf(a.out, "  rating:  %.1f (%d reviews)\n", b.TotalRating, b.ReviewsCount)
	likes := fmt.Sprintf("%d", b.LikesCount)
	if b.IsLikedByMe != nil && *b.IsLikedByMe {
		likes += ", including you"
	}
	fmt.Fprintf(a.out, "  likes:   %s\n", likes)
	if b.AddedDate != "" {
		fmt.Fprintf(a.out, "  added:   %s\n", b.AddedDate)
	}
	if d := strings.TrimSpace(b.Description); d != "" {
		fmt.Fprintln(a.out)
		fmt.Fprintln(a.out, d)
	}
}
