package cli

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/dmitrijs2005/bookshelf/internal/client/models"
	"github.com/dmitrijs2005/bookshelf/internal/common"
)

// Reviews lists "reviews <book-id> [page]".
func (a *App) Reviews(ctx context.Context, args []string) error {
	id, page, err := idPageArgs(args, "reviews <book-id> [page]")
	if err != nil {
		return err
	}
	res, err := a.reviews.List(ctx, id, page)
	if err != nil {
		return err
	}

	if len(res.Reviews) == 0 {
		fmt.Fprintln(a.out, "No reviews yet")
		return nil
	}
	for _, r := range res.Reviews {
		liked := ""
		if r.IsLikedByMe {
			liked = ", liked by you"
		}
		fmt.Fprintf(a.out, "%s  %s  %d/5  %d likes%s\n", r.ID, r.UserName, r.Rating, r.LikesCount, liked)
		for _, line := range strings.Split(r.Text, "\n") {
			fmt.Fprintf(a.out, "    %s\n", line)
		}
	}

	next := ""
	if res.HasNext() {
		next = fmt.Sprintf("reviews %s %d", id, res.NextPageNumber())
	}
	a.printPage(res.Page, next)
	return nil
}

// AddReview prompts for a rating and text and posts "review <book-id>".
func (a *App) AddReview(ctx context.Context, args []string) error {
	id, err := idArg(args, "review <book-id>")
	if err != nil {
		return err
	}

	s, err := getSimpleText(a.in, "Rating (0-5)", a.out)
	if err != nil {
		return err
	}
	rating, err := parseRating(s)
	if err != nil {
		return err
	}
	text, err := getMultiline(a.in, "Review text", a.out)
	if err != nil {
		return err
	}

	r, err := a.reviews.Add(ctx, id, text, rating)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Review %s added\n", r.ID)
	return nil
}

// EditReview prompts for a new rating and text; blank answers keep the old value.
func (a *App) EditReview(ctx context.Context, args []string) error {
	id, err := idArg(args, "editreview <id>")
	if err != nil {
		return err
	}

	var patch models.ReviewPatch

	s, err := getSimpleText(a.in, "New rating (0-5, empty to keep)", a.out)
	if err != nil {
		return err
	}
	if s != "" {
		rating, err := parseRating(s)
		if err != nil {
			return err
		}
		patch.Rating = &rating
	}

	text, err := getMultiline(a.in, "New text (empty to keep)", a.out)
	if err != nil {
		return err
	}
	if text != "" {
		patch.Text = &text
	}

	r, err := a.reviews.Update(ctx, id, patch)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Review %s updated: %d/5\n", r.ID, r.Rating)
	return nil
}

func (a *App) DeleteReview(ctx context.Context, args []string) error {
	id, err := idArg(args, "delreview <id>")
	if err != nil {
		return err
	}
	msg, err := a.reviews.Delete(ctx, id)
	if err != nil {
		return err
	}
	a.printMessage(msg, "Review deleted")
	return nil
}

func (a *App) LikeReview(ctx context.Context, args []string) error {
	id, err := idArg(args, "likereview <id>")
	if err != nil {
		return err
	}
	msg, err := a.reviews.Like(ctx, id)
	if err != nil {
		return err
	}
	a.printMessage(msg, "Liked")
	return nil
}

func (a *App) UnlikeReview(ctx context.Context, args []string) error {
	id, err := idArg(args, "unlikereview <id>")
	if err != nil {
		return err
	}
	msg, err := a.reviews.Unlike(ctx, id)
	if err != nil {
		return err
	}
	a.printMessage(msg, "Like removed")
	return nil
}

func parseRating(s string) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0, fmt.Errorf("%w: %q", common.ErrInvalidRating, s)
	}
	return n, nil
}
