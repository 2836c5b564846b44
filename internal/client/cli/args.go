package cli

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/dmitrijs2005/bookshelf/internal/client/envelope"
	"github.com/dmitrijs2005/bookshelf/internal/client/models"
	"github.com/dmitrijs2005/bookshelf/internal/client/services"
	"github.com/dmitrijs2005/bookshelf/internal/common"
	"github.com/google/uuid"
)

// usageError reports a command called with the wrong arguments.
type usageError struct {
	usage string
}

func (e *usageError) Error() string { return "usage: " + e.usage }

func usage(u string) error { return &usageError{usage: u} }

func parseID(s string) (uuid.UUID, error) {
	id, err := uuid.Parse(s)
	if err != nil {
		return uuid.Nil, fmt.Errorf("%w: %q", common.ErrInvalidID, s)
	}
	return id, nil
}

func parsePage(s string) (int, error) {
	n, err := strconv.Atoi(s)
	if err != nil || n < 1 {
		return 0, fmt.Errorf("%w: %q", services.ErrPageOutOfRange, s)
	}
	return n, nil
}

func parseStatus(s string) (models.ReadingStatus, error) {
	st, err := models.ParseReadingStatus(s)
	if err != nil {
		return "", fmt.Errorf("%w: %q", common.ErrInvalidStatus, s)
	}
	return st, nil
}

// idArg reads the single id argument of commands like "book <id>".
func idArg(args []string, u string) (uuid.UUID, error) {
	if len(args) != 1 {
		return uuid.Nil, usage(u)
	}
	return parseID(args[0])
}

// idPageArgs reads "<id> [page]"; the page defaults to 1.
func idPageArgs(args []string, u string) (uuid.UUID, int, error) {
	if len(args) < 1 || len(args) > 2 {
		return uuid.Nil, 0, usage(u)
	}
	id, err := parseID(args[0])
	if err != nil {
		return uuid.Nil, 0, err
	}
	page := 1
	if len(args) == 2 {
		if page, err = parsePage(args[1]); err != nil {
			return uuid.Nil, 0, err
		}
	}
	return id, page, nil
}

// idStatusArgs reads "<id> <status>".
func idStatusArgs(args []string, u string) (uuid.UUID, models.ReadingStatus, error) {
	if len(args) != 2 {
		return uuid.Nil, "", usage(u)
	}
	id, err := parseID(args[0])
	if err != nil {
		return uuid.Nil, "", err
	}
	st, err := parseStatus(args[1])
	if err != nil {
		return uuid.Nil, "", err
	}
	return id, st, nil
}

// splitSearch separates key words from genres: "dune herbert | sci-fi".
func splitSearch(args []string) (keyWords, genres string) {
	line := strings.Join(args, " ")
	keyWords, genres, _ = strings.Cut(line, "|")
	return strings.TrimSpace(keyWords), strings.TrimSpace(genres)
}

// errorText turns a handler error into the line shown to the user.
func errorText(err error) string {
	var (
		ue *usageError
		se *envelope.ServerError
	)
	switch {
	case errors.As(err, &ue):
		return "Usage: " + ue.usage
	case services.Unreachable(err):
		return "Server unavailable, try again later"
	case errors.Is(err, common.ErrNotFound):
		return "Not found"
	case errors.As(err, &se) && se.Status != "" && se.Message != "":
		return fmt.Sprintf("Error: %s (%s)", se.Message, se.Status)
	}
	return "Error: " + err.Error()
}
