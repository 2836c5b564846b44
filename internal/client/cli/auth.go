package cli

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/bookshelf/internal/client/services"
	"github.com/dmitrijs2005/bookshelf/internal/common"
)

var errEmailRequired = errors.New("email is required")

// Register prompts for a user name, an email and a password and creates an
// account. A successful registration also signs the user in.
func (a *App) Register(ctx context.Context, args []string) error {
	username, err := getSimpleText(a.in, "Enter user name", a.out)
	if err != nil {
		return err
	}
	email, err := getSimpleText(a.in, "Enter email", a.out)
	if err != nil {
		return err
	}
	if email == "" {
		return errEmailRequired
	}

	password, err := getPassword(a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	u, err := a.auth.Register(ctx, username, email, password)
	if err != nil {
		a.noteOffline(err)
		return err
	}

	a.setMode(ModeOnline)
	a.setUser(u.Username)
	fmt.Fprintf(a.out, "Welcome, %s!\n", u.Username)
	return nil
}

// Login prompts for credentials and authenticates. The email of the last
// successful login is offered as the default; "login <email>" skips the prompt.
func (a *App) Login(ctx context.Context, args []string) error {
	var email string
	if len(args) > 0 {
		email = args[0]
	} else {
		last := a.auth.LastEmail(ctx)
		prompt := "Enter email"
		if last != "" {
			prompt = fmt.Sprintf("Enter email [%s]", last)
		}
		text, err := getSimpleText(a.in, prompt, a.out)
		if err != nil {
			return err
		}
		email = text
		if email == "" {
			email = last
		}
	}
	if email == "" {
		return errEmailRequired
	}

	password, err := getPassword(a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	u, err := a.auth.Login(ctx, email, password)
	if err != nil {
		a.noteOffline(err)
		a.log.Info(ctx, "login unsuccessful", "email", email, "error", err)
		return err
	}

	a.setMode(ModeOnline)
	a.setUser(u.Username)
	a.log.Info(ctx, "login successful", "user", u.Username)
	fmt.Fprintf(a.out, "Welcome, %s!\n", u.Username)
	return nil
}

// Logout forgets the user and the stored refresh token.
func (a *App) Logout(ctx context.Context, args []string) error {
	if err := a.auth.Logout(ctx); err != nil {
		return err
	}
	a.setUser("")
	fmt.Fprintln(a.out, "Logged out")
	return nil
}

// WhoAmI prints the signed-in user and what the access token says about them.
func (a *App) WhoAmI(ctx context.Context, args []string) error {
	id, err := a.auth.WhoAmI(ctx)
	if err != nil {
		return err
	}

	fmt.Fprintf(a.out, "%s <%s>\n", id.User.Username, id.User.Email)
	fmt.Fprintf(a.out, "  id:     %s\n", id.User.ID)
	if c := id.Claims; c != nil {
		if c.Role != "" {
			fmt.Fprintf(a.out, "  role:   %s\n", c.Role)
		}
		if c.Status != "" {
			fmt.Fprintf(a.out, "  status: %s\n", strings.ToLower(c.Status))
		}
		if c.BlockedFor != "" {
			fmt.Fprintf(a.out, "  blocked for: %s\n", c.BlockedFor)
		}
		if c.ExpiresAt != nil {
			fmt.Fprintf(a.out, "  token expires: %s\n", c.ExpiresAt.Local().Format("2006-01-02 15:04:05"))
		}
	}
	return nil
}

// noteOffline switches to offline mode when the server could not be reached.
func (a *App) noteOffline(err error) {
	if services.Unreachable(err) {
		a.setMode(ModeOffline)
	}
}
