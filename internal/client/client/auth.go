package client

import (
	"context"
	"fmt"
	"net/http"

	"github.com/dmitrijs2005/bookshelf/internal/client/envelope"
	"github.com/dmitrijs2005/bookshelf/internal/client/models"
	"github.com/dmitrijs2005/bookshelf/internal/client/transport"
)

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type registerRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Register creates an account and signs it in. On success the refresh token
// is persisted and the user becomes the session's current user. A rejected
// registration returns the server's envelope, whose Text is the reason.
func (c *HTTPClient) Register(ctx context.Context, username, email, password string) (*envelope.Envelope[models.User], error) {
	return c.authenticate(ctx, "/register", registerRequest{Username: username, Email: email, Password: password})
}

// Login signs in with email and password. See Register for the outcomes.
func (c *HTTPClient) Login(ctx context.Context, email, password string) (*envelope.Envelope[models.User], error) {
	return c.authenticate(ctx, "/login", loginRequest{Email: email, Password: password})
}

// authenticate does not use the refresh protocol: a 401 here means bad
// credentials, not an expired token.
func (c *HTTPClient) authenticate(ctx context.Context, endpoint string, body any) (*envelope.Envelope[models.User], error) {
	path := userServicePath + endpoint
	req, err := transport.NewJSONRequest(http.MethodPost, path, body)
	if err != nil {
		return nil, err
	}

	res, err := c.tr.Do(ctx, req)
	if err != nil {
		return nil, err
	}

	if !res.OK() {
		c.log.Info(ctx, "authentication rejected", "endpoint", endpoint, "status", res.StatusCode)
		if !res.IsJSON() {
			return nil, &transport.Error{Kind: transport.KindUnavailable, Op: "POST " + path, Err: transport.ErrNotJSON}
		}
		env, err := envelope.Decode(res.Body)
		if err != nil {
			return nil, &transport.Error{Kind: transport.KindMalformed, Op: "POST " + path, Err: fmt.Errorf("%w: %v", transport.ErrMalformed, err)}
		}
		return envelope.Convert[models.User](env), nil
	}

	env, err := envelope.Decode(res.Body)
	if err != nil {
		return nil, &transport.Error{Kind: transport.KindMalformed, Op: "POST " + path, Err: fmt.Errorf("%w: %v", transport.ErrMalformed, err)}
	}
	login, err := envelope.Convert[models.UserLogin](env).Value()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrUnexpectedPayload, err)
	}

	if err := c.sess.SaveLogin(ctx, login); err != nil {
		return nil, fmt.Errorf("save login: %w", err)
	}
	c.log.Info(ctx, "signed in", "user", login.UserData.Username)

	out, err := envelope.Of(env.DataType, login.UserData)
	if err != nil {
		return nil, err
	}
	out.Status = env.Status
	return out, nil
}
