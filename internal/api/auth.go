package api

import (
	"context"
	"net/http"
)

// AuthClient wraps the login endpoint.
type AuthClient struct {
	c *Client
}

type loginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type loginResponse struct {
	AccessToken string `json:"accessToken"`
}

// Login exchanges credentials for an access token. The request carries no
// bearer header; the token in the response is the credential.
func (a *AuthClient) Login(ctx context.Context, email, password string) (string, error) {
	payload := loginRequest{Email: email, Password: password}
	if err := a.c.checkPayload(payload); err != nil {
		return "", err
	}
	var resp loginResponse
	if err := a.c.do(ctx, http.MethodPost, "/api/auth/login", nil, payload, &resp); err != nil {
		return "", err
	}
	return resp.AccessToken, nil
}
