package api

import (
	"context"
	"net/http"
)

// UsersClient wraps /users. Unlike every other collection the users endpoint
// sits outside the /api prefix; the client preserves that quirk.
type UsersClient struct {
	c *Client
}

func (u *UsersClient) List(ctx context.Context) ([]User, error) {
	var out []User
	if err := u.c.do(ctx, http.MethodGet, "/users", nil, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (u *UsersClient) Get(ctx context.Context, id string) (User, error) {
	var out User
	if err := u.c.do(ctx, http.MethodGet, "/users/"+id, nil, nil, &out); err != nil {
		return User{}, err
	}
	return out, nil
}

func (u *UsersClient) Create(ctx context.Context, user User) (User, error) {
	if err := u.c.checkPayload(user); err != nil {
		return User{}, err
	}
	var out User
	if err := u.c.do(ctx, http.MethodPost, "/users", nil, user, &out); err != nil {
		return User{}, err
	}
	return out, nil
}

func (u *UsersClient) Update(ctx context.Context, id string, user User) (User, error) {
	if err := u.c.checkPayload(user); err != nil {
		return User{}, err
	}
	var out User
	if err := u.c.do(ctx, http.MethodPut, "/users/"+id, nil, user, &out); err != nil {
		return User{}, err
	}
	return out, nil
}

func (u *UsersClient) Delete(ctx context.Context, id string) error {
	return u.c.do(ctx, http.MethodDelete, "/users/"+id, nil, nil, nil)
}
