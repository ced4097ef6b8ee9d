package zamanisdk

import (
	"context"
	"net/http"
)

// UsersService manages platform users.
type UsersService struct {
	c *Client
}

// List returns a page of users.
func (s *UsersService) List(ctx context.Context, params ListParams) (*List[User], error) {
	return listData[User](ctx, s.c, "/users", params)
}

// Get returns a single user.
func (s *UsersService) Get(ctx context.Context, id string) (*User, error) {
	user, _, err := getData[User](ctx, s.c, "/users/"+pathID(id))
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// Update patches a user.
func (s *UsersService) Update(ctx context.Context, id string, req UpdateUserRequest) (*User, error) {
	user, err := sendData[User](ctx, s.c, http.MethodPatch, "/users/"+pathID(id), req)
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// Delete removes a user.
func (s *UsersService) Delete(ctx context.Context, id string) error {
	return sendNoContent(ctx, s.c, http.MethodDelete, "/users/"+pathID(id), nil)
}

// ResidentsService manages residents of communities.
type ResidentsService struct {
	c *Client
}

// List returns a page of residents.
func (s *ResidentsService) List(ctx context.Context, params ListParams) (*List[Resident], error) {
	return listData[Resident](ctx, s.c, "/residents", params)
}

// Get returns a single resident.
func (s *ResidentsService) Get(ctx context.Context, id string) (*Resident, error) {
	resident, _, err := getData[Resident](ctx, s.c, "/residents/"+pathID(id))
	if err != nil {
		return nil, err
	}
	return &resident, nil
}

// Approve approves a pending resident.
func (s *ResidentsService) Approve(ctx context.Context, id string) (*Resident, error) {
	resident, err := sendData[Resident](ctx, s.c, http.MethodPatch, "/residents/"+pathID(id)+"/approve", nil)
	if err != nil {
		return nil, err
	}
	return &resident, nil
}

// AdminsService manages administrators.
type AdminsService struct {
	c *Client
}

// List returns a page of administrators.
func (s *AdminsService) List(ctx context.Context, params ListParams) (*List[Admin], error) {
	return listData[Admin](ctx, s.c, "/admins", params)
}

// Create adds an administrator.
func (s *AdminsService) Create(ctx context.Context, req CreateAdminRequest) (*Admin, error) {
	if errs := req.Validate(); errs != nil {
		return nil, errs
	}
	admin, err := sendData[Admin](ctx, s.c, http.MethodPost, "/admins", req)
	if err != nil {
		return nil, err
	}
	return &admin, nil
}

// Delete removes an administrator.
func (s *AdminsService) Delete(ctx context.Context, id string) error {
	return sendNoContent(ctx, s.c, http.MethodDelete, "/admins/"+pathID(id), nil)
}
