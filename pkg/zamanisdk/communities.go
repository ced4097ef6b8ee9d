package zamanisdk

import (
	"bytes"
	"context"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"net/url"
)

// File is an uploaded file held in memory.
type File struct {
	Name        string
	ContentType string
	Data        []byte
}

// CreateCommunityRequest is the create-community form. It is sent as
// multipart/form-data so the optional logo travels with the fields.
type CreateCommunityRequest struct {
	CommunityID    string
	Name           string
	Address        Address
	AdminFirstName string
	AdminLastName  string
	AdminEmail     string
	AdminPhone     string
	AdminUsername  string
	Logo           *File
}

// multipart encodes the request as form fields plus an optional logo part.
func (r CreateCommunityRequest) multipart() (*bytes.Buffer, string, error) {
	body := &bytes.Buffer{}
	w := multipart.NewWriter(body)

	fields := []struct{ name, value string }{
		{"communityId", r.CommunityID},
		{"name", r.Name},
		{"street", r.Address.Street},
		{"city", r.Address.City},
		{"state", r.Address.State},
		{"country", r.Address.Country},
		{"postalCode", r.Address.PostalCode},
		{"adminFirstName", r.AdminFirstName},
		{"adminLastName", r.AdminLastName},
		{"adminEmail", r.AdminEmail},
		{"adminPhone", r.AdminPhone},
		{"adminUsername", r.AdminUsername},
	}
	for _, f := range fields {
		if f.value == "" {
			continue
		}
		if err := w.WriteField(f.name, f.value); err != nil {
			return nil, "", err
		}
	}

	if r.Logo != nil {
		h := make(textproto.MIMEHeader)
		h.Set("Content-Disposition", fmt.Sprintf(`form-data; name="logo"; filename=%q`, r.Logo.Name))
		h.Set("Content-Type", r.Logo.ContentType)
		part, err := w.CreatePart(h)
		if err != nil {
			return nil, "", err
		}
		if _, err := part.Write(r.Logo.Data); err != nil {
			return nil, "", err
		}
	}

	if err := w.Close(); err != nil {
		return nil, "", err
	}
	return body, w.FormDataContentType(), nil
}

// CommunitiesService manages communities.
type CommunitiesService struct {
	c *Client
}

// List returns a page of communities.
func (s *CommunitiesService) List(ctx context.Context, params ListParams) (*List[Community], error) {
	return listData[Community](ctx, s.c, "/communities", params)
}

// Get returns a single community.
func (s *CommunitiesService) Get(ctx context.Context, id string) (*Community, error) {
	community, _, err := getData[Community](ctx, s.c, "/communities/"+pathID(id))
	if err != nil {
		return nil, err
	}
	return &community, nil
}

// Create validates and submits the create-community form.
func (s *CommunitiesService) Create(ctx context.Context, req CreateCommunityRequest) (*Community, error) {
	if errs := req.Validate(); errs != nil {
		return nil, errs
	}

	body, contentType, err := req.multipart()
	if err != nil {
		return nil, fmt.Errorf("failed to encode community form: %w", err)
	}

	community, err := sendData[Community](ctx, s.c, http.MethodPost, "/communities", body,
		WithHeader("Content-Type", contentType),
	)
	if err != nil {
		return nil, err
	}
	return &community, nil
}

// Update patches a community.
func (s *CommunitiesService) Update(ctx context.Context, id string, req UpdateCommunityRequest) (*Community, error) {
	community, err := sendData[Community](ctx, s.c, http.MethodPatch, "/communities/"+pathID(id), req)
	if err != nil {
		return nil, err
	}
	return &community, nil
}

// Delete removes a community.
func (s *CommunitiesService) Delete(ctx context.Context, id string) error {
	return sendNoContent(ctx, s.c, http.MethodDelete, "/communities/"+pathID(id), nil)
}

// CheckCommunityID asks whether a community ID is still free.
func (s *CommunitiesService) CheckCommunityID(ctx context.Context, communityID string) (*Availability, error) {
	avail, _, err := getData[Availability](ctx, s.c, "/communities/check-id",
		WithQuery(url.Values{"communityId": {communityID}}),
	)
	if err != nil {
		return nil, err
	}
	avail.Value = communityID
	return &avail, nil
}

// StreetsService manages the streets of a community.
type StreetsService struct {
	c *Client
}

// List returns the streets of a community.
func (s *StreetsService) List(ctx context.Context, communityID string) ([]Street, error) {
	streets, _, err := getData[[]Street](ctx, s.c, "/communities/"+pathID(communityID)+"/streets")
	return streets, err
}

// Create adds a street to a community.
func (s *StreetsService) Create(ctx context.Context, communityID string, req CreateStreetRequest) (*Street, error) {
	if req.Name == "" {
		return nil, ValidationErrors{"name": requiredReason}
	}
	street, err := sendData[Street](ctx, s.c, http.MethodPost, "/communities/"+pathID(communityID)+"/streets", req)
	if err != nil {
		return nil, err
	}
	return &street, nil
}
