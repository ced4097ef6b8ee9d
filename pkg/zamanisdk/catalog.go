package zamanisdk

import (
	"context"
	"net/http"
)

// PartnersService manages partners.
type PartnersService struct {
	c *Client
}

// List returns a page of partners.
func (s *PartnersService) List(ctx context.Context, params ListParams) (*List[Partner], error) {
	return listData[Partner](ctx, s.c, "/partners", params)
}

// Create adds a partner.
func (s *PartnersService) Create(ctx context.Context, req PartnerRequest) (*Partner, error) {
	if errs := req.Validate(); errs != nil {
		return nil, errs
	}
	partner, err := sendData[Partner](ctx, s.c, http.MethodPost, "/partners", req)
	if err != nil {
		return nil, err
	}
	return &partner, nil
}

// Update replaces a partner's attributes.
func (s *PartnersService) Update(ctx context.Context, id string, req PartnerRequest) (*Partner, error) {
	if errs := req.Validate(); errs != nil {
		return nil, errs
	}
	partner, err := sendData[Partner](ctx, s.c, http.MethodPatch, "/partners/"+pathID(id), req)
	if err != nil {
		return nil, err
	}
	return &partner, nil
}

// Delete removes a partner.
func (s *PartnersService) Delete(ctx context.Context, id string) error {
	return sendNoContent(ctx, s.c, http.MethodDelete, "/partners/"+pathID(id), nil)
}

// IntegrationsService manages third-party integrations.
type IntegrationsService struct {
	c *Client
}

// List returns a page of integrations.
func (s *IntegrationsService) List(ctx context.Context, params ListParams) (*List[Integration], error) {
	return listData[Integration](ctx, s.c, "/integrations", params)
}

// Create registers an integration.
func (s *IntegrationsService) Create(ctx context.Context, req IntegrationRequest) (*Integration, error) {
	if req.Name == "" || req.Provider == "" {
		errs := ValidationErrors{}
		if req.Name == "" {
			errs["name"] = requiredReason
		}
		if req.Provider == "" {
			errs["provider"] = requiredReason
		}
		return nil, errs
	}
	integration, err := sendData[Integration](ctx, s.c, http.MethodPost, "/integrations", req)
	if err != nil {
		return nil, err
	}
	return &integration, nil
}

// Toggle flips an integration between enabled and disabled.
func (s *IntegrationsService) Toggle(ctx context.Context, id string) (*Integration, error) {
	integration, err := sendData[Integration](ctx, s.c, http.MethodPatch, "/integrations/"+pathID(id)+"/toggle", nil)
	if err != nil {
		return nil, err
	}
	return &integration, nil
}

// ServicesService manages utility services.
type ServicesService struct {
	c *Client
}

// List returns a page of services.
func (s *ServicesService) List(ctx context.Context, params ListParams) (*List[Service], error) {
	return listData[Service](ctx, s.c, "/services", params)
}

// Create adds a service.
func (s *ServicesService) Create(ctx context.Context, req ServiceRequest) (*Service, error) {
	if errs := req.Validate(); errs != nil {
		return nil, errs
	}
	service, err := sendData[Service](ctx, s.c, http.MethodPost, "/services", req)
	if err != nil {
		return nil, err
	}
	return &service, nil
}

// Update patches a service.
func (s *ServicesService) Update(ctx context.Context, id string, req ServiceRequest) (*Service, error) {
	if errs := req.Validate(); errs != nil {
		return nil, errs
	}
	service, err := sendData[Service](ctx, s.c, http.MethodPatch, "/services/"+pathID(id), req)
	if err != nil {
		return nil, err
	}
	return &service, nil
}

// Delete removes a service.
func (s *ServicesService) Delete(ctx context.Context, id string) error {
	return sendNoContent(ctx, s.c, http.MethodDelete, "/services/"+pathID(id), nil)
}
