package zamanisdk

import (
	"context"
	"fmt"
	"net/http"
)

// AccessCodesService manages visitor access codes. Status transitions are
// owned by the backend; the SDK only refuses to send a cancel for a code it
// already knows is terminal.
type AccessCodesService struct {
	c *Client
}

// List returns a page of access codes.
func (s *AccessCodesService) List(ctx context.Context, params ListParams) (*List[AccessCode], error) {
	return listData[AccessCode](ctx, s.c, "/access-codes", params)
}

// Generate issues a new access code.
func (s *AccessCodesService) Generate(ctx context.Context, req GenerateAccessCodeRequest) (*AccessCode, error) {
	if errs := req.Validate(); errs != nil {
		return nil, errs
	}
	code, err := sendData[AccessCode](ctx, s.c, http.MethodPost, "/access-codes", req)
	if err != nil {
		return nil, err
	}
	return &code, nil
}

// Validate marks a code as used (Open -> Used).
func (s *AccessCodesService) Validate(ctx context.Context, req ValidateAccessCodeRequest) (*AccessCode, error) {
	if errs := req.Validate(); errs != nil {
		return nil, errs
	}
	code, err := sendData[AccessCode](ctx, s.c, http.MethodPost, "/access-codes/validate", req)
	if err != nil {
		return nil, err
	}
	return &code, nil
}

// Cancel cancels an open code (Open -> Cancelled).
func (s *AccessCodesService) Cancel(ctx context.Context, id string) (*AccessCode, error) {
	code, err := sendData[AccessCode](ctx, s.c, http.MethodPatch, "/access-codes/"+pathID(id)+"/cancel", nil)
	if err != nil {
		return nil, err
	}
	return &code, nil
}

// CancelCode cancels code when its known status still allows it.
func (s *AccessCodesService) CancelCode(ctx context.Context, code AccessCode) (*AccessCode, error) {
	if !code.CanCancel() {
		return nil, fmt.Errorf("access code %s is %s and cannot be cancelled", code.Code, code.Status)
	}
	return s.Cancel(ctx, code.ID)
}
