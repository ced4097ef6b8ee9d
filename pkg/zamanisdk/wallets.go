package zamanisdk

import (
	"context"
	"net/http"
)

// WalletsService manages wallets.
type WalletsService struct {
	c *Client
}

// List returns a page of wallets.
func (s *WalletsService) List(ctx context.Context, params ListParams) (*List[Wallet], error) {
	return listData[Wallet](ctx, s.c, "/wallets", params)
}

// Get returns a single wallet.
func (s *WalletsService) Get(ctx context.Context, id string) (*Wallet, error) {
	wallet, _, err := getData[Wallet](ctx, s.c, "/wallets/"+pathID(id))
	if err != nil {
		return nil, err
	}
	return &wallet, nil
}

// Create opens a wallet.
func (s *WalletsService) Create(ctx context.Context, req CreateWalletRequest) (*Wallet, error) {
	if errs := req.Validate(); errs != nil {
		return nil, errs
	}
	wallet, err := sendData[Wallet](ctx, s.c, http.MethodPost, "/wallets", req)
	if err != nil {
		return nil, err
	}
	return &wallet, nil
}

// Update renames or (de)activates a wallet.
func (s *WalletsService) Update(ctx context.Context, id string, req UpdateWalletRequest) (*Wallet, error) {
	wallet, err := sendData[Wallet](ctx, s.c, http.MethodPatch, "/wallets/"+pathID(id), req)
	if err != nil {
		return nil, err
	}
	return &wallet, nil
}

// DuesService manages community dues.
type DuesService struct {
	c *Client
}

// List returns a page of dues.
func (s *DuesService) List(ctx context.Context, params ListParams) (*List[Due], error) {
	return listData[Due](ctx, s.c, "/dues", params)
}

// Create adds a due.
func (s *DuesService) Create(ctx context.Context, req CreateDueRequest) (*Due, error) {
	if errs := req.Validate(); errs != nil {
		return nil, errs
	}
	due, err := sendData[Due](ctx, s.c, http.MethodPost, "/dues", req)
	if err != nil {
		return nil, err
	}
	return &due, nil
}

// Delete removes a due.
func (s *DuesService) Delete(ctx context.Context, id string) error {
	return sendNoContent(ctx, s.c, http.MethodDelete, "/dues/"+pathID(id), nil)
}
