package zamanisdk

import (
	"context"
)

// GetLiveness checks if the gateway is alive.
func (c *Client) GetLiveness(ctx context.Context) (*HealthResponse, error) {
	return c.health(ctx, "/livez")
}

// GetReadiness checks if the gateway and its dependencies are ready.
func (c *Client) GetReadiness(ctx context.Context) (*HealthResponse, error) {
	return c.health(ctx, "/readyz")
}

func (c *Client) health(ctx context.Context, endpoint string) (*HealthResponse, error) {
	res, err := c.Get(ctx, endpoint, SkipAuth())
	if err != nil {
		return nil, err
	}

	var health HealthResponse
	if err := res.Decode(&health); err != nil {
		return nil, err
	}
	return &health, nil
}
