package zamanisdk

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"reflect"
	"strings"
)

// Result is a successful (2xx) response.
type Result struct {
	StatusCode  int
	ContentType string

	// JSON holds the body when the response content type is JSON.
	JSON json.RawMessage

	// Text holds the body for every other content type.
	Text string
}

// IsJSON reports whether the body was JSON.
func (r *Result) IsJSON() bool {
	return r.JSON != nil
}

// Decode unmarshals the JSON body into v. When v implements Validate() error
// the decoded value is validated before Decode returns.
func (r *Result) Decode(v any) error {
	if len(r.JSON) == 0 {
		if r.Text != "" {
			return fmt.Errorf("response is not JSON (content-type %q)", r.ContentType)
		}
		return nil
	}

	if err := json.Unmarshal(r.JSON, v); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}

	if err := validateValue(v); err != nil {
		return fmt.Errorf("invalid response payload: %w", err)
	}
	return nil
}

// validator is implemented by response types that check their own shape.
type validator interface {
	Validate() error
}

// validateValue validates v, or each element when v is a slice.
func validateValue(v any) error {
	if val, ok := v.(validator); ok {
		return val.Validate()
	}

	rv := reflect.ValueOf(v)
	for rv.Kind() == reflect.Pointer && !rv.IsNil() {
		rv = rv.Elem()
		if val, ok := rv.Interface().(validator); ok {
			return val.Validate()
		}
	}

	if rv.Kind() != reflect.Slice {
		return nil
	}
	for i := range rv.Len() {
		if val, ok := rv.Index(i).Interface().(validator); ok {
			if err := val.Validate(); err != nil {
				return fmt.Errorf("item %d: %w", i, err)
			}
		}
	}
	return nil
}

// url builds the absolute URL for endpoint against the base URL.
func (c *Client) url(endpoint string, query url.Values) string {
	u := c.BaseURL + "/" + strings.TrimPrefix(endpoint, "/")
	if len(query) > 0 {
		sep := "?"
		if strings.Contains(u, "?") {
			sep = "&"
		}
		u += sep + query.Encode()
	}
	return u
}

// do performs one request. It never retries.
func (c *Client) do(
	ctx context.Context,
	method, endpoint string,
	body any,
	opts []RequestOption,
) (*Result, error) {
	cfg := requestConfig{
		query:   url.Values{},
		headers: http.Header{},
	}
	for _, opt := range opts {
		opt(&cfg)
	}

	reader, contentType, err := encodeBody(body)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, method, c.url(endpoint, cfg.query), reader)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Accept", "application/json")
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	if c.UserAgent != "" {
		req.Header.Set("User-Agent", c.UserAgent)
	}

	// Set Authorization header
	if !cfg.skipAuth {
		token, err := c.session.Token(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to read session token: %w", err)
		}
		if token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
	}

	// Overrides win over everything above
	for key, vals := range cfg.headers {
		req.Header.Del(key)
		for _, v := range vals {
			req.Header.Add(key, v)
		}
	}

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, &NetworkError{Err: err}
	}

	return readResult(resp)
}

// encodeBody returns the request body and the content type it implies. Raw
// readers carry no content type; the caller sets it via WithHeader.
func encodeBody(body any) (io.Reader, string, error) {
	switch b := body.(type) {
	case nil:
		return nil, "", nil
	case io.Reader:
		return b, "", nil
	case []byte:
		return bytes.NewReader(b), "", nil
	default:
		raw, err := json.Marshal(b)
		if err != nil {
			return nil, "", fmt.Errorf("failed to encode request body: %w", err)
		}
		return bytes.NewReader(raw), "application/json", nil
	}
}

// readResult reads the body once and turns it into a Result or APIError.
func readResult(resp *http.Response) (*Result, error) {
	defer resp.Body.Close()

	bodyBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	contentType := resp.Header.Get("Content-Type")

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, newAPIError(resp.StatusCode, contentType, bodyBytes)
	}

	res := &Result{
		StatusCode:  resp.StatusCode,
		ContentType: contentType,
	}
	if isJSONContentType(contentType) && len(bytes.TrimSpace(bodyBytes)) > 0 {
		res.JSON = json.RawMessage(bodyBytes)
	} else {
		res.Text = string(bodyBytes)
	}
	return res, nil
}

func isJSONContentType(contentType string) bool {
	return strings.Contains(strings.ToLower(contentType), "json")
}

// ============================================================================
// Typed helpers shared by the resource services
// ============================================================================

// getData GETs endpoint and decodes the envelope's data.
func getData[T any](ctx context.Context, c *Client, endpoint string, opts ...RequestOption) (T, *PageMeta, error) {
	res, err := c.Get(ctx, endpoint, opts...)
	if err != nil {
		var zero T
		return zero, nil, err
	}
	return decodeData[T](res)
}

// sendData issues a write request and decodes the envelope's data.
func sendData[T any](
	ctx context.Context,
	c *Client,
	method, endpoint string,
	body any,
	opts ...RequestOption,
) (T, error) {
	res, err := c.do(ctx, method, endpoint, body, opts)
	if err != nil {
		var zero T
		return zero, err
	}
	data, _, err := decodeData[T](res)
	return data, err
}

// sendNoContent issues a write request and discards the response body.
func sendNoContent(ctx context.Context, c *Client, method, endpoint string, body any) error {
	_, err := c.do(ctx, method, endpoint, body, nil)
	return err
}

func decodeData[T any](res *Result) (T, *PageMeta, error) {
	var env Envelope[T]
	if err := res.Decode(&env); err != nil {
		var zero T
		return zero, nil, err
	}
	return env.Data, env.Meta, nil
}

// listData GETs a paginated collection.
func listData[T any](ctx context.Context, c *Client, endpoint string, params ListParams) (*List[T], error) {
	items, meta, err := getData[[]T](ctx, c, endpoint, WithQuery(params.Values()))
	if err != nil {
		return nil, err
	}
	list := &List[T]{Items: items}
	if meta != nil {
		list.Meta = *meta
	} else {
		list.Meta = PageMeta{Page: 1, Limit: len(items), Total: len(items), TotalPages: 1}
	}
	return list, nil
}

// pathID escapes a single path segment.
func pathID(id string) string {
	return url.PathEscape(id)
}
