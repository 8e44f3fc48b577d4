package controller

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	zterrors "github.com/maksimkurb/ztproxy/src/internal/errors"
	"github.com/maksimkurb/ztproxy/src/internal/log"
	"github.com/maksimkurb/ztproxy/src/internal/network"
	"github.com/maksimkurb/ztproxy/src/internal/utils"
)

const (
	defaultTimeout       = 10 * time.Second
	defaultRetryAttempts = 3
	defaultRetryDelay    = time.Second

	// Longest response body excerpt quoted in errors
	maxErrorBody = 256
)

// HTTPClient interface for dependency injection in tests
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// Options configures a Client. Zero values select the defaults.
type Options struct {
	BaseURL       string
	AuthToken     string
	Timeout       time.Duration
	RetryAttempts int
	RetryDelay    time.Duration
}

func (o Options) withDefaults() Options {
	if o.BaseURL == "" {
		o.BaseURL = DefaultBaseURL
	}
	o.BaseURL = strings.TrimRight(o.BaseURL, "/")
	if o.Timeout <= 0 {
		o.Timeout = defaultTimeout
	}
	if o.RetryAttempts <= 0 {
		o.RetryAttempts = defaultRetryAttempts
	}
	if o.RetryDelay <= 0 {
		o.RetryDelay = defaultRetryDelay
	}
	return o
}

// Client is the client for the controller management API.
//
// Read requests are retried, mutating requests are sent once. Every
// failure is returned as a TRANSPORT_ERROR coded error. All methods are
// safe for concurrent use.
type Client struct {
	httpClient HTTPClient
	opts       Options
	cache      *Cache
}

// NewClient creates a new controller API client.
//
// If httpClient is nil, a default HTTP client will be used.
func NewClient(opts Options, httpClient HTTPClient) *Client {
	opts = opts.withDefaults()
	if httpClient == nil {
		httpClient = &http.Client{}
	}

	return &Client{
		httpClient: httpClient,
		opts:       opts,
		cache:      NewCache(),
	}
}

// BaseURL returns the controller base URL.
func (c *Client) BaseURL() string {
	return c.opts.BaseURL
}

// StatusError is the cause of a transport error for a non-2xx response.
type StatusError struct {
	Method     string
	URL        string
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("%s %s: unexpected status %d", e.Method, e.URL, e.StatusCode)
	}
	return fmt.Sprintf("%s %s: unexpected status %d: %s", e.Method, e.URL, e.StatusCode, e.Body)
}

// IsNotFound reports whether err is a controller 404.
func IsNotFound(err error) bool {
	var statusErr *StatusError
	return errors.As(err, &statusErr) && statusErr.StatusCode == http.StatusNotFound
}

// do performs one request. in is encoded as the JSON body when non-nil, the
// response is decoded into out when out is non-nil.
func (c *Client) do(ctx context.Context, method, path string, in, out interface{}) error {
	url := c.opts.BaseURL + path

	var body io.Reader
	if in != nil {
		payload, err := json.Marshal(in)
		if err != nil {
			return zterrors.NewTransportError("failed to encode request", err)
		}
		body = bytes.NewReader(payload)
	}

	ctx, cancel := context.WithTimeout(ctx, c.opts.Timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, method, url, body)
	if err != nil {
		return zterrors.NewTransportError("failed to build request", err)
	}
	req.Header.Set(AuthHeader, c.opts.AuthToken)
	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	log.Debugf("Controller request: %s %s", method, url)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return zterrors.NewTransportError(fmt.Sprintf("failed to reach controller at %s", c.opts.BaseURL), err)
	}
	defer utils.CloseOrWarn(resp.Body)

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return zterrors.NewTransportError("failed to read response body", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		excerpt := strings.TrimSpace(string(respBody))
		if len(excerpt) > maxErrorBody {
			excerpt = excerpt[:maxErrorBody] + "..."
		}
		return zterrors.NewTransportError("controller request failed", &StatusError{
			Method:     method,
			URL:        url,
			StatusCode: resp.StatusCode,
			Body:       excerpt,
		})
	}

	if out == nil {
		return nil
	}
	if err := json.Unmarshal(respBody, out); err != nil {
		return zterrors.NewTransportError(fmt.Sprintf("failed to decode response of %s %s", method, url), err)
	}
	return nil
}

// retryable reports whether another attempt may succeed. Client errors
// (4xx) and decoding errors are final.
func retryable(err error) bool {
	var statusErr *StatusError
	if errors.As(err, &statusErr) {
		return statusErr.StatusCode >= 500
	}
	var syntaxErr *json.SyntaxError
	var typeErr *json.UnmarshalTypeError
	return !errors.As(err, &syntaxErr) && !errors.As(err, &typeErr)
}

// fetchWithRetry GETs path and decodes it into T, retrying up to the
// configured number of attempts.
func fetchWithRetry[T any](ctx context.Context, c *Client, path string) (T, error) {
	var result T
	var lastErr error

	for attempt := 1; attempt <= c.opts.RetryAttempts; attempt++ {
		lastErr = c.do(ctx, http.MethodGet, path, nil, &result)
		if lastErr == nil {
			return result, nil
		}
		if !retryable(lastErr) || attempt == c.opts.RetryAttempts {
			break
		}

		log.Warnf("Failed to make controller call %s (%v), retrying in %s...", path, lastErr, c.opts.RetryDelay)
		select {
		case <-ctx.Done():
			return result, zterrors.NewTransportError("controller call cancelled", ctx.Err())
		case <-time.After(c.opts.RetryDelay):
		}
	}

	return result, lastErr
}

// Status retrieves the controller node status.
//
// The status is cached after the first successful retrieval; the node
// address is needed for every network creation.
func (c *Client) Status(ctx context.Context) (*NodeStatus, error) {
	if status, found := c.cache.GetStatus(); found {
		return status, nil
	}

	status, err := fetchWithRetry[NodeStatus](ctx, c, endpointStatus)
	if err != nil {
		return nil, err
	}
	if status.Address == "" {
		return nil, zterrors.NewTransportError("controller status has no node address", nil)
	}

	log.Debugf("Controller node address: %s", status.Address)
	c.cache.SetStatus(&status)
	return &status, nil
}

// ListNetworks returns the ids of all networks hosted by the controller.
func (c *Client) ListNetworks(ctx context.Context) ([]string, error) {
	ids, err := fetchWithRetry[[]string](ctx, c, endpointNetworks)
	if err != nil {
		return nil, err
	}
	if ids == nil {
		ids = []string{}
	}
	return ids, nil
}

// Create submits a new network. The controller assigns the id; the created
// network as stored by the controller is returned.
func (c *Client) Create(ctx context.Context, n *network.Network) (*network.Network, error) {
	if err := n.Validate(); err != nil {
		return nil, err
	}

	status, err := c.Status(ctx)
	if err != nil {
		return nil, err
	}

	payload := n.Clone()
	payload.ID = nil
	payload.NWID = nil

	var created network.Network
	path := endpoint(endpointCreate, map[string]string{"node": status.Address})
	if err := c.do(ctx, http.MethodPost, path, payload, &created); err != nil {
		return nil, err
	}

	log.Infof("Created network %s", created.NetworkID())
	return &created, nil
}

// Fetch retrieves the network with the given id.
func (c *Client) Fetch(ctx context.Context, nwid string) (*network.Network, error) {
	if err := checkNetworkID(nwid); err != nil {
		return nil, err
	}

	n, err := fetchWithRetry[network.Network](ctx, c, endpoint(endpointNetwork, map[string]string{"nwid": nwid}))
	if err != nil {
		return nil, err
	}
	return &n, nil
}

// Update replaces the configuration of an existing network. n must carry the
// network id.
func (c *Client) Update(ctx context.Context, n *network.Network) (*network.Network, error) {
	nwid := n.NetworkID()
	if err := checkNetworkID(nwid); err != nil {
		return nil, err
	}
	if err := n.Validate(); err != nil {
		return nil, err
	}

	var updated network.Network
	if err := c.do(ctx, http.MethodPost, endpoint(endpointNetwork, map[string]string{"nwid": nwid}), n, &updated); err != nil {
		return nil, err
	}

	log.Infof("Updated network %s", nwid)
	return &updated, nil
}

// Delete removes a network from the controller.
func (c *Client) Delete(ctx context.Context, nwid string) error {
	if err := checkNetworkID(nwid); err != nil {
		return err
	}

	if err := c.do(ctx, http.MethodDelete, endpoint(endpointNetwork, map[string]string{"nwid": nwid}), nil, nil); err != nil {
		return err
	}

	log.Infof("Deleted network %s", nwid)
	return nil
}

// ListMembers returns the members of a network mapped to their revision.
func (c *Client) ListMembers(ctx context.Context, nwid string) (map[string]uint64, error) {
	if err := checkNetworkID(nwid); err != nil {
		return nil, err
	}

	members, err := fetchWithRetry[map[string]uint64](ctx, c, endpoint(endpointMembers, map[string]string{"nwid": nwid}))
	if err != nil {
		return nil, err
	}
	if members == nil {
		members = map[string]uint64{}
	}
	return members, nil
}

// GetMember retrieves one member of a network.
func (c *Client) GetMember(ctx context.Context, nwid, memberID string) (*Member, error) {
	path, err := memberPath(nwid, memberID)
	if err != nil {
		return nil, err
	}

	m, err := fetchWithRetry[Member](ctx, c, path)
	if err != nil {
		return nil, err
	}
	return &m, nil
}

// Authorize allows a member onto a private network.
func (c *Client) Authorize(ctx context.Context, nwid, memberID string) (*Member, error) {
	return c.setAuthorized(ctx, nwid, memberID, true)
}

// Deauthorize revokes a member's access to a private network.
func (c *Client) Deauthorize(ctx context.Context, nwid, memberID string) (*Member, error) {
	return c.setAuthorized(ctx, nwid, memberID, false)
}

func (c *Client) setAuthorized(ctx context.Context, nwid, memberID string, authorized bool) (*Member, error) {
	path, err := memberPath(nwid, memberID)
	if err != nil {
		return nil, err
	}

	var m Member
	if err := c.do(ctx, http.MethodPost, path, memberUpdate{Authorized: authorized}, &m); err != nil {
		return nil, err
	}

	log.Infof("Member %s of network %s: authorized=%v", memberID, nwid, authorized)
	return &m, nil
}

// ClearCache clears all cached data.
func (c *Client) ClearCache() {
	c.cache.Clear()
}

func checkNetworkID(nwid string) error {
	if !network.IsNetworkID(nwid) {
		return zterrors.NewValidationError(fmt.Sprintf("invalid network id %q (expected 16 hex characters)", nwid), nil)
	}
	return nil
}

func memberPath(nwid, memberID string) (string, error) {
	if err := checkNetworkID(nwid); err != nil {
		return "", err
	}
	if !IsMemberID(memberID) {
		return "", zterrors.NewValidationError(fmt.Sprintf("invalid member id %q (expected 10 hex characters)", memberID), nil)
	}
	return endpoint(endpointMember, map[string]string{"nwid": nwid, "member": memberID}), nil
}
