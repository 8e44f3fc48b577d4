package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/maksimkurb/ztproxy/src/internal/config"
	"github.com/maksimkurb/ztproxy/src/internal/controller"
	"github.com/maksimkurb/ztproxy/src/internal/domain"
	zterrors "github.com/maksimkurb/ztproxy/src/internal/errors"
	"github.com/maksimkurb/ztproxy/src/internal/mocks"
	"github.com/maksimkurb/ztproxy/src/internal/network"
)

const testNetworkID = mocks.DefaultNetworkID

const uncarriedGatewayBody = `{
	"name": "lab",
	"routes": [
		{"target": "10.0.0.0/24", "via": null},
		{"target": "192.168.5.0/24", "via": "172.16.0.1"}
	],
	"ipAssignmentPools": [{"ipRangeStart": "10.0.0.10", "ipRangeEnd": "10.0.0.100"}]
}`

func newTestRouter(client *mocks.MockControllerClient, opts RouterOptions) http.Handler {
	deps := domain.NewTestDependencies(client, &mocks.MockHostRouteLister{})
	return NewRouter(deps, opts)
}

func doRequest(h http.Handler, method, path, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func decodeData(t *testing.T, rec *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	var envelope struct {
		Data json.RawMessage `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope))
	require.NoError(t, json.Unmarshal(envelope.Data, v))
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) APIError {
	t.Helper()
	var resp ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	return resp.Error
}

func TestHealth(t *testing.T) {
	client := mocks.NewMockControllerClient()
	router := newTestRouter(client, RouterOptions{Version: VersionInfo{Version: "1.2.3"}})

	rec := doRequest(router, http.MethodGet, "/health", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var resp HealthCheckResponse
	decodeData(t, rec, &resp)
	assert.True(t, resp.Healthy)
	assert.Equal(t, "1.2.3", resp.Version.Version)
	assert.True(t, resp.Checks["controller"].Passed)
	assert.Contains(t, resp.Checks["controller"].Message, mocks.DefaultNodeAddress)
	assert.NotContains(t, resp.Checks, "config")
}

func TestHealth_ControllerDown(t *testing.T) {
	client := &mocks.MockControllerClient{
		StatusFunc: func(ctx context.Context) (*controller.NodeStatus, error) {
			return nil, zterrors.NewTransportError("GET /status failed", errors.New("connection refused"))
		},
	}
	router := newTestRouter(client, RouterOptions{})

	rec := doRequest(router, http.MethodGet, "/health", "")
	require.Equal(t, http.StatusServiceUnavailable, rec.Code)

	var resp HealthCheckResponse
	decodeData(t, rec, &resp)
	assert.False(t, resp.Healthy)
	assert.False(t, resp.Checks["controller"].Passed)
	assert.Contains(t, resp.Checks["controller"].Message, "connection refused")
}

func TestHealth_ConfigChanged(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ztproxy.toml")
	require.NoError(t, os.WriteFile(path, []byte("[controller]\nurl = \"http://127.0.0.1:9993\"\n"), 0600))

	hasher := config.NewConfigHasher(path)
	hash, err := hasher.UpdateCurrentConfigHash()
	require.NoError(t, err)
	hasher.SetActiveConfigHash(hash)

	router := newTestRouter(mocks.NewMockControllerClient(), RouterOptions{ConfigHasher: hasher})

	var resp HealthCheckResponse
	rec := doRequest(router, http.MethodGet, "/health", "")
	decodeData(t, rec, &resp)
	assert.False(t, resp.ConfigChanged)
	assert.Equal(t, hash, resp.ConfigHash)

	require.NoError(t, os.WriteFile(path, []byte("[controller]\nurl = \"http://10.0.0.1:9993\"\n"), 0600))
	_, err = hasher.UpdateCurrentConfigHash()
	require.NoError(t, err)

	rec = doRequest(router, http.MethodGet, "/health", "")
	decodeData(t, rec, &resp)
	assert.True(t, resp.ConfigChanged)
	assert.True(t, resp.Checks["config"].Passed)
}

func TestValidate(t *testing.T) {
	client := mocks.NewMockControllerClient()
	router := newTestRouter(client, RouterOptions{})

	t.Run("defaults are valid", func(t *testing.T) {
		rec := doRequest(router, http.MethodPost, "/api/v1/validate", `{"name": "lab"}`)
		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

		var resp ValidateResponse
		decodeData(t, rec, &resp)
		assert.True(t, resp.Valid)
		require.NotNil(t, resp.Network.Name)
		assert.Equal(t, "lab", *resp.Network.Name)
		assert.Equal(t, network.DefaultLinkLocalPrefix, resp.Network.Routes[0].Target)
	})

	t.Run("uncarried gateway", func(t *testing.T) {
		rec := doRequest(router, http.MethodPost, "/api/v1/validate", uncarriedGatewayBody)
		require.Equal(t, http.StatusUnprocessableEntity, rec.Code)

		apiErr := decodeError(t, rec)
		assert.Equal(t, ErrCodeValidationFailed, apiErr.Code)
		assert.Equal(t, "no carrying network for gateway 172.16.0.1", apiErr.Details["routes.1.via"])
		assert.Equal(t, string(zterrors.ErrCodeValidation), apiErr.Details["kind"])
	})

	t.Run("malformed JSON", func(t *testing.T) {
		rec := doRequest(router, http.MethodPost, "/api/v1/validate", `{"routes": [`)
		require.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, ErrCodeInvalidRequest, decodeError(t, rec).Code)
	})

	t.Run("wrong content type", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/api/v1/validate", strings.NewReader("name=lab"))
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	assert.Equal(t, 0, client.CreateCalls)
}

func TestNetworks_List(t *testing.T) {
	client := &mocks.MockControllerClient{
		ListNetworksFunc: func(ctx context.Context) ([]string, error) {
			return nil, nil
		},
	}
	router := newTestRouter(client, RouterOptions{})

	rec := doRequest(router, http.MethodGet, "/api/v1/networks", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"data": {"networks": []}}`, rec.Body.String())
}

func TestNetworks_Create(t *testing.T) {
	client := mocks.NewMockControllerClient()
	router := newTestRouter(client, RouterOptions{})

	rec := doRequest(router, http.MethodPost, "/api/v1/networks", `{"name": "lab", "private": false}`)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var resp NetworkResponse
	decodeData(t, rec, &resp)
	assert.Equal(t, testNetworkID, resp.Network.NetworkID())
	assert.False(t, resp.Network.Private)

	require.Equal(t, 1, client.CreateCalls)
	assert.Equal(t, network.DefaultRules(), client.LastCreated.Rules)
}

func TestNetworks_CreateInvalid(t *testing.T) {
	client := mocks.NewMockControllerClient()
	router := newTestRouter(client, RouterOptions{})

	rec := doRequest(router, http.MethodPost, "/api/v1/networks", uncarriedGatewayBody)
	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Contains(t, decodeError(t, rec).Details, "routes.1.via")
}

func TestNetworks_ControllerFailure(t *testing.T) {
	client := &mocks.MockControllerClient{
		CreateFunc: func(ctx context.Context, n *network.Network) (*network.Network, error) {
			return nil, zterrors.NewTransportError("POST /controller/network failed", errors.New("connection refused"))
		},
	}
	router := newTestRouter(client, RouterOptions{})

	rec := doRequest(router, http.MethodPost, "/api/v1/networks", `{}`)
	require.Equal(t, http.StatusBadGateway, rec.Code)

	apiErr := decodeError(t, rec)
	assert.Equal(t, ErrCodeControllerError, apiErr.Code)
	assert.Equal(t, string(zterrors.ErrCodeTransport), apiErr.Details["kind"])
}

func TestNetworks_Get(t *testing.T) {
	client := mocks.NewMockControllerClient()
	router := newTestRouter(client, RouterOptions{})

	rec := doRequest(router, http.MethodGet, "/api/v1/networks/"+testNetworkID, "")
	require.Equal(t, http.StatusOK, rec.Code)

	var resp NetworkResponse
	decodeData(t, rec, &resp)
	assert.Equal(t, testNetworkID, resp.Network.NetworkID())
}

func TestNetworks_GetNotFound(t *testing.T) {
	client := &mocks.MockControllerClient{
		FetchFunc: func(ctx context.Context, nwid string) (*network.Network, error) {
			return nil, zterrors.NewTransportError("GET failed", &controller.StatusError{StatusCode: http.StatusNotFound})
		},
	}
	router := newTestRouter(client, RouterOptions{})

	rec := doRequest(router, http.MethodGet, "/api/v1/networks/"+testNetworkID, "")
	require.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, ErrCodeNotFound, decodeError(t, rec).Code)
}

func TestNetworks_InvalidID(t *testing.T) {
	router := newTestRouter(mocks.NewMockControllerClient(), RouterOptions{})

	for _, method := range []string{http.MethodGet, http.MethodDelete} {
		rec := doRequest(router, method, "/api/v1/networks/not-an-id", "")
		assert.Equal(t, http.StatusBadRequest, rec.Code, method)
	}
}

func TestNetworks_Update(t *testing.T) {
	client := mocks.NewMockControllerClient()
	router := newTestRouter(client, RouterOptions{})

	rec := doRequest(router, http.MethodPut, "/api/v1/networks/"+testNetworkID, `{"name": "renamed"}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	require.Equal(t, 1, client.UpdateCalls)
	assert.Equal(t, testNetworkID, client.LastUpdated.NetworkID())
	assert.Equal(t, "renamed", *client.LastUpdated.Name)
}

func TestNetworks_UpdateIDMismatch(t *testing.T) {
	client := mocks.NewMockControllerClient()
	router := newTestRouter(client, RouterOptions{})

	rec := doRequest(router, http.MethodPut, "/api/v1/networks/"+testNetworkID, `{"id": "8056c2e21c000002"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, 0, client.UpdateCalls)
}

func TestNetworks_Delete(t *testing.T) {
	client := mocks.NewMockControllerClient()
	router := newTestRouter(client, RouterOptions{})

	rec := doRequest(router, http.MethodDelete, "/api/v1/networks/"+testNetworkID, "")
	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, 1, client.DeleteCalls)
}

func TestMembers(t *testing.T) {
	client := &mocks.MockControllerClient{
		ListMembersFunc: func(ctx context.Context, nwid string) (map[string]uint64, error) {
			return map[string]uint64{"a1b2c3d4e5": 3}, nil
		},
	}
	router := newTestRouter(client, RouterOptions{})

	rec := doRequest(router, http.MethodGet, "/api/v1/networks/"+testNetworkID+"/members", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"data": {"members": {"a1b2c3d4e5": 3}}}`, rec.Body.String())

	rec = doRequest(router, http.MethodPut, "/api/v1/networks/"+testNetworkID+"/members/a1b2c3d4e5", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var resp MemberResponse
	decodeData(t, rec, &resp)
	assert.True(t, resp.Member.Authorized)
	assert.Equal(t, 1, client.AuthorizeCalls)

	rec = doRequest(router, http.MethodDelete, "/api/v1/networks/"+testNetworkID+"/members/a1b2c3d4e5", "")
	require.Equal(t, http.StatusOK, rec.Code)
	decodeData(t, rec, &resp)
	assert.False(t, resp.Member.Authorized)

	rec = doRequest(router, http.MethodPut, "/api/v1/networks/"+testNetworkID+"/members/xyz", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, 1, client.AuthorizeCalls)
}

func TestUnknownEndpoint(t *testing.T) {
	router := newTestRouter(mocks.NewMockControllerClient(), RouterOptions{})

	rec := doRequest(router, http.MethodGet, "/api/v1/nope", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, ErrCodeNotFound, decodeError(t, rec).Code)
}
