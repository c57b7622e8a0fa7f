package rackspace

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeRackspace struct {
	t *testing.T

	authCalls  atomic.Int32
	authStatus atomic.Int32

	mu      sync.Mutex
	deletes []deleteCall

	deleteStatus int
	failReason   string

	// authGate が設定されている場合、トークン発行はクローズされるまで応答しない
	authGate chan struct{}

	srv *httptest.Server
}

type deleteCall struct {
	path  string
	token string
	email string
}

func newFakeRackspace(t *testing.T) *fakeRackspace {
	f := &fakeRackspace{t: t, deleteStatus: http.StatusNoContent}
	f.authStatus.Store(http.StatusOK)
	f.srv = httptest.NewServer(http.HandlerFunc(f.handle))
	t.Cleanup(f.srv.Close)
	return f
}

func (f *fakeRackspace) handle(w http.ResponseWriter, r *http.Request) {
	switch {
	case r.Method == http.MethodPost && r.URL.Path == "/v2.0/tokens":
		f.authCalls.Add(1)
		if f.authGate != nil {
			<-f.authGate
		}
		var body struct {
			Auth struct {
				Credentials struct {
					Username string `json:"username"`
					APIKey   string `json:"apiKey"`
				} `json:"RAX-KSKEY:apiKeyCredentials"`
			} `json:"auth"`
		}
		assert.NoError(f.t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(f.t, "user", body.Auth.Credentials.Username)
		assert.Equal(f.t, "key", body.Auth.Credentials.APIKey)

		status := int(f.authStatus.Load())
		if status != http.StatusOK {
			w.WriteHeader(status)
			_, _ = w.Write([]byte(`{"unauthorized":{"code":401,"message":"Username or api key is invalid."}}`))
			return
		}
		_, _ = fmt.Fprintf(w, `{
  "access": {
    "token": {"id": "token-123"},
    "serviceCatalog": [
      {"type": "object-store", "endpoints": [{"region": "DFW", "publicURL": "%[1]s/store"}]},
      {"type": "rax:object-cdn", "endpoints": [
        {"region": "ORD", "publicURL": "%[1]s/ord"},
        {"region": "DFW", "publicURL": "%[1]s/v1/MossoCloudFS_abc"}
      ]}
    ]
  }
}`, f.srv.URL)
	case r.Method == http.MethodDelete:
		f.mu.Lock()
		f.deletes = append(f.deletes, deleteCall{
			path:  r.URL.Path,
			token: r.Header.Get("X-Auth-Token"),
			email: r.Header.Get("X-Purge-Email"),
		})
		f.mu.Unlock()
		if f.failReason != "" {
			w.Header().Set("X-Purge-Failed-Reason", f.failReason)
		}
		w.WriteHeader(f.deleteStatus)
		switch {
		case f.deleteStatus == http.StatusUnauthorized:
			_, _ = w.Write([]byte("token expired"))
		case f.deleteStatus >= 500:
			_, _ = w.Write([]byte("upstream unavailable"))
		}
	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}

func (f *fakeRackspace) client() *Client {
	c := NewClient("user", "key")
	c.IdentityURL = f.srv.URL + "/v2.0/tokens"
	return c
}

func TestClient_InvalidateSendsDelete(t *testing.T) {
	f := newFakeRackspace(t)
	c := f.client()

	err := c.Invalidate(context.Background(), "DFW", "site", "/test/index.html", "ops@example.com")

	require.NoError(t, err)
	require.Len(t, f.deletes, 1)
	assert.Equal(t, deleteCall{
		path:  "/v1/MossoCloudFS_abc/site/test/index.html",
		token: "token-123",
		email: "ops@example.com",
	}, f.deletes[0])
}

func TestClient_AuthenticatesOnce(t *testing.T) {
	f := newFakeRackspace(t)
	c := f.client()

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			assert.NoError(t, c.Invalidate(context.Background(), "DFW", "site", fmt.Sprintf("/%d.html", i), ""))
		}(i)
	}
	wg.Wait()

	assert.Equal(t, int32(1), f.authCalls.Load())
	assert.Len(t, f.deletes, 8)
	for _, d := range f.deletes {
		assert.Empty(t, d.email)
	}
}

func TestClient_FailedAuthIsRetried(t *testing.T) {
	f := newFakeRackspace(t)
	f.authStatus.Store(http.StatusUnauthorized)
	c := f.client()

	err := c.Invalidate(context.Background(), "DFW", "site", "/a.html", "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "401")
	assert.Empty(t, f.deletes)

	f.authStatus.Store(http.StatusOK)
	require.NoError(t, c.Invalidate(context.Background(), "DFW", "site", "/a.html", ""))

	assert.Equal(t, int32(2), f.authCalls.Load())
	assert.Len(t, f.deletes, 1)
}

func TestClient_EndpointNotFound(t *testing.T) {
	f := newFakeRackspace(t)
	c := f.client()

	err := c.Invalidate(context.Background(), "SYD", "site", "/a.html", "")

	require.ErrorIs(t, err, ErrEndpointNotFound)
	assert.Empty(t, f.deletes)
}

func TestClient_EndpointLookup(t *testing.T) {
	f := newFakeRackspace(t)
	c := f.client()

	endpoint, err := c.Endpoint(context.Background(), ServiceTypeCDN, "ORD")
	require.NoError(t, err)
	assert.Equal(t, f.srv.URL+"/ord", endpoint)

	endpoint, err = c.Endpoint(context.Background(), "object-store", "DFW")
	require.NoError(t, err)
	assert.Equal(t, f.srv.URL+"/store", endpoint)

	c.Reauthenticate()
	_, err = c.Endpoint(context.Background(), ServiceTypeCDN, "DFW")
	require.NoError(t, err)
	assert.Equal(t, int32(2), f.authCalls.Load())
}

func TestClient_StatusMapping(t *testing.T) {
	testCases := []struct {
		name    string
		status  int
		reason  string
		wantErr string
	}{
		{name: "no content", status: http.StatusNoContent},
		{name: "bad request with reason", status: http.StatusBadRequest, reason: "Daily limit exceeded", wantErr: "400, Daily limit exceeded"},
		{name: "bad request", status: http.StatusBadRequest, wantErr: "400, エラーが発生しました"},
		{name: "forbidden", status: http.StatusForbidden, wantErr: "403"},
		{name: "not found", status: http.StatusNotFound, wantErr: "404"},
		{name: "server error", status: http.StatusServiceUnavailable, wantErr: "503, エラーが発生しました。 upstream unavailable"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			f := newFakeRackspace(t)
			f.deleteStatus = tc.status
			f.failReason = tc.reason

			err := f.client().Invalidate(context.Background(), "DFW", "site", "/a.html", "")

			if tc.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tc.wantErr)
		})
	}
}

func TestClient_UnauthorizedKeepsSession(t *testing.T) {
	f := newFakeRackspace(t)
	f.deleteStatus = http.StatusUnauthorized
	c := f.client()

	for _, file := range []string{"/a.html", "/b.html", "/c.html"} {
		err := c.Invalidate(context.Background(), "DFW", "site", file, "")
		require.Error(t, err)
		assert.Equal(t, "401, エラーが発生しました。 token expired", err.Error())
	}

	assert.Equal(t, int32(1), f.authCalls.Load())
	assert.Len(t, f.deletes, 3)
}

func TestClient_CancelledCallerDoesNotFailSharedAuth(t *testing.T) {
	f := newFakeRackspace(t)
	f.authGate = make(chan struct{})
	c := f.client()

	cancelled, cancel := context.WithCancel(context.Background())
	firstErr := make(chan error, 1)
	go func() {
		firstErr <- c.Invalidate(cancelled, "DFW", "site", "/a.html", "")
	}()
	require.Eventually(t, func() bool { return f.authCalls.Load() == 1 }, 2*time.Second, 5*time.Millisecond)

	secondErr := make(chan error, 1)
	go func() {
		secondErr <- c.Invalidate(context.Background(), "DFW", "site", "/b.html", "")
	}()

	cancel()
	assert.ErrorIs(t, <-firstErr, context.Canceled)

	close(f.authGate)
	require.NoError(t, <-secondErr)
	assert.Equal(t, int32(1), f.authCalls.Load())
	require.Len(t, f.deletes, 1)
	assert.Equal(t, "/v1/MossoCloudFS_abc/site/b.html", f.deletes[0].path)
}
