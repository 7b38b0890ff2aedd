package portal

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"ljb001/orderboard/config"
	"ljb001/orderboard/services/cache"

	"github.com/stretchr/testify/assert"
)

func testConfig(baseURL string) *config.Config {
	return &config.Config{
		PortalBaseURL:  baseURL,
		PortalCode:     "372118",
		PortalUserName: "tester",
		PortalPassword: "secret",
		CutoffTime:     "19:00:00",
		DetailCacheTTL: 300 * time.Second,
	}
}

func newTestClient(baseURL string) *Client {
	return NewClient(testConfig(baseURL), cache.NewMemoryService(0), cache.NewMemoryService(0))
}

func TestLoginSuccess(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/admin/account/check", r.URL.Path)

		assert.NoError(t, r.ParseForm())
		assert.Equal(t, "372118", r.PostFormValue("code"))
		assert.Equal(t, "tester", r.PostFormValue("userName"))
		assert.Equal(t, "secret", r.PostFormValue("password"))

		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	client := newTestClient(server.URL)
	ok, err := client.Login(context.Background())
	assert.NoError(t, err)
	assert.True(t, ok)
}

func TestLoginFollowsRedirect(t *testing.T) {
	redirectFetched := false

	mux := http.NewServeMux()
	mux.HandleFunc("/admin/account/check", func(w http.ResponseWriter, r *http.Request) {
		http.SetCookie(w, &http.Cookie{Name: "JSESSIONID", Value: "abc123", Path: "/"})
		w.Header().Set("Location", "/admin/index")
		w.WriteHeader(http.StatusFound)
	})
	mux.HandleFunc("/admin/index", func(w http.ResponseWriter, r *http.Request) {
		redirectFetched = true
		// The session cookie must ride along on the redirect target
		cookie, err := r.Cookie("JSESSIONID")
		if assert.NoError(t, err) {
			assert.Equal(t, "abc123", cookie.Value)
		}
		w.WriteHeader(http.StatusOK)
	})

	server := httptest.NewServer(mux)
	defer server.Close()

	client := newTestClient(server.URL)
	ok, err := client.Login(context.Background())
	assert.NoError(t, err)
	assert.True(t, ok)
	assert.True(t, redirectFetched)
}

func TestLoginRejected(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	client := newTestClient(server.URL)
	ok, err := client.Login(context.Background())
	assert.NoError(t, err)
	assert.False(t, ok)
}

func TestLoginNetworkError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close()

	client := newTestClient(server.URL)
	ok, err := client.Login(context.Background())
	assert.Error(t, err)
	assert.False(t, ok)
}

func TestRequestsCarryUserAgent(t *testing.T) {
	var seenAgent string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seenAgent = r.Header.Get("User-Agent")
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	client := newTestClient(server.URL)
	_, err := client.Login(context.Background())
	assert.NoError(t, err)
	assert.Contains(t, seenAgent, "Mozilla/5.0")
}
