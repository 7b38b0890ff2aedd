package portal

import (
	"context"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"strings"
	"time"

	"ljb001/orderboard/config"
	"ljb001/orderboard/helpers"
	"ljb001/orderboard/logger"
	apperrors "ljb001/orderboard/pkg/errors"
	"ljb001/orderboard/services/cache"

	"math/rand"
)

const (
	loginPath      = "/admin/account/check"
	listPath       = "/admin/supplier/order/list/ajaxData"
	detailPath     = "/admin/supplier/order/detail/"
	detailListPath = "/admin/supplier/order/detaillist/ajaxData"
)

// Client owns one authenticated session against the order portal.
// Login must complete before the session is shared with concurrent detail
// fetches; afterwards the cookie jar is only read.
type Client struct {
	baseURL    string
	code       string
	userName   string
	password   string
	cutoffTime string

	detailCache    cache.CacheService
	itemsCache     cache.CacheService
	detailCacheTTL time.Duration

	httpClient       *http.Client
	noRedirectClient *http.Client

	log *logger.Logger
}

// NewClient creates a portal client with a fresh cookie jar.
// detailCache memoizes parsed order details for the configured TTL;
// itemsCache memoizes raw line-item lists for the process lifetime.
func NewClient(cfg *config.Config, detailCache, itemsCache cache.CacheService) *Client {
	jar, _ := cookiejar.New(nil)

	return &Client{
		baseURL:        strings.TrimRight(cfg.PortalBaseURL, "/"),
		code:           cfg.PortalCode,
		userName:       cfg.PortalUserName,
		password:       cfg.PortalPassword,
		cutoffTime:     cfg.CutoffTime,
		detailCache:    detailCache,
		itemsCache:     itemsCache,
		detailCacheTTL: cfg.DetailCacheTTL,
		httpClient:     &http.Client{Jar: jar},
		noRedirectClient: &http.Client{
			Jar: jar,
			CheckRedirect: func(req *http.Request, via []*http.Request) error {
				return http.ErrUseLastResponse
			},
		},
		log: logger.ForPortal(),
	}
}

// Login submits the stored credentials without following redirects.
// The portal signals a successful login either with a plain 200 or with a
// redirect; in the redirect case the Location target is fetched manually to
// complete session establishment. Any other status means rejected credentials.
func (c *Client) Login(ctx context.Context) (bool, error) {
	form := url.Values{
		"code":     {c.code},
		"userName": {c.userName},
		"password": {c.password},
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+loginPath, strings.NewReader(form.Encode()))
	if err != nil {
		return false, apperrors.NewNetwork("login", "failed to create request", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("User-Agent", helpers.UserAgent)

	resp, err := c.noRedirectClient.Do(req)
	if err != nil {
		return false, apperrors.NewNetwork("login", "login request failed", err)
	}
	defer resp.Body.Close()
	io.Copy(io.Discard, resp.Body)

	switch resp.StatusCode {
	case http.StatusOK:
		return true, nil
	case http.StatusMovedPermanently, http.StatusFound:
		c.followLoginRedirect(ctx, resp.Header.Get("Location"))
		return true, nil
	default:
		c.log.Warn().Int("status", resp.StatusCode).Msg("登录被拒绝")
		return false, nil
	}
}

// followLoginRedirect completes the session by fetching the redirect target.
// Failures here are logged only; the session cookie was already issued by
// the login response.
func (c *Client) followLoginRedirect(ctx context.Context, location string) {
	if location == "" {
		return
	}
	fullURL := location
	if strings.HasPrefix(location, "/") {
		fullURL = c.baseURL + location
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fullURL, nil)
	if err != nil {
		c.log.Warn().Err(err).Str("location", location).Msg("登录跳转请求生成失败")
		return
	}
	req.Header.Set("User-Agent", helpers.UserAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.log.Warn().Err(err).Str("location", location).Msg("登录跳转失败")
		return
	}
	defer resp.Body.Close()
	io.Copy(io.Discard, resp.Body)
}

// postForm sends a form POST to the portal with the given query parameters
func (c *Client) postForm(ctx context.Context, path string, query url.Values, form url.Values) (*http.Response, error) {
	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, u, strings.NewReader(form.Encode()))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("User-Agent", helpers.UserAgent)

	return c.httpClient.Do(req)
}

// get sends a GET request to the portal
func (c *Client) get(ctx context.Context, path string, query url.Values) (*http.Response, error) {
	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", helpers.UserAgent)

	return c.httpClient.Do(req)
}

// cacheBuster mimics the portal web page's t=<random float> query parameter
func cacheBuster() string {
	return formatFloat(rand.Float64())
}
