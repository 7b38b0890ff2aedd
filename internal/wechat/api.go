package wechat

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"
)

const defaultAPIBaseURL = "https://api.weixin.qq.com"

// APIClient talks to the WeChat official-account platform API
// (access tokens and custom menu management)
type APIClient struct {
	appID      string
	secret     string
	baseURL    string
	httpClient *http.Client
}

// NewAPIClient creates a platform API client
func NewAPIClient(appID, secret string) *APIClient {
	return &APIClient{
		appID:      appID,
		secret:     secret,
		baseURL:    defaultAPIBaseURL,
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}
}

// AccessToken fetches a fresh access token for the configured account
func (c *APIClient) AccessToken(ctx context.Context) (string, error) {
	query := url.Values{
		"grant_type": {"client_credential"},
		"appid":      {c.appID},
		"secret":     {c.secret},
	}

	body, err := c.getJSON(ctx, "/cgi-bin/token?"+query.Encode())
	if err != nil {
		return "", err
	}

	var token struct {
		AccessToken string `json:"access_token"`
		ErrCode     int    `json:"errcode"`
		ErrMsg      string `json:"errmsg"`
	}
	if err := json.Unmarshal(body, &token); err != nil {
		return "", fmt.Errorf("invalid access token response: %w", err)
	}
	if token.AccessToken == "" {
		return "", fmt.Errorf("access token request rejected: %d %s", token.ErrCode, token.ErrMsg)
	}
	return token.AccessToken, nil
}

// CreateMenu installs the custom menu: a single view button opening the
// order dashboard
func (c *APIClient) CreateMenu(ctx context.Context, menuURL string) error {
	accessToken, err := c.AccessToken(ctx)
	if err != nil {
		return err
	}

	menu := map[string]interface{}{
		"button": []map[string]interface{}{
			{
				"type": "view",
				"name": "菜单查询",
				"url":  menuURL,
			},
		},
	}
	payload, err := json.Marshal(menu)
	if err != nil {
		return err
	}

	endpoint := c.baseURL + "/cgi-bin/menu/create?access_token=" + url.QueryEscape(accessToken)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(payload))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json; charset=utf-8")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}

	var result struct {
		ErrCode int    `json:"errcode"`
		ErrMsg  string `json:"errmsg"`
	}
	if err := json.Unmarshal(body, &result); err != nil {
		return fmt.Errorf("invalid menu create response: %w", err)
	}
	if result.ErrCode != 0 {
		return fmt.Errorf("menu create rejected: %d %s", result.ErrCode, result.ErrMsg)
	}
	return nil
}

// Menu returns the currently installed custom menu as raw JSON
func (c *APIClient) Menu(ctx context.Context) ([]byte, error) {
	accessToken, err := c.AccessToken(ctx)
	if err != nil {
		return nil, err
	}
	return c.getJSON(ctx, "/cgi-bin/menu/get?access_token="+url.QueryEscape(accessToken))
}

func (c *APIClient) getJSON(ctx context.Context, pathAndQuery string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+pathAndQuery, nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	return io.ReadAll(resp.Body)
}
