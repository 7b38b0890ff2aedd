package portal

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func listingServer(t *testing.T, rows string) *httptest.Server {
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/admin/supplier/order/list/ajaxData", r.URL.Path)
		assert.Equal(t, " ", r.URL.Query().Get("refStatus1"))
		assert.Equal(t, " ", r.URL.Query().Get("status"))
		assert.NotEmpty(t, r.URL.Query().Get("t"))

		assert.NoError(t, r.ParseForm())
		assert.Equal(t, "99", r.PostFormValue("rows"))
		assert.Equal(t, "1", r.PostFormValue("page"))
		assert.Equal(t, "asc", r.PostFormValue("sord"))
		assert.Equal(t, "no,description", r.PostFormValue("searchFields"))

		// The filter is a JSON array of JSON-encoded condition strings
		var conditions []string
		assert.NoError(t, json.Unmarshal([]byte(r.PostFormValue("filter")), &conditions))
		assert.Len(t, conditions, 1)

		var condition map[string]string
		assert.NoError(t, json.Unmarshal([]byte(conditions[0]), &condition))
		assert.Equal(t, "setDate", condition["key"])
		assert.Equal(t, "range", condition["type"])
		assert.Equal(t, "2025-03-01", condition["data1"])
		assert.Equal(t, "2025-03-01", condition["data2"])

		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		fmt.Fprintf(w, `{"rows": %s}`, rows)
	}))
}

func TestFetchOrdersCutoffFilter(t *testing.T) {
	server := listingServer(t, `[
		{"id": "1", "createDate": "2025-03-01 18:59:59", "setDate": "2025-03-01 00:00:00"},
		{"id": "2", "createDate": "2025-03-01 19:00:00", "setDate": "2025-03-01 00:00:00"},
		{"id": "3", "createDate": "2025-03-01 19:00:01", "setDate": "2025-03-01 00:00:00"},
		{"id": "4", "createDate": "2025-03-01 20:30:00", "setDate": "2025-03-02 00:00:00"},
		{"id": "5", "createDate": "2025-03-01 21:00:00", "setDate": "2025-03-01 12:00:00"}
	]`)
	defer server.Close()

	client := newTestClient(server.URL)
	rows, err := client.FetchOrders(context.Background(), "2025-03-01")
	assert.NoError(t, err)

	// Rows at or before the cutoff are dropped, as is the row whose setDate
	// falls on the next day. Listing order is preserved.
	ids := make([]string, 0, len(rows))
	for _, row := range rows {
		ids = append(ids, row.ID)
	}
	assert.Equal(t, []string{"3", "5"}, ids)
}

func TestFetchOrdersCustomCutoff(t *testing.T) {
	server := listingServer(t, `[
		{"id": "1", "createDate": "2025-03-01 18:31:00", "setDate": "2025-03-01 00:00:00"}
	]`)
	defer server.Close()

	cfg := testConfig(server.URL)
	cfg.CutoffTime = "18:30:00"
	client := NewClient(cfg, nil, nil)

	rows, err := client.FetchOrders(context.Background(), "2025-03-01")
	assert.NoError(t, err)
	assert.Len(t, rows, 1)
}

func TestFetchOrdersEmptyListing(t *testing.T) {
	server := listingServer(t, `[]`)
	defer server.Close()

	client := newTestClient(server.URL)
	rows, err := client.FetchOrders(context.Background(), "2025-03-01")
	assert.NoError(t, err)
	assert.Empty(t, rows)
}

func TestFetchOrdersInvalidDate(t *testing.T) {
	client := newTestClient("http://localhost:1")
	_, err := client.FetchOrders(context.Background(), "03/01/2025")
	assert.Error(t, err)
}

func TestFetchOrdersUpstreamError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer server.Close()

	client := newTestClient(server.URL)
	_, err := client.FetchOrders(context.Background(), "2025-03-01")
	assert.Error(t, err)
}

func TestFetchOrdersInvalidJSON(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("<html>session expired</html>"))
	}))
	defer server.Close()

	client := newTestClient(server.URL)
	_, err := client.FetchOrders(context.Background(), "2025-03-01")
	assert.Error(t, err)
}
