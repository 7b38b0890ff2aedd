package portal

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"
	"strings"
	"time"

	"ljb001/orderboard/helpers"
	apperrors "ljb001/orderboard/pkg/errors"
)

// rangeCondition is the portal's date-range filter condition object
type rangeCondition struct {
	Name      string `json:"name"`
	Type      string `json:"type"`
	Key       string `json:"key"`
	Data1     string `json:"data1"`
	Data1Type string `json:"data1Type"`
	Data2     string `json:"data2"`
	Data2Type string `json:"data2Type"`
}

type listingResponse struct {
	Rows []OrderRow `json:"rows"`
}

// FetchOrders retrieves the candidate order rows for targetDate
// ("YYYY-MM-DD", empty for today) and applies the local cutoff filter:
// only rows created after the cutoff time on targetDate, whose setDate
// falls on targetDate, are kept. Rows come back in upstream order.
func (c *Client) FetchOrders(ctx context.Context, targetDate string) ([]OrderRow, error) {
	dateStr, err := normalizeDate(targetDate)
	if err != nil {
		return nil, apperrors.NewParsing("listing", "invalid target date "+targetDate, err)
	}

	resp, err := c.postForm(ctx, listPath, listingQuery(), listingForm(dateStr))
	if err != nil {
		return nil, apperrors.NewNetwork("listing", "listing request failed", err)
	}
	if resp.StatusCode != http.StatusOK {
		resp.Body.Close()
		return nil, apperrors.NewUpstream("listing", resp.StatusCode)
	}

	body, err := helpers.ReadUTF8Body(resp)
	if err != nil {
		return nil, apperrors.NewNetwork("listing", "failed to read listing response", err)
	}

	var listing listingResponse
	if err := json.Unmarshal(body, &listing); err != nil {
		return nil, apperrors.NewParsing("listing", "菜单列表响应不是有效的 JSON", err)
	}

	// Keep only rows created after the cutoff on their set date.
	// The date strings sort lexicographically, so plain comparison works.
	cutoff := dateStr + " " + c.cutoffTime
	filtered := make([]OrderRow, 0, len(listing.Rows))
	for _, row := range listing.Rows {
		if row.CreateDate > cutoff && strings.HasPrefix(row.SetDate, dateStr) {
			filtered = append(filtered, row)
		}
	}

	return filtered, nil
}

// listingForm builds the portal's listing form payload. The filter value is
// double-encoded on purpose: the portal web page JSON-stringifies each
// condition object and then stringifies the array holding those strings,
// and the upstream expects exactly that shape.
func listingForm(dateStr string) url.Values {
	condition := rangeCondition{
		Name:  "setDate",
		Type:  "range",
		Key:   "setDate",
		Data1: dateStr,
		Data2: dateStr,
	}
	conditionJSON, _ := json.Marshal(condition)
	filterJSON, _ := json.Marshal([]string{string(conditionJSON)})

	return url.Values{
		"searchFields": {"no,description"},
		"storeId":      {""},
		"filter":       {string(filterJSON)},
		"_search":      {"false"},
		"rows":         {"99"},
		"page":         {"1"},
		"sidx":         {""},
		"sord":         {"asc"},
		"keyword":      {""},
		"warehouseId":  {""},
	}
}

func listingQuery() url.Values {
	return url.Values{
		"t":          {cacheBuster()},
		"refStatus1": {" "},
		"refStatus2": {""},
		"status":     {" "},
	}
}

// normalizeDate validates an explicit target date or defaults to today
func normalizeDate(targetDate string) (string, error) {
	if targetDate == "" {
		return time.Now().Format("2006-01-02"), nil
	}
	parsed, err := time.Parse("2006-01-02", targetDate)
	if err != nil {
		return "", err
	}
	return parsed.Format("2006-01-02"), nil
}
