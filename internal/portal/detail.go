package portal

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"ljb001/orderboard/helpers"
	apperrors "ljb001/orderboard/pkg/errors"

	"github.com/PuerkitoBio/goquery"
)

const (
	detailCacheKeyPrefix = "order_detail_"
	itemsCacheKeyPrefix  = "order_items_"
)

type itemsResponse struct {
	Rows []LineItem `json:"rows"`
}

// FetchOrderItems retrieves the line items of one order, requesting all rows
// in a single page (rows=-1)
func (c *Client) FetchOrderItems(ctx context.Context, orderID string) ([]LineItem, error) {
	query := url.Values{"t": {cacheBuster()}}
	form := url.Values{
		"id":      {orderID},
		"_search": {"false"},
		"rows":    {"-1"},
		"page":    {"1"},
		"sidx":    {""},
		"sord":    {"asc"},
	}

	resp, err := c.postForm(ctx, detailListPath, query, form)
	if err != nil {
		return nil, apperrors.NewNetwork("detaillist", "detail list request failed", err)
	}
	if resp.StatusCode != http.StatusOK {
		resp.Body.Close()
		c.log.Error().Int("status", resp.StatusCode).Str("order_id", orderID).Msg("获取菜单详情失败")
		return nil, apperrors.NewUpstream("detaillist", resp.StatusCode)
	}

	body, err := helpers.ReadUTF8Body(resp)
	if err != nil {
		return nil, apperrors.NewNetwork("detaillist", "failed to read detail list response", err)
	}

	var items itemsResponse
	if err := json.Unmarshal(body, &items); err != nil {
		c.log.Error().Str("order_id", orderID).Msg("菜单详情响应不是有效的 JSON")
		return nil, apperrors.NewParsing("detaillist", "菜单详情响应不是有效的 JSON", err)
	}

	return items.Rows, nil
}

// fetchOrderItemsCached memoizes FetchOrderItems for the process lifetime.
// Line items never change once the order exists upstream, so the memo has no
// expiry; the memory backend bounds it by entry count instead.
func (c *Client) fetchOrderItemsCached(ctx context.Context, orderID string) ([]LineItem, error) {
	key := itemsCacheKeyPrefix + orderID

	if c.itemsCache != nil {
		if cached, err := c.itemsCache.Get(key); err == nil {
			var items []LineItem
			if err := json.Unmarshal(cached, &items); err == nil {
				return items, nil
			}
		}
	}

	items, err := c.FetchOrderItems(ctx, orderID)
	if err != nil {
		return nil, err
	}

	if c.itemsCache != nil {
		if encoded, err := json.Marshal(items); err == nil {
			if err := c.itemsCache.Set(key, encoded, 0); err != nil {
				c.log.Warn().Err(err).Str("order_id", orderID).Msg("写入明细缓存失败")
			}
		}
	}

	return items, nil
}

// OrderDetails fetches and parses one order's detail page, serving repeated
// lookups from the detail cache within its TTL. Missing page elements degrade
// to sentinel values; only network and status failures drop the order.
func (c *Client) OrderDetails(ctx context.Context, orderID string) (*OrderDetail, error) {
	cacheKey := detailCacheKeyPrefix + orderID

	if c.detailCache != nil {
		if cached, err := c.detailCache.Get(cacheKey); err == nil {
			var detail OrderDetail
			if err := json.Unmarshal(cached, &detail); err == nil {
				return &detail, nil
			}
		}
	}

	query := url.Values{"t": {cacheBuster()}}
	resp, err := c.get(ctx, detailPath+orderID, query)
	if err != nil {
		return nil, apperrors.NewNetwork("detail", "detail page request failed", err)
	}
	if resp.StatusCode != http.StatusOK {
		resp.Body.Close()
		c.log.Error().Int("status", resp.StatusCode).Str("order_id", orderID).Msg("获取菜单页面失败")
		return nil, apperrors.NewUpstream("detail", resp.StatusCode)
	}

	body, err := helpers.ReadUTF8Body(resp)
	if err != nil {
		return nil, apperrors.NewNetwork("detail", "failed to read detail page", err)
	}

	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		return nil, apperrors.NewParsing("detail", "HTML 解析错误", err)
	}

	shopCode, warehouseCode, warehouseName := parseWarehouseSelection(doc)

	orderNo := UnknownOrderNo
	if value, ok := doc.Find("input#no").Attr("value"); ok {
		orderNo = value
	}

	items, err := c.fetchOrderItemsCached(ctx, orderID)
	if err != nil {
		// An order without readable line items still has an identity;
		// render it with an empty content summary.
		c.log.Warn().Err(err).Str("order_id", orderID).Msg("菜单明细获取失败")
		items = nil
	}

	detail := &OrderDetail{
		OrderNo:       orderNo,
		WarehouseCode: warehouseCode,
		ShopName:      ShopNameForCode(shopCode),
		WarehouseName: warehouseName,
		Content:       renderContentSummary(items),
		ItemCount:     len(items),
	}

	if c.detailCache != nil {
		if encoded, err := json.Marshal(detail); err == nil {
			if err := c.detailCache.Set(cacheKey, encoded, c.detailCacheTTL); err != nil {
				c.log.Warn().Err(err).Str("order_id", orderID).Msg("写入详情缓存失败")
			}
		}
	}

	return detail, nil
}

// parseWarehouseSelection extracts the selected warehouse option and splits
// its visible text on the first '-' into (shopCode, warehouseName). With no
// selected option the shop code stays at its sentinel and the warehouse name
// stays empty.
func parseWarehouseSelection(doc *goquery.Document) (shopCode, warehouseCode, warehouseName string) {
	shopCode = UnknownWarehouse

	doc.Find("select#warehouseId option").EachWithBreak(func(_ int, option *goquery.Selection) bool {
		if _, selected := option.Attr("selected"); !selected {
			return true
		}
		warehouseCode, _ = option.Attr("value")
		text := strings.TrimSpace(option.Text())
		if before, after, found := strings.Cut(text, "-"); found {
			shopCode, warehouseName = before, after
		} else {
			shopCode = text
		}
		return false
	})

	return shopCode, warehouseCode, warehouseName
}

// renderContentSummary joins every line item as name:quantity+unit with an
// optional parenthesized description, comma-separated in item order
func renderContentSummary(items []LineItem) string {
	parts := make([]string, 0, len(items))
	for _, item := range items {
		name := item.ProductName
		if name == "" {
			name = UnknownProduct
		}

		var b strings.Builder
		b.WriteString(name)
		b.WriteString(":")
		b.WriteString(formatFloat(item.Quantity))
		b.WriteString(item.UnitName)
		if item.Description != "" {
			b.WriteString("(")
			b.WriteString(item.Description)
			b.WriteString(")")
		}
		parts = append(parts, b.String())
	}
	return strings.Join(parts, ",")
}

// formatFloat renders a float the way the portal page does: no exponent,
// no trailing zeros
func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}
