package wechat

import (
	"fmt"
	"strings"

	"ljb001/orderboard/internal/pipeline"
)

// Canned reply texts
const (
	ReplyNoOrders = "暂无符合条件的菜单"
	ReplyGreeting = "您好，欢迎使用菜单查询服务！发送\"菜单\"获取菜单查询链接，或点击菜单中的\"菜单查询\"获取最新菜单信息。"
)

// FormatOrdersReply renders a pipeline result as the chat reply text:
// an indented shop/warehouse/order outline on success, a short notice when
// nothing matched, and the envelope message on failure.
func FormatOrdersReply(result pipeline.Result) string {
	if !result.OK() {
		return fmt.Sprintf("获取菜单失败: %s", result.Message)
	}
	if len(result.Data) == 0 {
		return ReplyNoOrders
	}

	var b strings.Builder
	b.WriteString("今日菜单信息：\n\n")
	for _, shop := range result.Data {
		fmt.Fprintf(&b, "门店: %s (%d个菜单)\n", shop.ShopName, shop.TotalOrders)
		for _, warehouse := range shop.Warehouses {
			fmt.Fprintf(&b, "  仓库: %s (%d个菜单)\n", warehouse.WarehouseName, warehouse.OrderCount)
			for _, order := range warehouse.Orders {
				fmt.Fprintf(&b, "    %s: %s\n", order.OrderNo, order.Content)
			}
		}
		b.WriteString("\n")
	}
	return b.String()
}

// FormatMenuLinkReply renders the reply sent when a user asks for the menu
// link by keyword
func FormatMenuLinkReply(menuURL string) string {
	return fmt.Sprintf("点击以下链接查看菜单信息：\n%s", menuURL)
}
