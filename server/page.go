package server

import (
	"strings"
	"time"

	"ljb001/orderboard/internal/pipeline"
)

// View model for the dashboard template. The comma-joined content summary is
// broken into one line per item for readability, each line split on the
// first ':' into a label and a value.

type contentLine struct {
	Label string
	Value string
}

type pageOrder struct {
	OrderNo   string
	CreatedAt string
	ItemCount int
	Lines     []contentLine
}

type pageWarehouse struct {
	Name       string
	OrderCount int
	Orders     []pageOrder
}

type pageShop struct {
	Name          string
	TotalOrders   int
	TotalQuantity int
	Warehouses    []pageWarehouse
}

type ordersPage struct {
	Code         int
	Message      string
	Shops        []pageShop
	SelectedDate string
	CurrentTime  string
}

func buildOrdersPage(result pipeline.Result, selectedDate string) ordersPage {
	if selectedDate == "" {
		selectedDate = time.Now().Format("2006-01-02")
	}

	page := ordersPage{
		Code:         result.Code,
		Message:      result.Message,
		Shops:        make([]pageShop, 0, len(result.Data)),
		SelectedDate: selectedDate,
		CurrentTime:  time.Now().Format("2006-01-02 15:04:05"),
	}

	for _, shop := range result.Data {
		pShop := pageShop{
			Name:          shop.ShopName,
			TotalOrders:   shop.TotalOrders,
			TotalQuantity: shop.TotalQuantity,
			Warehouses:    make([]pageWarehouse, 0, len(shop.Warehouses)),
		}
		for _, warehouse := range shop.Warehouses {
			pWarehouse := pageWarehouse{
				Name:       warehouse.WarehouseName,
				OrderCount: warehouse.OrderCount,
				Orders:     make([]pageOrder, 0, len(warehouse.Orders)),
			}
			for _, order := range warehouse.Orders {
				pWarehouse.Orders = append(pWarehouse.Orders, pageOrder{
					OrderNo:   order.OrderNo,
					CreatedAt: order.CreatedAt,
					ItemCount: order.ItemCount,
					Lines:     splitContentLines(order.Content),
				})
			}
			pShop.Warehouses = append(pShop.Warehouses, pWarehouse)
		}
		page.Shops = append(page.Shops, pShop)
	}

	return page
}

func splitContentLines(content string) []contentLine {
	if content == "" {
		return nil
	}

	items := strings.Split(content, ",")
	lines := make([]contentLine, 0, len(items))
	for _, item := range items {
		if label, value, found := strings.Cut(item, ":"); found {
			lines = append(lines, contentLine{Label: label, Value: value})
		} else {
			lines = append(lines, contentLine{Value: item})
		}
	}
	return lines
}
