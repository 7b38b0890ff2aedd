package pipeline

import "ljb001/orderboard/internal/portal"

// OrderSummary is the per-order entry inside a warehouse group
type OrderSummary struct {
	OrderNo   string `json:"菜单编号"`
	Content   string `json:"菜单内容"`
	ItemCount int    `json:"总数量"`
	CreatedAt string `json:"制单时间"`
}

// WarehouseGroup collects the orders of one warehouse within a shop
type WarehouseGroup struct {
	WarehouseName string         `json:"仓库"`
	Orders        []OrderSummary `json:"菜单列表"`
	OrderCount    int            `json:"菜单数量"`
}

// ShopGroup collects a shop's warehouses with per-shop totals.
// TotalQuantity sums the item species counts of every order, mirroring the
// portal page's own labeling.
type ShopGroup struct {
	ShopName      string           `json:"门店"`
	Warehouses    []WarehouseGroup `json:"仓库列表"`
	TotalOrders   int              `json:"菜单总数"`
	TotalQuantity int              `json:"total_quantity"`
}

// Aggregate groups parsed order details by shop, then by warehouse within
// each shop. Shops and warehouses appear in strict first-seen order; nothing
// is sorted.
func Aggregate(details []portal.OrderDetail) []ShopGroup {
	groups := make([]ShopGroup, 0)
	shopIndex := make(map[string]int)
	warehouseIndex := make(map[string]map[string]int)

	for _, detail := range details {
		si, ok := shopIndex[detail.ShopName]
		if !ok {
			si = len(groups)
			shopIndex[detail.ShopName] = si
			warehouseIndex[detail.ShopName] = make(map[string]int)
			groups = append(groups, ShopGroup{
				ShopName:   detail.ShopName,
				Warehouses: make([]WarehouseGroup, 0, 1),
			})
		}

		shop := &groups[si]
		wi, ok := warehouseIndex[detail.ShopName][detail.WarehouseName]
		if !ok {
			wi = len(shop.Warehouses)
			warehouseIndex[detail.ShopName][detail.WarehouseName] = wi
			shop.Warehouses = append(shop.Warehouses, WarehouseGroup{
				WarehouseName: detail.WarehouseName,
				Orders:        make([]OrderSummary, 0, 1),
			})
		}

		warehouse := &shop.Warehouses[wi]
		warehouse.Orders = append(warehouse.Orders, OrderSummary{
			OrderNo:   detail.OrderNo,
			Content:   detail.Content,
			ItemCount: detail.ItemCount,
			CreatedAt: detail.CreatedAt,
		})
		warehouse.OrderCount = len(warehouse.Orders)

		shop.TotalOrders++
		shop.TotalQuantity += detail.ItemCount
	}

	return groups
}
