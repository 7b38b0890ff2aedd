package portal

// Sentinel values used when the upstream detail page is missing the elements
// we parse. The upstream renders these pages server-side and occasionally
// omits the warehouse selection or the order number input; parsing degrades
// to these defaults instead of failing the order.
const (
	UnknownWarehouse = "未知仓库"
	UnknownShop      = "未知门店"
	UnknownOrderNo   = "未知单据编号"
	UnknownProduct   = "未知产品"
	UnknownTime      = "未知"
)

// shopNames maps the 4-character prefix of the upstream warehouse code to a
// human-readable shop name. The portal only exposes the internal code.
var shopNames = map[string]string{
	"0001": "广源一品",
	"0002": "广源二店",
	"0003": "麻婆豆腐",
}

// ShopNameForCode resolves a warehouse code prefix to a shop name.
// Codes shorter than 4 characters are matched as-is; unmapped prefixes
// resolve to UnknownShop.
func ShopNameForCode(code string) string {
	prefix := code
	if runes := []rune(code); len(runes) >= 4 {
		prefix = string(runes[:4])
	}
	if name, ok := shopNames[prefix]; ok {
		return name
	}
	return UnknownShop
}

// OrderRow is one entry from the listing endpoint
type OrderRow struct {
	ID         string `json:"id"`
	CreateDate string `json:"createDate"`
	SetDate    string `json:"setDate"`
}

// LineItem is one product entry within an order's detail list
type LineItem struct {
	ProductName string  `json:"productName"`
	Quantity    float64 `json:"quantity"`
	UnitName    string  `json:"unitName"`
	Description string  `json:"description"`
}

// OrderDetail is the parsed, display-ready representation of one order.
// CreatedAt is not part of the detail page; the pipeline fills it in from
// the listing row's setDate.
type OrderDetail struct {
	OrderNo       string `json:"order_no"`
	WarehouseCode string `json:"warehouse_code"`
	ShopName      string `json:"shop_name"`
	WarehouseName string `json:"warehouse_name"`
	Content       string `json:"content"`
	ItemCount     int    `json:"item_count"`
	CreatedAt     string `json:"created_at,omitempty"`
}
