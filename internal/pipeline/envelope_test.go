package pipeline

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestResultJSONShape(t *testing.T) {
	result := groupedResult([]ShopGroup{
		{
			ShopName:    "广源一品",
			TotalOrders: 1,
			Warehouses: []WarehouseGroup{
				{
					WarehouseName: "蔬菜",
					OrderCount:    1,
					Orders: []OrderSummary{
						{OrderNo: "A1", Content: "土豆:3斤", ItemCount: 1, CreatedAt: "2025-03-01 00:00:00"},
					},
				},
			},
			TotalQuantity: 1,
		},
	})

	encoded, err := json.Marshal(result)
	assert.NoError(t, err)

	payload := string(encoded)
	assert.Contains(t, payload, `"code":200`)
	assert.Contains(t, payload, `"门店":"广源一品"`)
	assert.Contains(t, payload, `"仓库":"蔬菜"`)
	assert.Contains(t, payload, `"仓库列表"`)
	assert.Contains(t, payload, `"菜单列表"`)
	assert.Contains(t, payload, `"菜单编号":"A1"`)
	assert.Contains(t, payload, `"菜单内容":"土豆:3斤"`)
	assert.Contains(t, payload, `"菜单数量":1`)
	assert.Contains(t, payload, `"菜单总数":1`)
	assert.Contains(t, payload, `"总数量":1`)
	assert.Contains(t, payload, `"total_quantity":1`)
	assert.Contains(t, payload, `"制单时间":"2025-03-01 00:00:00"`)
}

func TestEmptyResultDataNeverNull(t *testing.T) {
	encoded, err := json.Marshal(emptyResult())
	assert.NoError(t, err)
	assert.Contains(t, string(encoded), `"data":[]`)

	encoded, err = json.Marshal(authFailure())
	assert.NoError(t, err)
	assert.Contains(t, string(encoded), `"data":[]`)
}

func TestResultOK(t *testing.T) {
	assert.True(t, emptyResult().OK())
	assert.True(t, groupedResult(nil).OK())
	assert.False(t, authFailure().OK())
}
