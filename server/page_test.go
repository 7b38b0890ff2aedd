package server

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSplitContentLines(t *testing.T) {
	lines := splitContentLines("土豆:3斤,豆腐:5块(嫩)")
	assert.Equal(t, []contentLine{
		{Label: "土豆", Value: "3斤"},
		{Label: "豆腐", Value: "5块(嫩)"},
	}, lines)
}

func TestSplitContentLinesNoColon(t *testing.T) {
	lines := splitContentLines("散装调料")
	assert.Equal(t, []contentLine{{Value: "散装调料"}}, lines)
}

func TestSplitContentLinesEmpty(t *testing.T) {
	assert.Nil(t, splitContentLines(""))
}

func TestBuildOrdersPageDefaultsDate(t *testing.T) {
	page := buildOrdersPage(groupedTestResult(), "")
	assert.NotEmpty(t, page.SelectedDate)
	assert.NotEmpty(t, page.CurrentTime)
	assert.Len(t, page.Shops, 1)

	shop := page.Shops[0]
	assert.Equal(t, "广源一品", shop.Name)
	assert.Equal(t, 1, shop.TotalOrders)
	assert.Equal(t, 2, shop.TotalQuantity)
	assert.Len(t, shop.Warehouses, 1)
	assert.Len(t, shop.Warehouses[0].Orders, 1)
	assert.Len(t, shop.Warehouses[0].Orders[0].Lines, 2)
}
