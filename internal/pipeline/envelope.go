package pipeline

import "net/http"

// Messages surfaced to every consumer of the pipeline (JSON API, dashboard
// and the WeChat replies all render these verbatim).
const (
	MsgLoginFailed = "登录失败"
	MsgNoOrders    = "无符合条件的菜单"
	MsgGrouped     = "成功获取菜单并按门店和仓库分组"
)

// Result is the uniform envelope wrapping every pipeline outcome
type Result struct {
	Code    int         `json:"code"`
	Message string      `json:"message"`
	Data    []ShopGroup `json:"data"`
}

// OK reports whether the pipeline produced a usable (possibly empty) result
func (r Result) OK() bool {
	return r.Code == http.StatusOK
}

func authFailure() Result {
	return Result{Code: http.StatusUnauthorized, Message: MsgLoginFailed, Data: []ShopGroup{}}
}

func emptyResult() Result {
	return Result{Code: http.StatusOK, Message: MsgNoOrders, Data: []ShopGroup{}}
}

func groupedResult(groups []ShopGroup) Result {
	return Result{Code: http.StatusOK, Message: MsgGrouped, Data: groups}
}
