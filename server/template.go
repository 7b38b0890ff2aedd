package server

import (
	"html/template"
	"io"

	"github.com/labstack/echo/v4"
)

const ordersPageName = "orders_page"

type renderer struct {
	templates *template.Template
}

func newRenderer() *renderer {
	return &renderer{
		templates: template.Must(template.New(ordersPageName).Parse(ordersPageTemplate)),
	}
}

func (r *renderer) Render(w io.Writer, name string, data interface{}, c echo.Context) error {
	return r.templates.ExecuteTemplate(w, name, data)
}

const indexHTML = `<!DOCTYPE html>
<html>
<head>
    <title>菜单查询系统</title>
    <meta http-equiv="refresh" content="0; url=/orders_page">
    <meta name="viewport" content="width=device-width, initial-scale=1.0">
</head>
<body>
    <p style="text-align:center;color:#666;">正在加载菜单数据...</p>
</body>
</html>`

// Mobile-oriented dashboard, one card per shop with warehouse sections.
const ordersPageTemplate = `<!DOCTYPE html>
<html lang="zh-CN">
<head>
    <meta charset="UTF-8">
    <meta name="viewport" content="width=device-width, initial-scale=1.0, maximum-scale=1.0, user-scalable=no">
    <title>菜单查询</title>
    <style>
        * { margin: 0; padding: 0; box-sizing: border-box; }
        body {
            font-family: -apple-system, BlinkMacSystemFont, 'Segoe UI', Roboto, sans-serif;
            background-color: #f5f5f5;
            color: #333;
            line-height: 1.6;
        }
        .header {
            background: #1976d2;
            color: white;
            padding: 15px 20px;
            position: sticky;
            top: 0;
            display: flex;
            justify-content: space-between;
            align-items: center;
            flex-wrap: wrap;
            gap: 10px;
        }
        .header h1 { font-size: 1.4rem; font-weight: 500; }
        .date-selector {
            display: flex;
            align-items: center;
            gap: 10px;
            background: rgba(255,255,255,0.2);
            padding: 5px 10px;
            border-radius: 20px;
        }
        .date-selector input { border: none; padding: 5px; border-radius: 4px; }
        .refresh-btn {
            background: rgba(255,255,255,0.2);
            border: none;
            color: white;
            padding: 8px 15px;
            border-radius: 20px;
            cursor: pointer;
        }
        .shop-list { padding: 10px; }
        .shop-item {
            background: white;
            margin-bottom: 12px;
            border-radius: 8px;
            overflow: hidden;
            box-shadow: 0 1px 3px rgba(0,0,0,0.1);
        }
        .shop-header {
            background: #2196f3;
            color: white;
            padding: 15px;
            font-weight: 500;
            font-size: 1.1rem;
        }
        .warehouse-list { padding: 15px; }
        .warehouse-item {
            border-left: 4px solid #4caf50;
            padding: 12px 0 12px 15px;
            margin-bottom: 20px;
        }
        .warehouse-name { font-weight: 500; color: #2e7d32; margin-bottom: 12px; }
        .order-item {
            background: #fafafa;
            border-radius: 6px;
            padding: 12px;
            margin-bottom: 10px;
            border: 1px solid #eee;
        }
        .order-header {
            display: flex;
            justify-content: space-between;
            margin-bottom: 8px;
            padding-bottom: 6px;
            border-bottom: 1px dashed #ddd;
        }
        .order-number { font-weight: 600; color: #1976d2; }
        .order-time { font-size: 0.8rem; color: #666; }
        .order-quantity {
            font-weight: 500;
            color: #e91e63;
            font-size: 0.9rem;
            background: #fce4ec;
            padding: 2px 8px;
            border-radius: 10px;
        }
        .content-line { display: flex; font-size: 0.9rem; }
        .content-label { font-weight: 500; min-width: 55px; color: #666; }
        .content-value { flex: 1; color: #333; }
        .no-data { text-align: center; padding: 40px 20px; color: #999; }
        .no-data-icon { font-size: 3rem; margin-bottom: 15px; opacity: 0.3; }
        .timestamp {
            text-align: center;
            padding: 15px;
            color: #888;
            font-size: 0.85rem;
            background: white;
            border-top: 1px solid #eee;
        }
        @media (min-width: 768px) {
            .shop-item { max-width: 700px; margin: 0 auto 15px; }
        }
    </style>
</head>
<body>
    <div class="header">
        <h1>📦 菜单查询</h1>
        <form id="dateForm" style="display: flex; gap: 10px;">
            <div class="date-selector">
                <label for="date">选择日期:</label>
                <input type="date" id="date" name="date" value="{{.SelectedDate}}">
            </div>
            <button class="refresh-btn" type="submit">🔍 查询</button>
        </form>
    </div>

    <div class="shop-list">
        {{- if and (eq .Code 200) .Shops}}
        {{- range .Shops}}
        <div class="shop-item">
            <div class="shop-header">
                <span>🏪 {{.Name}} ({{.TotalOrders}}个菜单, 总计: {{.TotalQuantity}})</span>
            </div>
            <div class="warehouse-list">
                {{- range .Warehouses}}
                <div class="warehouse-item">
                    <div class="warehouse-name">🏢 {{.Name}} ({{.OrderCount}})</div>
                    <div class="order-list">
                        {{- range .Orders}}
                        <div class="order-item">
                            <div class="order-header">
                                <div>
                                    <div class="order-number">📋 {{.OrderNo}}</div>
                                    {{- if .CreatedAt}}
                                    <div class="order-time">制单时间: {{.CreatedAt}}</div>
                                    {{- end}}
                                </div>
                                {{- if .ItemCount}}
                                <div class="order-quantity">总计: {{.ItemCount}}</div>
                                {{- end}}
                            </div>
                            <div class="order-content">
                                {{- range .Lines}}
                                <div class="content-line">
                                    {{- if .Label}}
                                    <span class="content-label">{{.Label}}:</span>
                                    {{- end}}
                                    <span class="content-value">{{.Value}}</span>
                                </div>
                                {{- end}}
                            </div>
                        </div>
                        {{- else}}
                        <div class="no-data" style="padding: 20px 0;">📭 暂无菜单</div>
                        {{- end}}
                    </div>
                </div>
                {{- end}}
            </div>
        </div>
        {{- end}}
        {{- else if eq .Code 200}}
        <div class="no-data">
            <div class="no-data-icon">📭</div>
            <div>暂无菜单数据</div>
        </div>
        {{- else}}
        <div class="no-data">
            <div class="no-data-icon">❌</div>
            <div>数据加载失败</div>
            <div style="font-size: 0.9rem; margin-top: 10px;">{{.Message}}</div>
        </div>
        {{- end}}
    </div>

    <div class="timestamp">更新时间: {{.CurrentTime}}</div>

    <script>
        document.addEventListener('DOMContentLoaded', function() {
            const dateInput = document.getElementById('date');
            if (dateInput && !dateInput.value) {
                dateInput.valueAsDate = new Date();
            }
        });
    </script>
</body>
</html>`
