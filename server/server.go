package server

import (
	"context"
	"io"
	"net/http"
	"strings"

	"ljb001/orderboard/config"
	"ljb001/orderboard/internal/pipeline"
	"ljb001/orderboard/internal/wechat"
	"ljb001/orderboard/logger"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
)

// OrderService is the pipeline surface the server consumes
type OrderService interface {
	GetFilteredOrders(ctx context.Context, targetDate string) pipeline.Result
}

// MenuAPI manages the WeChat custom menu
type MenuAPI interface {
	CreateMenu(ctx context.Context, menuURL string) error
	Menu(ctx context.Context) ([]byte, error)
}

// Server exposes the aggregated orders over HTTP: a JSON API, an HTML
// dashboard and the WeChat webhook.
type Server struct {
	echo        *echo.Echo
	orders      OrderService
	menuAPI     MenuAPI
	wechatToken string
	menuURL     string
	log         *logger.Logger
}

// New creates the HTTP server with all routes registered
func New(cfg *config.Config, orders OrderService, menuAPI MenuAPI) *Server {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Use(middleware.Recover())
	e.Renderer = newRenderer()

	s := &Server{
		echo:        e,
		orders:      orders,
		menuAPI:     menuAPI,
		wechatToken: cfg.WechatToken,
		menuURL:     cfg.MenuURL,
		log:         logger.ForServer(),
	}

	e.GET("/", s.handleIndex)
	e.GET("/orders", s.handleOrders)
	e.GET("/orders_page", s.handleOrdersPage)
	e.GET("/wechat", s.handleWechatVerify)
	e.POST("/wechat", s.handleWechatMessage)
	e.GET("/create_menu", s.handleCreateMenu)
	e.GET("/get_menu", s.handleGetMenu)

	return s
}

// Start blocks serving HTTP on addr until Shutdown is called
func (s *Server) Start(addr string) error {
	s.log.Info().Str("addr", addr).Msg("HTTP server starting")
	return s.echo.Start(addr)
}

// Shutdown stops the server gracefully
func (s *Server) Shutdown(ctx context.Context) error {
	return s.echo.Shutdown(ctx)
}

func (s *Server) handleIndex(c echo.Context) error {
	return c.HTML(http.StatusOK, indexHTML)
}

// handleOrders returns the pipeline envelope verbatim as JSON
func (s *Server) handleOrders(c echo.Context) error {
	result := s.orders.GetFilteredOrders(c.Request().Context(), c.QueryParam("date"))
	return c.JSON(http.StatusOK, result)
}

// handleOrdersPage renders the HTML dashboard
func (s *Server) handleOrdersPage(c echo.Context) error {
	targetDate := c.QueryParam("date")
	result := s.orders.GetFilteredOrders(c.Request().Context(), targetDate)
	return c.Render(http.StatusOK, ordersPageName, buildOrdersPage(result, targetDate))
}

// handleWechatVerify answers the platform's URL verification handshake
func (s *Server) handleWechatVerify(c echo.Context) error {
	if !wechat.VerifySignature(s.wechatToken, c.QueryParam("signature"), c.QueryParam("timestamp"), c.QueryParam("nonce")) {
		return c.String(http.StatusForbidden, "验证失败")
	}
	return c.String(http.StatusOK, c.QueryParam("echostr"))
}

// handleWechatMessage handles inbound user messages and menu click events,
// replying with the aggregated order summary as chat text
func (s *Server) handleWechatMessage(c echo.Context) error {
	if !wechat.VerifySignature(s.wechatToken, c.QueryParam("signature"), c.QueryParam("timestamp"), c.QueryParam("nonce")) {
		return c.String(http.StatusForbidden, "签名验证失败")
	}

	body, err := io.ReadAll(c.Request().Body)
	if err != nil {
		return c.String(http.StatusBadRequest, "invalid body")
	}
	msg, err := wechat.ParseMessage(body)
	if err != nil {
		s.log.Warn().Err(err).Msg("微信消息解析失败")
		return c.String(http.StatusBadRequest, "invalid message")
	}

	return s.replyText(c, msg, s.replyContentFor(c, msg))
}

func (s *Server) replyContentFor(c echo.Context, msg *wechat.Message) string {
	switch {
	case msg.IsMenuClick():
		result := s.orders.GetFilteredOrders(c.Request().Context(), "")
		return wechat.FormatOrdersReply(result)
	case msg.MsgType == "text":
		if strings.Contains(msg.Content, "菜单") {
			return wechat.FormatMenuLinkReply(s.menuURL)
		}
		result := s.orders.GetFilteredOrders(c.Request().Context(), "")
		return wechat.FormatOrdersReply(result)
	default:
		return wechat.ReplyGreeting
	}
}

func (s *Server) replyText(c echo.Context, msg *wechat.Message, content string) error {
	reply, err := wechat.NewTextReply(msg, content).Marshal()
	if err != nil {
		return err
	}
	return c.XMLBlob(http.StatusOK, reply)
}

// handleCreateMenu installs the WeChat custom menu
func (s *Server) handleCreateMenu(c echo.Context) error {
	if err := s.menuAPI.CreateMenu(c.Request().Context(), s.menuURL); err != nil {
		s.log.Error().Err(err).Msg("菜单创建失败")
		return c.JSON(http.StatusOK, map[string]interface{}{"code": 500, "message": "菜单创建失败"})
	}
	return c.JSON(http.StatusOK, map[string]interface{}{"code": 200, "message": "菜单创建成功"})
}

// handleGetMenu returns the currently installed custom menu
func (s *Server) handleGetMenu(c echo.Context) error {
	menu, err := s.menuAPI.Menu(c.Request().Context())
	if err != nil {
		s.log.Error().Err(err).Msg("获取菜单失败")
		return c.JSON(http.StatusOK, map[string]interface{}{"code": 500, "message": "获取access_token失败"})
	}
	return c.JSONBlob(http.StatusOK, menu)
}
