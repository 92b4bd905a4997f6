package routers

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"dcim-ng/pkg/middleware/render"
	"dcim-ng/server/portal/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

// RackWebSocketHandler handles WebSocket connections for rack change notifications.
type RackWebSocketHandler struct {
	manager  *service.WebSocketManager
	upgrader websocket.Upgrader
}

// NewRackWebSocketHandler creates a new RackWebSocketHandler.
func NewRackWebSocketHandler(manager *service.WebSocketManager) *RackWebSocketHandler {
	return &RackWebSocketHandler{
		manager: manager,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *http.Request) bool {
				// Allow all origins in development
				return true
			},
		},
	}
}

// RegisterRoutes registers WebSocket routes with the given router group.
func (h *RackWebSocketHandler) RegisterRoutes(r *gin.RouterGroup) {
	wsGroup := r.Group(RouteGroupWebSocket)
	{
		wsGroup.GET(SubRouteWSRacks, h.handleRackUpdates)
	}
}

// handleRackUpdates 订阅机柜变更推送.
// rackIds 为逗号分隔的机柜ID列表，缺省时接收全部机柜的变更.
func (h *RackWebSocketHandler) handleRackUpdates(c *gin.Context) {
	rackIDs, err := parseRackIDs(c.Query(ParamRackIDs))
	if err != nil {
		render.BadRequest(c, MsgInvalidQueryParams+ParamRackIDs)
		return
	}

	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		render.InternalServerError(c, fmt.Sprintf(MsgWebSocketUpgradeError, err.Error()))
		return
	}

	client := service.NewWebSocketClient(conn, rackIDs)
	h.manager.AddClient(client)

	go h.readLoop(client)
}

// readLoop 持续读取直到连接关闭，保持连接存活并感知断开
func (h *RackWebSocketHandler) readLoop(client *service.WebSocketClient) {
	defer func() {
		h.manager.RemoveClient(client)
		client.Conn.Close()
	}()

	for {
		if _, _, err := client.Conn.ReadMessage(); err != nil {
			break
		}
	}
}

// parseRackIDs 解析逗号分隔的机柜ID列表
func parseRackIDs(raw string) ([]int64, error) {
	if raw == "" {
		return nil, nil
	}
	parts := strings.Split(raw, ",")
	ids := make([]int64, 0, len(parts))
	for _, part := range parts {
		id, err := strconv.ParseInt(strings.TrimSpace(part), Base10, BitSize64)
		if err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, nil
}
