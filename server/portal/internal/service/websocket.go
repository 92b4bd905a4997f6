package service

import (
	"sync"

	"github.com/gorilla/websocket"
)

// WebSocketClient 表示一个 WebSocket 客户端连接
type WebSocketClient struct {
	Conn     *websocket.Conn
	WriteMux sync.Mutex

	// 订阅的机柜ID集合，空表示接收全部机柜的变更
	rackIDs map[int64]bool
}

// NewWebSocketClient 创建新的 WebSocket 客户端
func NewWebSocketClient(conn *websocket.Conn, rackIDs []int64) *WebSocketClient {
	client := &WebSocketClient{Conn: conn}
	if len(rackIDs) > 0 {
		client.rackIDs = make(map[int64]bool, len(rackIDs))
		for _, id := range rackIDs {
			client.rackIDs[id] = true
		}
	}
	return client
}

// SafeWrite 安全地写入消息
func (c *WebSocketClient) SafeWrite(v interface{}) error {
	c.WriteMux.Lock()
	defer c.WriteMux.Unlock()
	return c.Conn.WriteJSON(v)
}

// wantsRack 判断客户端是否关注该机柜
func (c *WebSocketClient) wantsRack(rackID int64) bool {
	if c.rackIDs == nil {
		return true
	}
	return c.rackIDs[rackID]
}

// WebSocketManager WebSocket 连接管理器
type WebSocketManager struct {
	Clients   map[*WebSocketClient]bool
	ClientMux sync.Mutex
}

// NewWebSocketManager 创建新的 WebSocket 管理器
func NewWebSocketManager() *WebSocketManager {
	return &WebSocketManager{
		Clients: make(map[*WebSocketClient]bool),
	}
}

// AddClient 添加客户端
func (m *WebSocketManager) AddClient(client *WebSocketClient) {
	m.ClientMux.Lock()
	defer m.ClientMux.Unlock()
	m.Clients[client] = true
}

// RemoveClient 移除客户端
func (m *WebSocketManager) RemoveClient(client *WebSocketClient) {
	m.ClientMux.Lock()
	defer m.ClientMux.Unlock()
	delete(m.Clients, client)
}

// BroadcastRackChange 将机柜变更推送给关注该机柜的客户端
func (m *WebSocketManager) BroadcastRackChange(event *RackChangeEvent) {
	m.ClientMux.Lock()
	clients := make([]*WebSocketClient, 0, len(m.Clients))
	for client := range m.Clients {
		if client.wantsRack(event.RackID) {
			clients = append(clients, client)
		}
	}
	m.ClientMux.Unlock()

	for _, client := range clients {
		go client.SafeWrite(event)
	}
}
