package websocket

import (
	"github.com/ruvumera/choir-panel/logger"
	"github.com/ruvumera/choir-panel/web/global"
)

// GetHub returns the running web server's hub, or nil when the server is not
// up (e.g. CLI commands, tests).
func GetHub() *Hub {
	webServer := global.GetWebServer()
	if webServer == nil {
		return nil
	}
	hub := webServer.GetWSHub()
	if hub == nil {
		return nil
	}
	wsHub, ok := hub.(*Hub)
	if !ok {
		logger.Warning("websocket hub type assertion failed")
		return nil
	}
	return wsHub
}

// BroadcastMessageCreated pushes a new chat message to connected clients.
func BroadcastMessageCreated(msg any) {
	hub := GetHub()
	if hub != nil {
		hub.Broadcast(MessageTypeChatCreated, msg)
	}
}

// BroadcastMessageDeleted pushes a chat message removal, keyed by id.
func BroadcastMessageDeleted(id string) {
	hub := GetHub()
	if hub != nil {
		hub.Broadcast(MessageTypeChatDeleted, map[string]string{"id": id})
	}
}

// BroadcastNotice pushes a system notification.
func BroadcastNotice(title, message, level string) {
	hub := GetHub()
	if hub != nil {
		hub.Broadcast(MessageTypeNotice, map[string]string{
			"title":   title,
			"message": message,
			"level":   level,
		})
	}
}
