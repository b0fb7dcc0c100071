package controller

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	gorillaws "github.com/gorilla/websocket"

	"github.com/ruvumera/choir-panel/database/model"
	"github.com/ruvumera/choir-panel/logger"
	"github.com/ruvumera/choir-panel/web/acl"
	"github.com/ruvumera/choir-panel/web/middleware"
	"github.com/ruvumera/choir-panel/web/service"
	"github.com/ruvumera/choir-panel/web/websocket"
)

var upgrader = gorillaws.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		// Same-origin panel; the session cookie is the access control.
		return true
	},
}

// ChatController exposes the group chat API and its websocket stream.
type ChatController struct {
	chatService service.ChatService
}

// NewChatController creates a ChatController and initializes its routes.
func NewChatController(g *gin.RouterGroup) *ChatController {
	a := &ChatController{}
	a.initRouter(g)
	return a
}

func (a *ChatController) initRouter(g *gin.RouterGroup) {
	g = g.Group("/chat")
	g.Use(middleware.RequireCapability(acl.CapChat))

	g.GET("/messages", a.list)
	g.POST("/messages", a.send)
	g.POST("/messages/:id/delete", a.delete)
	g.POST("/users/:id/suspend", middleware.RequireCapability(acl.CapUsersAdmin), a.suspend)
	g.GET("/ws", a.ws)
}

func (a *ChatController) list(c *gin.Context) {
	messages, err := a.chatService.GetMessages()
	jsonObj(c, messages, err)
}

func (a *ChatController) send(c *gin.Context) {
	var msg model.Message
	if err := c.ShouldBindJSON(&msg); err != nil {
		jsonErr(c, service.ErrValidation)
		return
	}
	sent, err := a.chatService.SendMessage(middleware.GetContextAccount(c), &msg)
	if err != nil {
		jsonErr(c, err)
		return
	}
	jsonObj(c, sent, nil)
}

func (a *ChatController) delete(c *gin.Context) {
	err := a.chatService.DeleteMessage(c.Param("id"), middleware.GetContextAccount(c))
	if err != nil {
		jsonErr(c, err)
		return
	}
	jsonMsg(c, "message deleted", nil)
}

// SuspendForm toggles chat suspension for an account.
type SuspendForm struct {
	Suspended bool `json:"suspended"`
}

func (a *ChatController) suspend(c *gin.Context) {
	var form SuspendForm
	if err := c.ShouldBindJSON(&form); err != nil {
		jsonErr(c, service.ErrValidation)
		return
	}
	err := a.chatService.SetChatSuspended(middleware.GetContextAccount(c), c.Param("id"), form.Suspended)
	if err != nil {
		jsonErr(c, err)
		return
	}
	jsonMsg(c, "suspension updated", nil)
}

// ws upgrades the connection and streams chat events until the client
// disconnects. Missed events are recovered by re-fetching /chat/messages.
func (a *ChatController) ws(c *gin.Context) {
	hub := websocket.GetHub()
	if hub == nil {
		jsonErr(c, service.ErrValidation)
		return
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		logger.Warning("websocket upgrade failed:", err)
		return
	}

	client := &websocket.Client{
		ID:   uuid.NewString(),
		Send: make(chan []byte, 32),
		Hub:  hub,
	}
	hub.Register(client)

	// Writer: push hub events to the browser.
	go func() {
		defer conn.Close()
		for data := range client.Send {
			_ = conn.SetWriteDeadline(time.Now().Add(10 * time.Second))
			if err := conn.WriteMessage(gorillaws.TextMessage, data); err != nil {
				return
			}
		}
	}()

	// Reader: clients never send payloads, the loop only detects close.
	go func() {
		defer hub.Unregister(client)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()
}
