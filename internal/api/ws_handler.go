package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"slices"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/redis/go-redis/v9"

	"cvBuilder/internal/auth"
	"cvBuilder/internal/notify"
)

const (
	wsAuthTimeout  = 10 * time.Second
	wsPingInterval = 30 * time.Second
	wsPongWait     = wsPingInterval + 10*time.Second
	wsWriteWait    = 5 * time.Second
)

var errWsClosed = errors.New("websocket closed")

// WsHandler 把会话频道上的 toast 通知推给浏览器。
// 浏览器连上后第一条消息必须是 {"type":"auth","token":"..."}，令牌不放在 URL 里。
type WsHandler struct {
	redisClient redis.UniversalClient
	sessions    *auth.SessionService
	logger      *slog.Logger
	upgrader    websocket.Upgrader
}

// NewWsHandler 构造 WebSocket 处理器；allowedOrigins 为空时只允许同源。
func NewWsHandler(redisClient redis.UniversalClient, sessions *auth.SessionService, logger *slog.Logger, allowedOrigins []string) *WsHandler {
	return &WsHandler{
		redisClient: redisClient,
		sessions:    sessions,
		logger:      logger,
		upgrader: websocket.Upgrader{
			CheckOrigin: originChecker(allowedOrigins),
		},
	}
}

func originChecker(allowed []string) func(*http.Request) bool {
	return func(r *http.Request) bool {
		origin := r.Header.Get("Origin")
		if origin == "" {
			return true
		}
		if len(allowed) > 0 {
			return slices.Contains(allowed, origin)
		}
		u, err := url.Parse(origin)
		return err == nil && strings.EqualFold(u.Host, r.Host)
	}
}

type wsClientMessage struct {
	Type  string `json:"type"`
	Token string `json:"token"`
}

type wsReadyMessage struct {
	Type      string `json:"type"`
	SessionID string `json:"session_id"`
}

// wsConn 是单条连接的状态；只有 pump 协程写 conn。
type wsConn struct {
	conn   *websocket.Conn
	log    *slog.Logger
	events chan notify.Notification
}

// HandleConnection 升级连接，完成令牌鉴权后订阅会话频道。
func (h *WsHandler) HandleConnection(c *gin.Context) {
	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.logger.Warn("upgrade websocket failed", slog.Any("error", err))
		return
	}
	defer conn.Close()

	ws := &wsConn{
		conn:   conn,
		log:    h.logger.With(slog.String("client_ip", c.ClientIP())),
		events: make(chan notify.Notification, 8),
	}

	sessionID, err := h.authenticate(ws)
	if err != nil {
		ws.log.Warn("websocket authentication failed", slog.Any("error", err))
		ws.close(websocket.ClosePolicyViolation, "unauthorized")
		return
	}
	ws.log = ws.log.With(slog.String("session_id", sessionID))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pubsub := h.redisClient.Subscribe(ctx, notify.Channel(sessionID))
	defer pubsub.Close()
	if _, err := pubsub.Receive(ctx); err != nil {
		ws.log.Error("subscribe notifications failed", slog.Any("error", err))
		ws.close(websocket.CloseInternalServerErr, "subscribe failed")
		return
	}

	go ws.forward(ctx, pubsub.Channel())
	go func() {
		// 客户端断开时 drain 返回，随即取消订阅。
		ws.drain()
		cancel()
	}()

	if err := ws.write(wsReadyMessage{Type: "ready", SessionID: sessionID}); err != nil {
		return
	}
	err = ws.pump(ctx)
	ws.log.Info("websocket connection closed", slog.Any("reason", err))
}

// authenticate 在 wsAuthTimeout 内等待首条鉴权消息。
func (h *WsHandler) authenticate(ws *wsConn) (string, error) {
	_ = ws.conn.SetReadDeadline(time.Now().Add(wsAuthTimeout))
	var msg wsClientMessage
	if err := ws.conn.ReadJSON(&msg); err != nil {
		return "", fmt.Errorf("read auth message: %w", err)
	}
	if msg.Type != "auth" || msg.Token == "" {
		return "", errors.New("first message must be an auth message")
	}
	claims, err := h.sessions.Validate(msg.Token)
	if err != nil {
		return "", fmt.Errorf("validate token: %w", err)
	}
	return claims.SessionID, nil
}

// drain 只负责读：处理 pong 并检测断开，客户端不会再发业务消息。
func (ws *wsConn) drain() {
	_ = ws.conn.SetReadDeadline(time.Now().Add(wsPongWait))
	ws.conn.SetPongHandler(func(string) error {
		return ws.conn.SetReadDeadline(time.Now().Add(wsPongWait))
	})
	for {
		if _, _, err := ws.conn.NextReader(); err != nil {
			return
		}
	}
}

// forward 解码 redis 消息；格式不对的直接丢弃。
func (ws *wsConn) forward(ctx context.Context, ch <-chan *redis.Message) {
	for {
		select {
		case <-ctx.Done():
			return
		case msg, ok := <-ch:
			if !ok {
				return
			}
			var n notify.Notification
			if err := json.Unmarshal([]byte(msg.Payload), &n); err != nil {
				ws.log.Warn("drop malformed notification", slog.Any("error", err))
				continue
			}
			select {
			case ws.events <- n:
			case <-ctx.Done():
				return
			}
		}
	}
}

func (ws *wsConn) pump(ctx context.Context) error {
	ticker := time.NewTicker(wsPingInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return errWsClosed
		case n := <-ws.events:
			if err := ws.write(n); err != nil {
				return fmt.Errorf("write notification: %w", err)
			}
			ws.log.Debug("notification delivered", slog.String("kind", string(n.Kind)))
		case <-ticker.C:
			if err := ws.conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(wsWriteWait)); err != nil {
				return fmt.Errorf("write ping: %w", err)
			}
		}
	}
}

func (ws *wsConn) write(v any) error {
	_ = ws.conn.SetWriteDeadline(time.Now().Add(wsWriteWait))
	return ws.conn.WriteJSON(v)
}

func (ws *wsConn) close(code int, text string) {
	_ = ws.conn.WriteControl(websocket.CloseMessage, websocket.FormatCloseMessage(code, text), time.Now().Add(wsWriteWait))
}
