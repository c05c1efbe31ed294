package network

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/gorilla/websocket"

	"github.com/MRamiBalles/GeoMonedasJuego/internal/domain/geo"
	"github.com/MRamiBalles/GeoMonedasJuego/internal/platform/metrics"
)

const (
	// Time allowed to write a message to the peer.
	writeWait = 10 * time.Second
	// Time allowed to read the next pong message from the peer.
	pongWait = 60 * time.Second
	// Send pings to peer with this period. Must be less than pongWait.
	pingPeriod = (pongWait * 9) / 10
	// Maximum message size allowed from peer.
	maxMessageSize = 1024
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

// PlayerCommand represents an incoming command from the frontend.
type PlayerCommand struct {
	Type    string          `json:"type"`    // "MOVE", "COLLECT", "DEPOSIT", "SAVE", "LOAD", "RESET", "SENSOR_ERROR"
	Payload json.RawMessage `json:"payload"` // command-specific data
}

type movePayload struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

type cellPayload struct {
	Cell string `json:"cell"`
}

type sensorErrorPayload struct {
	Message string `json:"message"`
}

// Client represents an active WebSocket connection.
type Client struct {
	hub  *Hub
	conn *websocket.Conn
	send chan []byte
}

// ServeWS upgrades an HTTP request to a WebSocket connection and
// starts the client's pumps.
func ServeWS(hub *Hub, w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		hub.logger.Error("Failed to upgrade WebSocket connection: " + err.Error())
		metrics.Get().RecordWSError()
		return
	}
	client := &Client{hub: hub, conn: conn, send: make(chan []byte, 256)}
	client.hub.register <- client

	go client.writePump()
	go client.readPump()
}

// sendMessage queues a frame for this client only.
func (c *Client) sendMessage(msgType string, payload interface{}) {
	data, err := json.Marshal(ServerMessage{Type: msgType, Payload: payload})
	if err != nil {
		c.hub.logger.Error(fmt.Sprintf("Failed to serialize %s frame: %v", msgType, err))
		return
	}
	select {
	case c.send <- data:
		metrics.Get().RecordWSMessage(false)
	default:
	}
}

// readPump pumps commands from the websocket connection into the engine.
func (c *Client) readPump() {
	defer func() {
		c.hub.unregister <- c
		c.conn.Close()
	}()
	c.conn.SetReadLimit(maxMessageSize)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})
	for {
		_, message, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				c.hub.logger.Error("WebSocket read error: " + err.Error())
				metrics.Get().RecordWSError()
			}
			break
		}
		metrics.Get().RecordWSMessage(true)

		var cmd PlayerCommand
		if err := json.Unmarshal(message, &cmd); err != nil {
			c.hub.logger.Error("Failed to parse PlayerCommand from WebSocket: " + err.Error())
			continue
		}
		c.handleCommand(cmd)
	}
}

func (c *Client) handleCommand(cmd PlayerCommand) {
	eng := c.hub.engine

	switch cmd.Type {
	case "MOVE":
		var p movePayload
		if err := json.Unmarshal(cmd.Payload, &p); err != nil {
			c.hub.logger.Warn("MOVE command with bad payload: " + err.Error())
			return
		}
		eng.MovePlayer(geo.Point{Lat: p.Lat, Lng: p.Lng})
		c.hub.BroadcastMessage("PLAYER_POSITION", geo.Point{Lat: p.Lat, Lng: p.Lng})

	case "COLLECT":
		var p cellPayload
		if err := json.Unmarshal(cmd.Payload, &p); err != nil {
			c.hub.logger.Warn("COLLECT command with bad payload: " + err.Error())
			return
		}
		if err := eng.CollectCoin(p.Cell); err != nil {
			c.sendMessage("ERROR", err.Error())
		}

	case "DEPOSIT":
		var p cellPayload
		if err := json.Unmarshal(cmd.Payload, &p); err != nil {
			c.hub.logger.Warn("DEPOSIT command with bad payload: " + err.Error())
			return
		}
		if err := eng.DepositCoin(p.Cell); err != nil {
			c.sendMessage("ERROR", err.Error())
		}

	case "SAVE":
		if err := c.hub.store.SaveWorld(context.Background()); err != nil {
			c.hub.logger.Error("Failed to save world: " + err.Error())
			c.sendMessage("ERROR", "save failed")
			return
		}
		c.sendMessage("SAVED", nil)

	case "LOAD":
		if err := c.hub.store.LoadWorld(context.Background()); err != nil {
			c.hub.logger.Error("Failed to load world: " + err.Error())
			c.sendMessage("ERROR", "load failed")
			return
		}
		c.hub.BroadcastMessage("PLAYER_POSITION", eng.PlayerPosition())

	case "RESET":
		eng.Reset()
		c.hub.BroadcastMessage("PLAYER_POSITION", eng.PlayerPosition())

	case "SENSOR_ERROR":
		var p sensorErrorPayload
		if err := json.Unmarshal(cmd.Payload, &p); err != nil {
			c.hub.logger.Warn("SENSOR_ERROR command with bad payload: " + err.Error())
			return
		}
		eng.ReportSensorError(p.Message)

	default:
		c.hub.logger.Warn("Unknown PlayerCommand type: " + cmd.Type)
	}
}

// writePump pumps messages from the hub to the websocket connection.
func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()
	for {
		select {
		case message, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, message); err != nil {
				metrics.Get().RecordWSError()
				return
			}
		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
