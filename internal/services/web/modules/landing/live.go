package landing

import (
	"errors"
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/louisbranch/talenthub/internal/platform/i18n"
	"github.com/louisbranch/talenthub/internal/platform/timeouts"
	"github.com/louisbranch/talenthub/internal/services/shared/i18nhttp"
	"github.com/louisbranch/talenthub/internal/services/web/routepath"
	"golang.org/x/net/websocket"
)

var errCrossOriginLive = errors.New("live socket requires a same-origin request")

const (
	liveTypeState    = "state"
	liveTypeError    = "error"
	liveTypeLanguage = "language"
	// liveChangeSnapshot marks the first state frame after connecting.
	liveChangeSnapshot = "snapshot"
)

// liveFrame is a client request on the live socket.
type liveFrame struct {
	Type string `json:"type"`
	Code string `json:"code"`
}

type liveMessage struct {
	Type          string         `json:"type"`
	Change        string         `json:"change,omitempty"`
	Language      string         `json:"language,omitempty"`
	Dir           string         `json:"dir,omitempty"`
	Authenticated bool           `json:"authenticated"`
	Locations     []liveLocation `json:"locations,omitempty"`
	Contact       *liveContact   `json:"contact,omitempty"`
	Error         string         `json:"error,omitempty"`
}

type liveLocation struct {
	ID         int    `json:"id"`
	Name       string `json:"name"`
	Count      int    `json:"count"`
	CountLabel string `json:"countLabel"`
	Href       string `json:"href"`
}

type liveContact struct {
	WhatsApp string `json:"whatsapp"`
	Telegram string `json:"telegram"`
}

func (h handlers) liveServer() websocket.Server {
	return websocket.Server{
		Handshake: func(cfg *websocket.Config, r *http.Request) error {
			if !h.Policy().HasSameOriginProof(r) {
				return errCrossOriginLive
			}
			origin, err := websocket.Origin(cfg, r)
			if err != nil {
				return err
			}
			cfg.Origin = origin
			return nil
		},
		Handler: h.serveLive,
	}
}

// serveLive pushes the visitor's landing state on every commit until the
// socket closes. Clients switch language with {"type":"language","code":..}.
func (h handlers) serveLive(ws *websocket.Conn) {
	defer ws.Close()
	r := ws.Request()
	code, _ := i18nhttp.ResolveCode(r)
	lang := i18n.NewContext(h.Catalog(), code)

	view := h.activate(r, lang)
	defer view.Close()
	if err := view.Wait(r.Context()); err != nil {
		return
	}

	conn := &liveConn{ws: ws}
	conn.mu.Lock()
	unsubscribe := view.Subscribe(func(change Change, state State) {
		conn.send(liveStateMessage(lang, string(change), state))
	})
	initial := conn.sendLocked(liveStateMessage(lang, liveChangeSnapshot, view.Snapshot()))
	conn.mu.Unlock()
	defer unsubscribe()
	if initial != nil {
		return
	}

	for {
		var frame liveFrame
		if err := websocket.JSON.Receive(ws, &frame); err != nil {
			return
		}
		if frame.Type != liveTypeLanguage {
			continue
		}
		if err := lang.SetLanguage(frame.Code); err != nil {
			conn.send(liveMessage{Type: liveTypeError, Error: lang.T("errors.message.badRequest")})
		}
	}
}

// liveConn serializes writes to one socket.
type liveConn struct {
	ws *websocket.Conn
	mu sync.Mutex
}

func (c *liveConn) send(msg liveMessage) {
	c.mu.Lock()
	defer c.mu.Unlock()
	_ = c.sendLocked(msg)
}

func (c *liveConn) sendLocked(msg liveMessage) error {
	if err := c.ws.SetWriteDeadline(time.Now().Add(timeouts.LiveWrite)); err != nil {
		return err
	}
	if err := websocket.JSON.Send(c.ws, msg); err != nil {
		log.Printf("landing: live send failed: %v", err)
		return err
	}
	return nil
}

func liveStateMessage(lang *i18n.Context, change string, state State) liveMessage {
	locations := make([]liveLocation, 0, len(state.Locations))
	for _, location := range state.Locations {
		name := lang.Resolve(state.Language, location.NameKey)
		locations = append(locations, liveLocation{
			ID:         location.ID,
			Name:       name,
			Count:      location.Count,
			CountLabel: state.Language.FormatCount(location.Count),
			Href:       routepath.JobsLocation(name),
		})
	}
	return liveMessage{
		Type:          liveTypeState,
		Change:        change,
		Language:      state.Language.String(),
		Dir:           state.Language.Direction(),
		Authenticated: state.Authenticated,
		Locations:     locations,
		Contact:       &liveContact{WhatsApp: state.Contact.WhatsApp, Telegram: state.Contact.Telegram},
	}
}
