package landing

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/louisbranch/talenthub/internal/platform/requestctx"
	"github.com/louisbranch/talenthub/internal/services/auth/events"
	"github.com/louisbranch/talenthub/internal/services/web/routepath"
	"golang.org/x/net/websocket"
)

func newLiveServer(t *testing.T, agg *Aggregator) *httptest.Server {
	t.Helper()
	mount, err := New(WithBase(landingTestBase()), WithAggregator(agg)).Mount()
	if err != nil {
		t.Fatalf("mount: %v", err)
	}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		mount.Handler.ServeHTTP(w, r.WithContext(requestctx.WithClientID(r.Context(), "client-a")))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func dialLive(t *testing.T, srv *httptest.Server, origin string) (*websocket.Conn, error) {
	t.Helper()
	wsURL := "ws" + strings.TrimPrefix(srv.URL, "http") + routepath.Live
	return websocket.Dial(wsURL, "", origin)
}

func receiveLive(t *testing.T, ws *websocket.Conn) liveMessage {
	t.Helper()
	if err := ws.SetReadDeadline(time.Now().Add(2 * time.Second)); err != nil {
		t.Fatalf("set deadline: %v", err)
	}
	var msg liveMessage
	if err := websocket.JSON.Receive(ws, &msg); err != nil {
		t.Fatalf("receive: %v", err)
	}
	return msg
}

// receiveUntil skips frames until match accepts one.
func receiveUntil(t *testing.T, ws *websocket.Conn, match func(liveMessage) bool) liveMessage {
	t.Helper()
	for i := 0; i < 10; i++ {
		if msg := receiveLive(t, ws); match(msg) {
			return msg
		}
	}
	t.Fatal("expected frame never arrived")
	return liveMessage{}
}

func TestLiveSendsSnapshotThenAuthChanges(t *testing.T) {
	t.Parallel()

	broker := events.NewMemoryBroker()
	agg := NewAggregator(Config{Broker: broker, Counter: &fakeCounter{counts: map[string]int{"Oman": 3}}})
	srv := newLiveServer(t, agg)

	ws, err := dialLive(t, srv, srv.URL)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	defer ws.Close()

	first := receiveLive(t, ws)
	if first.Type != liveTypeState || first.Change != liveChangeSnapshot {
		t.Fatalf("first frame = %+v", first)
	}
	if first.Authenticated || first.Language != "en" || len(first.Locations) != len(DefaultLocations()) {
		t.Fatalf("snapshot = %+v", first)
	}
	if oman := first.Locations[6]; oman.Name != "Oman" || oman.Count != 3 || oman.Href != routepath.JobsLocation("Oman") {
		t.Fatalf("oman = %+v", oman)
	}

	if err := broker.Publish(context.Background(), events.Event{Kind: events.KindSignedIn, ClientID: "client-a"}); err != nil {
		t.Fatalf("publish: %v", err)
	}
	msg := receiveUntil(t, ws, func(m liveMessage) bool { return m.Change == string(ChangeSession) })
	if !msg.Authenticated {
		t.Fatalf("session frame = %+v", msg)
	}
}

func TestLiveLanguageFrameSwitchesLanguage(t *testing.T) {
	t.Parallel()

	srv := newLiveServer(t, NewAggregator(Config{Counter: &fakeCounter{counts: map[string]int{"阿曼": 9}}}))
	ws, err := dialLive(t, srv, srv.URL)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	defer ws.Close()
	receiveLive(t, ws)

	if err := websocket.JSON.Send(ws, liveFrame{Type: liveTypeLanguage, Code: "xx"}); err != nil {
		t.Fatalf("send: %v", err)
	}
	if msg := receiveLive(t, ws); msg.Type != liveTypeError || msg.Error == "" {
		t.Fatalf("frame = %+v, want error", msg)
	}

	if err := websocket.JSON.Send(ws, liveFrame{Type: liveTypeLanguage, Code: "zh"}); err != nil {
		t.Fatalf("send: %v", err)
	}
	msg := receiveLive(t, ws)
	if msg.Change != string(ChangeLanguage) || msg.Language != "zh" {
		t.Fatalf("frame = %+v, want language change", msg)
	}
	msg = receiveUntil(t, ws, func(m liveMessage) bool { return m.Change == string(ChangeLocations) })
	if oman := msg.Locations[6]; oman.Name != "阿曼" || oman.Count != 9 {
		t.Fatalf("oman = %+v", oman)
	}
}

func TestLiveRejectsCrossOrigin(t *testing.T) {
	t.Parallel()

	srv := newLiveServer(t, NewAggregator(Config{}))
	if ws, err := dialLive(t, srv, "http://evil.example"); err == nil {
		ws.Close()
		t.Fatal("expected cross-origin handshake to fail")
	}
}
