package pricing

import (
	"encoding/json"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/julienschmidt/httprouter"
)

func TestHubPublish(t *testing.T) {
	hub := NewHub()
	router := httprouter.New()
	router.GET("/api/session/price-stream", hub.HandleWS)
	srv := httptest.NewServer(router)
	defer srv.Close()

	wsURL := strings.Replace(srv.URL, "http", "ws", 1) + "/api/session/price-stream"
	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	defer conn.Close()

	// Give the server loop a moment to register the subscriber.
	time.Sleep(50 * time.Millisecond)

	hub.Publish(Event{FlightID: "f1", Multiplier: 1.1})

	conn.SetReadDeadline(time.Now().Add(time.Second))
	_, data, err := conn.ReadMessage()
	if err != nil {
		t.Fatalf("read: %v", err)
	}

	var ev Event
	if err := json.Unmarshal(data, &ev); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if ev.FlightID != "f1" || ev.Multiplier != 1.1 {
		t.Fatalf("got %+v, want f1 @ 1.1", ev)
	}
}
