package ws

import (
	"encoding/json"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"

	"github.com/Yiin/YARP/internal/protocol"
)

func dialTest(t *testing.T, s *Server) *websocket.Conn {
	t.Helper()
	srv := httptest.NewServer(s.Handler())
	t.Cleanup(srv.Close)
	url := "ws" + strings.TrimPrefix(srv.URL, "http")
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	t.Cleanup(func() { conn.Close() })
	return conn
}

func readMessage(t *testing.T, conn *websocket.Conn, wantType string) []byte {
	t.Helper()
	deadline := time.Now().Add(5 * time.Second)
	for {
		_ = conn.SetReadDeadline(deadline)
		_, msg, err := conn.ReadMessage()
		if err != nil {
			t.Fatalf("read waiting for %s: %v", wantType, err)
		}
		base, err := protocol.DecodeBase(msg)
		if err != nil {
			t.Fatalf("decode: %v", err)
		}
		if base.Type == wantType {
			return msg
		}
	}
}

func TestHandshakeAndAct(t *testing.T) {
	s, w := newTestServer(t)
	conn := dialTest(t, s)

	hello := protocol.HelloMsg{
		Type:            protocol.TypeHello,
		ProtocolVersion: protocol.Version,
		CharacterName:   "Alice",
		Account:         "acct_1",
	}
	if err := conn.WriteJSON(hello); err != nil {
		t.Fatalf("hello: %v", err)
	}

	var welcome protocol.WelcomeMsg
	if err := json.Unmarshal(readMessage(t, conn, protocol.TypeWelcome), &welcome); err != nil {
		t.Fatalf("welcome: %v", err)
	}
	if welcome.CharacterID != "Alice" || welcome.ProtocolVersion != protocol.Version {
		t.Fatalf("unexpected welcome: %#v", welcome)
	}
	if !w.Characters().Exists("Alice") {
		t.Fatalf("handshake must register the character")
	}

	act := protocol.ActMsg{Type: protocol.TypeAct, Action: protocol.ActDeposit, Amount: 100}
	if err := conn.WriteJSON(act); err != nil {
		t.Fatalf("act: %v", err)
	}
	var res protocol.ResultMsg
	if err := json.Unmarshal(readMessage(t, conn, protocol.TypeResult), &res); err != nil {
		t.Fatalf("result: %v", err)
	}
	if !res.OK || res.Action != protocol.ActDeposit || res.Code != "" {
		t.Fatalf("unexpected result: %#v", res)
	}
}

func TestHandshake_RejectsBadHello(t *testing.T) {
	s, _ := newTestServer(t)

	cases := []any{
		protocol.ActMsg{Type: protocol.TypeAct, Action: protocol.ActDeposit, Amount: 1},
		protocol.HelloMsg{Type: protocol.TypeHello, ProtocolVersion: "0.9", CharacterName: "Alice"},
		protocol.HelloMsg{Type: protocol.TypeHello, ProtocolVersion: protocol.Version},
	}
	for i, msg := range cases {
		conn := dialTest(t, s)
		if err := conn.WriteJSON(msg); err != nil {
			t.Fatalf("case %d: write: %v", i, err)
		}
		_ = conn.SetReadDeadline(time.Now().Add(5 * time.Second))
		if _, _, err := conn.ReadMessage(); err == nil {
			t.Fatalf("case %d: expected the server to close the connection", i)
		}
	}
}
