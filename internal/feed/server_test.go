package feed

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/vmihailenco/msgpack/v5"

	"lanewar/internal/config"
	"lanewar/internal/match"
	"lanewar/internal/protocol"
)

func startServer(t *testing.T) (*httptest.Server, *match.Match) {
	t.Helper()
	cat, err := config.Default()
	if err != nil {
		t.Fatalf("catalog: %v", err)
	}
	m := match.New(match.Options{Catalog: cat})
	ctx, cancel := context.WithCancel(context.Background())
	go func() { _ = m.Run(ctx) }()
	srv := httptest.NewServer(New(m, int(cat.TickRate), nil))
	t.Cleanup(func() {
		srv.Close()
		cancel()
	})
	return srv, m
}

func dial(t *testing.T, srv *httptest.Server, query string) *websocket.Conn {
	t.Helper()
	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws" + query
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	t.Cleanup(func() { conn.Close() })
	return conn
}

func send(t *testing.T, conn *websocket.Conn, typ string, payload any) {
	t.Helper()
	var b []byte
	var err error
	if payload == nil {
		b, err = json.Marshal(protocol.Envelope{T: typ})
	} else {
		b, err = protocol.Encode(typ, payload)
	}
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	if err := conn.WriteMessage(websocket.TextMessage, b); err != nil {
		t.Fatalf("write: %v", err)
	}
}

// waitState reads JSON frames until a state satisfies ok.
func waitState(t *testing.T, conn *websocket.Conn, ok func(protocol.State) bool) protocol.State {
	t.Helper()
	_ = conn.SetReadDeadline(time.Now().Add(3 * time.Second))
	for {
		_, b, err := conn.ReadMessage()
		if err != nil {
			t.Fatalf("read: %v", err)
		}
		env, err := protocol.DecodeEnvelope(b)
		if err != nil {
			t.Fatalf("decode envelope: %v", err)
		}
		if env.T != protocol.MsgState {
			continue
		}
		s, err := protocol.DecodePayload[protocol.State](env)
		if err != nil {
			t.Fatalf("decode state: %v", err)
		}
		if ok(s) {
			return s
		}
	}
}

func TestWelcomeThenMenuState(t *testing.T) {
	srv, _ := startServer(t)
	conn := dial(t, srv, "")

	_ = conn.SetReadDeadline(time.Now().Add(3 * time.Second))
	_, b, err := conn.ReadMessage()
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	env, err := protocol.DecodeEnvelope(b)
	if err != nil || env.T != protocol.MsgWelcome {
		t.Fatalf("first frame = %s, %v", b, err)
	}
	w, err := protocol.DecodePayload[protocol.Welcome](env)
	if err != nil || w.TickHz != 60 || len(w.Speeds) != 3 || w.Format != "json" {
		t.Fatalf("welcome = %+v, %v", w, err)
	}
	waitState(t, conn, func(s protocol.State) bool { return s.Status == "menu" })
}

func TestCommandsDriveMatch(t *testing.T) {
	srv, _ := startServer(t)
	conn := dial(t, srv, "")

	send(t, conn, protocol.MsgStart, protocol.Start{Mode: "scripted", Difficulty: "normal"})
	waitState(t, conn, func(s protocol.State) bool { return s.Status == "playing" })

	send(t, conn, protocol.MsgSummon, protocol.Summon{Unit: "swordsman"})
	s := waitState(t, conn, func(s protocol.State) bool { return len(s.Units) > 0 })
	if s.Units[0].Unit != "swordsman" || s.Units[0].Owner != "player" {
		t.Fatalf("units = %+v", s.Units)
	}

	send(t, conn, protocol.MsgSpeed, protocol.Speed{Speed: 2})
	waitState(t, conn, func(s protocol.State) bool { return s.Speed == 2 })

	// garbage is ignored, the connection stays up
	if err := conn.WriteMessage(websocket.TextMessage, []byte("not json")); err != nil {
		t.Fatalf("write: %v", err)
	}
	send(t, conn, protocol.MsgRestart, nil)
	waitState(t, conn, func(s protocol.State) bool { return s.Status == "menu" })
}

func TestMsgpackFrames(t *testing.T) {
	srv, m := startServer(t)
	conn := dial(t, srv, "?fmt=msgpack")
	if err := m.Send(context.Background(), match.Start{Mode: "scripted", Difficulty: "easy"}); err != nil {
		t.Fatalf("send: %v", err)
	}

	_ = conn.SetReadDeadline(time.Now().Add(3 * time.Second))
	sawWelcome := false
	for {
		kind, b, err := conn.ReadMessage()
		if err != nil {
			t.Fatalf("read: %v", err)
		}
		if kind != websocket.BinaryMessage {
			t.Fatalf("frame kind = %d, want binary", kind)
		}
		typ, raw, err := protocol.DecodeBinary[msgpack.RawMessage](b)
		if err != nil {
			t.Fatalf("decode: %v", err)
		}
		switch typ {
		case protocol.MsgWelcome:
			sawWelcome = true
		case protocol.MsgState:
			var s protocol.State
			if err := msgpack.Unmarshal(raw, &s); err != nil {
				t.Fatalf("state: %v", err)
			}
			if s.Status == "playing" {
				if !sawWelcome {
					t.Fatalf("state before welcome")
				}
				return
			}
		}
	}
}

func TestHealthz(t *testing.T) {
	srv, _ := startServer(t)
	resp, err := http.Get(srv.URL + "/healthz")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	defer resp.Body.Close()
	var body map[string]any
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.StatusCode != http.StatusOK || body["status"] != "ok" || body["state"] != "menu" {
		t.Fatalf("healthz = %d %v", resp.StatusCode, body)
	}
}

func TestToCommand(t *testing.T) {
	env := func(typ, payload string) protocol.Envelope {
		e := protocol.Envelope{T: typ}
		if payload != "" {
			e.P = json.RawMessage(payload)
		}
		return e
	}
	cases := []struct {
		env  protocol.Envelope
		want any
	}{
		{env(protocol.MsgStart, `{"mode":"ai","difficulty":"hard"}`), match.Start{Mode: "external", Difficulty: "hard"}},
		{env(protocol.MsgCast, `{"spell":"heal"}`), match.CastSpell{Spell: "heal"}},
		{env(protocol.MsgTarget, `{"unit":"enemy_knight_1"}`), match.SelectTarget{Unit: "enemy_knight_1"}},
		{env(protocol.MsgCancel, ""), match.CancelTargeting{}},
		{env(protocol.MsgEvolve, ""), match.Evolve{}},
		{env(protocol.MsgUpgrade, `{"upgrade":"unit_hp"}`), match.PurchaseUpgrade{Upgrade: "unit_hp"}},
	}
	for _, tc := range cases {
		got, err := toCommand(tc.env)
		if err != nil || got != tc.want {
			t.Fatalf("%s: got %#v, %v; want %#v", tc.env.T, got, err, tc.want)
		}
	}
	if _, err := toCommand(env("dance", "")); err == nil {
		t.Fatalf("unknown type accepted")
	}
	if _, err := toCommand(env(protocol.MsgStart, `{"mode":"pvp","difficulty":"easy"}`)); err == nil {
		t.Fatalf("bad mode accepted")
	}
	if _, err := toCommand(env(protocol.MsgSummon, "")); err == nil {
		t.Fatalf("summon without payload accepted")
	}
}
