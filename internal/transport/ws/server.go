package ws

import (
	"context"
	"encoding/json"
	"log"
	"net"
	"net/http"
	"time"

	"github.com/gorilla/websocket"

	"github.com/Yiin/YARP/internal/protocol"
	"github.com/Yiin/YARP/internal/sim/world"
)

const sessionQueue = 64

type Server struct {
	world *world.World
	log   *log.Logger

	upgrader websocket.Upgrader
}

func NewServer(w *world.World, logger *log.Logger) *Server {
	return &Server{
		world: w,
		log:   logger,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  64 * 1024,
			WriteBufferSize: 64 * 1024,
			CheckOrigin:     func(r *http.Request) bool { return true }, // dev default
		},
	}
}

func (s *Server) Handler() http.HandlerFunc {
	return func(rw http.ResponseWriter, r *http.Request) {
		conn, err := s.upgrader.Upgrade(rw, r, nil)
		if err != nil {
			return
		}
		defer conn.Close()

		c, sess := s.handshake(conn, r)
		if c == nil {
			return
		}

		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		// Writer goroutine.
		go func() {
			for {
				select {
				case <-ctx.Done():
					return
				case b, ok := <-sess.out:
					if !ok {
						return
					}
					_ = conn.SetWriteDeadline(time.Now().Add(5 * time.Second))
					if err := conn.WriteMessage(websocket.TextMessage, b); err != nil {
						cancel()
						return
					}
				}
			}
		}()

		c.Enter()

		// Reader loop.
		for {
			_ = conn.SetReadDeadline(time.Now().Add(60 * time.Second))
			_, msg, err := conn.ReadMessage()
			if err != nil {
				cancel()
				break
			}
			base, err := protocol.DecodeBase(msg)
			if err != nil {
				continue
			}
			if base.Type != protocol.TypeAct {
				continue
			}
			var act protocol.ActMsg
			if err := json.Unmarshal(msg, &act); err != nil {
				sess.result("", false, protocol.ErrProtoBadRequest)
				continue
			}
			ok, code := s.dispatch(c, act)
			sess.result(act.Action, ok, code)
		}

		// Cleanup.
		c.Leave()
		c.DetachSession()
	}
}

// dispatch runs one engine operation on behalf of the connected character.
// The empty code means success.
func (s *Server) dispatch(c *world.Character, act protocol.ActMsg) (bool, string) {
	switch act.Action {
	case protocol.ActDeposit:
		if act.Amount <= 0 {
			return false, protocol.ErrBadRequest
		}
		if !c.TryDeposit(act.Amount) {
			return false, protocol.ErrNoFunds
		}
	case protocol.ActWithdraw:
		if act.Amount <= 0 {
			return false, protocol.ErrBadRequest
		}
		if !c.TryWithdraw(act.Amount) {
			return false, protocol.ErrNoFunds
		}
	case protocol.ActWalletPay:
		if act.Amount <= 0 {
			return false, protocol.ErrBadRequest
		}
		if !c.TryWalletPayment(act.Amount) {
			return false, protocol.ErrNoFunds
		}
	case protocol.ActBankPay:
		if act.Amount <= 0 {
			return false, protocol.ErrBadRequest
		}
		if !c.TryBankPayment(act.Amount) {
			return false, protocol.ErrNoFunds
		}
	case protocol.ActTransfer:
		if act.Amount <= 0 || act.Target == "" {
			return false, protocol.ErrBadRequest
		}
		target, err := s.world.Characters().At(act.Target)
		if err != nil {
			return false, protocol.ErrNotFound
		}
		if !c.TryTransfer(target, act.Amount) {
			return false, protocol.ErrNoFunds
		}
	case protocol.ActGiveItem:
		if act.Amount <= 0 {
			return false, protocol.ErrBadRequest
		}
		item, ok := s.world.Catalogs().Items.Defs[act.Item]
		if !ok {
			return false, protocol.ErrNotFound
		}
		if !c.GiveItem(item, act.Amount) {
			return false, protocol.ErrOverweight
		}
	case protocol.ActTakeItem:
		if act.Amount <= 0 {
			return false, protocol.ErrBadRequest
		}
		item, ok := s.world.Catalogs().Items.Defs[act.Item]
		if !ok {
			return false, protocol.ErrNotFound
		}
		if !c.TakeItem(item, act.Amount) {
			return false, protocol.ErrNoResource
		}
	default:
		return false, protocol.ErrBadRequest
	}
	return true, ""
}

func (s *Server) handshake(conn *websocket.Conn, r *http.Request) (*world.Character, *wsSession) {
	_ = conn.SetReadDeadline(time.Now().Add(5 * time.Second))
	_, msg, err := conn.ReadMessage()
	if err != nil {
		return nil, nil
	}

	base, err := protocol.DecodeBase(msg)
	if err != nil || base.Type != protocol.TypeHello {
		closeWith(conn, "expected HELLO")
		return nil, nil
	}

	var hello protocol.HelloMsg
	if err := json.Unmarshal(msg, &hello); err != nil {
		return nil, nil
	}
	if hello.ProtocolVersion != protocol.Version {
		closeWith(conn, "bad protocol_version")
		return nil, nil
	}
	if hello.CharacterName == "" {
		closeWith(conn, "missing character_name")
		return nil, nil
	}

	c, err := s.world.Characters().At(hello.CharacterName)
	if err != nil {
		c, err = s.world.NewCharacter(hello.CharacterName, hello.Account)
		if err != nil {
			closeWith(conn, "join failed")
			return nil, nil
		}
	}
	if host, _, splitErr := net.SplitHostPort(r.RemoteAddr); splitErr == nil {
		c.UpdateLastLogin(host)
	}

	sess := newSession(sessionQueue, s.log)
	c.AttachSession(sess)

	cats := s.world.Catalogs()
	welcome := protocol.WelcomeMsg{
		Type:            protocol.TypeWelcome,
		ProtocolVersion: protocol.Version,
		CharacterID:     c.ID,
		Catalogs: protocol.CatalogDigests{
			Items:   cats.Items.Digest,
			Weapons: cats.Weapons.Digest,
			Groups:  cats.Groups.Digest,
		},
	}
	if err := writeJSON(conn, welcome); err != nil {
		c.DetachSession()
		return nil, nil
	}

	if s.log != nil {
		s.log.Printf("character %s connected from %s", c.ID, r.RemoteAddr)
	}
	return c, sess
}

func closeWith(conn *websocket.Conn, reason string) {
	_ = conn.WriteControl(websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.ClosePolicyViolation, reason),
		time.Now().Add(time.Second))
}

func writeJSON(conn *websocket.Conn, v any) error {
	b, err := json.Marshal(v)
	if err != nil {
		return err
	}
	_ = conn.SetWriteDeadline(time.Now().Add(5 * time.Second))
	return conn.WriteMessage(websocket.TextMessage, b)
}
