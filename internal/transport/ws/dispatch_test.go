package ws

import (
	"testing"

	"github.com/Yiin/YARP/internal/persistence/ledger"
	"github.com/Yiin/YARP/internal/protocol"
	"github.com/Yiin/YARP/internal/sim/catalogs"
	"github.com/Yiin/YARP/internal/sim/tuning"
	"github.com/Yiin/YARP/internal/sim/world"
)

func newTestServer(t *testing.T) (*Server, *world.World) {
	t.Helper()
	cats := catalogs.Build(
		[]catalogs.ItemDef{{ID: "WATER_BOTTLE", Category: "consumable", UnitWeight: 0.5}},
		nil, nil,
	)
	tune := tuning.Default()
	w := world.NewWorld(cats, tune, ledger.NewMemory(), world.NewHandlerRegistry(), nil)
	return NewServer(w, nil), w
}

func TestDispatch(t *testing.T) {
	s, w := newTestServer(t)
	c, err := w.NewCharacter("Alice", "acct_1")
	if err != nil {
		t.Fatalf("new character: %v", err)
	}
	if _, err := w.NewCharacter("Bob", "acct_2"); err != nil {
		t.Fatalf("new character: %v", err)
	}

	cases := []struct {
		name string
		act  protocol.ActMsg
		ok   bool
		code string
	}{
		{"deposit", protocol.ActMsg{Action: protocol.ActDeposit, Amount: 100}, true, ""},
		{"withdraw", protocol.ActMsg{Action: protocol.ActWithdraw, Amount: 50}, true, ""},
		{"overdraw", protocol.ActMsg{Action: protocol.ActWithdraw, Amount: 1_000_000}, false, protocol.ErrNoFunds},
		{"zero amount", protocol.ActMsg{Action: protocol.ActDeposit, Amount: 0}, false, protocol.ErrBadRequest},
		{"wallet pay", protocol.ActMsg{Action: protocol.ActWalletPay, Amount: 10}, true, ""},
		{"bank pay", protocol.ActMsg{Action: protocol.ActBankPay, Amount: 10}, true, ""},
		{"transfer", protocol.ActMsg{Action: protocol.ActTransfer, Amount: 10, Target: "Bob"}, true, ""},
		{"transfer to nobody", protocol.ActMsg{Action: protocol.ActTransfer, Amount: 10, Target: "Eve"}, false, protocol.ErrNotFound},
		{"transfer no target", protocol.ActMsg{Action: protocol.ActTransfer, Amount: 10}, false, protocol.ErrBadRequest},
		{"give item", protocol.ActMsg{Action: protocol.ActGiveItem, Item: "WATER_BOTTLE", Amount: 2}, true, ""},
		{"give unknown item", protocol.ActMsg{Action: protocol.ActGiveItem, Item: "GOLD_BAR", Amount: 1}, false, protocol.ErrNotFound},
		{"give too heavy", protocol.ActMsg{Action: protocol.ActGiveItem, Item: "WATER_BOTTLE", Amount: 10_000}, false, protocol.ErrOverweight},
		{"take item", protocol.ActMsg{Action: protocol.ActTakeItem, Item: "WATER_BOTTLE", Amount: 2}, true, ""},
		{"take missing item", protocol.ActMsg{Action: protocol.ActTakeItem, Item: "WATER_BOTTLE", Amount: 1}, false, protocol.ErrNoResource},
		{"unknown action", protocol.ActMsg{Action: "dance"}, false, protocol.ErrBadRequest},
	}
	for _, tc := range cases {
		ok, code := s.dispatch(c, tc.act)
		if ok != tc.ok || code != tc.code {
			t.Fatalf("%s: got (%v, %q), want (%v, %q)", tc.name, ok, code, tc.ok, tc.code)
		}
		if !protocol.IsKnownCode(code) {
			t.Fatalf("%s: unknown result code %q", tc.name, code)
		}
	}
}
