package world

import (
	"fmt"
	"log"

	"github.com/Yiin/YARP/internal/persistence/ledger"
	"github.com/Yiin/YARP/internal/sim/catalogs"
	"github.com/Yiin/YARP/internal/sim/tuning"
)

// World wires the character registry to its collaborators: catalogs, tuning,
// the transaction ledger, and the lifecycle handler registry. Nothing here
// reaches for ambient globals; every engine operation resolves its
// dependencies through the owning world.
type World struct {
	cats     *catalogs.Catalogs
	tune     tuning.Tuning
	ledger   ledger.Appender
	handlers *HandlerRegistry
	chars    *Pool[*Character]
	log      *log.Logger
}

func NewWorld(cats *catalogs.Catalogs, tune tuning.Tuning, led ledger.Appender, handlers *HandlerRegistry, logger *log.Logger) *World {
	if handlers == nil {
		handlers = NewHandlerRegistry()
	}
	return &World{
		cats:     cats,
		tune:     tune,
		ledger:   led,
		handlers: handlers,
		chars:    NewPool[*Character](),
		log:      logger,
	}
}

func (w *World) Characters() *Pool[*Character] { return w.chars }
func (w *World) Catalogs() *catalogs.Catalogs  { return w.cats }
func (w *World) Tuning() tuning.Tuning         { return w.tune }
func (w *World) Handlers() *HandlerRegistry    { return w.handlers }

// NewCharacter creates a fresh character with tuning defaults and registers
// it.
func (w *World) NewCharacter(id, ownerAccountID string) (*Character, error) {
	if id == "" {
		return nil, fmt.Errorf("new character: empty id")
	}
	c := &Character{
		w:              w,
		ID:             id,
		OwnerAccountID: ownerAccountID,
		Wallet:         w.tune.StartingWallet,
		Bank:           w.tune.StartingBank,
		Health:         100,
		Pos: Vec3{
			X: w.tune.FirstSpawn[0],
			Y: w.tune.FirstSpawn[1],
			Z: w.tune.FirstSpawn[2],
		},
		Heading: w.tune.FirstHeading,
	}
	c.initDefaults()
	if err := w.chars.Register(c); err != nil {
		return nil, err
	}
	return c, nil
}

// AdoptCharacter registers a character restored from persistence.
func (w *World) AdoptCharacter(c *Character) error {
	c.w = w
	c.initDefaults()
	return w.chars.Register(c)
}

// RemoveCharacter deregisters; the character's state is expected to be
// flushed to storage by the caller first.
func (w *World) RemoveCharacter(id string) bool {
	return w.chars.Remove(id)
}

func (w *World) maxWeight() float64 { return w.tune.MaxWeight }

func (w *World) logf(format string, args ...any) {
	if w.log != nil {
		w.log.Printf(format, args...)
	}
}
