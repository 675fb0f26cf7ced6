package world

import (
	"fmt"
	"sync"
	"time"

	"github.com/Yiin/YARP/internal/protocol"
)

// Character is a player's persistent in-game persona. All mutation goes
// through the engine operations, which serialize on mu; collaborators must
// not write fields directly.
type Character struct {
	mu sync.Mutex
	w  *World

	ID             string
	OwnerAccountID string

	Age       int
	Model     string
	LastLogin string

	Wallet int
	Bank   int

	Health int
	Armour int
	Hunger int
	Thirst int
	XP     int

	Pos       Vec3
	Heading   float64
	Dimension int

	// Weight is derived from the inventory, rounded to one decimal.
	Weight float64

	Inventory map[string]int
	Weapons   map[string]int
	Groups    []string
	Skills    map[string]int

	// Named lifecycle handlers, resolved through the world's registry.
	EnterHandler string
	LeaveHandler string

	session Session
}

const defaultModel = "mp_m_freemode_01"

func (c *Character) EntityID() string     { return c.ID }
func (c *Character) EntityDimension() int { c.mu.Lock(); defer c.mu.Unlock(); return c.Dimension }
func (c *Character) EntityPosition() Vec3 { c.mu.Lock(); defer c.mu.Unlock(); return c.Pos }

func (c *Character) initDefaults() {
	if c.Model == "" {
		c.Model = defaultModel
	}
	if c.Age == 0 {
		c.Age = 18
	}
	if c.Inventory == nil {
		c.Inventory = map[string]int{}
	}
	if c.Weapons == nil {
		c.Weapons = map[string]int{}
	}
	if c.Skills == nil {
		c.Skills = map[string]int{}
	}
}

// AttachSession binds the live connection. The session layer calls this
// before Enter.
func (c *Character) AttachSession(s Session) {
	c.mu.Lock()
	c.session = s
	c.mu.Unlock()
}

func (c *Character) DetachSession() {
	c.mu.Lock()
	c.session = nil
	c.mu.Unlock()
}

// Enter runs the character's enter handler and every held group's enter side
// effect, then pushes the full HUD state to the session.
func (c *Character) Enter() {
	c.mu.Lock()
	s := c.session
	enter := c.EnterHandler
	groups := append([]string(nil), c.Groups...)
	c.mu.Unlock()

	if h := c.w.handlers.at(enter); h != nil {
		h(c, s)
	}
	for _, id := range groups {
		g, ok := c.w.cats.Groups.Defs[id]
		if !ok {
			continue
		}
		if h := c.w.handlers.at(g.OnEnter); h != nil {
			h(c, s)
		}
		if s != nil {
			s.Notify(protocol.EventCharacterJoinedGroup, map[string]any{"group": id})
		}
	}
	c.PushState()
}

// Leave runs the character's leave handler and every held group's leave side
// effect. The session layer calls this on detach.
func (c *Character) Leave() {
	c.mu.Lock()
	s := c.session
	leave := c.LeaveHandler
	groups := append([]string(nil), c.Groups...)
	c.mu.Unlock()

	if h := c.w.handlers.at(leave); h != nil {
		h(c, s)
	}
	for _, id := range groups {
		g, ok := c.w.cats.Groups.Defs[id]
		if !ok {
			continue
		}
		if h := c.w.handlers.at(g.OnLeave); h != nil {
			h(c, s)
		}
		if s != nil {
			s.Notify(protocol.EventCharacterLeftGroup, map[string]any{"group": id})
		}
	}
}

// PushState replicates every HUD attribute to the attached session.
func (c *Character) PushState() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.pushAttrLocked(protocol.AttrWallet, c.Wallet)
	c.pushAttrLocked(protocol.AttrBank, c.Bank)
	c.pushAttrLocked(protocol.AttrHunger, c.Hunger)
	c.pushAttrLocked(protocol.AttrThirst, c.Thirst)
	c.pushAttrLocked(protocol.AttrXP, c.XP)
}

func (c *Character) pushAttrLocked(key string, value any) {
	if c.session != nil {
		c.session.SetAttribute(key, value)
	}
}

func (c *Character) UpdateLastLogin(ip string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.LastLogin = fmt.Sprintf("%s %s", ip, time.Now().UTC().Format(time.RFC3339))
}

// SetPosition moves the character (teleports, spawns). Dimension partitions
// spatial visibility.
func (c *Character) SetPosition(pos Vec3, heading float64, dimension int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.Pos = pos
	c.Heading = heading
	c.Dimension = dimension
}

// InventoryCount returns the held count of one item (0 if absent).
func (c *Character) InventoryCount(itemID string) int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.Inventory[itemID]
}

// CurrentWeight returns the derived inventory weight.
func (c *Character) CurrentWeight() float64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.Weight
}

// Balances returns wallet and bank atomically.
func (c *Character) Balances() (wallet, bank int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.Wallet, c.Bank
}
