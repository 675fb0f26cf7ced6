package world

import (
	"context"
	"time"

	"github.com/Yiin/YARP/internal/protocol"
)

// Vitals are clamped to 0..100; hunger/thirst overflow past the cap and
// starvation below zero bleed into health. XP saturates at 0 and the cap.

const xpCap = 1_000_000_000

func (c *Character) IncreaseHunger(amount int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if overflow := c.Hunger + amount - 100; overflow > 0 {
		c.Health -= overflow
	}
	c.Hunger += amount
	if c.Hunger > 100 {
		c.Hunger = 100
	}
	c.pushAttrLocked(protocol.AttrHunger, c.Hunger)
}

func (c *Character) DecreaseHunger(amount int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if overflow := c.Hunger - amount; overflow < 0 {
		c.Health += overflow
	}
	c.Hunger -= amount
	if c.Hunger < 0 {
		c.Hunger = 0
	}
	c.pushAttrLocked(protocol.AttrHunger, c.Hunger)
}

func (c *Character) IncreaseThirst(amount int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if overflow := c.Thirst + amount - 100; overflow > 0 {
		c.Health -= overflow
	}
	c.Thirst += amount
	if c.Thirst > 100 {
		c.Thirst = 100
	}
	c.pushAttrLocked(protocol.AttrThirst, c.Thirst)
}

func (c *Character) DecreaseThirst(amount int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if overflow := c.Thirst - amount; overflow < 0 {
		c.Health += overflow
	}
	c.Thirst -= amount
	if c.Thirst < 0 {
		c.Thirst = 0
	}
	c.pushAttrLocked(protocol.AttrThirst, c.Thirst)
}

func (c *Character) IncreaseXP(amount int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.XP += amount
	if c.XP > xpCap {
		c.XP = xpCap
	}
	c.pushAttrLocked(protocol.AttrXP, c.XP)
}

func (c *Character) DecreaseXP(amount int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.XP -= amount
	if c.XP < 0 {
		c.XP = 0
	}
	c.pushAttrLocked(protocol.AttrXP, c.XP)
}

// RunVitals drains hunger and thirst for every registered character at the
// tuning cadence until the context is cancelled.
func (w *World) RunVitals(ctx context.Context) {
	v := w.tune.Vitals
	if v.TickSecs <= 0 {
		return
	}
	w.runVitals(ctx, time.Duration(v.TickSecs)*time.Second)
}

func (w *World) runVitals(ctx context.Context, interval time.Duration) {
	v := w.tune.Vitals
	t := time.NewTicker(interval)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			for _, c := range w.chars.All() {
				if v.HungerPerTick > 0 {
					c.IncreaseHunger(v.HungerPerTick)
				}
				if v.ThirstPerTick > 0 {
					c.IncreaseThirst(v.ThirstPerTick)
				}
			}
		}
	}
}
