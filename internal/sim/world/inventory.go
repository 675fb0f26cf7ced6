package world

import (
	"math"

	"github.com/Yiin/YARP/internal/sim/catalogs"
)

// Inventory operations are weight-constrained: the derived weight never
// exceeds the configured capacity, and entries never linger at zero.

// GiveItem adds amount units if the resulting load stays strictly under the
// weight capacity. Rejected wholesale otherwise; no partial quantity.
func (c *Character) GiveItem(item catalogs.ItemDef, amount int) bool {
	if amount <= 0 {
		return false
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.Weight+float64(amount)*item.UnitWeight >= c.w.maxWeight() {
		return false
	}
	c.Inventory[item.ID] += amount
	c.Weight = round1(c.Weight + float64(amount)*item.UnitWeight)
	return true
}

// TakeItem removes amount units. The entry is pruned when the count reaches
// zero.
func (c *Character) TakeItem(item catalogs.ItemDef, amount int) bool {
	if amount <= 0 {
		return false
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	held, ok := c.Inventory[item.ID]
	if !ok || held-amount < 0 {
		return false
	}
	c.Inventory[item.ID] = held - amount
	c.Weight = round1(c.Weight - float64(amount)*item.UnitWeight)
	if c.Inventory[item.ID] <= 0 {
		delete(c.Inventory, item.ID)
	}
	return true
}

func (c *Character) HasItem(id string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.Inventory[id] > 0
}

func (c *Character) HasItems(ids []string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, id := range ids {
		if c.Inventory[id] <= 0 {
			return false
		}
	}
	return true
}

func round1(x float64) float64 {
	return math.Round(x*10) / 10
}
