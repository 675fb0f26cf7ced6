package world

import (
	"github.com/Yiin/YARP/internal/persistence/snapshot"
)

// Snapshot captures every registered character for persistence.
func (w *World) Snapshot() *snapshot.SnapshotV1 {
	chars := w.chars.All()
	out := make([]snapshot.CharacterV1, 0, len(chars))
	for _, c := range chars {
		out = append(out, c.snapshotRecord())
	}
	return snapshot.New(out)
}

// Restore registers every character from a persisted snapshot.
func (w *World) Restore(s *snapshot.SnapshotV1) error {
	for _, rec := range s.Characters {
		if err := w.AdoptCharacter(characterFromRecord(rec)); err != nil {
			return err
		}
	}
	return nil
}

func (c *Character) snapshotRecord() snapshot.CharacterV1 {
	c.mu.Lock()
	defer c.mu.Unlock()
	rec := snapshot.CharacterV1{
		ID:             c.ID,
		OwnerAccountID: c.OwnerAccountID,
		Age:            c.Age,
		Model:          c.Model,
		LastLogin:      c.LastLogin,
		Wallet:         c.Wallet,
		Bank:           c.Bank,
		Health:         c.Health,
		Armour:         c.Armour,
		Hunger:         c.Hunger,
		Thirst:         c.Thirst,
		XP:             c.XP,
		Pos:            [3]float64{c.Pos.X, c.Pos.Y, c.Pos.Z},
		Heading:        c.Heading,
		Dimension:      c.Dimension,
		Weight:         c.Weight,
		EnterHandler:   c.EnterHandler,
		LeaveHandler:   c.LeaveHandler,
	}
	if len(c.Inventory) > 0 {
		rec.Inventory = map[string]int{}
		for k, v := range c.Inventory {
			rec.Inventory[k] = v
		}
	}
	if len(c.Weapons) > 0 {
		rec.Weapons = map[string]int{}
		for k, v := range c.Weapons {
			rec.Weapons[k] = v
		}
	}
	if len(c.Groups) > 0 {
		rec.Groups = append([]string(nil), c.Groups...)
	}
	if len(c.Skills) > 0 {
		rec.Skills = map[string]int{}
		for k, v := range c.Skills {
			rec.Skills[k] = v
		}
	}
	return rec
}

func characterFromRecord(rec snapshot.CharacterV1) *Character {
	c := &Character{
		ID:             rec.ID,
		OwnerAccountID: rec.OwnerAccountID,
		Age:            rec.Age,
		Model:          rec.Model,
		LastLogin:      rec.LastLogin,
		Wallet:         rec.Wallet,
		Bank:           rec.Bank,
		Health:         rec.Health,
		Armour:         rec.Armour,
		Hunger:         rec.Hunger,
		Thirst:         rec.Thirst,
		XP:             rec.XP,
		Pos:            Vec3{X: rec.Pos[0], Y: rec.Pos[1], Z: rec.Pos[2]},
		Heading:        rec.Heading,
		Dimension:      rec.Dimension,
		Weight:         rec.Weight,
		EnterHandler:   rec.EnterHandler,
		LeaveHandler:   rec.LeaveHandler,
	}
	if len(rec.Inventory) > 0 {
		c.Inventory = map[string]int{}
		for k, v := range rec.Inventory {
			if v > 0 {
				c.Inventory[k] = v
			}
		}
	}
	if len(rec.Weapons) > 0 {
		c.Weapons = map[string]int{}
		for k, v := range rec.Weapons {
			if v < 0 {
				v = 0
			}
			c.Weapons[k] = v
		}
	}
	if len(rec.Groups) > 0 {
		c.Groups = append([]string(nil), rec.Groups...)
	}
	if len(rec.Skills) > 0 {
		c.Skills = map[string]int{}
		for k, v := range rec.Skills {
			c.Skills[k] = v
		}
	}
	return c
}
