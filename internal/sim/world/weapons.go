package world

import (
	"github.com/Yiin/YARP/internal/protocol"
	"github.com/Yiin/YARP/internal/sim/catalogs"
)

// Weapon operations. A held weapon may legitimately sit at 0 ammo; presence
// and ammo count are tracked separately from inventory weight.

// GiveWeapon idempotently initializes the weapon's ammo entry, adds ammo,
// and signals the owning session to equip.
func (c *Character) GiveWeapon(weapon catalogs.WeaponDef, ammo int) {
	if ammo < 0 {
		ammo = 0
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, ok := c.Weapons[weapon.ID]; !ok {
		c.Weapons[weapon.ID] = 0
	}
	c.Weapons[weapon.ID] += ammo
	if c.session != nil {
		c.session.GrantWeapon(weapon.ID, c.Weapons[weapon.ID])
		c.session.Notify(protocol.EventEquipWeapon, map[string]any{"weapon": weapon.ID})
	}
}

// TakeWeapon removes the weapon entry entirely and signals unequip.
func (c *Character) TakeWeapon(weapon catalogs.WeaponDef) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.Weapons, weapon.ID)
	if c.session != nil {
		c.session.RevokeWeapon(weapon.ID)
		c.session.Notify(protocol.EventUnequipWeapon, map[string]any{"weapon": weapon.ID})
	}
}

// GiveWeaponAmmo adds ammo to a held weapon.
func (c *Character) GiveWeaponAmmo(weaponID string, amount int) {
	c.adjustAmmo(weaponID, amount)
}

// TakeWeaponAmmo removes ammo from a held weapon, clamped at zero.
func (c *Character) TakeWeaponAmmo(weaponID string, amount int) {
	c.adjustAmmo(weaponID, -amount)
}

// GiveAmmo resolves an ammo item id to its weapon before adding.
func (c *Character) GiveAmmo(ammoID string, amount int) {
	if weaponID, ok := c.w.cats.Weapons.WeaponForAmmo(ammoID); ok {
		c.adjustAmmo(weaponID, amount)
	}
}

// TakeAmmo resolves an ammo item id to its weapon before removing.
func (c *Character) TakeAmmo(ammoID string, amount int) {
	if weaponID, ok := c.w.cats.Weapons.WeaponForAmmo(ammoID); ok {
		c.adjustAmmo(weaponID, -amount)
	}
}

func (c *Character) adjustAmmo(weaponID string, delta int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	held, ok := c.Weapons[weaponID]
	if !ok {
		return
	}
	held += delta
	if held < 0 {
		held = 0
	}
	c.Weapons[weaponID] = held
	if c.session != nil {
		c.session.SetWeaponAmmo(weaponID, held)
	}
}

// HasWeapon reports presence; the ammo count may be zero.
func (c *Character) HasWeapon(id string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	_, ok := c.Weapons[id]
	return ok
}

func (c *Character) HasWeapons(ids []string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, id := range ids {
		if _, ok := c.Weapons[id]; !ok {
			return false
		}
	}
	return true
}

// WeaponAmmo returns the ammo count for a held weapon.
func (c *Character) WeaponAmmo(id string) (int, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	n, ok := c.Weapons[id]
	return n, ok
}
