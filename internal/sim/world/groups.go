package world

import (
	"github.com/Yiin/YARP/internal/protocol"
)

// Group membership. A character holds each group at most once, and at most
// one group per declared type; joining a typed group replaces any held group
// of the same type.

// GiveGroup joins a group. Returns false when already a member.
func (c *Character) GiveGroup(groupID string) bool {
	c.mu.Lock()
	if c.hasGroupLocked(groupID) {
		c.mu.Unlock()
		return false
	}

	var effects []func()
	s := c.session
	g, known := c.w.cats.Groups.Defs[groupID]
	if known && g.Type != "" {
		if oldID, ok := c.groupByTypeLocked(g.Type); ok {
			c.removeGroupLocked(oldID)
			if s != nil {
				effects = append(effects, c.leaveEffects(oldID, s)...)
			}
		}
	}
	if known && s != nil {
		effects = append(effects, c.enterEffects(groupID, s)...)
	}
	c.Groups = append(c.Groups, groupID)
	c.mu.Unlock()

	for _, fn := range effects {
		fn()
	}
	return true
}

// TakeGroup leaves a group. Returns false when not a member.
func (c *Character) TakeGroup(groupID string) bool {
	c.mu.Lock()
	if !c.hasGroupLocked(groupID) {
		c.mu.Unlock()
		return false
	}
	s := c.session
	var effects []func()
	if _, known := c.w.cats.Groups.Defs[groupID]; known && s != nil {
		effects = c.leaveEffects(groupID, s)
	}
	c.removeGroupLocked(groupID)
	c.mu.Unlock()

	for _, fn := range effects {
		fn()
	}
	return true
}

// GetGroupByType returns the held group of the given type, if any.
func (c *Character) GetGroupByType(groupType string) (string, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.groupByTypeLocked(groupType)
}

// GetGroupsByTypes returns every held group whose type matches one of the
// given types, in membership order.
func (c *Character) GetGroupsByTypes(types []string) []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	var out []string
	for _, id := range c.Groups {
		g, ok := c.w.cats.Groups.Defs[id]
		if !ok {
			continue
		}
		for _, t := range types {
			if g.Type == t {
				out = append(out, id)
				break
			}
		}
	}
	return out
}

func (c *Character) HasGroup(id string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.hasGroupLocked(id)
}

func (c *Character) HasGroups(ids []string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, id := range ids {
		if !c.hasGroupLocked(id) {
			return false
		}
	}
	return true
}

// GroupList returns the memberships in insertion order.
func (c *Character) GroupList() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]string(nil), c.Groups...)
}

func (c *Character) hasGroupLocked(id string) bool {
	for _, g := range c.Groups {
		if g == id {
			return true
		}
	}
	return false
}

func (c *Character) groupByTypeLocked(groupType string) (string, bool) {
	for _, id := range c.Groups {
		if g, ok := c.w.cats.Groups.Defs[id]; ok && g.Type == groupType {
			return id, true
		}
	}
	return "", false
}

func (c *Character) removeGroupLocked(id string) {
	for i, g := range c.Groups {
		if g == id {
			c.Groups = append(c.Groups[:i], c.Groups[i+1:]...)
			return
		}
	}
}

func (c *Character) enterEffects(groupID string, s Session) []func() {
	g := c.w.cats.Groups.Defs[groupID]
	var out []func()
	if h := c.w.handlers.at(g.OnEnter); h != nil {
		out = append(out, func() { h(c, s) })
	}
	out = append(out, func() {
		s.Notify(protocol.EventCharacterJoinedGroup, map[string]any{"group": groupID})
	})
	return out
}

func (c *Character) leaveEffects(groupID string, s Session) []func() {
	g := c.w.cats.Groups.Defs[groupID]
	var out []func()
	if h := c.w.handlers.at(g.OnLeave); h != nil {
		out = append(out, func() { h(c, s) })
	}
	out = append(out, func() {
		s.Notify(protocol.EventCharacterLeftGroup, map[string]any{"group": groupID})
	})
	return out
}
