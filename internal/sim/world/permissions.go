package world

import (
	"strconv"
	"strings"
)

// Permission expressions come in four forms, keyed by a leading sigil:
//
//	#itemID.<op><n>   held item count comparison (0 if absent)
//	@skillID.<op><n>  skill level comparison
//	$attr.<op><n>     numeric character attribute comparison
//	name              capability resolved through group membership
//
// where <op> is '>' or '<' and anything else means equality.
//
// Capability resolution scans held groups in membership order. A group's own
// list can grant ("*" or the name), revoke ("-name"), or reinstate ("+name");
// its one-level inherited parents are scanned only while the capability is
// still ungranted or revoked without reinstatement. Scan order is load
// bearing: conflicting sigils across parents must resolve the same way every
// time. A final revoke without reinstatement forces the result false.
func (c *Character) HasPermission(permission string) bool {
	if permission == "" {
		return false
	}
	switch permission[0] {
	case '#':
		id, op, n, ok := splitPredicate(permission[1:])
		if !ok {
			return false
		}
		return compare(float64(c.InventoryCount(id)), op, n)
	case '@':
		id, op, n, ok := splitPredicate(permission[1:])
		if !ok {
			return false
		}
		return compare(float64(c.skillLevel(id)), op, n)
	case '$':
		name, op, n, ok := splitPredicate(permission[1:])
		if !ok {
			return false
		}
		v, present := c.attributeValue(name)
		if !present {
			return false
		}
		return compare(v, op, n)
	}
	return c.resolveCapability(permission)
}

// HasPermissions reports whether every expression resolves true,
// short-circuiting on the first false.
func (c *Character) HasPermissions(permissions []string) bool {
	for _, p := range permissions {
		if !c.HasPermission(p) {
			return false
		}
	}
	return true
}

func (c *Character) resolveCapability(permission string) bool {
	c.mu.Lock()
	groups := append([]string(nil), c.Groups...)
	c.mu.Unlock()

	granted := false
	revoked := false
	reinstated := false

	scan := func(perms []string) {
		for _, p := range perms {
			switch p {
			case "*", permission:
				granted = true
			case "-" + permission:
				revoked = true
			case "+" + permission:
				reinstated = true
			}
		}
	}

	defs := c.w.cats.Groups.Defs
	for _, id := range groups {
		g, ok := defs[id]
		if !ok {
			continue
		}
		scan(g.Permissions)
		if !granted || (revoked && !reinstated) {
			for _, inh := range g.Inherits {
				parent, ok := defs[inh]
				if !ok {
					continue
				}
				scan(parent.Permissions)
			}
		}
	}

	if revoked && !reinstated {
		return false
	}
	return granted
}

// splitPredicate parses "name.<op><n>". The op defaults to '=' when the
// first character after the dot is not a comparison sigil.
func splitPredicate(expr string) (name string, op byte, n float64, ok bool) {
	dot := strings.IndexByte(expr, '.')
	if dot <= 0 || dot == len(expr)-1 {
		return "", 0, 0, false
	}
	name = expr[:dot]
	rest := expr[dot+1:]
	switch rest[0] {
	case '>', '<', '=':
		op = rest[0]
		rest = rest[1:]
	default:
		op = '='
	}
	v, err := strconv.ParseFloat(rest, 64)
	if err != nil {
		return "", 0, 0, false
	}
	return name, op, v, true
}

func compare(v float64, op byte, n float64) bool {
	switch op {
	case '>':
		return v > n
	case '<':
		return v < n
	default:
		return v == n
	}
}

func (c *Character) skillLevel(id string) int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.Skills[id]
}

// attributeValue exposes the numeric fields a $attr predicate may reference.
func (c *Character) attributeValue(name string) (float64, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	switch name {
	case "wallet":
		return float64(c.Wallet), true
	case "bank":
		return float64(c.Bank), true
	case "health":
		return float64(c.Health), true
	case "armour":
		return float64(c.Armour), true
	case "hunger":
		return float64(c.Hunger), true
	case "thirst":
		return float64(c.Thirst), true
	case "xp":
		return float64(c.XP), true
	case "weight":
		return c.Weight, true
	case "age":
		return float64(c.Age), true
	case "heading":
		return c.Heading, true
	case "dimension":
		return float64(c.Dimension), true
	}
	return 0, false
}
