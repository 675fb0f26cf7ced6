package catalogs

import (
	"crypto/sha256"
	"embed"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

//go:embed schemas/*.json
var schemaFS embed.FS

type Catalogs struct {
	Items   ItemCatalog
	Weapons WeaponCatalog
	Groups  GroupCatalog
}

type ItemCatalog struct {
	Defs   map[string]ItemDef
	Digest string
}

type ItemDef struct {
	ID         string  `json:"id"`
	Category   string  `json:"category,omitempty"`
	UnitWeight float64 `json:"unit_weight"`
}

type WeaponCatalog struct {
	Defs   map[string]WeaponDef
	Digest string

	// byAmmo maps an ammo item id to the weapon it feeds.
	byAmmo map[string]string
}

type WeaponDef struct {
	ID       string `json:"id"`
	Category string `json:"category,omitempty"`
	AmmoID   string `json:"ammo_id,omitempty"`
}

type GroupCatalog struct {
	Defs   map[string]GroupDef
	Digest string
}

// GroupDef is one named permission bundle. Permissions entries are either a
// bare capability name, "*", or "+name"/"-name" for explicit re-grant/revoke.
// Inherits is one level deep and is not expanded recursively.
type GroupDef struct {
	ID          string   `json:"id"`
	Type        string   `json:"type,omitempty"`
	Permissions []string `json:"permissions,omitempty"`
	Inherits    []string `json:"inherits,omitempty"`
	OnEnter     string   `json:"on_enter,omitempty"`
	OnLeave     string   `json:"on_leave,omitempty"`
}

func Load(configDir string) (*Catalogs, error) {
	var c Catalogs

	if err := loadItems(filepath.Join(configDir, "items.json"), &c.Items); err != nil {
		return nil, err
	}
	if err := loadWeapons(filepath.Join(configDir, "weapons.json"), &c.Weapons); err != nil {
		return nil, err
	}
	if err := loadGroups(filepath.Join(configDir, "groups.json"), &c.Groups); err != nil {
		return nil, err
	}

	return &c, nil
}

// Build assembles catalogs from in-memory defs, bypassing files and digests.
// Deterministic test setups and embedded tooling use this instead of Load.
func Build(items []ItemDef, weapons []WeaponDef, groups []GroupDef) *Catalogs {
	c := &Catalogs{
		Items:   ItemCatalog{Defs: map[string]ItemDef{}},
		Weapons: WeaponCatalog{Defs: map[string]WeaponDef{}, byAmmo: map[string]string{}},
		Groups:  GroupCatalog{Defs: map[string]GroupDef{}},
	}
	for _, d := range items {
		c.Items.Defs[d.ID] = d
	}
	for _, d := range weapons {
		if d.AmmoID == "" && strings.HasPrefix(d.ID, "WEAPON_") {
			d.AmmoID = "AMMO_" + strings.TrimPrefix(d.ID, "WEAPON_")
		}
		c.Weapons.Defs[d.ID] = d
		if d.AmmoID != "" {
			c.Weapons.byAmmo[d.AmmoID] = d.ID
		}
	}
	for _, d := range groups {
		c.Groups.Defs[d.ID] = d
	}
	return c
}

// WeaponForAmmo resolves an ammo item id to its weapon id.
func (c *WeaponCatalog) WeaponForAmmo(ammoID string) (string, bool) {
	id, ok := c.byAmmo[ammoID]
	return id, ok
}

func sha256Hex(b []byte) string {
	sum := sha256.Sum256(b)
	return hex.EncodeToString(sum[:])
}

func compileSchema(name string) (*jsonschema.Schema, error) {
	raw, err := schemaFS.ReadFile("schemas/" + name)
	if err != nil {
		return nil, err
	}
	return jsonschema.CompileString(name, string(raw))
}

func validate(raw []byte, schemaName string) error {
	s, err := compileSchema(schemaName)
	if err != nil {
		return err
	}
	var v any
	if err := json.Unmarshal(raw, &v); err != nil {
		return err
	}
	return s.Validate(v)
}

func loadItems(path string, out *ItemCatalog) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	out.Digest = sha256Hex(raw)

	if err := validate(raw, "items.schema.json"); err != nil {
		return fmt.Errorf("items.json: %w", err)
	}
	var defs []ItemDef
	if err := json.Unmarshal(raw, &defs); err != nil {
		return fmt.Errorf("items.json: %w", err)
	}
	out.Defs = map[string]ItemDef{}
	for _, d := range defs {
		if _, ok := out.Defs[d.ID]; ok {
			return fmt.Errorf("items.json: duplicate id %q", d.ID)
		}
		out.Defs[d.ID] = d
	}
	return nil
}

func loadWeapons(path string, out *WeaponCatalog) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	out.Digest = sha256Hex(raw)

	if err := validate(raw, "weapons.schema.json"); err != nil {
		return fmt.Errorf("weapons.json: %w", err)
	}
	var defs []WeaponDef
	if err := json.Unmarshal(raw, &defs); err != nil {
		return fmt.Errorf("weapons.json: %w", err)
	}
	out.Defs = map[string]WeaponDef{}
	out.byAmmo = map[string]string{}
	for _, d := range defs {
		if _, ok := out.Defs[d.ID]; ok {
			return fmt.Errorf("weapons.json: duplicate id %q", d.ID)
		}
		if d.AmmoID == "" && strings.HasPrefix(d.ID, "WEAPON_") {
			d.AmmoID = "AMMO_" + strings.TrimPrefix(d.ID, "WEAPON_")
		}
		out.Defs[d.ID] = d
		if d.AmmoID != "" {
			out.byAmmo[d.AmmoID] = d.ID
		}
	}
	return nil
}

func loadGroups(path string, out *GroupCatalog) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	out.Digest = sha256Hex(raw)

	if err := validate(raw, "groups.schema.json"); err != nil {
		return fmt.Errorf("groups.json: %w", err)
	}
	var defs []GroupDef
	if err := json.Unmarshal(raw, &defs); err != nil {
		return fmt.Errorf("groups.json: %w", err)
	}
	out.Defs = map[string]GroupDef{}
	for _, d := range defs {
		if _, ok := out.Defs[d.ID]; ok {
			return fmt.Errorf("groups.json: duplicate id %q", d.ID)
		}
		out.Defs[d.ID] = d
	}
	return nil
}

// IDs returns catalog ids in sorted order (stable listings for admin tooling).
func (c *ItemCatalog) IDs() []string   { return sortedKeysItem(c.Defs) }
func (c *GroupCatalog) IDs() []string  { return sortedKeysGroup(c.Defs) }
func (c *WeaponCatalog) IDs() []string { return sortedKeysWeapon(c.Defs) }

func sortedKeysItem(m map[string]ItemDef) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

func sortedKeysWeapon(m map[string]WeaponDef) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

func sortedKeysGroup(m map[string]GroupDef) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
