// Package snapshot persists character profiles as versioned, zstd-compressed
// JSON. Profiles are loaded at startup and flushed on deregistration or
// shutdown.
package snapshot

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/klauspost/compress/zstd"
)

const version = 1

type Header struct {
	Version int    `json:"version"`
	SavedAt string `json:"saved_at"`
}

type SnapshotV1 struct {
	Header Header `json:"header"`

	Characters []CharacterV1 `json:"characters"`
}

type CharacterV1 struct {
	ID             string `json:"id"`
	OwnerAccountID string `json:"owner_account_id"`

	Age       int    `json:"age,omitempty"`
	Model     string `json:"model,omitempty"`
	LastLogin string `json:"last_login,omitempty"`

	Wallet int `json:"wallet"`
	Bank   int `json:"bank"`

	Health int `json:"health"`
	Armour int `json:"armour"`
	Hunger int `json:"hunger"`
	Thirst int `json:"thirst"`
	XP     int `json:"xp"`

	Pos       [3]float64 `json:"pos"`
	Heading   float64    `json:"heading"`
	Dimension int        `json:"dimension"`
	Weight    float64    `json:"weight"`

	Inventory map[string]int `json:"inventory,omitempty"`
	Weapons   map[string]int `json:"weapons,omitempty"`
	Groups    []string       `json:"groups,omitempty"`
	Skills    map[string]int `json:"skills,omitempty"`

	EnterHandler string `json:"enter_handler,omitempty"`
	LeaveHandler string `json:"leave_handler,omitempty"`
}

func New(characters []CharacterV1) *SnapshotV1 {
	return &SnapshotV1{
		Header: Header{
			Version: version,
			SavedAt: time.Now().UTC().Format(time.RFC3339),
		},
		Characters: characters,
	}
}

// Save writes atomically: a temp file in the same directory, then rename.
func Save(path string, s *SnapshotV1) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	tmp := path + ".tmp"
	f, err := os.Create(tmp)
	if err != nil {
		return err
	}
	enc, err := zstd.NewWriter(f)
	if err != nil {
		_ = f.Close()
		return err
	}
	if err := json.NewEncoder(enc).Encode(s); err != nil {
		_ = enc.Close()
		_ = f.Close()
		return err
	}
	if err := enc.Close(); err != nil {
		_ = f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	return os.Rename(tmp, path)
}

func Load(path string) (*SnapshotV1, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	dec, err := zstd.NewReader(f)
	if err != nil {
		return nil, err
	}
	defer dec.Close()

	var s SnapshotV1
	if err := json.NewDecoder(dec).Decode(&s); err != nil {
		return nil, err
	}
	if s.Header.Version != version {
		return nil, fmt.Errorf("unsupported snapshot version %d", s.Header.Version)
	}
	return &s, nil
}
