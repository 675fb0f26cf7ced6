package protocol

// HELLO (client -> server)
type HelloMsg struct {
	Type            string `json:"type"`
	ProtocolVersion string `json:"protocol_version"`
	CharacterName   string `json:"character_name"`
	Account         string `json:"account,omitempty"`
}

// WELCOME (server -> client)
type WelcomeMsg struct {
	Type            string         `json:"type"`
	ProtocolVersion string         `json:"protocol_version"`
	CharacterID     string         `json:"character_id"`
	Catalogs        CatalogDigests `json:"catalogs"`
}

type CatalogDigests struct {
	Items   string `json:"items_digest"`
	Weapons string `json:"weapons_digest"`
	Groups  string `json:"groups_digest"`
}

// ATTR (server -> client): one HUD attribute update.
type AttrMsg struct {
	Type  string `json:"type"`
	Key   string `json:"key"`
	Value any    `json:"value"`
}

// EVENT (server -> client)
type EventMsg struct {
	Type    string         `json:"type"`
	Name    string         `json:"name"`
	Payload map[string]any `json:"payload,omitempty"`
}

type WeaponGrantMsg struct {
	Type   string `json:"type"`
	Weapon string `json:"weapon"`
	Ammo   int    `json:"ammo"`
}

type WeaponRevokeMsg struct {
	Type   string `json:"type"`
	Weapon string `json:"weapon"`
}

type WeaponAmmoMsg struct {
	Type   string `json:"type"`
	Weapon string `json:"weapon"`
	Ammo   int    `json:"ammo"`
}

// ACT (client -> server): one engine operation request.
type ActMsg struct {
	Type   string `json:"type"`
	Action string `json:"action"`
	Amount int    `json:"amount,omitempty"`
	Target string `json:"target,omitempty"`
	Item   string `json:"item,omitempty"`
	Weapon string `json:"weapon,omitempty"`
	Group  string `json:"group,omitempty"`
}

// Actions accepted over the wire.
const (
	ActDeposit   = "deposit"
	ActWithdraw  = "withdraw"
	ActTransfer  = "transfer"
	ActWalletPay = "wallet_pay"
	ActBankPay   = "bank_pay"
	ActGiveItem  = "give_item"
	ActTakeItem  = "take_item"
)

// RESULT (server -> client)
type ResultMsg struct {
	Type   string `json:"type"`
	Action string `json:"action"`
	OK     bool   `json:"ok"`
	Code   string `json:"code,omitempty"`
}
