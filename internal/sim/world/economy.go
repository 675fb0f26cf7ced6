package world

import (
	"fmt"
	"time"

	"github.com/Yiin/YARP/internal/persistence/ledger"
	"github.com/Yiin/YARP/internal/protocol"
)

// Economy operations. Every Try* call either applies its full balance
// mutation together with its ledger record, or leaves all state unchanged
// and returns false.

// GiveMoney credits the wallet unconditionally. Administrative callers only;
// no ledger record.
func (c *Character) GiveMoney(amount int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.Wallet += amount
	c.pushAttrLocked(protocol.AttrWallet, c.Wallet)
}

// GiveBankMoney credits the bank unconditionally. No ledger record.
func (c *Character) GiveBankMoney(amount int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.Bank += amount
	c.pushAttrLocked(protocol.AttrBank, c.Bank)
}

// TryWalletPayment debits the wallet if the balance covers it. A spend, not
// a transfer; no ledger record.
func (c *Character) TryWalletPayment(amount int) bool {
	if amount < 0 {
		return false
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.walletPaymentLocked(amount)
}

func (c *Character) walletPaymentLocked(amount int) bool {
	if c.Wallet-amount < 0 {
		return false
	}
	c.Wallet -= amount
	c.pushAttrLocked(protocol.AttrWallet, c.Wallet)
	return true
}

// TryBankPayment debits the bank and records a Payment.
func (c *Character) TryBankPayment(amount int) bool {
	if amount <= 0 {
		return false
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.Bank-amount < 0 {
		return false
	}
	if err := c.appendLedger(ledger.Payment, amount, ""); err != nil {
		c.w.logf("bank payment by %s: %v", c.ID, err)
		return false
	}
	c.Bank -= amount
	c.pushAttrLocked(protocol.AttrBank, c.Bank)
	return true
}

// TryFullPayment pays from the wallet, withdrawing the shortfall from the
// bank first when the wallet alone cannot cover it.
func (c *Character) TryFullPayment(amount int) bool {
	if amount < 0 {
		return false
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.Wallet-amount >= 0 {
		return c.walletPaymentLocked(amount)
	}
	if !c.withdrawLocked(amount - c.Wallet) {
		return false
	}
	return c.walletPaymentLocked(amount)
}

// TryDeposit moves funds wallet -> bank and records a Deposit.
func (c *Character) TryDeposit(amount int) bool {
	if amount <= 0 {
		return false
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.Wallet-amount < 0 {
		return false
	}
	if err := c.appendLedger(ledger.Deposit, amount, ""); err != nil {
		c.w.logf("deposit by %s: %v", c.ID, err)
		return false
	}
	c.Wallet -= amount
	c.Bank += amount
	c.pushAttrLocked(protocol.AttrWallet, c.Wallet)
	c.pushAttrLocked(protocol.AttrBank, c.Bank)
	return true
}

// TryWithdraw moves funds bank -> wallet and records a Withdraw.
func (c *Character) TryWithdraw(amount int) bool {
	if amount <= 0 {
		return false
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.withdrawLocked(amount)
}

func (c *Character) withdrawLocked(amount int) bool {
	if amount <= 0 || c.Bank-amount < 0 {
		return false
	}
	if err := c.appendLedger(ledger.Withdraw, amount, ""); err != nil {
		c.w.logf("withdraw by %s: %v", c.ID, err)
		return false
	}
	c.Bank -= amount
	c.Wallet += amount
	c.pushAttrLocked(protocol.AttrWallet, c.Wallet)
	c.pushAttrLocked(protocol.AttrBank, c.Bank)
	return true
}

// TryTransfer moves bank funds to another character and records a single
// Transfer with both ids. Both entities are locked in id order for the whole
// check-and-mutate, so opposite-direction transfers cannot deadlock and
// neither side can be observed half-applied. A target without an attached
// session still receives the balance; only the HUD update is skipped.
func (c *Character) TryTransfer(target *Character, amount int) bool {
	if target == nil || amount <= 0 {
		return false
	}
	if target == c {
		return false
	}

	first, second := c, target
	if target.ID < c.ID {
		first, second = target, c
	}
	first.mu.Lock()
	defer first.mu.Unlock()
	second.mu.Lock()
	defer second.mu.Unlock()

	if c.Bank-amount < 0 {
		return false
	}
	if err := c.appendLedger(ledger.Transfer, amount, target.ID); err != nil {
		c.w.logf("transfer %s -> %s: %v", c.ID, target.ID, err)
		return false
	}
	c.Bank -= amount
	target.Bank += amount
	c.pushAttrLocked(protocol.AttrBank, c.Bank)
	target.pushAttrLocked(protocol.AttrBank, target.Bank)
	return true
}

// Balance returns the character's ledger history, when the configured ledger
// backend supports reconstruction.
func (c *Character) Balance() ([]ledger.Transaction, error) {
	h, ok := c.w.ledger.(interface {
		History(characterID string) ([]ledger.Transaction, error)
	})
	if !ok {
		return nil, fmt.Errorf("ledger backend has no history")
	}
	return h.History(c.ID)
}

func (c *Character) appendLedger(kind ledger.Kind, amount int, target string) error {
	if c.w.ledger == nil {
		return fmt.Errorf("no ledger configured")
	}
	return c.w.ledger.Append(ledger.Transaction{
		Kind:   kind,
		Amount: amount,
		Source: c.ID,
		Target: target,
		TS:     time.Now().UTC(),
	})
}
