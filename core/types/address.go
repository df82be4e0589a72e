package types

import (
	"strings"

	"github.com/pkg/errors"
)

// Direction tells whether an address received or sent an amount.
type Direction string

// Directions
const (
	DirectionIn  Direction = "in"
	DirectionOut Direction = "out"
)

// AddressTransaction is one step of an address history together with the
// balance right after it.
type AddressTransaction struct {
	Txid           string    `json:"txid"`
	Type           Direction `json:"type"`
	Amount         float64   `json:"amount"`
	Timestamp      int64     `json:"timestamp"`
	RunningBalance float64   `json:"runningBalance"`
	Counterparty   string    `json:"counterparty"`
}

// Signed returns the amount with the sign of its direction.
func (at AddressTransaction) Signed() float64 {
	if at.Type == DirectionOut {
		return -at.Amount
	}
	return at.Amount
}

// Address is the detail of an address. Balance equals the running balance
// of the last history entry.
type Address struct {
	Address          string               `json:"address"`
	InitialBalance   float64              `json:"initialBalance"`
	Balance          float64              `json:"balance"`
	FirstSeen        int64                `json:"firstSeen"`
	LastActivity     int64                `json:"lastActivity"`
	TransactionCount int                  `json:"transactionCount"`
	TotalSent        float64              `json:"totalSent"`
	TotalReceived    float64              `json:"totalReceived"`
	Transactions     []AddressTransaction `json:"transactions"`
}

// Replay walks the history from the initial balance and returns the balance
// after every step. The balance is floored at zero after each step.
func (a Address) Replay() []float64 {
	balances := make([]float64, 0, len(a.Transactions))
	balance := a.InitialBalance
	for _, tx := range a.Transactions {
		balance += tx.Signed()
		if balance < 0 {
			balance = 0
		}
		balances = append(balances, balance)
	}
	return balances
}

// Holder is an entry of the token holder ranking.
type Holder struct {
	Rank               int     `json:"rank"`
	Address            string  `json:"address"`
	Balance            float64 `json:"balance"`
	PercentageOfSupply float64 `json:"percentageOfSupply"`
	TransactionCount   int     `json:"transactionCount"`
}

const (
	// AddressLength is the length of an address string.
	AddressLength = 34
	// AddressPrefix is the leading character of every address.
	AddressPrefix = '1'
	// AddressAlphabet is the alphabet of the characters following the prefix.
	AddressAlphabet = "123456789ABCDEFGHJKLMNPQRSTUVWXYZabcdefghijkmnopqrstuvwxyz"
	// TxidLength is the length of a transaction id or block hash.
	TxidLength = 64
	// HexAlphabet is the alphabet of transaction ids.
	HexAlphabet = "0123456789abcdef"
)

// ValidateAddress checks that s is a syntactically valid address.
func ValidateAddress(s string) error {
	if len(s) != AddressLength {
		return errors.Wrapf(ErrInvalidArgument, "address length %d, expect %d", len(s), AddressLength)
	}
	if s[0] != AddressPrefix {
		return errors.Wrapf(ErrInvalidArgument, "address must start with %q", AddressPrefix)
	}
	if !onlyFrom(s[1:], AddressAlphabet) {
		return errors.Wrap(ErrInvalidArgument, "address contains characters outside the alphabet")
	}
	return nil
}

// ValidateTxid checks that s is a syntactically valid transaction id.
func ValidateTxid(s string) error {
	if len(s) != TxidLength {
		return errors.Wrapf(ErrInvalidArgument, "txid length %d, expect %d", len(s), TxidLength)
	}
	if !onlyFrom(s, HexAlphabet) {
		return errors.Wrap(ErrInvalidArgument, "txid must be lowercase hex")
	}
	return nil
}

func onlyFrom(s, alphabet string) bool {
	for _, c := range s {
		if !strings.ContainsRune(alphabet, c) {
			return false
		}
	}
	return true
}
