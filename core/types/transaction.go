package types

import (
	"time"

	"github.com/pkg/errors"
)

// TxStatus is the confirmation state of a transaction.
type TxStatus string

// Transaction statuses
const (
	TxConfirmed TxStatus = "confirmed"
	TxPending   TxStatus = "pending"
	TxFailed    TxStatus = "failed"
)

// TxType is the kind of token movement a transaction performs.
type TxType string

// Transaction types
const (
	TxMint     TxType = "mint"
	TxBurn     TxType = "burn"
	TxTransfer TxType = "transfer"
)

// AllTxTypes lists every transaction type in a fixed order.
var AllTxTypes = []TxType{TxMint, TxBurn, TxTransfer}

// ParseTxType parses the string form of a transaction type.
func ParseTxType(s string) (TxType, error) {
	for _, t := range AllTxTypes {
		if string(t) == s {
			return t, nil
		}
	}
	return "", errors.Wrapf(ErrInvalidArgument, "unknown transaction type %q", s)
}

// Fee is the fee breakdown paid by a transaction. All parts are non-negative.
type Fee struct {
	MneeFee       float64 `json:"mneeFee"`
	MinerFee      float64 `json:"minerFee"`
	UtxoBuildCost float64 `json:"utxoBuildCost"`
	TransferCost  float64 `json:"transferCost"`
}

// Total returns the sum of all fee parts.
func (f Fee) Total() float64 {
	return f.MneeFee + f.MinerFee + f.UtxoBuildCost + f.TransferCost
}

// Transaction is a single token transaction.
type Transaction struct {
	Txid          string   `json:"txid"`
	BlockHeight   uint64   `json:"blockHeight"`
	Amount        float64  `json:"amount"`
	Timestamp     int64    `json:"timestamp"` // milliseconds since epoch
	From          []string `json:"from"`
	To            []string `json:"to"`
	Status        TxStatus `json:"status"`
	Type          TxType   `json:"type"`
	Fee           Fee      `json:"fee"`
	Confirmations uint64   `json:"confirmations"`
	// TimeBetweenTx is absent for the first generated transaction.
	TimeBetweenTx *float64 `json:"timeBetweenTx,omitempty"`
}

// Time returns the transaction timestamp as time.Time.
func (tx Transaction) Time() time.Time {
	return MillisToTime(tx.Timestamp)
}

// Involves returns whether addr is one of the senders or receivers.
func (tx Transaction) Involves(addr string) bool {
	for _, a := range tx.From {
		if a == addr {
			return true
		}
	}
	for _, a := range tx.To {
		if a == addr {
			return true
		}
	}
	return false
}

// MillisToTime converts milliseconds since epoch to time.Time.
func MillisToTime(ms int64) time.Time {
	return time.Unix(0, ms*int64(time.Millisecond))
}

// TimeToMillis converts t to milliseconds since epoch.
func TimeToMillis(t time.Time) int64 {
	return t.UnixNano() / int64(time.Millisecond)
}
