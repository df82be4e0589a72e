package types

import (
	"time"
)

// Block is a block of the token network.
type Block struct {
	Height               uint64  `json:"height"`
	Hash                 string  `json:"hash"`
	Timestamp            int64   `json:"timestamp"`
	Miner                string  `json:"miner"`
	Size                 uint64  `json:"size"`
	TransactionCount     int     `json:"transactionCount"`
	TotalMneeTransferred float64 `json:"totalMneeTransferred"`
	// AvgTransferVolume is TotalMneeTransferred / TransactionCount
	AvgTransferVolume  float64 `json:"avgTransferVolume"`
	UniqueAddresses    int     `json:"uniqueAddresses"`
	LargestTransaction float64 `json:"largestTransaction"`
	TotalFee           float64 `json:"totalFee"`
	// AverageFee is TotalFee / TransactionCount
	AverageFee   float64  `json:"averageFee"`
	Transactions []string `json:"transactions"`
}

// Time returns the block timestamp as time.Time.
func (b Block) Time() time.Time {
	return MillisToTime(b.Timestamp)
}
