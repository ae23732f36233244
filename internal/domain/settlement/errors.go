package settlement

import "errors"

var (
	ErrSettlementNotFound       = errors.New("settlement not found")
	ErrSettlementHasPaidEntries = errors.New("settlement has paid financial entries")
)
