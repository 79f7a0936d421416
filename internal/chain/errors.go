package chain

import "errors"

// ErrGenesisBlockHasTransactions is a ValidationException in its own
// right, distinct from the wrapped BlockException family: a genesis
// block's problem is never "invalid per C4", it is "not a genesis block".
var ErrGenesisBlockHasTransactions = errors.New("genesis block carries ordinary transactions")

// GenesisBlockException wraps a BlockException produced while validating
// the root block of a tree.
type GenesisBlockException struct {
	Err error
}

func (e *GenesisBlockException) Error() string {
	return "genesis block validation failed: " + e.Err.Error()
}

func (e *GenesisBlockException) Unwrap() error { return e.Err }

// BlockValidationException wraps a BlockException produced while
// replaying a non-root block during Verify.
type BlockValidationException struct {
	Err error
}

func (e *BlockValidationException) Error() string {
	return "block validation failed: " + e.Err.Error()
}

func (e *BlockValidationException) Unwrap() error { return e.Err }
