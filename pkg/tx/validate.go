package tx

import (
	"errors"
	"fmt"
)

// Structural validation errors. UTXO-aware checks (does the referenced
// output exist, does the signature authorize spending it, do values
// balance) live in internal/utxo, which has the state these checks need.
var (
	ErrNoInputs       = errors.New("transaction has no inputs")
	ErrNoOutputs      = errors.New("transaction has no outputs")
	ErrDuplicateInput = errors.New("duplicate input")
	ErrZeroOutput     = errors.New("output value is zero")
)

// Validate checks the transaction's structural shape: non-empty inputs and
// outputs, no input referencing the same output twice, no zero-value
// output. It does not touch the UTXO set.
func (t *Transaction) Validate() error {
	if len(t.Ins) == 0 {
		return ErrNoInputs
	}
	if len(t.Outs) == 0 {
		return ErrNoOutputs
	}

	seen := make(map[string]bool, len(t.Ins))
	for i, in := range t.Ins {
		key := fmt.Sprintf("%d:%s:%d", in.Ref.Source.Kind, in.Ref.Source.Hash, in.Ref.Index)
		if seen[key] {
			return fmt.Errorf("input %d: %w", i, ErrDuplicateInput)
		}
		seen[key] = true
	}

	for i, out := range t.Outs {
		if out.Value == 0 {
			return fmt.Errorf("output %d: %w", i, ErrZeroOutput)
		}
	}

	return nil
}

// Validate checks that the coinbase transaction carries at least one
// non-zero-value output.
func (c *CoinbaseTransaction) Validate() error {
	if len(c.Outs) == 0 {
		return ErrNoOutputs
	}
	for i, out := range c.Outs {
		if out.Value == 0 {
			return fmt.Errorf("output %d: %w", i, ErrZeroOutput)
		}
	}
	return nil
}
