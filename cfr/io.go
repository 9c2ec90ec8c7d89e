package cfr

import (
	"encoding/gob"
	"io"

	"github.com/jrhodes/go-equilibrium/internal/policy"
)

// MarshalTo serializes this PolicyTable, including all accumulated
// regrets and strategy sums, so a training run can be checkpointed
// and resumed.
func (pt *PolicyTable) MarshalTo(w io.Writer) error {
	enc := gob.NewEncoder(w)
	if err := enc.Encode(pt.params); err != nil {
		return err
	}

	if err := enc.Encode(pt.iter); err != nil {
		return err
	}

	return enc.Encode(pt.policies)
}

// LoadPolicyTable deserializes a PolicyTable saved with MarshalTo.
func LoadPolicyTable(r io.Reader) (*PolicyTable, error) {
	dec := gob.NewDecoder(r)
	pt := &PolicyTable{}
	if err := dec.Decode(&pt.params); err != nil {
		return nil, err
	}

	if err := dec.Decode(&pt.iter); err != nil {
		return nil, err
	}

	pt.policies = make(map[string]*policy.Policy)
	if err := dec.Decode(&pt.policies); err != nil {
		return nil, err
	}

	return pt, nil
}
