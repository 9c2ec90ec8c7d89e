package minimax

import (
	"github.com/pkg/errors"

	"github.com/jrhodes/go-equilibrium/game"
)

// VerifyCanonical checks that canonicalization commutes with Apply
// for every legal action of st: canonicalize(apply(s, a)) must equal
// canonicalize(apply(canonicalize(s), T(a))). If the check fails the
// declared symmetry group is unsound and memoized values would be
// attributed to the wrong orbit.
//
// rebuild constructs the representative state for a canonical key; it
// is game-specific because keys are game-specific encodings.
func VerifyCanonical(st Symmetric, rebuild func(key uint64) (Symmetric, error)) error {
	if st.IsTerminal() {
		return nil
	}

	key, t := st.Canonicalize()
	rep, err := rebuild(key)
	if err != nil {
		return err
	}

	if repKey, _ := rep.Canonicalize(); repKey != key {
		return errors.Wrapf(ErrCanonicalInvariant,
			"representative of key %d canonicalizes to %d", key, repKey)
	}

	actions, err := st.LegalActions()
	if err != nil {
		return err
	}

	for _, a := range actions {
		succ, err := st.Apply(a)
		if err != nil {
			return err
		}
		succKey, _ := succ.(Symmetric).Canonicalize()

		repSucc, err := rep.Apply(st.TransformAction(t, a))
		if err != nil {
			if errors.Cause(err) == game.ErrIllegalAction {
				return errors.Wrapf(ErrCanonicalInvariant,
					"transformed action %d illegal in representative of key %d", a, key)
			}
			return err
		}
		repSuccKey, _ := repSucc.(Symmetric).Canonicalize()

		if succKey != repSuccKey {
			return errors.Wrapf(ErrCanonicalInvariant,
				"action %d: successor key %d != representative successor key %d",
				a, succKey, repSuccKey)
		}
	}

	return nil
}
