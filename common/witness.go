package common

import (
	"fmt"

	"github.com/nspcc-dev/neo-go/pkg/encoding/address"
	"github.com/nspcc-dev/neo-go/pkg/util"
)

// Witness checks call authorship.
type Witness interface {
	// CheckWitness checks whether h is the caller.
	CheckWitness(h util.Uint160) bool
}

// CheckOwnerWitness checks that owner is the caller. It returns
// ErrUnauthorized on fail.
func CheckOwnerWitness(w Witness, owner util.Uint160) error {
	if !w.CheckWitness(owner) {
		return fmt.Errorf("%w: owner %s witness check failed", ErrUnauthorized, address.Uint160ToString(owner))
	}
	return nil
}
