package commands

import "errors"

// ErrOrderNotOwned means the order exists but belongs to a different account.
// The HTTP layer maps it to a permission error rather than a not-found so a
// caller probing foreign order ids can tell the two cases apart the way the
// read path does.
var ErrOrderNotOwned = errors.New("order does not belong to the requesting account")
