package types

import (
	"cosmossdk.io/errors"
)

// Module error codes
var (
	ErrUnauthorized     = errors.Register(ModuleName, 1, "unauthorized")
	ErrInvalidArgument  = errors.Register(ModuleName, 2, "invalid argument")
	ErrPoolInactive     = errors.Register(ModuleName, 3, "pool is not active")
	ErrNoActivePosition = errors.Register(ModuleName, 4, "no active position")
)
