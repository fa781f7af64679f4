// Package guard provides ConstructorGuard, a marker embedded in commands,
// queries and value objects so a zero value can be told apart from one built
// by its constructor.
package guard

import "errors"

// ErrDefaultConstructorGuard is returned by Validate when no specific error is supplied.
var ErrDefaultConstructorGuard = errors.New("object must be created via its constructor")

// ConstructorGuard is set only by NewConstructorGuard. Embed it in a struct
// and call Validate from the struct's own Validate method:
//
//	type QuoteShipmentCommand struct {
//	    sessionID string
//	    guard     guard.ConstructorGuard
//	}
//
//	func (c QuoteShipmentCommand) Validate() error {
//	    return c.guard.Validate(ErrQuoteShipmentCommandIsNotConstructed)
//	}
type ConstructorGuard struct {
	isConstructed bool
}

func NewConstructorGuard() ConstructorGuard {
	return ConstructorGuard{isConstructed: true}
}

// Validate returns validationError (or ErrDefaultConstructorGuard when it is
// nil) if the guard is a zero value.
func (g ConstructorGuard) Validate(validationError error) error {
	if g.isConstructed {
		return nil
	}
	if validationError == nil {
		return ErrDefaultConstructorGuard
	}
	return validationError
}
