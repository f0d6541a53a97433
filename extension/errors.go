// errors.go defines the errors returned by hosts and the registry.
//
// Each failure category has a sentinel for errors.Is and a typed error that
// carries the class and behavior names involved. The typed errors unwrap to
// their sentinel so callers can match either way.

package extension

import (
	"errors"
	"fmt"
	"strconv"
)

var (
	// ErrAlreadyExtended is returned when a behavior is attached to a host twice.
	ErrAlreadyExtended = errors.New("behavior already attached")
	// ErrContract is returned when a behavior does not embed Base.
	ErrContract = errors.New("behavior does not satisfy the extension contract")
	// ErrUndefinedMethod is returned when no dispatch path answers a call.
	ErrUndefinedMethod = errors.New("undefined method")
	// ErrInvalidImplement is returned for an implement declaration that is
	// neither a string nor a list of strings.
	ErrInvalidImplement = errors.New("invalid implement value")
	// ErrUnknownBehavior is returned when a behavior name is not registered
	// or not attached where it is required.
	ErrUnknownBehavior = errors.New("unknown behavior")
	// ErrUnknownClass is returned when a host class name is not registered.
	ErrUnknownClass = errors.New("unknown class")
)

// AlreadyExtendedError names the host class and the behavior attached twice.
type AlreadyExtendedError struct {
	Class    string
	Behavior string
}

func (e AlreadyExtendedError) Error() string {
	return "class " + e.Class + " has already been extended with " + e.Behavior
}

func (e AlreadyExtendedError) Unwrap() error { return ErrAlreadyExtended }

// ContractError is returned when a behavior constructor produces a value
// that does not embed Base.
type ContractError struct {
	Behavior string
	Type     string
}

func (e ContractError) Error() string {
	if e.Behavior == "" {
		return "behavior type " + e.Type + " must embed extension.Base"
	}
	return "behavior " + e.Behavior + " (" + e.Type + ") must embed extension.Base"
}

func (e ContractError) Unwrap() error { return ErrContract }

// UndefinedMethodError mirrors a call to a method nothing provides.
type UndefinedMethodError struct {
	Class  string
	Method string
	Static bool
}

func (e UndefinedMethodError) Error() string {
	if e.Static {
		return "call to undefined static method " + e.Class + "::" + e.Method + "()"
	}
	return "call to undefined method " + e.Class + "::" + e.Method + "()"
}

func (e UndefinedMethodError) Unwrap() error { return ErrUndefinedMethod }

// InvalidImplementError names the host class whose implement declaration
// could not be interpreted.
type InvalidImplementError struct {
	Class string
	Value any
}

func (e InvalidImplementError) Error() string {
	return fmt.Sprintf("class %s contains an invalid implement value of type %T", e.Class, e.Value)
}

func (e InvalidImplementError) Unwrap() error { return ErrInvalidImplement }

// UnknownBehaviorError is returned when a behavior name cannot be resolved.
// Class is empty when the lookup was not made on behalf of a host.
type UnknownBehaviorError struct {
	Class    string
	Behavior string
}

func (e UnknownBehaviorError) Error() string {
	if e.Class == "" {
		return "behavior " + strconv.Quote(e.Behavior) + " not found"
	}
	return "class " + e.Class + ": behavior " + strconv.Quote(e.Behavior) + " not found"
}

func (e UnknownBehaviorError) Unwrap() error { return ErrUnknownBehavior }
