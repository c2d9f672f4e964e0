package main

import (
	"fmt"
	"slices"
	"strings"
)

// enumValue is a pflag.Value restricted to a fixed set of strings.
type enumValue struct {
	target  *string
	allowed []string
}

func newEnumValue(target *string, def string, allowed ...string) *enumValue {
	*target = def
	return &enumValue{target: target, allowed: allowed}
}

func (e *enumValue) String() string { return *e.target }

func (e *enumValue) Set(v string) error {
	if !slices.Contains(e.allowed, v) {
		return fmt.Errorf("must be one of %s", strings.Join(e.allowed, ", "))
	}
	*e.target = v
	return nil
}

func (e *enumValue) Type() string { return "string" }
