package checklist

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"parcel/internal/pkg/errs"
	"parcel/internal/pkg/guard"
)

var ErrGateIsNotConstructed = errors.New("Gate must be created via NewGate constructor")

// Item is one named precondition.
type Item struct {
	Name    string
	Checked bool
}

// Gate is an ordered list of named boolean items and a mode. It is an
// immutable value: Set and Apply return a new gate and Satisfied is
// recomputed from the items on every call.
type Gate struct {
	name  string
	mode  Mode
	items []Item
	guard guard.ConstructorGuard
}

// NewGate builds a gate with every item unchecked. Item names must be
// non-empty and unique.
func NewGate(name string, mode Mode, itemNames ...string) (Gate, error) {
	if name == "" {
		return Gate{}, errs.NewValueIsRequiredError("gate name")
	}
	if err := mode.Validate(); err != nil {
		return Gate{}, err
	}

	items := make([]Item, 0, len(itemNames))
	seen := make(map[string]struct{}, len(itemNames))
	for _, n := range itemNames {
		if n == "" {
			return Gate{}, errs.NewValueIsRequiredError("checklist item name")
		}
		if _, dup := seen[n]; dup {
			return Gate{}, errs.NewValueIsInvalidErrorWithCause(
				"checklist item name",
				fmt.Errorf("%q is listed twice in %s", n, name),
			)
		}
		seen[n] = struct{}{}
		items = append(items, Item{Name: n})
	}

	return Gate{
		name:  name,
		mode:  mode,
		items: items,
		guard: guard.NewConstructorGuard(),
	}, nil
}

// MustNewGate is NewGate for package-level gate templates.
func MustNewGate(name string, mode Mode, itemNames ...string) Gate {
	g, err := NewGate(name, mode, itemNames...)
	if err != nil {
		panic(err)
	}
	return g
}

func (g Gate) Validate() error {
	return g.guard.Validate(ErrGateIsNotConstructed)
}

func (g Gate) Name() string { return g.name }
func (g Gate) Mode() Mode   { return g.mode }

// Items returns a copy of the items in declaration order.
func (g Gate) Items() []Item {
	return slices.Clone(g.items)
}

// Has reports whether itemName belongs to the gate.
func (g Gate) Has(itemName string) bool {
	return g.indexOf(itemName) >= 0
}

// Set returns a copy of the gate with one item changed.
func (g Gate) Set(itemName string, checked bool) (Gate, error) {
	i := g.indexOf(itemName)
	if i < 0 {
		return Gate{}, errs.NewValueIsInvalidErrorWithCause(
			"checklist item",
			fmt.Errorf("%q is not part of %s", itemName, g.name),
		)
	}

	next := g
	next.items = slices.Clone(g.items)
	next.items[i].Checked = checked
	return next, nil
}

// Apply sets every flag whose name belongs to the gate and ignores the rest.
func (g Gate) Apply(flags map[string]bool) Gate {
	next := g
	next.items = slices.Clone(g.items)
	for i, it := range next.items {
		if v, ok := flags[it.Name]; ok {
			next.items[i].Checked = v
		}
	}
	return next
}

// Satisfied evaluates the gate: ALL needs every item checked, ANY needs one.
func (g Gate) Satisfied() bool {
	flags := make([]bool, len(g.items))
	for i, it := range g.items {
		flags[i] = it.Checked
	}
	return Evaluate(g.mode, flags...)
}

// Checked lists the names of checked items in order.
func (g Gate) Checked() []string {
	return g.filter(true)
}

// Unchecked lists the names of unchecked items in order.
func (g Gate) Unchecked() []string {
	return g.filter(false)
}

// Describe explains why the gate is not satisfied, for error messages.
func (g Gate) Describe() string {
	if g.Satisfied() {
		return fmt.Sprintf("%s is satisfied", g.name)
	}
	if g.mode == Any {
		return fmt.Sprintf("%s needs at least one of: %s", g.name, strings.Join(g.Unchecked(), ", "))
	}
	return fmt.Sprintf("%s is missing: %s", g.name, strings.Join(g.Unchecked(), ", "))
}

func (g Gate) indexOf(itemName string) int {
	return slices.IndexFunc(g.items, func(it Item) bool { return it.Name == itemName })
}

func (g Gate) filter(checked bool) []string {
	out := make([]string, 0, len(g.items))
	for _, it := range g.items {
		if it.Checked == checked {
			out = append(out, it.Name)
		}
	}
	return out
}
