package keymap

import "fmt"

// Binding is a bound cell of the table, as listed by help.
type Binding struct {
	Code   byte
	Combo  Combo
	Action Action
}

// Keys returns the binding in prefix notation, e.g. "C-h".
func (b Binding) Keys() string {
	return b.Combo.Prefix() + string(rune(b.Code))
}

// String formats the binding as a help line.
func (b Binding) String() string {
	return fmt.Sprintf("%s\t%s", b.Keys(), b.Action.Description)
}

// Bindings enumerates every non-NoOp cell in code order, then combination order.
func (t *Table) Bindings() []Binding {
	var out []Binding
	for code := range t.cells {
		for combo, action := range t.cells[code] {
			if action.IsNoOp() {
				continue
			}
			out = append(out, Binding{Code: byte(code), Combo: Combo(combo), Action: action})
		}
	}
	return out
}

// Help returns one formatted line per binding.
func (t *Table) Help() []string {
	bindings := t.Bindings()
	lines := make([]string, 0, len(bindings))
	for _, b := range bindings {
		lines = append(lines, b.String())
	}
	return lines
}
