package instrument

import (
	"errors"
	"fmt"
	"sort"
)

// Structural invariants of the LEP-88 instrument. A taxonomy that fails any
// of these is a broken build of the instrument, not a runtime condition.
const (
	NumItems        = 88
	NumMainScale    = 80
	NumAuxiliary    = 8
	NumReversedMain = 27
	NumDimensions   = 6
	LikertMin       = 1
	LikertMax       = 5
	ScoreMin        = 0
	ScoreMax        = 100
)

// ErrUnknownItem is returned by Lookup for codes outside the instrument.
var ErrUnknownItem = errors.New("unknown item code")

// Taxonomy is the validated, read-only item registry. Build it once with New
// (or MustLoad) and share it freely; it is never mutated after construction.
type Taxonomy struct {
	byCode map[string]ItemDefinition
	order  []string
}

// New builds the taxonomy from the static item table and verifies its
// structural invariants. Any violation is a fatal configuration error.
func New() (*Taxonomy, error) {
	t := &Taxonomy{
		byCode: make(map[string]ItemDefinition, len(itemTable)),
		order:  make([]string, 0, len(itemTable)),
	}
	for _, def := range itemTable {
		if _, dup := t.byCode[def.Code]; dup {
			return nil, fmt.Errorf("taxonomy invariant violated: duplicate item code %q", def.Code)
		}
		if !def.Dimension.Valid() {
			return nil, fmt.Errorf("taxonomy invariant violated: item %q has unknown dimension %q", def.Code, def.Dimension)
		}
		t.byCode[def.Code] = def
		t.order = append(t.order, def.Code)
	}

	if got := len(t.byCode); got != NumItems {
		return nil, fmt.Errorf("taxonomy invariant violated: expected %d items, got %d", NumItems, got)
	}
	main, aux, reversed := 0, 0, 0
	for _, def := range t.byCode {
		if def.IncludeInMainScale {
			main++
			if def.ReverseScored {
				reversed++
			}
		} else {
			aux++
		}
	}
	if main != NumMainScale {
		return nil, fmt.Errorf("taxonomy invariant violated: expected %d main-scale items, got %d", NumMainScale, main)
	}
	if aux != NumAuxiliary {
		return nil, fmt.Errorf("taxonomy invariant violated: expected %d auxiliary items, got %d", NumAuxiliary, aux)
	}
	if reversed != NumReversedMain {
		return nil, fmt.Errorf("taxonomy invariant violated: expected %d reverse-scored main items, got %d", NumReversedMain, reversed)
	}
	if got := len(Dimensions()); got != NumDimensions {
		return nil, fmt.Errorf("taxonomy invariant violated: expected %d dimensions, got %d", NumDimensions, got)
	}
	return t, nil
}

// MustLoad builds the taxonomy and panics on invariant violation. Intended
// for process startup, where a broken instrument must abort immediately.
func MustLoad() *Taxonomy {
	t, err := New()
	if err != nil {
		panic(err)
	}
	return t
}

// Lookup returns the definition for code, or ErrUnknownItem.
func (t *Taxonomy) Lookup(code string) (ItemDefinition, error) {
	def, ok := t.byCode[code]
	if !ok {
		return ItemDefinition{}, fmt.Errorf("%w: %q", ErrUnknownItem, code)
	}
	return def, nil
}

// Contains reports whether code belongs to the instrument.
func (t *Taxonomy) Contains(code string) bool {
	_, ok := t.byCode[code]
	return ok
}

// Codes returns all 88 item codes sorted lexicographically.
func (t *Taxonomy) Codes() []string {
	codes := make([]string, len(t.order))
	copy(codes, t.order)
	sort.Strings(codes)
	return codes
}

// All returns the item definitions in instrument order.
func (t *Taxonomy) All() []ItemDefinition {
	defs := make([]ItemDefinition, 0, len(t.order))
	for _, code := range t.order {
		defs = append(defs, t.byCode[code])
	}
	return defs
}

// MainScaleCodes returns the codes contributing to dimension scores, sorted.
func (t *Taxonomy) MainScaleCodes() []string {
	return t.filteredCodes(true)
}

// AuxiliaryCodes returns the codes feeding auxiliary indices only, sorted.
func (t *Taxonomy) AuxiliaryCodes() []string {
	return t.filteredCodes(false)
}

func (t *Taxonomy) filteredCodes(main bool) []string {
	var codes []string
	for code, def := range t.byCode {
		if def.IncludeInMainScale == main {
			codes = append(codes, code)
		}
	}
	sort.Strings(codes)
	return codes
}

// DimensionItems returns the main-scale definitions of one dimension in
// instrument order.
func (t *Taxonomy) DimensionItems(d Dimension) []ItemDefinition {
	var defs []ItemDefinition
	for _, code := range t.order {
		def := t.byCode[code]
		if def.Dimension == d && def.IncludeInMainScale {
			defs = append(defs, def)
		}
	}
	return defs
}

// Len returns the total number of items.
func (t *Taxonomy) Len() int {
	return len(t.byCode)
}
