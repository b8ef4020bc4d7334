package labeltree

// Tree is everything needed to persist one label hierarchy below the labels row
type Tree struct {
	Category Category
	Subtype  Subtype
	// Parent holds the discriminator and shared column for the category row
	Parent Columns
	// Leaf is the subtype row payload
	Leaf Payload
}

// SharedField names the column a category copies from its leaf payload
func SharedField(c Category) string {
	if c == Disruptions {
		return "reason"
	}
	return "language"
}

// ParentFields builds the category row columns for leaf payload p
func ParentFields(c Category, p Payload) Columns {
	var cols Columns
	cols.Add(Discriminator(c), string(p.Subtype()))
	cols.Add(SharedField(c), stringField(p, SharedField(c)))
	return cols
}

// BuildSubtypeTree validates that payloads hold exactly the payload for leaf and
// returns the category, parent columns and leaf row to insert
func BuildSubtypeTree(leaf Subtype, payloads Payloads) (Tree, error) {
	cat, err := ClassifyParent(leaf)
	if err != nil {
		return Tree{}, err
	}
	pl := payloads.Get(leaf)
	if pl == nil || len(payloads.Present()) != 1 {
		return Tree{}, SubtypeMismatch()
	}
	if miss := Missing(pl); len(miss) > 0 {
		return Tree{}, MissingField(leaf, miss[0])
	}
	row := New(leaf)
	if err := Merge(row, pl); err != nil {
		return Tree{}, err
	}
	applyDefaults(row)
	return Tree{Category: cat, Subtype: leaf, Parent: ParentFields(cat, row), Leaf: row}, nil
}

// PatchTree merges the patch payload for current onto stored and returns the tree to write back
// a patch carrying a payload for any other subtype is rejected; no payload keeps stored as is
func PatchTree(current Subtype, stored Payload, patch Payloads) (Tree, error) {
	cat, err := ClassifyParent(current)
	if err != nil {
		return Tree{}, err
	}
	for _, s := range patch.Present() {
		if s != current {
			return Tree{}, SubtypeMismatch()
		}
	}
	merged := New(current)
	if stored != nil {
		if err := Merge(merged, stored); err != nil {
			return Tree{}, err
		}
	}
	if p := patch.Get(current); p != nil {
		if err := Merge(merged, p); err != nil {
			return Tree{}, err
		}
	}
	if miss := Missing(merged); len(miss) > 0 {
		return Tree{}, MissingField(current, miss[0])
	}
	applyDefaults(merged)
	return Tree{Category: cat, Subtype: current, Parent: ParentFields(cat, merged), Leaf: merged}, nil
}

// Transition describes how an update moves a label between subtypes
type Transition int

// Transitions
const (
	// SameSubtype patches the stored subtype row in place
	SameSubtype Transition = iota
	// SameCategory swaps the subtype row and keeps the category row
	SameCategory
	// CrossCategory replaces the category row and with it the subtype row
	CrossCategory
)

// Plan decides the transition from the stored subtype to the requested one
// an empty requested subtype keeps the current one
func Plan(current, requested Subtype) (Transition, error) {
	if requested == "" || requested == current {
		return SameSubtype, nil
	}
	to, err := ClassifyParent(requested)
	if err != nil {
		return 0, err
	}
	from, err := ClassifyParent(current)
	if err != nil {
		return CrossCategory, nil
	}
	if from == to {
		return SameCategory, nil
	}
	return CrossCategory, nil
}
