// Package trains is the static train directory the booking flows resolve
// train names from. It is reference data, not part of the reservation core.
package trains

// UnknownTrain is the name assigned when a train number is not in the
// directory. The booking still goes through.
const UnknownTrain = "Unknown Train"

// Train is one directory entry.
type Train struct {
	No   string
	Name string
}

// Directory maps train numbers to names, preserving seed order for listings.
type Directory struct {
	names map[string]string
	order []string
}

// NewDirectory returns the default directory.
func NewDirectory() *Directory {
	d := &Directory{names: make(map[string]string)}
	for _, t := range []Train{
		{"12301", "Mumbai Express"},
		{"12010", "Rajdhani Express"},
		{"22801", "Coastal Superfast"},
		{"15645", "Heritage Mail"},
		{"11022", "Intercity Local"},
	} {
		d.add(t.No, t.Name)
	}
	return d
}

func (d *Directory) add(no, name string) {
	if _, ok := d.names[no]; !ok {
		d.order = append(d.order, no)
	}
	d.names[no] = name
}

// Name resolves a train number, falling back to UnknownTrain.
func (d *Directory) Name(no string) string {
	if name, ok := d.names[no]; ok {
		return name
	}
	return UnknownTrain
}

// Known reports whether the train number is in the directory.
func (d *Directory) Known(no string) bool {
	_, ok := d.names[no]
	return ok
}

// List returns all entries in seed order.
func (d *Directory) List() []Train {
	out := make([]Train, 0, len(d.order))
	for _, no := range d.order {
		out = append(out, Train{No: no, Name: d.names[no]})
	}
	return out
}
