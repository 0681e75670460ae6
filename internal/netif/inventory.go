package netif

// Inventory enumerates network interfaces
type Inventory interface {
	Interfaces() ([]Descriptor, error)
}

// Static is an Inventory backed by a fixed list
type Static []Descriptor

// Interfaces returns a copy of the list
func (s Static) Interfaces() ([]Descriptor, error) {
	out := make([]Descriptor, len(s))
	copy(out, s)
	return out, nil
}

// Candidates returns the eligible interfaces of inv in enumeration order
func Candidates(inv Inventory) ([]Descriptor, error) {
	all, err := inv.Interfaces()
	if err != nil {
		return nil, err
	}

	var out []Descriptor
	for _, d := range all {
		if d.Eligible() {
			out = append(out, d)
		}
	}
	return out, nil
}

type restricted struct {
	inv   Inventory
	names map[string]bool
}

// Only restricts inv to interfaces whose ID or Name is listed. With no
// names, inv is returned unchanged.
func Only(inv Inventory, names ...string) Inventory {
	if len(names) == 0 {
		return inv
	}
	set := make(map[string]bool, len(names))
	for _, n := range names {
		set[n] = true
	}
	return restricted{inv: inv, names: set}
}

func (r restricted) Interfaces() ([]Descriptor, error) {
	all, err := r.inv.Interfaces()
	if err != nil {
		return nil, err
	}

	var out []Descriptor
	for _, d := range all {
		if r.names[d.ID] || r.names[d.Name] {
			out = append(out, d)
		}
	}
	return out, nil
}
