// Display names for item numbers.
//
// Item numbers are opaque codes. A Names table maps a trailing part of an
// item number to a readable label, so one entry can cover every item that
// shares a suffix. The longest matching suffix wins.
package adis

// Names maps item-number suffixes to display names.
type Names map[string]string

// Resolve returns the display name for item, trying the whole item number
// first and then ever shorter suffixes.
func (n Names) Resolve(item string) (string, bool) {
	for i := range item {
		if name, ok := n[item[i:]]; ok {
			return name, true
		}
	}
	return "", false
}

// Annotate returns a copy of m in which every definition carries a name.
// Items with no matching entry are named after their item number. m itself
// is not modified.
func (m Mapping) Annotate(names Names) Mapping {
	out := make(Mapping, len(m))
	for i, fm := range m {
		nf := make(FileMapping, len(fm))
		for j, eb := range fm {
			bm := eb.Block
			bm.Definitions = make([]DefinitionMapping, len(eb.Block.Definitions))
			for k, d := range eb.Block.Definitions {
				d.Name = d.ItemNumber
				if name, ok := names.Resolve(d.ItemNumber); ok {
					d.Name = name
				}
				bm.Definitions[k] = d
			}
			nf[j] = EntityBlock{Entity: eb.Entity, Block: bm}
		}
		out[i] = nf
	}
	return out
}
