package thirdvm

// NativeFunc is a primitive's Go implementation. It runs on the Process
// that is executing it.
type NativeFunc func(p *Process)

// Function is a dictionary entry: either Native (a callable Go func) or
// Interpreted (a range of the code segment), never both. Start is -1 for a
// declared-but-undefined interpreted word.
type Function struct {
	Name        string
	IsImmediate bool

	Native NativeFunc

	Start      int32
	LocalCount uint32
}

// IsNative reports whether fn is a native, not interpreted, function.
func (fn *Function) IsNative() bool { return fn.Native != nil }

// Dictionary is the VM's ordered list of functions plus a name-to-id
// lookup. Id 0 is a permanently unbound placeholder so it is mechanically
// never returned by Find or assigned by AddNative/AddInterpreted, matching
// its role as the code segment's reserved literal marker. Id 1 is reserved
// for "return" and must be the first id ever added.
type Dictionary struct {
	functions []Function
	byName    map[string]uint32
}

func newDictionary() Dictionary {
	return Dictionary{
		functions: make([]Function, 1), // functions[0]: permanently unbound
		byName:    make(map[string]uint32),
	}
}

// Len returns one past the highest valid id (i.e. the dictionary's size).
func (d *Dictionary) Len() uint32 { return uint32(len(d.functions)) }

// At returns the function bound to id. Callers must have checked
// id < Len() (or id == a value returned by Find/AddNative/AddInterpreted).
func (d *Dictionary) At(id uint32) *Function { return &d.functions[id] }

// AddNative appends a native Function, binds name to it, and returns the
// new id.
func (d *Dictionary) AddNative(name string, fn NativeFunc, immediate bool) uint32 {
	id := uint32(len(d.functions))
	d.functions = append(d.functions, Function{
		Name:        name,
		IsImmediate: immediate,
		Native:      fn,
		Start:       -1,
	})
	d.byName[name] = id
	return id
}

// AddInterpreted appends an Interpreted Function whose body starts at
// code-segment index start and whose local_count is 0, binds name to it,
// and returns the new id. The terminal's : passes the current code-segment
// length as start.
func (d *Dictionary) AddInterpreted(name string, start uint32) uint32 {
	id := uint32(len(d.functions))
	d.functions = append(d.functions, Function{
		Name:  name,
		Start: int32(start),
	})
	d.byName[name] = id
	return id
}

// SetImmediate marks id's function as immediate.
func (d *Dictionary) SetImmediate(id uint32) { d.functions[id].IsImmediate = true }

// SetLocalCount sets id's function's local frame size.
func (d *Dictionary) SetLocalCount(id uint32, n uint32) { d.functions[id].LocalCount = n }

// Find looks up name, returning its most recently bound id. Redefinition
// shadows: rebinding a name does not delete the old entry, so existing
// compiled references to the old id remain valid.
func (d *Dictionary) Find(name string) (uint32, bool) {
	id, ok := d.byName[name]
	return id, ok
}
