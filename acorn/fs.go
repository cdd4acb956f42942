package acorn

// Visitor is called once per object a Glob or Walk traversal reaches. path
// is the full dotted Acorn path from the traversal root. Returning a
// non-nil error aborts the traversal, mirroring the source's acorn_fs_cb
// callback contract (spec.md §9 "callback-driven traversal").
type Visitor func(obj *Object, path string) error

// SectorIO is the raw sector transport a backend is bound to, exposed on
// Filesystem so the opener and tests can drive it directly (spec.md §4.8:
// the function set includes rdsect/wrsect alongside the higher-level ops).
type SectorIO interface {
	ReadSectors(start uint32, buf []byte) error
	WriteSectors(start uint32, buf []byte) error
}

// Filesystem is the capability set a backend (adfs or dfs) implements,
// replacing the source's record-of-function-pointers (struct acorn_fs)
// with ordinary method dispatch (spec.md §9 "polymorphic dispatch").
type Filesystem interface {
	SectorIO

	// Find resolves a dotted Acorn path ("$.DIR.NAME") to an object.
	Find(path string) (*Object, error)

	// Glob matches a wildcard pattern starting from start (nil means the
	// root), invoking visit for each match in directory order.
	Glob(start *Object, pattern string, visit Visitor) error

	// Walk performs a pre-order traversal from start (nil means the root),
	// invoking visit for every object reached.
	Walk(start *Object, visit Visitor) error

	// Load reads an object's payload into obj.Data.
	Load(obj *Object) error

	// Save allocates space for obj and inserts/replaces it in dest.
	Save(obj *Object, dest *Object) error

	// Mkdir creates an empty subdirectory named name inside dest. DFS
	// returns acorn.Err(KindNotSupported).
	Mkdir(name string, dest *Object) (*Object, error)

	// Remove deletes every object matching pattern. ADFS returns
	// acorn.Err(KindNotSupported); only DFS implements whole-entry removal
	// (spec.md §4.6).
	Remove(pattern string) error

	// Check validates global structural invariants, reporting diagnostics
	// to sink. The ADFS backend reports every diagnostic it finds rather
	// than stopping at the first (spec.md §7: "the checker is the only
	// component that reports multiple diagnostics from one call"); the DFS
	// backend stops at the first problem.
	Check(fsName string, sink Diagnostics) error

	// SetTitle overwrites the volume title.
	SetTitle(title string) error

	// Root returns the fabricated or loaded root directory object.
	Root() *Object
}

// Diagnostics is the text sink the consistency checker reports findings to
// (spec.md §4.7: "Report each to the caller's diagnostic sink").
type Diagnostics interface {
	Printf(format string, args ...interface{})
}
