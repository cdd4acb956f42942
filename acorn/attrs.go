package acorn

import "github.com/boljen/go-bitmap"

// Attribute bit positions within the 9-bit set described in spec.md §3:
// the high bit of ADFS directory entry bytes 0..8 in this order.
const (
	BitUserRead = iota
	BitUserWrite
	BitLocked
	BitDir
	BitUserExec
	BitOtherRead
	BitOtherWrite
	BitOtherExec
	BitPrivate

	numAttrBits
)

// Attr is the object attribute bitset. It is backed by a real bitmap type
// (github.com/boljen/go-bitmap) rather than a hand-rolled uint16 mask,
// since that's exactly the "small named bitset" job the library is for.
type Attr struct {
	bits bitmap.Bitmap
}

// NewAttr returns a zeroed attribute set.
func NewAttr() Attr {
	return Attr{bits: bitmap.New(numAttrBits)}
}

func (a Attr) get(bit int) bool {
	if a.bits == nil {
		return false
	}
	return a.bits.Get(bit)
}

func (a *Attr) set(bit int, v bool) {
	if a.bits == nil {
		a.bits = bitmap.New(numAttrBits)
	}
	a.bits.Set(bit, v)
}

func (a Attr) UserRead() bool    { return a.get(BitUserRead) }
func (a Attr) UserWrite() bool   { return a.get(BitUserWrite) }
func (a Attr) UserExec() bool    { return a.get(BitUserExec) }
func (a Attr) Locked() bool      { return a.get(BitLocked) }
func (a Attr) OtherRead() bool   { return a.get(BitOtherRead) }
func (a Attr) OtherWrite() bool  { return a.get(BitOtherWrite) }
func (a Attr) OtherExec() bool   { return a.get(BitOtherExec) }
func (a Attr) Private() bool     { return a.get(BitPrivate) }
func (a Attr) IsDir() bool       { return a.get(BitDir) }

func (a *Attr) SetUserRead(v bool)   { a.set(BitUserRead, v) }
func (a *Attr) SetUserWrite(v bool)  { a.set(BitUserWrite, v) }
func (a *Attr) SetUserExec(v bool)   { a.set(BitUserExec, v) }
func (a *Attr) SetLocked(v bool)     { a.set(BitLocked, v) }
func (a *Attr) SetOtherRead(v bool)  { a.set(BitOtherRead, v) }
func (a *Attr) SetOtherWrite(v bool) { a.set(BitOtherWrite, v) }
func (a *Attr) SetOtherExec(v bool)  { a.set(BitOtherExec, v) }
func (a *Attr) SetPrivate(v bool)    { a.set(BitPrivate, v) }
func (a *Attr) SetDir(v bool)        { a.set(BitDir, v) }

// String renders the nine-character permission summary used by the `ls`/
// `tree` CLI output, following original_source/acorn-fs.c's acorn_fs_info
// layout: D L R W E r w e P.
func (a Attr) String() string {
	out := []byte("---------")
	if a.IsDir() {
		out[0] = 'D'
	}
	if a.Locked() {
		out[1] = 'L'
	}
	if a.UserRead() {
		out[2] = 'R'
	}
	if a.UserWrite() {
		out[3] = 'W'
	}
	if a.UserExec() {
		out[4] = 'E'
	}
	if a.OtherRead() {
		out[5] = 'r'
	}
	if a.OtherWrite() {
		out[6] = 'w'
	}
	if a.OtherExec() {
		out[7] = 'e'
	}
	if a.Private() {
		out[8] = 'P'
	}
	return string(out)
}
