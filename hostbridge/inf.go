package hostbridge

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/afero"

	"acornfs/acorn"
)

// Info is the decoded contents of a ".inf" sidecar file: the Acorn object
// name plus the load/exec/length/attribute fields carried alongside a
// host-side payload (spec.md §6 "Host-side sidecar .inf format").
type Info struct {
	Name     string
	LoadAddr uint32
	ExecAddr uint32
	Length   uint32
	Locked   bool
}

// ReadInf parses a ".inf" sidecar at path on fs: one line,
// whitespace-separated, "NAME LOAD EXEC [LENGTH [ATTR]]" with every field
// after NAME in hexadecimal. A missing EXEC defaults to LOAD; a missing
// LENGTH is left zero for the caller to fill in from the payload size; a
// missing ATTR implies no attributes set. A trailing "L"/"l" token in the
// ATTR position is the legacy locked shorthand rather than a hex mask.
func ReadInf(fs afero.Fs, path string) (*Info, error) {
	data, err := afero.ReadFile(fs, path)
	if err != nil {
		return nil, acorn.Wrap(acorn.KindIO, err, "read .inf sidecar")
	}
	line := strings.TrimSpace(strings.SplitN(string(data), "\n", 2)[0])
	fields := strings.Fields(line)
	if len(fields) < 2 {
		return nil, acorn.Err(acorn.KindInvalid)
	}

	info := &Info{Name: fields[0]}
	load, err := parseHex(fields[1])
	if err != nil {
		return nil, acorn.Wrap(acorn.KindInvalid, err, "parse .inf load address")
	}
	info.LoadAddr = load
	info.ExecAddr = load

	if len(fields) > 2 {
		exec, err := parseHex(fields[2])
		if err != nil {
			return nil, acorn.Wrap(acorn.KindInvalid, err, "parse .inf exec address")
		}
		info.ExecAddr = exec
	}
	if len(fields) > 3 {
		length, err := parseHex(fields[3])
		if err != nil {
			return nil, acorn.Wrap(acorn.KindInvalid, err, "parse .inf length")
		}
		info.Length = length
	}
	if len(fields) > 4 {
		attr := fields[4]
		if attr == "L" || attr == "l" {
			info.Locked = true
		} else {
			mask, err := parseHex(attr)
			if err != nil {
				return nil, acorn.Wrap(acorn.KindInvalid, err, "parse .inf attribute")
			}
			info.Locked = mask&0x01 != 0
		}
	}
	return info, nil
}

// WriteInf emits a ".inf" sidecar for info at path, in the same
// NAME LOAD EXEC LENGTH [L] form ReadInf accepts.
func WriteInf(fs afero.Fs, path string, info *Info) error {
	line := fmt.Sprintf("%s %08X %08X %X", info.Name, info.LoadAddr, info.ExecAddr, info.Length)
	if info.Locked {
		line += " L"
	}
	line += "\n"
	if err := afero.WriteFile(fs, path, []byte(line), 0644); err != nil {
		return acorn.Wrap(acorn.KindIO, err, "write .inf sidecar")
	}
	return nil
}

func parseHex(s string) (uint32, error) {
	v, err := strconv.ParseUint(strings.TrimPrefix(s, "0x"), 16, 32)
	if err != nil {
		return 0, err
	}
	return uint32(v), nil
}

// IsAcornWild reports whether name (a "host:rest" or "image:rest" style
// Acorn destination spec) contains a wildcard after its ":" separator
// (original_source/afscp.c is_acorn_wild): used by the cp CLI driver to
// decide whether a multi-source copy's destination must be a directory.
func IsAcornWild(name string) bool {
	i := strings.IndexByte(name, ':')
	if i < 0 {
		return false
	}
	rest := name[i+1:]
	return strings.ContainsAny(rest, "#*")
}
