package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"acornfs/acorn"
	"acornfs/hostbridge"
)

var cpRecursive bool

var cpCmd = &cobra.Command{
	Use:                   "cp [-r] src ... dest",
	Short:                 "Copy files between an Acorn image and the host",
	Long: `Copy one or more files between an Acorn disk image and the host
filesystem. An endpoint of the form "image:path" addresses the Acorn
side; any other form addresses the host. Copying more than one source,
or -r, requires dest to already be a directory.`,
	Args:                  cobra.MinimumNArgs(2),
	DisableFlagsInUseLine: true,
	Run: func(cmd *cobra.Command, args []string) {
		srcs, dest := args[:len(args)-1], args[len(args)-1]
		status := runCopy(srcs, dest, cpRecursive)
		os.Exit(status)
	},
}

func init() {
	cpCmd.Flags().BoolVarP(&cpRecursive, "recursive", "r", false, "require dest to be a directory (directories are not copied recursively)")
	rootCmd.AddCommand(cpCmd)
}

func isAcornSpec(s string) bool { return strings.ContainsRune(s, ':') }

func runCopy(srcs []string, dest string, recursive bool) int {
	multi := len(srcs) > 1 || recursive
	destAcorn := isAcornSpec(dest)

	var destImage, destPath string
	var destHandle acorn.Handle
	var destDir *acorn.Object

	if destAcorn {
		destImage, destPath = splitSpec(dest, "$")
		h, ok := openImage("afscp", destImage, true)
		if !ok {
			return exitIOOrOpen
		}
		destHandle = h
		obj, err := h.Find(destPath)
		isDir := err == nil && obj.Attr.IsDir()
		if isDir {
			destDir = obj
		} else if multi || (len(srcs) == 1 && hostbridge.IsAcornWild(srcs[0])) {
			fmt.Fprintln(os.Stderr, "afscp: destination must be a directory for multi-file copy")
			return exitDestNotADir
		}
	} else {
		info, err := os.Stat(dest)
		isDir := err == nil && info.IsDir()
		if !isDir && multi {
			fmt.Fprintln(os.Stderr, "afscp: destination must be a directory for multi-file copy")
			return exitDestNotADir
		}
	}

	status := exitOK
	for _, src := range srcs {
		if err := copyOne(src, dest, destAcorn, destHandle, destDir, destPath); err != nil {
			fmt.Fprintf(os.Stderr, "afscp: %s: %s\n", src, err)
			status = exitIOOrOpen
		}
	}
	return status
}

// copyOne copies a single src to dest, resolving direction from whether
// each endpoint carries an "image:" prefix (spec.md §6 Copy;
// original_source/afscp.c's acorn_dest/native_dest split).
func copyOne(src, dest string, destAcorn bool, destHandle acorn.Handle, destDir *acorn.Object, destPath string) error {
	if isAcornSpec(src) {
		return copyFromAcorn(src, dest, destAcorn)
	}
	return copyFromHost(src, destAcorn, destHandle, destDir, destPath)
}

func copyFromAcorn(src, dest string, destAcorn bool) error {
	if destAcorn {
		return acorn.Err(acorn.KindNotSupported)
	}
	srcImage, srcPath := splitSpec(src, "$")
	h, ok := openImage("afscp", srcImage, false)
	if !ok {
		return acorn.Err(acorn.KindIO)
	}
	obj, err := h.Find(srcPath)
	if err != nil {
		return err
	}
	if err := h.Load(obj); err != nil {
		return err
	}

	hostName := hostbridge.ToHost(obj.Name)
	target := dest
	if info, err := os.Stat(dest); err == nil && info.IsDir() {
		target = filepath.Join(dest, hostName)
	}
	if err := os.WriteFile(target, obj.Data[:obj.Length], 0644); err != nil {
		return acorn.Wrap(acorn.KindIO, err, "write host file")
	}
	fs := afero.NewOsFs()
	return hostbridge.WriteInf(fs, target+".inf", &hostbridge.Info{
		Name:     obj.Name,
		LoadAddr: obj.LoadAddr,
		ExecAddr: obj.ExecAddr,
		Length:   obj.Length,
		Locked:   obj.Attr.Locked(),
	})
}

func copyFromHost(src string, destAcorn bool, destHandle acorn.Handle, destDir *acorn.Object, destPath string) error {
	if !destAcorn {
		return acorn.Err(acorn.KindNotSupported)
	}
	data, err := os.ReadFile(src)
	if err != nil {
		return acorn.Wrap(acorn.KindIO, err, "read host file")
	}

	name := hostbridge.ToAcorn(filepath.Base(src))
	obj := &acorn.Object{Name: name, Length: uint32(len(data)), Data: data}
	obj.Attr.SetUserRead(true)
	obj.Attr.SetUserWrite(true)

	fs := afero.NewOsFs()
	if info, err := hostbridge.ReadInf(fs, src+".inf"); err == nil {
		obj.Name = info.Name
		obj.LoadAddr = info.LoadAddr
		obj.ExecAddr = info.ExecAddr
		if info.Length != 0 {
			obj.Length = info.Length
		}
		obj.Attr.SetLocked(info.Locked)
	}

	dest := destDir
	if dest == nil {
		dest, err = destHandle.Find("$")
		if err != nil {
			return err
		}
		if destPath != "" && destPath != "$" {
			obj.Name = destPath
		}
	}
	return destHandle.Save(obj, dest)
}
