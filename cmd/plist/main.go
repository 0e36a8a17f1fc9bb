// Plist keeps persistent lists of strings in a database. Lists derived from
// one another share their common suffixes, both in memory and on disk.
package main

import (
	"os"

	"github.com/xiaq/plist/pkg/buildinfo"
	"github.com/xiaq/plist/pkg/listcmd"
	"github.com/xiaq/plist/pkg/prog"
)

func main() {
	os.Exit(prog.Run(
		[3]*os.File{os.Stdin, os.Stdout, os.Stderr}, os.Args,
		prog.Composite(&buildinfo.Program{}, &listcmd.Program{})))
}
