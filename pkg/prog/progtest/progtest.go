// Package progtest contains utilities for testing [prog.Program] instances.
package progtest

import (
	"fmt"
	"os"
	"strings"
	"testing"

	"github.com/xiaq/plist/pkg/must"
	"github.com/xiaq/plist/pkg/prog"
)

// Case is a test case for Test. It is created with ThatPlist and refined with
// its methods, each of which returns a modified copy.
type Case struct {
	args []string
	want result
}

type result struct {
	exitCode int
	stdout   output
	stderr   output
}

type output struct {
	content string
	partial bool
}

func (o output) String() string {
	if o.partial {
		return fmt.Sprintf("text containing %q", o.content)
	}
	return fmt.Sprintf("%q", o.content)
}

func (o output) matches(s string) bool {
	if o.partial {
		return strings.Contains(s, o.content)
	}
	return s == o.content
}

// ThatPlist returns a Case that runs the program with the given arguments. By
// default, the program is expected to exit with 0 and write nothing.
func ThatPlist(args ...string) Case {
	return Case{args: args}
}

// DoesNothing returns c itself. It is useful to mark that a case expects the
// program to exit with 0 and write nothing.
func (c Case) DoesNothing() Case { return c }

// ExitsWith returns a copy of c that expects the given exit code.
func (c Case) ExitsWith(code int) Case {
	c.want.exitCode = code
	return c
}

// WritesStdout returns a copy of c that expects exactly the given stdout.
func (c Case) WritesStdout(s string) Case {
	c.want.stdout = output{s, false}
	return c
}

// WritesStdoutContaining returns a copy of c that expects stdout to contain
// the given text.
func (c Case) WritesStdoutContaining(s string) Case {
	c.want.stdout = output{s, true}
	return c
}

// WritesStderr returns a copy of c that expects exactly the given stderr.
func (c Case) WritesStderr(s string) Case {
	c.want.stderr = output{s, false}
	return c
}

// WritesStderrContaining returns a copy of c that expects stderr to contain
// the given text.
func (c Case) WritesStderrContaining(s string) Case {
	c.want.stderr = output{s, true}
	return c
}

// Test runs p with each of the cases, in order, and checks the exit code and
// outputs.
func Test(t *testing.T, p prog.Program, cases ...Case) {
	t.Helper()
	for _, c := range cases {
		exit, stdout, stderr := Run(p, c.args...)
		args := strings.Join(c.args, " ")
		if exit != c.want.exitCode {
			t.Errorf("plist %s: exit code %d, want %d", args, exit, c.want.exitCode)
		}
		if !c.want.stdout.matches(stdout) {
			t.Errorf("plist %s: stdout %q, want %s", args, stdout, c.want.stdout)
		}
		if !c.want.stderr.matches(stderr) {
			t.Errorf("plist %s: stderr %q, want %s", args, stderr, c.want.stderr)
		}
	}
}

// Run runs p with the given arguments, and returns the exit code and the
// outputs. The program's stdin is closed.
func Run(p prog.Program, args ...string) (exit int, stdout, stderr string) {
	r0, w0 := must.Pipe()
	w0.Close()
	r1, w1 := must.Pipe()
	r2, w2 := must.Pipe()

	// Read concurrently, so that the program doesn't block on a full pipe.
	stdoutCh := make(chan string, 1)
	stderrCh := make(chan string, 1)
	go func() { stdoutCh <- string(must.ReadAllAndClose(r1)) }()
	go func() { stderrCh <- string(must.ReadAllAndClose(r2)) }()

	exit = prog.Run([3]*os.File{r0, w1, w2}, append([]string{"plist"}, args...), p)
	r0.Close()
	w1.Close()
	w2.Close()
	return exit, <-stdoutCh, <-stderrCh
}
