package listcmd

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"strings"
	"unicode"

	"gopkg.in/yaml.v3"

	"github.com/xiaq/plist/pkg/persistent/list"
	"github.com/xiaq/plist/pkg/prog"
)

type command struct {
	usage string
	// Number of arguments. If variadic is true, this is the minimum.
	nargs    int
	variadic bool
	run      func(e *env, args []string) error
}

func (c command) acceptsArgs(n int) bool {
	if c.variadic {
		return n >= c.nargs
	}
	return n == c.nargs
}

var commands = map[string]command{
	"put":    {"NAME ELEM...", 1, true, put},
	"cons":   {"SRC DST ELEM", 3, false, cons},
	"append": {"A B DST", 3, false, appendLists},
	"map":    {"SRC DST FUNC", 3, false, mapList},
	"tail":   {"SRC DST", 2, false, tail},
	"show":   {"NAME", 1, false, show},
	"len":    {"NAME", 1, false, length},
	"names":  {"", 0, false, names},
	"equal":  {"A B", 2, false, equal},
	"same":   {"A B", 2, false, same},
	"shared": {"A B", 2, false, shared},
	"del":    {"NAME", 1, false, del},
	"prune":  {"", 0, false, prune},
	"load":   {"FILE", 1, false, load},
	"dump":   {"", 0, false, dump},
}

// Functions usable with the map command.
var mapFuncs = map[string]func(string) string{
	"upper":   strings.ToUpper,
	"lower":   strings.ToLower,
	"trim":    strings.TrimSpace,
	"reverse": reverse,
}

func reverse(s string) string {
	rs := []rune(s)
	for i, j := 0, len(rs)-1; i < j; i, j = i+1, j-1 {
		rs[i], rs[j] = rs[j], rs[i]
	}
	return string(rs)
}

func put(e *env, args []string) error {
	return e.st.Put(args[0], list.FromSlice(args[1:]))
}

func cons(e *env, args []string) error {
	src, err := e.st.Get(args[0])
	if err != nil {
		return err
	}
	return e.st.Put(args[1], src.Cons(args[2]))
}

func appendLists(e *env, args []string) error {
	a, err := e.st.Get(args[0])
	if err != nil {
		return err
	}
	b, err := e.st.Get(args[1])
	if err != nil {
		return err
	}
	return e.st.Put(args[2], a.Append(b))
}

func mapList(e *env, args []string) error {
	f, ok := mapFuncs[args[2]]
	if !ok {
		names := make([]string, 0, len(mapFuncs))
		for name := range mapFuncs {
			names = append(names, name)
		}
		sort.Strings(names)
		return prog.BadUsage(fmt.Sprintf("unknown function %s, must be one of %s",
			args[2], strings.Join(names, ", ")))
	}
	src, err := e.st.Get(args[0])
	if err != nil {
		return err
	}
	return e.st.Put(args[1], list.Map(src, f))
}

func tail(e *env, args []string) error {
	src, err := e.st.Get(args[0])
	if err != nil {
		return err
	}
	rest, ok := src.IntoTail()
	if !ok {
		return fmt.Errorf("list %s is empty", args[0])
	}
	return e.st.Put(args[1], rest)
}

func show(e *env, args []string) error {
	l, err := e.st.Get(args[0])
	if err != nil {
		return err
	}
	if e.json {
		return e.printJSON(l)
	}
	fmt.Fprintln(e.fds[1], l)
	return nil
}

func length(e *env, args []string) error {
	l, err := e.st.Get(args[0])
	if err != nil {
		return err
	}
	fmt.Fprintln(e.fds[1], l.Len())
	return nil
}

func names(e *env, _ []string) error {
	names, err := e.st.Names()
	if err != nil {
		return err
	}
	if e.json {
		if names == nil {
			names = []string{}
		}
		return e.printJSON(names)
	}
	for _, name := range names {
		fmt.Fprintln(e.fds[1], name)
	}
	return nil
}

func equal(e *env, args []string) error {
	return compare(e, args, list.Equal[string])
}

func same(e *env, args []string) error {
	return compare(e, args, list.List[string].Same)
}

func compare(e *env, args []string, f func(a, b list.List[string]) bool) error {
	a, err := e.st.Get(args[0])
	if err != nil {
		return err
	}
	b, err := e.st.Get(args[1])
	if err != nil {
		return err
	}
	fmt.Fprintln(e.fds[1], f(a, b))
	return nil
}

func shared(e *env, args []string) error {
	a, err := e.st.Get(args[0])
	if err != nil {
		return err
	}
	b, err := e.st.Get(args[1])
	if err != nil {
		return err
	}
	suffix := list.CommonSuffix(a, b)
	if e.json {
		return e.printJSON(suffix)
	}
	fmt.Fprintln(e.fds[1], suffix)
	return nil
}

func del(e *env, args []string) error {
	return e.st.Delete(args[0])
}

func prune(e *env, _ []string) error {
	n, err := e.st.Prune()
	if err != nil {
		return err
	}
	fmt.Fprintf(e.fds[1], "removed %d nodes\n", n)
	return nil
}

func load(e *env, args []string) error {
	data, err := os.ReadFile(args[0])
	if err != nil {
		return err
	}
	var doc map[string]list.List[string]
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return fmt.Errorf("%s: %w", args[0], err)
	}
	names := make([]string, 0, len(doc))
	for name := range doc {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		if name == "" || strings.IndexFunc(name, unicode.IsSpace) != -1 {
			return fmt.Errorf("%s: bad list name %q", args[0], name)
		}
		if err := e.st.Put(name, doc[name]); err != nil {
			return err
		}
	}
	logger.Printf("loaded %d lists from %s", len(names), args[0])
	return nil
}

func dump(e *env, _ []string) error {
	all, err := e.st.All()
	if err != nil {
		return err
	}
	if e.json {
		return e.printJSON(all)
	}
	if len(all) == 0 {
		return nil
	}
	data, err := yaml.Marshal(all)
	if err != nil {
		return err
	}
	_, err = e.fds[1].Write(data)
	return err
}

func (e *env) printJSON(v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}
	fmt.Fprintf(e.fds[1], "%s\n", data)
	return nil
}
