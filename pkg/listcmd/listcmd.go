// Package listcmd implements the main subprogram of plist, which operates on
// lists of strings kept in a database.
package listcmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/xiaq/plist/pkg/errutil"
	"github.com/xiaq/plist/pkg/logutil"
	"github.com/xiaq/plist/pkg/prog"
	"github.com/xiaq/plist/pkg/store"
)

var logger = logutil.GetLogger("[listcmd] ")

// Program is the list subprogram. Its first argument names the command to run.
type Program struct {
	fs         *prog.FlagSet
	db         *string
	json       *bool
	configPath string
}

func (p *Program) RegisterFlags(fs *prog.FlagSet) {
	p.fs = fs
	p.db = fs.DB()
	p.json = fs.JSON()
	fs.StringVar(&p.configPath, "config", "",
		"path to the config file; defaults to $XDG_CONFIG_HOME/plist/config.toml")
}

func (p *Program) Run(fds [3]*os.File, args []string) error {
	if len(args) == 0 {
		return prog.BadUsage("no command given")
	}
	cmd, ok := commands[args[0]]
	if !ok {
		return prog.BadUsage("unknown command: " + args[0])
	}
	if !cmd.acceptsArgs(len(args) - 1) {
		return prog.BadUsage(strings.TrimSpace("usage: plist " + args[0] + " " + cmd.usage))
	}

	cfg, err := p.config()
	if err != nil {
		return err
	}
	if cfg.Log != "" {
		if err := logutil.SetOutputFile(cfg.Log); err != nil {
			fmt.Fprintln(fds[2], "Warning: cannot open log file:", err)
		}
	}
	dbPath := cfg.DB
	if dbPath == "" {
		dbPath, err = defaultDBPath()
		if err != nil {
			return err
		}
	}

	logger.Println("opening", dbPath, "for", args[0])
	st, err := store.Open[string](dbPath, store.StringCodec{})
	if err != nil {
		return fmt.Errorf("cannot open database: %w", err)
	}
	err = cmd.run(&env{fds, st, cfg.JSON}, args[1:])
	if err != nil {
		logger.Printf("%s: %v", args[0], err)
	}
	return errutil.Multi(err, st.Close())
}

// The environment a command runs in.
type env struct {
	fds  [3]*os.File
	st   *store.Store[string]
	json bool
}
