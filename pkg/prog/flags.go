package prog

import "flag"

// FlagSet wraps a [flag.FlagSet]. It also provides methods to register flags
// that may be shared by several subprograms; each such flag is registered
// once, however many subprograms ask for it.
type FlagSet struct {
	*flag.FlagSet
	db   *string
	json *bool
}

// DB returns a pointer to the value of the -db flag.
func (fs *FlagSet) DB() *string {
	if fs.db == nil {
		var db string
		fs.StringVar(&db, "db", "", "path to the database file")
		fs.db = &db
	}
	return fs.db
}

// JSON returns a pointer to the value of the -json flag.
func (fs *FlagSet) JSON() *bool {
	if fs.json == nil {
		var json bool
		fs.BoolVar(&json, "json", false,
			"show the output of -buildinfo, -version or commands in JSON")
		fs.json = &json
	}
	return fs.json
}
