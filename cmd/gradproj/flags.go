package main

import (
	"github.com/spf13/pflag"
)

// Command flags are declared without defaults that matter: a flag only
// overrides the loaded configuration when it was set on the command line.

func overrideString(fs *pflag.FlagSet, name string, target *string) {
	if fs.Changed(name) {
		if v, err := fs.GetString(name); err == nil {
			*target = v
		}
	}
}

func overrideInt(fs *pflag.FlagSet, name string, target *int) {
	if fs.Changed(name) {
		if v, err := fs.GetInt(name); err == nil {
			*target = v
		}
	}
}

func overrideBool(fs *pflag.FlagSet, name string, target *bool) {
	if fs.Changed(name) {
		if v, err := fs.GetBool(name); err == nil {
			*target = v
		}
	}
}
