// Package config loads CLI settings from flags, ES_RESOLVE_*-prefixed
// environment variables, and an optional .esresolve.yaml (or .json/.toml)
// file, in that order of precedence, following the flag-binding pattern the
// teacher pack's import-map generator uses for its own cobra commands.
package config

import (
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// Keys are the viper keys this package recognizes. Load binds the flag set
// it is given (the root command's persistent flags) to these same keys with
// BindPFlags, so that a flag, a config file entry, and an environment
// variable all set the same setting.
const (
	KeyEnv        = "env"        // "node" or "browser"
	KeyConditions = "conditions" // extra export conditions, added to the defaults
	KeyExtensions = "extensions" // override the default extension probe order
	KeyVerbose    = "verbose"    // emit debug diagnostics to stderr
	KeyNoColor    = "no-color"   // disable TerminalLog colorizing
)

// Load builds a *viper.Viper that reads, in increasing precedence: defaults,
// a config file named .esresolve (yaml/json/toml, searched for in the
// current directory and $HOME), ES_RESOLVE_*-prefixed environment
// variables, and finally any flags already bound into flags.
func Load(flags *pflag.FlagSet) (*viper.Viper, error) {
	v := viper.New()

	v.SetDefault(KeyEnv, "node")
	v.SetDefault(KeyVerbose, false)
	v.SetDefault(KeyNoColor, false)

	v.SetConfigName(".esresolve")
	v.AddConfigPath(".")
	v.AddConfigPath("$HOME")

	v.SetEnvPrefix("es_resolve")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		if _, notFound := err.(viper.ConfigFileNotFoundError); !notFound {
			return nil, err
		}
	}

	if flags != nil {
		if err := v.BindPFlags(flags); err != nil {
			return nil, err
		}
	}

	return v, nil
}
