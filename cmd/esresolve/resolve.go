package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/hanayashiki/es-resolve/internal/fs"
	"github.com/hanayashiki/es-resolve/internal/resolver"
)

var resolveCmd = &cobra.Command{
	Use:   "resolve <target> <from>",
	Short: "Resolve a single module specifier",
	Args:  cobra.ExactArgs(2),
	Example: `  # Resolve a relative import
  esresolve resolve ./util.js src/index.ts

  # Resolve a bare specifier as a browser bundle would see it
  esresolve resolve lodash/map src/index.ts --env browser`,
	RunE: runResolve,
}

func runResolve(cmd *cobra.Command, args []string) error {
	target, from := args[0], args[1]

	env, err := targetEnvFromConfig()
	if err != nil {
		return err
	}

	r := resolver.NewWithOptions(fs.RealFS(), newLog(), optionsFromConfig(env))
	path, err := r.Resolve(target, from, env)
	if err != nil {
		var resolveErr *resolver.Error
		if errors.As(err, &resolveErr) {
			return fmt.Errorf("%s: %s", resolveErr.Kind, resolveErr.Message)
		}
		return err
	}

	fmt.Fprintln(cmd.OutOrStdout(), path)
	return nil
}
