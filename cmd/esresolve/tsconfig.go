package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/hanayashiki/es-resolve/internal/fs"
	"github.com/hanayashiki/es-resolve/internal/resolver"
)

var tsconfigCmd = &cobra.Command{
	Use:   "tsconfig <from>",
	Short: "Show the tsconfig.json/jsconfig.json that applies to a file",
	Long: `tsconfig walks upward from the directory containing <from> the same
way the resolver does, printing the path of the first tsconfig.json or
jsconfig.json it finds, its resolved baseUrl, and its compilerOptions.paths
keys (in the order they appear in the file, after "extends" has been
merged in).`,
	Args: cobra.ExactArgs(1),
	RunE: runTSConfig,
}

func runTSConfig(cmd *cobra.Command, args []string) error {
	from := args[0]

	env, err := targetEnvFromConfig()
	if err != nil {
		return err
	}

	r := resolver.NewWithOptions(fs.RealFS(), newLog(), optionsFromConfig(env))
	found, err := r.DescribeTSConfig(from)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if found == nil {
		fmt.Fprintln(out, "no tsconfig.json or jsconfig.json found")
		return nil
	}

	fmt.Fprintln(out, found.AbsPath)
	if found.BaseURL != "" {
		fmt.Fprintln(out, "baseUrl:", found.BaseURL)
	}
	if found.Paths != nil {
		fmt.Fprintln(out, "paths:")
		for _, key := range found.Paths.Keys {
			fmt.Fprintf(out, "  %s -> %v\n", key, found.Paths.Map[key])
		}
	}
	return nil
}
