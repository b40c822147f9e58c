package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/hanayashiki/es-resolve/internal/fs"
	"github.com/hanayashiki/es-resolve/internal/resolver"
)

var batchCmd = &cobra.Command{
	Use:   "batch [file]",
	Short: "Resolve many specifiers concurrently",
	Long: `batch reads "<target> <from>" pairs, one per line, from file (or stdin
if file is omitted), resolves them concurrently, and prints one result per
line in input order: the resolved path, or "ERROR: <message>".`,
	Args: cobra.MaximumNArgs(1),
	RunE: runBatch,
}

func runBatch(cmd *cobra.Command, args []string) error {
	in := cmd.InOrStdin()
	if len(args) == 1 {
		f, err := os.Open(args[0])
		if err != nil {
			return fmt.Errorf("opening %s: %w", args[0], err)
		}
		defer f.Close()
		in = f
	}

	env, err := targetEnvFromConfig()
	if err != nil {
		return err
	}

	var requests []resolver.Request
	scanner := bufio.NewScanner(in)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		fields := strings.Fields(line)
		if len(fields) != 2 {
			return fmt.Errorf("malformed line %q: expected \"<target> <from>\"", line)
		}
		requests = append(requests, resolver.Request{Target: fields[0], From: fields[1], Env: env})
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("reading input: %w", err)
	}

	results, err := resolver.BatchResolve(context.Background(), fs.RealFS(), newLog(), optionsFromConfig(env), requests)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	for _, result := range results {
		if result.Err != nil {
			fmt.Fprintln(out, "ERROR:", result.Err)
			continue
		}
		fmt.Fprintln(out, result.Path)
	}
	return nil
}
