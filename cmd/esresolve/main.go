// Command esresolve resolves JS/TS module specifiers from the command line,
// for scripting and for debugging a bundler's resolution of a single import.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/hanayashiki/es-resolve/internal/config"
	"github.com/hanayashiki/es-resolve/internal/logger"
	"github.com/hanayashiki/es-resolve/internal/resolver"
)

var rootCmd = &cobra.Command{
	Use:   "esresolve",
	Short: "Resolve JS/TS module specifiers the way Node and bundlers do",
	Long: `esresolve reproduces Node.js and bundler module resolution: given a
specifier, the file that imports it, and a target environment, it prints the
absolute path (or core module name) the import would resolve to.`,
}

var cfg *viper.Viper

func init() {
	rootCmd.PersistentFlags().String(config.KeyEnv, "node", "target environment: node or browser")
	rootCmd.PersistentFlags().StringSlice(config.KeyConditions, nil, "extra export conditions, added to the defaults")
	rootCmd.PersistentFlags().StringSlice(config.KeyExtensions, nil, "override the default extension probe order")
	rootCmd.PersistentFlags().BoolP(config.KeyVerbose, "v", false, "emit debug diagnostics to stderr")
	rootCmd.PersistentFlags().Bool(config.KeyNoColor, false, "disable colorized diagnostics")

	loaded, err := config.Load(rootCmd.PersistentFlags())
	if err != nil {
		fmt.Fprintln(os.Stderr, "esresolve: loading config:", err)
		os.Exit(1)
	}
	cfg = loaded

	rootCmd.AddCommand(resolveCmd)
	rootCmd.AddCommand(batchCmd)
	rootCmd.AddCommand(tsconfigCmd)
}

// newLog builds the Log the active command should write diagnostics to,
// honoring --verbose and --no-color.
func newLog() logger.Log {
	if !cfg.GetBool(config.KeyVerbose) {
		return logger.Discard
	}
	w := os.Stderr
	if cfg.GetBool(config.KeyNoColor) {
		return logger.NewTerminalLog(noColorWriter{w})
	}
	return logger.NewTerminalLog(w)
}

// noColorWriter is a plain io.Writer, never an *os.File, so
// logger.NewTerminalLog's TTY probe always resolves to "no colors".
type noColorWriter struct{ w *os.File }

func (n noColorWriter) Write(p []byte) (int, error) { return n.w.Write(p) }

func targetEnvFromConfig() (resolver.TargetEnv, error) {
	switch cfg.GetString(config.KeyEnv) {
	case "node", "":
		return resolver.Node, nil
	case "browser":
		return resolver.Browser, nil
	default:
		return 0, fmt.Errorf("invalid --%s %q: must be \"node\" or \"browser\"", config.KeyEnv, cfg.GetString(config.KeyEnv))
	}
}

// optionsFromConfig builds resolver.Options from the environment defaults,
// adding any --conditions the user supplied to the default condition list
// and replacing the default extension order with any --extensions.
func optionsFromConfig(env resolver.TargetEnv) resolver.Options {
	options := resolver.DefaultOptions(env)
	if extra := cfg.GetStringSlice(config.KeyConditions); len(extra) > 0 {
		options.Conditions = append(append([]string{}, extra...), options.Conditions...)
	}
	if extensions := cfg.GetStringSlice(config.KeyExtensions); len(extensions) > 0 {
		options.Extensions = extensions
	}
	return options
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "esresolve:", err)
		os.Exit(1)
	}
}
