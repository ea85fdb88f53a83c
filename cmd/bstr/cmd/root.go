package cmd

import (
	"Byte_String"
	"Byte_String/alloc"
	"Byte_String/config"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

// app carries the state shared by all subcommands.
type app struct {
	cfgFile   string
	verbose   bool
	allocator alloc.Allocator
}

// opts returns the constructor options every command uses.
func (a *app) opts() []Byte_String.Option {
	return []Byte_String.Option{Byte_String.WithAllocator(a.allocator)}
}

func (a *app) setup(cmd *cobra.Command, args []string) error {
	cfg := config.Default()
	if a.cfgFile != "" {
		loaded, err := config.Load(a.cfgFile)
		if err != nil {
			return err
		}
		cfg = loaded
	}

	level := cfg.Log.Level
	if a.verbose {
		level = "debug"
	}
	if err := Byte_String.SetLogLevel(level); err != nil {
		return err
	}

	a.allocator = cfg.NewAllocator()
	logrus.Debugf("using %s allocator", cfg.Allocator.Kind)
	return nil
}

func (a *app) teardown(cmd *cobra.Command, args []string) {
	if s, ok := a.allocator.(alloc.Stats); ok {
		logrus.WithFields(logrus.Fields(s.Stats())).Debug("allocator stats")
	}
}

// newRootCmd builds the command tree.
func newRootCmd() *cobra.Command {
	a := &app{}
	root := &cobra.Command{
		Use:   "bstr",
		Short: "Owned, growable byte strings",
		Long: `bstr exercises the Byte_String library from the command line.

Commands:
  demo     - walk through construction, copy, move, growth and comparison
  concat   - concatenate two strings
  unique   - bytes of each string that never appear in the other
  compare  - lexicographic comparison`,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: a.setup,
		PersistentPostRun: a.teardown,
	}
	root.PersistentFlags().StringVar(&a.cfgFile, "config", "", "config file (TOML or YAML)")
	root.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "verbose output")

	root.AddCommand(
		newDemoCmd(a),
		newConcatCmd(a),
		newUniqueCmd(a),
		newCompareCmd(a),
	)
	return root
}

func Execute() error {
	return newRootCmd().Execute()
}
