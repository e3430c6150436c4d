package cmd

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	scout "github.com/TFMV/scout/internal/find"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

var (
	cfgFile string
	version = "0.1.0"
)

// rootCmd represents the scout command
var rootCmd = &cobra.Command{
	Use:   "scout [flags] [path...]",
	Short: "Find filesystem entries matching the given criteria",
	Long: `scout enumerates files, directories and symlinks under one or more
root paths, filtering by name, type, size and modification time,
sequentially or with an adaptively sized parallel walker.`,
	Version:       version,
	Args:          cobra.ArbitraryArgs,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		roots := args
		if len(roots) == 0 {
			roots = []string{"."}
		}
		return runScout(cmd, roots)
	},
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "Config file (default is $HOME/.scout.yaml)")

	// Flags
	rootCmd.Flags().StringArrayP("name", "n", nil, "Glob pattern matched against entry names (repeatable)")
	rootCmd.Flags().StringArrayP("iname", "i", nil, "Case-insensitive glob pattern (repeatable)")
	rootCmd.Flags().Bool("match-all", false, "Require every pattern to match instead of any")
	rootCmd.Flags().StringP("type", "t", "", "Keep only entries of this type (f|d|l)")
	rootCmd.Flags().Int("max-depth", 0, "Deepest directory level to enter (at least 1; unset means unlimited)")
	rootCmd.Flags().BoolP("follow-links", "L", false, "Follow directory symlinks")
	rootCmd.Flags().BoolP("hidden", "H", false, "Include hidden entries")
	rootCmd.Flags().BoolP("parallel", "p", false, "Traverse with the parallel walker")
	rootCmd.Flags().Bool("ignore-permission-errors", true, "Skip unreadable paths instead of aborting")
	rootCmd.Flags().Bool("ignore-io-errors", false, "Skip paths failing with I/O errors instead of aborting")
	rootCmd.Flags().Int("min-threads", 0, "Lower bound on parallel workers")
	rootCmd.Flags().Int("max-threads", 0, "Upper bound on parallel workers")
	rootCmd.Flags().Int("dirs-per-thread", 0, "Directories each worker is expected to absorb")
	rootCmd.Flags().Bool("no-auto-adjust", false, "Size the pool at min-threads instead of adapting")
	rootCmd.Flags().Bool("absolute", false, "Print absolute paths")
	rootCmd.Flags().Bool("relative", false, "Print paths relative to the walk root")
	rootCmd.Flags().String("ignore-file", "", "Load gitignore-syntax exclusion rules from this file")
	rootCmd.Flags().BoolP("verbose", "v", false, "Enable debug logging")
	rootCmd.Flags().Bool("silent", false, "Disable logging")
	rootCmd.Flags().Bool("no-color", false, "Disable colorized output")
	rootCmd.Flags().Bool("summary", false, "Print match count and timing to stderr")

	rootCmd.MarkFlagsMutuallyExclusive("name", "iname")
	rootCmd.MarkFlagsMutuallyExclusive("absolute", "relative")
	rootCmd.MarkFlagsMutuallyExclusive("verbose", "silent")

	// Bind flags to viper
	viper.BindPFlag("name", rootCmd.Flags().Lookup("name"))
	viper.BindPFlag("iname", rootCmd.Flags().Lookup("iname"))
	viper.BindPFlag("match-all", rootCmd.Flags().Lookup("match-all"))
	viper.BindPFlag("type", rootCmd.Flags().Lookup("type"))
	viper.BindPFlag("max-depth", rootCmd.Flags().Lookup("max-depth"))
	viper.BindPFlag("follow-links", rootCmd.Flags().Lookup("follow-links"))
	viper.BindPFlag("hidden", rootCmd.Flags().Lookup("hidden"))
	viper.BindPFlag("parallel", rootCmd.Flags().Lookup("parallel"))
	viper.BindPFlag("ignore-permission-errors", rootCmd.Flags().Lookup("ignore-permission-errors"))
	viper.BindPFlag("ignore-io-errors", rootCmd.Flags().Lookup("ignore-io-errors"))
	viper.BindPFlag("min-threads", rootCmd.Flags().Lookup("min-threads"))
	viper.BindPFlag("max-threads", rootCmd.Flags().Lookup("max-threads"))
	viper.BindPFlag("dirs-per-thread", rootCmd.Flags().Lookup("dirs-per-thread"))
	viper.BindPFlag("no-auto-adjust", rootCmd.Flags().Lookup("no-auto-adjust"))
	viper.BindPFlag("absolute", rootCmd.Flags().Lookup("absolute"))
	viper.BindPFlag("relative", rootCmd.Flags().Lookup("relative"))
	viper.BindPFlag("ignore-file", rootCmd.Flags().Lookup("ignore-file"))
	viper.BindPFlag("verbose", rootCmd.Flags().Lookup("verbose"))
	viper.BindPFlag("silent", rootCmd.Flags().Lookup("silent"))
	viper.BindPFlag("no-color", rootCmd.Flags().Lookup("no-color"))
	viper.BindPFlag("summary", rootCmd.Flags().Lookup("summary"))
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	if cfgFile != "" {
		// Use config file from the flag.
		viper.SetConfigFile(cfgFile)
	} else {
		// Find home directory.
		home, err := os.UserHomeDir()
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}

		// Search config in home directory with name ".scout" (without extension).
		viper.AddConfigPath(home)
		viper.SetConfigType("yaml")
		viper.SetConfigName(".scout")
	}

	viper.SetEnvPrefix("scout")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv() // read in environment variables that match

	// If a config file is found, read it in.
	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

// runScout validates the roots, assembles options and filters from the
// bound flags, and walks each root in turn.
func runScout(cmd *cobra.Command, roots []string) error {
	for _, root := range roots {
		if _, err := os.Stat(root); err != nil {
			return fmt.Errorf("invalid path %q: %w", root, err)
		}
	}

	opts, err := buildOptions(cmd)
	if err != nil {
		return err
	}
	filters, formatFilter, err := buildFilters()
	if err != nil {
		return err
	}
	if formatFilter != nil {
		filters = append(filters, formatFilter)
	}

	printer := newPrinter(os.Stdout, formatFilter, viper.GetBool("no-color"))
	finder := scout.NewFinder(opts, filters...)
	ctx := context.Background()

	start := time.Now()
	matched := 0

	for _, root := range roots {
		if viper.GetBool("parallel") {
			for res := range finder.Stream(ctx, root) {
				if res.Err != nil {
					return res.Err
				}
				printer.print(root, res.Entry)
				matched++
			}
		} else {
			entries, err := finder.Find(ctx, root)
			if err != nil {
				return err
			}
			for _, e := range entries {
				printer.print(root, e)
			}
			matched += len(entries)
		}
	}

	if viper.GetBool("summary") {
		fmt.Fprintf(os.Stderr, "%d entries in %s\n", matched, time.Since(start).Round(time.Millisecond))
	}
	return nil
}

// buildOptions assembles engine options from the bound flags.
func buildOptions(cmd *cobra.Command) (scout.Options, error) {
	opts := scout.DefaultOptions()

	depth := viper.GetInt("max-depth")
	switch {
	case depth < 0, depth == 0 && cmd.Flags().Changed("max-depth"):
		return opts, fmt.Errorf("invalid max-depth %d: must be at least 1", depth)
	case depth > 0:
		opts.MaxDepth = depth
	}

	opts.FollowLinks = viper.GetBool("follow-links")
	opts.IncludeHidden = viper.GetBool("hidden")
	opts.IgnorePermissionErrors = viper.GetBool("ignore-permission-errors")
	opts.IgnoreIOErrors = viper.GetBool("ignore-io-errors")

	threadFlags := []struct {
		key string
		dst *int
	}{
		{"min-threads", &opts.Threads.MinThreads},
		{"max-threads", &opts.Threads.MaxThreads},
		{"dirs-per-thread", &opts.Threads.DirsPerThread},
	}
	for _, tf := range threadFlags {
		n := viper.GetInt(tf.key)
		if cmd.Flags().Changed(tf.key) && n < 1 {
			return opts, fmt.Errorf("invalid %s %d: must be at least 1", tf.key, n)
		}
		if n > 0 {
			*tf.dst = n
		}
	}
	if viper.GetBool("no-auto-adjust") {
		opts.Threads.AutoAdjust = false
	}

	if file := viper.GetString("ignore-file"); file != "" {
		ex, err := scout.NewExcluderFromFile(file)
		if err != nil {
			return opts, err
		}
		opts.Exclude = ex
	}

	switch {
	case viper.GetBool("silent"):
		opts.Logger = zap.NewNop()
	case viper.GetBool("verbose"):
		opts.LogLevel = scout.LogLevelDebug
	default:
		opts.LogLevel = scout.LogLevelWarn
	}
	return opts, nil
}

// buildFilters assembles the filter pipeline from the bound flags. The
// returned PathFormatFilter is nil when no display format was chosen.
func buildFilters() ([]scout.Filter, *scout.PathFormatFilter, error) {
	var filters []scout.Filter

	patterns := viper.GetStringSlice("name")
	ignoreCase := false
	if len(patterns) == 0 {
		if inames := viper.GetStringSlice("iname"); len(inames) > 0 {
			patterns = inames
			ignoreCase = true
		}
	}
	switch {
	case len(patterns) == 1:
		nf, err := scout.NewNameFilter(patterns[0], ignoreCase)
		if err != nil {
			return nil, nil, err
		}
		filters = append(filters, nf)
	case len(patterns) > 1:
		mode := scout.MatchAny
		if viper.GetBool("match-all") {
			mode = scout.MatchAll
		}
		mf, err := scout.NewMultiNameFilter(patterns, ignoreCase, mode)
		if err != nil {
			return nil, nil, err
		}
		filters = append(filters, mf)
	}

	if code := viper.GetString("type"); code != "" {
		tf, err := scout.NewTypeFilter(code)
		if err != nil {
			return nil, nil, err
		}
		filters = append(filters, tf)
	}

	var formatFilter *scout.PathFormatFilter
	switch {
	case viper.GetBool("absolute"):
		formatFilter = scout.NewPathFormatFilter(scout.FormatAbsolute)
	case viper.GetBool("relative"):
		formatFilter = scout.NewPathFormatFilter(scout.FormatRelative)
	}
	return filters, formatFilter, nil
}
