// Package cli wires the geomap commands.
package cli

import (
	"fmt"
	"os"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// RootCmd opens the viewer when called without a subcommand.
var RootCmd = &cobra.Command{
	Use:   "geomap [file]",
	Short: "geomap: terminal geometry viewer and toolkit",
	Long: `
geomap renders GeoJSON, CSV, KML, WKT and WKB files as braille maps in the
terminal, simplifying geometries to the current map scale, and converts or
simplifies them in batch.
`,
	Args:          cobra.MaximumNArgs(1),
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runView(rootConf, args)
	},
}

// Execute runs the root command. It is called by main.main().
func Execute() {
	if err := RootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

const envPrefix = "GEOMAP"

var rootConf = viper.New()

var subcommands = []*SubCommand{View, Info, Simplify, Convert}

func init() {
	flag := RootCmd.PersistentFlags()
	flag.String("config", "",
		"Configuration file. Takes precedence over default values, but is "+
			"overridden to values set with environment variables and flags.")
	flag.String("algorithm", "distance",
		"Simplification algorithm, one of [distance, snaptogrid, visvalingam].")
	flag.Float64("tolerance", 1,
		"Simplification tolerance: micro-pixels in the viewer, map units in batch commands.")
	flag.Bool("simplify", false, "Simplify geometries in the viewer at startup.")
	flag.Bool("envelope", false,
		"Replace geometries smaller than the tolerance by their bounding box.")
	flag.Int("workers", 0, "Concurrent simplification workers; 0 uses GOMAXPROCS.")
	flag.String("log_file", "", "Write JSON logs to this file, rotated at 100 MB.")
	flag.String("log_level", "info", "Log level, one of [debug, info, warn, error].")
	bind(rootConf, flag)

	for _, sc := range subcommands {
		RootCmd.AddCommand(sc.Cmd)
		sc.Conf = viper.New()
		bind(sc.Conf, sc.Cmd.Flags())
		bind(sc.Conf, RootCmd.PersistentFlags())
		sc.Conf.SetEnvPrefix(sc.EnvPrefix)
		sc.Conf.AutomaticEnv()
	}
	rootConf.SetEnvPrefix(envPrefix)
	rootConf.AutomaticEnv()

	cobra.OnInitialize(func() {
		cfg := rootConf.GetString("config")
		if cfg == "" {
			return
		}
		for _, conf := range append([]*viper.Viper{rootConf}, confs()...) {
			conf.SetConfigFile(cfg)
			if err := conf.ReadInConfig(); err != nil {
				fmt.Fprintln(os.Stderr, errors.Wrap(err, "reading config"))
				os.Exit(1)
			}
		}
	})
}

func confs() []*viper.Viper {
	out := make([]*viper.Viper, len(subcommands))
	for i, sc := range subcommands {
		out[i] = sc.Conf
	}
	return out
}
