package cli

import (
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"geomap/internal/simplify"
	"geomap/internal/tui"
)

// View is the sub-command invoked when running "geomap view".
var View = newView()

func newView() *SubCommand {
	sc := &SubCommand{EnvPrefix: envPrefix}
	sc.Cmd = &cobra.Command{
		Use:   "view [file]",
		Short: "Open the terminal map viewer",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runView(sc.Conf, args)
		},
	}
	return sc
}

func runView(conf *viper.Viper, args []string) error {
	s, err := readSettings(conf, false)
	if err != nil {
		return err
	}
	log, err := newLogger(conf)
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()

	var path string
	if len(args) > 0 {
		path = args[0]
	}
	log.Info("viewer starting", zap.String("path", path),
		zap.Stringer("algorithm", s.algorithm), zap.Float64("tolerance", s.tolerance))
	err = tui.Run(tui.Config{
		Simplify:  s.flags&simplify.GeometrySimplification != 0,
		Algorithm: s.algorithm,
		Envelope:  s.flags&simplify.EnvelopeReplacement != 0,
		Tolerance: s.tolerance,
		Workers:   s.workers,
		Logger:    log,
	}, path)
	return errors.Wrap(err, "viewer")
}
