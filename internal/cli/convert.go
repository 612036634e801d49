package cli

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"geomap/internal/source"
)

// Convert is the sub-command invoked when running "geomap convert".
var Convert = newConvert()

func newConvert() *SubCommand {
	sc := &SubCommand{EnvPrefix: envPrefix}
	sc.Cmd = &cobra.Command{
		Use:   "convert <file>",
		Short: "Re-encode a file as WKT, hex WKB or GeoJSON",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			log, err := newLogger(sc.Conf)
			if err != nil {
				return err
			}
			defer func() { _ = log.Sync() }()
			ds, err := source.Load(args[0])
			if err != nil {
				return err
			}
			log.Info("converting", zap.String("path", args[0]),
				zap.Int("features", len(ds.Features)), zap.String("output", sc.Conf.GetString("output")))
			return write(cmd.OutOrStdout(), ds.Features,
				sc.Conf.GetString("output"), sc.Conf.GetInt("precision"))
		},
	}
	outputFlags(sc)
	return sc
}
