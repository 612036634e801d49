package cli

import (
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"geomap/internal/logging"
	"geomap/internal/simplify"
)

// SubCommand pairs a cobra command with the viper instance holding its
// settings.
type SubCommand struct {
	Cmd  *cobra.Command
	Conf *viper.Viper

	EnvPrefix string
}

func bind(conf *viper.Viper, fs *pflag.FlagSet) {
	if err := conf.BindPFlags(fs); err != nil {
		panic(err)
	}
}

// settings are the simplification keys shared by every command.
type settings struct {
	algorithm simplify.Algorithm
	flags     simplify.Flag
	tolerance float64
	workers   int
}

func readSettings(conf *viper.Viper, simplifyByDefault bool) (settings, error) {
	var s settings
	alg, err := simplify.ParseAlgorithm(conf.GetString("algorithm"))
	if err != nil {
		return s, err
	}
	s.algorithm = alg
	s.tolerance = conf.GetFloat64("tolerance")
	if s.tolerance < 0 {
		return s, errors.Errorf("tolerance must not be negative, got %g", s.tolerance)
	}
	s.workers = conf.GetInt("workers")
	if simplifyByDefault || conf.GetBool("simplify") {
		s.flags |= simplify.GeometrySimplification
	}
	if conf.GetBool("envelope") {
		s.flags |= simplify.EnvelopeReplacement
	}
	return s, nil
}

func newLogger(conf *viper.Viper) (*zap.Logger, error) {
	level, err := logging.ParseLevel(conf.GetString("log_level"))
	if err != nil {
		return nil, err
	}
	return logging.New(conf.GetString("log_file"), level), nil
}
