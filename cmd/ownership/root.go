package main

import (
	"io"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/v4rm4n/ownership/internal/config"
	"github.com/v4rm4n/ownership/internal/demo"
)

type options struct {
	configFile string
	logLevel   string
	initial    string
	aliases    int
}

func (o *options) addFlags(fs *pflag.FlagSet) {
	fs.StringVarP(&o.configFile, "config", "c", "", "path to a yaml config file")
	fs.StringVar(&o.logLevel, "log-level", config.DefaultLogLevel, "log level written to stderr")
	fs.StringVar(&o.initial, "initial", config.DefaultInitial, "contents of the value before it is overwritten")
	fs.IntVar(&o.aliases, "aliases", config.DefaultAliases, "number of aliases to print")
}

// resolve loads the config file and applies the flags that were set.
func (o *options) resolve(fs *pflag.FlagSet) (config.Config, error) {
	cfg, err := config.Load(o.configFile)
	if err != nil {
		return cfg, err
	}
	if fs.Changed("log-level") {
		cfg.LogLevel = o.logLevel
	}
	if fs.Changed("initial") {
		cfg.Initial = o.initial
	}
	if fs.Changed("aliases") {
		cfg.Aliases = o.aliases
	}
	return cfg, cfg.Validate()
}

func newRootCmd(stdout, stderr io.Writer) *cobra.Command {
	var opts options

	cmd := &cobra.Command{
		Use:           "ownership",
		Short:         "Overwrite a string through a mutable handle and print it through two aliases",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := opts.resolve(cmd.Flags())
			if err != nil {
				return err
			}

			log := logrus.New()
			log.SetOutput(stderr)
			log.SetLevel(cfg.Level())
			log.WithFields(logrus.Fields{
				"initial": cfg.Initial,
				"aliases": cfg.Aliases,
			}).Debug("config resolved")

			return demo.New(cfg, stdout, log).Run()
		},
	}
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)
	opts.addFlags(cmd.Flags())
	return cmd
}
