package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var cfgFile string

var rootCmd = &cobra.Command{
	Use:   "seca-probe",
	Short: "Beginner web exposure probe over plain HTTP (authorized targets only)",
	Long: `seca-probe checks a single host for elementary web-security misconfigurations:
missing HTTPS, admin pages answering without authentication, and credential-like
strings in responses. Only probe hosts you are authorized to test.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// init config
		if cfgFile != "" {
			viper.SetConfigFile(cfgFile)
		} else {
			viper.AddConfigPath("$HOME")
			viper.SetConfigName(".seca-probe")
			viper.SetConfigType("yaml")
		}

		if err := viper.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if cfgFile != "" || !errors.As(err, &notFound) {
				return fmt.Errorf("failed to read config: %w", err)
			}
		}

		applyConfigDefaults(cmd)
		if err := cliConfig.Validate(); err != nil {
			return &InputError{Input: "configuration", Err: err}
		}

		// init logger
		l, err := newLogger(cliConfig.LogLevel)
		if err != nil {
			return err
		}

		storeAppContext(cmd, &AppContext{
			Logger: l,
			Config: cliConfig,
		})

		if used := viper.ConfigFileUsed(); used != "" {
			l.Debugw("config loaded", "path", used)
		}
		return nil
	},
}

// newLogger builds a production zap logger writing to stderr, so stdout carries
// only findings.
func newLogger(level string) (*zap.SugaredLogger, error) {
	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		return nil, &InputError{Input: level, Err: fmt.Errorf("invalid log level: %w", err)}
	}

	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(lvl)
	cfg.OutputPaths = []string{"stderr"}
	cfg.ErrorOutputPaths = []string{"stderr"}

	l, err := cfg.Build()
	if err != nil {
		return nil, fmt.Errorf("failed to build logger: %w", err)
	}
	return l.Sugar(), nil
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, colorError("Error:"), err)
		os.Exit(exitCodeFor(err))
	}
}

func init() {
	// config file flag
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.seca-probe.yaml)")
	rootCmd.PersistentFlags().StringVar(&cliConfig.LogLevel, "log-level", cliConfig.LogLevel, "log level for diagnostics on stderr (debug|info|warn|error)")

	// add subcommands
	rootCmd.AddCommand(scanCmd)
	rootCmd.AddCommand(versionCmd)
}
