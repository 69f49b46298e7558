// File: cmd/root.go
package cmd

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/xkilldash9x/dimnorm/internal/config"
	"github.com/xkilldash9x/dimnorm/internal/observability"
)

type contextKey string

// configKey holds the validated config.Interface in the command context.
const configKey contextKey = "config"

// NewRootCommand builds a fresh command tree. Each call owns its own viper
// instance so flags and config never leak between executions.
func NewRootCommand() *cobra.Command {
	var cfgFile string
	v := viper.New()

	rootCmd := &cobra.Command{
		Use:           "dimnorm",
		Short:         "dimnorm rewrites width and height values in markup trees as numbers.",
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			config.SetDefaults(v)

			if err := initializeConfig(v, cfgFile); err != nil {
				observability.Initialize(fallbackLoggerConfig(), zapcore.AddSync(cmd.ErrOrStderr()))
				return fmt.Errorf("failed to initialize configuration: %w", err)
			}

			cfg, err := config.NewConfigFromViper(v)
			if err != nil {
				observability.Initialize(fallbackLoggerConfig(), zapcore.AddSync(cmd.ErrOrStderr()))
				return fmt.Errorf("failed to load or validate config: %w", err)
			}

			// Standard output carries documents; all logging goes to stderr.
			observability.Initialize(cfg.Logger(), zapcore.AddSync(cmd.ErrOrStderr()))
			observability.GetLogger().Debug("Starting dimnorm", zap.String("version", Version))

			cmd.SetContext(context.WithValue(cmd.Context(), configKey, config.Interface(cfg)))
			return nil
		},
	}

	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "config file (default is ./config.yaml or ~/.dimnorm/config.yaml)")
	rootCmd.SetVersionTemplate(`{{printf "%s\n" .Version}}`)

	rootCmd.AddCommand(newNormalizeCmd())
	rootCmd.AddCommand(newVersionCmd())
	return rootCmd
}

// Execute runs the command tree with a signal-aware context. Cancellation is
// returned to the caller but not reported as a failure.
func Execute(ctx context.Context) error {
	rootCmd := NewRootCommand()
	err := rootCmd.ExecuteContext(ctx)
	if err == nil {
		return nil
	}

	logger := observability.GetLogger()
	if errors.Is(err, context.Canceled) {
		logger.Warn("Run aborted")
		return err
	}
	logger.Error("Command execution failed", zap.Error(err))
	return err
}

// initializeConfig reads the config file and DIMNORM_* environment variables.
// A missing config file is not an error; an explicit --config that cannot be
// read is.
func initializeConfig(v *viper.Viper, cfgFile string) error {
	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		for _, p := range config.SearchPaths() {
			v.AddConfigPath(p)
		}
		v.SetConfigName("config")
		v.SetConfigType("yaml")
	}

	v.SetEnvPrefix(config.EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return fmt.Errorf("error reading config file: %w", err)
		}
	}
	return nil
}

func fallbackLoggerConfig() config.LoggerConfig {
	return config.LoggerConfig{Level: "info", Format: "console", ServiceName: "dimnorm"}
}
