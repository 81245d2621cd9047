package config

import (
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/mattsolo1/grove-projtree/pkg/project"
	"github.com/mattsolo1/grove-projtree/pkg/service"
)

var cfgFile string

// InitConfig loads viper settings. The config path comes from the --config
// flag when set, whether it was registered here or by the root command.
func InitConfig(cmd *cobra.Command) {
	if f := cmd.Flag("config"); f != nil && f.Value.String() != "" {
		cfgFile = f.Value.String()
	}
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		cobra.CheckErr(err)

		configDir := filepath.Join(home, ".config", "ptree")
		viper.AddConfigPath(configDir)
		viper.SetConfigType("yaml")
		viper.SetConfigName("config")
	}

	viper.SetEnvPrefix("PTREE")
	viper.AutomaticEnv()

	// Set defaults
	home, _ := os.UserHomeDir()
	viper.SetDefault("data_dir", filepath.Join(home, ".local", "share", "ptree"))
	viper.SetDefault("default_format", string(project.FormatYAML))
	viper.SetDefault("log_level", "warn")

	// A missing config file is fine, defaults apply.
	_ = viper.ReadInConfig()
}

// NewLogger builds the diagnostic logger from the log_level setting.
// --verbose raises it to debug.
func NewLogger(cmd *cobra.Command) *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(os.Stderr)

	if f := cmd.Flag("verbose"); f != nil && f.Value.String() == "true" {
		logger.SetLevel(logrus.DebugLevel)
		return logger
	}

	level, err := logrus.ParseLevel(viper.GetString("log_level"))
	if err != nil {
		level = logrus.WarnLevel
		logger.SetLevel(level)
		logger.WithError(err).Warn("invalid log_level, using warn")
		return logger
	}
	logger.SetLevel(level)
	return logger
}

func InitService(cmd *cobra.Command) (*service.Service, error) {
	format, err := project.ParseFormat(viper.GetString("default_format"))
	if err != nil {
		return nil, err
	}

	config := &service.Config{
		DataDir:       viper.GetString("data_dir"),
		DefaultFormat: format,
	}

	return service.New(config, NewLogger(cmd))
}

func AddGlobalFlags(cmd *cobra.Command) {
	if cmd.PersistentFlags().Lookup("config") != nil {
		return
	}
	cmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.config/ptree/config.yaml)")
}
