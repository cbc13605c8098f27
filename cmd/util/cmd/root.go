package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/onflow/flow-qrinfo/cmd/util/cmd/common"
	readquorumsnapshot "github.com/onflow/flow-qrinfo/cmd/util/cmd/read-quorum-snapshot"
	rotationheights "github.com/onflow/flow-qrinfo/cmd/util/cmd/rotation-heights"
)

var (
	flagLogLevel string
)

var rootCmd = &cobra.Command{
	Use:   "qrutil",
	Short: "inspect the chain database of a quorum rotation info service",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		level, err := zerolog.ParseLevel(viper.GetString("log-level"))
		if err != nil {
			return fmt.Errorf("invalid log level: %w", err)
		}
		zerolog.SetGlobalLevel(level)
		return nil
	},
}

var RootCmd = rootCmd

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func init() {
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "log level (panic, fatal, error, warn, info, debug)")
	common.InitStorageFlags(rootCmd.PersistentFlags())

	addCommands()

	cobra.OnInitialize(initConfig)
}

func addCommands() {
	rootCmd.AddCommand(readquorumsnapshot.Cmd)
	rootCmd.AddCommand(rotationheights.Cmd)
}

// initConfig makes every persistent flag settable through a QRUTIL_ prefixed
// environment variable, e.g. QRUTIL_DATADIR.
func initConfig() {
	viper.SetEnvPrefix("qrutil")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()
	if err := viper.BindPFlags(rootCmd.PersistentFlags()); err != nil {
		log.Fatal().Err(err).Msg("could not bind flags")
	}
}
