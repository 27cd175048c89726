// Package cli wires viper configuration, zap logging, the simulated
// broker handle, and the actor dispatcher into a cobra command tree.
package cli

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var cfgFile string

// Execute runs the root command.
func Execute() error {
	return newRootCmd().Execute()
}

func newRootCmd() *cobra.Command {
	v := viper.New()

	root := &cobra.Command{
		Use:   "kconsumerctl",
		Short: "Drive the consumer actor against a simulated broker",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if cfgFile != "" {
				v.SetConfigFile(cfgFile)
				if err := v.ReadInConfig(); err != nil {
					return err
				}
			}
			v.AutomaticEnv()
			return nil
		},
	}
	root.PersistentFlags().StringVar(&cfgFile, "config", "", "path to a YAML config file")
	root.AddCommand(newDemoCmd(v))
	return root
}
