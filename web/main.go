package main

import (
	"os"
	"path/filepath"

	"github.com/df07/glossy/pkg/config"
	"github.com/df07/glossy/pkg/scene"
	"github.com/df07/glossy/web/server"
	"github.com/spf13/cobra"
)

func main() {
	var configPath, scenesDir string
	var port int

	cmd := &cobra.Command{
		Use:          "glossy-web",
		Short:        "Serve the shader compiler over HTTP",
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			var cfg config.Config
			var err error
			if configPath != "" {
				cfg, err = config.Load(configPath)
			} else {
				cfg, err = config.LoadOptional(config.DefaultFile)
			}
			if err != nil {
				return err
			}

			if !cmd.Flags().Changed("port") {
				port = cfg.Server.Port
			}
			if scenesDir == "" {
				scenesDir = cfg.Server.ScenesDir
			}
			if scenesDir == "" {
				scenesDir = scene.FindScenesDir("scenes", filepath.Join("..", "scenes"))
			}

			logger := cfg.Log.NewLogger(os.Stderr)
			logger.Info("glossy web server", "port", port)
			return server.NewServer(port, scenesDir, logger).Start()
		},
	}
	cmd.Flags().StringVar(&configPath, "config", "", "settings file (default ./"+config.DefaultFile+" if present)")
	cmd.Flags().IntVar(&port, "port", config.Default().Server.Port, "port to serve on")
	cmd.Flags().StringVar(&scenesDir, "scenes-dir", "", "directory of scene documents")

	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
