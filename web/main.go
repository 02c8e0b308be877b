package main

import (
	"log/slog"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/df07/go-whitted-raytracer/pkg/config"
	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/web/server"
)

func main() {
	var cfgFile string

	cmd := &cobra.Command{
		Use:          "raytracer-web",
		Short:        "HTTP API for rendering and inspecting scenes",
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			v := viper.New()
			for key, flag := range map[string]string{
				"port":       "port",
				"scenes_dir": "scenes-dir",
				"workers":    "workers",
				"log_level":  "log-level",
			} {
				if err := v.BindPFlag(key, cmd.Flags().Lookup(flag)); err != nil {
					return err
				}
			}

			cfg, err := config.Load(v, cfgFile)
			if err != nil {
				return err
			}

			level, _ := cfg.SlogLevel()
			logger := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
			slog.SetDefault(logger)
			core.SetLogger(logger)

			logger.Info("whitted raytracer web server", "port", cfg.Port, "scenes_dir", cfg.ScenesDir)
			return server.NewServer(cfg, logger).Start()
		},
	}

	cmd.Flags().StringVar(&cfgFile, "config", "", "config file (default is ./raytracer.yaml or $HOME/.raytracer/raytracer.yaml)")
	cmd.Flags().Int("port", 8080, "Port to serve on")
	cmd.Flags().String("scenes-dir", "scenes", "directory searched for YAML scene files")
	cmd.Flags().Int("workers", 0, "number of parallel workers per render (0 = number of CPUs)")
	cmd.Flags().String("log-level", "info", "log level: debug, info, warn, error")

	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
