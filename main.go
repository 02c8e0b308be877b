package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/df07/go-whitted-raytracer/pkg/config"
	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/loaders"
	"github.com/df07/go-whitted-raytracer/pkg/renderer"
	"github.com/df07/go-whitted-raytracer/pkg/scene"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var cfgFile string

	rootCmd := &cobra.Command{
		Use:   "raytracer",
		Short: "Recursive Whitted-style ray tracer",
		Long: `Renders built-in or YAML scenes with recursive ray tracing: Phong shading,
hard shadows, mirror reflection and refraction up to a fixed depth.`,
		SilenceUsage: true,
	}

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./raytracer.yaml or $HOME/.raytracer/raytracer.yaml)")
	rootCmd.PersistentFlags().String("log-level", "info", "log level: debug, info, warn, error")

	rootCmd.AddCommand(
		renderCmd(&cfgFile),
		scenesCmd(&cfgFile),
		inspectCmd(&cfgFile),
		statsCmd(),
		configCmd(&cfgFile),
	)

	return rootCmd
}

// loadConfig resolves the configuration with the command's flags bound over
// env vars and the config file. Flag names use dashes, config keys underscores.
func loadConfig(cmd *cobra.Command, cfgFile string) (*config.Config, error) {
	v := viper.New()

	var bindErr error
	cmd.Flags().VisitAll(func(f *pflag.Flag) {
		if f.Name == "config" || bindErr != nil {
			return
		}
		bindErr = v.BindPFlag(strings.ReplaceAll(f.Name, "-", "_"), f)
	})
	if bindErr != nil {
		return nil, fmt.Errorf("failed to bind flags: %w", bindErr)
	}

	cfg, err := config.Load(v, cfgFile)
	if err != nil {
		return nil, err
	}

	setupLogger(cmd.ErrOrStderr(), cfg)
	return cfg, nil
}

// setupLogger installs a text logger at the configured level
func setupLogger(w io.Writer, cfg *config.Config) {
	level, _ := cfg.SlogLevel()
	logger := slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
	core.SetLogger(logger)
}

// createScene resolves a scene by built-in name, by a YAML file in scenesDir
// (with or without the "file:" prefix used by scene discovery), or by path
func createScene(name, scenesDir string) (*scene.Scene, error) {
	if name == "" {
		return nil, fmt.Errorf("no scene given (available: %s)", strings.Join(scene.Names(), ", "))
	}

	if s, err := scene.Create(name); err == nil {
		return s, nil
	}

	if ext := filepath.Ext(name); ext == ".yaml" || ext == ".yml" {
		return loaders.LoadScene(name)
	}

	base := strings.TrimPrefix(name, "file:")
	for _, ext := range []string{".yaml", ".yml"} {
		path := filepath.Join(scenesDir, base+ext)
		if _, err := os.Stat(path); err == nil {
			return loaders.LoadScene(path)
		}
	}

	return nil, fmt.Errorf("%w: %q is neither a built-in scene nor a scene file in %s (built-in: %s)",
		scene.ErrUnknownScene, name, scenesDir, strings.Join(scene.Names(), ", "))
}

// applyOverrides replaces scene settings that the configuration sets explicitly
func applyOverrides(s *scene.Scene, cfg *config.Config) {
	if cfg.Width > 0 {
		s.Width = cfg.Width
	}
	if cfg.Height > 0 {
		s.Height = cfg.Height
	}
	if cfg.MaxDepth >= 0 {
		s.MaxDepth = cfg.MaxDepth
	}
}

// sceneOutputName turns a scene reference into a directory-safe name
func sceneOutputName(name string) string {
	name = strings.TrimPrefix(name, "file:")
	return strings.TrimSuffix(filepath.Base(name), filepath.Ext(name))
}

func renderCmd(cfgFile *string) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "render",
		Short: "Render a scene to an image file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd, *cfgFile)
			if err != nil {
				return err
			}

			sceneName, _ := cmd.Flags().GetString("scene")
			sceneFile, _ := cmd.Flags().GetString("scene-file")
			output, _ := cmd.Flags().GetString("output")

			var s *scene.Scene
			if sceneFile != "" {
				sceneName = sceneFile
				s, err = loaders.LoadScene(sceneFile)
			} else {
				s, err = createScene(sceneName, cfg.ScenesDir)
			}
			if err != nil {
				return err
			}
			applyOverrides(s, cfg)

			raytracer := renderer.NewRaytracer(s, renderer.Config{
				NumWorkers:  cfg.Workers,
				RowsPerTask: cfg.RowsPerTask,
			})

			pixels, stats, err := raytracer.Render()
			if err != nil {
				return err
			}

			img, err := renderer.BuildImage(s.Width, s.Height, pixels)
			if err != nil {
				return fmt.Errorf("failed to assemble image: %w", err)
			}

			format := cfg.ImageFormat()
			if output == "" {
				timestamp := time.Now().Format("20060102_150405")
				output = filepath.Join(cfg.OutputDir, sceneOutputName(sceneName),
					fmt.Sprintf("render_%s%s", timestamp, format.Extension()))
			} else if ext := filepath.Ext(output); ext != "" {
				if format, err = loaders.ParseFormat(ext); err != nil {
					return err
				}
			}

			if err := loaders.SaveImage(output, img, format); err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Render completed in %v (%dx%d, %d workers)\n",
				stats.Duration.Round(time.Millisecond), stats.Width, stats.Height, stats.NumWorkers)
			fmt.Fprintf(out, "Hit pixels: %d/%d (%.1f%%), mean luminance %.3f (std dev %.3f)\n",
				stats.HitPixels, stats.TotalPixels, 100*stats.HitRatio(), stats.MeanLuminance, stats.LuminanceStdDev)
			fmt.Fprintf(out, "Render saved as %s\n", output)
			return nil
		},
	}

	cmd.Flags().String("scene", "default", "built-in scene name, scene file name in the scenes directory, or path to a .yaml scene")
	cmd.Flags().String("scene-file", "", "path to a YAML scene file (overrides --scene)")
	cmd.Flags().String("output", "", "output file (default <output-dir>/<scene>/render_<timestamp>.<format>)")
	addRenderSettingFlags(cmd)

	return cmd
}

// addRenderSettingFlags registers the flags that map onto config keys
func addRenderSettingFlags(cmd *cobra.Command) {
	cmd.Flags().Int("width", 0, "image width (0 keeps the scene's width)")
	cmd.Flags().Int("height", 0, "image height (0 keeps the scene's height)")
	cmd.Flags().Int("max-depth", -1, "maximum recursion depth (-1 keeps the scene's depth)")
	cmd.Flags().Int("workers", 0, "number of parallel workers (0 = number of CPUs)")
	cmd.Flags().Int("rows-per-task", 8, "image rows per worker task")
	cmd.Flags().String("format", "png", "output format: png, bmp or tiff")
	cmd.Flags().String("output-dir", "output", "directory for renders when --output is not set")
	cmd.Flags().String("scenes-dir", "scenes", "directory searched for YAML scene files")
}

func scenesCmd(cfgFile *string) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "scenes",
		Short: "List built-in scenes and scene files",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd, *cfgFile)
			if err != nil {
				return err
			}

			response, err := scene.ListAllScenes(cfg.ScenesDir)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			for _, group := range response.Groups {
				fmt.Fprintf(out, "%s:\n", group.Name)
				for _, s := range group.Scenes {
					if s.Description != "" {
						fmt.Fprintf(out, "  %-20s %s - %s\n", s.ID, s.DisplayName, s.Description)
					} else {
						fmt.Fprintf(out, "  %-20s %s\n", s.ID, s.DisplayName)
					}
				}
			}
			return nil
		},
	}

	cmd.Flags().String("scenes-dir", "scenes", "directory searched for YAML scene files")

	return cmd
}

func inspectCmd(cfgFile *string) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "inspect",
		Short: "Trace the primary ray through one pixel and describe the hit",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd, *cfgFile)
			if err != nil {
				return err
			}

			sceneName, _ := cmd.Flags().GetString("scene")
			x, _ := cmd.Flags().GetInt("x")
			y, _ := cmd.Flags().GetInt("y")

			s, err := createScene(sceneName, cfg.ScenesDir)
			if err != nil {
				return err
			}
			applyOverrides(s, cfg)

			result, err := renderer.InspectPixel(s, y, x)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Pixel (%d, %d) ray direction %v\n", x, y, result.Ray.Direction)
			if !result.Hit {
				fmt.Fprintln(out, "No hit")
				return nil
			}
			fmt.Fprintf(out, "Hit object %d %q at distance %.4f\n", result.ObjectID, result.Object.Name, result.HitRecord.T)
			fmt.Fprintf(out, "Point %v normal %v front face %v\n",
				core.Vec3(result.HitRecord.Point), result.HitRecord.Normal, result.HitRecord.FrontFace)
			fmt.Fprintf(out, "Color %v -> RGB %v\n", result.Color, result.Pixel)
			return nil
		},
	}

	cmd.Flags().String("scene", "default", "scene to inspect")
	cmd.Flags().Int("x", 0, "pixel column")
	cmd.Flags().Int("y", 0, "pixel row")
	cmd.Flags().Int("width", 0, "image width (0 keeps the scene's width)")
	cmd.Flags().Int("height", 0, "image height (0 keeps the scene's height)")
	cmd.Flags().Int("max-depth", -1, "maximum recursion depth (-1 keeps the scene's depth)")
	cmd.Flags().String("scenes-dir", "scenes", "directory searched for YAML scene files")

	return cmd
}

func statsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "stats IMAGE",
		Short: "Print size and luminance statistics of a rendered image",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			width, height, pixels, err := loaders.LoadPixels(args[0])
			if err != nil {
				return err
			}

			mean, stdDev := renderer.CalculateLuminanceStats(pixels)
			black := 0
			for p := 0; p < len(pixels); p += 3 {
				if pixels[p] == 0 && pixels[p+1] == 0 && pixels[p+2] == 0 {
					black++
				}
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Image %dx%d (%d pixels, %d black)\n", width, height, width*height, black)
			fmt.Fprintf(out, "Mean luminance %.3f (std dev %.3f)\n", mean, stdDev)
			return nil
		},
	}
}

func configCmd(cfgFile *string) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage the configuration file",
	}

	initCmd := &cobra.Command{
		Use:   "init [FILE]",
		Short: "Write the effective configuration to a YAML file (default raytracer.yaml)",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd, *cfgFile)
			if err != nil {
				return err
			}

			path := "raytracer.yaml"
			if len(args) == 1 {
				path = args[0]
			}
			force, _ := cmd.Flags().GetBool("force")
			if _, err := os.Stat(path); err == nil && !force {
				return fmt.Errorf("%s already exists (use --force to overwrite)", path)
			}

			if err := cfg.Save(path); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Config written to %s\n", path)
			return nil
		},
	}
	initCmd.Flags().Bool("force", false, "overwrite an existing file")
	addRenderSettingFlags(initCmd)

	cmd.AddCommand(initCmd)
	return cmd
}
