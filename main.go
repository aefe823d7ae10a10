package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/df07/glossy/pkg/compiler"
	"github.com/df07/glossy/pkg/config"
	"github.com/df07/glossy/pkg/scene"
	"github.com/df07/glossy/web/server"
	"github.com/spf13/cobra"
)

// app carries what every command needs once flags and the config file are read
type app struct {
	configPath string
	logLevel   string

	cfg    config.Config
	logger *slog.Logger
	stderr io.Writer
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd(os.Stdout, os.Stderr).ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}

func newRootCmd(stdout, stderr io.Writer) *cobra.Command {
	a := &app{stderr: stderr}

	root := &cobra.Command{
		Use:   "glossy",
		Short: "Compile JSON scene documents into path tracing fragment shaders",
		Long: `glossy compiles a scene document (camera settings, lights and objects)
into a single GLSL fragment shader that path traces the scene.

Settings are read from glossy.toml in the working directory when present.`,
		SilenceUsage:      true,
		PersistentPreRunE: a.setup,
	}
	root.SetOut(stdout)
	root.SetErr(stderr)

	root.PersistentFlags().StringVar(&a.configPath, "config", "", "settings file (default ./"+config.DefaultFile+" if present)")
	root.PersistentFlags().StringVar(&a.logLevel, "log-level", "", "override log.level: debug, info, warn or error")

	root.AddCommand(
		a.newCompileCmd(),
		a.newWatchCmd(),
		a.newScenesCmd(),
		a.newServeCmd(),
	)
	return root
}

// setup loads the settings and builds the logger
func (a *app) setup(cmd *cobra.Command, args []string) error {
	var err error
	if a.configPath != "" {
		a.cfg, err = config.Load(a.configPath)
	} else {
		a.cfg, err = config.LoadOptional(config.DefaultFile)
	}
	if err != nil {
		return err
	}

	if a.logLevel != "" {
		a.cfg.Log.Level = a.logLevel
		if err := a.cfg.Validate(); err != nil {
			return err
		}
	}

	a.logger = a.cfg.Log.NewLogger(a.stderr)
	return nil
}

func (a *app) newCompileCmd() *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "compile [scene.json]",
		Short: "Compile a scene document, or the built-in scene, to GLSL",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var source string
			if len(args) == 0 {
				a.logger.Debug("compiling built-in scene")
				source = compiler.CompileScene(scene.NewDefaultScene())
			} else {
				var err error
				if source, err = compiler.CompileFile(args[0]); err != nil {
					return err
				}
			}

			if output == "" {
				output = a.cfg.Compile.Output
			}
			return a.writeSource(cmd.OutOrStdout(), output, source)
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "", "write the shader to this file instead of stdout")
	return cmd
}

func (a *app) newWatchCmd() *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "watch scene.json",
		Short: "Recompile a scene document every time it changes",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if output == "" {
				output = a.cfg.Compile.Output
			}
			out := cmd.OutOrStdout()

			watcher := compiler.NewWatcher(args[0], func(res compiler.Result) {
				if res.Err != nil {
					// Already logged by the watcher; keep the last good shader
					return
				}
				if err := a.writeSource(out, output, res.Source); err != nil {
					a.logger.Error("failed to write shader", "error", err)
				}
			}, a.logger)
			return watcher.Run(cmd.Context())
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "", "write the shader to this file instead of stdout")
	return cmd
}

func (a *app) newScenesCmd() *cobra.Command {
	var dir string

	cmd := &cobra.Command{
		Use:   "scenes",
		Short: "List the built-in scene and the scene documents found",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			scenes, err := scene.ListAllScenes(a.scenesDir(dir))
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			for _, info := range scenes {
				location := info.FilePath
				if info.Type == scene.SceneTypeBuiltin {
					location = "(built-in)"
				}
				fmt.Fprintf(out, "%-20s %-24s %s\n", info.ID, info.DisplayName, location)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&dir, "dir", "", "scenes directory (default server.scenes_dir or ./scenes)")
	return cmd
}

func (a *app) newServeCmd() *cobra.Command {
	var port int
	var dir string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the web service",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !cmd.Flags().Changed("port") {
				port = a.cfg.Server.Port
			}
			return server.NewServer(port, a.scenesDir(dir), a.logger).Start()
		},
	}
	cmd.Flags().IntVar(&port, "port", config.Default().Server.Port, "port to serve on")
	cmd.Flags().StringVar(&dir, "dir", "", "scenes directory (default server.scenes_dir or ./scenes)")
	return cmd
}

// scenesDir picks the flag, then the settings, then the usual locations
func (a *app) scenesDir(flag string) string {
	switch {
	case flag != "":
		return flag
	case a.cfg.Server.ScenesDir != "":
		return a.cfg.Server.ScenesDir
	default:
		return scene.FindScenesDir("scenes", filepath.Join("..", "scenes"))
	}
}

// writeSource writes to path, or to out when path is empty
func (a *app) writeSource(out io.Writer, path, source string) error {
	if path == "" {
		_, err := io.WriteString(out, source)
		return err
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
	}
	if err := os.WriteFile(path, []byte(source), 0644); err != nil {
		return fmt.Errorf("failed to write shader: %w", err)
	}
	a.logger.Info("shader written", "path", path, "bytes", len(source))
	return nil
}
