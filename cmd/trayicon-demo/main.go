package main

import (
	"bufio"
	"context"
	"fmt"
	"log"
	"os"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/manifold/trayicon/pkg/config"
	"github.com/manifold/trayicon/pkg/console"
	"github.com/manifold/trayicon/pkg/daemon"
	"github.com/manifold/trayicon/pkg/logging/zap"
	"github.com/manifold/trayicon/pkg/trayicon"
	"github.com/manifold/trayicon/pkg/traysvc"
)

var (
	rootCmd = &cobra.Command{
		Use:   "trayicon-demo",
		Short: "Tray icon demo",
		Long:  "Shows a tray icon and prints its events.",
		Run:   runDemo,
	}

	configPath string
	debugMode  bool
	mode       string
)

func init() {
	rootCmd.PersistentFlags().BoolVarP(&debugMode, "debug", "d", false, "enable debug logging")
	rootCmd.Flags().StringVarP(&configPath, "config", "c", "", "path to a YAML config file, watched for changes")
	rootCmd.Flags().StringVarP(&mode, "mode", "m", "", "event delivery: poll or handler (overrides the config file)")
	rootCmd.AddCommand(decodeCmd())
}

func main() {
	rootCmd.Execute()
}

func runDemo(cmd *cobra.Command, args []string) {
	logger := zap.NewLogger(debugMode)
	defer logger.Sync()
	trayicon.SetLogger(logger)

	fs := afero.NewOsFs()
	cfg := config.Default()
	if configPath != "" {
		var err error
		cfg, err = config.Load(fs, configPath)
		fatal(err)
	}
	if mode != "" {
		cfg.Mode = mode
		fatal(cfg.Validate())
	}

	svc := &traysvc.Service{
		Config:  cfg,
		Fs:      fs,
		Console: console.New(6),
		Logger:  logger,
	}
	components := []interface{}{svc}
	if configPath != "" {
		w := config.NewWatcher(fs, configPath, cfg, svc.Apply)
		w.Logger = logger
		components = append(components, w)
	}

	var runErr error
	err := trayicon.Run(func() {
		// the tray icon must be created on the event loop thread
		if err := svc.Start(); err != nil {
			runErr = err
			trayicon.Quit()
			return
		}
		dm := daemon.New(components...)
		dm.Logger = logger
		svc.Daemon = dm
		go func() {
			if err := dm.Run(context.Background()); err != nil {
				logger.Error(err)
			}
			trayicon.Quit()
		}()
	})
	fatal(err)
	fatal(runErr)
}

// `trayicon-demo decode` command
func decodeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "decode",
		Short: "Decodes event JSON lines from stdin",
		Long:  "Reads tray events printed as JSON, one per line, and summarizes them.",
		Run: func(cmd *cobra.Command, args []string) {
			scanner := bufio.NewScanner(os.Stdin)
			for scanner.Scan() {
				e, err := trayicon.UnmarshalEvent(scanner.Bytes())
				if err != nil {
					fmt.Fprintln(os.Stderr, err)
					continue
				}
				info := e.Info()
				fmt.Printf("%s icon=%s x=%g y=%g\n", e.Type(), e.ID(), info.Position.X, info.Position.Y)
			}
			fatal(scanner.Err())
		},
	}
}

func fatal(err error) {
	if err != nil {
		log.Fatal(err)
	}
}
