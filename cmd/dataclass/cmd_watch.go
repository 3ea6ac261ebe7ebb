package main

import (
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/dhamidi/dataclass/watch"
)

func newWatchCmd() *cobra.Command {
	var options []string
	var debounce time.Duration

	cmd := &cobra.Command{
		Use:   "watch [path...]",
		Short: "Regenerate annotated classes whenever a .java file changes",
		RunE: func(cmd *cobra.Command, args []string) error {
			loadConfig()
			switches := append(viper.GetStringSlice("options"), options...)
			excludes := viper.GetStringSlice("exclude")
			paths := args
			if len(paths) == 0 {
				paths = []string{"."}
			}

			regenerate := func(changed []string) {
				for _, path := range changed {
					if err := processFile(path, switches, false); err != nil {
						log.Errorf("%s", err)
					}
				}
			}

			// full pass first, then incremental on change
			files, err := collectJavaFiles(paths, excludes)
			if err != nil {
				return err
			}
			regenerate(files)

			w, err := watch.New(debounce, excludes, regenerate)
			if err != nil {
				return err
			}
			defer w.Close()
			if err := w.Watch(paths...); err != nil {
				return err
			}
			log.Noticef("watching %d path(s)", len(paths))

			stop := make(chan os.Signal, 1)
			signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
			<-stop
			return nil
		},
	}

	cmd.Flags().StringArrayVarP(&options, "option", "o", nil, "generator switch")
	cmd.Flags().DurationVar(&debounce, "debounce", 300*time.Millisecond, "delay before regenerating after a change")

	return cmd
}
