package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/padbridge/toypad"
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Attach and print tag insert/remove events as they arrive",
	RunE: func(cmd *cobra.Command, args []string) error {
		engine, err := buildEngine()
		if err != nil {
			return err
		}

		ctx, cancel := context.WithCancel(cmd.Context())
		defer cancel()

		if err := engine.Start(ctx); err != nil {
			return fmt.Errorf("watch: %w", err)
		}
		defer engine.Stop()

		events := engine.TagEvents()

		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

		for {
			select {
			case ev, ok := <-events:
				if !ok {
					return nil
				}
				printEvent(ev)
			case <-sigCh:
				return nil
			case <-engine.Done():
				fmt.Println("device removed")
				return nil
			}
		}
	},
}

func printEvent(ev toypad.TagEvent) {
	switch ev.Action {
	case toypad.TagAdded:
		fmt.Printf("%s: tag added uid=%s\n", ev.Zone, ev.UID)
	case toypad.TagRemoved:
		fmt.Printf("%s: tag removed\n", ev.Zone)
	}
}
