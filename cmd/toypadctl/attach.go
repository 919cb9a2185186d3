package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
)

var attachCmd = &cobra.Command{
	Use:   "attach",
	Short: "Attach to the toy pad and hold the session until interrupted or the device is removed; zone state is not printed",
	RunE: func(cmd *cobra.Command, args []string) error {
		engine, err := buildEngine()
		if err != nil {
			return err
		}

		ctx, cancel := context.WithCancel(cmd.Context())
		defer cancel()

		if err := engine.Start(ctx); err != nil {
			return fmt.Errorf("attach: %w", err)
		}
		defer engine.Stop()

		fmt.Println("attached; press Ctrl+C to detach")

		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

		select {
		case <-sigCh:
		case <-engine.Done():
			fmt.Println("device removed")
		}
		return nil
	},
}
