package main

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/padbridge/toypad"
)

var (
	readZone string
	readPage uint8
)

func init() {
	readCmd.Flags().StringVar(&readZone, "zone", "center", "center|left|right")
	readCmd.Flags().Uint8Var(&readPage, "page", 0, "starting page number")
	readCmd.MarkFlagRequired("zone")
}

var readCmd = &cobra.Command{
	Use:   "read",
	Short: "Read 16 bytes of tag page data from a zone",
	RunE: func(cmd *cobra.Command, args []string) error {
		zone, err := parseZone(readZone)
		if err != nil {
			return err
		}

		var data [16]byte
		err = withAttachedEngine(cmd.Context(), func(e *toypad.Engine) error {
			ctx, cancel := context.WithTimeout(cmd.Context(), 2*time.Second)
			defer cancel()
			var readErr error
			data, readErr = e.Reader.ReadPages(ctx, zone, readPage)
			return readErr
		})
		if err != nil {
			return err
		}

		fmt.Printf("% x\n", data)
		return nil
	},
}
