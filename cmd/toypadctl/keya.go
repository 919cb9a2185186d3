package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/padbridge/toypad/keya"
)

var keyaSector int

func init() {
	keyaCmd.Flags().IntVar(&keyaSector, "sector", 0, "sector 0..4 (validated but does not affect the derived key)")
}

var keyaCmd = &cobra.Command{
	Use:   "keya <uid-hex>",
	Short: "Derive the Key A sector key for a 14-hex-character tag UID",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		key, err := keya.Derive(args[0], keyaSector)
		if err != nil {
			return err
		}
		fmt.Println(key)
		return nil
	},
}
