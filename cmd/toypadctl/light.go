package main

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/padbridge/toypad"
)

var lightCmd = &cobra.Command{
	Use:   "light",
	Short: "Drive the toy pad's lighting zones",
}

var (
	lightZone  string
	lightColor string
	lightSpeed uint8
	lightOn    uint8
	lightOff   uint8
	lightCount uint8
)

func init() {
	for _, c := range []*cobra.Command{lightSolidCmd, lightFadeCmd, lightFlashCmd} {
		c.Flags().StringVar(&lightZone, "zone", "all", "center|left|right|all")
		c.Flags().StringVar(&lightColor, "color", "FFFFFF", "hex RGB, e.g. FF8800")
	}
	lightFadeCmd.Flags().Uint8Var(&lightSpeed, "speed", 20, "fade speed (device units)")
	lightFlashCmd.Flags().Uint8Var(&lightOn, "on", 10, "on-ticks per blink")
	lightFlashCmd.Flags().Uint8Var(&lightOff, "off", 10, "off-ticks per blink")
	lightFlashCmd.Flags().Uint8Var(&lightCount, "count", 0, "blink count, 0 = forever")

	lightCmd.AddCommand(lightSolidCmd, lightFadeCmd, lightFlashCmd)
}

func parseZone(s string) (toypad.Zone, error) {
	switch strings.ToLower(s) {
	case "center":
		return toypad.ZoneCenter, nil
	case "left":
		return toypad.ZoneLeft, nil
	case "right":
		return toypad.ZoneRight, nil
	case "all":
		return toypad.ZoneAll, nil
	default:
		return 0, fmt.Errorf("unknown zone %q", s)
	}
}

func parseColor(s string) (toypad.Color, error) {
	s = strings.TrimPrefix(s, "#")
	if len(s) != 6 {
		return toypad.Color{}, fmt.Errorf("color must be 6 hex digits, got %q", s)
	}
	v, err := strconv.ParseUint(s, 16, 32)
	if err != nil {
		return toypad.Color{}, fmt.Errorf("invalid hex color %q: %w", s, err)
	}
	return toypad.Color{R: byte(v >> 16), G: byte(v >> 8), B: byte(v)}, nil
}

func withAttachedEngine(ctx context.Context, fn func(*toypad.Engine) error) error {
	engine, err := buildEngine()
	if err != nil {
		return err
	}
	if err := engine.Start(ctx); err != nil {
		return fmt.Errorf("attach: %w", err)
	}
	defer engine.Stop()
	return fn(engine)
}

var lightSolidCmd = &cobra.Command{
	Use:   "solid",
	Short: "Set a zone (or all zones) to a solid color",
	RunE: func(cmd *cobra.Command, args []string) error {
		zone, err := parseZone(lightZone)
		if err != nil {
			return err
		}
		color, err := parseColor(lightColor)
		if err != nil {
			return err
		}
		return withAttachedEngine(cmd.Context(), func(e *toypad.Engine) error {
			return e.Lighting.SetColor(zone, color)
		})
	},
}

var lightFadeCmd = &cobra.Command{
	Use:   "fade",
	Short: "Fade a zone (or all zones) to a color",
	RunE: func(cmd *cobra.Command, args []string) error {
		zone, err := parseZone(lightZone)
		if err != nil {
			return err
		}
		color, err := parseColor(lightColor)
		if err != nil {
			return err
		}
		return withAttachedEngine(cmd.Context(), func(e *toypad.Engine) error {
			if zone == toypad.ZoneAll {
				p := toypad.FadeParams{TickTime: lightSpeed, TickCount: 0xFF, Color: color}
				return e.Lighting.FadeAll(p, p, p)
			}
			return e.Lighting.Fade(zone, lightSpeed, 0xFF, color)
		})
	},
}

var lightFlashCmd = &cobra.Command{
	Use:   "flash",
	Short: "Flash a zone (or all zones) with a color",
	RunE: func(cmd *cobra.Command, args []string) error {
		zone, err := parseZone(lightZone)
		if err != nil {
			return err
		}
		color, err := parseColor(lightColor)
		if err != nil {
			return err
		}
		count := lightCount
		if count == 0 {
			count = 0xFF // the device's indefinite tick count
		}
		return withAttachedEngine(cmd.Context(), func(e *toypad.Engine) error {
			if zone == toypad.ZoneAll {
				p := toypad.FlashParams{TickOn: lightOn, TickOff: lightOff, TickCount: count, Color: color}
				return e.Lighting.FlashAll(p, p, p)
			}
			return e.Lighting.Flash(zone, lightOn, lightOff, count, color)
		})
	},
}
