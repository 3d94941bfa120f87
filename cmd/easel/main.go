// Command easel renders a serialized scene to PNG or SVG.
//
// Usage:
//
//	easel -in scene.json -out scene.png [-width 800] [-height 600] [-zoom 1] [-config easel.toml] [-svg]
package main

import (
	"context"
	"flag"
	"log"
	"log/slog"
	"os"
	"os/signal"

	"github.com/gogpu/easel"
	"github.com/gogpu/easel/canvas"
)

func main() {
	var (
		input      = flag.String("in", "", "scene JSON file (required)")
		output     = flag.String("out", "scene.png", "output file")
		width      = flag.Int("width", 800, "canvas width")
		height     = flag.Int("height", 600, "canvas height")
		zoom       = flag.Float64("zoom", 1, "viewport zoom")
		configPath = flag.String("config", "", "TOML configuration file")
		svg        = flag.Bool("svg", false, "write SVG instead of PNG")
		verbose    = flag.Bool("v", false, "log debug messages to stderr")
		dumpConfig = flag.Bool("dump-config", false, "print the effective configuration and exit")
	)
	flag.Parse()

	if *verbose {
		easel.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug})))
	}

	cfg, err := easel.LoadConfig(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	if *dumpConfig {
		if err := cfg.WriteTOML(os.Stdout); err != nil {
			log.Fatalf("Failed to write config: %v", err)
		}
		return
	}
	if *input == "" {
		flag.Usage()
		os.Exit(2)
	}

	data, err := os.ReadFile(*input)
	if err != nil {
		log.Fatalf("Failed to read scene: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	c, err := canvas.NewStatic(*width, *height, canvas.WithConfig(cfg))
	if err != nil {
		log.Fatalf("Failed to create canvas: %v", err)
	}
	if err := c.LoadFromJSON(ctx, data); err != nil {
		log.Fatalf("Failed to load scene: %v", err)
	}
	if *zoom != 1 {
		c.SetZoom(*zoom)
	}

	f, err := os.Create(*output)
	if err != nil {
		log.Fatalf("Failed to create output: %v", err)
	}
	if *svg {
		err = c.WriteSVG(f)
	} else {
		err = c.WritePNG(f)
	}
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		log.Fatalf("Failed to save: %v", err)
	}
	n := c.Len()
	<-c.Dispose()

	log.Printf("Scene saved to %s (%dx%d, %d objects)\n", *output, *width, *height, n)
}
