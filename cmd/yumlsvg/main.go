// Command yumlsvg renders yUML-style diagram text to SVG.
//
// With file arguments it renders each input concurrently and writes a .svg
// next to it (or under -out). Without arguments it reads a single diagram
// from stdin and writes the SVG to stdout.
//
//	yumlsvg -type class -direction LR diagrams/*.yuml
//	cat order.yuml | yumlsvg -dark > order.svg
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"runtime"

	"github.com/skillsenselab/yumlsvg/bootstrap"
	"github.com/skillsenselab/yumlsvg/config"
	"github.com/skillsenselab/yumlsvg/layout"
	"github.com/skillsenselab/yumlsvg/version"
)

func main() {
	var (
		flagConfig    = flag.String("config", "", "path to config file")
		flagType      = flag.String("type", "", "default diagram type (class, usecase, activity, state, deployment, package, sequence)")
		flagDirection = flag.String("direction", "", "layout direction: TB, LR or RL")
		flagDark      = flag.Bool("dark", false, "render with the dark color scheme")
		flagLayout    = flag.String("layout", "", "graphviz layout algorithm")
		flagOut       = flag.String("out", "", "output directory (default: next to each input)")
		flagWorkers   = flag.Int("workers", 0, "concurrent renders (default: number of CPUs)")
		flagVersion   = flag.Bool("version", false, "print version and exit")
	)
	flag.Parse()

	if *flagVersion {
		fmt.Println(version.Full())
		return
	}

	cfg := &cliConfig{}
	loadOpts := []config.LoaderOption{}
	if *flagConfig != "" {
		loadOpts = append(loadOpts, config.WithConfigFile(*flagConfig))
	}
	if err := config.LoadConfig("yumlsvg", cfg, loadOpts...); err != nil {
		fmt.Fprintf(os.Stderr, "yumlsvg: %v\n", err)
		os.Exit(1)
	}
	// Flags override file and environment configuration.
	if *flagType != "" {
		cfg.Render.Type = *flagType
	}
	if *flagDirection != "" {
		cfg.Render.Direction = *flagDirection
	}
	if *flagDark {
		cfg.Render.Dark = true
	}
	if *flagLayout != "" {
		cfg.Render.Layout = *flagLayout
	}
	if *flagWorkers > 0 {
		cfg.Workers = *flagWorkers
	}
	if cfg.Workers <= 0 {
		cfg.Workers = runtime.NumCPU()
	}

	app, err := bootstrap.NewApp(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "yumlsvg: %v\n", err)
		os.Exit(1)
	}
	// Stdin mode keeps stdout clean for the SVG itself.
	if flag.NArg() == 0 {
		app.Summary.SetOutput(os.Stderr)
	}

	if err := app.RegisterComponent(layout.NewEngineComponent()); err != nil {
		fmt.Fprintf(os.Stderr, "yumlsvg: %v\n", err)
		os.Exit(1)
	}

	job := &batchJob{
		cfg:    cfg,
		outDir: *flagOut,
		inputs: flag.Args(),
	}

	err = app.RunTask(context.Background(), func(ctx context.Context) error {
		return job.run(ctx, app)
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "yumlsvg: %v\n", err)
		os.Exit(1)
	}
}
