package main

import (
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/ironsheep/seamcarve-mcp/internal/carve"
	"github.com/ironsheep/seamcarve-mcp/internal/imaging"
	"github.com/ironsheep/seamcarve-mcp/internal/parallel"
)

type carveFlags struct {
	seams       int
	bands       int
	strategy    string
	stripHeight int

	output string
	outDir string

	overlay          string
	overlayIteration int

	workers   int
	jobs      int
	statsFile string
}

func newCarveCmd(a *app) *cobra.Command {
	var f carveFlags

	cmd := &cobra.Command{
		Use:   "carve [flags] IMAGE...",
		Short: "Remove vertical seams from one or more images",
		Long: `Remove --seams columns from every IMAGE, --bands seams per pass.

The result is written next to the input as <name>-carved<ext> unless -o or
--out-dir is given. Timing statistics are printed for every image.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) > 1 && (f.output != "" || f.overlay != "") {
				return fmt.Errorf("-o and --overlay take a single input image")
			}
			return a.carve(cmd, f, args)
		},
	}

	flags := cmd.Flags()
	flags.IntVarP(&f.seams, "seams", "n", 0, "number of columns to remove")
	flags.IntVarP(&f.bands, "bands", "k", 0, "seams removed per pass (default: largest divisor up to carve.bands)")
	flags.StringVar(&f.strategy, "strategy", "", "cost schedule: rows or tiled (default: carve.strategy)")
	flags.IntVar(&f.stripHeight, "strip-height", 0, "strip height of the tiled schedule (default: carve.stripHeight)")
	flags.StringVarP(&f.output, "output", "o", "", "output file")
	flags.StringVar(&f.outDir, "out-dir", "", "directory for the carved images")
	flags.StringVar(&f.overlay, "overlay", "", "also write the seams of one pass over its energy field to this file")
	flags.IntVar(&f.overlayIteration, "overlay-iteration", -1, "pass drawn by --overlay; negative draws the last")
	flags.IntVar(&f.workers, "workers", 0, "worker goroutines (default: processing.workers)")
	flags.IntVarP(&f.jobs, "jobs", "j", 0, "images carved concurrently (default: processing.maxConcurrentFiles)")
	flags.StringVar(&f.statsFile, "stats-file", "", "append timing statistics to this file")

	cmd.MarkFlagRequired("seams")
	cmd.MarkFlagsMutuallyExclusive("output", "out-dir")
	return cmd
}

// carve processes every input on one shared pool, at most jobs images at a
// time. The first failure stops images that have not started yet.
func (a *app) carve(cmd *cobra.Command, f carveFlags, inputs []string) error {
	workers := a.cfg.Processing.Workers
	if f.workers > 0 {
		workers = f.workers
	}
	jobs := a.cfg.Processing.MaxConcurrentFiles
	if f.jobs > 0 {
		jobs = f.jobs
	}

	strategy := a.cfg.Strategy()
	if f.strategy != "" {
		s, err := carve.ParseStrategy(f.strategy)
		if err != nil {
			return err
		}
		strategy = s
	}
	stripHeight := a.cfg.Carve.StripHeight
	if f.stripHeight > 0 {
		stripHeight = f.stripHeight
	}

	pool := parallel.New(workers)
	defer pool.Close()
	cache := imaging.NewImageCache()

	var statsOut io.Writer
	if f.statsFile != "" {
		sf, err := os.OpenFile(f.statsFile, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
		if err != nil {
			return fmt.Errorf("failed to open stats file: %w", err)
		}
		defer sf.Close()
		statsOut = sf
	}

	var mu sync.Mutex
	report := func(path string, res *imaging.SeamCarveResult) {
		mu.Lock()
		defer mu.Unlock()
		writeStats(cmd.OutOrStdout(), path, res)
		if statsOut != nil {
			writeStats(statsOut, path, res)
		}
	}

	g, ctx := errgroup.WithContext(cmd.Context())
	g.SetLimit(jobs)
	for _, in := range inputs {
		if ctx.Err() != nil {
			break
		}
		g.Go(func() error {
			if ctx.Err() != nil {
				return nil
			}
			defer cache.Evict(in)

			img, err := cache.Load(in)
			if err != nil {
				return err
			}

			opts := carve.Options{
				SeamCount:   f.seams,
				BandCount:   f.bands,
				Strategy:    strategy,
				StripHeight: stripHeight,
			}
			if opts.BandCount == 0 {
				opts.BandCount = carve.SuggestBandCount(img.Bounds().Dx(), f.seams, a.cfg.Carve.Bands)
			}

			var recorder *imaging.OverlayRecorder
			var observer carve.Observer
			if f.overlay != "" {
				recorder = imaging.NewOverlayRecorder(f.overlayIteration)
				observer = recorder
			}
			progress := func(done, total int) {
				if a.cfg.Debug() {
					log.Printf("%s: pass %d/%d", in, done, total)
				}
			}

			out, res, err := imaging.SeamCarve(pool, img, opts, observer, progress)
			if err != nil {
				return fmt.Errorf("%s: %w", in, err)
			}

			dst := outputPath(in, f.output, f.outDir)
			if err := imaging.Save(out, dst); err != nil {
				return fmt.Errorf("%s: %w", in, err)
			}
			res.OutputPath = dst

			if recorder != nil {
				if err := writeOverlay(recorder, f.overlay, a.cfg.Output.SeamColor); err != nil {
					return fmt.Errorf("%s: %w", in, err)
				}
			}

			report(in, res)
			return nil
		})
	}
	return g.Wait()
}

// outputPath picks where the carved image of in is written.
func outputPath(in, output, outDir string) string {
	switch {
	case output != "":
		return output
	case outDir != "":
		return filepath.Join(outDir, filepath.Base(in))
	default:
		ext := filepath.Ext(in)
		return strings.TrimSuffix(in, ext) + "-carved" + ext
	}
}

func writeOverlay(r *imaging.OverlayRecorder, path, hex string) error {
	it, ok := r.Iteration()
	if !ok {
		// Render reports why nothing was recorded
		_, err := r.Render(hex)
		return err
	}
	return imaging.Save(imaging.RenderSeamOverlay(it.Energy, it.Seams, hex), path)
}

func writeStats(w io.Writer, path string, res *imaging.SeamCarveResult) {
	s := res.Stats
	fmt.Fprintf(w, "%s -> %s: %dx%d -> %dx%d, %d seams in %d passes of %d (%s)\n",
		path, res.OutputPath, res.OriginalWidth, res.Height, res.Width, res.Height,
		res.SeamsRemoved, s.Passes, res.BandCount, res.Strategy)

	stages := []struct {
		name string
		d    time.Duration
	}{
		{"energy", s.Energy},
		{"cost", s.Cost},
		{"trace", s.Trace},
		{"remove", s.Remove},
	}
	for _, st := range stages {
		fmt.Fprintf(w, "  %-7s %12s %6.2f%%\n", st.name, st.d, percent(st.d, s.Total))
	}
	fmt.Fprintf(w, "  %-7s %12s\n", "total", s.Total)
}

func percent(d, total time.Duration) float64 {
	if total <= 0 {
		return 0
	}
	return 100 * float64(d) / float64(total)
}
