// genpack pre-generates certified no-guess boards so game servers can hand
// them out without paying the certification cost at request time. Boards are
// written one gob-encoded game state per file, named after the board seed.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"math/rand/v2"
	"os"
	"path/filepath"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/snowzach/rotatefilehook"
	"golang.org/x/sync/errgroup"

	"github.com/mines3d/server/internal/mines"
)

var log = logrus.New()

func setupLogging(logPath string, verbose bool) error {
	log.SetLevel(logrus.InfoLevel)
	if verbose {
		log.SetLevel(logrus.DebugLevel)
	}
	if logPath == "" {
		return nil
	}
	hook, err := rotatefilehook.NewRotateFileHook(rotatefilehook.RotateFileConfig{
		Filename:   logPath,
		MaxSize:    10, // MB
		MaxBackups: 3,
		MaxAge:     28, // days
		Level:      logrus.DebugLevel,
		Formatter:  &logrus.JSONFormatter{},
	})
	if err != nil {
		return err
	}
	log.AddHook(hook)
	return nil
}

type packEntry struct {
	Seed      string `json:"seed"`
	StartX    int    `json:"start_x"`
	StartY    int    `json:"start_y"`
	StateFile string `json:"state_file"`
}

func generateOne(i int, params mines.GameParams, outDir string, r *rand.Rand) (*packEntry, error) {
	x := r.IntN(params.Width)
	y := r.IntN(params.Height)

	start := time.Now()
	game, err := mines.NewGame(&params, x, y, r)
	if err != nil {
		return nil, err
	}

	b, err := game.Bytes()
	if err != nil {
		return nil, err
	}

	name := fmt.Sprintf("%dx%d-%d.%04d.state", params.Width, params.Height, params.MineCount, i)
	name = filepath.Join(outDir, name)
	if err := os.WriteFile(name, b, 0o644); err != nil {
		return nil, err
	}

	log.WithFields(logrus.Fields{
		"seed":     params.Seed(),
		"start":    fmt.Sprintf("(%d, %d)", x, y),
		"duration": time.Since(start).String(),
	}).Debug("board generated")

	return &packEntry{
		Seed:      params.Seed(),
		StartX:    x,
		StartY:    y,
		StateFile: name,
	}, nil
}

func main() {
	var (
		width    = flag.Int("width", 9, "board width")
		height   = flag.Int("height", 9, "board height")
		mineCnt  = flag.Int("mines", 10, "mine count")
		count    = flag.Int("count", 100, "number of boards to generate")
		workers  = flag.Int("workers", 4, "parallel generation workers")
		outDir   = flag.String("out", "pack", "output directory")
		indexOut = flag.String("index", "index.json", "index file name, relative to -out")
		logPath  = flag.String("log", "", "rotating log file (stderr only when empty)")
		verbose  = flag.Bool("v", false, "debug logging")
	)
	flag.Parse()

	if err := setupLogging(*logPath, *verbose); err != nil {
		log.WithError(err).Fatal("unable to set up logging")
	}

	params := mines.GameParams{
		Width:     *width,
		Height:    *height,
		MineCount: *mineCnt,
		Unique:    true,
	}
	if err := params.Validate(); err != nil {
		log.WithError(err).Fatal("invalid board parameters")
	}

	if err := os.MkdirAll(*outDir, 0o755); err != nil {
		log.WithError(err).Fatal("unable to create output directory")
	}

	log.WithFields(logrus.Fields{
		"seed":    params.Seed(),
		"count":   *count,
		"workers": *workers,
	}).Info("generating boards")

	start := time.Now()
	entries := make([]*packEntry, *count)

	var g errgroup.Group
	g.SetLimit(*workers)
	for i := range entries {
		g.Go(func() error {
			// each worker task gets its own source; *rand.Rand is not
			// safe for concurrent use
			r := rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
			entry, err := generateOne(i, params, *outDir, r)
			if err != nil {
				return err
			}
			entries[i] = entry
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		log.WithError(err).Fatal("generation failed")
	}

	index, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		log.WithError(err).Fatal("unable to marshal index")
	}
	indexPath := filepath.Join(*outDir, *indexOut)
	if err := os.WriteFile(indexPath, index, 0o644); err != nil {
		log.WithError(err).Fatal("unable to write index")
	}

	log.WithFields(logrus.Fields{
		"count":    *count,
		"index":    indexPath,
		"duration": time.Since(start).String(),
	}).Info("done")
}
