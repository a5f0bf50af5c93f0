// This program watches a settings file, grows a new tree every time it
// changes and shows the skeleton in a window.
//
// Keys: Q or Escape quits, R regrows with the same settings, the arrows
// page through earlier trees.
package main

import (
	"context"
	"flag"
	"fmt"
	"hash/crc64"
	"image"
	"image/color"
	"log/slog"
	"os"
	"path/filepath"
	"sync"

	"github.com/fsnotify/fsnotify"
	"github.com/scottkirkwood/arbor"
	"github.com/scottkirkwood/arbor/raster"
	"github.com/scottkirkwood/arbor/session"
	"github.com/scottkirkwood/arbor/tree"
	"golang.org/x/exp/shiny/driver"
	"golang.org/x/exp/shiny/screen"
	"golang.org/x/image/draw"
	"golang.org/x/mobile/event/key"
	"golang.org/x/mobile/event/lifecycle"
	"golang.org/x/mobile/event/mouse"
	"golang.org/x/mobile/event/paint"
	"golang.org/x/mobile/event/size"
)

var (
	seedFlag     = flag.String("seed", "", "Hex seed to use, empty picks one")
	settingsFlag = flag.String("settings", "arbor.toml", "TOML settings file to watch")
	previewFlag  = flag.Int("preview", 768, "Size of the skeleton preview in pixels")
	saveFlag     = flag.Bool("save", false, "Also save every tree as OBJ")
	verboseFlag  = flag.Bool("v", false, "Verbose logging")
)

// previewEvent carries a finished tree to the window goroutine.
type previewEvent struct {
	img     image.Image
	summary string
}

type regen struct {
	log     *slog.Logger
	path    string
	seed    arbor.Seed
	session *session.Session

	mu       sync.Mutex
	settings arbor.Settings
	checksum uint64
}

func main() {
	flag.Parse()
	log := arbor.NewLogger(os.Stderr, *verboseFlag)

	path, err := filepath.Abs(*settingsFlag)
	if err != nil {
		fmt.Printf("Bad settings path %q: %v\n", *settingsFlag, err)
		os.Exit(1)
	}
	settings, err := arbor.LoadSettings(path)
	if err != nil {
		log.Error("Unable to read settings", "err", err)
		os.Exit(1)
	}
	g, err := settings.InitSeed(*seedFlag)
	if err != nil {
		fmt.Printf("Unable to set the seed: %v\n", err)
		os.Exit(1)
	}
	opts, err := settings.TreeOptions()
	if err != nil {
		log.Error("Bad leaf settings", "err", err)
		os.Exit(1)
	}
	// leaf vertex colours are replaced per leaf, so one leaf serves every
	// settings change
	leaf, err := tree.GenerateLeaf(raster.New(tree.LeafTextureSize, tree.LeafTextureSize), tree.LeafTextureSize, opts.LeafColor)
	if err != nil {
		log.Error("Unable to grow the leaf", "err", err)
		os.Exit(1)
	}

	r := &regen{
		log:      log,
		path:     path,
		seed:     g,
		session:  session.New(uint64(g.GetSeed()), leaf, log),
		settings: settings,
		checksum: fileChecksum(path),
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		fmt.Printf("Failed to create watcher: %v\n", err)
		os.Exit(1)
	}
	defer watcher.Close()
	// editors often replace the file, so watch the folder it lives in
	if err := watcher.Add(filepath.Dir(path)); err != nil {
		fmt.Printf("Problem adding folder watcher: %v\n", err)
		os.Exit(1)
	}
	log.Info("Monitoring", "settings", path, "seed", fmt.Sprintf("%x", g.GetSeed()))

	driver.Main(func(s screen.Screen) {
		r.run(s, watcher)
	})
}

func (r *regen) current() arbor.Settings {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.settings
}

func (r *regen) watchForEvents(watcher *fsnotify.Watcher, w screen.Window) {
	for {
		select {
		case event, ok := <-watcher.Events:
			if !ok {
				return
			}
			if filepath.Clean(event.Name) != r.path || !(event.Has(fsnotify.Write) || event.Has(fsnotify.Create)) {
				continue
			}
			if !r.fileChanged() {
				r.log.Debug("Settings unchanged")
				continue
			}
			settings, err := arbor.LoadSettings(r.path)
			if err != nil {
				r.log.Warn("Keeping previous settings", "err", err)
				continue
			}
			r.mu.Lock()
			r.settings = settings
			r.mu.Unlock()
			go r.generate(w, settings)

		case err, ok := <-watcher.Errors:
			if !ok {
				return
			}
			r.log.Error("Watcher", "err", err)
		}
	}
}

func (r *regen) fileChanged() bool {
	newChecksum := fileChecksum(r.path)
	r.mu.Lock()
	defer r.mu.Unlock()
	if newChecksum == r.checksum {
		return false
	}
	r.checksum = newChecksum
	return true
}

func fileChecksum(fname string) uint64 {
	bytes, err := os.ReadFile(fname)
	if err != nil {
		return 0
	}
	return crc64.Checksum(bytes, crc64.MakeTable(crc64.ECMA))
}

// generate grows a tree and posts its preview to w. A newer call
// supersedes an older one still running.
func (r *regen) generate(w screen.Window, settings arbor.Settings) {
	req, err := settings.Request()
	if err != nil {
		r.log.Warn("Bad request", "err", err)
		return
	}
	res, err := r.session.Generate(context.Background(), req)
	if err != nil {
		// logged by the session; superseded requests just stop
		return
	}
	w.Send(previewEvent{
		img:     arbor.PreviewLines(&res.Skeleton, *previewFlag, color.White).Image(),
		summary: res.Summary(),
	})
	if *saveFlag {
		prefix := filepath.Join(settings.OutputDir, settings.Recipe+"-")
		if _, err := r.seed.SafeWrite(arbor.ResultExporter{Result: res, PreviewSize: *previewFlag}, prefix, ".obj"); err != nil {
			r.log.Warn("Unable to save", "err", err)
		}
	}
}

func (r *regen) run(s screen.Screen, watcher *fsnotify.Watcher) {
	w, err := s.NewWindow(&screen.NewWindowOptions{
		Width:  *previewFlag,
		Height: *previewFlag,
		Title:  "arbor",
	})
	if err != nil {
		fmt.Println(err)
		return
	}
	defer w.Release()

	go r.watchForEvents(watcher, w)
	go r.generate(w, r.current())

	var (
		sz   size.Event
		imgs []image.Image // every tree so far
		i    int           // index of image to display
	)
	for {
		e := w.NextEvent()
		switch e := e.(type) {
		case previewEvent:
			imgs = append(imgs, e.img)
			i = len(imgs) - 1
			r.log.Info(e.summary, "tree", i+1)
			w.Send(paint.Event{})

		case key.Event:
			if e.Direction != key.DirPress {
				continue
			}
			switch e.Code {
			case key.CodeEscape, key.CodeQ:
				return
			case key.CodeR:
				go r.generate(w, r.current())
			case key.CodeRightArrow:
				if len(imgs) > 0 {
					i = (i + 1) % len(imgs)
					w.Send(paint.Event{})
				}
			case key.CodeLeftArrow:
				if len(imgs) > 0 {
					i = (i + len(imgs) - 1) % len(imgs)
					w.Send(paint.Event{})
				}
			}

		case paint.Event:
			if len(imgs) == 0 || sz.WidthPx == 0 || sz.HeightPx == 0 {
				w.Fill(sz.Bounds(), color.White, draw.Src)
				w.Publish()
				continue
			}
			if err := show(s, w, imgs[i], sz); err != nil {
				fmt.Println(err)
				return
			}

		case size.Event:
			sz = e

		case lifecycle.Event:
			if e.To == lifecycle.StageDead {
				r.session.Cancel()
				return
			}

		case error:
			fmt.Printf("Screen error: %v\n", e)
			return

		case mouse.Event:
		}
	}
}

// show paints img centred in the window, shrunk to fit.
func show(s screen.Screen, w screen.Window, img image.Image, sz size.Event) error {
	img = arbor.FitImage(img, sz.WidthPx, sz.HeightPx)
	b, err := s.NewBuffer(img.Bounds().Size())
	if err != nil {
		return err
	}
	defer b.Release()
	draw.Draw(b.RGBA(), b.Bounds(), img, img.Bounds().Min, draw.Src)

	w.Fill(sz.Bounds(), color.Black, draw.Src)
	w.Upload(arbor.VpCenter(img, sz.WidthPx, sz.HeightPx), b, b.Bounds())
	w.Publish()
	return nil
}
