package app

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/sqweek/dialog"
	"go.uber.org/zap"

	"github.com/maralbahari/pcd-segmentation-interface/internal/label"
	"github.com/maralbahari/pcd-segmentation-interface/internal/logger"
	"github.com/maralbahari/pcd-segmentation-interface/pkg/pcd"
)

// loadResult is one finished background parse.
type loadResult struct {
	path string
	file *pcd.File
	err  error
}

// openCloudDialog shows a native file dialog to pick a PCD file.
// SDL/Cocoa window operations must stay on the main thread, so the
// goroutine only queues the chosen path; render picks it up.
func (a *App) openCloudDialog() {
	go func() {
		filename, err := dialog.File().
			Filter("PCD point clouds", "pcd").
			Filter("All Files", "*").
			Title("Open Point Cloud").
			Load()

		if err != nil {
			if err != dialog.ErrCancelled {
				fmt.Fprintf(os.Stderr, "File dialog error: %v\n", err)
			}
			return
		}

		a.queueCloudPath(filename)
	}()
}

// queueCloudPath hands a chosen path to the main loop. A path queued
// before the previous one was drained is dropped.
func (a *App) queueCloudPath(path string) {
	select {
	case a.pendingPaths <- path:
	default:
	}
}

// beginLoad parses a PCD file off the main thread.
func (a *App) beginLoad(path string) {
	a.status = fmt.Sprintf("loading %s...", filepath.Base(path))
	go func() {
		file, err := pcd.ParseFile(path)
		a.loads <- loadResult{path: path, file: file, err: err}
	}()
}

// processLoads drains dialog results and finished parses on the main
// thread, where GL upload is legal.
func (a *App) processLoads() {
	select {
	case path := <-a.pendingPaths:
		a.beginLoad(path)
	default:
	}

	select {
	case r := <-a.loads:
		if r.err != nil {
			a.status = fmt.Sprintf("load failed: %v", r.err)
			logger.Error("cloud load failed",
				zap.String("path", r.path),
				zap.Error(r.err))
			return
		}
		a.installCloud(r)
	default:
	}
}

// installCloud swaps a freshly parsed cloud into the scene and renderer
// and reseeds the filter panel from channel statistics.
func (a *App) installCloud(r loadResult) {
	buffer := r.file.Buffer(a.format)
	c := label.NewCloud(buffer)
	c.SetPointSize(a.cfg.Viewer.CloudPointSize)

	a.scene.SetCloud(c)
	a.renderer.ClearSelections()
	a.renderer.SetCloud(c)

	a.channelStats = make(map[int]label.ChannelStats)
	for ch := 3; ch < buffer.NumChannels(); ch++ {
		a.channelStats[ch] = label.ComputeChannelStats(buffer, ch)
	}
	a.filterActive = false
	a.filterChannel = 0
	if buffer.NumChannels() > 3 {
		a.filterChannel = 3
		stats := a.channelStats[3]
		a.filterMin = stats.P05
		a.filterMax = stats.P95
	}

	a.cloudPath = r.path
	a.status = fmt.Sprintf("%s: %d points, %d channels",
		filepath.Base(r.path), buffer.NumPoints(), buffer.NumChannels())
	a.backend.SetWindowTitle(fmt.Sprintf("PCD Annotator - %s", filepath.Base(r.path)))
}
