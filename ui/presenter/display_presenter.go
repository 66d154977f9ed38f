package presenter

import (
	"image"
	"log/slog"
	"sync"
	"time"

	"github.com/soocke/bbox-annotator-go/ui/images"
	"github.com/soocke/bbox-annotator-go/ui/model"
)

// DisplayLoader decodes an image file and scales it to display size.
type DisplayLoader func(path string, factor float64) (image.Image, error)

type displayTask struct {
	sequence uint64
	path     string
	factor   float64
}

type displayResult struct {
	sequence uint64
	path     string
	img      image.Image
	err      error
	duration time.Duration
}

// DisplayPresenter decodes the current image on a worker goroutine so large
// files do not stall the Tk event loop. Results are applied on Tick; any
// result older than the latest request is dropped.
type DisplayPresenter struct {
	Load   DisplayLoader
	Canvas *model.CanvasModel
	logger *slog.Logger

	workerOnce sync.Once
	workCh     chan displayTask
	resultCh   chan displayResult

	lastRequested uint64
}

// NewDisplayPresenter constructs a display presenter. A nil loader uses images.LoadDisplay.
func NewDisplayPresenter(load DisplayLoader, canvas *model.CanvasModel, logger *slog.Logger) *DisplayPresenter {
	if load == nil {
		load = images.LoadDisplay
	}
	return &DisplayPresenter{
		Load:     load,
		Canvas:   canvas,
		logger:   logger,
		workCh:   make(chan displayTask, 1),
		resultCh: make(chan displayResult, 1),
	}
}

// Request schedules path for display. An empty path clears the canvas now.
func (p *DisplayPresenter) Request(path string, factor float64) {
	if p == nil || p.Canvas == nil {
		return
	}
	p.lastRequested++
	if path == "" {
		p.Canvas.SetBase("", nil)
		return
	}
	p.ensureWorker()
	p.dispatchTask(displayTask{sequence: p.lastRequested, path: path, factor: factor})
}

// Tick applies finished decodes to the canvas model.
func (p *DisplayPresenter) Tick() {
	if p == nil || p.Canvas == nil || p.resultCh == nil {
		return
	}
	for {
		select {
		case res := <-p.resultCh:
			p.handleResult(res)
		default:
			return
		}
	}
}

func (p *DisplayPresenter) ensureWorker() {
	p.workerOnce.Do(func() {
		go func() {
			for task := range p.workCh {
				p.resultCh <- p.executeTask(task)
			}
		}()
	})
}

// dispatchTask replaces any queued task so only the newest request is decoded.
func (p *DisplayPresenter) dispatchTask(task displayTask) {
	select {
	case p.workCh <- task:
	default:
		select {
		case <-p.workCh:
		default:
		}
		select {
		case p.workCh <- task:
		default:
		}
	}
}

func (p *DisplayPresenter) executeTask(task displayTask) displayResult {
	start := time.Now()
	img, err := p.Load(task.path, task.factor)
	return displayResult{sequence: task.sequence, path: task.path, img: img, err: err, duration: time.Since(start)}
}

func (p *DisplayPresenter) handleResult(res displayResult) {
	if res.sequence != p.lastRequested {
		return
	}
	if res.err != nil {
		if p.logger != nil {
			p.logger.Error("image decode failed", "path", res.path, "error", res.err)
		}
		p.Canvas.SetBase(res.path, nil)
		return
	}
	if p.logger != nil {
		p.logger.Debug("image decoded", "path", res.path, "duration", res.duration)
	}
	p.Canvas.SetBase(res.path, res.img)
}
