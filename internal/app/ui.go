package app

import (
	"context"
	"errors"
	"fmt"
	"image"
	"log"
	"strings"
	"sync"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/data/binding"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/storage"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"

	"yashubustudio/wastesorter/vision"
	"yashubustudio/wastesorter/waste"
)

const modelLoadMessage = "Failed to load model. Check the model path and runtime library."

type uiState struct {
	a       fyne.App
	service *waste.Service
	logger  *log.Logger
	logs    *logCapture

	w          fyne.Window
	root       *fyne.Container
	loading    fyne.CanvasObject
	failure    fyne.CanvasObject
	failDetail *widget.Label
	main       fyne.CanvasObject

	statusBind binding.String
	logBind    binding.String

	preview    *canvas.Image
	swatch     *canvas.Rectangle
	category   *widget.Label
	confidence *widget.Label
	detected   *widget.Label
	steps      *widget.Label
	alts       *widget.Label
	openBtn    *widget.Button

	snapshot *widget.Entry
	liveBtn  *widget.Button
	pauseBtn *widget.Button

	liveMu    sync.Mutex
	scanner   *waste.Scanner
	stopScan  context.CancelFunc
	lastFrame image.Image
}

func newUIState(a fyne.App) *uiState {
	u := &uiState{a: a}
	u.statusBind = binding.NewString()
	u.logBind = binding.NewString()
	u.logs = newLogCapture(logLineLimit, func(text string) { _ = u.logBind.Set(text) })
	return u
}

func (u *uiState) build(svc *waste.Service, logger *log.Logger) {
	u.service = svc
	u.logger = logger
	u.w = u.a.NewWindow("Waste Sorter")

	u.loading = container.NewCenter(container.NewVBox(
		widget.NewLabelWithStyle("Loading model...", fyne.TextAlignCenter, fyne.TextStyle{Bold: true}),
		widget.NewProgressBarInfinite(),
	))

	u.failDetail = widget.NewLabel("")
	u.failDetail.Wrapping = fyne.TextWrapWord
	retryBtn := widget.NewButtonWithIcon("Retry", theme.ViewRefreshIcon(), func() { u.initialize() })
	u.failure = container.NewCenter(container.NewVBox(
		widget.NewLabelWithStyle(modelLoadMessage, fyne.TextAlignCenter, fyne.TextStyle{Bold: true}),
		u.failDetail,
		retryBtn,
	))

	u.main = u.buildMain()
	u.root = container.NewStack(u.loading)

	status := widget.NewLabelWithData(u.statusBind)
	logView := widget.NewEntryWithData(u.logBind)
	logView.MultiLine = true
	logView.Wrapping = fyne.TextWrapWord
	logView.SetPlaceHolder("Log")
	logView.Disable()
	logScroll := container.NewVScroll(logView)
	logScroll.SetMinSize(fyne.NewSize(200, 120))

	bottom := container.NewVBox(widget.NewSeparator(), status, logScroll)
	u.w.SetContent(container.NewBorder(nil, bottom, nil, nil, u.root))
	u.w.Resize(fyne.NewSize(1024, 720))
	u.w.SetOnClosed(u.stopLive)
}

func (u *uiState) buildMain() fyne.CanvasObject {
	u.preview = canvas.NewImageFromImage(nil)
	u.preview.FillMode = canvas.ImageFillContain
	u.preview.SetMinSize(fyne.NewSize(360, 270))

	u.swatch = canvas.NewRectangle(parseHexColor(""))
	u.swatch.SetMinSize(fyne.NewSize(24, 24))
	u.category = widget.NewLabelWithStyle("Take or upload a photo", fyne.TextAlignLeading, fyne.TextStyle{Bold: true})
	u.confidence = widget.NewLabel("")
	u.detected = widget.NewLabel("")
	u.steps = widget.NewLabel("")
	u.steps.Wrapping = fyne.TextWrapWord
	u.alts = widget.NewLabel("")

	u.openBtn = widget.NewButtonWithIcon("Upload photo", theme.FolderOpenIcon(), func() { u.onOpenImage() })
	upload := container.NewVBox(
		widget.NewLabel("Classify a single photo of an item."),
		u.openBtn,
	)

	u.snapshot = widget.NewEntry()
	u.snapshot.SetPlaceHolder("Snapshot image written by the camera")
	u.snapshot.SetText(u.service.Config().SnapshotPath)
	u.liveBtn = widget.NewButtonWithIcon("Start scan", theme.MediaPlayIcon(), func() { u.onToggleLive() })
	u.pauseBtn = widget.NewButtonWithIcon("Pause", theme.MediaPauseIcon(), func() { u.onTogglePause() })
	u.pauseBtn.Disable()
	live := container.NewVBox(
		widget.NewLabel(fmt.Sprintf("Re-scan the snapshot every %s.", u.service.Config().ScanInterval())),
		u.snapshot,
		container.NewGridWithColumns(2, u.liveBtn, u.pauseBtn),
	)

	tabs := container.NewAppTabs(
		container.NewTabItemWithIcon("Upload", theme.FileImageIcon(), upload),
		container.NewTabItemWithIcon("Live", theme.MediaVideoIcon(), live),
	)
	left := container.NewBorder(tabs, nil, nil, nil, u.preview)

	result := container.NewVBox(
		container.NewHBox(u.swatch, u.category),
		u.confidence,
		u.detected,
		widget.NewSeparator(),
		widget.NewLabelWithStyle("How to dispose", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		u.steps,
		widget.NewSeparator(),
		widget.NewLabelWithStyle("Other possibilities", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		u.alts,
	)
	split := container.NewHSplit(left, container.NewVScroll(result))
	split.Offset = 0.55
	return split
}

func (u *uiState) show(obj fyne.CanvasObject) {
	u.root.Objects = []fyne.CanvasObject{obj}
	u.root.Refresh()
}

func (u *uiState) setStatus(text string) {
	_ = u.statusBind.Set(text)
}

// initialize loads the model off the UI goroutine. It is safe to call again
// after a failure.
func (u *uiState) initialize() {
	u.show(u.loading)
	u.setStatus("Loading model...")
	go func() {
		err := u.service.Initialize(context.Background())
		if err != nil {
			fyne.Do(func() {
				u.failDetail.SetText(err.Error())
				u.show(u.failure)
			})
			u.setStatus("Model unavailable")
			return
		}
		fyne.Do(func() { u.show(u.main) })
		u.setStatus("Ready")
	}()
}

func (u *uiState) onOpenImage() {
	fd := dialog.NewFileOpen(func(rc fyne.URIReadCloser, err error) {
		if err != nil {
			dialog.ShowError(err, u.w)
			return
		}
		if rc == nil {
			return
		}
		defer rc.Close()
		img, err := vision.DecodeFrame(rc)
		if err != nil {
			dialog.ShowError(err, u.w)
			return
		}
		u.setPreview(img)
		u.analyze(img, rc.URI().Name())
	}, u.w)
	fd.SetFilter(storage.NewExtensionFileFilter([]string{".jpg", ".jpeg", ".png", ".gif", ".bmp", ".webp"}))
	fd.Show()
}

func (u *uiState) analyze(img image.Image, name string) {
	u.openBtn.Disable()
	u.setStatus("Analyzing " + name + "...")
	go func() {
		res, err := u.service.Analyze(context.Background(), img)
		fyne.Do(func() { u.openBtn.Enable() })
		if err != nil {
			u.handleAnalyzeError(err)
			return
		}
		fyne.Do(func() { u.applyResult(res) })
		u.setStatus(fmt.Sprintf("Analyzed %s in %s", name, res.Elapsed.Round(time.Millisecond)))
	}()
}

func (u *uiState) handleAnalyzeError(err error) {
	if errors.Is(err, waste.ErrNotInitialized) {
		fyne.Do(func() {
			u.failDetail.SetText(err.Error())
			u.show(u.failure)
		})
		return
	}
	u.setStatus("Could not analyze the image")
	fyne.Do(func() { dialog.ShowError(err, u.w) })
}

func (u *uiState) setPreview(img image.Image) {
	u.preview.Image = img
	u.preview.Refresh()
}

func (u *uiState) applyResult(res waste.Result) {
	v := newResultView(res)
	u.category.SetText(v.Category)
	u.confidence.SetText(v.Confidence)
	u.detected.SetText(v.Detected)
	u.steps.SetText(v.Steps)
	u.alts.SetText(v.Alternatives)
	u.swatch.FillColor = v.Color
	u.swatch.Refresh()
}

func (u *uiState) onToggleLive() {
	u.liveMu.Lock()
	running := u.stopScan != nil
	u.liveMu.Unlock()
	if running {
		u.stopLive()
		return
	}
	path := strings.TrimSpace(u.snapshot.Text)
	if path == "" {
		dialog.ShowInformation("Live scan", "Enter the path of the snapshot image first.", u.w)
		return
	}
	u.startLive(path)
}

func (u *uiState) startLive(path string) {
	file := waste.FileFrameSource{Path: path}
	source := waste.FrameSourceFunc(func(ctx context.Context) (image.Image, error) {
		img, err := file.Frame(ctx)
		if err == nil {
			u.liveMu.Lock()
			u.lastFrame = img
			u.liveMu.Unlock()
		}
		return img, err
	})
	scanner := waste.NewScanner(u.service, source, 0, u.logger)
	ctx, cancel := context.WithCancel(context.Background())

	u.liveMu.Lock()
	u.scanner = scanner
	u.stopScan = cancel
	u.liveMu.Unlock()

	u.liveBtn.SetText("Stop scan")
	u.liveBtn.SetIcon(theme.MediaStopIcon())
	u.pauseBtn.Enable()
	u.snapshot.Disable()
	u.setStatus("Scanning " + path)
	u.logger.Printf("live scan started on %s", path)

	go func() {
		err := scanner.Run(ctx, func(res waste.Result) {
			u.liveMu.Lock()
			frame := u.lastFrame
			u.liveMu.Unlock()
			fyne.Do(func() {
				u.setPreview(frame)
				u.applyResult(res)
			})
		})
		u.liveMu.Lock()
		if u.scanner == scanner {
			u.scanner = nil
			u.stopScan = nil
		}
		u.liveMu.Unlock()
		cancel()
		if err != nil && !errors.Is(err, context.Canceled) {
			u.handleAnalyzeError(err)
		}
		u.logger.Printf("live scan stopped")
		fyne.Do(u.resetLiveControls)
	}()
}

func (u *uiState) stopLive() {
	u.liveMu.Lock()
	cancel := u.stopScan
	u.stopScan = nil
	u.scanner = nil
	u.liveMu.Unlock()
	if cancel != nil {
		cancel()
	}
}

func (u *uiState) resetLiveControls() {
	u.liveMu.Lock()
	running := u.stopScan != nil
	u.liveMu.Unlock()
	if running {
		return
	}
	u.liveBtn.SetText("Start scan")
	u.liveBtn.SetIcon(theme.MediaPlayIcon())
	u.pauseBtn.SetText("Pause")
	u.pauseBtn.SetIcon(theme.MediaPauseIcon())
	u.pauseBtn.Disable()
	u.snapshot.Enable()
	u.setStatus("Ready")
}

func (u *uiState) onTogglePause() {
	u.liveMu.Lock()
	scanner := u.scanner
	u.liveMu.Unlock()
	if scanner == nil {
		return
	}
	if scanner.Paused() {
		scanner.Resume()
		u.pauseBtn.SetText("Pause")
		u.pauseBtn.SetIcon(theme.MediaPauseIcon())
		u.setStatus("Scanning")
		return
	}
	scanner.Pause()
	u.pauseBtn.SetText("Resume")
	u.pauseBtn.SetIcon(theme.MediaPlayIcon())
	u.setStatus("Paused")
}
