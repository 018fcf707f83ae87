package gui

import (
	"fmt"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
	fynetooltip "github.com/dweymouth/fyne-tooltip"
	ttwidget "github.com/dweymouth/fyne-tooltip/widget"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"codeberg.org/snonux/flashy/internal"
	"codeberg.org/snonux/flashy/internal/session"
	"codeberg.org/snonux/flashy/internal/words"
)

// Application represents the main GUI application
type Application struct {
	// Fyne components
	app    fyne.App
	window fyne.Window

	// UI elements
	card        *CardDisplay
	statusLabel *widget.Label
	logViewer   *LogViewer

	// Action buttons
	wrongButton   *ttwidget.Button
	resetButton   *ttwidget.Button
	correctButton *ttwidget.Button
	helpButton    *ttwidget.Button

	// State management
	session     *session.Session
	hotkeysOpen bool

	// Configuration
	config *Config
	logger *zap.Logger
}

// Config holds GUI application configuration
type Config struct {
	Columns words.Columns // card titles
	Logger  *zap.Logger   // teed into the log panel
	Debug   bool          // show debug messages in the log panel
	App     fyne.App      // nil creates the desktop app
}

// DefaultConfig returns default GUI configuration
func DefaultConfig() *Config {
	return &Config{
		Columns: words.DefaultColumns(),
		Logger:  zap.NewNop(),
	}
}

// New creates a new GUI application. The window is built but not shown
// until Run.
func New(config *Config) *Application {
	if config == nil {
		config = DefaultConfig()
	} else {
		// Fill in missing fields with defaults
		defaults := DefaultConfig()
		if config.Columns == (words.Columns{}) {
			config.Columns = defaults.Columns
		}
		if config.Logger == nil {
			config.Logger = defaults.Logger
		}
	}

	fyneApp := config.App
	if fyneApp == nil {
		fyneApp = app.NewWithID("org.codeberg.snonux.flashy")
	}
	fyneApp.SetIcon(GetAppIcon())

	a := &Application{
		app:    fyneApp,
		config: config,
	}
	a.setupUI()

	level := zapcore.InfoLevel
	if config.Debug {
		level = zapcore.DebugLevel
	}
	a.logger = config.Logger.WithOptions(zap.WrapCore(func(core zapcore.Core) zapcore.Core {
		return zapcore.NewTee(core, a.logViewer.Core(level))
	}))

	return a
}

// Logger returns a logger that also writes into the log panel
func (a *Application) Logger() *zap.Logger {
	return a.logger
}

// setupUI creates the main user interface
func (a *Application) setupUI() {
	a.window = a.app.NewWindow(fmt.Sprintf("Flashy v%s - %s Flashcard Trainer", internal.Version, a.config.Columns.Source))
	a.window.SetIcon(GetAppIcon())
	a.window.Resize(fyne.NewSize(640, 560))

	a.card = NewCardDisplay()

	// Tooltips are set after the tooltip layer exists
	a.wrongButton = ttwidget.NewButtonWithIcon("Wrong", theme.CancelIcon(), a.onWrong)
	a.wrongButton.Importance = widget.DangerImportance

	a.resetButton = ttwidget.NewButtonWithIcon("Reset", theme.ViewRefreshIcon(), a.onReset)

	a.correctButton = ttwidget.NewButtonWithIcon("Correct", theme.ConfirmIcon(), a.onCorrect)
	a.correctButton.Importance = widget.SuccessImportance

	a.helpButton = ttwidget.NewButtonWithIcon("", theme.HelpIcon(), a.onShowHotkeys)

	buttons := container.NewHBox(
		layout.NewSpacer(),
		a.wrongButton,
		a.resetButton,
		a.correctButton,
		layout.NewSpacer(),
		a.helpButton,
	)

	a.statusLabel = widget.NewLabel("")
	a.statusLabel.Alignment = fyne.TextAlignCenter
	a.statusLabel.TextStyle = fyne.TextStyle{Italic: true}

	a.logViewer = NewLogViewer()
	logPanel := widget.NewAccordion(widget.NewAccordionItem("Log", a.logViewer))

	content := container.NewBorder(
		nil,
		container.NewVBox(
			buttons,
			a.statusLabel,
			widget.NewSeparator(),
			logPanel,
		),
		nil, nil,
		container.NewPadded(a.card),
	)

	a.window.SetContent(fynetooltip.AddWindowToolTipLayer(content, a.window.Canvas()))
	a.setupTooltips()

	a.window.SetOnClosed(func() {
		if a.session != nil {
			a.session.SetOnChange(nil)
			a.session.Close()
		}
	})

	a.setupKeyboardShortcuts()
}

// setupTooltips sets up all tooltips after the tooltip layer has been created
func (a *Application) setupTooltips() {
	a.wrongButton.SetToolTip("I don't know this word (← or x)")
	a.resetButton.SetToolTip("Reset progress (r)")
	a.correctButton.SetToolTip("I know this word (→ or v)")
	a.helpButton.SetToolTip("Show hotkeys (h)")
}

// Run shows the window for a started session and blocks until it is closed
func (a *Application) Run(s *session.Session) {
	a.attach(s)
	a.window.ShowAndRun()
}

func (a *Application) attach(s *session.Session) {
	a.session = s
	s.SetOnChange(func(session.Snapshot) {
		// Timer callbacks arrive on their own goroutine
		fyne.Do(a.refresh)
	})
	a.refresh()
}

func (a *Application) onWrong() {
	a.session.MarkWrong()
	a.refresh()
}

func (a *Application) onCorrect() {
	if err := a.session.MarkCorrect(); err != nil {
		a.showError(fmt.Errorf("could not save progress: %w", err))
	}
	a.refresh()
}

func (a *Application) onReset() {
	if err := a.session.ResetProgress(); err != nil {
		a.showError(fmt.Errorf("could not reset progress: %w", err))
	}
	a.refresh()
}

// refresh renders the current session state
func (a *Application) refresh() {
	if a.session == nil {
		return
	}
	a.render(a.session.Snapshot())
}

func (a *Application) render(snap session.Snapshot) {
	switch snap.State {
	case session.StateFront:
		a.card.SetFront(a.config.Columns.Source, snap.Text())
	case session.StateBack:
		a.card.SetBack(a.config.Columns.Target, snap.Text())
	case session.StateExhausted:
		a.card.SetExhausted()
	default:
		a.card.SetLoading()
	}

	if snap.HasCard {
		a.wrongButton.Enable()
		a.correctButton.Enable()
	} else {
		a.wrongButton.Disable()
		a.correctButton.Disable()
	}

	a.statusLabel.SetText(snap.Status())
}

func (a *Application) showError(err error) {
	a.logger.Error("Action failed", zap.Error(err))
	dialog.ShowError(err, a.window)
}
