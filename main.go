// termsuji-spectate is a terminal dashboard for watching an engine
// tournament served over HTTP.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strconv"
	"syscall"
	"time"

	"github.com/adrg/xdg"
	"github.com/gdamore/tcell/v2"
	"github.com/jonboulle/clockwork"
	"github.com/rivo/tview"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"termsuji-spectate/config"
	"termsuji-spectate/poller"
	"termsuji-spectate/reconcile"
	"termsuji-spectate/render"
	"termsuji-spectate/sgf"
	"termsuji-spectate/types"
	"termsuji-spectate/ui"
)

// Version is set at build time via ldflags
var Version = "dev"

// Command-line flags
var (
	flagURL      = flag.String("url", "", "Tournament state endpoint (overrides config)")
	flagInterval = flag.Duration("interval", 0, "Poll interval, e.g. 500ms (overrides config)")
	flagArchive  = flag.String("archive", "", "Directory to archive watched games as SGF")
	flagPNG      = flag.String("png", "", "Also write the board to this PNG file on every move")
	flagPNGSize  = flag.Int("png-size", 600, "Width and height of the PNG frame in pixels")
	flagLogLevel = flag.String("log-level", "", "Log level: debug, info, warn, error")
	flagFocus    = flag.Bool("focus", false, "Start in focus mode (board only)")
	flagWriteCfg = flag.Bool("write-config", false, "Write the effective config to the config file and exit")
	flagVersion  = flag.Bool("version", false, "Print version and exit")
)

func main() {
	flag.Parse()

	if *flagVersion {
		fmt.Printf("termsuji-spectate %s\n", Version)
		return
	}

	cfg, err := config.InitConfig()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	applyFlags(cfg)
	if err := cfg.Validate(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	if *flagWriteCfg {
		path, err := cfg.Save()
		if err != nil {
			fmt.Fprintf(os.Stderr, "cannot write config: %s\n", err)
			os.Exit(1)
		}
		fmt.Println(path)
		return
	}

	logPath, closeLog, err := setupLogging(cfg.LogLevel)
	if err != nil {
		fmt.Fprintf(os.Stderr, "cannot open log file: %s\n", err)
		os.Exit(1)
	}
	defer closeLog()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, logPath); err != nil {
		log.Error().Err(err).Msg("exiting")
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// applyFlags lets explicit command-line flags override file and environment.
func applyFlags(cfg *config.Config) {
	if *flagURL != "" {
		cfg.Server.URL = *flagURL
	}
	if *flagInterval > 0 {
		cfg.Server.IntervalMS = int(flagInterval.Milliseconds())
	}
	if *flagArchive != "" {
		cfg.ArchiveDir = *flagArchive
	}
	if *flagLogLevel != "" {
		cfg.LogLevel = *flagLogLevel
	}
}

// setupLogging sends the global logger to a file, since the terminal
// belongs to the dashboard.
func setupLogging(level string) (string, func(), error) {
	path, err := config.LogFilePath()
	if err != nil {
		return "", nil, err
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return "", nil, err
	}
	lvl, err := zerolog.ParseLevel(level)
	if err != nil {
		lvl = zerolog.InfoLevel
	}
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: f, NoColor: true, TimeFormat: time.RFC3339})
	zerolog.SetGlobalLevel(lvl)
	return path, func() { f.Close() }, nil
}

// spectator owns the UI state. Every method runs on the tview event loop.
type spectator struct {
	cfg      *config.Config
	logPath  string
	app      *tview.Application
	pages    *tview.Pages
	dash     *ui.Dashboard
	loop     *poller.Loop
	archiver *sgf.Archiver
	frames   *frameWriter

	state  *reconcile.State
	latest *types.TournamentState
}

func run(ctx context.Context, cfg *config.Config, logPath string) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	renderer := render.NewRenderer()
	renderer.Palette = ui.PaletteFor(cfg.Theme)
	renderer.HideMoveNumbers = !cfg.Theme.ShowMoveNumbers

	board := ui.NewBoardView(renderer)
	s := &spectator{
		cfg:     cfg,
		logPath: logPath,
		app:     tview.NewApplication(),
		pages:   tview.NewPages(),
		dash:    ui.NewDashboard(board),
		state:   reconcile.NewState(),
	}
	s.state.Log = reconcile.NewLogBuffer(cfg.MaxLog)
	if cfg.ArchiveDir != "" {
		s.archiver = sgf.NewArchiver(cfg.ArchiveDir, clockwork.NewRealClock())
		defer s.archiver.Close()
	}
	if *flagPNG != "" {
		s.frames = &frameWriter{path: *flagPNG, size: float64(*flagPNGSize)}
	}
	s.dash.SetFocusMode(*flagFocus)

	// Poll results reach the event loop in the order they were dispatched.
	updates := make(chan func(), 64)
	dispatch := func(f func()) {
		select {
		case updates <- f:
		case <-ctx.Done():
		}
	}

	s.loop = poller.New(
		poller.NewHTTPFetcher(cfg.Server.URL, 4*cfg.Server.Interval()),
		poller.WithInterval(cfg.Server.Interval()),
		poller.WithFailThreshold(cfg.Server.FailThreshold),
		poller.WithDispatch(dispatch),
		poller.WithApply(s.apply),
		poller.WithStatus(s.dash.SetStatus),
	)

	resize := ui.NewDebouncer(clockwork.NewRealClock(), ui.ResizeDelay, func() {
		s.app.QueueUpdateDraw(board.Thaw)
	})
	defer resize.Stop()
	lastW, lastH := 0, 0
	s.app.SetBeforeDrawFunc(func(screen tcell.Screen) bool {
		w, h := screen.Size()
		if lastW != 0 && (w != lastW || h != lastH) {
			board.Freeze()
			resize.Trigger()
		}
		lastW, lastH = w, h
		return false
	})

	s.pages.AddPage("dashboard", s.dash.Root(), true, true)
	s.app.SetInputCapture(s.handleKey)
	s.app.SetRoot(s.pages, true)

	log.Info().Str("url", cfg.Server.URL).Dur("interval", cfg.Server.Interval()).Msg("spectating")

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return s.loop.Run(gctx)
	})
	g.Go(func() error {
		for {
			select {
			case f := <-updates:
				s.app.QueueUpdateDraw(f)
			case <-gctx.Done():
				return nil
			}
		}
	})
	g.Go(func() error {
		<-gctx.Done()
		s.app.Stop()
		return nil
	})
	g.Go(func() error {
		defer cancel()
		return s.app.Run()
	})
	return g.Wait()
}

// apply takes a snapshot that won the sequence check.
func (s *spectator) apply(in *types.TournamentState) {
	s.latest = in
	s.state = reconcile.Apply(s.state, in)
	s.dash.Update(s.state)

	if s.archiver != nil {
		if err := s.archiver.Observe(in); err != nil {
			log.Warn().Err(err).Msg("archive failed")
		}
	}
	if s.frames != nil {
		if err := s.frames.write(s.state.Board); err != nil {
			log.Warn().Err(err).Str("path", s.frames.path).Msg("png frame failed")
		}
	}
}

func (s *spectator) handleKey(event *tcell.EventKey) *tcell.EventKey {
	if name, _ := s.pages.GetFrontPage(); name == "info" {
		if event.Key() == tcell.KeyEsc || (event.Key() == tcell.KeyRune && event.Rune() == '?') {
			s.pages.RemovePage("info")
			return nil
		}
	}
	if event.Key() != tcell.KeyRune {
		return event
	}
	switch event.Rune() {
	case 'q':
		s.app.Stop()
		return nil
	case 'f':
		s.dash.ToggleFocusMode()
		return nil
	case 's':
		s.saveGame()
		return nil
	case '?':
		s.showInfo()
		return nil
	}
	return event
}

// saveGame writes the game on screen to its own SGF file right away.
func (s *spectator) saveGame() {
	if s.latest == nil || len(s.state.Board.MoveOrder) == 0 {
		s.dash.Flash("nothing to save yet")
		return
	}
	// The last snapshot may have left the board out.
	snap := *s.latest
	snap.Board = s.state.Board
	dir := s.cfg.ArchiveDir
	if dir == "" {
		dir = filepath.Join(xdg.DataHome, "termsuji-spectate", "games")
	}
	path, err := sgf.Export(dir, &snap, time.Now())
	if err != nil {
		log.Warn().Err(err).Msg("save failed")
		s.dash.Flash("save failed: " + err.Error())
		return
	}
	log.Info().Str("file", path).Msg("game saved")
	s.dash.Flash("saved " + path)
}

func (s *spectator) showInfo() {
	archive := "off"
	if s.archiver != nil {
		archive = s.cfg.ArchiveDir
		if cur, ok := s.archiver.Current(); ok {
			archive = cur
		}
	}
	layout := "full"
	if s.dash.IsFocusMode() {
		layout = "focus"
	}
	card := ui.NewInfoCard("Connection")
	card.SetRows([][2]string{
		{"Server", s.cfg.Server.URL},
		{"Interval", s.cfg.Server.Interval().String()},
		{"Status", s.dash.Status().String()},
		{"Failures", strconv.Itoa(s.loop.Failures())},
		{"Layout", layout},
		{"Archive", archive},
		{"Log file", s.logPath},
		{"Version", Version},
	})
	w, h := card.PreferredSize()
	s.pages.AddPage("info", ui.Centered(card, w, h), true, true)
}

// frameWriter exports the board as a PNG whenever it changes.
type frameWriter struct {
	path  string
	size  float64
	moves int
	board *types.BoardSnapshot
}

func (f *frameWriter) write(board *types.BoardSnapshot) error {
	if board == nil || (f.board != nil && board.Size == f.board.Size && len(board.MoveOrder) == f.moves) {
		return nil
	}
	f.board, f.moves = board, len(board.MoveOrder)
	return render.Frame(board, f.size, f.size, 1).WritePNG(f.path)
}
