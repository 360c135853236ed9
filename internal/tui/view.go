// Package tui is a terminal driver for playing against the engine.
package tui

import (
	"log/slog"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"

	"github.com/rocketscienceinc/tictactoe-minimax/internal/entity"
)

const help = "1-9/enter: play  arrows: move  r: restart  m: mode  x: swap mark  q: quit"

type View struct {
	app     *tview.Application
	session *Session
	logger  *slog.Logger
	delay   time.Duration

	root   *tview.Flex
	cells  [entity.BoardSize]*tview.Button
	status *tview.TextView
	mode   *tview.TextView
	score  *tview.TextView

	focused int
}

// NewView lays out the board. delay only paces the computer's replies.
func NewView(app *tview.Application, session *Session, logger *slog.Logger, delay time.Duration) *View {
	view := &View{
		app:     app,
		session: session,
		logger:  logger.With("component", "tui"),
		delay:   delay,
		status:  tview.NewTextView(),
		mode:    tview.NewTextView(),
		score:   tview.NewTextView(),
		focused: entity.CenterCell,
	}

	grid := tview.NewGrid().
		SetRows(3, 3, 3).
		SetColumns(7, 7, 7).
		SetGap(0, 1)

	for i := range view.cells {
		cell := i
		button := tview.NewButton(" ").SetSelectedFunc(func() {
			view.play(cell)
		})
		view.cells[i] = button
		grid.AddItem(button, i/3, i%3, 1, 1, 0, 0, i == view.focused)
	}

	view.root = tview.NewFlex().SetDirection(tview.FlexRow).
		AddItem(grid, 11, 0, true).
		AddItem(view.status, 1, 0, false).
		AddItem(view.mode, 1, 0, false).
		AddItem(view.score, 1, 0, false).
		AddItem(tview.NewTextView().SetText(help), 1, 0, false)
	view.root.SetBorder(true).SetTitle(" tic-tac-toe ")

	view.root.SetInputCapture(view.handleKey)

	return view
}

func (that *View) Root() tview.Primitive {
	return that.root
}

// Start renders the first frame and lets the computer open if it holds X.
func (that *View) Start() {
	that.render()
	that.scheduleBot()
}

func (that *View) handleKey(event *tcell.EventKey) *tcell.EventKey {
	switch event.Key() {
	case tcell.KeyUp:
		that.moveFocus(-3)
		return nil
	case tcell.KeyDown:
		that.moveFocus(3)
		return nil
	case tcell.KeyLeft:
		that.moveFocus(-1)
		return nil
	case tcell.KeyRight:
		that.moveFocus(1)
		return nil
	case tcell.KeyRune:
	default:
		return event
	}

	switch r := event.Rune(); {
	case r >= '1' && r <= '9':
		that.play(int(r - '1'))
	case r == 'r':
		that.reset(that.session.Restart)
	case r == 'm':
		that.reset(that.session.ToggleMode)
	case r == 'x':
		that.reset(that.session.SwapMark)
	case r == 'q':
		that.app.Stop()
	default:
		return event
	}

	return nil
}

func (that *View) moveFocus(step int) {
	next := that.focused + step
	if next < 0 || next >= entity.BoardSize {
		return
	}
	// left and right stay within the row
	if (step == 1 || step == -1) && next/3 != that.focused/3 {
		return
	}

	that.focused = next
	that.app.SetFocus(that.cells[next])
}

func (that *View) play(cell int) {
	if err := that.session.Play(cell); err != nil {
		that.logger.Debug("move rejected", "cell", cell, "error", err)
		return
	}

	that.render()
	that.scheduleBot()
}

func (that *View) reset(restart func() error) {
	if err := restart(); err != nil {
		that.logger.Error("failed to restart", "error", err)
		return
	}

	that.render()
	that.scheduleBot()
}

// scheduleBot runs the computer's reply after the pacing delay on the UI goroutine.
func (that *View) scheduleBot() {
	if !that.session.BotPending() {
		return
	}

	time.AfterFunc(that.delay, func() {
		that.app.QueueUpdateDraw(func() {
			if err := that.session.PlayBot(); err != nil {
				that.logger.Error("computer move failed", "error", err)
			}
			that.render()
		})
	})
}

func (that *View) render() {
	game := that.session.Game()

	highlighted := map[int]bool{}
	if game.WinLine != nil {
		for _, cell := range game.WinLine {
			highlighted[cell] = true
		}
	}

	for i, button := range that.cells {
		label := " "
		if game.Board[i] != entity.EmptyCell {
			label = string(game.Board[i])
		}
		button.SetLabel(label)

		color := tview.Styles.ContrastBackgroundColor
		if highlighted[i] {
			color = tcell.ColorDarkGreen
		}
		button.SetBackgroundColor(color)
	}

	that.status.SetText(that.session.StatusLine())
	that.mode.SetText(that.session.ModeLine())
	that.score.SetText(that.session.ScoreLine())
}
