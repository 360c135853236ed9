// play is a terminal tic-tac-toe game against the minimax engine.
package main

import (
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/adrg/xdg"
	"github.com/rivo/tview"

	"github.com/rocketscienceinc/tictactoe-minimax/internal/config"
	"github.com/rocketscienceinc/tictactoe-minimax/internal/entity"
	"github.com/rocketscienceinc/tictactoe-minimax/internal/logging"
	"github.com/rocketscienceinc/tictactoe-minimax/internal/service"
	"github.com/rocketscienceinc/tictactoe-minimax/internal/tui"
)

const logFile = "tictactoe/play.log"

var (
	flagMode = flag.String("mode", "", "Game mode (pvc or pvp)")
	flagMark = flag.String("mark", "", "Your mark against the computer (X or O)")
)

func main() {
	flag.Parse()

	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run() error {
	conf, err := config.LoadUser()
	if err != nil {
		return err
	}

	mode, err := entity.ParseMode(firstNonEmpty(*flagMode, conf.Game.DefaultMode))
	if err != nil {
		return err
	}

	humanMark, err := entity.ParseMark(firstNonEmpty(*flagMark, conf.Game.HumanMark))
	if err != nil {
		return err
	}

	// the terminal belongs to the UI, so logs go to a file
	logOut, closeLog := openLog()
	defer closeLog()
	logger := logging.New(logOut, conf.LogLevel)

	session, err := tui.NewSession(service.NewBotService(logger), mode, humanMark)
	if err != nil {
		return err
	}

	app := tview.NewApplication()
	view := tui.NewView(app, session, logger, conf.Game.BotDelay)
	view.Start()

	if err = app.SetRoot(view.Root(), true).Run(); err != nil {
		return fmt.Errorf("terminal UI failed: %w", err)
	}

	return nil
}

func openLog() (io.Writer, func()) {
	path, err := xdg.StateFile(logFile)
	if err != nil {
		return io.Discard, func() {}
	}

	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
	if err != nil {
		return io.Discard, func() {}
	}

	return file, func() { _ = file.Close() }
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
