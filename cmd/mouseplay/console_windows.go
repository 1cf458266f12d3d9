//go:build windows

package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/Alia5/mouseplay/internal/vplog"
	"github.com/Alia5/mouseplay/winapi"
)

const consoleTitle = "mouseplay"

// banner is printed once the console is live, carried over from the
// original library's startup print (original_source/mouseplay/src/console.rs).
const banner = "" +
	"                                             __           \n" +
	"      ____ ___  ____  __  __________  ____  / /___ ___  __\n" +
	"     / __ `__ \\/ __ \\/ / / / ___/ _ \\/ __ \\/ / __ `/ / / /\n" +
	"    / / / / / / /_/ / /_/ (__  )  __/ /_/ / / /_/ / /_/ / \n" +
	"   /_/ /_/ /_/\\____/\\__,_/____/\\___/ .___/_/\\__,_/\\__, /  \n" +
	"                                  /_/            /____/"

// initConsole allocates a console titled "mouseplay" and redirects stdout
// and stderr into it (spec.md §6's "Console" interface). If the process
// already owns a console, AllocConsole fails and stdio is left untouched —
// matching the original's "if AllocConsole() != 0" guard.
func initConsole() (*slog.Logger, []io.Closer) {
	if winapi.AllocConsole() {
		winapi.SetConsoleTitle(consoleTitle)
		if f, err := os.OpenFile("CONOUT$", os.O_RDWR, 0); err == nil {
			os.Stdout = f
			os.Stderr = f
		}
		fmt.Println(banner)
		fmt.Println()
	}

	logger, closers, err := vplog.Setup("debug", "")
	if err != nil {
		return slog.Default(), nil
	}
	logger.Info("console initialized")
	return logger, closers
}
