package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"os"
	"strings"
	"sync"
	"time"

	"optimistify/internal/client"
	"optimistify/internal/theme"
	"optimistify/internal/transcript"
	"optimistify/pkg/logger"
)

type palette struct {
	user      string
	assistant string
	reset     string
}

var palettes = map[theme.Theme]palette{
	theme.Dark:  {user: "\033[1;36m", assistant: "\033[0;37m", reset: "\033[0m"},
	theme.Light: {user: "\033[1;34m", assistant: "\033[0;30m", reset: "\033[0m"},
}

// screen renders display messages with the active palette.
type screen struct {
	mu      sync.Mutex
	colors  palette
	printed int
}

func (s *screen) setTheme(t theme.Theme) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.colors = palettes[t]
}

// render prints what has not been printed yet, keeping the newest message
// at the bottom of the terminal.
func (s *screen) render(msgs []transcript.DisplayMessage) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, msg := range msgs[s.printed:] {
		if msg.IsUser {
			fmt.Printf("%sYou:%s %s\n", s.colors.user, s.colors.reset, msg.Content)
			continue
		}
		fmt.Printf("%sOptimistify:%s\n%s\n\n", s.colors.assistant, s.colors.reset, msg.Content)
	}
	s.printed = len(msgs)

	if len(msgs) > 0 && msgs[len(msgs)-1].IsUser {
		fmt.Println("Finding the silver lining...")
	}
}

// send runs one turn. The first turn goes through Start so the initial
// prompt fires exactly once.
func send(controller *transcript.Controller, first bool, text string, timeout time.Duration) error {
	ctx := context.Background()
	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout+time.Second)
		defer cancel()
	}

	if first {
		_, err := controller.Start(ctx, text)
		return err
	}
	_, err := controller.Submit(ctx, text)
	return err
}

func main() {
	serverURL := flag.String("server", "http://localhost:8080", "base URL of the Optimistify server")
	timeout := flag.Duration("timeout", 0, "per-request timeout (0 = no client timeout)")
	logLevel := flag.String("log-level", "error", "log level")
	flag.Parse()

	if err := logger.Init(*logLevel, "text"); err != nil {
		fmt.Fprintf(os.Stderr, "failed to init logger: %v\n", err)
		os.Exit(1)
	}

	themeCtx := theme.New(theme.Dark)
	scr := &screen{colors: palettes[themeCtx.Current()]}
	themeCtx.Subscribe(scr.setTheme)

	controller := transcript.New(client.New(*serverURL, *timeout))
	controller.OnChange(scr.render)

	reader := bufio.NewReader(os.Stdin)
	fmt.Println("Welcome to Optimistify. Share what is bothering you ('exit' to quit).")

	started := false
	for {
		fmt.Print("> ")
		line, err := reader.ReadString('\n')
		if err != nil {
			fmt.Println()
			return
		}
		line = strings.TrimSpace(line)
		if line == "exit" {
			fmt.Println("Goodbye!")
			return
		}
		if line == "" {
			continue
		}

		first := !started
		if first {
			// light theme once the conversation begins
			themeCtx.Set(theme.Light)
			started = true
		}
		if err := send(controller, first, line, *timeout); err != nil {
			fmt.Fprintf(os.Stderr, "not sent: %v\n", err)
			continue
		}

		if banner := controller.LastError(); banner != "" {
			fmt.Fprintf(os.Stderr, "error: %s\n", banner)
		}
	}
}
