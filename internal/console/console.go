// Package console drives the widget from a line-oriented terminal session.
package console

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/0nxb/my-weather-app/internal/view"
	"github.com/0nxb/my-weather-app/internal/widget"
)

const helpText = `commands:
  <city>     search for a city
  :loc       use the configured location
  :unit      toggle °C / °F
  :recent    show recent searches
  :pick N    search the N-th recent city
  :close     hide recent searches
  :help      show this help
  :quit      exit
`

type Session struct {
	ctrl *widget.Controller
	view *view.MemoryView
	out  io.Writer
}

func New(ctrl *widget.Controller, v *view.MemoryView, out io.Writer) *Session {
	return &Session{ctrl: ctrl, view: v, out: out}
}

// Run executes one command per line of in until :quit, EOF or ctx is done.
// The controller's loop must already be running.
func (s *Session) Run(ctx context.Context, in io.Reader) error {
	s.ctrl.Wait()
	if err := Print(s.out, s.view); err != nil {
		return err
	}

	lines := make(chan string)
	readErr := make(chan error, 1)
	stop := make(chan struct{})
	defer close(stop)
	go func() {
		scanner := bufio.NewScanner(in)
		for scanner.Scan() {
			select {
			case lines <- scanner.Text():
			case <-stop:
				return
			}
		}
		readErr <- scanner.Err()
	}()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case err := <-readErr:
			return err
		case line := <-lines:
			quit, err := s.Exec(line)
			if err != nil {
				return err
			}
			if quit {
				return nil
			}
		}
	}
}

// Exec runs a single command, waits for the lookups it started, and prints
// the resulting screen. It reports whether the session should end.
func (s *Session) Exec(line string) (bool, error) {
	line = strings.TrimSpace(line)
	if line == "" {
		return false, nil
	}

	if !strings.HasPrefix(line, ":") {
		s.view.SetValue(view.CityInput, line)
		s.ctrl.Trigger(widget.Search, widget.Event{})
		return false, s.settle()
	}

	cmd, arg, _ := strings.Cut(line[1:], " ")
	switch cmd {
	case "quit", "q":
		return true, nil
	case "help", "h":
		_, err := io.WriteString(s.out, helpText)
		return false, err
	case "loc":
		s.ctrl.Trigger(widget.Locate, widget.Event{})
	case "unit":
		s.ctrl.Trigger(widget.ToggleUnits, widget.Event{})
	case "recent":
		s.ctrl.Trigger(widget.FocusInput, widget.Event{})
	case "close":
		s.ctrl.Trigger(widget.OutsideClick, widget.Event{Inside: false})
	case "pick":
		n, err := strconv.Atoi(strings.TrimSpace(arg))
		if err != nil || !s.view.Activate(view.RecentSearches, n-1) {
			_, err := fmt.Fprintf(s.out, "no recent city %q\n", arg)
			return false, err
		}
	default:
		_, err := fmt.Fprintf(s.out, "unknown command %q, try :help\n", cmd)
		return false, err
	}
	return false, s.settle()
}

func (s *Session) settle() error {
	s.ctrl.Wait()
	return Print(s.out, s.view)
}
