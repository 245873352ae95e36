package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"trip-route-planner/internal/domain"
	"trip-route-planner/internal/services"
)

// Planner is the part of services.TripPlanner the session needs.
type Planner interface {
	Plan(ctx context.Context, req services.TripRequest) (domain.TripReport, error)
}

type state int

const (
	statePrompting state = iota
	stateProcessing
	stateExiting
)

// SessionConfig carries the caller policy applied to every query of a session.
type SessionConfig struct {
	OriginHint      string
	DestinationHint string
	ExitToken       string
}

// Session runs the interactive prompt loop: Prompting -> Processing -> Prompting,
// until the exit token or end of input moves it to Exiting.
type Session struct {
	in      *bufio.Scanner
	out     io.Writer
	planner Planner
	cfg     SessionConfig
}

func NewSession(in io.Reader, out io.Writer, planner Planner, cfg SessionConfig) *Session {
	if cfg.ExitToken == "" {
		cfg.ExitToken = "q"
	}
	return &Session{
		in:      bufio.NewScanner(in),
		out:     out,
		planner: planner,
		cfg:     cfg,
	}
}

// Run drives the session until the user exits or input ends. Planning failures
// are reported to the user and never end the session.
func (s *Session) Run(ctx context.Context) error {
	st := statePrompting
	var req services.TripRequest

	for {
		switch st {
		case statePrompting:
			if err := ctx.Err(); err != nil {
				return err
			}
			var err error
			req, st, err = s.prompt()
			if err != nil {
				return err
			}

		case stateProcessing:
			s.process(ctx, req)
			st = statePrompting

		case stateExiting:
			fmt.Fprintln(s.out, "Goodbye!")
			return nil
		}
	}
}

var errExit = errors.New("exit requested")

// prompt collects one trip request and returns the next state.
func (s *Session) prompt() (services.TripRequest, state, error) {
	origin, err := s.ask("Origin city (or '" + s.cfg.ExitToken + "' to quit): ")
	if err != nil {
		return services.TripRequest{}, stateExiting, ignoreExit(err)
	}

	destination, err := s.ask("Destination city (or '" + s.cfg.ExitToken + "' to quit): ")
	if err != nil {
		return services.TripRequest{}, stateExiting, ignoreExit(err)
	}

	fmt.Fprintln(s.out, "Travel mode: 1) Driving  2) Walking  3) Cycling")
	selector, err := s.ask("Choose 1, 2, 3 (or '" + s.cfg.ExitToken + "' to quit): ")
	if err != nil {
		return services.TripRequest{}, stateExiting, ignoreExit(err)
	}

	mode, err := domain.TravelModeFromSelector(selector)
	if err != nil {
		fmt.Fprint(s.out, "Invalid option.\n\n")
		return services.TripRequest{}, statePrompting, nil
	}

	return services.TripRequest{
		Origin:      domain.PlaceQuery{RawText: origin, Hint: s.cfg.OriginHint},
		Destination: domain.PlaceQuery{RawText: destination, Hint: s.cfg.DestinationHint},
		Mode:        mode,
	}, stateProcessing, nil
}

// ask prints label and reads one trimmed line. The exit token and end of input
// both yield errExit.
func (s *Session) ask(label string) (string, error) {
	fmt.Fprint(s.out, label)

	if !s.in.Scan() {
		if err := s.in.Err(); err != nil {
			return "", fmt.Errorf("read input: %w", err)
		}
		return "", errExit
	}

	line := strings.TrimSpace(s.in.Text())
	if strings.EqualFold(line, s.cfg.ExitToken) {
		return "", errExit
	}
	return line, nil
}

func ignoreExit(err error) error {
	if errors.Is(err, errExit) {
		return nil
	}
	return err
}

func (s *Session) process(ctx context.Context, req services.TripRequest) {
	report, err := s.planner.Plan(ctx, req)
	if err != nil {
		fmt.Fprintf(s.out, "%s\n\n", domain.FailureMessage(err))
		return
	}
	RenderReport(s.out, report)
}
