package cmd

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/korjavin/gammagame/gamma"
	"github.com/korjavin/gammagame/pkg/gamelog"
)

var batchCmd = &cobra.Command{
	Use:   "batch",
	Short: "Run the spec.md §6 line-oriented command protocol over stdin/stdout",
	RunE: func(c *cobra.Command, args []string) error {
		return runBatch(c.InOrStdin(), c.OutOrStdout(), c.ErrOrStderr(), logger)
	},
}

func init() {
	rootCmd.AddCommand(batchCmd)
}

// outcome classifies how a dispatched line should be reported, per
// spec.md §6's per-line I/O rules.
type outcome int

const (
	outcomeError outcome = iota
	outcomeConstructed
	outcomeLine     // a numeric/boolean query result, newline-terminated by the host
	outcomeVerbatim // render() output, already newline-terminated by the engine
)

// batchSession holds the one game a batch run may construct — spec.md §6's
// "B"/"I" are "valid only before any construction".
type batchSession struct {
	game        *gamma.Game
	constructed bool
}

// runBatch reads whitespace-tokenized commands from in and writes results
// to out/errOut exactly per spec.md §6: blank lines and "#" comments don't
// advance the line counter; every other line does, and is reported as
// "OK <line>" (stdout, on a successful B) or "ERROR <line>" (stderr, on any
// rejection); query commands print their result to stdout with no
// OK/ERROR wrapper, since spec.md treats a false/0 query result as a
// normal output, not a host-level error.
func runBatch(in io.Reader, out, errOut io.Writer, log gamelog.Logger) error {
	scanner := bufio.NewScanner(in)
	scanner.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)

	var sess batchSession
	line := 0
	for scanner.Scan() {
		trimmed := strings.TrimSpace(scanner.Text())
		if trimmed == "" || strings.HasPrefix(trimmed, "#") {
			continue
		}
		line++

		result, output := sess.dispatch(strings.Fields(trimmed))
		switch result {
		case outcomeConstructed:
			fmt.Fprintf(out, "OK %d\n", line)
			log.Info("line %d: constructed board", line)
		case outcomeLine:
			fmt.Fprintln(out, output)
		case outcomeVerbatim:
			fmt.Fprint(out, output)
		default:
			fmt.Fprintf(errOut, "ERROR %d\n", line)
			log.Debug("line %d: rejected (%s)", line, trimmed)
		}
	}
	return scanner.Err()
}

func (s *batchSession) dispatch(fields []string) (outcome, string) {
	if len(fields) == 0 {
		return outcomeError, ""
	}

	switch fields[0] {
	case "B":
		return s.handleConstruct(fields)
	case "I":
		// Listed per spec.md §6, but the interactive full-screen UI is out of
		// scope for this repository (spec.md §1) — it is never started. The
		// line is reported as "ERROR <line>", exactly like an unknown command.
		return outcomeError, ""
	case "m":
		return s.handleMove(fields, false)
	case "g":
		return s.handleMove(fields, true)
	case "b":
		return s.handleCount(fields, func(p uint32) int64 { return s.game.BusyFields(p) })
	case "f":
		return s.handleCount(fields, func(p uint32) int64 { return s.game.FreeFields(p) })
	case "q":
		return s.handleBool(fields, func(p uint32) bool { return s.game.OverridePossible(p) })
	case "p":
		return s.handleRender(fields)
	default:
		return outcomeError, ""
	}
}

func (s *batchSession) handleConstruct(fields []string) (outcome, string) {
	if s.constructed {
		return outcomeError, ""
	}
	if len(fields) != 5 {
		return outcomeError, ""
	}
	w, ok1 := parseToken(fields[1])
	h, ok2 := parseToken(fields[2])
	p, ok3 := parseToken(fields[3])
	a, ok4 := parseToken(fields[4])
	if !ok1 || !ok2 || !ok3 || !ok4 {
		return outcomeError, ""
	}
	g, err := gamma.NewGame(w, h, p, a)
	if err != nil {
		return outcomeError, ""
	}
	s.game = g
	s.constructed = true
	return outcomeConstructed, ""
}

func (s *batchSession) handleMove(fields []string, override bool) (outcome, string) {
	if !s.constructed || len(fields) != 4 {
		return outcomeError, ""
	}
	p, ok1 := parseToken(fields[1])
	x, ok2 := parseToken(fields[2])
	y, ok3 := parseToken(fields[3])
	if !ok1 || !ok2 || !ok3 {
		return outcomeError, ""
	}
	var accepted bool
	if override {
		accepted = s.game.Override(p, x, y)
	} else {
		accepted = s.game.Claim(p, x, y)
	}
	if accepted {
		return outcomeLine, "1"
	}
	return outcomeLine, "0"
}

func (s *batchSession) handleCount(fields []string, query func(uint32) int64) (outcome, string) {
	if !s.constructed || len(fields) != 2 {
		return outcomeError, ""
	}
	p, ok := parseToken(fields[1])
	if !ok {
		return outcomeError, ""
	}
	return outcomeLine, strconv.FormatInt(query(p), 10)
}

func (s *batchSession) handleBool(fields []string, query func(uint32) bool) (outcome, string) {
	if !s.constructed || len(fields) != 2 {
		return outcomeError, ""
	}
	p, ok := parseToken(fields[1])
	if !ok {
		return outcomeError, ""
	}
	if query(p) {
		return outcomeLine, "1"
	}
	return outcomeLine, "0"
}

func (s *batchSession) handleRender(fields []string) (outcome, string) {
	if !s.constructed || len(fields) != 1 {
		return outcomeError, ""
	}
	rendered, err := s.game.Render()
	if err != nil {
		return outcomeError, ""
	}
	return outcomeVerbatim, rendered
}

// parseToken validates a command argument per spec.md §6: decimal digits
// only, no leading zero unless the value itself is 0, and it must fit in
// uint32.
func parseToken(s string) (uint32, bool) {
	if s == "" {
		return 0, false
	}
	for _, c := range s {
		if c < '0' || c > '9' {
			return 0, false
		}
	}
	if len(s) > 1 && s[0] == '0' {
		return 0, false
	}
	val, err := strconv.ParseUint(s, 10, 32)
	if err != nil {
		return 0, false
	}
	return uint32(val), true
}
