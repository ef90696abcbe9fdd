package main

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/GriffinCanCode/termline/internal/callbacks"
	"github.com/GriffinCanCode/termline/internal/infrastructure/monitoring"
	"github.com/GriffinCanCode/termline/internal/session"
)

var commands = []string{"capacity", "clear", "exit", "help", "history", "pause", "prompt", "size", "stats", "tty"}

const usage = `commands:
  help              show this text
  history           list history entries
  clear             clear history
  size              print terminal rows and columns
  tty               report whether the streams are terminals
  prompt <text>     change the prompt (empty restores the default)
  capacity <n>      bound the history to n entries
  pause <seconds>   pause the session and watch for pending input
  stats             print session counters
  exit              leave
`

type shell struct {
	sess    *session.Session
	metrics *monitoring.Metrics
	lines   int
	done    bool
}

func newShell(sess *session.Session, metrics *monitoring.Metrics) *shell {
	return &shell{sess: sess, metrics: metrics}
}

func (sh *shell) register() {
	sh.sess.SetCompletionHandler(callbacks.CompletionFunc(complete))
	sh.sess.SetLineHandler(callbacks.LineFunc(func(string) {
		sh.lines++
	}))
	sh.sess.SetCloseHandler(callbacks.EventFunc(func() {
		sh.print("bye\n")
	}))
	sh.sess.SetInterruptHandler(callbacks.EventFunc(func() {
		sh.print("^C (type exit to leave)\n")
	}))
	sh.sess.SetSuspendHandler(callbacks.EventFunc(func() {
		sh.print("\nsuspended\n")
	}))
	sh.sess.SetContinueHandler(callbacks.EventFunc(func() {
		sh.print("resumed\n")
	}))
}

// complete offers command words for the first word on the line
func complete(line string, pos int) []string {
	head := line[:min(pos, len(line))]
	if strings.ContainsRune(head, ' ') {
		return nil
	}

	var out []string
	for _, c := range commands {
		if strings.HasPrefix(c, head) {
			out = append(out, c)
		}
	}
	return out
}

func (sh *shell) loop() {
	for !sh.done && !sh.sess.IsClosed() {
		line, ok := sh.sess.ReadLine()
		if !ok {
			continue
		}
		sh.exec(line)
	}
}

func (sh *shell) exec(line string) {
	name, arg, _ := strings.Cut(strings.TrimSpace(line), " ")
	arg = strings.TrimSpace(arg)

	switch name {
	case "":
	case "help":
		sh.print(usage)
	case "history":
		for i, n := 0, sh.sess.HistoryLength(); i < n; i++ {
			entry, _ := sh.sess.History(i)
			sh.printf("%4d  %s\n", i+1, entry)
		}
	case "clear":
		sh.sess.ClearHistory()
	case "size":
		rows, cols, err := sh.sess.WindowSize()
		if err != nil {
			sh.printf("size: %v\n", err)
			return
		}
		sh.printf("%d rows, %d cols\n", rows, cols)
	case "tty":
		sh.printf("interactive: %t\n", sh.sess.Interactive())
	case "prompt":
		sh.sess.SetPrompt(arg)
	case "capacity":
		n, err := strconv.Atoi(arg)
		if err != nil {
			sh.printf("capacity: %v\n", err)
			return
		}
		sh.sess.SetHistoryCapacity(n)
	case "pause":
		secs, err := strconv.ParseFloat(arg, 64)
		if err != nil || secs <= 0 {
			sh.print("pause: expected a positive number of seconds\n")
			return
		}
		sh.pause(time.Duration(secs * float64(time.Second)))
	case "stats":
		snap := sh.metrics.Snapshot()
		sh.printf("lines %d (this session %d), eof %d, signals %d, completions %d, history %d\n",
			snap.LinesRead, sh.lines, snap.EOFs, snap.Signals, snap.Completions, sh.sess.HistoryLength())
	case "exit", "quit":
		sh.done = true
	default:
		sh.printf("unknown command %q, try help\n", name)
	}
}

// pause holds the session for d, reporting once if input arrives
func (sh *shell) pause(d time.Duration) {
	sh.sess.Pause()
	defer sh.sess.Resume()

	sh.printf("paused for %s\n", d)

	deadline := time.Now().Add(d)
	ticker := time.NewTicker(100 * time.Millisecond)
	defer ticker.Stop()

	for now := range ticker.C {
		if sh.sess.InputAvailable() {
			sh.print("input waiting\n")
			return
		}
		if now.After(deadline) {
			return
		}
	}
}

func (sh *shell) print(text string) {
	_ = sh.sess.Write(text)
}

func (sh *shell) printf(format string, args ...any) {
	sh.print(fmt.Sprintf(format, args...))
}
