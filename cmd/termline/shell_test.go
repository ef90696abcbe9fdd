package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/GriffinCanCode/termline/internal/engine/enginetest"
	"github.com/GriffinCanCode/termline/internal/infrastructure/monitoring"
	"github.com/GriffinCanCode/termline/internal/session"
	"github.com/GriffinCanCode/termline/internal/signals"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type nopNotifier struct{}

func (nopNotifier) Notify(chan<- os.Signal, ...os.Signal) {}
func (nopNotifier) Stop(chan<- os.Signal)                 {}
func (nopNotifier) Reset(...os.Signal)                    {}
func (nopNotifier) Raise(os.Signal) error                 { return nil }

func TestComplete(t *testing.T) {
	tests := []struct {
		name string
		line string
		pos  int
		want []string
	}{
		{"prefix", "h", 1, []string{"help", "history"}},
		{"exact", "exit", 4, []string{"exit"}},
		{"empty", "", 0, commands},
		{"argument", "prompt x", 8, nil},
		{"no match", "zz", 2, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, complete(tt.line, tt.pos))
		})
	}
}

func TestShellLoop(t *testing.T) {
	out, err := os.Create(filepath.Join(t.TempDir(), "out"))
	require.NoError(t, err)
	defer out.Close()

	eng := enginetest.New(
		enginetest.Line("capacity 2"),
		enginetest.Line("prompt db>"),
		enginetest.Line("bogus"),
		enginetest.Interrupt(),
		enginetest.Line("history"),
		enginetest.Line("exit"),
		enginetest.Line("never read"),
	)
	metrics := monitoring.NewMetrics(prometheus.NewRegistry())
	sess := session.New(eng, session.Options{
		Signals:  signals.Set{Interrupt: os.Interrupt},
		Notifier: nopNotifier{},
		Metrics:  metrics,
	})
	sess.SetOutput(out)

	sh := newShell(sess, metrics)
	sh.register()
	require.Equal(t, session.StatusReady, sess.Initialize())

	sh.loop()
	assert.Equal(t, "db>", sess.Prompt())
	sess.Close()

	assert.Equal(t, 6, eng.Reads())
	assert.Equal(t, []string{"> ", "> ", "db>", "db>", "db>", "db>"}, eng.Prompts())
	assert.Equal(t, 2, sess.HistoryLength())
	assert.Equal(t, 5, sh.lines)

	data, err := os.ReadFile(out.Name())
	require.NoError(t, err)
	text := string(data)
	assert.Contains(t, text, `unknown command "bogus"`)
	assert.Contains(t, text, "^C")
	assert.Contains(t, text, "   1  bogus\n   2  history\n")
	assert.Contains(t, text, "bye\n")
}

func TestShellStopsAtEOF(t *testing.T) {
	out, err := os.Create(filepath.Join(t.TempDir(), "out"))
	require.NoError(t, err)
	defer out.Close()

	eng := enginetest.New(enginetest.Line("help"))
	sess := session.New(eng, session.Options{
		Signals:  signals.Set{Interrupt: os.Interrupt},
		Notifier: nopNotifier{},
	})
	sess.SetOutput(out)

	sh := newShell(sess, nil)
	sh.register()
	sess.Initialize()
	defer sess.Cleanup()
	sh.loop()

	assert.True(t, sess.IsClosed())

	data, err := os.ReadFile(out.Name())
	require.NoError(t, err)
	assert.Contains(t, string(data), "commands:")
	assert.Contains(t, string(data), "bye\n")
}
