package enginetest

import (
	"io"
	"testing"

	"github.com/GriffinCanCode/termline/internal/engine"
	"github.com/stretchr/testify/assert"
)

func TestReplay(t *testing.T) {
	var ran bool
	s := New(Line("a"), Interrupt(), Step{Line: "b", Before: func() { ran = true }})

	line, err := s.ReadLine("1> ")
	assert.NoError(t, err)
	assert.Equal(t, "a", line)

	_, err = s.ReadLine("2> ")
	assert.ErrorIs(t, err, engine.ErrInterrupt)

	line, err = s.ReadLine("3> ")
	assert.NoError(t, err)
	assert.Equal(t, "b", line)
	assert.True(t, ran)

	_, err = s.ReadLine("4> ")
	assert.ErrorIs(t, err, io.EOF)

	assert.Equal(t, 4, s.Reads())
	assert.Equal(t, []string{"1> ", "2> ", "3> ", "4> "}, s.Prompts())
}

func TestPushAndHistory(t *testing.T) {
	s := New()
	s.Push(EOF())

	_, err := s.ReadLine("> ")
	assert.ErrorIs(t, err, io.EOF)

	assert.NoError(t, s.AddHistory("x"))
	assert.NoError(t, s.ResetHistory([]string{"y", "z"}))
	assert.Equal(t, []string{"y", "z"}, s.History())

	s.SetHistoryLimit(5)
	assert.Equal(t, 5, s.Limit())

	assert.Nil(t, s.Complete("x", 1))
	assert.NoError(t, s.Close())
	assert.Equal(t, 1, s.Closes())
}
