package proto

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMessageIsImmutable(t *testing.T) {
	args := []string{"a", "b"}
	m := New("cmd", args...)

	args[0] = "changed"
	assert.Equal(t, []string{"a", "b"}, m.Args())

	got := m.Args()
	got[1] = "changed"
	assert.Equal(t, []string{"a", "b"}, m.Args())
}

func TestMessageAccessors(t *testing.T) {
	m := New("FEATURES", "A", "B", "A")

	assert.Equal(t, "FEATURES", m.Word())
	assert.Equal(t, 3, m.NumArgs())
	assert.Equal(t, []string{"FEATURES", "A", "B", "A"}, m.Words())

	arg, ok := m.Arg(1)
	assert.True(t, ok)
	assert.Equal(t, "B", arg)

	_, ok = m.Arg(3)
	assert.False(t, ok)
	_, ok = m.Arg(-1)
	assert.False(t, ok)
}

func TestMessageHasPrefix(t *testing.T) {
	cmd := New("load", "/a b.mp3")

	assert.True(t, New("OK", "load", "/a b.mp3").HasPrefix(0, cmd))
	assert.True(t, New("WHAT", "bad file", "load", "/a b.mp3").HasPrefix(1, cmd))
	assert.False(t, New("OK", "load").HasPrefix(0, cmd))
	assert.False(t, New("OK", "load", "/a b.mp3", "extra").HasPrefix(0, cmd))
	assert.False(t, New("OK", "play").HasPrefix(0, New("play", "x")))
	assert.False(t, New("WHAT").HasPrefix(1, cmd))
}

func TestMessageString(t *testing.T) {
	assert.Equal(t, "seek 0", New("seek", "0").String())
	assert.Equal(t, "load 'a b'", New("load", "a b").String())
}

func TestFromWords(t *testing.T) {
	_, ok := FromWords(nil)
	assert.False(t, ok)

	m, ok := FromWords([]string{"OHAI", "playd"})
	assert.True(t, ok)
	assert.True(t, m.Equal(New("OHAI", "playd")))

	m, ok = FromWords([]string{"load", ""})
	assert.True(t, ok, "empty arguments are allowed")
	assert.True(t, m.Equal(New("load", "")))
}

func TestFromWordsRejectsEmptyWord(t *testing.T) {
	var u Unpacker
	lines := u.FeedString("'' a\n\"\"\n")
	require.Equal(t, [][]string{{"", "a"}, {""}}, lines)

	for _, words := range lines {
		_, ok := FromWords(words)
		assert.False(t, ok, "%q", words)
	}

	assert.Equal(t, []Message{New("TIME", "5")}, Unpack("'' a\nTIME 5\n"))
}
