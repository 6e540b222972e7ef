// Package proto provides BAPS3 protocol messages and the line codec used to
// put them on the wire.
package proto

import (
	"slices"
	"strings"
)

// Message is one BAPS3 protocol line: a command word and its positional
// arguments. A Message is immutable once constructed.
type Message struct {
	word string
	args []string
}

// New creates a Message from a word and its arguments.
// The argument slice is copied.
func New(word string, args ...string) Message {
	return Message{word: word, args: slices.Clone(args)}
}

// FromWords creates a Message from a decoded line, where the first element
// is the command word. Returns false for an empty line or an empty word,
// such as a line starting with ''.
func FromWords(words []string) (Message, bool) {
	if len(words) == 0 || words[0] == "" {
		return Message{}, false
	}
	return New(words[0], words[1:]...), true
}

// Word returns the command word.
func (m Message) Word() string {
	return m.word
}

// Args returns a copy of the arguments.
func (m Message) Args() []string {
	return slices.Clone(m.args)
}

// NumArgs returns the number of arguments.
func (m Message) NumArgs() int {
	return len(m.args)
}

// Arg returns the i-th argument, or false if there is no such argument.
func (m Message) Arg(i int) (string, bool) {
	if i < 0 || i >= len(m.args) {
		return "", false
	}
	return m.args[i], true
}

// Words returns the word followed by the arguments, which is handy for
// matching a whole message positionally.
func (m Message) Words() []string {
	words := make([]string, 0, len(m.args)+1)
	words = append(words, m.word)
	return append(words, m.args...)
}

// Equal reports whether m and other have the same word and arguments.
func (m Message) Equal(other Message) bool {
	return m.word == other.word && slices.Equal(m.args, other.args)
}

// HasPrefix reports whether the words of m, starting at argument offset,
// are exactly the words of other. It is used to correlate an
// acknowledgement such as "OK load x" with the command "load x".
func (m Message) HasPrefix(offset int, other Message) bool {
	if offset < 0 || offset > len(m.args) {
		return false
	}
	return slices.Equal(m.args[offset:], other.Words())
}

// Pack encodes the message as one wire line, including the trailing newline.
func (m Message) Pack() string {
	return Pack(m.word, m.args...)
}

// String renders the message as it would appear on the wire, without the
// trailing newline.
func (m Message) String() string {
	return strings.TrimSuffix(m.Pack(), "\n")
}
