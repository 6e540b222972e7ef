package proto

import "strings"

// Pack encodes a word and its arguments as one wire line.
//
// Arguments without spaces or quote characters are emitted bare. Anything
// else is wrapped in single quotes, with each literal single quote written
// as '\'' (close quote, escaped quote, reopen quote).
func Pack(word string, args ...string) string {
	var b strings.Builder
	b.WriteString(quote(word))
	for _, arg := range args {
		b.WriteByte(' ')
		b.WriteString(quote(arg))
	}
	b.WriteByte('\n')
	return b.String()
}

func quote(s string) string {
	if s != "" && !strings.ContainsAny(s, " '\"\\\t\r\n") {
		return s
	}
	return "'" + strings.ReplaceAll(s, "'", `'\''`) + "'"
}

// Unpacker incrementally decodes wire data into lines of words.
//
// Data may arrive split at any byte; partial words and quoted sections are
// buffered until the line they belong to is complete. The zero value is
// ready to use. An Unpacker is not safe for concurrent use.
type Unpacker struct {
	word    []byte
	inWord  bool
	words   []string
	quote   byte
	escaped bool
}

// Feed adds data to the decoder and returns every line completed by it.
// Blank lines are dropped.
func (u *Unpacker) Feed(data []byte) [][]string {
	var lines [][]string

	for _, c := range data {
		if u.escaped {
			u.word = append(u.word, c)
			u.inWord = true
			u.escaped = false
			continue
		}

		switch u.quote {
		case '\'':
			if c == '\'' {
				u.quote = 0
			} else {
				u.word = append(u.word, c)
			}
			continue
		case '"':
			switch c {
			case '"':
				u.quote = 0
			case '\\':
				u.escaped = true
			default:
				u.word = append(u.word, c)
			}
			continue
		}

		switch c {
		case '\\':
			u.escaped = true
			u.inWord = true
		case '\'', '"':
			u.quote = c
			u.inWord = true
		case '\n':
			u.endWord()
			if len(u.words) > 0 {
				lines = append(lines, u.words)
			}
			u.words = nil
		case ' ', '\t', '\r':
			u.endWord()
		default:
			u.word = append(u.word, c)
			u.inWord = true
		}
	}

	return lines
}

// FeedString is Feed for string input.
func (u *Unpacker) FeedString(s string) [][]string {
	return u.Feed([]byte(s))
}

// Pending reports whether the decoder holds an incomplete line.
func (u *Unpacker) Pending() bool {
	return u.inWord || len(u.words) > 0 || u.quote != 0 || u.escaped
}

func (u *Unpacker) endWord() {
	if !u.inWord {
		return
	}
	u.words = append(u.words, string(u.word))
	u.word = u.word[:0]
	u.inWord = false
}

// Unpack decodes the messages contained in complete lines of s.
// Any incomplete trailing line is discarded.
func Unpack(s string) []Message {
	var u Unpacker
	var msgs []Message
	for _, line := range u.FeedString(s) {
		if m, ok := FromWords(line); ok {
			msgs = append(msgs, m)
		}
	}
	return msgs
}
