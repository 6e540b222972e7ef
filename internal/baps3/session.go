// Package baps3 drives non-interactive BAPS3 sessions.
//
// A session greets the server (OHAI), checks that it advertises the
// features the caller needs (FEATURES), then sends commands one at a time,
// each waiting for its matching OK, WHAT or FAIL. Closing the session always
// asks the connection to quit.
package baps3

import (
	"context"
	"log/slog"
	"strings"
	"sync"

	"github.com/UniversityRadioYork/baps3-cli/internal/client"
	"github.com/UniversityRadioYork/baps3-cli/internal/logging"
	"github.com/UniversityRadioYork/baps3-cli/internal/proto"
)

// Protocol words used by sessions.
const (
	WordOhai     = "OHAI"
	WordFeatures = "FEATURES"
	WordOK       = "OK"
	WordWhat     = "WHAT"
	WordFail     = "FAIL"
)

// Feature names advertised in FEATURES.
const (
	FeatureFileLoad = "FileLoad"
	FeaturePlayStop = "PlayStop"
	FeatureSeek     = "Seek"
)

// Conn is the part of a client connection a Session needs.
// *client.Client implements it.
type Conn interface {
	Send(client.Request) bool
	Responses() <-chan client.Response
	Release()
	Wait() error
}

// Session is a connection that has completed the handshake and feature
// check, and can acknowledge commands.
type Session struct {
	conn  Conn
	trail logging.Trail

	ident    string
	features []string

	mu        sync.Mutex
	closed    bool
	closeOnce sync.Once
	closeErr  error
}

// Open connects to addr and starts a session requiring the given features.
func Open(ctx context.Context, trail logging.Trail, addr string, required []string, opts ...client.Option) (*Session, error) {
	c, err := client.Dial(ctx, addr, opts...)
	if err != nil {
		return nil, &IOError{Op: "connect", Err: err}
	}
	return NewSession(trail, c, required)
}

// NewSession performs the handshake and feature check over conn. If either
// fails, the connection is closed before the error is returned.
func NewSession(trail logging.Trail, conn Conn, required []string) (*Session, error) {
	if trail == nil {
		trail = logging.Quiet()
	}
	s := &Session{conn: conn, trail: trail}

	if err := s.handshake(); err != nil {
		_ = s.Close()
		return nil, err
	}
	if err := s.checkFeatures(required); err != nil {
		_ = s.Close()
		return nil, err
	}

	return s, nil
}

// OneShot opens a session on addr, sends cmd, and closes the session,
// whatever the outcome.
func OneShot(ctx context.Context, trail logging.Trail, addr string, required []string, cmd proto.Message, opts ...client.Option) error {
	s, err := Open(ctx, trail, addr, required, opts...)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := s.Close(); cerr != nil {
			slog.Debug("close after one-shot", "error", cerr)
		}
	}()

	return s.Send(cmd)
}

// Ident returns the server's identity from its OHAI greeting.
func (s *Session) Ident() string {
	return s.ident
}

// Features returns the features the server advertised.
func (s *Session) Features() []string {
	return append([]string(nil), s.features...)
}

// Send sends cmd and waits for the server's acknowledgement of it.
// Messages that do not acknowledge cmd, such as TIME notifications or
// answers to other commands, are skipped.
func (s *Session) Send(cmd proto.Message) error {
	s.mu.Lock()
	closed := s.closed
	s.mu.Unlock()
	if closed {
		return ErrClosed
	}

	s.trail.Logf("Sending command: %s", cmd)
	if !s.conn.Send(client.SendRequest(cmd)) {
		return ErrHungUp
	}

	for {
		m, err := s.recv("command " + cmd.Word())
		if err != nil {
			return err
		}

		switch m.Word() {
		case WordOK:
			if m.HasPrefix(0, cmd) {
				s.trail.Logf("success!")
				return nil
			}
		case WordWhat:
			if m.HasPrefix(1, cmd) {
				advice, _ := m.Arg(0)
				return &CommandInvalidError{Advice: advice, Command: cmd}
			}
		case WordFail:
			if m.HasPrefix(1, cmd) {
				advice, _ := m.Arg(0)
				return &CommandFailedError{Advice: advice, Command: cmd}
			}
		}

		slog.Debug("skipping unrelated message", "message", m.String(), "awaiting", cmd.String())
	}
}

// Close asks the connection to quit and waits for it to shut down.
// It is safe to call more than once; only the first call sends the quit.
func (s *Session) Close() error {
	s.closeOnce.Do(func() {
		s.mu.Lock()
		s.closed = true
		s.mu.Unlock()

		s.trail.Logf("Closing client connection")
		s.conn.Send(client.QuitRequest())
		s.conn.Release()
		s.closeErr = s.conn.Wait()
	})
	return s.closeErr
}

func (s *Session) handshake() error {
	m, err := s.recv("handshake")
	if err != nil {
		return err
	}

	if m.Word() != WordOhai || m.NumArgs() != 1 {
		slog.Debug("bad greeting", "message", m.String())
		return ErrNotBaps3Server
	}

	s.ident, _ = m.Arg(0)
	s.trail.Logf("Server ident: %s", s.ident)
	return nil
}

func (s *Session) checkFeatures(required []string) error {
	m, err := s.recv("feature check")
	if err != nil {
		return err
	}

	if m.Word() != WordFeatures {
		return &UnexpectedResponseError{
			Code:        m.Word(),
			Args:        m.Args(),
			Expectation: WordFeatures,
		}
	}

	s.features = m.Args()
	s.trail.Logf("Server features: %s", strings.Join(s.features, " "))

	if missing := missingFeatures(required, s.features); len(missing) > 0 {
		return &MissingFeaturesError{Wanted: missing, Have: s.Features()}
	}
	return nil
}

// recv waits for the next message, turning the end of the stream into an
// error.
func (s *Session) recv(stage string) (proto.Message, error) {
	r, ok := <-s.conn.Responses()
	if !ok {
		return proto.Message{}, ErrHungUp
	}

	switch r.Kind {
	case client.ResponseGone:
		return proto.Message{}, ErrHungUp
	case client.ResponseError:
		return proto.Message{}, &IOError{Op: stage, Err: r.Err}
	default:
		return r.Message, nil
	}
}

// missingFeatures returns the members of required absent from have, in
// the order they were required and without duplicates.
func missingFeatures(required, have []string) []string {
	haveSet := make(map[string]struct{}, len(have))
	for _, f := range have {
		haveSet[f] = struct{}{}
	}

	var missing []string
	seen := make(map[string]struct{}, len(required))
	for _, f := range required {
		if _, ok := haveSet[f]; ok {
			continue
		}
		if _, dup := seen[f]; dup {
			continue
		}
		seen[f] = struct{}{}
		missing = append(missing, f)
	}
	return missing
}
