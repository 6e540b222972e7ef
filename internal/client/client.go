// Package client implements a BAPS3 protocol client connection.
//
// A Client owns one socket and runs two goroutines over it: a reader that
// decodes incoming lines into Responses, and a writer that sends outgoing
// Requests. Callers talk to the connection only through those two streams.
//
// Teardown always starts at the writer: a Quit request, a closed request
// channel or a failed write makes the writer close the socket, which in turn
// unblocks the reader.
package client

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"sync"

	"github.com/oklog/ulid/v2"
	"golang.org/x/sync/errgroup"

	"github.com/UniversityRadioYork/baps3-cli/internal/logging"
	"github.com/UniversityRadioYork/baps3-cli/internal/proto"
)

// Client is a connection to a BAPS3 server.
type Client struct {
	id     string
	conn   net.Conn
	logger *slog.Logger

	requests  chan Request
	responses chan Response

	pubMu sync.Mutex
	// +checklocks:pubMu
	finished bool

	released    chan struct{}
	releaseOnce sync.Once
	writerDone  chan struct{}
	closeOnce   sync.Once

	group errgroup.Group
}

// Dial connects to a BAPS3 server at addr (host:port) and starts the
// connection's reader and writer.
func Dial(ctx context.Context, addr string, opt ...Option) (*Client, error) {
	opts := buildOptions(opt)

	dialer := net.Dialer{Timeout: opts.dialTimeout}
	conn, err := dialer.DialContext(ctx, "tcp", addr)
	if err != nil {
		return nil, fmt.Errorf("dial %s: %w", addr, err)
	}

	return newClient(conn, opts), nil
}

// New starts a connection over an already established net.Conn.
func New(conn net.Conn, opt ...Option) *Client {
	return newClient(conn, buildOptions(opt))
}

func newClient(conn net.Conn, opts options) *Client {
	id := ulid.Make().String()
	c := &Client{
		id:         id,
		conn:       conn,
		logger:     opts.logger.With("conn", id),
		requests:   make(chan Request, opts.bufferSize),
		responses:  make(chan Response, opts.bufferSize),
		released:   make(chan struct{}),
		writerDone: make(chan struct{}),
	}

	c.logger.Info("connection established", "addr", c.Addr())

	c.group.Go(c.readLoop)
	c.group.Go(c.writeLoop)

	return c
}

// ID returns the connection's identifier, as used in log entries.
func (c *Client) ID() string {
	return c.id
}

// Addr returns the remote address of the connection.
func (c *Client) Addr() string {
	if addr := c.conn.RemoteAddr(); addr != nil {
		return addr.String()
	}
	return ""
}

// Requests returns the outbound request channel. Closing it has the same
// effect as sending a quit request.
func (c *Client) Requests() chan<- Request {
	return c.requests
}

// Responses returns the inbound response channel. It is closed after the
// terminal Gone or Error response, or after Release.
func (c *Client) Responses() <-chan Response {
	return c.responses
}

// Send queues r for the writer. It returns false if the writer has already
// exited, in which case r is dropped. If the queue is full, Send logs a
// warning and blocks until the writer catches up or exits.
func (c *Client) Send(r Request) bool {
	select {
	case <-c.writerDone:
		return false
	default:
	}

	select {
	case c.requests <- r:
		return true
	default:
	}

	c.logger.Warn("request queue full, waiting for writer",
		"addr", c.Addr(), "queued", len(c.requests), "request", r.String())

	select {
	case c.requests <- r:
		return true
	case <-c.writerDone:
		return false
	}
}

// Quit asks the writer to close the connection.
func (c *Client) Quit() bool {
	return c.Send(QuitRequest())
}

// Release tells the connection that nobody reads Responses any more.
// A reader blocked on publishing gives up and exits.
func (c *Client) Release() {
	c.releaseOnce.Do(func() { close(c.released) })
}

// Wait blocks until both the reader and writer have exited, then releases
// the socket. It returns the first I/O error either of them hit.
func (c *Client) Wait() error {
	err := c.group.Wait()
	c.closeOnce.Do(func() {
		_ = c.conn.Close()
		if err != nil {
			c.logger.Info("connection closed with error", "addr", c.Addr(), "error", err)
		} else {
			c.logger.Info("connection closed", "addr", c.Addr())
		}
	})
	return err
}

// Close quits, releases and waits for the connection.
func (c *Client) Close() error {
	c.Quit()
	c.Release()
	return c.Wait()
}

// publish delivers r to the consumer. It reports false once the stream has
// ended, either because a terminal response was already delivered or
// because the consumer released the connection.
func (c *Client) publish(r Response) bool {
	c.pubMu.Lock()
	defer c.pubMu.Unlock()

	if c.finished {
		return false
	}

	select {
	case c.responses <- r:
	case <-c.released:
		c.finished = true
		close(c.responses)
		return false
	}

	if r.Terminal() {
		c.finished = true
		close(c.responses)
	}
	return true
}

// readLoop decodes lines from the socket until it is closed.
func (c *Client) readLoop() error {
	defer logging.Recover("reader", func(any) { c.publish(GoneResponse()) })

	var u proto.Unpacker
	buf := make([]byte, readBufferSize)

	for {
		n, err := c.conn.Read(buf)
		for _, line := range u.Feed(buf[:n]) {
			m, ok := proto.FromWords(line)
			if !ok {
				c.logger.Debug("skipping line without a command word", "words", line)
				continue
			}
			c.logger.Debug("received", "message", m.String())
			if !c.publish(MessageResponse(m)) {
				return nil
			}
		}

		if err != nil {
			if isClosed(err) {
				if u.Pending() {
					c.logger.Debug("stream ended mid-line", "addr", c.Addr())
				}
				c.publish(GoneResponse())
				return nil
			}
			c.logger.Debug("read error", "addr", c.Addr(), "error", err)
			c.publish(ErrorResponse(err))
			return err
		}
	}
}

// writeLoop sends requests until told to quit, then shuts the socket down.
func (c *Client) writeLoop() error {
	defer logging.Recover("writer", nil)
	defer close(c.writerDone)
	defer c.shutdown()

	for r := range c.requests {
		if r.Kind == RequestQuit {
			c.logger.Debug("quit requested")
			return nil
		}

		if _, err := io.WriteString(c.conn, r.Message.Pack()); err != nil {
			c.logger.Debug("write error", "addr", c.Addr(), "error", err)
			c.publish(ErrorResponse(err))
			return err
		}
		c.logger.Debug("sent", "message", r.Message.String())
	}

	return nil
}

// shutdown closes both directions of the socket so a blocked reader wakes up.
func (c *Client) shutdown() {
	type halfCloser interface {
		CloseRead() error
		CloseWrite() error
	}
	if hc, ok := c.conn.(halfCloser); ok {
		_ = hc.CloseWrite()
		_ = hc.CloseRead()
	}
	_ = c.conn.Close()
}

// isClosed reports whether err means the stream ended rather than failed.
func isClosed(err error) bool {
	return errors.Is(err, io.EOF) ||
		errors.Is(err, net.ErrClosed) ||
		errors.Is(err, io.ErrClosedPipe)
}
