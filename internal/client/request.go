package client

import (
	"fmt"

	"github.com/UniversityRadioYork/baps3-cli/internal/proto"
)

// RequestKind discriminates Request variants.
type RequestKind int

const (
	// RequestSend asks the writer to send a message to the server.
	RequestSend RequestKind = iota
	// RequestQuit asks the writer to close the connection.
	RequestQuit
)

// Request is an instruction to the connection's writer.
type Request struct {
	Kind    RequestKind
	Message proto.Message
}

// SendRequest returns a Request that sends m.
func SendRequest(m proto.Message) Request {
	return Request{Kind: RequestSend, Message: m}
}

// QuitRequest returns a Request that closes the connection.
func QuitRequest() Request {
	return Request{Kind: RequestQuit}
}

func (r Request) String() string {
	if r.Kind == RequestQuit {
		return "quit"
	}
	return "send " + r.Message.String()
}

// ResponseKind discriminates Response variants.
type ResponseKind int

const (
	// ResponseMessage carries a line received from the server.
	ResponseMessage ResponseKind = iota
	// ResponseGone means the server closed the connection cleanly.
	ResponseGone
	// ResponseError means the connection failed with an I/O error.
	ResponseError
)

// Response is an event observed on the connection.
//
// Gone and Error are terminal: a connection delivers at most one of them,
// and nothing after it.
type Response struct {
	Kind    ResponseKind
	Message proto.Message
	Err     error
}

// MessageResponse wraps a received message.
func MessageResponse(m proto.Message) Response {
	return Response{Kind: ResponseMessage, Message: m}
}

// GoneResponse reports a clean close by the server.
func GoneResponse() Response {
	return Response{Kind: ResponseGone}
}

// ErrorResponse reports an I/O failure.
func ErrorResponse(err error) Response {
	return Response{Kind: ResponseError, Err: err}
}

// Terminal reports whether r ends the response stream.
func (r Response) Terminal() bool {
	return r.Kind == ResponseGone || r.Kind == ResponseError
}

func (r Response) String() string {
	switch r.Kind {
	case ResponseGone:
		return "gone"
	case ResponseError:
		return fmt.Sprintf("error: %v", r.Err)
	default:
		return r.Message.String()
	}
}
