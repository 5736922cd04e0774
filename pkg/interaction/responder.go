package interaction

// Responder delivers the single initial HTTP response of an
// interaction's request cycle. Implementations are owned by the
// transport layer; an interaction holds exactly one.
type Responder interface {
	// Sent reports whether the initial response has been delivered.
	Sent() bool

	// Respond delivers the initial response with the given status
	// code and JSON body. It fails if a response was already sent.
	Respond(status int, body interface{}) error
}
