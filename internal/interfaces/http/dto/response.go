package dto

// Envelope is the wire format every endpoint responds with. Clients
// read the three fields unconditionally, so absent values keep their
// placeholder defaults instead of being omitted.
type Envelope struct {
	Title   string `json:"title"`
	Message string `json:"message"`
	Dto     any    `json:"dto"`
}

// Placeholder values for envelope fields that an endpoint does not fill.
const (
	DefaultTitle   = "None"
	DefaultMessage = "No Message..."
)

// NewEnvelope returns an envelope with all fields at their defaults.
func NewEnvelope() Envelope {
	return Envelope{
		Title:   DefaultTitle,
		Message: DefaultMessage,
		Dto:     struct{}{},
	}
}

// NewDtoEnvelope wraps a payload in an otherwise default envelope.
func NewDtoEnvelope(payload any) Envelope {
	env := NewEnvelope()
	if payload != nil {
		env.Dto = payload
	}
	return env
}

// NewMessageEnvelope carries a human readable message and no payload.
func NewMessageEnvelope(message string) Envelope {
	env := NewEnvelope()
	env.Message = message
	return env
}

// NewErrorEnvelope carries a failure title and message. The title is
// the stable machine readable part; the message is for display.
func NewErrorEnvelope(title, message string) Envelope {
	env := NewEnvelope()
	if title != "" {
		env.Title = title
	}
	if message != "" {
		env.Message = message
	}
	return env
}
