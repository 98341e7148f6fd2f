package domain

// InboundMessage is a single message received from the chat channel.
type InboundMessage struct {
	SenderID         string
	Body             string
	MediaURL         string
	MediaContentType string
}

// HasMedia reports whether the message carries an attachment.
func (m InboundMessage) HasMedia() bool {
	return m.MediaURL != ""
}

// Image is an attachment handed to a multimodal model.
type Image struct {
	MIMEType string
	Data     []byte
}

// GenerateRequest is the provider-agnostic input to a generative model call.
// Instruction is sent as the system prompt, Prompt as the user turn.
type GenerateRequest struct {
	Instruction string
	Prompt      string
	Image       *Image
}
