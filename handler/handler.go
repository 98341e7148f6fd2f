package handler

import (
	"context"
	"encoding/base64"
	"encoding/xml"
	"errors"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/aws/aws-lambda-go/events"
	"github.com/google/uuid"

	"health-assistant/internal/domain"
)

// MessageRouter answers one inbound message. It never returns an empty reply.
type MessageRouter interface {
	Route(ctx context.Context, msg domain.InboundMessage) string
}

// Handler is the API Gateway entry point for the Twilio WhatsApp webhook.
type Handler struct {
	router MessageRouter
	logger *slog.Logger
}

func NewHandler(router MessageRouter, logger *slog.Logger) (*Handler, error) {
	if router == nil {
		return nil, errors.New("handler: router must not be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Handler{router: router, logger: logger}, nil
}

type twimlResponse struct {
	XMLName xml.Name      `xml:"Response"`
	Message *twimlMessage `xml:"Message,omitempty"`
}

type twimlMessage struct {
	Body string `xml:"Body"`
}

// Handle parses the form-encoded webhook and replies with TwiML. Only the
// first attachment is considered.
func (h *Handler) Handle(ctx context.Context, event events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
	correlationID := headerValue(event.Headers, "X-Correlation-Id")
	if correlationID == "" {
		correlationID = uuid.NewString()
	}
	logger := h.logger.With("correlation_id", correlationID)

	msg, err := parseInbound(event)
	if err != nil {
		logger.Warn("rejecting webhook", "err", err)
		return textResponse(http.StatusBadRequest, correlationID, "bad request"), nil
	}

	reply := h.router.Route(ctx, msg)

	body, err := xml.Marshal(twimlResponse{Message: &twimlMessage{Body: reply}})
	if err != nil {
		logger.Error("encode twiml", "err", err)
		return textResponse(http.StatusInternalServerError, correlationID, "internal error"), nil
	}
	return events.APIGatewayProxyResponse{
		StatusCode: http.StatusOK,
		Headers: map[string]string{
			"Content-Type":     "application/xml",
			"X-Correlation-Id": correlationID,
		},
		Body: xml.Header + string(body),
	}, nil
}

func parseInbound(event events.APIGatewayProxyRequest) (domain.InboundMessage, error) {
	raw := event.Body
	if event.IsBase64Encoded {
		decoded, err := base64.StdEncoding.DecodeString(raw)
		if err != nil {
			return domain.InboundMessage{}, errors.New("body is not valid base64")
		}
		raw = string(decoded)
	}
	form, err := url.ParseQuery(raw)
	if err != nil {
		return domain.InboundMessage{}, errors.New("body is not form encoded")
	}

	from := strings.TrimSpace(form.Get("From"))
	if from == "" {
		return domain.InboundMessage{}, errors.New("missing From")
	}
	msg := domain.InboundMessage{
		SenderID: from,
		Body:     form.Get("Body"),
	}
	if n, _ := strconv.Atoi(form.Get("NumMedia")); n > 0 {
		msg.MediaURL = strings.TrimSpace(form.Get("MediaUrl0"))
		msg.MediaContentType = strings.TrimSpace(form.Get("MediaContentType0"))
	}
	return msg, nil
}

func textResponse(status int, correlationID, body string) events.APIGatewayProxyResponse {
	return events.APIGatewayProxyResponse{
		StatusCode: status,
		Headers: map[string]string{
			"Content-Type":     "text/plain",
			"X-Correlation-Id": correlationID,
		},
		Body: body,
	}
}

func headerValue(headers map[string]string, name string) string {
	for k, v := range headers {
		if strings.EqualFold(k, name) {
			return strings.TrimSpace(v)
		}
	}
	return ""
}
