// Package twilio handles the Twilio side of the WhatsApp webhook: TwiML
// response rendering and inbound request signature verification.
package twilio

import (
	"encoding/xml"
	"fmt"
	"net/http"
)

// MessagingResponse is the TwiML document Twilio expects back from a
// messaging webhook. Each Message element becomes an outbound reply.
type MessagingResponse struct {
	XMLName  xml.Name `xml:"Response"`
	Messages []string `xml:"Message"`
}

// NewMessagingResponse builds a TwiML response carrying the given replies.
func NewMessagingResponse(messages ...string) *MessagingResponse {
	return &MessagingResponse{Messages: messages}
}

// Render serializes the response to TwiML XML including the XML header.
func (r *MessagingResponse) Render() ([]byte, error) {
	body, err := xml.Marshal(r)
	if err != nil {
		return nil, fmt.Errorf("marshal twiml: %w", err)
	}
	return append([]byte(xml.Header), body...), nil
}

// Write renders the response and writes it with the TwiML content type.
func (r *MessagingResponse) Write(w http.ResponseWriter) error {
	body, err := r.Render()
	if err != nil {
		return err
	}
	w.Header().Set("Content-Type", "text/xml; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(body); err != nil {
		return fmt.Errorf("write twiml response: %w", err)
	}
	return nil
}
