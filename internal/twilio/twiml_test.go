package twilio

import (
	"net/http/httptest"
	"strings"
	"testing"
)

func TestMessagingResponse_Render(t *testing.T) {
	body, err := NewMessagingResponse("Which *product* would you like to review?").Render()
	if err != nil {
		t.Fatalf("Render failed: %v", err)
	}

	out := string(body)
	if !strings.HasPrefix(out, "<?xml") {
		t.Errorf("Expected XML header, got %q", out)
	}
	if !strings.Contains(out, "<Response><Message>") || !strings.Contains(out, "</Message></Response>") {
		t.Errorf("Expected TwiML envelope, got %q", out)
	}
	if !strings.Contains(out, "Which *product* would you like to review?") {
		t.Errorf("Expected message text, got %q", out)
	}
}

func TestMessagingResponse_EscapesMarkup(t *testing.T) {
	body, err := NewMessagingResponse(`Tom & Jerry <3 "quotes"`).Render()
	if err != nil {
		t.Fatalf("Render failed: %v", err)
	}

	out := string(body)
	if !strings.Contains(out, "Tom &amp; Jerry &lt;3") {
		t.Errorf("Expected XML-escaped content, got %q", out)
	}
	if strings.Contains(out, "<3") {
		t.Errorf("Raw markup leaked into TwiML: %q", out)
	}
}

func TestMessagingResponse_Write(t *testing.T) {
	w := httptest.NewRecorder()

	if err := NewMessagingResponse("hello").Write(w); err != nil {
		t.Fatalf("Write failed: %v", err)
	}

	resp := w.Result()
	if resp.StatusCode != 200 {
		t.Errorf("Expected status 200, got %d", resp.StatusCode)
	}
	if ct := resp.Header.Get("Content-Type"); !strings.HasPrefix(ct, "text/xml") {
		t.Errorf("Expected text/xml content type, got %q", ct)
	}
}
