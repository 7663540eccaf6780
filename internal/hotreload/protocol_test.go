package hotreload

import (
	"strings"
	"testing"
)

func TestHotReloadMessageEncodesType(t *testing.T) {
	msg := HotReloadMessage([]string{"app.oui"}, []string{"App"}, 50)
	encoded, err := msg.Encode()
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	if !strings.Contains(string(encoded), `"type":"hot_reload"`) {
		t.Fatalf("expected type discriminator, got %s", encoded)
	}
	if !strings.Contains(string(encoded), "app.oui") {
		t.Fatalf("expected changed file in payload, got %s", encoded)
	}
}

func TestWelcomeMessageCarriesProtocolVersion(t *testing.T) {
	msg := WelcomeMessage("srv-1")
	if msg.ProtocolVersion != ProtocolVersion {
		t.Fatalf("expected protocol version %d, got %d", ProtocolVersion, msg.ProtocolVersion)
	}
}

func TestDecodeClientMessageReady(t *testing.T) {
	raw := []byte(`{"type": "ready", "client_id": "test", "capabilities": ["hot_reload"]}`)
	msg, err := DecodeClientMessage(raw)
	if err != nil {
		t.Fatalf("DecodeClientMessage: %v", err)
	}
	if msg.Type != "ready" || msg.ClientID != "test" || len(msg.Capabilities) != 1 {
		t.Fatalf("unexpected decode: %+v", msg)
	}
}

func TestDecodeClientMessageInvalidJSON(t *testing.T) {
	if _, err := DecodeClientMessage([]byte("not json")); err == nil {
		t.Fatalf("expected error decoding invalid JSON")
	}
}
