package log

import (
	"bytes"
	"errors"
	"log/slog"
	"strings"
	"testing"
)

func TestErrAttr(t *testing.T) {
	attr := ErrAttr(errors.New("boom"))
	if attr.Key != FieldError || attr.Value.String() != "boom" {
		t.Fatalf("attr = %v", attr)
	}
	if got := ErrAttr(nil); !got.Equal(slog.Attr{}) {
		t.Fatalf("nil error attr = %v, want empty", got)
	}
}

func TestWithComponent(t *testing.T) {
	var buf bytes.Buffer
	logger := New(Config{Handler: slog.NewTextHandler(&buf, nil)})
	logger.WithComponent(ComponentLedger).Info("hello", ErrAttr(errors.New("boom")))

	out := buf.String()
	if !strings.Contains(out, FieldComponent+"="+ComponentLedger) {
		t.Errorf("missing component attribute: %s", out)
	}
	if !strings.Contains(out, FieldError+"=boom") {
		t.Errorf("missing error attribute: %s", out)
	}
}
