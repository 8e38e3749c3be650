package obs

import (
	"bytes"
	"context"
	"errors"
	"log"
	"strings"
	"testing"
)

func captureLog(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	prev, flags := log.Writer(), log.Flags()
	log.SetOutput(&buf)
	log.SetFlags(0)
	t.Cleanup(func() {
		log.SetOutput(prev)
		log.SetFlags(flags)
	})
	return &buf
}

func TestTimeLogsError(t *testing.T) {
	buf := captureLog(t)
	ctx := WithRequestID(context.Background(), "r-1")

	func() (err error) {
		defer Time(ctx, "pricing.price")(&err)
		return errors.New("boom")
	}()

	line := buf.String()
	if !strings.HasPrefix(line, "req_id=r-1 op=pricing.price dur=") || !strings.Contains(line, "err=boom") {
		t.Fatalf("log line = %q", line)
	}
}

func TestLogf(t *testing.T) {
	buf := captureLog(t)

	Logf(context.Background(), "pricing.economy_slot", "err=%v", "timeout")

	if got := strings.TrimSpace(buf.String()); got != "req_id= op=pricing.economy_slot err=timeout" {
		t.Fatalf("log line = %q", got)
	}
	if RequestID(context.Background()) != "" {
		t.Fatalf("expected empty request id")
	}
}
