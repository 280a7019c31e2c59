package tracing

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTracingFile(t *testing.T) {
	fname := filepath.Join(t.TempDir(), "span_test.txt")
	if !assert.Nil(t, Init("fluxpath", "0.0.1", fname)) {
		return
	}
	ctx, span := StartSpan(context.Background(), "carrier", map[string]string{CarrierIDKey: "c1"})
	_, child := StartSpan(ctx, "station", map[string]string{StationKey: "a", GateKey: "main"})
	child.WithInt(PositionKey, 0)
	EndSpan(child, errors.New("boom"))
	EndSpan(span, nil)

	data, err := os.ReadFile(fname)
	assert.Nil(t, err)
	assert.Contains(t, string(data), "fluxpath.station")
}

func TestNilSpan(t *testing.T) {
	var span *Span
	assert.Nil(t, span.WithAttributes(map[string]string{"k": "v"}))
	span.SetStatus(errors.New("ignored"))
	EndSpan(span, nil)
}
