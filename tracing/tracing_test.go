package tracing

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
)

func TestSpans(t *testing.T) {
	exporter := tracetest.NewInMemoryExporter()
	require.NoError(t, initWithExporter("taskflow", "0.0.1", exporter))
	t.Cleanup(func() { _ = Shutdown(context.Background()) })

	ctx, parent := StartSpan(context.Background(), "engine.processTask")
	parent.WithAttributes(map[string]string{"task.id": "abc12345"})
	_, child := StartSpan(ctx, "approval.handle")
	child.AddEvent("decided", map[string]string{"status": "Approved by Junior"})
	EndSpan(child, nil)
	EndSpan(parent, errors.New("boom"))

	spans := exporter.GetSpans()
	require.Len(t, spans, 2)

	assert.Equal(t, "approval.handle", spans[0].Name)
	assert.Equal(t, codes.Ok, spans[0].Status.Code)
	assert.Equal(t, spans[1].SpanContext.SpanID(), spans[0].Parent.SpanID())
	assert.Len(t, spans[0].Events, 1)

	assert.Equal(t, "engine.processTask", spans[1].Name)
	assert.Equal(t, codes.Error, spans[1].Status.Code)
	assert.Contains(t, spans[1].Attributes, attribute.String("task.id", "abc12345"))
}

func TestInit_OutputFile(t *testing.T) {
	dir := t.TempDir()
	first := filepath.Join(dir, "first.json")
	second := filepath.Join(dir, "second.json")

	require.NoError(t, Init("taskflow", "0.0.1", first))
	require.NoError(t, Init("taskflow", "0.0.1", second))
	_, err := os.Stat(second)
	assert.True(t, os.IsNotExist(err), "second Init must not create its output file")

	_, span := StartSpan(context.Background(), "engine.createTask")
	EndSpan(span, nil)
	require.NoError(t, Shutdown(context.Background()))
	data, err := os.ReadFile(first)
	require.NoError(t, err)
	assert.Contains(t, string(data), "engine.createTask")

	require.NoError(t, Init("taskflow", "0.0.1", second))
	require.NoError(t, Shutdown(context.Background()))
	_, err = os.Stat(second)
	assert.NoError(t, err)
	assert.NoError(t, Shutdown(context.Background()))
}

func TestNilSpan(t *testing.T) {
	var s *Span
	assert.Nil(t, s.WithAttributes(map[string]string{"a": "b"}))
	s.AddEvent("x", nil)
	EndSpan(s, nil)
}
