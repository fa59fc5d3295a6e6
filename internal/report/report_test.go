package report

import (
	"bytes"
	"encoding/json"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"

	"github.com/zgpcy/calltimer/internal/logger"
)

var base = time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

func invocation(name string, elapsed time.Duration) Invocation {
	return Invocation{Name: name, Start: base, End: base.Add(elapsed)}
}

func TestInvocation_Elapsed(t *testing.T) {
	assert.Equal(t, 1500*time.Millisecond, invocation("x", 1500*time.Millisecond).Elapsed())
	assert.Equal(t, time.Duration(0), invocation("x", 0).Elapsed())
	// A clock that goes backwards never yields a negative duration
	assert.Equal(t, time.Duration(0), invocation("x", -time.Second).Elapsed())
}

func TestFormat(t *testing.T) {
	tests := []struct {
		name    string
		elapsed time.Duration
		want    string
	}{
		{"process_data", 2*time.Second + 400*time.Microsecond, "Finished 'process_data' in 2.0004 seconds"},
		{"add_numbers", time.Second + 1234*time.Microsecond, "Finished 'add_numbers' in 1.0012 seconds"},
		{"fast", 30 * time.Microsecond, "Finished 'fast' in 0.0000 seconds"},
		{"rounding", 56 * time.Microsecond, "Finished 'rounding' in 0.0001 seconds"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Format(invocation(tt.name, tt.elapsed)))
		})
	}
}

func TestConsole_WritesOneLinePerReport(t *testing.T) {
	var buf bytes.Buffer
	c := NewConsole(&buf)

	c.Report(invocation("a", time.Second))
	c.Report(invocation("b", 2*time.Second))

	assert.Equal(t,
		"Finished 'a' in 1.0000 seconds\nFinished 'b' in 2.0000 seconds\n",
		buf.String())
}

func TestConsole_ConcurrentWritesDoNotInterleave(t *testing.T) {
	var buf bytes.Buffer
	c := NewConsole(&buf)

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			c.Report(invocation("parallel", time.Millisecond))
		}()
	}
	wg.Wait()

	out := strings.Split(strings.TrimSuffix(buf.String(), "\n"), "\n")
	require.Len(t, out, 20)
	for _, line := range out {
		assert.Equal(t, "Finished 'parallel' in 0.0010 seconds", line)
	}
}

func TestMulti(t *testing.T) {
	var got []string
	collect := func(tag string) Reporter {
		return ReporterFunc(func(inv Invocation) { got = append(got, tag+":"+inv.Name) })
	}

	m := Multi(collect("first"), nil, collect("second"))
	m.Report(invocation("f", 0))

	assert.Equal(t, []string{"first:f", "second:f"}, got)
}

func TestMulti_SingleReporterUnwrapped(t *testing.T) {
	c := NewConsole(&bytes.Buffer{})
	assert.Same(t, c, Multi(nil, c))
}

func TestLog_EmitsStructuredRecord(t *testing.T) {
	var buf bytes.Buffer
	l := NewLog(logger.NewWithWriter("info", &buf))

	l.Report(invocation("add_numbers", 1500*time.Millisecond))

	var record map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &record))
	assert.Equal(t, "Function call finished", record["msg"])
	assert.Equal(t, "add_numbers", record["function"])
	assert.InDelta(t, 1.5, record["elapsed_seconds"], 1e-9)
}

func TestLog_SuppressedBelowLevel(t *testing.T) {
	var buf bytes.Buffer
	l := NewLog(logger.NewWithWriter("error", &buf))

	l.Report(invocation("quiet", time.Second))

	assert.Empty(t, buf.String())
}

func TestMetrics_CountsPerFunction(t *testing.T) {
	m := NewMetrics()
	registry := prometheus.NewRegistry()
	require.NoError(t, registry.Register(m))

	m.Report(invocation("process_data", 2*time.Second))
	m.Report(invocation("add_numbers", time.Second))
	m.Report(invocation("add_numbers", 3*time.Second))

	assert.Equal(t, 1.0, testutil.ToFloat64(m.callsTotal.WithLabelValues("process_data")))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.callsTotal.WithLabelValues("add_numbers")))
	assert.Equal(t, 3.0, testutil.ToFloat64(m.lastCallDuration.WithLabelValues("add_numbers")))
	assert.Equal(t, base.Add(3*time.Second), m.lastCall("add_numbers"))
	assert.True(t, m.lastCall("unknown").IsZero())

	// calls, duration histogram, last duration, last timestamp, build info
	count, err := testutil.GatherAndCount(registry)
	require.NoError(t, err)
	assert.Equal(t, 9, count)
}

func TestMetrics_HistogramObservesSeconds(t *testing.T) {
	m := NewMetrics()
	registry := prometheus.NewRegistry()
	require.NoError(t, registry.Register(m))

	m.Report(invocation("add_numbers", 1500*time.Millisecond))

	families, err := registry.Gather()
	require.NoError(t, err)

	var found bool
	for _, mf := range families {
		if mf.GetName() != "calltimer_call_duration_seconds" {
			continue
		}
		found = true
		require.Len(t, mf.GetMetric(), 1)
		h := mf.GetMetric()[0].GetHistogram()
		assert.Equal(t, uint64(1), h.GetSampleCount())
		assert.InDelta(t, 1.5, h.GetSampleSum(), 1e-9)
	}
	assert.True(t, found, "histogram not gathered")
}

func TestTrace_RecordsBackdatedSpan(t *testing.T) {
	recorder := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder))
	tr := NewTrace(tp.Tracer("test"))

	inv := invocation("process_data", 2*time.Second)
	tr.Report(inv)

	spans := recorder.Ended()
	require.Len(t, spans, 1)
	span := spans[0]
	assert.Equal(t, "process_data", span.Name())
	assert.True(t, span.StartTime().Equal(inv.Start))
	assert.True(t, span.EndTime().Equal(inv.End))

	attrs := map[string]any{}
	for _, kv := range span.Attributes() {
		attrs[string(kv.Key)] = kv.Value.AsInterface()
	}
	assert.Equal(t, "process_data", attrs["code.function"])
	assert.Equal(t, 2.0, attrs["calltimer.elapsed_seconds"])
}
