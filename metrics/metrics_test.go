package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
)

func TestRecordRequest(t *testing.T) {
	tests := []struct {
		name       string
		tool       string
		duration   float64
		success    bool
		wantStatus string
	}{
		{
			name:       "successful request",
			tool:       "test_tool",
			duration:   0.5,
			success:    true,
			wantStatus: "success",
		},
		{
			name:       "failed request",
			tool:       "test_tool",
			duration:   1.0,
			success:    false,
			wantStatus: "error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			before := getCounterValue(t, RequestsTotal.WithLabelValues(tt.tool, tt.wantStatus))

			RecordRequest(tt.tool, tt.duration, tt.success)

			after := getCounterValue(t, RequestsTotal.WithLabelValues(tt.tool, tt.wantStatus))
			if after != before+1 {
				t.Errorf("counter = %v, want %v", after, before+1)
			}
		})
	}
}

func TestRecordAPICall(t *testing.T) {
	tests := []struct {
		name      string
		endpoint  string
		duration  float64
		success   bool
		errorCode string
	}{
		{
			name:      "successful API call",
			endpoint:  "GetAbilityScore",
			duration:  0.1,
			success:   true,
			errorCode: "",
		},
		{
			name:      "failed API call with error code",
			endpoint:  "ListBackgrounds",
			duration:  0.5,
			success:   false,
			errorCode: "404",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status := "success"
			if !tt.success {
				status = "error"
			}
			before := getCounterValue(t, UpstreamRequestsTotal.WithLabelValues(tt.endpoint, status))

			RecordAPICall(tt.endpoint, tt.duration, tt.success, tt.errorCode)

			if got := getCounterValue(t, UpstreamRequestsTotal.WithLabelValues(tt.endpoint, status)); got != before+1 {
				t.Errorf("request counter = %v, want %v", got, before+1)
			}

			if tt.errorCode != "" {
				if got := getCounterValue(t, UpstreamErrors.WithLabelValues(tt.endpoint, tt.errorCode)); got < 1 {
					t.Error("expected error counter to be incremented")
				}
			}
		})
	}
}

func TestSetActionEntries(t *testing.T) {
	SetActionEntries("get_ability_score_models", 6)

	var m dto.Metric
	if err := ActionEntries.WithLabelValues("get_ability_score_models").Write(&m); err != nil {
		t.Fatalf("failed to write metric: %v", err)
	}
	if m.Gauge.GetValue() != 6 {
		t.Errorf("expected 6 entries, got %v", m.Gauge.GetValue())
	}

	SetActionEntries("get_ability_score_models", 0)
	if err := ActionEntries.WithLabelValues("get_ability_score_models").Write(&m); err != nil {
		t.Fatalf("failed to write metric: %v", err)
	}
	if m.Gauge.GetValue() != 0 {
		t.Errorf("expected 0 entries, got %v", m.Gauge.GetValue())
	}
}

func TestMetricsRegistered(t *testing.T) {
	metrics := []prometheus.Collector{
		RequestsTotal,
		RequestDuration,
		RequestInFlight,
		PanicsRecovered,
		UpstreamRequestsTotal,
		UpstreamLatency,
		UpstreamErrors,
		ActionEntries,
	}

	for i, m := range metrics {
		if m == nil {
			t.Errorf("metric at index %d is nil", i)
		}
	}
}

func TestNamespace(t *testing.T) {
	if Namespace != "dnd5e_mcp" {
		t.Errorf("expected namespace 'dnd5e_mcp', got '%s'", Namespace)
	}
}

// Helper to get counter value
func getCounterValue(t *testing.T, c prometheus.Counter) float64 {
	t.Helper()
	var m dto.Metric
	if err := c.Write(&m); err != nil {
		t.Fatalf("failed to write metric: %v", err)
	}
	return m.Counter.GetValue()
}
