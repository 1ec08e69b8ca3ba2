package tracing

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"beaconhq/beacon/pkg/config"
)

func TestNew(t *testing.T) {
	tests := []struct {
		name    string
		config  *config.TracingConfig
		wantErr bool
	}{
		{
			name:    "nil config",
			config:  nil,
			wantErr: true,
		},
		{
			name: "disabled tracing",
			config: &config.TracingConfig{
				Enabled:     false,
				ServiceName: "test-service",
			},
			wantErr: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tracer, err := New(tt.config)
			if (err != nil) != tt.wantErr {
				t.Fatalf("New() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil {
				return
			}
			if tracer.Enabled() != tt.config.Enabled {
				t.Errorf("Enabled() = %v, want %v", tracer.Enabled(), tt.config.Enabled)
			}
			if err := tracer.Shutdown(context.Background()); err != nil {
				t.Errorf("Shutdown() = %v", err)
			}
		})
	}
}

// A disabled tracer still hands out working sessions; they just record
// nothing.
func TestDisabledTracerSessions(t *testing.T) {
	tracer, err := New(&config.TracingConfig{Enabled: false, ServiceName: "test"})
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	r := httptest.NewRequest(http.MethodGet, "/health", nil)
	_, session := tracer.StartRequest(context.Background(), r)
	session.Succeed(200)
	session.Fail(errors.New("late")) // no-op, already finished
}

func TestNewSampler(t *testing.T) {
	tests := []struct {
		name    string
		sampler string
		ratio   float64
		wantErr bool
	}{
		{"always", "always", 0, false},
		{"never", "never", 0, false},
		{"ratio", "ratio", 0.5, false},
		{"ratio out of range", "ratio", 1.5, true},
		{"ratio zero", "ratio", 0, true},
		{"unknown", "coin-flip", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := newSampler(tt.sampler, tt.ratio)
			if (err != nil) != tt.wantErr {
				t.Errorf("newSampler(%q, %v) error = %v, wantErr %v", tt.sampler, tt.ratio, err, tt.wantErr)
			}
		})
	}
}
