package telemetry

import (
	"context"
	"strconv"
	"sync/atomic"
	"time"

	"github.com/amplitude/analytics-go/amplitude"
	"github.com/hashicorp/terraform-plugin-log/tflog"
)

// Service sends events to Amplitude. A service without a key never sends
// anything, and one whose key is rejected switches itself off.
type Service struct {
	ctx     context.Context
	client  amplitude.Client
	enabled atomic.Bool
	// Results receives the delivery outcome of each event, dropped when full.
	Results chan amplitude.ExecuteResult
}

func NewService(ctx context.Context, apiKey string) *Service {
	svc := &Service{
		ctx:     ctx,
		Results: make(chan amplitude.ExecuteResult, 10),
	}
	if apiKey == "" {
		tflog.Debug(ctx, "Telemetry disabled, no api key was built in")
		return svc
	}

	config := amplitude.NewConfig(apiKey)
	config.FlushQueueSize = 100
	config.FlushInterval = 3 * time.Second
	config.ExecuteCallback = svc.onResult

	svc.client = amplitude.NewClient(config)
	svc.enabled.Store(true)
	return svc
}

func (s *Service) Enabled() bool {
	return s != nil && s.client != nil && s.enabled.Load()
}

func (s *Service) Send(event Event) {
	if !s.Enabled() {
		return
	}

	tflog.Debug(s.ctx, "Sending telemetry event "+event.Type())
	s.client.Track(event.amplitudeEvent())
}

func (s *Service) onResult(result amplitude.ExecuteResult) {
	switch {
	case result.Code == 401 || result.Code == 403 || result.Message == "Invalid API key":
		tflog.Warn(s.ctx, "Telemetry api key rejected, disabling telemetry")
		s.enabled.Store(false)
	case result.Code < 200 || result.Code >= 300:
		tflog.Debug(s.ctx, "Telemetry event not delivered: "+strconv.Itoa(result.Code)+" "+result.Message)
	}

	select {
	case s.Results <- result:
	default:
	}
}

// Close flushes pending events.
func (s *Service) Close() {
	if s != nil && s.client != nil {
		s.client.Shutdown()
	}
}
