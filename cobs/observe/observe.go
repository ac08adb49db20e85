// Package observe turns dropped COBS frames into log lines and metrics.
package observe

import (
	"errors"

	"github.com/dcreager/cobs-go/cobs"
	"github.com/go-kratos/kratos/v2/log"
	"github.com/prometheus/client_golang/prometheus"
)

// Label values for the reason a frame was dropped.
const (
	ReasonZeroLength     = "zero_length"
	ReasonTruncated      = "truncated"
	ReasonUnexpectedZero = "unexpected_zero"
	ReasonTooLarge       = "too_large"
	ReasonUnknown        = "unknown"
)

// Reason maps a drop error to a short label.
func Reason(err error) string {
	switch {
	case errors.Is(err, cobs.ErrZeroLength):
		return ReasonZeroLength
	case errors.Is(err, cobs.ErrTruncated):
		return ReasonTruncated
	case errors.Is(err, cobs.ErrUnexpectedZero):
		return ReasonUnexpectedZero
	case errors.Is(err, cobs.ErrFrameTooLarge):
		return ReasonTooLarge
	default:
		return ReasonUnknown
	}
}

// Chain calls each non-nil handler in order.
func Chain(handlers ...cobs.DropHandler) cobs.DropHandler {
	return func(frame []byte, err error) {
		for _, h := range handlers {
			if h != nil {
				h(frame, err)
			}
		}
	}
}

// LogDrops logs a warning for every dropped frame.
func LogDrops(logger log.Logger) cobs.DropHandler {
	helper := log.NewHelper(log.With(logger, "module", "cobs.decoder"))

	return func(frame []byte, err error) {
		helper.Warnf("[cobs.Decoder] frame dropped. reason=%s len=%d err=%v", Reason(err), len(frame), err)
	}
}

// DropCounter counts dropped frames by reason.
type DropCounter struct {
	dropped *prometheus.CounterVec
}

// NewDropCounter registers cobs_dropped_frames_total with reg.
func NewDropCounter(reg prometheus.Registerer) (*DropCounter, error) {
	dropped := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "cobs",
		Name:      "dropped_frames_total",
		Help:      "Number of malformed COBS frames dropped by decoders.",
	}, []string{"reason"})

	if err := reg.Register(dropped); err != nil {
		return nil, err
	}

	return &DropCounter{dropped: dropped}, nil
}

// Handler returns a DropHandler that increments the counter for each drop.
func (c *DropCounter) Handler() cobs.DropHandler {
	return func(_ []byte, err error) {
		c.dropped.WithLabelValues(Reason(err)).Inc()
	}
}

// Collector exposes the underlying counter, mostly for tests.
func (c *DropCounter) Collector() *prometheus.CounterVec {
	return c.dropped
}
