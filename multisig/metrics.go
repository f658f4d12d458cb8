// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package multisig

import (
	"github.com/luxfi/metric"
)

type metrics struct {
	sessionsStarted     metric.Counter
	signaturesSubmitted metric.Counter
	signaturesRejected  metric.Counter
	sessionsCompleted   metric.Counter
}

func newMetrics() *metrics {
	m := &metrics{}
	m.sessionsStarted = metric.NewCounter(metric.CounterOpts{
		Name: "multisig_sessions_started",
		Help: "Number of signing sessions started",
	})
	m.signaturesSubmitted = metric.NewCounter(metric.CounterOpts{
		Name: "multisig_signatures_submitted",
		Help: "Number of signatures accepted into sessions",
	})
	m.signaturesRejected = metric.NewCounter(metric.CounterOpts{
		Name: "multisig_signatures_rejected",
		Help: "Number of signature submissions rejected",
	})
	m.sessionsCompleted = metric.NewCounter(metric.CounterOpts{
		Name: "multisig_sessions_completed",
		Help: "Number of sessions that reached their threshold",
	})
	return m
}
