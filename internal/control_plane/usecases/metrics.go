package usecases

import (
	"context"
	"sync"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

const _meterName = "posbridge_server"

type dispatchCounters struct {
	commands     metric.Int64Counter
	bridgeCalls  metric.Int64Counter
	claims       metric.Int64Counter
	expired      metric.Int64Counter
	retentionDel metric.Int64Counter
}

var (
	counters     *dispatchCounters
	countersOnce sync.Once
)

// instruments are created lazily so tests can swap the meter provider first
func getCounters() *dispatchCounters {
	countersOnce.Do(func() {
		meter := otel.Meter(_meterName)
		counters = &dispatchCounters{}
		counters.commands, _ = meter.Int64Counter(
			"posbridge_server.commands.dispatched",
			metric.WithDescription("Commands routed to a device channel"),
		)
		counters.bridgeCalls, _ = meter.Int64Counter(
			"posbridge_server.bridge.calls",
			metric.WithDescription("Synchronous calls made to LAN registers"),
		)
		counters.claims, _ = meter.Int64Counter(
			"posbridge_server.queue.claims",
			metric.WithDescription("Successful claims by agents and terminals"),
		)
		counters.expired, _ = meter.Int64Counter(
			"posbridge_server.sale_commands.expired",
			metric.WithDescription("Sale commands failed by the expiry sweep"),
		)
		counters.retentionDel, _ = meter.Int64Counter(
			"posbridge_server.sale_commands.purged",
			metric.WithDescription("Sale commands deleted by the retention job"),
		)
	})
	return counters
}

func countCommand(ctx context.Context, channel, commandType string) {
	getCounters().commands.Add(ctx, 1, metric.WithAttributes(
		attribute.String("channel", channel),
		attribute.String("command", commandType),
	))
}

func countBridgeCall(ctx context.Context, commandType string, success bool) {
	outcome := "success"
	if !success {
		outcome = "failure"
	}
	getCounters().bridgeCalls.Add(ctx, 1, metric.WithAttributes(
		attribute.String("command", commandType),
		attribute.String("outcome", outcome),
	))
}

func countClaim(ctx context.Context, queue string) {
	getCounters().claims.Add(ctx, 1, metric.WithAttributes(attribute.String("queue", queue)))
}

func countExpired(ctx context.Context, n int) {
	if n > 0 {
		getCounters().expired.Add(ctx, int64(n))
	}
}

func countPurged(ctx context.Context, n int) {
	if n > 0 {
		getCounters().retentionDel.Add(ctx, int64(n))
	}
}
