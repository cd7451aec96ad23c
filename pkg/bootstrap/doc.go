// Package bootstrap wires the ambient pieces of a statusgen run.
//
// It consolidates:
//   - Logger setup with optional file rotation
//   - OpenTelemetry tracing initialization
//   - Redis and Kafka clients for change notification
//
// Example usage:
//
//	cfg, err := config.Load(config.DefaultLoadOptions())
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	if err := bootstrap.InitLogger(cfg.Log); err != nil {
//	    log.Fatal(err)
//	}
//
//	shutdown, err := bootstrap.InitTracing(ctx, cfg.Tracing)
//	if err != nil {
//	    log.Warn(err)
//	}
//	defer shutdown(ctx)
package bootstrap
