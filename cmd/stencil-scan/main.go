// stencil-scan runs schema detection for endpoint names from the command
// line and prints one JSON result per line. It talks to the live serving
// and registry APIs; use it to smoke-test workspace connectivity without
// standing up the HTTP server
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"

	"github.com/joho/godotenv"

	"stencil/internal/adapters/registry"
	"stencil/internal/adapters/serving"
	"stencil/internal/platform/config"
	"stencil/internal/platform/logger"
	detectdom "stencil/internal/services/detect/domain"
	detectsvc "stencil/internal/services/detect/service"
	eventsdom "stencil/internal/services/events/domain"
)

// logSink satisfies the detect service's event port without a database:
// scan runs log their events instead of persisting them
type logSink struct{}

func (logSink) Append(_ context.Context, ev eventsdom.DetectionEvent) error {
	logger.Named("scan").Info().
		Str("endpoint", ev.EndpointName).
		Str("status", ev.Status).
		Str("correlation_id", ev.CorrelationID).
		Int64("latency_ms", ev.LatencyMS).
		Msg("detection event")
	return nil
}

func main() {
	_ = godotenv.Load()

	var (
		session = flag.String("session", "scan", "session id for caching and guard state")
		timeout = flag.Duration("timeout", detectsvc.DefaultDeadline, "registry lookup budget per endpoint")
		pretty  = flag.Bool("pretty", false, "indent JSON output")
	)
	flag.Parse()
	if flag.NArg() == 0 {
		fmt.Fprintln(os.Stderr, "usage: stencil-scan [-session id] [-timeout 5s] [-pretty] endpoint [endpoint...]")
		os.Exit(2)
	}

	logger.Init(logger.FromEnv())
	l := logger.Get()

	root := config.New()
	servingCfg := root.Prefix("SERVICE_SERVING_")
	registryCfg := root.Prefix("SERVICE_REGISTRY_")

	cp := serving.NewClient(serving.Options{
		BaseURL: servingCfg.MustString("URL"),
		Token:   servingCfg.MayString("TOKEN", ""),
		Timeout: servingCfg.MayDuration("TIMEOUT", 0),
	})
	reg := registry.NewClient(registry.Options{
		BaseURL: registryCfg.MustString("URL"),
		Token:   registryCfg.MayString("TOKEN", ""),
		Timeout: registryCfg.MayDuration("TIMEOUT", 0),
	})

	svc := detectsvc.New(detectdom.Ports{
		Metadata: serving.NewMetadata(cp),
		Source:   reg,
		Events:   logSink{},
	}, detectsvc.Config{RegistryDeadline: *timeout})

	enc := json.NewEncoder(os.Stdout)
	if *pretty {
		enc.SetIndent("", "  ")
	}

	exit := 0
	for _, name := range flag.Args() {
		res := svc.Detect(context.Background(), detectdom.Request{
			SessionID:    *session,
			ActorID:      "stencil-scan",
			EndpointName: name,
		})
		if res.Status != detectdom.StatusSuccess {
			exit = 1
		}
		if err := enc.Encode(res); err != nil {
			l.Error().Err(err).Str("endpoint", name).Msg("encode failed")
			exit = 1
		}
	}
	os.Exit(exit)
}
