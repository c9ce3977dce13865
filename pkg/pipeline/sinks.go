package pipeline

import (
	"context"
	"errors"

	"github.com/dd0wney/cluso-leaknet/pkg/config"
	"github.com/dd0wney/cluso-leaknet/pkg/logging"
	"github.com/dd0wney/cluso-leaknet/pkg/sink"
)

// OpenSinks connects to every publication target configured in cfg. The
// caller closes the returned sinks.
func OpenSinks(ctx context.Context, cfg config.PublishConfig, logger logging.Logger) ([]sink.Sink, error) {
	var sinks []sink.Sink

	if cfg.S3 != nil {
		s, err := sink.NewS3(ctx, *cfg.S3, logger)
		if err != nil {
			return nil, err
		}
		sinks = append(sinks, s)
	}

	if cfg.Postgres != nil {
		s, err := sink.NewPostgres(ctx, *cfg.Postgres, logger)
		if err != nil {
			return nil, errors.Join(err, CloseSinks(sinks))
		}
		sinks = append(sinks, s)
	}

	return sinks, nil
}

// CloseSinks closes every sink and joins their errors.
func CloseSinks(sinks []sink.Sink) error {
	var errs []error
	for _, s := range sinks {
		if err := s.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
