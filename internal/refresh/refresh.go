// Package refresh rebuilds the local station snapshot from the RIS::Stations API.
package refresh

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/jusunglee/bahn-go/internal/ris"
	"github.com/jusunglee/bahn-go/internal/snapshot"
	"github.com/jusunglee/bahn-go/internal/transport"
	"github.com/jusunglee/bahn-go/pkg/models"
	"github.com/rs/zerolog/log"
	"github.com/sourcegraph/conc/pool"
)

// Format is an output format of the snapshot
type Format string

const (
	FormatProtobuf Format = "protobuf"
	FormatJSON     Format = "json"
	FormatCSV      Format = "csv"
)

// ParseFormats parses a comma separated format list such as "protobuf,json"
func ParseFormats(s string) ([]Format, error) {
	var formats []Format
	seen := map[Format]bool{}
	for _, part := range strings.Split(s, ",") {
		format := Format(strings.ToLower(strings.TrimSpace(part)))
		if format == "" {
			continue
		}
		switch format {
		case FormatProtobuf, FormatJSON, FormatCSV:
		default:
			return nil, fmt.Errorf("unknown format %q", format)
		}
		if !seen[format] {
			seen[format] = true
			formats = append(formats, format)
		}
	}
	if len(formats) == 0 {
		return nil, errors.New("no output format given")
	}
	return formats, nil
}

// Fetch downloads the RIS station list, retrying transient failures up to
// retries times with exponential backoff
func Fetch(ctx context.Context, getter ris.Getter, baseURL string, retries uint64, initialInterval time.Duration) (*ris.StationsResponse, error) {
	b := backoff.NewExponentialBackOff()
	b.InitialInterval = initialInterval

	return backoff.RetryNotifyWithData(
		func() (*ris.StationsResponse, error) {
			response, err := ris.FetchStations(ctx, getter, baseURL)
			if err != nil && !retryable(err) {
				return nil, backoff.Permanent(err)
			}
			return response, err
		},
		backoff.WithContext(backoff.WithMaxRetries(b, retries), ctx),
		func(err error, d time.Duration) {
			log.Warn().Err(err).Dur("backoff", d).Msg("Fetching stations failed, retrying")
		},
	)
}

// retryable reports whether a failed fetch may succeed when repeated.
// Client errors other than rate limiting are final.
func retryable(err error) bool {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) || errors.Is(err, ris.ErrDecode) {
		return false
	}
	var statusErr *transport.StatusError
	if errors.As(err, &statusErr) {
		return statusErr.StatusCode == http.StatusTooManyRequests || statusErr.StatusCode >= 500
	}
	return true
}

// Write saves the stations in every requested format next to each other as
// output.protobuf, output.json and output.csv. The protobuf and CSV outputs
// only hold stations with a position.
func Write(response *ris.StationsResponse, output string, formats []Format) error {
	if dir := filepath.Dir(output); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
	}

	positioned := ris.ToStationList(response, true)
	all := ris.ToStationList(response, false)

	p := pool.New().WithErrors()
	for _, format := range formats {
		format := format // per-iteration copy; matches Go 1.22+ loop semantics under the go 1.21 directive
		p.Go(func() error {
			start := time.Now()
			path := output + "." + string(format)

			var err error
			switch format {
			case FormatProtobuf:
				err = snapshot.WriteFile(path, positioned)
			case FormatJSON:
				err = writeWith(path, all, snapshot.WriteJSON)
			case FormatCSV:
				err = writeWith(path, positioned, snapshot.WriteCSV)
			default:
				err = fmt.Errorf("unknown format %q", format)
			}
			if err != nil {
				return fmt.Errorf("failed to write %s: %w", path, err)
			}

			log.Info().
				Str("format", string(format)).
				Str("path", path).
				Dur("duration", time.Since(start)).
				Msg("Saved stations")
			return nil
		})
	}
	return p.Wait()
}

func writeWith(path string, list models.StationList, write func(io.Writer, models.StationList) error) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := write(f, list); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
