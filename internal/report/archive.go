package report

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"path"

	"github.com/quantfold/arbscan/internal/domain"
)

// ArchiveReporter writes each scan as a JSON document to blob storage so
// raw batches survive for offline analysis. Object keys are grouped by day:
// <prefix>/2026/01/31/scan-000042-153004.json.
type ArchiveReporter struct {
	blob   domain.BlobWriter
	prefix string
	logger *slog.Logger
}

func NewArchiveReporter(blob domain.BlobWriter, prefix string, logger *slog.Logger) *ArchiveReporter {
	return &ArchiveReporter{
		blob:   blob,
		prefix: prefix,
		logger: logger.With(slog.String("component", "archive_reporter")),
	}
}

func (a *ArchiveReporter) Report(ctx context.Context, res domain.ScanResult) error {
	data, err := json.Marshal(res)
	if err != nil {
		return fmt.Errorf("report: marshal scan: %w", err)
	}

	key := path.Join(
		a.prefix,
		res.StartedAt.UTC().Format("2006/01/02"),
		fmt.Sprintf("scan-%06d-%s.json", res.Seq, res.StartedAt.UTC().Format("150405")),
	)
	if err := a.blob.Put(ctx, key, bytes.NewReader(data), "application/json"); err != nil {
		return fmt.Errorf("report: archive scan: %w", err)
	}
	a.logger.DebugContext(ctx, "scan archived",
		slog.Uint64("scan", res.Seq),
		slog.String("key", key),
		slog.Int("bytes", len(data)),
	)
	return nil
}
