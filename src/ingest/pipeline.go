package ingest

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"regexp"
	"sync"
	"time"

	"github.com/lgn-lvx3/pge-nrg-api/config/log"
	"github.com/lgn-lvx3/pge-nrg-api/entity"

	"go.uber.org/zap"
)

// Identity is the resolved owner of the records produced by one run.
type Identity struct {
	ID    string
	Email string
}

// OwnerResolver yields the owning identity for a run before any byte is
// parsed. The URL-triggered path resolves from the caller's auth context,
// the storage-event path from metadata on the uploaded object.
type OwnerResolver func(ctx context.Context) (Identity, error)

// StaticOwner resolves to an identity already known to the caller.
func StaticOwner(owner Identity) OwnerResolver {
	return func(context.Context) (Identity, error) {
		if owner.ID == "" {
			return Identity{}, errors.New("owner id is empty")
		}
		return owner, nil
	}
}

// RejectionPolicy decides what a semantically invalid row does to the run.
type RejectionPolicy int

const (
	// Abort ends the run on the first rejected row. The partial batch
	// accumulated at that point is abandoned, never flushed; batches
	// already handed to the sink stay written.
	Abort RejectionPolicy = iota
	// Skip records the rejection and continues with the remaining rows.
	Skip
)

type Options struct {
	BatchSize    int             // records accumulated before a sink write
	OnRejection  RejectionPolicy // Abort for direct uploads, Skip for storage events
	FetchTimeout time.Duration   // bound on the whole run, 0 means none
	Comma        rune            // field delimiter, ',' when zero
}

// Report summarizes one run. On failure the counts cover everything that
// happened before the terminal error; persisted batches are not undone.
type Report struct {
	RowsRead      int
	RowsRejected  int
	RowsPersisted int
	Batches       int
	Rejections    []Rejection
}

func (r Report) String() string {
	return fmt.Sprintf("%d rows read, %d rejected, %d persisted in %d batches",
		r.RowsRead, r.RowsRejected, r.RowsPersisted, r.Batches)
}

// Pipeline wires a remote byte stream through normalize, validate,
// accumulate and sink stages connected by bounded channels, so a slow
// store stalls the parser instead of buffering the file in memory.
type Pipeline struct {
	sink BatchWriter
	opts Options
}

func New(sink BatchWriter, opts Options) *Pipeline {
	if opts.BatchSize <= 0 {
		opts.BatchSize = 500
	}
	return &Pipeline{sink: sink, opts: opts}
}

var validSourceURL = regexp.MustCompile(`^https?://[^\s/$.?#].[^\s]*$`)

// ValidSourceURL reports whether raw has a fetchable scheme://host/path
// shape with no embedded whitespace.
func ValidSourceURL(raw string) bool {
	return validSourceURL.MatchString(raw)
}

// Run ingests sourceURL for the identity produced by resolve. Records are
// persisted in source order, batch by batch, and the same file can be
// re-run safely because record ids are deterministic.
func (p *Pipeline) Run(ctx context.Context, sourceURL string, resolve OwnerResolver) (Report, error) {
	report := Report{}

	if !ValidSourceURL(sourceURL) {
		return report, &SourceError{URL: sourceURL, Err: errors.New("malformed source url")}
	}

	owner, err := resolve(ctx)
	if err != nil {
		return report, fmt.Errorf("resolving owner: %w", err)
	}

	var (
		runCtx context.Context
		cancel context.CancelFunc
	)
	if p.opts.FetchTimeout > 0 {
		runCtx, cancel = context.WithTimeout(ctx, p.opts.FetchTimeout)
	} else {
		runCtx, cancel = context.WithCancel(ctx)
	}
	defer cancel()

	req, err := http.NewRequestWithContext(runCtx, http.MethodGet, sourceURL, nil)
	if err != nil {
		return report, &SourceError{URL: sourceURL, Err: err}
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return report, &SourceError{URL: sourceURL, Err: err}
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return report, &SourceError{URL: sourceURL, Err: fmt.Errorf("unexpected status %s", resp.Status)}
	}

	log.Logger.Info("ingestion started",
		zap.String("url", sourceURL),
		zap.String("owner", owner.ID),
		zap.Int("batch_size", p.opts.BatchSize))

	rows := make(chan RawRow, p.opts.BatchSize*2)
	batches := make(chan []entity.EnergyEntryEntity, 2)

	var (
		wg       sync.WaitGroup
		readErr  error
		valErr   error
		writeErr error
	)

	// 1. fetch + normalize
	wg.Add(1)
	go func() {
		defer wg.Done()
		defer close(rows)
		n, err := Normalizer{Comma: p.opts.Comma}.Stream(runCtx, resp.Body, rows)
		report.RowsRead = n
		if err == nil || errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return // cancellation carries its own cause
		}
		var pe *ParseError
		if errors.As(err, &pe) {
			readErr = err
		} else {
			readErr = &SourceError{URL: sourceURL, Err: err}
		}
	}()

	// 2. validate + accumulate
	wg.Add(1)
	go func() {
		defer wg.Done()
		defer close(batches)
		acc := NewAccumulator(p.opts.BatchSize)
		rowNum := 0
		for row := range rows {
			rowNum++
			cand, rej := ValidateRow(row)
			if rej != nil {
				rej.Line = rowNum
				report.RowsRejected++
				report.Rejections = append(report.Rejections, *rej)
				if p.opts.OnRejection == Abort {
					valErr = rej
					cancel()
					drainRows(rows)
					return
				}
				log.Logger.Warn("row rejected, skipping",
					zap.Int("row", rowNum),
					zap.String("reason", string(rej.Reason)))
				continue
			}
			if full := acc.Add(p.record(owner, cand)); full != nil {
				select {
				case batches <- full:
				case <-runCtx.Done():
					drainRows(rows)
					return
				}
			}
		}
		if rest := acc.Flush(); rest != nil {
			select {
			case batches <- rest:
			case <-runCtx.Done():
			}
		}
	}()

	// 3. persist, one write in flight
	for batch := range batches {
		if writeErr != nil {
			continue // drain after failure so the batcher can finish
		}
		if err := p.sink.Write(runCtx, batch); err != nil {
			writeErr = err
			cancel()
			continue
		}
		report.RowsPersisted += len(batch)
		report.Batches++
	}
	wg.Wait()

	switch {
	case valErr != nil:
		err = valErr
	case writeErr != nil:
		err = writeErr
	default:
		err = readErr
	}
	if err != nil {
		log.Logger.Error("ingestion failed", zap.String("url", sourceURL), zap.String("report", report.String()), zap.Error(err))
		return report, err
	}

	log.Logger.Info("ingestion completed", zap.String("url", sourceURL), zap.String("report", report.String()))
	return report, nil
}

func (p *Pipeline) record(owner Identity, c Candidate) entity.EnergyEntryEntity {
	return entity.EnergyEntryEntity{
		Id:          entity.EntryId(owner.ID, c.EntryDate),
		UserId:      owner.ID,
		EntryDate:   c.EntryDate,
		Usage:       c.Usage,
		CreatedType: entity.CreatedTypeUpload,
		Type:        entity.TypeEnergyEntry,
		CreatedAt:   time.Now().UTC(),
	}
}

// drainRows unblocks the reader after a terminal decision downstream.
func drainRows(rows <-chan RawRow) {
	for range rows {
	}
}
