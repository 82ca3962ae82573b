package ingest

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/cinegraph/cinegraph-api/internal/catalog"
	"github.com/cinegraph/cinegraph-api/internal/database"
	"github.com/cinegraph/cinegraph-api/internal/database/models"
	"github.com/cinegraph/cinegraph-api/internal/domain/repository"
)

// EntrySource produces catalog entries updated after the given watermark.
type EntrySource interface {
	FetchEntries(ctx context.Context, since int64) ([]catalog.Entry, error)
}

// Importer moves catalog feed entries into the movie graph. The import
// ledger provides dedupe and the resume watermark: an entry recorded as
// completed is never pushed again.
type Importer struct {
	source      EntrySource
	graph       repository.GraphAdmin
	ledger      database.ImportLedger
	concurrency int
	batchSize   int
}

// NewImporter creates an importer. Concurrency bounds the number of entries
// in flight; batchSize caps how many entries a single run processes.
func NewImporter(source EntrySource, graph repository.GraphAdmin, ledger database.ImportLedger, concurrency, batchSize int) *Importer {
	if concurrency <= 0 {
		concurrency = 1
	}
	return &Importer{
		source:      source,
		graph:       graph,
		ledger:      ledger,
		concurrency: concurrency,
		batchSize:   batchSize,
	}
}

// Run fetches entries newer than since and imports them. A zero since
// resumes from the ledger watermark.
func (imp *Importer) Run(ctx context.Context, since int64) error {
	if since == 0 {
		mark, err := imp.ledger.Watermark(ctx)
		if err != nil {
			return fmt.Errorf("reading watermark failed: %w", err)
		}
		since = mark
	}

	log.Printf("[Importer] Fetching catalog entries since %s", time.Unix(since, 0).Format(time.RFC3339))

	entries, err := imp.source.FetchEntries(ctx, since)
	if err != nil {
		return fmt.Errorf("feed fetch failed: %w", err)
	}
	if len(entries) == 0 {
		log.Printf("[Importer] No new entries")
		return nil
	}

	// Drop entries the ledger already recorded as completed.
	actionable := make([]catalog.Entry, 0, len(entries))
	for _, entry := range entries {
		rec, err := imp.ledger.GetRecordByGUID(ctx, entry.GUID)
		if err != nil && !errors.Is(err, database.ErrNotFound) {
			return fmt.Errorf("ledger lookup for %q failed: %w", entry.GUID, err)
		}
		if rec != nil && rec.Status == models.ImportStatusCompleted {
			log.Printf("[Importer] Skipping already imported entry: %s (%s)", entry.Title, entry.GUID)
			continue
		}
		actionable = append(actionable, entry)
	}

	if len(actionable) == 0 {
		log.Printf("[Importer] All %d entries already imported", len(entries))
		return nil
	}

	if imp.batchSize > 0 && len(actionable) > imp.batchSize {
		log.Printf("[Importer] Limiting batch to first %d entries (out of %d)", imp.batchSize, len(actionable))
		actionable = actionable[:imp.batchSize]
	}

	log.Printf("[Importer] Importing %d entries", len(actionable))

	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		succeeded int
		failed    int
	)

	// Semaphore to control concurrency
	sem := make(chan struct{}, imp.concurrency)

	for _, entry := range actionable {
		wg.Add(1)
		sem <- struct{}{}

		go func(e catalog.Entry) {
			defer wg.Done()
			defer func() { <-sem }()

			if err := imp.importEntry(ctx, e); err != nil {
				log.Printf("[Importer] ERROR importing %q (%s): %v", e.Title, e.GUID, err)
				mu.Lock()
				failed++
				mu.Unlock()
				return
			}
			mu.Lock()
			succeeded++
			mu.Unlock()
		}(entry)
	}

	wg.Wait()

	log.Printf("[Importer] Batch complete. Success: %d, Failed: %d", succeeded, failed)
	if failed > 0 {
		return fmt.Errorf("%d of %d entries failed to import", failed, succeeded+failed)
	}
	return nil
}

// Summary reports ledger record counts per status.
func (imp *Importer) Summary(ctx context.Context) (map[models.ImportStatus]int64, error) {
	return imp.ledger.CountByStatus(ctx)
}

// importEntry runs the ledger state machine for one entry: pending,
// processing, then completed or failed. A record left over from an earlier
// failed run is resumed at its current version.
func (imp *Importer) importEntry(ctx context.Context, entry catalog.Entry) error {
	rec, err := imp.ledger.GetRecordByGUID(ctx, entry.GUID)
	switch {
	case errors.Is(err, database.ErrNotFound):
		var entryUpdated int64
		if !entry.UpdatedAt.IsZero() {
			entryUpdated = entry.UpdatedAt.Unix()
		}
		rec = &models.ImportRecord{
			GUID:         entry.GUID,
			Title:        entry.Title,
			Status:       models.ImportStatusPending,
			EntryUpdated: entryUpdated,
		}
		id, createErr := imp.ledger.CreateRecord(ctx, rec)
		if createErr != nil {
			return fmt.Errorf("ledger record creation failed: %w", createErr)
		}
		rec.ID = id
		rec.Version = 1
	case err != nil:
		return fmt.Errorf("ledger lookup failed: %w", err)
	}

	if err := imp.ledger.UpdateRecordStatus(ctx, rec.ID, rec.Version, models.ImportStatusProcessing, ""); err != nil {
		return fmt.Errorf("marking entry processing failed: %w", err)
	}
	rec.Version++

	if err := imp.push(ctx, entry); err != nil {
		if statusErr := imp.ledger.UpdateRecordStatus(ctx, rec.ID, rec.Version, models.ImportStatusFailed, err.Error()); statusErr != nil {
			log.Printf("[Importer] Failed to update ledger status: %v", statusErr)
		}
		return err
	}

	if err := imp.ledger.UpdateRecordStatus(ctx, rec.ID, rec.Version, models.ImportStatusCompleted, ""); err != nil {
		return fmt.Errorf("marking entry completed failed: %w", err)
	}
	return nil
}

// push writes one entry's movie, its neighborhood nodes and its
// relationships. Nodes go in before links so every MERGE can match.
func (imp *Importer) push(ctx context.Context, entry catalog.Entry) error {
	movie := repository.MovieSeed{
		Title:       entry.Title,
		Year:        entry.Year,
		Rating:      entry.Rating,
		Tagline:     entry.Tagline,
		Description: entry.Summary,
	}
	if _, err := imp.graph.UpsertMovies(ctx, []repository.MovieSeed{movie}); err != nil {
		return fmt.Errorf("movie upsert failed: %w", err)
	}

	if len(entry.Genres) > 0 {
		genres := make([]repository.GenreSeed, 0, len(entry.Genres))
		links := make([]repository.Link, 0, len(entry.Genres))
		for _, name := range entry.Genres {
			genres = append(genres, repository.GenreSeed{Name: name})
			links = append(links, repository.Link{From: entry.Title, To: name})
		}
		if _, err := imp.graph.UpsertGenres(ctx, genres); err != nil {
			return fmt.Errorf("genre upsert failed: %w", err)
		}
		if err := imp.graph.LinkInGenre(ctx, links); err != nil {
			return fmt.Errorf("genre links failed: %w", err)
		}
	}

	var people []repository.PersonSeed
	if entry.Director != "" {
		people = append(people, repository.PersonSeed{Name: entry.Director, Role: "Director"})
	}
	for _, name := range entry.Cast {
		people = append(people, repository.PersonSeed{Name: name, Role: "Actor"})
	}
	if len(people) > 0 {
		if _, err := imp.graph.UpsertPeople(ctx, people); err != nil {
			return fmt.Errorf("person upsert failed: %w", err)
		}
	}

	if entry.Director != "" {
		links := []repository.Link{{From: entry.Director, To: entry.Title}}
		if err := imp.graph.LinkDirected(ctx, links); err != nil {
			return fmt.Errorf("DIRECTED link failed: %w", err)
		}
	}
	if len(entry.Cast) > 0 {
		links := make([]repository.Link, 0, len(entry.Cast))
		for _, name := range entry.Cast {
			links = append(links, repository.Link{From: name, To: entry.Title})
		}
		if err := imp.graph.LinkActedIn(ctx, links); err != nil {
			return fmt.Errorf("ACTED_IN link failed: %w", err)
		}
	}

	return nil
}
