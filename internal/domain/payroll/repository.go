package payroll

import "context"

type PayrollRepository interface {
	// Runs
	CreateRun(ctx context.Context, run Run) (Run, error)
	GetRunByID(ctx context.Context, id string) (Run, error)
	ListRuns(ctx context.Context, filter RunFilter) ([]Run, error)
	UpdateRun(ctx context.Context, run Run) (Run, error)

	// Entries
	CreateEntry(ctx context.Context, entry Entry) (Entry, error)
	GetEntryByID(ctx context.Context, id string) (Entry, error)
	GetEntryByRunEmployee(ctx context.Context, runID, employeeID string) (Entry, error)
	ListEntries(ctx context.Context, filter EntryFilter) ([]Entry, error)
	UpdateEntry(ctx context.Context, entry Entry) (Entry, error)
	FinalizeEntriesByRun(ctx context.Context, runID string) error

	// Contributions (immutable once created)
	CreateContributions(ctx context.Context, c Contributions) (Contributions, error)
	GetContributionsByEntry(ctx context.Context, entryID string) (Contributions, error)
}
