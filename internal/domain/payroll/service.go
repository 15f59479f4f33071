package payroll

import (
	"context"
	"time"
)

// PayrollService defines business logic for payroll runs and entries
type PayrollService interface {
	// CreateRun opens a draft run for a pay period
	CreateRun(ctx context.Context, req CreateRunRequest) (RunResponse, error)

	// GetRun retrieves a run by ID
	GetRun(ctx context.Context, id string) (RunResponse, error)

	// ListRuns retrieves runs with filters
	ListRuns(ctx context.Context, filter RunFilter) ([]RunResponse, error)

	// UpdateRun transitions a run's status; finalizing a run locks all
	// its entries against further edits
	UpdateRun(ctx context.Context, id string, req UpdateRunRequest) (RunResponse, error)

	// GenerateEntries computes and persists an entry per active
	// employee. A failing employee is recorded in the result and never
	// aborts the rest of the run
	GenerateEntries(ctx context.Context, runID string) (GenerateResult, error)

	// CalculateForEmployee computes one employee's payroll without
	// persisting it
	CalculateForEmployee(ctx context.Context, employeeID string, periodStart, periodEnd time.Time) (CalculationResult, error)

	// GetEntry retrieves an entry by ID
	GetEntry(ctx context.Context, id string) (EntryResponse, error)

	// ListEntries retrieves entries with filters
	ListEntries(ctx context.Context, filter EntryFilter) ([]EntryResponse, error)

	// UpdateEntry applies a manual correction: gross and net are
	// recomputed from the new totals, the version increments, and the
	// change lands in the append-only edit history
	UpdateEntry(ctx context.Context, id string, req UpdateEntryRequest) (EntryResponse, error)

	// GetEntryContributions retrieves the immutable remittance record
	// for an entry
	GetEntryContributions(ctx context.Context, entryID string) (ContributionsResponse, error)
}
