package database

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"go-jobhawk-automation/internal/models"
)

type Repository struct {
	db *pgxpool.Pool
}

func ConnectDB(ctx context.Context, connString string) (*Repository, error) {
	config, err := pgxpool.ParseConfig(connString)
	if err != nil {
		return nil, fmt.Errorf("unable to parse database url: %w", err)
	}

	config.MaxConns = 10
	config.MinConns = 2
	config.MaxConnLifetime = time.Hour

	// IMPORTANT: Supabase connection pooler (PgBouncer in Transaction mode)
	// does not support prepared statements easily. We MUST disable the statement cache.
	config.ConnConfig.DefaultQueryExecMode = pgx.QueryExecModeExec

	pool, err := pgxpool.NewWithConfig(ctx, config)
	if err != nil {
		return nil, fmt.Errorf("unable to connect to database: %w", err)
	}

	// Ping to ensure connection
	if err := pool.Ping(ctx); err != nil {
		return nil, fmt.Errorf("database unreachable: %w", err)
	}

	return &Repository{db: pool}, nil
}

func (r *Repository) Close() {
	if r.db != nil {
		r.db.Close()
	}
}

// schemaStatements bootstrap the tables on first run. Each statement is
// idempotent so restarts are safe.
var schemaStatements = []string{
	`CREATE TABLE IF NOT EXISTS job_listings (
		id BIGSERIAL PRIMARY KEY,
		job_title TEXT NOT NULL,
		company TEXT NOT NULL,
		location TEXT NOT NULL,
		min_pay DOUBLE PRECISION,
		max_pay DOUBLE PRECISION,
		min_yoe INTEGER,
		max_yoe INTEGER,
		description TEXT,
		platform TEXT NOT NULL,
		url TEXT,
		post_time TIMESTAMPTZ,
		created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
		UNIQUE (job_title, company, location, platform)
	)`,
	`CREATE TABLE IF NOT EXISTS job_applications (
		id BIGSERIAL PRIMARY KEY,
		applied BOOLEAN NOT NULL,
		ignore_type TEXT,
		ignore_category TEXT,
		ignore_term TEXT,
		job_listing_id BIGINT NOT NULL REFERENCES job_listings(id),
		created_at TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	// one row per distinct decision outcome per listing; re-walks after
	// a restart or a session clear must not append duplicates. NULLS NOT
	// DISTINCT so two identical accepts (all ignore fields NULL) collide.
	`CREATE UNIQUE INDEX IF NOT EXISTS job_applications_decision_key
		ON job_applications (applied, ignore_type, ignore_category, ignore_term, job_listing_id)
		NULLS NOT DISTINCT`,
	`CREATE TABLE IF NOT EXISTS rate_limits (
		id BIGSERIAL PRIMARY KEY,
		address TEXT NOT NULL,
		platform TEXT NOT NULL,
		created_at TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE TABLE IF NOT EXISTS run_records (
		id BIGSERIAL PRIMARY KEY,
		address TEXT NOT NULL,
		jobs_parsed INTEGER NOT NULL,
		platforms TEXT NOT NULL,
		happy_exit BOOLEAN NOT NULL,
		start_time TIMESTAMPTZ NOT NULL,
		end_time TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
}

// EnsureSchema creates the tables and indexes on first run.
func (r *Repository) EnsureSchema(ctx context.Context) error {
	for _, stmt := range schemaStatements {
		if _, err := r.db.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("failed to ensure schema: %w", err)
		}
	}
	return nil
}

// ---------------- LISTING OPERATIONS ----------------

// UpsertListing inserts a listing or refreshes the mutable fields of an
// existing one. Identity is title+company+location+platform, so a brief
// and a full build of the same job land on the same row.
func (r *Repository) UpsertListing(ctx context.Context, listing *models.Listing) error {
	query := `
		INSERT INTO job_listings (job_title, company, location, min_pay, max_pay, min_yoe, max_yoe, description, platform, url, post_time)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		ON CONFLICT (job_title, company, location, platform)
		DO UPDATE SET
			min_pay = EXCLUDED.min_pay,
			max_pay = EXCLUDED.max_pay,
			min_yoe = EXCLUDED.min_yoe,
			max_yoe = EXCLUDED.max_yoe,
			description = COALESCE(EXCLUDED.description, job_listings.description),
			url = EXCLUDED.url,
			post_time = COALESCE(EXCLUDED.post_time, job_listings.post_time)`

	_, err := r.db.Exec(ctx, query,
		listing.Title, listing.Company, listing.Location,
		listing.MinPay, listing.MaxPay, listing.MinYoe, listing.MaxYoe,
		listing.Description, string(listing.Platform), listing.URL, listing.PostTime)
	if err != nil {
		return fmt.Errorf("failed to upsert job listing: %w", err)
	}
	return nil
}

// ---------------- APPLICATION OPERATIONS ----------------

// applicationInsertSQL relies on the decision-key unique index: replayed
// decisions from a re-walk collide and are dropped silently, while a
// genuinely different outcome for the same listing lands as a new row.
const applicationInsertSQL = `
	INSERT INTO job_applications (applied, ignore_type, ignore_category, ignore_term, job_listing_id)
	VALUES ($1, $2, $3, $4, $5)
	ON CONFLICT DO NOTHING`

// UpsertApplication records one accept/ignore decision against the
// listing's row. Saving the same decision twice is a no-op.
func (r *Repository) UpsertApplication(ctx context.Context, app *models.Application) error {
	if app.Listing == nil {
		return fmt.Errorf("application has no listing")
	}

	var listingID int64
	err := r.db.QueryRow(ctx,
		"SELECT id FROM job_listings WHERE job_title = $1 AND company = $2 AND location = $3 AND platform = $4",
		app.Listing.Title, app.Listing.Company, app.Listing.Location, string(app.Listing.Platform)).Scan(&listingID)
	if err == pgx.ErrNoRows {
		return fmt.Errorf("no job listing row for %q at %q", app.Listing.Title, app.Listing.Company)
	}
	if err != nil {
		return fmt.Errorf("failed to look up job listing: %w", err)
	}

	_, err = r.db.Exec(ctx, applicationInsertSQL,
		app.Applied, app.IgnoreType, app.IgnoreCategory, app.IgnoreTerm, listingID)
	if err != nil {
		return fmt.Errorf("failed to save application decision: %w", err)
	}
	return nil
}

// IgnoreTermCount is one row of the ignore-term leaderboard.
type IgnoreTermCount struct {
	IgnoreType     string
	IgnoreCategory string
	IgnoreTerm     string
	Count          int
}

// TopIgnoreTerms reports which ignore terms reject the most listings,
// most frequent first. Useful for pruning criteria that over-filter.
func (r *Repository) TopIgnoreTerms(ctx context.Context, limit int) ([]IgnoreTermCount, error) {
	query := `
		SELECT ignore_type, ignore_category, ignore_term, COUNT(id) AS hits
		FROM job_applications
		WHERE ignore_type IS NOT NULL AND ignore_category IS NOT NULL AND ignore_term IS NOT NULL
		GROUP BY ignore_type, ignore_category, ignore_term
		ORDER BY hits DESC
		LIMIT $1`

	rows, err := r.db.Query(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query top ignore terms: %w", err)
	}
	defer rows.Close()

	var results []IgnoreTermCount
	for rows.Next() {
		var row IgnoreTermCount
		if err := rows.Scan(&row.IgnoreType, &row.IgnoreCategory, &row.IgnoreTerm, &row.Count); err != nil {
			return nil, fmt.Errorf("failed to scan ignore term row: %w", err)
		}
		results = append(results, row)
	}
	return results, rows.Err()
}

// ---------------- RATE LIMIT OPERATIONS ----------------

func (r *Repository) LogRateLimit(ctx context.Context, address string, platform models.Platform) error {
	_, err := r.db.Exec(ctx,
		"INSERT INTO rate_limits (address, platform) VALUES ($1, $2)",
		address, string(platform))
	if err != nil {
		return fmt.Errorf("failed to log rate limit: %w", err)
	}
	return nil
}

// LastRateLimitAge reports how long ago this address was last rate
// limited on a platform. The second return is false when it never was.
func (r *Repository) LastRateLimitAge(ctx context.Context, address string, platform models.Platform) (time.Duration, bool, error) {
	var last time.Time
	err := r.db.QueryRow(ctx,
		"SELECT created_at FROM rate_limits WHERE address = $1 AND platform = $2 ORDER BY created_at DESC LIMIT 1",
		address, string(platform)).Scan(&last)
	if err == pgx.ErrNoRows {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, fmt.Errorf("failed to query last rate limit: %w", err)
	}
	return time.Since(last), true, nil
}

// ---------------- RUN RECORD OPERATIONS ----------------

// RunRecord summarizes one scraping run for the run history table.
type RunRecord struct {
	Address    string
	JobsParsed int
	Platforms  string
	HappyExit  bool
	StartTime  time.Time
	EndTime    time.Time
}

func (r *Repository) LogRunRecord(ctx context.Context, record RunRecord) error {
	_, err := r.db.Exec(ctx, `
		INSERT INTO run_records (address, jobs_parsed, platforms, happy_exit, start_time, end_time)
		VALUES ($1, $2, $3, $4, $5, $6)`,
		record.Address, record.JobsParsed, record.Platforms, record.HappyExit, record.StartTime, record.EndTime)
	if err != nil {
		return fmt.Errorf("failed to log run record: %w", err)
	}
	return nil
}

// RecentRuns returns the latest run records, newest first.
func (r *Repository) RecentRuns(ctx context.Context, limit int) ([]RunRecord, error) {
	rows, err := r.db.Query(ctx, `
		SELECT address, jobs_parsed, platforms, happy_exit, start_time, end_time
		FROM run_records
		ORDER BY start_time DESC
		LIMIT $1`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query run records: %w", err)
	}
	defer rows.Close()

	var results []RunRecord
	for rows.Next() {
		var record RunRecord
		if err := rows.Scan(&record.Address, &record.JobsParsed, &record.Platforms,
			&record.HappyExit, &record.StartTime, &record.EndTime); err != nil {
			return nil, fmt.Errorf("failed to scan run record: %w", err)
		}
		results = append(results, record)
	}
	return results, rows.Err()
}
