package load_test

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	embeddedpostgres "github.com/fergusstrange/embedded-postgres"
	"github.com/jackc/pgx/v5/pgxpool"
	goparquet "github.com/parquet-go/parquet-go"

	"github.com/gyeh/pricebench/internal/config"
	"github.com/gyeh/pricebench/internal/db"
	"github.com/gyeh/pricebench/internal/load"
	"github.com/gyeh/pricebench/internal/logging"
	"github.com/gyeh/pricebench/internal/model"
	"github.com/gyeh/pricebench/internal/output"
)

const (
	testPort     = 15433
	testDB       = "pricebenchtest"
	testUser     = "postgres"
	testPassword = "postgres"
)

var (
	testDSN string
	pg      *embeddedpostgres.EmbeddedPostgres
)

func TestMain(m *testing.M) {
	testDSN = fmt.Sprintf("postgresql://%s:%s@localhost:%d/%s?sslmode=disable",
		testUser, testPassword, testPort, testDB)

	pg = embeddedpostgres.NewDatabase(
		embeddedpostgres.DefaultConfig().
			Port(uint32(testPort)).
			Database(testDB).
			Username(testUser).
			Password(testPassword).
			Version(embeddedpostgres.V16).
			StartTimeout(30 * time.Second),
	)

	if err := pg.Start(); err != nil {
		fmt.Fprintf(os.Stderr, "failed to start embedded postgres: %v\n", err)
		os.Exit(1)
	}

	code := m.Run()

	if err := pg.Stop(); err != nil {
		fmt.Fprintf(os.Stderr, "failed to stop embedded postgres: %v\n", err)
	}

	os.Exit(code)
}

// setupDB creates a connection pool and applies migrations on a clean schema.
func setupDB(t *testing.T) *pgxpool.Pool {
	t.Helper()
	ctx := context.Background()

	pool, err := pgxpool.New(ctx, testDSN)
	if err != nil {
		t.Fatalf("connect: %v", err)
	}

	if _, err := pool.Exec(ctx, "DROP SCHEMA IF EXISTS serving CASCADE"); err != nil {
		t.Fatalf("drop schema: %v", err)
	}

	log := logging.Setup("text")
	if err := db.ApplyMigrations(ctx, pool, log); err != nil {
		pool.Close()
		t.Fatalf("migrations: %v", err)
	}

	t.Cleanup(func() { pool.Close() })
	return pool
}

func strp(s string) *string { return &s }
func fp(f float64) *float64 { return &f }

func fixtureRecords() []model.PriceRecord {
	return []model.PriceRecord{
		{
			HospitalName:   strp("Skagit Valley Hospital"),
			PayerName:      strp("Premera - PPO"),
			Code:           strp("27447"),
			CodeType:       strp("CPT"),
			Description:    strp("Total knee arthroplasty"),
			NegotiatedRate: fp(24500.50),
			EffectivePrice: fp(24500.50),
			Setting:        strp("outpatient"),
			GrossCharge:    fp(61000),
			SourceFile:     "skagit_valley_mrf.csv",
			PayerGroup:     "Premera Blue Cross",
			PayerCanonical: "Premera",
		},
		{
			HospitalName:   strp("Skagit Valley Hospital"),
			Code:           strp("470"),
			CodeType:       strp("DRG"),
			Description:    strp("Major joint replacement"),
			CashPrice:      fp(31000),
			EffectivePrice: fp(31000),
			SourceFile:     "skagit_valley_mrf.csv",
			PayerGroup:     "Self-Pay / Cash",
			PayerCanonical: "Self-Pay",
		},
		{
			HospitalName:   strp("Providence Regional Medical Center Everett"),
			PayerName:      strp("Aetna - Commercial"),
			Code:           strp("27447"),
			CodeType:       strp("CPT"),
			NegotiatedRate: fp(900000),
			EffectivePrice: fp(900000),
			SourceFile:     "providence_everett_mrf.json",
			IsOutlier:      true,
			PayerGroup:     "Aetna",
			PayerCanonical: "Aetna",
		},
	}
}

func writeFixtureParquet(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "normalized_prices.parquet")
	if err := output.WriteNormalizedParquet(path, fixtureRecords()); err != nil {
		t.Fatalf("write fixture parquet: %v", err)
	}
	return path
}

func servingCount(t *testing.T, pool *pgxpool.Pool) int64 {
	t.Helper()
	var count int64
	err := pool.QueryRow(context.Background(),
		"SELECT count(*) FROM serving.price_rows").Scan(&count)
	if err != nil {
		t.Fatalf("query serving count: %v", err)
	}
	return count
}

func TestLoad_EndToEnd(t *testing.T) {
	pool := setupDB(t)
	ctx := context.Background()
	log := logging.Setup("text")

	cfg := &config.Config{
		DSN:      testDSN,
		FilePath: writeFixtureParquet(t),
		Activate: true,
	}

	summary, err := load.Run(ctx, pool, log, cfg)
	if err != nil {
		t.Fatalf("load.Run: %v", err)
	}

	t.Run("summary_metrics", func(t *testing.T) {
		if summary.RowsRead != 3 {
			t.Errorf("RowsRead: got %d, want 3", summary.RowsRead)
		}
		if summary.RowsLoaded != 3 {
			t.Errorf("RowsLoaded: got %d, want 3", summary.RowsLoaded)
		}
		if summary.RowsRejected != 0 {
			t.Errorf("RowsRejected: got %d, want 0", summary.RowsRejected)
		}
		if len(summary.FileSHA256) != 64 {
			t.Errorf("FileSHA256 length: got %d, want 64", len(summary.FileSHA256))
		}
	})

	t.Run("serving_row_count", func(t *testing.T) {
		if count := servingCount(t, pool); count != 3 {
			t.Errorf("serving rows: got %d, want 3", count)
		}
	})

	t.Run("money_stored_as_cents", func(t *testing.T) {
		var negotiated, effective *int64
		err := pool.QueryRow(ctx,
			`SELECT negotiated_rate_cents, effective_price_cents
			 FROM serving.price_rows
			 WHERE payer_name = 'Premera - PPO'`).Scan(&negotiated, &effective)
		if err != nil {
			t.Fatalf("query: %v", err)
		}
		if negotiated == nil || *negotiated != 2450050 {
			t.Errorf("negotiated_rate_cents: got %v, want 2450050", negotiated)
		}
		if effective == nil || *effective != 2450050 {
			t.Errorf("effective_price_cents: got %v, want 2450050", effective)
		}
	})

	t.Run("null_payer_preserved", func(t *testing.T) {
		var payerGroup *string
		err := pool.QueryRow(ctx,
			`SELECT payer_group FROM serving.price_rows WHERE payer_name IS NULL`).
			Scan(&payerGroup)
		if err != nil {
			t.Fatalf("query: %v", err)
		}
		if payerGroup == nil || *payerGroup != "Self-Pay / Cash" {
			t.Errorf("payer_group: got %v, want Self-Pay / Cash", payerGroup)
		}
	})

	t.Run("outlier_flag_carried", func(t *testing.T) {
		var isOutlier bool
		err := pool.QueryRow(ctx,
			`SELECT is_outlier FROM serving.price_rows
			 WHERE hospital_name = 'Providence Regional Medical Center Everett'`).
			Scan(&isOutlier)
		if err != nil {
			t.Fatalf("query: %v", err)
		}
		if !isOutlier {
			t.Error("expected outlier flag to survive the load")
		}
	})

	t.Run("load_file_marked_loaded", func(t *testing.T) {
		var status string
		err := pool.QueryRow(ctx,
			"SELECT status FROM serving.load_files WHERE load_file_id = $1",
			summary.LoadFileID).Scan(&status)
		if err != nil {
			t.Fatalf("query: %v", err)
		}
		if status != "loaded" {
			t.Errorf("status: got %q, want loaded", status)
		}
	})
}

func TestLoad_IdempotentRerun(t *testing.T) {
	pool := setupDB(t)
	ctx := context.Background()
	log := logging.Setup("text")

	cfg := &config.Config{
		DSN:      testDSN,
		FilePath: writeFixtureParquet(t),
		Activate: true,
	}

	summary1, err := load.Run(ctx, pool, log, cfg)
	if err != nil {
		t.Fatalf("first run: %v", err)
	}
	if summary1.RowsLoaded != 3 {
		t.Fatalf("first run loaded %d rows, want 3", summary1.RowsLoaded)
	}

	// Same file again: preflight sees the loaded sha256 and skips.
	summary2, err := load.Run(ctx, pool, log, cfg)
	if err != nil {
		t.Fatalf("second run: %v", err)
	}
	if summary2.RowsLoaded != 0 {
		t.Errorf("second run should skip, but loaded %d rows", summary2.RowsLoaded)
	}
	if count := servingCount(t, pool); count != 3 {
		t.Errorf("serving rows doubled on re-run: got %d, want 3", count)
	}
}

func TestLoad_ForceReloadSupersedesOldBatch(t *testing.T) {
	pool := setupDB(t)
	ctx := context.Background()
	log := logging.Setup("text")

	cfg := &config.Config{
		DSN:      testDSN,
		FilePath: writeFixtureParquet(t),
		Activate: true,
	}

	summary1, err := load.Run(ctx, pool, log, cfg)
	if err != nil {
		t.Fatalf("first run: %v", err)
	}

	cfg.Force = true
	summary2, err := load.Run(ctx, pool, log, cfg)
	if err != nil {
		t.Fatalf("force run: %v", err)
	}
	if summary2.RowsLoaded != 3 {
		t.Errorf("force run loaded %d rows, want 3", summary2.RowsLoaded)
	}
	if summary2.LoadBatchID == summary1.LoadBatchID {
		t.Error("force run should mint a new batch id")
	}

	// Activation deletes the stale batch, so the count stays flat.
	if count := servingCount(t, pool); count != 3 {
		t.Errorf("serving rows after force reload: got %d, want 3", count)
	}

	var batches int64
	err = pool.QueryRow(ctx,
		"SELECT count(DISTINCT load_batch_id) FROM serving.price_rows").Scan(&batches)
	if err != nil {
		t.Fatalf("query: %v", err)
	}
	if batches != 1 {
		t.Errorf("distinct batches: got %d, want 1", batches)
	}
}

func TestLoad_RejectsWrongSchema(t *testing.T) {
	pool := setupDB(t)
	ctx := context.Background()
	log := logging.Setup("text")

	type wrongRow struct {
		Foo string `parquet:"foo"`
	}
	path := filepath.Join(t.TempDir(), "wrong.parquet")
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	w := goparquet.NewGenericWriter[wrongRow](f)
	if _, err := w.Write([]wrongRow{{Foo: "bar"}}); err != nil {
		t.Fatalf("write: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("close writer: %v", err)
	}
	f.Close()

	cfg := &config.Config{DSN: testDSN, FilePath: path}
	_, err = load.Run(ctx, pool, log, cfg)
	if err == nil {
		t.Fatal("expected schema validation failure")
	}
	pipeErr, ok := err.(*load.PipelineError)
	if !ok {
		t.Fatalf("expected *PipelineError, got %T", err)
	}
	if pipeErr.Phase != "preflight" {
		t.Errorf("phase: got %q, want preflight", pipeErr.Phase)
	}

	if count := servingCount(t, pool); count != 0 {
		t.Errorf("serving rows after failed preflight: got %d, want 0", count)
	}
}
