package adapters

import (
	"context"
	"database/sql"
	"encoding/json"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/rs/zerolog/log"
	_ "modernc.org/sqlite"

	"lms-packages/internal/core"
	"lms-packages/internal/ports"
	"lms-packages/internal/types"
)

const RegistryFile = "registry.db"

const registrySchema = `
CREATE TABLE IF NOT EXISTS packages (
	name TEXT NOT NULL,
	version TEXT NOT NULL,
	user_name TEXT NOT NULL,
	channel TEXT NOT NULL,
	package_id TEXT NOT NULL,
	settings TEXT NOT NULL,
	package_dir TEXT NOT NULL,
	manifest_digest TEXT NOT NULL,
	created_at TEXT NOT NULL,
	PRIMARY KEY (name, version, user_name, channel, package_id)
);
CREATE INDEX IF NOT EXISTS idx_packages_ref ON packages(name, version, user_name, channel);
`

// SQLiteRegistryAdapter keeps the local package registry in a single
// SQLite file. The database is opened on first use.
type SQLiteRegistryAdapter struct {
	Path string

	mu      sync.Mutex
	db      *sql.DB
	openErr error
	opened  bool
}

func NewSQLiteRegistryAdapter(path string) *SQLiteRegistryAdapter {
	return &SQLiteRegistryAdapter{Path: path}
}

func (a *SQLiteRegistryAdapter) open() (*sql.DB, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.opened {
		return a.db, a.openErr
	}
	a.opened = true
	a.db, a.openErr = openRegistry(a.Path)
	return a.db, a.openErr
}

func openRegistry(path string) (*sql.DB, error) {
	if strings.TrimSpace(path) == "" {
		return nil, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("registry path is empty")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to create registry directory").
			WithCause(err)
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to open registry").
			WithCause(err)
	}
	if _, err := db.Exec("PRAGMA busy_timeout = 5000"); err != nil {
		_ = db.Close()
		return nil, errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to configure registry").
			WithCause(err)
	}
	if _, err := db.Exec(registrySchema); err != nil {
		_ = db.Close()
		return nil, errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to create registry schema").
			WithCause(err)
	}
	log.Debug().Str("path", path).Msg("registry opened")
	return db, nil
}

func (a *SQLiteRegistryAdapter) Register(ctx context.Context, record types.PackageRecord) error {
	if parseCreatedAt(record.CreatedAt).IsZero() {
		return errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("created_at must be an RFC 3339 timestamp: " + record.CreatedAt)
	}
	db, err := a.open()
	if err != nil {
		return err
	}
	settings, err := json.Marshal(record.Settings)
	if err != nil {
		return errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to encode settings").
			WithCause(err)
	}
	ref := record.Reference
	_, err = db.ExecContext(ctx, `
		INSERT INTO packages (name, version, user_name, channel, package_id, settings, package_dir, manifest_digest, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(name, version, user_name, channel, package_id) DO UPDATE SET
			settings = excluded.settings,
			package_dir = excluded.package_dir,
			manifest_digest = excluded.manifest_digest,
			created_at = excluded.created_at`,
		ref.Name, ref.Version, ref.User, ref.Channel, record.PackageID,
		string(settings), record.PackageDir, record.ManifestDigest, record.CreatedAt,
	)
	if err != nil {
		return errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to register package").
			WithCause(err)
	}
	log.Debug().
		Str("reference", ref.String()).
		Str("package_id", record.PackageID).
		Msg("package registered")
	return nil
}

// Lookup returns the most recently registered package for ref.
func (a *SQLiteRegistryAdapter) Lookup(ctx context.Context, ref types.Requirement) (types.PackageRecord, bool, error) {
	db, err := a.open()
	if err != nil {
		return types.PackageRecord{}, false, err
	}
	rows, err := db.QueryContext(ctx, `
		SELECT name, version, user_name, channel, package_id, settings, package_dir, manifest_digest, created_at
		FROM packages
		WHERE name = ? AND version = ? AND user_name = ? AND channel = ?`,
		ref.Name, ref.Version, ref.User, ref.Channel,
	)
	if err != nil {
		return types.PackageRecord{}, false, queryError(err)
	}
	records, err := scanRecords(rows)
	if err != nil {
		return types.PackageRecord{}, false, err
	}
	if len(records) == 0 {
		return types.PackageRecord{}, false, nil
	}
	return newestRecord(records), true, nil
}

// List returns every record ordered by name, then newest version first.
func (a *SQLiteRegistryAdapter) List(ctx context.Context) ([]types.PackageRecord, error) {
	db, err := a.open()
	if err != nil {
		return nil, err
	}
	rows, err := db.QueryContext(ctx, `
		SELECT name, version, user_name, channel, package_id, settings, package_dir, manifest_digest, created_at
		FROM packages`)
	if err != nil {
		return nil, queryError(err)
	}
	records, err := scanRecords(rows)
	if err != nil {
		return nil, err
	}
	sort.SliceStable(records, func(i, j int) bool {
		left, right := records[i].Reference, records[j].Reference
		if left.Name != right.Name {
			return left.Name < right.Name
		}
		if cmp := core.CompareVersions(left.Version, right.Version); cmp != 0 {
			return cmp > 0
		}
		if left.User+"/"+left.Channel != right.User+"/"+right.Channel {
			return left.User+"/"+left.Channel < right.User+"/"+right.Channel
		}
		return records[i].PackageID < records[j].PackageID
	})
	return records, nil
}

func (a *SQLiteRegistryAdapter) Remove(ctx context.Context, ref types.Requirement) (int, error) {
	db, err := a.open()
	if err != nil {
		return 0, err
	}
	result, err := db.ExecContext(ctx, `
		DELETE FROM packages WHERE name = ? AND version = ? AND user_name = ? AND channel = ?`,
		ref.Name, ref.Version, ref.User, ref.Channel,
	)
	if err != nil {
		return 0, errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to remove package").
			WithCause(err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return 0, errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to count removed packages").
			WithCause(err)
	}
	return int(affected), nil
}

func (a *SQLiteRegistryAdapter) Close() error {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.db == nil {
		return nil
	}
	err := a.db.Close()
	a.db = nil
	a.opened = false
	return err
}

func scanRecords(rows *sql.Rows) ([]types.PackageRecord, error) {
	defer rows.Close()
	var records []types.PackageRecord
	for rows.Next() {
		var record types.PackageRecord
		var settings string
		if err := rows.Scan(
			&record.Reference.Name,
			&record.Reference.Version,
			&record.Reference.User,
			&record.Reference.Channel,
			&record.PackageID,
			&settings,
			&record.PackageDir,
			&record.ManifestDigest,
			&record.CreatedAt,
		); err != nil {
			return nil, queryError(err)
		}
		if err := json.Unmarshal([]byte(settings), &record.Settings); err != nil {
			return nil, errbuilder.New().
				WithCode(errbuilder.CodeInternal).
				WithMsg("registry settings are corrupt").
				WithCause(err)
		}
		records = append(records, record)
	}
	if err := rows.Err(); err != nil {
		return nil, queryError(err)
	}
	return records, nil
}

func queryError(err error) error {
	return errbuilder.New().
		WithCode(errbuilder.CodeInternal).
		WithMsg("failed to query registry").
		WithCause(err)
}

var _ ports.RegistryPort = (*SQLiteRegistryAdapter)(nil)
