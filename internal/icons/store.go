package icons

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"emblem/internal/config"
	"emblem/internal/logging"
)

// Applier publishes the active icon to the platform. A nil record means the
// default icon.
type Applier interface {
	Apply(ctx context.Context, record *Record) error
}

// Notifier receives the collection state after every committed mutation.
type Notifier interface {
	Publish(state CollectionState)
}

// Store owns the durable icon collection and the active-selection pointer. It
// is the only writer of the database; every mutation is a serialized
// read-modify-write that leaves all collection invariants intact.
type Store struct {
	db       *sql.DB
	path     string
	maxIcons int
	logger   *slog.Logger

	// mu serializes mutating calls so concurrent add/remove from multiple
	// clients cannot lose updates between the read and the write.
	mu       sync.Mutex
	applier  Applier
	notifier Notifier
}

// Open initializes or connects to the icon database and verifies the schema.
func Open(cfg *config.Config) (*Store, error) {
	if err := cfg.EnsureDirectories(); err != nil {
		return nil, fmt.Errorf("ensure directories: %w", err)
	}

	dbPath := filepath.Join(cfg.Paths.DataDir, "icons.db")
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA foreign_keys = ON",
		"PRAGMA busy_timeout = 5000",
	}
	for _, pragma := range pragmas {
		if _, execErr := db.Exec(pragma); execErr != nil {
			_ = db.Close()
			return nil, fmt.Errorf("apply pragma %q: %w", pragma, execErr)
		}
	}

	store := &Store{
		db:       db,
		path:     dbPath,
		maxIcons: cfg.Limits.MaxIcons,
		logger:   logging.NewNop(),
	}
	if err := store.initSchema(context.Background()); err != nil {
		_ = db.Close()
		return nil, err
	}

	return store, nil
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// Path returns the database file location.
func (s *Store) Path() string { return s.path }

// SetLogger attaches a logger used for mutation tracing.
func (s *Store) SetLogger(logger *slog.Logger) {
	if logger == nil {
		logger = logging.NewNop()
	}
	s.logger = logging.NewComponentLogger(logger, "store")
}

// SetApplier wires the platform capability that publishes the active icon.
func (s *Store) SetApplier(applier Applier) { s.applier = applier }

// SetNotifier wires the change fan-out invoked after every committed mutation.
func (s *Store) SetNotifier(notifier Notifier) { s.notifier = notifier }

// List returns a snapshot of the collection: records in insertion order, the
// active selection, and the current revision.
func (s *Store) List(ctx context.Context) (*CollectionState, error) {
	ctx = ensureContext(ctx)
	return s.readState(ctx, s.db)
}

// Add validates the asset set, synthesizes a fresh record, and appends it.
// It fails with a CapacityError when the collection is full; the capacity
// check runs against the row count inside the same transaction that inserts.
func (s *Store) Add(ctx context.Context, assets Assets, name string) (*Record, error) {
	ctx = ensureContext(ctx)
	if err := CheckSizes(assets.Sizes); err != nil {
		return nil, err
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, errors.New("icon name must not be empty")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	record := Record{
		ID:          uuid.NewString(),
		Name:        name,
		MediaKind:   assets.MediaKind,
		SourceImage: assets.SourceImage,
		Sizes:       assets.Sizes,
		CreatedAt:   time.Now().UTC(),
	}

	sizesJSON, err := json.Marshal(record.Sizes)
	if err != nil {
		return nil, fmt.Errorf("marshal sizes: %w", err)
	}

	err = s.withTx(ctx, func(tx *sql.Tx) error {
		var count int
		if err := tx.QueryRowContext(ctx, "SELECT COUNT(1) FROM icons").Scan(&count); err != nil {
			return fmt.Errorf("count icons: %w", err)
		}
		if count >= s.maxIcons {
			return &CapacityError{Limit: s.maxIcons}
		}

		_, err := tx.ExecContext(ctx,
			`INSERT INTO icons (id, name, media_kind, source_image, sizes_json, created_at)
             VALUES (?, ?, ?, ?, ?, ?)`,
			record.ID,
			record.Name,
			string(record.MediaKind),
			record.SourceImage,
			string(sizesJSON),
			record.CreatedAt.Format(time.RFC3339Nano),
		)
		if err != nil {
			return fmt.Errorf("insert icon: %w", err)
		}
		return bumpRevision(ctx, tx)
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("icon added",
		logging.String("id", record.ID),
		logging.String("name", record.Name),
		logging.String("kind", string(record.MediaKind)))
	s.publish(ctx)
	return &record, nil
}

// SetActive switches the active selection to the default sentinel or an
// existing record id and publishes the corresponding icon to the platform.
// Selecting the already-active id succeeds and leaves the state unchanged.
func (s *Store) SetActive(ctx context.Context, selector string) error {
	ctx = ensureContext(ctx)
	selector = strings.TrimSpace(selector)
	if selector == "" {
		return &NotFoundError{ID: selector}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	var target *Record
	changed := false
	err := s.withTx(ctx, func(tx *sql.Tx) error {
		if selector != DefaultSelection {
			record, err := fetchRecord(ctx, tx, selector)
			if err != nil {
				return err
			}
			target = record
		}

		current, err := readSetting(ctx, tx, "active_icon_id")
		if err != nil {
			return err
		}
		if current == selector {
			return nil
		}

		changed = true
		if err := writeSetting(ctx, tx, "active_icon_id", selector); err != nil {
			return err
		}
		return bumpRevision(ctx, tx)
	})
	if err != nil {
		return err
	}
	if !changed {
		return nil
	}

	s.logger.Info("active icon switched", logging.String("selector", selector))
	s.publish(ctx)
	return s.applyActive(ctx, target)
}

// Remove deletes a record. When the removed record is the active selection the
// selection resets to the default sentinel inside the same transaction, so no
// reader ever observes a dangling reference.
func (s *Store) Remove(ctx context.Context, id string) error {
	ctx = ensureContext(ctx)

	s.mu.Lock()
	defer s.mu.Unlock()

	wasActive := false
	err := s.withTx(ctx, func(tx *sql.Tx) error {
		if _, err := fetchRecord(ctx, tx, id); err != nil {
			return err
		}

		active, err := readSetting(ctx, tx, "active_icon_id")
		if err != nil {
			return err
		}
		wasActive = active == id

		if _, err := tx.ExecContext(ctx, "DELETE FROM icons WHERE id = ?", id); err != nil {
			return fmt.Errorf("delete icon: %w", err)
		}
		if wasActive {
			if err := writeSetting(ctx, tx, "active_icon_id", DefaultSelection); err != nil {
				return err
			}
		}
		return bumpRevision(ctx, tx)
	})
	if err != nil {
		return err
	}

	s.logger.Info("icon removed",
		logging.String("id", id),
		logging.Bool("was_active", wasActive))
	s.publish(ctx)
	if wasActive {
		return s.applyActive(ctx, nil)
	}
	return nil
}

// Revision returns the current change revision without loading the records.
func (s *Store) Revision(ctx context.Context) (int64, error) {
	ctx = ensureContext(ctx)
	value, err := readSettingDB(ctx, s.db, "revision")
	if err != nil {
		return 0, err
	}
	revision, err := strconv.ParseInt(value, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("parse revision %q: %w", value, err)
	}
	return revision, nil
}

func (s *Store) applyActive(ctx context.Context, record *Record) error {
	if s.applier == nil {
		return nil
	}
	if err := s.applier.Apply(ctx, record); err != nil {
		s.logger.Warn("apply active icon failed", logging.Error(err))
		return fmt.Errorf("apply active icon: %w", err)
	}
	return nil
}

// publish reads a fresh snapshot under the mutation lock and hands it to the
// notifier. Failures to read the snapshot are logged, not propagated; the
// mutation itself already committed.
func (s *Store) publish(ctx context.Context) {
	if s.notifier == nil {
		return
	}
	state, err := s.readState(ctx, s.db)
	if err != nil {
		s.logger.Warn("read state for notification failed", logging.Error(err))
		return
	}
	s.notifier.Publish(*state)
}

type querier interface {
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

func (s *Store) readState(ctx context.Context, q querier) (*CollectionState, error) {
	rows, err := q.QueryContext(ctx,
		"SELECT id, name, media_kind, source_image, sizes_json, created_at FROM icons ORDER BY rowid")
	if err != nil {
		return nil, fmt.Errorf("query icons: %w", err)
	}
	defer rows.Close()

	var records []Record
	for rows.Next() {
		record, err := scanRecord(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, *record)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate icons: %w", err)
	}

	active, err := readSettingDB(ctx, q, "active_icon_id")
	if err != nil {
		return nil, err
	}
	revisionValue, err := readSettingDB(ctx, q, "revision")
	if err != nil {
		return nil, err
	}
	revision, err := strconv.ParseInt(revisionValue, 10, 64)
	if err != nil {
		return nil, fmt.Errorf("parse revision %q: %w", revisionValue, err)
	}

	return &CollectionState{Records: records, Active: active, Revision: revision}, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanRecord(row rowScanner) (*Record, error) {
	var (
		record    Record
		kind      string
		sizesJSON string
		createdAt string
	)
	if err := row.Scan(&record.ID, &record.Name, &kind, &record.SourceImage, &sizesJSON, &createdAt); err != nil {
		return nil, fmt.Errorf("scan icon: %w", err)
	}
	record.MediaKind = mediaKindFromString(kind)
	if err := json.Unmarshal([]byte(sizesJSON), &record.Sizes); err != nil {
		return nil, fmt.Errorf("unmarshal sizes: %w", err)
	}
	parsed, err := time.Parse(time.RFC3339Nano, createdAt)
	if err != nil {
		return nil, fmt.Errorf("parse created_at %q: %w", createdAt, err)
	}
	record.CreatedAt = parsed
	return &record, nil
}

func fetchRecord(ctx context.Context, tx *sql.Tx, id string) (*Record, error) {
	row := tx.QueryRowContext(ctx,
		"SELECT id, name, media_kind, source_image, sizes_json, created_at FROM icons WHERE id = ?", id)
	record, err := scanRecord(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, &NotFoundError{ID: id}
		}
		return nil, err
	}
	return record, nil
}

func readSetting(ctx context.Context, tx *sql.Tx, key string) (string, error) {
	return readSettingDB(ctx, tx, key)
}

func readSettingDB(ctx context.Context, q querier, key string) (string, error) {
	var value string
	err := q.QueryRowContext(ctx, "SELECT value FROM settings WHERE key = ?", key).Scan(&value)
	if err != nil {
		return "", fmt.Errorf("read setting %q: %w", key, err)
	}
	return value, nil
}

func writeSetting(ctx context.Context, tx *sql.Tx, key, value string) error {
	if _, err := tx.ExecContext(ctx, "UPDATE settings SET value = ? WHERE key = ?", value, key); err != nil {
		return fmt.Errorf("write setting %q: %w", key, err)
	}
	return nil
}

func bumpRevision(ctx context.Context, tx *sql.Tx) error {
	if _, err := tx.ExecContext(ctx,
		"UPDATE settings SET value = CAST(CAST(value AS INTEGER) + 1 AS TEXT) WHERE key = 'revision'"); err != nil {
		return fmt.Errorf("bump revision: %w", err)
	}
	return nil
}
