package halcyon

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	// Register sqlite driver
	_ "modernc.org/sqlite"
)

//go:embed sql/*.sql
var schemas embed.FS

// DefaultSource is the source column used when none is given.
const DefaultSource = "default"

// DBDatasource stores templates in a SQLite table. Rows are keyed by source
// and "dir/name.ext", so several themes can share one database.
type DBDatasource struct {
	db     *sql.DB
	source string
	owned  bool
}

var (
	_ Datasource = (*DBDatasource)(nil)
	_ Tombstoner = (*DBDatasource)(nil)
)

// OpenDB opens the SQLite database at path, creating the schema if needed.
// Close releases the connection.
func OpenDB(path, source string) (*DBDatasource, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open database %s: %w", path, err)
	}
	for _, pragma := range []string{
		`PRAGMA journal_mode=WAL`,
		`PRAGMA busy_timeout=5000`,
		`PRAGMA synchronous=NORMAL`,
	} {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, fmt.Errorf("%s: %w", pragma, err)
		}
	}

	d, err := NewDBDatasource(db, source)
	if err != nil {
		db.Close()
		return nil, err
	}
	d.owned = true
	return d, nil
}

// NewDBDatasource uses an existing connection. The caller keeps ownership
// of db.
func NewDBDatasource(db *sql.DB, source string) (*DBDatasource, error) {
	if source == "" {
		source = DefaultSource
	}
	if err := migrate(db); err != nil {
		return nil, err
	}
	return &DBDatasource{db: db, source: source}, nil
}

// migrate executes the embedded schema files in name order. Each file uses
// IF NOT EXISTS so it can be run on every open.
func migrate(db *sql.DB) error {
	entries, err := fs.ReadDir(schemas, "sql")
	if err != nil {
		return fmt.Errorf("read schema directory: %w", err)
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].Name() < entries[j].Name() })
	for _, e := range entries {
		data, err := schemas.ReadFile("sql/" + e.Name())
		if err != nil {
			return fmt.Errorf("read %s: %w", e.Name(), err)
		}
		if _, err := db.Exec(string(data)); err != nil {
			return fmt.Errorf("exec %s: %w", e.Name(), err)
		}
	}
	return nil
}

// Close closes the database if OpenDB opened it.
func (d *DBDatasource) Close() error {
	if !d.owned {
		return nil
	}
	return d.db.Close()
}

// Name returns "db".
func (d *DBDatasource) Name() string { return "db" }

// Source returns the source key rows are stored under.
func (d *DBDatasource) Source() string { return d.source }

func key(dir, name, ext string) string { return dir + "/" + name + "." + ext }

// splitKey is the inverse of key.
func splitKey(dir, p string) (string, string) {
	file := strings.TrimPrefix(p, dir+"/")
	i := strings.LastIndexByte(file, '.')
	if i < 0 {
		return file, ""
	}
	return file[:i], file[i+1:]
}

const recordColumns = `path, content, file_size, updated_at`

func (d *DBDatasource) scan(dir string, row interface{ Scan(...any) error }) (*Record, error) {
	var (
		p       string
		content string
		size    int64
		updated int64
	)
	if err := row.Scan(&p, &content, &size, &updated); err != nil {
		return nil, err
	}
	name, ext := splitKey(dir, p)
	return &Record{
		Dir:     dir,
		Name:    name,
		Ext:     ext,
		Content: content,
		Size:    size,
		MTime:   time.Unix(0, updated),
		Source:  d.Name(),
	}, nil
}

// SelectOne reads one live template.
func (d *DBDatasource) SelectOne(ctx context.Context, dir, name, ext string) (*Record, error) {
	if err := ValidateName(dir, name, ext); err != nil {
		return nil, err
	}
	row := d.db.QueryRowContext(ctx,
		`SELECT `+recordColumns+` FROM templates
		 WHERE source = ? AND path = ? AND deleted_at IS NULL`,
		d.source, key(dir, name, ext))
	r, err := d.scan(dir, row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, notFound(dir, name, ext)
	}
	if err != nil {
		return nil, fmt.Errorf("select template: %w", err)
	}
	return r, nil
}

// Select lists the live templates in dir, sorted by name.
func (d *DBDatasource) Select(ctx context.Context, dir string, opts SelectOptions) ([]Record, error) {
	if !dirNameRe.MatchString(dir) {
		return nil, fmt.Errorf("%w: directory %q", ErrInvalidName, dir)
	}
	rows, err := d.db.QueryContext(ctx,
		`SELECT `+recordColumns+` FROM templates
		 WHERE source = ? AND dir = ? AND deleted_at IS NULL
		 ORDER BY path`,
		d.source, dir)
	if err != nil {
		return nil, fmt.Errorf("select %s: %w", dir, err)
	}
	defer rows.Close()

	var out []Record
	for rows.Next() {
		r, err := d.scan(dir, rows)
		if err != nil {
			return nil, fmt.Errorf("select %s: %w", dir, err)
		}
		if ValidateName(dir, r.Name, r.Ext) != nil || !opts.match(r.Name, r.Ext) {
			continue
		}
		if opts.SkipContent {
			r.Content = ""
		}
		out = append(out, *r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("select %s: %w", dir, err)
	}
	return out, nil
}

// state reports whether a row exists for the key and whether it is live.
func state(ctx context.Context, tx *sql.Tx, source, p string) (found, live bool, err error) {
	var deleted sql.NullInt64
	err = tx.QueryRowContext(ctx,
		`SELECT deleted_at FROM templates WHERE source = ? AND path = ?`,
		source, p).Scan(&deleted)
	if errors.Is(err, sql.ErrNoRows) {
		return false, false, nil
	}
	if err != nil {
		return false, false, err
	}
	return true, !deleted.Valid, nil
}

// Insert creates a template, replacing a tombstone of the same name.
func (d *DBDatasource) Insert(ctx context.Context, dir, name, ext, content string) (*Record, error) {
	if err := ValidateName(dir, name, ext); err != nil {
		return nil, err
	}
	p := key(dir, name, ext)

	err := d.inTx(ctx, func(tx *sql.Tx) error {
		found, live, err := state(ctx, tx, d.source, p)
		if err != nil {
			return err
		}
		now := time.Now().UnixNano()
		switch {
		case live:
			return exists(dir, name, ext)
		case found:
			_, err = tx.ExecContext(ctx,
				`UPDATE templates SET content = ?, file_size = ?, updated_at = ?, deleted_at = NULL
				 WHERE source = ? AND path = ?`,
				content, len(content), now, d.source, p)
		default:
			_, err = tx.ExecContext(ctx,
				`INSERT INTO templates (id, source, dir, path, content, file_size, updated_at)
				 VALUES (?, ?, ?, ?, ?, ?, ?)`,
				uuid.NewString(), d.source, dir, p, content, len(content), now)
		}
		return err
	})
	if err != nil {
		return nil, wrapWrite("insert", err)
	}
	return d.SelectOne(ctx, dir, name, ext)
}

// Update rewrites a template, renaming it when opts names a different old
// name or extension.
func (d *DBDatasource) Update(ctx context.Context, dir, name, ext, content string, opts UpdateOptions) (*Record, error) {
	if err := ValidateName(dir, name, ext); err != nil {
		return nil, err
	}
	oldName, oldExt := opts.resolve(name, ext)
	if err := ValidateName(dir, oldName, oldExt); err != nil {
		return nil, err
	}
	oldPath, newPath := key(dir, oldName, oldExt), key(dir, name, ext)

	err := d.inTx(ctx, func(tx *sql.Tx) error {
		_, live, err := state(ctx, tx, d.source, oldPath)
		if err != nil {
			return err
		}
		if !live {
			return notFound(dir, oldName, oldExt)
		}
		if oldPath != newPath {
			found, live, err := state(ctx, tx, d.source, newPath)
			if err != nil {
				return err
			}
			if live {
				return exists(dir, name, ext)
			}
			if found {
				if _, err := tx.ExecContext(ctx,
					`DELETE FROM templates WHERE source = ? AND path = ?`, d.source, newPath); err != nil {
					return err
				}
			}
		}
		_, err = tx.ExecContext(ctx,
			`UPDATE templates SET path = ?, content = ?, file_size = ?, updated_at = ?
			 WHERE source = ? AND path = ?`,
			newPath, content, len(content), time.Now().UnixNano(), d.source, oldPath)
		return err
	})
	if err != nil {
		return nil, wrapWrite("update", err)
	}
	return d.SelectOne(ctx, dir, name, ext)
}

// Delete removes a live template. Tombstones are left alone.
func (d *DBDatasource) Delete(ctx context.Context, dir, name, ext string) error {
	if err := ValidateName(dir, name, ext); err != nil {
		return err
	}
	res, err := d.db.ExecContext(ctx,
		`DELETE FROM templates WHERE source = ? AND path = ? AND deleted_at IS NULL`,
		d.source, key(dir, name, ext))
	if err != nil {
		return fmt.Errorf("delete template: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return notFound(dir, name, ext)
	}
	return nil
}

// Tombstone marks a template deleted, creating the row if there is none.
func (d *DBDatasource) Tombstone(ctx context.Context, dir, name, ext string) error {
	if err := ValidateName(dir, name, ext); err != nil {
		return err
	}
	now := time.Now().UnixNano()
	_, err := d.db.ExecContext(ctx,
		`INSERT INTO templates (id, source, dir, path, content, file_size, updated_at, deleted_at)
		 VALUES (?, ?, ?, ?, '', 0, ?, ?)
		 ON CONFLICT (source, path) DO UPDATE
		 SET content = '', file_size = 0, updated_at = excluded.updated_at, deleted_at = excluded.deleted_at`,
		uuid.NewString(), d.source, dir, key(dir, name, ext), now, now)
	if err != nil {
		return fmt.Errorf("tombstone template: %w", err)
	}
	return nil
}

// Tombstoned returns the "name.ext" of each tombstone in dir.
func (d *DBDatasource) Tombstoned(ctx context.Context, dir string) (map[string]bool, error) {
	rows, err := d.db.QueryContext(ctx,
		`SELECT path FROM templates WHERE source = ? AND dir = ? AND deleted_at IS NOT NULL`,
		d.source, dir)
	if err != nil {
		return nil, fmt.Errorf("select tombstones: %w", err)
	}
	defer rows.Close()

	out := make(map[string]bool)
	for rows.Next() {
		var p string
		if err := rows.Scan(&p); err != nil {
			return nil, fmt.Errorf("select tombstones: %w", err)
		}
		out[strings.TrimPrefix(p, dir+"/")] = true
	}
	return out, rows.Err()
}

// LastModified returns when a live template was last written.
func (d *DBDatasource) LastModified(ctx context.Context, dir, name, ext string) (time.Time, error) {
	if err := ValidateName(dir, name, ext); err != nil {
		return time.Time{}, err
	}
	var updated int64
	err := d.db.QueryRowContext(ctx,
		`SELECT updated_at FROM templates WHERE source = ? AND path = ? AND deleted_at IS NULL`,
		d.source, key(dir, name, ext)).Scan(&updated)
	if errors.Is(err, sql.ErrNoRows) {
		return time.Time{}, notFound(dir, name, ext)
	}
	if err != nil {
		return time.Time{}, fmt.Errorf("select template: %w", err)
	}
	return time.Unix(0, updated), nil
}

func (d *DBDatasource) inTx(ctx context.Context, fn func(*sql.Tx) error) error {
	tx, err := d.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	if err := fn(tx); err != nil {
		tx.Rollback()
		return err
	}
	return tx.Commit()
}

// wrapWrite adds context to database errors, leaving the package's own
// sentinel errors readable.
func wrapWrite(op string, err error) error {
	if errors.Is(err, ErrNotFound) || errors.Is(err, ErrExists) {
		return err
	}
	return fmt.Errorf("%s template: %w", op, err)
}
