package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"io/fs"
	"path"
	"regexp"
	"sort"
	"strings"
	"time"
	"unicode/utf8"

	_ "modernc.org/sqlite"
)

const (
	sqliteDriverName        = "sqlite"
	sqliteReadOnlyDSNFormat = "file:%s?mode=ro"
	// DefaultSQLiteTable is the table consulted when no table option is given.
	DefaultSQLiteTable = "entries"

	sqliteRootPath = "/"

	errorOpenDatabaseFormat = "opening sqlite database %s: %w"
	errorInvalidTableFormat = "invalid sqlite table name %q"
	errorQueryPathFormat    = "querying %s: %w"
	errorScanRowFormat      = "scanning row for %s: %w"
)

var (
	_ FileSystem = (*SQLiteFileSystem)(nil)

	tableNamePattern = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)
)

// SQLiteFileSystem reads a directory hierarchy stored as rows of a SQLite table:
//
//	path TEXT PRIMARY KEY, is_dir INTEGER, size INTEGER,
//	created INTEGER NULL, modified INTEGER NULL, content BLOB
//
// Paths are slash separated and rooted at "/". Timestamps are unix seconds.
// A directory is either an explicit row with is_dir set or the prefix of some
// other row's path.
type SQLiteFileSystem struct {
	database *sql.DB
	table    string
}

type sqliteRow struct {
	isDirectory bool
	size        sql.NullInt64
	created     sql.NullInt64
	modified    sql.NullInt64
}

// NewSQLiteFileSystem opens databasePath read-only.
func NewSQLiteFileSystem(databasePath string, table string) (*SQLiteFileSystem, error) {
	if table == "" {
		table = DefaultSQLiteTable
	}
	if !tableNamePattern.MatchString(table) {
		return nil, fmt.Errorf(errorInvalidTableFormat, table)
	}
	database, openError := sql.Open(sqliteDriverName, fmt.Sprintf(sqliteReadOnlyDSNFormat, databasePath))
	if openError != nil {
		return nil, fmt.Errorf(errorOpenDatabaseFormat, databasePath, openError)
	}
	if pingError := database.Ping(); pingError != nil {
		database.Close()
		return nil, fmt.Errorf(errorOpenDatabaseFormat, databasePath, pingError)
	}
	return &SQLiteFileSystem{database: database, table: table}, nil
}

// Close releases the underlying database handle.
func (backend *SQLiteFileSystem) Close() error {
	return backend.database.Close()
}

func normalizeSQLitePath(value string) string {
	return path.Clean(sqliteRootPath + strings.TrimPrefix(value, sqliteRootPath))
}

// descendantPrefix is the path prefix shared by every row below directory.
func descendantPrefix(directory string) string {
	return strings.TrimSuffix(directory, sqliteRootPath) + sqliteRootPath
}

// descendantQuery selects the rows below a directory by a literal,
// case-sensitive prefix comparison.
func (backend *SQLiteFileSystem) descendantQuery(columns string, suffix string) string {
	return fmt.Sprintf(`SELECT %s FROM %s WHERE substr(path, 1, ?) = ?%s`, columns, backend.table, suffix)
}

func (backend *SQLiteFileSystem) lookup(value string) (sqliteRow, bool, error) {
	var row sqliteRow
	query := fmt.Sprintf(`SELECT is_dir, size, created, modified FROM %s WHERE path = ?`, backend.table)
	scanError := backend.database.QueryRow(query, value).Scan(&row.isDirectory, &row.size, &row.created, &row.modified)
	if errors.Is(scanError, sql.ErrNoRows) {
		return sqliteRow{}, false, nil
	}
	if scanError != nil {
		return sqliteRow{}, false, fmt.Errorf(errorQueryPathFormat, value, scanError)
	}
	return row, true, nil
}

func (backend *SQLiteFileSystem) hasDescendants(directory string) (bool, error) {
	prefix := descendantPrefix(directory)
	var marker int
	scanError := backend.database.QueryRow(backend.descendantQuery("1", " LIMIT 1"), utf8.RuneCountInString(prefix), prefix).Scan(&marker)
	if errors.Is(scanError, sql.ErrNoRows) {
		return false, nil
	}
	if scanError != nil {
		return false, fmt.Errorf(errorQueryPathFormat, directory, scanError)
	}
	return true, nil
}

// Resolve cleans value into its rooted form; the path need not exist.
func (backend *SQLiteFileSystem) Resolve(value string) (string, error) {
	return normalizeSQLitePath(value), nil
}

func (backend *SQLiteFileSystem) IsDir(value string) (bool, error) {
	normalized := normalizeSQLitePath(value)
	if normalized == sqliteRootPath {
		return true, nil
	}
	row, found, lookupError := backend.lookup(normalized)
	if lookupError != nil {
		return false, lookupError
	}
	if found {
		return row.isDirectory, nil
	}
	return backend.hasDescendants(normalized)
}

func (backend *SQLiteFileSystem) IsFile(value string) (bool, error) {
	row, found, lookupError := backend.lookup(normalizeSQLitePath(value))
	if lookupError != nil {
		return false, lookupError
	}
	return found && !row.isDirectory, nil
}

// List derives the immediate children of value from every row below it.
func (backend *SQLiteFileSystem) List(value string) ([]string, error) {
	directory := normalizeSQLitePath(value)
	isDirectory, classifyError := backend.IsDir(directory)
	if classifyError != nil {
		return nil, classifyError
	}
	if !isDirectory {
		isFile, fileError := backend.IsFile(directory)
		if fileError != nil {
			return nil, fileError
		}
		if isFile {
			return nil, fmt.Errorf(errorListDirectoryFormat, directory, ErrNotDirectory)
		}
		return nil, fmt.Errorf(errorListDirectoryFormat, directory, fs.ErrNotExist)
	}

	prefix := descendantPrefix(directory)
	rows, queryError := backend.database.Query(backend.descendantQuery("path", ""), utf8.RuneCountInString(prefix), prefix)
	if queryError != nil {
		return nil, fmt.Errorf(errorQueryPathFormat, directory, queryError)
	}
	defer rows.Close()

	seen := make(map[string]struct{})
	var children []string
	for rows.Next() {
		var descendant string
		if scanError := rows.Scan(&descendant); scanError != nil {
			return nil, fmt.Errorf(errorScanRowFormat, directory, scanError)
		}
		remainder, below := strings.CutPrefix(normalizeSQLitePath(descendant), prefix)
		if !below || remainder == "" {
			continue
		}
		childName, _, _ := strings.Cut(remainder, sqliteRootPath)
		if _, exists := seen[childName]; exists {
			continue
		}
		seen[childName] = struct{}{}
		children = append(children, backend.Join(directory, childName))
	}
	if iterationError := rows.Err(); iterationError != nil {
		return nil, fmt.Errorf(errorQueryPathFormat, directory, iterationError)
	}
	sort.Strings(children)
	return children, nil
}

func (backend *SQLiteFileSystem) Name(value string) string {
	return path.Base(normalizeSQLitePath(value))
}

func (backend *SQLiteFileSystem) Join(directory string, name string) string {
	return path.Join(normalizeSQLitePath(directory), name)
}

func (backend *SQLiteFileSystem) existingRow(value string) (sqliteRow, error) {
	normalized := normalizeSQLitePath(value)
	row, found, lookupError := backend.lookup(normalized)
	if lookupError != nil {
		return sqliteRow{}, lookupError
	}
	if !found {
		isDirectory, classifyError := backend.IsDir(normalized)
		if classifyError != nil {
			return sqliteRow{}, classifyError
		}
		if !isDirectory {
			return sqliteRow{}, fmt.Errorf(errorStatPathFormat, normalized, fs.ErrNotExist)
		}
		return sqliteRow{isDirectory: true}, nil
	}
	return row, nil
}

func (backend *SQLiteFileSystem) Size(value string) (int64, error) {
	row, rowError := backend.existingRow(value)
	if rowError != nil {
		return 0, rowError
	}
	return row.size.Int64, nil
}

func (backend *SQLiteFileSystem) Created(value string) (time.Time, error) {
	row, rowError := backend.existingRow(value)
	if rowError != nil {
		return time.Time{}, rowError
	}
	if !row.created.Valid {
		return time.Time{}, fmt.Errorf(errorStatPathFormat, value, ErrStatUnavailable)
	}
	return time.Unix(row.created.Int64, 0), nil
}

func (backend *SQLiteFileSystem) Modified(value string) (time.Time, error) {
	row, rowError := backend.existingRow(value)
	if rowError != nil {
		return time.Time{}, rowError
	}
	if !row.modified.Valid {
		return time.Time{}, fmt.Errorf(errorStatPathFormat, value, ErrStatUnavailable)
	}
	return time.Unix(row.modified.Int64, 0), nil
}

func (backend *SQLiteFileSystem) ReadLines(value string) ([]string, error) {
	normalized := normalizeSQLitePath(value)
	query := fmt.Sprintf(`SELECT is_dir, content FROM %s WHERE path = ?`, backend.table)
	var isDirectory bool
	var content []byte
	scanError := backend.database.QueryRow(query, normalized).Scan(&isDirectory, &content)
	if errors.Is(scanError, sql.ErrNoRows) {
		return nil, fmt.Errorf(errorReadFileFormat, normalized, fs.ErrNotExist)
	}
	if scanError != nil {
		return nil, fmt.Errorf(errorReadFileFormat, normalized, scanError)
	}
	if isDirectory {
		return nil, fmt.Errorf(errorReadFileFormat, normalized, ErrIsDirectory)
	}
	return splitLines(content)
}
