package elainadb

import (
	"database/sql"

	"github.com/go-sql-driver/mysql"

	"github.com/lengxi-root/elainadb/iface"
)

type (
	// Conn abstracts a single, feature-minimal session with the database.
	Conn = iface.Conn

	// Row is a single result row, keyed by column name.
	Row = iface.Row

	sqlShim struct {
		db *sql.DB
	}

	// DialFunc creates a session with the database or returns an error.
	DialFunc func() (Conn, error)
)

func makeDialer(config *clientConfig) DialFunc {
	return func() (Conn, error) {
		cfg := mysql.NewConfig()
		cfg.Net = "tcp"
		cfg.Addr = config.addr
		cfg.User = config.user
		cfg.Passwd = config.password
		cfg.DBName = config.database
		cfg.Timeout = config.connectTimeout
		cfg.ReadTimeout = config.readTimeout
		cfg.WriteTimeout = config.writeTimeout
		cfg.ParseTime = true

		db, err := sql.Open("mysql", cfg.FormatDSN())
		if err != nil {
			return nil, err
		}

		// Each shim owns exactly one session. Reuse and lifetime are the
		// pool's responsibility, not database/sql's.
		db.SetMaxOpenConns(1)
		db.SetMaxIdleConns(1)
		db.SetConnMaxLifetime(0)

		if err := db.Ping(); err != nil {
			db.Close()
			return nil, err
		}

		// Statements run in explicit transactions so that the scope
		// wrapper can commit or roll back as a unit.
		if _, err := db.Exec("SET autocommit=0"); err != nil {
			db.Close()
			return nil, err
		}

		return &sqlShim{db}, nil
	}
}

func (s *sqlShim) Close() error {
	return s.db.Close()
}

func (s *sqlShim) Ping() error {
	return s.db.Ping()
}

func (s *sqlShim) Query(query string, args ...interface{}) ([]Row, error) {
	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, err
	}

	defer rows.Close()

	columns, err := rows.Columns()
	if err != nil {
		return nil, err
	}

	results := []Row{}
	for rows.Next() {
		values := make([]interface{}, len(columns))
		pointers := make([]interface{}, len(columns))
		for i := range values {
			pointers[i] = &values[i]
		}

		if err := rows.Scan(pointers...); err != nil {
			return nil, err
		}

		row := Row{}
		for i, column := range columns {
			row[column] = normalizeValue(values[i])
		}

		results = append(results, row)
	}

	return results, rows.Err()
}

func (s *sqlShim) Exec(query string, args ...interface{}) (int64, error) {
	result, err := s.db.Exec(query, args...)
	if err != nil {
		return 0, err
	}

	return result.RowsAffected()
}

// The driver hands text column values back as byte slices. Collaborators
// expect plain strings.
func normalizeValue(value interface{}) interface{} {
	if b, ok := value.([]byte); ok {
		return string(b)
	}

	return value
}
