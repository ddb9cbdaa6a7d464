package iface

// Row is a single result row, keyed by column name.
type Row map[string]interface{}

// Conn abstracts a single, feature-minimal session with the database.
type Conn interface {
	// Close the session with the remote database server.
	Close() error

	// Ping issues a cheap health probe against the session.
	Ping() error

	// Query runs a statement on the remote database server and returns
	// all of its result rows.
	Query(query string, args ...interface{}) ([]Row, error)

	// Exec runs a statement on the remote database server and returns
	// the number of affected rows.
	Exec(query string, args ...interface{}) (int64, error)
}
