package iface

// Client is a goroutine-safe, minimal, and pooled database client. All
// query helpers convert internal failures into ok-style results rather
// than surfacing raw driver errors to callers.
type Client interface {
	// Close will close all open sessions with the remote database server.
	Close()

	// QueryOne runs the statement and returns the first result row. The
	// second return value is false if the statement failed or produced
	// no rows.
	QueryOne(query string, args ...interface{}) (Row, bool)

	// QueryAll runs the statement and returns every result row. The
	// second return value is false if the statement failed.
	QueryAll(query string, args ...interface{}) ([]Row, bool)

	// Exec runs the statement and commits. Both an execution failure
	// and a commit failure yield false.
	Exec(query string, args ...interface{}) bool

	// Transaction runs the statements in order on a single session. The
	// first failing statement rolls the transaction back and returns
	// false without running later statements.
	Transaction(statements ...Statement) bool

	// QueryBatch runs each query on its own session through a bounded
	// worker pool and returns one result slot per query, in input
	// order. A query that fails or times out yields a nil slot without
	// affecting its siblings. Each slot holds a Row, a []Row (when All
	// was set), or nil.
	QueryBatch(queries ...BatchQuery) []interface{}

	// TableExists reports whether the named table exists in the
	// configured database.
	TableExists(name string) bool
}

// Statement bundles a query and its arguments together to be used in a
// transaction.
type Statement struct {
	Query string
	Args  []interface{}
}

// BatchQuery describes one query of a concurrent batch.
type BatchQuery struct {
	Query string
	Args  []interface{}
	All   bool
}
