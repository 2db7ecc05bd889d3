package database

// Dialect holds the SQL fragments that differ between the supported stores.
// Anything that is not Oracle is treated as SQLite, which includes sqlmock in tests.
type Dialect struct {
	driver string
}

func NewDialect(driverName string) Dialect {
	return Dialect{driver: driverName}
}

func (d Dialect) IsOracle() bool {
	return d.driver == DriverOracle
}

// RandomOrder is an ORDER BY expression that shuffles rows.
func (d Dialect) RandomOrder() string {
	if d.IsOracle() {
		return "DBMS_RANDOM.VALUE"
	}
	return "RANDOM()"
}

// Paginate appends a limit/offset clause and its arguments.
func (d Dialect) Paginate(query string, args []interface{}, limit, offset int) (string, []interface{}) {
	if d.IsOracle() {
		return query + " OFFSET ? ROWS FETCH NEXT ? ROWS ONLY", append(args, offset, limit)
	}
	return query + " LIMIT ? OFFSET ?", append(args, limit, offset)
}

// Limit appends a row cap.
func (d Dialect) Limit(query string, args []interface{}, limit int) (string, []interface{}) {
	if d.IsOracle() {
		return query + " FETCH FIRST ? ROWS ONLY", append(args, limit)
	}
	return query + " LIMIT ?", append(args, limit)
}
