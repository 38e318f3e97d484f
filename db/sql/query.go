package sql

type (
	// query is a message that is sent to the database.
	query interface {
		// cmd is the injection-safe message to send to the database.
		cmd() string
		// args are the user-provided properties of the message which should be escaped.
		args() []interface{}
	}

	// statement is a query with arguments.
	statement struct {
		text      string
		arguments []interface{}
	}

	// rawQuery is a query that has no arguments.
	rawQuery string
)

// clearQuery removes all rows.
const clearQuery rawQuery = "DELETE FROM tile_storage"

// getQuery selects the value for the key.
func getQuery(key string) statement {
	return statement{
		text:      "SELECT storage_value FROM tile_storage WHERE storage_key = $1",
		arguments: []interface{}{key},
	}
}

// setQuery inserts or replaces the value for the key.
func setQuery(key, value string) statement {
	return statement{
		text:      "INSERT INTO tile_storage (storage_key, storage_value) VALUES ($1, $2) ON CONFLICT (storage_key) DO UPDATE SET storage_value = excluded.storage_value",
		arguments: []interface{}{key, value},
	}
}

func (s statement) cmd() string {
	return s.text
}

func (s statement) args() []interface{} {
	return s.arguments
}

func (r rawQuery) cmd() string {
	return string(r)
}

// args returns nil for the raw SQL query.
func (rawQuery) args() []interface{} {
	return nil
}
