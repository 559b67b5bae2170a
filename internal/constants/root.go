package constants

// TaskStatus represents a task board column
type TaskStatus string

const (
	AppName           = "ecogoals"
	DefaultConfigPath = "~/.config/ecogoals/ecogoals.db"
	Version           = "v0.3.0"

	// KeyringTokenUser is the keyring account name under which the API
	// bearer token is stored.
	KeyringTokenUser = "api-token"
	// KeyringConnUser is the keyring account name for the PostgreSQL cache
	// connection string.
	KeyringConnUser = "database-connection"

	// Task Status constants (board columns)
	TaskStatusTodo       TaskStatus = "todo"
	TaskStatusInProgress TaskStatus = "inprogress"
	TaskStatusDone       TaskStatus = "done"

	// DefaultHabitColor is applied when the server record carries no color.
	DefaultHabitColor = "#22c55e"

	// HistoryDays is the default span of the habit log grid.
	HistoryDays = 30
)
