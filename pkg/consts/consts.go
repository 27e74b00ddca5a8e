package consts

import "os"

const (
	// ModeDir is the standard file mode for creating directories
	ModeDir = os.FileMode(0o755)

	// ModeFile is the standard file mode for creating files
	ModeFile = os.FileMode(0o644)

	// DefaultSchema is the schema a table belongs to when its declaration
	// carries no dotted prefix.
	DefaultSchema = "public"

	// StateFileName is the name of the state store file, resolved relative
	// to the project's config directory.
	StateFileName = "sqlsync-state.json"

	// AppliedLedgerFileName is the name of the applied-migration ledger file.
	AppliedLedgerFileName = ".sqlsync-local-applied.txt"

	// AppliedLedgerChainFileName is the companion tamper-evidence chain
	// file for the applied-migration ledger.
	AppliedLedgerChainFileName = ".sqlsync-local-applied.sum"

	// ConfigFileName is the project configuration file sqlsync looks for
	// in the project root.
	ConfigFileName = "sqlsync.yaml"
)
