package asyncdb

import (
	"database/sql"
	"fmt"
	"strings"
)

// IsolationLevel transaction isolation level.
// The numeric value of every concrete level equals the database/sql isolation code.
type IsolationLevel int

const (
	// IsolationDefault means "leave the connection's isolation level unchanged".
	IsolationDefault IsolationLevel = -1
	// IsolationReadUncommitted READ UNCOMMITTED.
	IsolationReadUncommitted = IsolationLevel(sql.LevelReadUncommitted)
	// IsolationReadCommitted READ COMMITTED.
	IsolationReadCommitted = IsolationLevel(sql.LevelReadCommitted)
	// IsolationRepeatableRead REPEATABLE READ.
	IsolationRepeatableRead = IsolationLevel(sql.LevelRepeatableRead)
	// IsolationSerializable SERIALIZABLE.
	IsolationSerializable = IsolationLevel(sql.LevelSerializable)
)

// IsolationOf returns the level with the given native code.
// Unknown codes map to IsolationDefault.
func IsolationOf(code int) IsolationLevel {
	switch l := IsolationLevel(code); l {
	case IsolationReadUncommitted, IsolationReadCommitted, IsolationRepeatableRead, IsolationSerializable:
		return l
	default:
		return IsolationDefault
	}
}

// Code returns the native isolation code.
func (l IsolationLevel) Code() int {
	return int(l)
}

// IsDefault reports whether the level means "no change".
func (l IsolationLevel) IsDefault() bool {
	return IsolationOf(int(l)) == IsolationDefault
}

// SQL returns the level as it is written in SET TRANSACTION statements.
// Returns an empty string for IsolationDefault.
func (l IsolationLevel) SQL() string {
	switch l {
	case IsolationReadUncommitted:
		return "READ UNCOMMITTED"
	case IsolationReadCommitted:
		return "READ COMMITTED"
	case IsolationRepeatableRead:
		return "REPEATABLE READ"
	case IsolationSerializable:
		return "SERIALIZABLE"
	default:
		return ""
	}
}

// TxOptionsLevel returns the level for sql.TxOptions.
func (l IsolationLevel) TxOptionsLevel() sql.IsolationLevel {
	if l.IsDefault() {
		return sql.LevelDefault
	}
	return sql.IsolationLevel(l)
}

func (l IsolationLevel) String() string {
	if l.IsDefault() {
		return "DEFAULT"
	}
	return l.SQL()
}

// ParseIsolation parses the textual level name, e.g. "read committed" or "SERIALIZABLE".
func ParseIsolation(s string) (IsolationLevel, error) {
	switch strings.ToUpper(strings.Join(strings.Fields(s), " ")) {
	case "READ UNCOMMITTED":
		return IsolationReadUncommitted, nil
	case "READ COMMITTED":
		return IsolationReadCommitted, nil
	case "REPEATABLE READ":
		return IsolationRepeatableRead, nil
	case "SERIALIZABLE":
		return IsolationSerializable, nil
	case "DEFAULT", "":
		return IsolationDefault, nil
	default:
		return IsolationDefault, fmt.Errorf("unknown isolation level %q", s)
	}
}
