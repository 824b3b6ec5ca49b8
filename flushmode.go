package asyncdb

// FlushMode controls when a session writes queued changes to the database.
// Modes are ordered: FlushManual < FlushCommit < FlushAuto < FlushAlways.
type FlushMode int

const (
	// FlushManual changes are written only on an explicit Flush.
	FlushManual FlushMode = iota
	// FlushCommit changes are written on commit.
	FlushCommit
	// FlushAuto changes are written on commit and before queries.
	FlushAuto
	// FlushAlways changes are written before every statement.
	FlushAlways
)

func (m FlushMode) String() string {
	switch m {
	case FlushManual:
		return "MANUAL"
	case FlushCommit:
		return "COMMIT"
	case FlushAuto:
		return "AUTO"
	case FlushAlways:
		return "ALWAYS"
	default:
		return "UNKNOWN"
	}
}
