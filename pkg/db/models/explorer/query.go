package explorer

// ResponseShape selects which wire encoding a caller receives:
// full named-object rows or compact positional arrays.
type ResponseShape string

const (
	ShapeObject ResponseShape = "object"
	ShapeArray  ResponseShape = "array"
)

// ParseResponseShape maps a responseType query parameter to a shape.
// Unknown values fall back to the object form; an unsupported toggle is
// treated as absent, never as an error.
func ParseResponseShape(s string) ResponseShape {
	if s == string(ShapeArray) {
		return ShapeArray
	}
	return ShapeObject
}

// Range is an inclusive [Start, End] interval over cycle numbers or
// epoch-millisecond timestamps.
type Range struct {
	Start int64
	End   int64
}

// AccountQuery filters account reads. Every field is optional; absent
// filters are simply omitted from the predicate. Limit 0 means unbounded.
type AccountQuery struct {
	AccountID      string
	Type           *AccountType
	CycleRange     *Range
	TimestampRange *Range
	Skip           int
	Limit          int
}

// HasRange reports whether any range filter is present. Range scans return
// history oldest-first; rangeless queries return the latest rows first.
func (q AccountQuery) HasRange() bool {
	return q.CycleRange != nil || q.TimestampRange != nil
}

// TransactionQuery filters transaction reads. AccountID matches either side
// of the transfer (txFrom or txTo).
type TransactionQuery struct {
	AccountID      string
	Type           *TransactionType
	CycleRange     *Range
	TimestampRange *Range
	Skip           int
	Limit          int
}

// HasRange reports whether any range filter is present.
func (q TransactionQuery) HasRange() bool {
	return q.CycleRange != nil || q.TimestampRange != nil
}
