package explorer

import (
	"fmt"
	"strings"

	models "github.com/shardeum/explorerx/pkg/db/models/explorer"
)

// predicate accumulates AND-combined condition fragments with positional
// args. Each recognized filter contributes one fragment; absent filters are
// omitted entirely, so an empty filter set selects everything.
type predicate struct {
	conds []string
	args  []any
}

func (p *predicate) add(format string, vals ...any) {
	placeholders := make([]any, len(vals))
	for i, v := range vals {
		p.args = append(p.args, v)
		placeholders[i] = len(p.args)
	}
	p.conds = append(p.conds, fmt.Sprintf(format, placeholders...))
}

func (p *predicate) where() string {
	if len(p.conds) == 0 {
		return ""
	}
	return " WHERE " + strings.Join(p.conds, " AND ")
}

func accountPredicate(q models.AccountQuery) *predicate {
	p := &predicate{}
	if q.AccountID != "" {
		p.add("account_id = $%d", q.AccountID)
	}
	if q.Type != nil {
		p.add("account_type = $%d", string(*q.Type))
	}
	if q.CycleRange != nil {
		p.add("cycle_number >= $%d AND cycle_number <= $%d", q.CycleRange.Start, q.CycleRange.End)
	}
	if q.TimestampRange != nil {
		p.add("timestamp >= $%d AND timestamp <= $%d", q.TimestampRange.Start, q.TimestampRange.End)
	}
	return p
}

func transactionPredicate(q models.TransactionQuery) *predicate {
	p := &predicate{}
	if q.AccountID != "" {
		p.add("(tx_from = $%d OR tx_to = $%d)", q.AccountID, q.AccountID)
	}
	if q.Type != nil {
		p.add("transaction_type = $%d", string(*q.Type))
	}
	if q.CycleRange != nil {
		p.add("cycle_number >= $%d AND cycle_number <= $%d", q.CycleRange.Start, q.CycleRange.End)
	}
	if q.TimestampRange != nil {
		p.add("timestamp >= $%d AND timestamp <= $%d", q.TimestampRange.Start, q.TimestampRange.End)
	}
	return p
}

// orderClause implements the ordering asymmetry: range scans walk history
// oldest-first, rangeless queries serve the "latest N" dashboard view.
func orderClause(hasRange bool) string {
	if hasRange {
		return " ORDER BY cycle_number ASC, timestamp ASC"
	}
	return " ORDER BY cycle_number DESC, timestamp DESC"
}

// pageClause appends LIMIT/OFFSET. Limit 0 means unbounded, so the LIMIT
// clause is omitted rather than emitting LIMIT 0.
func pageClause(p *predicate, skip, limit int) string {
	var clause string
	if limit > 0 {
		p.args = append(p.args, limit)
		clause += fmt.Sprintf(" LIMIT $%d", len(p.args))
	}
	if skip > 0 {
		p.args = append(p.args, skip)
		clause += fmt.Sprintf(" OFFSET $%d", len(p.args))
	}
	return clause
}
