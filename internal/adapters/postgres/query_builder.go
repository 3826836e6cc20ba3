package postgres

import (
	"fmt"
	"strings"

	"listing-service/internal/core/query"
)

// columnForField whitelists the descriptor field names and maps them to
// listings columns. Anything outside this map is a programming error.
var columnForField = map[string]string{
	query.FieldCity:      "l.city",
	query.FieldPrice:     "l.price",
	query.FieldBedrooms:  "l.bedrooms",
	query.FieldBathrooms: "l.bathrooms",
	query.FieldArea:      "l.size",
	query.FieldType:      "l.property_type",
	query.FieldCreatedAt: "l.created_at",
}

type queryBuilder struct {
	conditions []string
	args       []interface{}
	argID      int
}

func newQueryBuilder() *queryBuilder {
	return &queryBuilder{argID: 1}
}

func (qb *queryBuilder) addCondition(format string, column string, arg interface{}) {
	qb.conditions = append(qb.conditions, fmt.Sprintf(format, column, qb.argID))
	qb.args = append(qb.args, arg)
	qb.argID++
}

func (qb *queryBuilder) whereClause() string {
	if len(qb.conditions) == 0 {
		return ""
	}
	return "WHERE " + strings.Join(qb.conditions, " AND ")
}

// buildQueryParts translates the backend-agnostic descriptor into the SQL
// fragments the count and page queries share.
func buildQueryParts(desc query.Descriptor) (whereClause, orderClause string, args []interface{}, err error) {
	qb := newQueryBuilder()

	for _, p := range desc.Predicates {
		column, ok := columnForField[p.Field]
		if !ok {
			return "", "", nil, fmt.Errorf("unknown filter field %q", p.Field)
		}
		switch p.Op {
		case query.OpEquals:
			qb.addCondition("%s = $%d", column, p.Value)
		case query.OpContains:
			qb.addCondition("%s ILIKE $%d", column, "%"+fmt.Sprintf("%v", p.Value)+"%")
		case query.OpGTE:
			qb.addCondition("%s >= $%d", column, p.Value)
		case query.OpLTE:
			qb.addCondition("%s <= $%d", column, p.Value)
		default:
			return "", "", nil, fmt.Errorf("unknown predicate operator %q", p.Op)
		}
	}

	// Nil order means storage-default: no ORDER BY at all. The secondary
	// id tiebreak keeps explicitly ordered pages stable across requests.
	if desc.Order != nil {
		column, ok := columnForField[desc.Order.Field]
		if !ok {
			return "", "", nil, fmt.Errorf("unknown order field %q", desc.Order.Field)
		}
		direction := "ASC"
		if desc.Order.Descending {
			direction = "DESC"
		}
		orderClause = fmt.Sprintf("ORDER BY %s %s, l.id ASC", column, direction)
	}

	return qb.whereClause(), orderClause, qb.args, nil
}
