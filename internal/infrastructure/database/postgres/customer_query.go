package postgres

import (
	"customer-registry/internal/domain/customer"
	"fmt"
	"strings"
)

const customerColumns = `c.id, c.first_name, c.last_name, c.phone, c.city, c.state, c.pincode, c.email, c.account_type, c.created_at, c.updated_at`

const addressCountsQuery = `
        SELECT customer_id, COUNT(*)
        FROM addresses
        WHERE customer_id = ANY($1)
        GROUP BY customer_id`

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

type listStatements struct {
	countSQL  string
	countArgs []any
	pageSQL   string
	pageArgs  []any
}

// buildListStatements assembles the count and page queries for a customer
// listing. q must be normalized so SortBy and SortDir are known-safe.
func buildListStatements(q customer.ListQuery) listStatements {
	var where []string
	var args []any
	add := func(cond string, v any) {
		args = append(args, v)
		where = append(where, fmt.Sprintf(cond, len(args)))
	}

	if q.City != "" {
		add("c.city = $%d", q.City)
	}
	if q.State != "" {
		add("c.state = $%d", q.State)
	}
	if q.Pincode != "" {
		add("c.pincode = $%d", q.Pincode)
	}
	if q.Search != "" {
		add("(c.first_name ILIKE $%[1]d OR c.last_name ILIKE $%[1]d OR c.email ILIKE $%[1]d OR c.phone ILIKE $%[1]d)",
			"%"+likeEscaper.Replace(q.Search)+"%")
	}

	var b strings.Builder
	b.WriteString(" FROM customers c")
	if q.OnlyMultipleAddresses {
		b.WriteString(" JOIN addresses a ON a.customer_id = c.id")
	}
	if len(where) > 0 {
		b.WriteString(" WHERE ")
		b.WriteString(strings.Join(where, " AND "))
	}
	if q.OnlyMultipleAddresses {
		b.WriteString(" GROUP BY c.id HAVING COUNT(a.id) > 1")
	}
	body := b.String()

	countSQL := "SELECT COUNT(*)" + body
	if q.OnlyMultipleAddresses {
		countSQL = "SELECT COUNT(*) FROM (SELECT c.id" + body + ") matched"
	}

	pageArgs := append(append([]any{}, args...), q.PageSize, q.Offset())
	pageSQL := fmt.Sprintf("SELECT %s%s ORDER BY c.%s %s, c.id ASC LIMIT $%d OFFSET $%d",
		customerColumns, body, q.SortBy, q.SortDir, len(args)+1, len(args)+2)

	return listStatements{
		countSQL:  countSQL,
		countArgs: args,
		pageSQL:   pageSQL,
		pageArgs:  pageArgs,
	}
}

// customerAssignments turns the supplied fields into SET clauses. Required
// columns are trimmed; blank optional values are stored as NULL.
func customerAssignments(in customer.Input) ([]string, []any) {
	var sets []string
	var args []any
	set := func(expr string, v string) {
		args = append(args, v)
		sets = append(sets, fmt.Sprintf(expr, len(args)))
	}

	for _, f := range []struct {
		column string
		value  *string
	}{
		{"first_name", in.FirstName},
		{"last_name", in.LastName},
		{"phone", in.Phone},
	} {
		if f.value != nil {
			set(f.column+" = TRIM($%d)", *f.value)
		}
	}
	for _, f := range []struct {
		column string
		value  *string
	}{
		{"city", in.City},
		{"state", in.State},
		{"pincode", in.Pincode},
		{"email", in.Email},
		{"account_type", in.AccountType},
	} {
		if f.value != nil {
			set(f.column+" = NULLIF(TRIM($%d), '')", *f.value)
		}
	}
	return sets, args
}
