package sqlite

import (
	"context"
	"fmt"
)

// RulesRepository loads compliance rule overrides.
type RulesRepository struct {
	db *DB
}

// NewRulesRepository creates a new RulesRepository
func NewRulesRepository(db *DB) *RulesRepository {
	return &RulesRepository{db: db}
}

// Load returns the override rule table as size -> regulation -> ordered
// requirements. An empty map means no overrides are present.
func (r *RulesRepository) Load(ctx context.Context) (map[string]map[string][]string, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT size, regulation, requirement
		FROM compliance_rules
		ORDER BY size, regulation, position
	`)
	if err != nil {
		return nil, fmt.Errorf("query compliance rules: %w", err)
	}
	defer rows.Close()

	rules := make(map[string]map[string][]string)
	for rows.Next() {
		var size, regulation, requirement string
		if err := rows.Scan(&size, &regulation, &requirement); err != nil {
			return nil, fmt.Errorf("scan compliance rule: %w", err)
		}
		if rules[size] == nil {
			rules[size] = make(map[string][]string)
		}
		rules[size][regulation] = append(rules[size][regulation], requirement)
	}
	return rules, rows.Err()
}
