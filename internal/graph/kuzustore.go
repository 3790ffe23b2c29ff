//go:build cgo

package graph

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	kuzu "github.com/kuzudb/go-kuzu"
)

// KuzuStore implements the Store interface using KuzuDB as the graph
// backend. It requires CGO because the go-kuzu driver wraps KuzuDB's C
// library.
type KuzuStore struct {
	db   *kuzu.Database
	conn *kuzu.Connection
}

// Compile-time check that KuzuStore satisfies Store.
var _ Store = (*KuzuStore)(nil)

// NewKuzuStore creates a KuzuStore backed by an in-memory KuzuDB instance.
func NewKuzuStore() (*KuzuStore, error) {
	cfg := kuzu.DefaultSystemConfig()
	db, err := kuzu.OpenDatabase(":memory:", cfg)
	if err != nil {
		return nil, fmt.Errorf("kuzu: open database: %w", err)
	}
	conn, err := kuzu.OpenConnection(db)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("kuzu: open connection: %w", err)
	}
	return &KuzuStore{db: db, conn: conn}, nil
}

// NewKuzuFileStore creates a KuzuStore backed by a file-based KuzuDB at
// the given directory path, so step graphs survive across sessions.
func NewKuzuFileStore(dbPath string) (*KuzuStore, error) {
	// KuzuDB creates the leaf directory; the parent must exist.
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, fmt.Errorf("kuzu: create parent directory: %w", err)
	}
	cfg := kuzu.DefaultSystemConfig()
	db, err := kuzu.OpenDatabase(dbPath, cfg)
	if err != nil {
		return nil, fmt.Errorf("kuzu: open file database: %w", err)
	}
	conn, err := kuzu.OpenConnection(db)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("kuzu: open connection: %w", err)
	}
	return &KuzuStore{db: db, conn: conn}, nil
}

// Close releases the KuzuDB connection and database.
func (s *KuzuStore) Close() error {
	if s.conn != nil {
		s.conn.Close()
	}
	if s.db != nil {
		s.db.Close()
	}
	return nil
}

// ddlStatements defines the Cypher DDL executed by InitSchema.
// Node tables must precede relationship tables.
var ddlStatements = []string{
	`CREATE NODE TABLE IF NOT EXISTS Idea(
		id INT64,
		concept STRING,
		domain STRING,
		PRIMARY KEY(id)
	)`,
	`CREATE NODE TABLE IF NOT EXISTS Step(
		id STRING,
		idea_id INT64,
		label STRING,
		seq INT64,
		PRIMARY KEY(id)
	)`,
	`CREATE REL TABLE IF NOT EXISTS HAS_STEP(FROM Idea TO Step)`,
	`CREATE REL TABLE IF NOT EXISTS DEPENDS_ON(FROM Step TO Step)`,
}

// InitSchema creates the node and relationship tables if they do not exist.
func (s *KuzuStore) InitSchema(_ context.Context) error {
	for _, stmt := range ddlStatements {
		res, err := s.conn.Query(stmt)
		if err != nil {
			return fmt.Errorf("kuzu: init schema: %w", err)
		}
		res.Close()
	}
	return nil
}

// AddIdea inserts an Idea node.
func (s *KuzuStore) AddIdea(_ context.Context, node IdeaNode) error {
	return s.exec(
		"CREATE (i:Idea {id: $id, concept: $concept, domain: $domain})",
		map[string]any{
			"id":      node.ID,
			"concept": node.Concept,
			"domain":  node.Domain,
		},
	)
}

// AddStep inserts a Step node and links it to its idea. The sequence
// number preserves insertion order for deterministic reads.
func (s *KuzuStore) AddStep(ctx context.Context, node StepNode) error {
	existing, err := s.Steps(ctx, node.IdeaID)
	if err != nil {
		return err
	}
	for _, st := range existing {
		if st.Label == node.Label {
			return nil
		}
	}

	if err := s.exec(
		"CREATE (st:Step {id: $id, idea_id: $iid, label: $label, seq: $seq})",
		map[string]any{
			"id":    stepID(node.IdeaID, node.Label),
			"iid":   node.IdeaID,
			"label": node.Label,
			"seq":   int64(len(existing)),
		},
	); err != nil {
		return err
	}

	return s.exec(
		`MATCH (i:Idea {id: $iid}), (st:Step {id: $sid})
		 CREATE (i)-[:HAS_STEP]->(st)`,
		map[string]any{
			"iid": node.IdeaID,
			"sid": stepID(node.IdeaID, node.Label),
		},
	)
}

// AddDependency inserts a DEPENDS_ON edge between two steps of an idea.
func (s *KuzuStore) AddDependency(_ context.Context, edge DependencyEdge) error {
	return s.exec(
		`MATCH (a:Step {id: $src}), (b:Step {id: $dst})
		 CREATE (a)-[:DEPENDS_ON]->(b)`,
		map[string]any{
			"src": stepID(edge.IdeaID, edge.From),
			"dst": stepID(edge.IdeaID, edge.To),
		},
	)
}

// GetIdea retrieves a single Idea node by ID, or returns nil if not found.
func (s *KuzuStore) GetIdea(_ context.Context, id int64) (*IdeaNode, error) {
	rows, err := s.query(
		"MATCH (i:Idea {id: $id}) RETURN i.id, i.concept, i.domain",
		map[string]any{"id": id},
	)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, nil
	}
	r := rows[0]
	return &IdeaNode{
		ID:      toInt64(r[0]),
		Concept: toString(r[1]),
		Domain:  toString(r[2]),
	}, nil
}

// Steps returns the idea's steps in insertion order.
func (s *KuzuStore) Steps(_ context.Context, ideaID int64) ([]StepNode, error) {
	rows, err := s.query(
		`MATCH (st:Step {idea_id: $iid})
		 RETURN st.label ORDER BY st.seq`,
		map[string]any{"iid": ideaID},
	)
	if err != nil {
		return nil, err
	}
	out := make([]StepNode, 0, len(rows))
	for _, r := range rows {
		out = append(out, StepNode{IdeaID: ideaID, Label: toString(r[0])})
	}
	return out, nil
}

// Dependencies returns the idea's dependency edges.
func (s *KuzuStore) Dependencies(_ context.Context, ideaID int64) ([]DependencyEdge, error) {
	rows, err := s.query(
		`MATCH (a:Step {idea_id: $iid})-[:DEPENDS_ON]->(b:Step)
		 RETURN a.label, b.label ORDER BY a.seq, b.seq`,
		map[string]any{"iid": ideaID},
	)
	if err != nil {
		return nil, err
	}
	out := make([]DependencyEdge, 0, len(rows))
	for _, r := range rows {
		out = append(out, DependencyEdge{
			IdeaID: ideaID,
			From:   toString(r[0]),
			To:     toString(r[1]),
		})
	}
	return out, nil
}

// Chains performs a BFS from label in the given direction, up to
// maxDepth hops. Traversal runs in Go over the loaded edge list.
func (s *KuzuStore) Chains(ctx context.Context, ideaID int64, label string, direction Direction, maxDepth int) ([]StepChain, error) {
	if maxDepth <= 0 {
		return nil, nil
	}

	edges, err := s.Dependencies(ctx, ideaID)
	if err != nil {
		return nil, err
	}

	type bfsEntry struct {
		label string
		path  []string
	}

	visited := map[string]bool{label: true}
	queue := []bfsEntry{{label: label, path: []string{label}}}
	var chains []StepChain

	for depth := 0; depth < maxDepth && len(queue) > 0; depth++ {
		var nextQueue []bfsEntry
		for _, entry := range queue {
			for _, e := range edges {
				var nb string
				switch direction {
				case DirectionDownstream:
					if e.From != entry.label {
						continue
					}
					nb = e.To
				case DirectionUpstream:
					if e.To != entry.label {
						continue
					}
					nb = e.From
				default:
					return nil, fmt.Errorf("kuzu: unknown direction: %s", direction)
				}
				if visited[nb] {
					continue
				}
				visited[nb] = true
				newPath := make([]string, len(entry.path), len(entry.path)+1)
				copy(newPath, entry.path)
				newPath = append(newPath, nb)
				chains = append(chains, StepChain{Nodes: newPath, Depth: len(newPath) - 1})
				nextQueue = append(nextQueue, bfsEntry{label: nb, path: newPath})
			}
		}
		queue = nextQueue
	}

	return chains, nil
}

// Order returns the idea's steps in dependency order (Kahn's algorithm),
// breaking ties on insertion order. Steps caught in a cycle are appended
// at the end.
func (s *KuzuStore) Order(ctx context.Context, ideaID int64) ([]string, error) {
	steps, err := s.Steps(ctx, ideaID)
	if err != nil {
		return nil, err
	}
	edges, err := s.Dependencies(ctx, ideaID)
	if err != nil {
		return nil, err
	}

	inDegree := make(map[string]int, len(steps))
	for _, st := range steps {
		inDegree[st.Label] = 0
	}
	for _, e := range edges {
		if _, ok := inDegree[e.To]; ok {
			inDegree[e.To]++
		}
	}

	order := make([]string, 0, len(steps))
	emitted := make(map[string]bool, len(steps))

	for len(order) < len(steps) {
		progressed := false
		for _, st := range steps {
			if emitted[st.Label] || inDegree[st.Label] > 0 {
				continue
			}
			emitted[st.Label] = true
			order = append(order, st.Label)
			progressed = true
			for _, e := range edges {
				if e.From == st.Label {
					inDegree[e.To]--
				}
			}
		}
		if !progressed {
			for _, st := range steps {
				if !emitted[st.Label] {
					emitted[st.Label] = true
					order = append(order, st.Label)
				}
			}
		}
	}

	return order, nil
}

// Stats returns counts of the Idea and Step tables plus DEPENDS_ON edges.
func (s *KuzuStore) Stats(_ context.Context) (*Stats, error) {
	ideas, err := s.countQuery("MATCH (n:Idea) RETURN count(n)")
	if err != nil {
		return nil, err
	}
	steps, err := s.countQuery("MATCH (n:Step) RETURN count(n)")
	if err != nil {
		return nil, err
	}
	edges, err := s.countQuery("MATCH ()-[r:DEPENDS_ON]->() RETURN count(r)")
	if err != nil {
		return nil, err
	}
	return &Stats{IdeaCount: ideas, StepCount: steps, EdgeCount: edges}, nil
}

// ---------- Internal helpers ----------

// exec runs a parameterized Cypher statement that produces no result rows.
func (s *KuzuStore) exec(cypher string, params map[string]any) error {
	stmt, err := s.conn.Prepare(cypher)
	if err != nil {
		return fmt.Errorf("kuzu: prepare: %w", err)
	}
	defer stmt.Close()

	res, err := s.conn.Execute(stmt, params)
	if err != nil {
		return fmt.Errorf("kuzu: execute: %w", err)
	}
	res.Close()
	return nil
}

// query runs a parameterized Cypher statement and collects all result
// rows. Each row is a []any slice with values in column order.
func (s *KuzuStore) query(cypher string, params map[string]any) ([][]any, error) {
	var res *kuzu.QueryResult
	var err error

	if len(params) == 0 {
		res, err = s.conn.Query(cypher)
	} else {
		var stmt *kuzu.PreparedStatement
		stmt, err = s.conn.Prepare(cypher)
		if err != nil {
			return nil, fmt.Errorf("kuzu: prepare: %w", err)
		}
		defer stmt.Close()
		res, err = s.conn.Execute(stmt, params)
	}
	if err != nil {
		return nil, fmt.Errorf("kuzu: query: %w", err)
	}
	defer res.Close()

	var rows [][]any
	for res.HasNext() {
		tuple, err := res.Next()
		if err != nil {
			return nil, fmt.Errorf("kuzu: next: %w", err)
		}
		vals, err := tuple.GetAsSlice()
		if err != nil {
			return nil, fmt.Errorf("kuzu: row values: %w", err)
		}
		rows = append(rows, vals)
	}
	return rows, nil
}

// countQuery runs a single-value count query.
func (s *KuzuStore) countQuery(cypher string) (int, error) {
	rows, err := s.query(cypher, nil)
	if err != nil {
		return 0, err
	}
	if len(rows) == 0 || len(rows[0]) == 0 {
		return 0, nil
	}
	return int(toInt64(rows[0][0])), nil
}

// stepID produces a deterministic identifier for a step: "ideaID:label".
func stepID(ideaID int64, label string) string {
	return fmt.Sprintf("%d:%s", ideaID, label)
}

// ---------- Type coercion helpers ----------
// KuzuDB returns typed Go values (int64, float64, bool, string).

func toString(v any) string {
	if s, ok := v.(string); ok {
		return s
	}
	return fmt.Sprintf("%v", v)
}

func toInt64(v any) int64 {
	switch n := v.(type) {
	case int64:
		return n
	case int:
		return int64(n)
	case int32:
		return int64(n)
	case float64:
		return int64(n)
	default:
		return 0
	}
}
