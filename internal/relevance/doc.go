// Package relevance builds weighted, multi-column relevance searches over
// relational tables without a search index.
//
// A Config names the searchable columns of one entity, each with a positive
// weight, and the joins needed to reach columns of related tables. For
// every search the package tokenises the input, builds a case-insensitive
// match ladder per column, sums the ladders into one relevance expression
// and attaches it to a caller-supplied query together with grouping, a
// threshold filter and ordering:
//
//	cfg := relevance.New("users", "id").
//		Column("first_name", 10).
//		Column("last_name", 10).
//		Column("posts.title", 3).
//		Join("posts", "users.id", "posts.user_id").
//		MustBuild()
//
//	q := sqlq.From("users")
//	if _, err := relevance.BuildSearchQuery(cfg, q, relevance.Request{Text: "john doe"}); err != nil {
//		return err
//	}
//	sql, args := q.Build(sqlq.SQLite)
//
// # Scoring
//
// Each column contributes weight × multiplier for the strongest token tier
// it matches: whole word (15), token prefix (5) or token substring (1).
// When the full phrase is requested it adds a separate phrase ladder whose
// top rung, phrase prefix, is worth 30. Contributions from all columns add
// up, so rows matching several columns outrank rows matching one.
//
// # Expression tree
//
// Matching logic is held as a small tree (PhraseMatch, TokenMatch, Ladder,
// WeightedSum, Threshold). Render lowers it to SQL with bound parameters;
// the Score and Pass methods evaluate the same tree against in-memory rows,
// which keeps the scoring rules testable without a database.
package relevance
