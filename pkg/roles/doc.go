// Package roles infers which construction feature each progress column
// represents.
//
// Column schemas are authored by hand and differ between projects, so the
// mapping from a column to a feature (pile, foundation, cap beam, ...) is
// never hard-coded. Instead a declarative [RuleSet] lists, per [Role], the
// keywords to look for in the column group and name. One generic matcher,
// [Resolve], evaluates every rule the same way:
//
//  1. Candidates are columns whose group contains a group keyword.
//  2. Verification columns are preferred over setting-out columns.
//  3. With no candidates, the first verification column whose name contains
//     a name keyword wins outright.
//  4. Otherwise the first candidate matching a name keyword, trying keywords
//     in priority order, wins.
//  5. Otherwise a candidate carrying a generic concrete/verification marker.
//  6. Otherwise the last candidate of the group.
//
// A role left unresolved is still drawn by the geometry synthesizers, just
// uncolored and not clickable.
//
// New roles or keywords are data: see [LoadRules] for the TOML rule format.
package roles
