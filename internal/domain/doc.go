// Package domain holds the core types of tm2kit: tabular data, the
// CTRAMP data model (canonical column names and value-code labels),
// summary specifications, and validation checks. It depends only on
// the standard library so infra packages can be swapped freely.
package domain
