// Package docstore provides durable whole-document storage for the six
// application documents (products, customers, invoices, units, users,
// settings) over two interchangeable backends:
//
//   - DirStore: one pretty-printed JSON file per document inside a
//     user-chosen data directory
//   - KVStore: a single SQLite database with one key-addressed table
//
// Both backends satisfy Store. A missing document is reported as
// ErrNotFound, distinct from a genuine read failure; callers rely on this
// to trigger default seeding without seeding over recoverable data.
// Content that parses but does not match the document schema is reported
// as ErrCorrupt.
//
// Multi-document mutations go through Batch. The KVStore applies a batch
// inside one SQL transaction; the DirStore writes a durable pending-commit
// marker first and rolls an interrupted batch forward on the next open, so
// a crash mid-commit never leaves a half-applied sale.
//
// # Database Configuration (KVStore)
//
//   - WAL mode: concurrent reads during writes
//   - synchronous=NORMAL: balance durability/performance
//   - busy_timeout=5000: wait for locks up to 5 seconds
//   - single connection: SQLite supports one writer at a time
package docstore
