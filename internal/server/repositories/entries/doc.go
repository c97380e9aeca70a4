// Package entries provides the SQLite persistence for guestbook entries.
//
// The Repository works over a dbx.DBTX, so the same code runs against a
// *sql.DB or inside a transaction opened by the storage gateway. The table
// is append-only: there is no update or delete.
//
// Typical Usage
//
//	repo := entries.NewSQLiteRepository(tx)
//	_ = repo.Insert(ctx, entry)
//	list, _ := repo.ListPublic(ctx)
package entries
