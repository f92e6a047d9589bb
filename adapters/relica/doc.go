// Package relica provides the tabular sheet store implementation using the
// Relica query builder.
//
// Relica (github.com/coregx/relica) is a lightweight, type-safe database
// query builder for Go with zero production dependencies. The gateway
// persists each named month sheet as rows of a single table, satisfying
// the postbot.SheetGateway read-all / write-range / resize / style
// contract over SQLite, MySQL, or PostgreSQL.
//
// Example usage:
//
//	import (
//	    "database/sql"
//	    postbot "github.com/zioncoderone/post-bot"
//	    "github.com/zioncoderone/post-bot/adapters/relica"
//	    _ "github.com/mattn/go-sqlite3"
//	)
//
//	db, err := sql.Open("sqlite3", "post-bot.db")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	if err := postbot.ApplyMigrations(db); err != nil {
//	    log.Fatal(err)
//	}
//
//	// driverName should be "sqlite3", "mysql", or "postgres"
//	sheets := relica.NewSheetGateway(db, "sqlite3")
//	store := postbot.NewTopicStore(sheets, generator, settings, logger)
package relica
