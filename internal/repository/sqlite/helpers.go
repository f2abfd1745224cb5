package sqlite

import (
	"github.com/Masterminds/squirrel"
)

// sqlBuilder emits "?" placeholders for go-sqlite3.
var sqlBuilder = squirrel.StatementBuilder.PlaceholderFormat(squirrel.Question)
