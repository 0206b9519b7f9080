package sqlstore

import (
	"fmt"
	"regexp"
)

// Поддерживаемые драйверы database/sql.
const (
	DriverSQLite    = "sqlite3"
	DriverSQLServer = "sqlserver"
)

// DefaultTable — имя таблицы записей по умолчанию.
const DefaultTable = "logEntry"

// tableNamePattern ограничивает имя таблицы идентификатором.
// Имя подставляется в текст запроса через fmt.Sprintf, параметризовать его нельзя.
var tableNamePattern = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]{0,127}$`)

// dialect содержит тексты запросов конкретной СУБД.
type dialect struct {
	createTable string
	insert      string
	selectAll   string
}

func newDialect(driver, table string) (dialect, error) {
	if !tableNamePattern.MatchString(table) {
		return dialect{}, fmt.Errorf("недопустимое имя таблицы %q", table)
	}
	switch driver {
	case DriverSQLite:
		return dialect{
			createTable: fmt.Sprintf(`CREATE TABLE IF NOT EXISTS %s (
	id integer PRIMARY KEY,
	date text NOT NULL,
	level text NOT NULL,
	message text NOT NULL
)`, table),
			insert:    fmt.Sprintf(`INSERT INTO %s(date, level, message) VALUES (?, ?, ?)`, table),
			selectAll: fmt.Sprintf(`SELECT date, level, message FROM %s ORDER BY id`, table),
		}, nil
	case DriverSQLServer:
		return dialect{
			createTable: fmt.Sprintf(`IF OBJECT_ID(N'%[1]s', N'U') IS NULL
CREATE TABLE [%[1]s] (
	[id] INT IDENTITY(1,1) PRIMARY KEY,
	[date] NVARCHAR(19) NOT NULL,
	[level] NVARCHAR(16) NOT NULL,
	[message] NVARCHAR(MAX) NOT NULL
)`, table),
			insert:    fmt.Sprintf(`INSERT INTO [%s]([date], [level], [message]) VALUES (@p1, @p2, @p3)`, table),
			selectAll: fmt.Sprintf(`SELECT [date], [level], [message] FROM [%s] ORDER BY [id]`, table),
		}, nil
	default:
		return dialect{}, fmt.Errorf("неподдерживаемый драйвер %q (ожидается %s или %s)", driver, DriverSQLite, DriverSQLServer)
	}
}
