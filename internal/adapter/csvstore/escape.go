package csvstore

import "strings"

// encoding/csv при чтении удаляет \r перед \n даже внутри кавычек,
// поэтому \r в сообщении хранится как `\r`, а сам `\` удваивается.
var (
	escaper   = strings.NewReplacer(`\`, `\\`, "\r", `\r`)
	unescaper = strings.NewReplacer(`\\`, `\`, `\r`, "\r")
)

func escapeMessage(msg string) string   { return escaper.Replace(msg) }
func unescapeMessage(msg string) string { return unescaper.Replace(msg) }
