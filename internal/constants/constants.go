// Package constants содержит общие константы profillog.
package constants

// Version и Commit задаются при сборке:
//
//	go build -ldflags "-X github.com/Kargones/profillog/internal/constants.Version=1.2.0"
var (
	Version = "dev"
	Commit  = "unknown"
)

// AppName — имя приложения в логах, метриках и трейсах.
const AppName = "profillog"
