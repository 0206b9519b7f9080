package constants

import "os"

// Права на каталоги и файлы хранилищ.
const (
	// DirPermStandard — каталог хранилища (owner rwx, group r-x).
	DirPermStandard os.FileMode = 0750

	// FilePermStore — файл хранилища (owner rw, group r).
	FilePermStore os.FileMode = 0640
)
