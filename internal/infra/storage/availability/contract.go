package availability

import "github.com/orienta-vg/consultation-service/pkg/txmanager"

// DBExecutor абстрагирует *sql.DB и *sql.Tx для репозитория
type DBExecutor = txmanager.Executor
