package appointment

import "github.com/m04kA/SMC-AvailabilityService/pkg/dbmetrics"

// DBExecutor общий интерфейс *sql.DB, *dbmetrics.DB и транзакций
type DBExecutor = dbmetrics.DBExecutor
