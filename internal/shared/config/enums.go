//go:generate go run github.com/abice/go-enum --file=$GOFILE --names --nocase

package config

// AppEnv represents the application environment
// ENUM(local,production,development,testing)
type AppEnv string

// StorageDriver selects the blob store backend
// ENUM(file,sqlite,mongo)
type StorageDriver string

// UpdateMode selects how Telegram updates reach the process
// ENUM(polling,webhook)
type UpdateMode string
