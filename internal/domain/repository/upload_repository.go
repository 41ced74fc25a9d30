package repository

import "context"

// UploadRepository envia arquivos exportados para um armazenamento remoto.
type UploadRepository interface {
	CallerAccount(ctx context.Context) (string, error)
	Upload(ctx context.Context, localPath string) (string, error)
}
