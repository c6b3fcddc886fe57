package contracts

import (
	"context"
)

type Storage interface {
	UploadJSON(ctx context.Context, bucketName, objectName string, value interface{}) (string, error)
}
