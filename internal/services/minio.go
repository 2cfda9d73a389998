package services

import (
	"bytes"
	"context"
	"fmt"

	"github.com/minio/minio-go/v7"

	"brocante_back_end/internal/config"
	"brocante_back_end/internal/database"
)

// UploadBytes pousse un objet dans le bucket d'images et retourne son URL
// publique. L'appelant fournit un nom d'objet adressé par contenu.
func UploadBytes(ctx context.Context, objectName string, data []byte, contentType string) (string, error) {
	if database.MinioClient == nil {
		return "", fmt.Errorf("MinIO non initialisé")
	}

	bucket := config.Get("MINIO_BUCKET", "brocante-images")

	_, err := database.MinioClient.PutObject(ctx, bucket, objectName,
		bytes.NewReader(data), int64(len(data)),
		minio.PutObjectOptions{ContentType: contentType})
	if err != nil {
		return "", err
	}

	publicBase := config.Get("MINIO_PUBLIC_URL", "")
	if publicBase == "" {
		publicBase = fmt.Sprintf("http://%s", config.Get("MINIO_ENDPOINT", ""))
	}
	return fmt.Sprintf("%s/%s/%s", publicBase, bucket, objectName), nil
}
