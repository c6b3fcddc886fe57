package storage

import (
	"konsulin-assessment-engine/internal/app/config"
	"log"
	"net"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

func NewMinio(driverConfig *config.DriverConfig) *minio.Client {
	endpoint := net.JoinHostPort(driverConfig.Minio.Host, driverConfig.Minio.Port)
	minioClient, err := minio.New(endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(driverConfig.Minio.Username, driverConfig.Minio.Password, ""),
		Secure: driverConfig.Minio.UseSSL,
		Region: driverConfig.Minio.Region,
	})
	if err != nil {
		log.Fatalf("Failed to initialize Minio Client: %s", err.Error())
	}
	minioClient.SetAppInfo("assessment-engine", "v1")

	log.Printf("Successfully initialized minio client for %s", endpoint)
	return minioClient
}
