package client

import (
	"context"

	"github.com/dmitrijs2005/xferclient/internal/client/models"
)

// Client is the transfer backend as seen by a form session.
type Client interface {
	FetchConfig(ctx context.Context) (models.RemoteConfig, error)
	GenerateKeys(ctx context.Context, req models.KeyRequest) (*models.KeyMaterial, error)
	Upload(ctx context.Context, fields []models.FormField, file models.Attachment) (*models.UploadAck, error)
}
