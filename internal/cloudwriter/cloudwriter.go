package cloudwriter

import (
	"fmt"
	"io"

	"github.com/chrisdamba/foodorder/internal/models"
)

// CloudWriter buffers one object; Close uploads it.
type CloudWriter interface {
	io.WriteCloser
}

type CloudWriterFactory interface {
	NewWriter(bucket, objectPath string) (CloudWriter, error)
}

// NewFactory picks the writer factory for a cloud_storage.provider value.
// Local storage needs no factory, so it yields nil.
func NewFactory(provider, region string) (CloudWriterFactory, error) {
	switch provider {
	case "", models.CloudProviderLocal:
		return nil, nil
	case models.CloudProviderS3:
		f, err := NewS3WriterFactory(region)
		if err != nil {
			return nil, err
		}
		return f, nil
	}
	return nil, fmt.Errorf("unsupported cloud storage provider: %s", provider)
}
