package minio

import (
	stderrors "errors"
	"net"

	"github.com/minio/minio-go/v7"
	"github.com/mwantia/ossfm/data/errors"
)

// classify maps minio error responses onto the data sentinels.
func classify(err error, key string) error {
	if err == nil {
		return nil
	}

	switch minio.ToErrorResponse(err).Code {
	case "NoSuchKey":
		return errors.NotExist(err, key)
	case "NoSuchBucket", "AccessDenied", "InvalidAccessKeyId", "SignatureDoesNotMatch", "InvalidToken", "ExpiredToken":
		return errors.NetworkOrAuth(err, "minio")
	}

	var netErr net.Error
	if stderrors.As(err, &netErr) {
		return errors.NetworkOrAuth(err, "minio")
	}
	return err
}
