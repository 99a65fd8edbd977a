package s3

import (
	stderrors "errors"
	"net"

	"github.com/aws/smithy-go"
	"github.com/mwantia/ossfm/data/errors"
)

func code(err error) string {
	var apiErr smithy.APIError
	if stderrors.As(err, &apiErr) {
		return apiErr.ErrorCode()
	}
	return ""
}

// classify maps smithy API errors onto the data sentinels.
func classify(err error, key string) error {
	if err == nil {
		return nil
	}

	switch code(err) {
	case "NoSuchKey", "NotFound":
		return errors.NotExist(err, key)
	case "NoSuchBucket", "AccessDenied", "InvalidAccessKeyId", "SignatureDoesNotMatch", "InvalidToken", "ExpiredToken", "Forbidden":
		return errors.NetworkOrAuth(err, "s3")
	}

	var netErr net.Error
	if stderrors.As(err, &netErr) {
		return errors.NetworkOrAuth(err, "s3")
	}
	return err
}
