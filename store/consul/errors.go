package consul

import (
	stderrors "errors"
	"net"
	"strings"

	"github.com/mwantia/ossfm/data/errors"
)

// classify maps transport failures and ACL denials onto data.ErrNetworkOrAuth.
func classify(err error, target string) error {
	if err == nil {
		return nil
	}

	var netErr net.Error
	if stderrors.As(err, &netErr) {
		return errors.NetworkOrAuth(err, "consul")
	}

	message := err.Error()
	if strings.Contains(message, "response code: 403") || strings.Contains(message, "response code: 401") {
		return errors.NetworkOrAuth(err, "consul")
	}
	if strings.Contains(message, "connection refused") || strings.Contains(message, "no such host") {
		return errors.NetworkOrAuth(err, "consul")
	}
	return err
}
