package httpclient

import (
	"bytes"
	"compress/gzip"
	"io"
	"strings"

	srvErrors "github.com/kubev2v/squad-to-scale-migrator/pkg/errors"
)

type decoderFunc func(raw []byte) (string, error)

var decoders = map[string]decoderFunc{
	"gzip":     decodeGzip,
	"identity": decodeIdentity,
}

// decode selects a decoder by Content-Encoding. Unknown encodings fall back to identity.
func decode(encoding string, raw []byte) (string, error) {
	name := strings.ToLower(strings.TrimSpace(encoding))
	fn, ok := decoders[name]
	if !ok {
		name = "identity"
		fn = decodeIdentity
	}

	text, err := fn(raw)
	if err != nil {
		return "", srvErrors.NewDecodingError(name, err)
	}
	return text, nil
}

func decodeIdentity(raw []byte) (string, error) {
	return string(raw), nil
}

func decodeGzip(raw []byte) (string, error) {
	if len(raw) == 0 {
		return "", nil
	}
	r, err := gzip.NewReader(bytes.NewReader(raw))
	if err != nil {
		return "", err
	}
	defer r.Close()

	out, err := io.ReadAll(r)
	if err != nil {
		return "", err
	}
	return string(out), nil
}
