package stub

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"
	"net/url"
	"strings"
)

var (
	errBodyTooLarge = errors.New("request body too large")
	errInvalidBody  = errors.New("request body could not be parsed")
)

// emptyObject is captured when a request carries no parseable body.
var emptyObject = []byte("{}")

// decodeBody reads the request body and returns the JSON document to
// capture. JSON bodies must be an object or array and are compacted with
// their key order preserved. URL-encoded forms become a JSON object of
// strings (repeated keys become arrays). Empty bodies and other content
// types are captured as {}.
func decodeBody(r *http.Request, limit int64) ([]byte, error) {
	if r.Body == nil {
		return emptyObject, nil
	}

	var reader io.Reader = r.Body
	if limit > 0 {
		reader = io.LimitReader(r.Body, limit+1)
	}
	raw, err := io.ReadAll(reader)
	if err != nil {
		return nil, fmt.Errorf("reading request body: %w", err)
	}
	if limit > 0 && int64(len(raw)) > limit {
		return nil, errBodyTooLarge
	}
	if len(bytes.TrimSpace(raw)) == 0 {
		return emptyObject, nil
	}

	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	switch {
	case isJSONMediaType(mediaType):
		return compactJSON(raw)
	case mediaType == "application/x-www-form-urlencoded":
		return formJSON(raw)
	default:
		return emptyObject, nil
	}
}

func isJSONMediaType(mediaType string) bool {
	return mediaType == "application/json" || strings.HasSuffix(mediaType, "+json")
}

func compactJSON(raw []byte) ([]byte, error) {
	trimmed := bytes.TrimSpace(raw)
	if trimmed[0] != '{' && trimmed[0] != '[' {
		return nil, errInvalidBody
	}
	var buf bytes.Buffer
	if err := json.Compact(&buf, trimmed); err != nil {
		return nil, fmt.Errorf("%w: %v", errInvalidBody, err)
	}
	return buf.Bytes(), nil
}

func formJSON(raw []byte) ([]byte, error) {
	values, err := url.ParseQuery(string(raw))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", errInvalidBody, err)
	}
	obj := make(map[string]any, len(values))
	for k, v := range values {
		if len(v) == 1 {
			obj[k] = v[0]
		} else {
			obj[k] = v
		}
	}
	return json.Marshal(obj)
}
