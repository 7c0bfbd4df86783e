package stub

import (
	"encoding/json"
	"net/http"

	"github.com/getmockd/stubservice/pkg/httputil"
)

// Payload is one of the fixed JSON bodies the handlers answer with when
// no fixture content is returned.
type Payload struct {
	Status  string `json:"status,omitempty"`
	Error   string `json:"error,omitempty"`
	Message string `json:"message"`
}

// Fixed response payloads.
var (
	Success = Payload{Status: "SUCCESS", Message: "Request processed successfully"}

	FileNotFound     = Payload{Error: "FILE_NOT_FOUND", Message: "Stub file not found"}
	DirectoryMissing = Payload{Error: "ENOENT", Message: "Directory for the stub file does not exist"}
	InvalidBody      = Payload{Error: "INVALID_BODY", Message: "Request body is not valid JSON"}
	PayloadTooLarge  = Payload{Error: "PAYLOAD_TOO_LARGE", Message: "Request body is too large"}
	OutsideStubDir   = Payload{Error: "OUTSIDE_STUB_DIR", Message: "Path resolves outside the stub directory"}
)

// Bytes returns the compact JSON encoding of p.
func (p Payload) Bytes() []byte {
	data, _ := json.Marshal(p)
	return data
}

func writePayload(w http.ResponseWriter, status int, p Payload) {
	httputil.WriteRawJSON(w, status, p.Bytes())
}

// CatchAll answers any request with 200 and the Success payload.
func CatchAll(w http.ResponseWriter, _ *http.Request) {
	writePayload(w, http.StatusOK, Success)
}
