package namecheap

import (
	"encoding/xml"
	"fmt"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// ErrMalformedResponse indicates the API reply did not match the documented
// response shape. It is never returned together with partial results.
var ErrMalformedResponse = errors.New("malformed Namecheap API response")

// ApiError is a single (code, message) pair from a Status="ERROR" response.
// https://www.namecheap.com/support/api/error-codes/
type ApiError struct {
	Code    int
	Message string
}

func (e ApiError) Error() string {
	return fmt.Sprintf("namecheap: error %d: %s", e.Code, e.Message)
}

// ApiErrors is the full, ordered error list of one ERROR response.
type ApiErrors []ApiError

func (e ApiErrors) Error() string {
	msgs := make([]string, len(e))
	for i, apiErr := range e {
		msgs[i] = apiErr.Error()
	}
	return strings.Join(msgs, "; ")
}

// apiResponse is the common envelope of every Namecheap API reply
// (namespace http://api.namecheap.com/xml.response).
type apiResponse struct {
	XMLName xml.Name `xml:"ApiResponse"`
	Status  string   `xml:"Status,attr"`
	Errors  struct {
		Error []struct {
			Number  string `xml:"Number,attr"`
			Message string `xml:",chardata"`
		} `xml:"Error"`
	} `xml:"Errors"`
	Server            string `xml:"Server"`
	GMTTimeDifference string `xml:"GMTTimeDifference"`
	ExecutionTime     string `xml:"ExecutionTime"`
}

const (
	statusOK    = "OK"
	statusError = "ERROR"
)

// parseEnvelope unmarshals the response envelope and applies the shared
// Status/Errors contract: ERROR replies become ApiErrors without the
// CommandResponse ever being looked at, and an OK reply that still carries
// errors is rejected as malformed rather than guessed at.
func parseEnvelope(body []byte) (*apiResponse, error) {
	var env apiResponse
	if err := xml.Unmarshal(body, &env); err != nil {
		return nil, errors.Wrapf(ErrMalformedResponse, "xml parse failed: %v", err)
	}
	if env.XMLName.Local != "ApiResponse" {
		return nil, errors.Wrapf(ErrMalformedResponse, "unexpected root element %q", env.XMLName.Local)
	}

	switch env.Status {
	case statusError:
		if len(env.Errors.Error) == 0 {
			return nil, errors.Wrap(ErrMalformedResponse, "ERROR status with empty Errors element")
		}
		apiErrs := make(ApiErrors, 0, len(env.Errors.Error))
		for _, e := range env.Errors.Error {
			code, err := strconv.Atoi(strings.TrimSpace(e.Number))
			if err != nil {
				return nil, errors.Wrapf(ErrMalformedResponse, "non-numeric error number %q", e.Number)
			}
			apiErrs = append(apiErrs, ApiError{
				Code:    code,
				Message: strings.TrimSpace(e.Message),
			})
		}
		return nil, apiErrs
	case statusOK:
		if len(env.Errors.Error) > 0 {
			return nil, errors.Wrap(ErrMalformedResponse, "OK status with non-empty Errors element")
		}
		return &env, nil
	default:
		return nil, errors.Wrapf(ErrMalformedResponse, "unexpected Status %q", env.Status)
	}
}

// decodeCommand unmarshals the body into the command specific result struct.
// The envelope must have been validated with parseEnvelope first.
func decodeCommand(body []byte, out interface{}) error {
	if err := xml.Unmarshal(body, out); err != nil {
		return errors.Wrapf(ErrMalformedResponse, "command response parse failed: %v", err)
	}
	return nil
}
