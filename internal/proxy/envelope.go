package proxy

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/Adda-Baaj/khobor/pkg/mediastack"
)

const (
	MessageSuccess = "Successfully fetched the data"
	MessageFailure = "Failed to fetch data from the API"

	countryFailureFormat = "Unable to fetch news for country: %s. Check if the ISO code is correct."
)

// Envelope is the JSON shape every proxied route responds with.
type Envelope struct {
	Status  int             `json:"status"`
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data,omitempty"`
	Error   any             `json:"error,omitempty"`
}

func successEnvelope(data json.RawMessage) Envelope {
	return Envelope{
		Status:  http.StatusOK,
		Success: true,
		Message: MessageSuccess,
		Data:    data,
	}
}

func failureEnvelope(err error) Envelope {
	return Envelope{
		Status:  http.StatusInternalServerError,
		Success: false,
		Message: MessageFailure,
		Error:   errorDetail(err),
	}
}

// countryFailure rewrites a failure envelope for the country route.
func countryFailure(iso string, failed Envelope) Envelope {
	return Envelope{
		Status:  http.StatusBadRequest,
		Success: false,
		Message: fmt.Sprintf(countryFailureFormat, iso),
		Error:   failed.Error,
	}
}

// errorDetail prefers the upstream error body, relayed as JSON when it is JSON.
func errorDetail(err error) any {
	var upErr *mediastack.UpstreamError
	if errors.As(err, &upErr) && len(upErr.Body) > 0 {
		if json.Valid(upErr.Body) {
			return json.RawMessage(upErr.Body)
		}
		return string(upErr.Body)
	}
	return err.Error()
}
