package editor

import (
	"encoding/json"
	"errors"

	"intervention-service/internal/apiclient"
)

const fallbackErrorMessage = "an unexpected error occurred"

// messageExtractors are tried in order; the first non-empty result wins.
var messageExtractors = []func(error) string{
	structuredErrorField,
	nestedResponseError,
	genericMessage,
}

// extractErrorMessage picks the most specific human-readable message out of
// a failed API call.
func extractErrorMessage(err error) string {
	for _, extract := range messageExtractors {
		if message := extract(err); message != "" {
			return message
		}
	}
	return fallbackErrorMessage
}

// structuredErrorField reads {"error": "..."} out of an API error body.
func structuredErrorField(err error) string {
	var apiErr *apiclient.APIError
	if !errors.As(err, &apiErr) {
		return ""
	}

	var body struct {
		Error string `json:"error"`
	}
	if json.Unmarshal([]byte(apiErr.Body), &body) != nil {
		return ""
	}
	return body.Error
}

// nestedResponseError reads {"response": {"error": "..."}}, the shape some
// proxied failures arrive in.
func nestedResponseError(err error) string {
	var apiErr *apiclient.APIError
	if !errors.As(err, &apiErr) {
		return ""
	}

	var body struct {
		Response struct {
			Error string `json:"error"`
		} `json:"response"`
	}
	if json.Unmarshal([]byte(apiErr.Body), &body) != nil {
		return ""
	}
	return body.Response.Error
}

func genericMessage(err error) string {
	if err == nil {
		return ""
	}
	return err.Error()
}
