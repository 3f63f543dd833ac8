package transport

import (
	"encoding/json"
	"strconv"
)

// ErrorResponseCode is the gateway's business code signalling that an
// HTTP-successful response carries a failed operation.
const ErrorResponseCode = "ERROR"

// Response is the uniform success value of a dispatched call. It is only
// ever constructed with Success set to true; every failure surfaces as an
// error instead.
type Response struct {
	Success    bool            `json:"success"`
	Code       string          `json:"code"`
	StatusCode int             `json:"status_code"`
	Message    string          `json:"message"`
	Data       json.RawMessage `json:"data,omitempty"`
	LogID      string          `json:"logId,omitempty"`
	Errors     json.RawMessage `json:"errors,omitempty"`
}

// DecodeData unmarshals the response's data payload into v.
func (r *Response) DecodeData(v interface{}) error {
	if len(r.Data) == 0 {
		return nil
	}
	return json.Unmarshal(r.Data, v)
}

// envelope is the superset of body shapes the gateway emits. Some endpoints
// answer with an explicit success flag, others only with a responseCode.
type envelope struct {
	Success      *bool           `json:"success"`
	ResponseCode string          `json:"responseCode"`
	Code         string          `json:"code"`
	Message      string          `json:"message"`
	LogID        string          `json:"logId"`
	Errors       json.RawMessage `json:"errors"`
	Data         json.RawMessage `json:"data"`
}

// normalized is the uniform view of a response body, independent of which
// shape the gateway chose.
type normalized struct {
	success bool
	code    string
	message string
	logID   string
	errors  json.RawMessage
	data    json.RawMessage
}

// normalizeResponse reduces a response body to the uniform schema. The
// business verdict is, in order: responseCode == "ERROR" means failure, an
// explicit success field is authoritative, otherwise any status below 400
// counts as success.
func normalizeResponse(body []byte, statusCode int) normalized {
	var env envelope
	if len(body) > 0 {
		// A body that is not JSON is treated as an empty envelope; the
		// status code alone decides the verdict then.
		_ = json.Unmarshal(body, &env)
	}

	if env.ResponseCode == ErrorResponseCode {
		return normalized{
			success: false,
			code:    ErrorResponseCode,
			message: env.Message,
			logID:   env.LogID,
			errors:  env.Errors,
			data:    env.Data,
		}
	}

	if env.Success != nil {
		code := env.Code
		if code == "" {
			code = env.ResponseCode
		}
		if code == "" {
			code = strconv.Itoa(statusCode)
		}
		return normalized{
			success: *env.Success,
			code:    code,
			message: env.Message,
			logID:   env.LogID,
			errors:  env.Errors,
			data:    env.Data,
		}
	}

	code := env.ResponseCode
	if code == "" {
		code = strconv.Itoa(statusCode)
	}
	message := env.Message
	if message == "" {
		message = "Request processed"
	}
	return normalized{
		success: statusCode < 400,
		code:    code,
		message: message,
		logID:   env.LogID,
		errors:  env.Errors,
		data:    env.Data,
	}
}
