package atlassian

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"sort"
)

// Error represents an Atlassian REST error response. Jira reports
// errorMessages/errors, Confluence reports a single message; unparseable
// bodies are carried verbatim in Message.
type Error struct {
	StatusCode    int               `json:"-"`
	Message       string            `json:"message"`
	ErrorMessages []string          `json:"errorMessages"`
	Errors        map[string]string `json:"errors"`
}

func (e *Error) Error() string {
	if e == nil {
		return "<nil>"
	}

	if e.Message != "" {
		return fmt.Sprintf("atlassian: %d %s", e.StatusCode, e.Message)
	}

	if len(e.ErrorMessages) > 0 {
		return fmt.Sprintf("atlassian: %d %s", e.StatusCode, e.ErrorMessages[0])
	}

	if len(e.Errors) > 0 {
		fields := make([]string, 0, len(e.Errors))
		for field := range e.Errors {
			fields = append(fields, field)
		}
		sort.Strings(fields)
		return fmt.Sprintf("atlassian: %d %s: %s", e.StatusCode, fields[0], e.Errors[fields[0]])
	}

	return fmt.Sprintf("atlassian: %d", e.StatusCode)
}

// IsStatus reports whether err is an Atlassian error with the given HTTP status.
func IsStatus(err error, status int) bool {
	var apiErr *Error
	return errors.As(err, &apiErr) && apiErr.StatusCode == status
}

// StatusCode extracts the HTTP status from an Atlassian error, or 0.
func StatusCode(err error) int {
	var apiErr *Error
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode
	}
	return 0
}

func parseError(res *http.Response) error {
	data, _ := io.ReadAll(res.Body)
	errRes := &Error{StatusCode: res.StatusCode}
	if len(data) > 0 {
		_ = json.Unmarshal(data, errRes)
	}

	if errRes.Message == "" && len(errRes.ErrorMessages) == 0 && len(errRes.Errors) == 0 {
		errRes.Message = string(data)
	}

	return errRes
}
