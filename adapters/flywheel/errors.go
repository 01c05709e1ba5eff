package flywheel

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/naccdata/flywheel-extensions/domain/model"
)

// newAPIError builds a model.APIError from a non-success response body.
// Flywheel reports {"message": "...", "status_code": N}.
func newAPIError(status int, body []byte) *model.APIError {
	apiErr := &model.APIError{StatusCode: status}
	var errResp struct {
		Message string `json:"message"`
		Error   string `json:"error"`
	}
	if json.Unmarshal(body, &errResp) == nil {
		if errResp.Message != "" {
			apiErr.Message = errResp.Message
		} else if errResp.Error != "" {
			apiErr.Message = errResp.Error
		}
	}
	if apiErr.Message == "" {
		apiErr.Message = strings.TrimSpace(string(body))
	}
	if apiErr.Message == "" {
		apiErr.Message = http.StatusText(status)
	}
	return apiErr
}
