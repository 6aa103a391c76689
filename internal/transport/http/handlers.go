package httptransport

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"

	dErrors "classtrack/pkg/domain-errors"
	"classtrack/pkg/platform/httputil"
)

// decode parses the JSON body into dst and runs struct tag validation.
// Returned errors already carry a domain code and can go straight to
// httputil.WriteError.
func (h *Handler) decode(r *http.Request, dst any) error {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return dErrors.New(dErrors.CodeBadRequest, "invalid request body")
	}
	if err := h.validate.Struct(dst); err != nil {
		var invalid validator.ValidationErrors
		if errors.As(err, &invalid) {
			fields := make([]string, 0, len(invalid))
			for _, fe := range invalid {
				fields = append(fields, fe.Field())
			}
			return dErrors.New(dErrors.CodeValidation,
				"Field not valid: ["+strings.Join(fields, ", ")+"]")
		}
		return dErrors.Wrap(err, dErrors.CodeInternal, "validation failed")
	}
	return nil
}

func (h *Handler) writeError(w http.ResponseWriter, err error) {
	httputil.WriteError(w, err)
}
