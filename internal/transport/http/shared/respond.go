package shared

import (
	"encoding/json"
	"net/http"

	dErrors "github.com/HasbiyallahuJafaru/E-KYC/pkg/domain-errors"
)

type errorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// WriteJSON encodes v with the given status. Encoding failures are
// swallowed; headers are already on the wire by then.
func WriteJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// WriteError translates a domain error into its HTTP shape. Uncoded
// errors collapse to a generic 500 so internals never leak.
func WriteError(w http.ResponseWriter, err error) {
	code := dErrors.GetCode(err)
	WriteJSON(w, dErrors.ToHTTPStatus(code), errorBody{
		Code:    string(code),
		Message: dErrors.ClientMessage(err),
	})
}
