// internal/app/system/httpjson/params.go
package httpjson

import (
	"net/http"

	"github.com/dalemusser/congregate/internal/app/system/apierr"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ParamID parses a chi URL parameter as an ObjectID. A malformed id is
// a Validation error: the caller never even reached a lookup.
func ParamID(r *http.Request, name string) (primitive.ObjectID, error) {
	raw := chi.URLParam(r, name)
	id, err := primitive.ObjectIDFromHex(raw)
	if err != nil {
		return primitive.NilObjectID, apierr.Validationf("%s must be a valid object id", name)
	}
	return id, nil
}

// ParseID parses an ObjectID from a request body field.
func ParseID(raw, field string) (primitive.ObjectID, error) {
	id, err := primitive.ObjectIDFromHex(raw)
	if err != nil {
		return primitive.NilObjectID, apierr.Validationf("%s must be a valid object id", field)
	}
	return id, nil
}
