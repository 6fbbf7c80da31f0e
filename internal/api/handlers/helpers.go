package handlers

import (
	"log/slog"
	"net/http"

	"github.com/kwatiwellness/commerce-platform/internal/api/middleware"
	"github.com/kwatiwellness/commerce-platform/internal/errors"
	"github.com/kwatiwellness/commerce-platform/internal/models"
	"github.com/kwatiwellness/commerce-platform/internal/utils/response"
)

// claimsFromRequest pulls the authenticated claims placed on the context by
// the auth middleware. On a missing claim it writes the 401 and returns
// ok=false so handlers can bail with a single call.
func claimsFromRequest(w http.ResponseWriter, r *http.Request) (*models.Claims, bool) {

	claims, ok := r.Context().Value(middleware.UserContextKey).(*models.Claims)
	if !ok {
		slog.Warn("Unauthenticated request", slog.String("path", r.URL.Path))
		response.Error(w, errors.UnauthorizedError("Authentication required"))
		return nil, false
	}

	return claims, true
}
