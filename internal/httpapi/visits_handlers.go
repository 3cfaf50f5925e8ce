package httpapi

import (
	"net/http"
	"time"

	"medreport-platform/internal/auth"
	"medreport-platform/internal/rbac"
	"medreport-platform/internal/visits"

	"github.com/gin-gonic/gin"
)

// ListVisits lists patient visits within the caller's hospital scope. The
// scope resolved by rbac.WithHospitalScope always wins over the
// client-supplied hospital_code filter for restricted callers.
func (h Handlers) ListVisits(c *gin.Context) {
	scope, ok := rbac.ScopeFrom(c.Request.Context())
	if !ok {
		respondErr(c, auth.ErrAuthenticationRequired)
		return
	}

	req := visits.ListRequest{
		HospitalCode: c.Query("hospital_code"),
		DiseaseCode:  c.Query("disease_code"),
	}
	var badTime bool
	req.From, badTime = parseTimeParam(c, "from", badTime)
	req.To, badTime = parseTimeParam(c, "to", badTime)
	if badTime {
		respondBadRequest(c, "from/to must be RFC3339 timestamps")
		return
	}

	list, err := h.Visits.List(c.Request.Context(), scope, req)
	if err != nil {
		respondErr(c, err)
		return
	}
	respondOK(c, http.StatusOK, "ok", list)
}

// ExportVisits returns the full scoped listing in one payload. It sits
// behind an explicit grant (deny-by-default) rather than the role hierarchy;
// the spreadsheet rendering itself is a client concern.
func (h Handlers) ExportVisits(c *gin.Context) {
	scope, ok := rbac.ScopeFrom(c.Request.Context())
	if !ok {
		respondErr(c, auth.ErrAuthenticationRequired)
		return
	}

	list, err := h.Visits.List(c.Request.Context(), scope, visits.ListRequest{})
	if err != nil {
		respondErr(c, err)
		return
	}
	respondOK(c, http.StatusOK, "ok", gin.H{"count": len(list), "visits": list})
}

func parseTimeParam(c *gin.Context, name string, alreadyBad bool) (time.Time, bool) {
	raw := c.Query(name)
	if raw == "" {
		return time.Time{}, alreadyBad
	}
	t, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return time.Time{}, true
	}
	return t, alreadyBad
}
