package visits

import "time"

// Visit is one reported patient visit. The auth core only cares about
// HospitalCode; the clinical fields are carried through untouched.
type Visit struct {
	ID           int64     `json:"id"`
	HospitalCode string    `json:"hospital_code"`
	DiseaseCode  string    `json:"disease_code"`
	PatientRef   string    `json:"patient_ref"`
	VisitedAt    time.Time `json:"visited_at"`
}

// ListRequest is the client-supplied filter. HospitalCode here is a request
// parameter only; for scoped callers it is overwritten by the caller's
// hospital scope before the query runs.
type ListRequest struct {
	HospitalCode string
	DiseaseCode  string
	From         time.Time
	To           time.Time
}
