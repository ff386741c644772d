package testutil

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"sync"

	"github.com/go-chi/chi/v5"

	"scm-gateway/internal/models"
)

// FakeSCM is an in-memory SCM REST API served over httptest.
type FakeSCM struct {
	Server *httptest.Server

	mu sync.Mutex

	CustomerURI string
	Login       string
	Password    string

	Certificates  []models.RemoteCertificate
	Chains        map[int]string
	Organizations []models.Organization
	OrgDetails    map[int]models.OrganizationDetails
	CustomFields  []models.CustomFieldDefinition
	Profiles      []models.Profile
	Persons       []models.Person

	// DetailErrors makes GET /ssl/v1/{id} fail with a server error for the listed ids.
	DetailErrors map[int]bool
	// CollectFailures is the number of collect calls that fail before the chain is served.
	CollectFailures map[int]int
	// AbortPageAt aborts the connection when a page at this position is requested; -1 disables.
	AbortPageAt int
	// EnrollStatus is the status given to certificates created by enroll and renew.
	EnrollStatus     string
	EnrollCommonName string
	NextSSLID        int

	PageRequests    []PageRequest
	Enrollments     []models.EnrollmentRequest
	Reissues        map[int]models.ReissueRequest
	Renewals        []int
	Revocations     map[int]models.RevokeRequest
	CollectCalls    map[int]int
	DetailCalls     map[int]int
	LastHeaders     http.Header
	OnPageRequested func(position int)
}

type PageRequest struct {
	Position int
	Size     int
	Filter   string
}

func NewFakeSCM() *FakeSCM {
	f := &FakeSCM{
		CustomerURI:     "acme",
		Login:           "api-user",
		Password:        "secret",
		Chains:          make(map[int]string),
		OrgDetails:      make(map[int]models.OrganizationDetails),
		DetailErrors:    make(map[int]bool),
		CollectFailures: make(map[int]int),
		AbortPageAt:     -1,
		EnrollStatus:    "Issued",
		NextSSLID:       1000,
		Reissues:        make(map[int]models.ReissueRequest),
		Revocations:     make(map[int]models.RevokeRequest),
		CollectCalls:    make(map[int]int),
		DetailCalls:     make(map[int]int),
	}

	r := chi.NewRouter()
	r.Use(f.authenticate)
	r.Route("/api", func(r chi.Router) {
		r.Get("/ssl/v1", f.handlePage)
		r.Get("/ssl/v1/customFields", f.handleCustomFields)
		r.Get("/ssl/v1/types", f.handleTypes)
		r.Get("/ssl/v1/{id}", f.handleDetail)
		r.Post("/ssl/v1/enroll", f.handleEnroll)
		r.Post("/ssl/v1/renewById/{id}", f.handleRenew)
		r.Post("/ssl/v1/replace/{id}", f.handleReissue)
		r.Post("/ssl/v1/revoke/{id}", f.handleRevoke)
		r.Get("/ssl/v1/collect/{id}/x509CO", f.handleCollect)
		r.Get("/organization/v1", f.handleOrganizations)
		r.Get("/organization/v1/{id}", f.handleOrganizationDetails)
		r.Get("/person/v1", f.handlePersons)
	})

	f.Server = httptest.NewServer(r)
	return f
}

func (f *FakeSCM) URL() string {
	return f.Server.URL + "/"
}

func (f *FakeSCM) Close() {
	f.Server.Close()
}

// AddCertificate appends an inventory entry and, when chain is non-empty, its downloadable PEM chain.
func (f *FakeSCM) AddCertificate(cert models.RemoteCertificate, chain string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.Certificates = append(f.Certificates, cert)
	if chain != "" {
		f.Chains[cert.SSLID] = chain
	}
}

func (f *FakeSCM) SetChain(sslID int, chain string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.Chains[sslID] = chain
}

func (f *FakeSCM) GetPageRequests() []PageRequest {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]PageRequest(nil), f.PageRequests...)
}

func (f *FakeSCM) GetCollectCalls(sslID int) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.CollectCalls[sslID]
}

func (f *FakeSCM) authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		f.mu.Lock()
		f.LastHeaders = r.Header.Clone()
		ok := r.Header.Get("customerUri") == f.CustomerURI && r.Header.Get("login") == f.Login &&
			(f.Password == "" || r.Header.Get("password") == f.Password)
		f.mu.Unlock()

		if !ok {
			writeSCMError(w, http.StatusUnauthorized, -16, "Unknown user")
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (f *FakeSCM) handlePage(w http.ResponseWriter, r *http.Request) {
	position, _ := strconv.Atoi(r.URL.Query().Get("position"))
	size, _ := strconv.Atoi(r.URL.Query().Get("size"))
	filter := r.URL.Query().Get("sslTypeId")

	f.mu.Lock()
	f.PageRequests = append(f.PageRequests, PageRequest{Position: position, Size: size, Filter: filter})
	abort := f.AbortPageAt >= 0 && position == f.AbortPageAt
	hook := f.OnPageRequested

	var matching []models.RemoteCertificate
	for _, c := range f.Certificates {
		if filter == "" || strconv.Itoa(c.CertType.ID) == filter {
			matching = append(matching, c)
		}
	}
	f.mu.Unlock()

	if hook != nil {
		hook(position)
	}

	if abort {
		panic(http.ErrAbortHandler)
	}

	page := []map[string]any{}
	for i := position; i < len(matching) && i < position+size; i++ {
		page = append(page, map[string]any{
			"sslId":        matching[i].SSLID,
			"commonName":   matching[i].CommonName,
			"serialNumber": matching[i].SerialNumber,
		})
	}
	writeJSON(w, http.StatusOK, page)
}

func (f *FakeSCM) handleDetail(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		writeSCMError(w, http.StatusBadRequest, -1, "invalid id")
		return
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	f.DetailCalls[id]++

	if f.DetailErrors[id] {
		writeSCMError(w, http.StatusInternalServerError, -1, "detail lookup failed")
		return
	}

	for _, c := range f.Certificates {
		if c.SSLID == id {
			writeJSON(w, http.StatusOK, c)
			return
		}
	}
	writeSCMError(w, http.StatusNotFound, -1101, "Certificate not found")
}

func (f *FakeSCM) handleEnroll(w http.ResponseWriter, r *http.Request) {
	var req models.EnrollmentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeSCMError(w, http.StatusBadRequest, -1, err.Error())
		return
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	f.Enrollments = append(f.Enrollments, req)
	id := f.newCertificateLocked(req.CertType)
	writeJSON(w, http.StatusOK, models.EnrollResponse{SSLID: id, RenewID: "renew-" + strconv.Itoa(id)})
}

func (f *FakeSCM) handleRenew(w http.ResponseWriter, r *http.Request) {
	id, _ := strconv.Atoi(chi.URLParam(r, "id"))

	f.mu.Lock()
	defer f.mu.Unlock()
	f.Renewals = append(f.Renewals, id)

	for _, c := range f.Certificates {
		if c.SSLID == id {
			newID := f.newCertificateLocked(c.CertType.ID)
			writeJSON(w, http.StatusOK, models.EnrollResponse{SSLID: newID})
			return
		}
	}
	writeSCMError(w, http.StatusNotFound, -1101, "Certificate not found")
}

func (f *FakeSCM) handleReissue(w http.ResponseWriter, r *http.Request) {
	id, _ := strconv.Atoi(chi.URLParam(r, "id"))

	var req models.ReissueRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeSCMError(w, http.StatusBadRequest, -1, err.Error())
		return
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	f.Reissues[id] = req
	w.WriteHeader(http.StatusNoContent)
}

func (f *FakeSCM) handleRevoke(w http.ResponseWriter, r *http.Request) {
	id, _ := strconv.Atoi(chi.URLParam(r, "id"))

	var req models.RevokeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeSCMError(w, http.StatusBadRequest, -1, err.Error())
		return
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	for i, c := range f.Certificates {
		if c.SSLID == id {
			f.Revocations[id] = req
			f.Certificates[i].Status = "Revoked"
			w.WriteHeader(http.StatusNoContent)
			return
		}
	}
	writeSCMError(w, http.StatusNotFound, -1101, "Certificate not found")
}

func (f *FakeSCM) handleCollect(w http.ResponseWriter, r *http.Request) {
	id, _ := strconv.Atoi(chi.URLParam(r, "id"))

	f.mu.Lock()
	defer f.mu.Unlock()
	f.CollectCalls[id]++

	if f.CollectFailures[id] > 0 {
		f.CollectFailures[id]--
		writeSCMError(w, http.StatusBadRequest, -1400, "Certificate is not issued yet")
		return
	}

	chain, ok := f.Chains[id]
	if !ok {
		writeSCMError(w, http.StatusBadRequest, -1400, "Certificate is not issued yet")
		return
	}

	w.Header().Set("Content-Type", "application/x-pem-file")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(chain))
}

func (f *FakeSCM) handleCustomFields(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()
	writeJSON(w, http.StatusOK, nonNil(f.CustomFields))
}

func (f *FakeSCM) handleTypes(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()
	writeJSON(w, http.StatusOK, nonNil(f.Profiles))
}

func (f *FakeSCM) handleOrganizations(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()
	writeJSON(w, http.StatusOK, nonNil(f.Organizations))
}

func (f *FakeSCM) handleOrganizationDetails(w http.ResponseWriter, r *http.Request) {
	id, _ := strconv.Atoi(chi.URLParam(r, "id"))

	f.mu.Lock()
	defer f.mu.Unlock()
	details, ok := f.OrgDetails[id]
	if !ok {
		writeSCMError(w, http.StatusNotFound, -1, "Organization not found")
		return
	}
	writeJSON(w, http.StatusOK, details)
}

func (f *FakeSCM) handlePersons(w http.ResponseWriter, r *http.Request) {
	position, _ := strconv.Atoi(r.URL.Query().Get("position"))
	size, _ := strconv.Atoi(r.URL.Query().Get("size"))
	orgID, _ := strconv.Atoi(r.URL.Query().Get("organizationId"))

	f.mu.Lock()
	defer f.mu.Unlock()

	var matching []models.Person
	for _, p := range f.Persons {
		if p.OrganizationID == orgID {
			matching = append(matching, p)
		}
	}

	page := []models.Person{}
	for i := position; i < len(matching) && i < position+size; i++ {
		page = append(page, matching[i])
	}
	writeJSON(w, http.StatusOK, page)
}

func (f *FakeSCM) newCertificateLocked(certType int) int {
	id := f.NextSSLID
	f.NextSSLID++
	f.Certificates = append(f.Certificates, models.RemoteCertificate{
		SSLID:      id,
		CommonName: f.EnrollCommonName,
		CertType:   models.Profile{ID: certType},
		Status:     f.EnrollStatus,
	})
	return id
}

func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeSCMError(w http.ResponseWriter, status, code int, description string) {
	writeJSON(w, status, map[string]any{"code": code, "description": description})
}

func (f *FakeSCM) GetLastHeaders() http.Header {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.LastHeaders.Clone()
}

func (f *FakeSCM) GetEnrollments() []models.EnrollmentRequest {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]models.EnrollmentRequest(nil), f.Enrollments...)
}

func (f *FakeSCM) GetRevocation(sslID int) (models.RevokeRequest, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	req, ok := f.Revocations[sslID]
	return req, ok
}

func (f *FakeSCM) GetReissue(sslID int) (models.ReissueRequest, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	req, ok := f.Reissues[sslID]
	return req, ok
}

func (f *FakeSCM) GetRenewals() []int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]int(nil), f.Renewals...)
}

func (f *FakeSCM) GetDetailCalls(sslID int) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.DetailCalls[sslID]
}
