package response

import (
	"mecanica_hub/internal/domain/entities"
	"time"
)

type ServiceRequestResponse struct {
	ID            string    `json:"id"`
	CaseNumber    string    `json:"case_number"`
	ClientID      string    `json:"client_id"`
	MechanicID    string    `json:"mechanic_id,omitempty"`
	ServiceTypeID string    `json:"service_type_id"`
	Description   string    `json:"description"`
	Address       string    `json:"address"`
	ScheduledAt   time.Time `json:"scheduled_at"`
	Price         *float64  `json:"price,omitempty"`
	MechanicNotes string    `json:"mechanic_notes,omitempty"`
	Status        string    `json:"status"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

type UserResponse struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email,omitempty"`
}

type ServiceTypeResponse struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// ServiceRequestDetailsResponse adds the parties and catalog entry. Relations
// the directory could not resolve are omitted.
type ServiceRequestDetailsResponse struct {
	ServiceRequestResponse
	Client      *UserResponse        `json:"client,omitempty"`
	Mechanic    *UserResponse        `json:"mechanic,omitempty"`
	ServiceType *ServiceTypeResponse `json:"service_type,omitempty"`
}

type AllowedTransitionsResponse struct {
	ServiceRequestID string   `json:"service_request_id"`
	Transitions      []string `json:"transitions"`
}

func FromServiceRequest(sr entities.ServiceRequest) ServiceRequestResponse {
	return ServiceRequestResponse{
		ID:            sr.ID,
		CaseNumber:    sr.CaseNumber,
		ClientID:      sr.ClientID,
		MechanicID:    sr.MechanicID,
		ServiceTypeID: sr.ServiceTypeID,
		Description:   sr.Description,
		Address:       sr.Address,
		ScheduledAt:   sr.ScheduledAt,
		Price:         sr.Price,
		MechanicNotes: sr.MechanicNotes,
		Status:        string(sr.Status),
		CreatedAt:     sr.CreatedAt,
		UpdatedAt:     sr.UpdatedAt,
	}
}

func FromServiceRequests(list []entities.ServiceRequest) []ServiceRequestResponse {
	out := make([]ServiceRequestResponse, 0, len(list))
	for _, sr := range list {
		out = append(out, FromServiceRequest(sr))
	}
	return out
}

func FromServiceRequestDetails(d entities.ServiceRequestDetails) ServiceRequestDetailsResponse {
	resp := ServiceRequestDetailsResponse{ServiceRequestResponse: FromServiceRequest(d.ServiceRequest)}
	if d.Client.ID != "" {
		resp.Client = fromUser(d.Client)
	}
	if d.Mechanic != nil && d.Mechanic.ID != "" {
		resp.Mechanic = fromUser(*d.Mechanic)
	}
	if d.ServiceType.ID != "" {
		resp.ServiceType = &ServiceTypeResponse{ID: d.ServiceType.ID, Name: d.ServiceType.Name}
	}
	return resp
}

func FromAllowedTransitions(id string, statuses []entities.ServiceStatus) AllowedTransitionsResponse {
	out := make([]string, 0, len(statuses))
	for _, s := range statuses {
		out = append(out, string(s))
	}
	return AllowedTransitionsResponse{ServiceRequestID: id, Transitions: out}
}

func fromUser(u entities.User) *UserResponse {
	return &UserResponse{ID: u.ID, Name: u.Name, Email: u.Email}
}
