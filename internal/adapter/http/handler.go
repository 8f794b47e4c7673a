package http

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"

	"github.com/hearthside/leaseiq/internal/app"
	"github.com/hearthside/leaseiq/internal/domain"
)

const timeFormat = "2006-01-02T15:04:05Z"

// PropertyResponse is the API representation of a property.
type PropertyResponse struct {
	ID              string  `json:"id" doc:"Unique identifier"`
	Name            string  `json:"name" doc:"Display name"`
	Address         string  `json:"address" doc:"Street address"`
	City            string  `json:"city" doc:"City"`
	State           string  `json:"state" doc:"State or region"`
	PostalCode      string  `json:"postal_code" doc:"Postal code"`
	Latitude        float64 `json:"latitude" doc:"Latitude"`
	Longitude       float64 `json:"longitude" doc:"Longitude"`
	PricePerMonth   float64 `json:"price_per_month" doc:"Monthly rent"`
	SecurityDeposit float64 `json:"security_deposit" doc:"Security deposit"`
	ManagerID       string  `json:"manager_id" doc:"Managing agent ID"`
	CreatedAt       string  `json:"created_at" doc:"Creation timestamp (ISO 8601)"`
	UpdatedAt       string  `json:"updated_at" doc:"Last update timestamp (ISO 8601)"`
}

func toPropertyResponse(p domain.Property) PropertyResponse {
	return PropertyResponse{
		ID:              p.ID,
		Name:            p.Name,
		Address:         p.Location.Address,
		City:            p.Location.City,
		State:           p.Location.State,
		PostalCode:      p.Location.PostalCode,
		Latitude:        p.Location.Latitude,
		Longitude:       p.Location.Longitude,
		PricePerMonth:   p.PricePerMonth,
		SecurityDeposit: p.SecurityDeposit,
		ManagerID:       p.ManagerID,
		CreatedAt:       p.CreatedAt.Format(timeFormat),
		UpdatedAt:       p.UpdatedAt.Format(timeFormat),
	}
}

// TenantResponse is the API representation of a tenant profile.
type TenantResponse struct {
	ID          string `json:"id" doc:"External identity ID"`
	Name        string `json:"name" doc:"Full name"`
	Email       string `json:"email" doc:"Contact email"`
	PhoneNumber string `json:"phone_number" doc:"Contact phone number"`
	CreatedAt   string `json:"created_at" doc:"Creation timestamp (ISO 8601)"`
}

func toTenantResponse(t domain.Tenant) TenantResponse {
	return TenantResponse{
		ID:          t.ID,
		Name:        t.Name,
		Email:       t.Email,
		PhoneNumber: t.PhoneNumber,
		CreatedAt:   t.CreatedAt.Format(timeFormat),
	}
}

// LeaseResponse is the API representation of a lease.
type LeaseResponse struct {
	ID         string  `json:"id" doc:"Unique identifier"`
	StartDate  string  `json:"start_date" doc:"Lease start (ISO 8601)"`
	EndDate    string  `json:"end_date" doc:"Lease end (ISO 8601)"`
	Rent       float64 `json:"rent" doc:"Monthly rent locked in at approval"`
	Deposit    float64 `json:"deposit" doc:"Security deposit locked in at approval"`
	PropertyID string  `json:"property_id" doc:"Leased property ID"`
	TenantID   string  `json:"tenant_id" doc:"Tenant holding the lease"`
}

func toLeaseResponse(l domain.Lease) LeaseResponse {
	return LeaseResponse{
		ID:         l.ID,
		StartDate:  l.StartDate.Format(timeFormat),
		EndDate:    l.EndDate.Format(timeFormat),
		Rent:       l.Rent,
		Deposit:    l.Deposit,
		PropertyID: l.PropertyID,
		TenantID:   l.TenantID,
	}
}

// ProfilePayload carries the optional applicant background fields. Absent
// fields are omitted from responses rather than serialized as nulls.
type ProfilePayload struct {
	CurrentAddress  *string  `json:"current_address,omitempty" required:"false" doc:"Current residential address"`
	YearsAtAddress  *float64 `json:"years_at_address,omitempty" required:"false" doc:"Years at current address"`
	ReasonForMoving *string  `json:"reason_for_moving,omitempty" required:"false" doc:"Reason for moving"`
	EmployerName    *string  `json:"employer_name,omitempty" required:"false" doc:"Current employer"`
	YearsEmployed   *float64 `json:"years_employed,omitempty" required:"false" doc:"Years with current employer"`
	MonthlyIncome   *float64 `json:"monthly_income,omitempty" required:"false" doc:"Gross monthly income"`
	Occupants       *int     `json:"occupants,omitempty" required:"false" doc:"Number of occupants"`
	HasPets         bool     `json:"has_pets,omitempty" required:"false" doc:"Applicant has pets"`
	HasBankruptcy   bool     `json:"has_bankruptcy,omitempty" required:"false" doc:"Prior bankruptcy disclosure"`
	HasEviction     bool     `json:"has_eviction,omitempty" required:"false" doc:"Prior eviction disclosure"`
	HasRefusedRent  bool     `json:"has_refused_rent,omitempty" required:"false" doc:"Prior refused rent disclosure"`
	HasFelony       bool     `json:"has_felony,omitempty" required:"false" doc:"Felony conviction disclosure"`
}

func (p ProfilePayload) toDomain() domain.ApplicantProfile {
	return domain.ApplicantProfile{
		CurrentAddress:  p.CurrentAddress,
		YearsAtAddress:  p.YearsAtAddress,
		ReasonForMoving: p.ReasonForMoving,
		EmployerName:    p.EmployerName,
		YearsEmployed:   p.YearsEmployed,
		MonthlyIncome:   p.MonthlyIncome,
		Occupants:       p.Occupants,
		HasPets:         p.HasPets,
		HasBankruptcy:   p.HasBankruptcy,
		HasEviction:     p.HasEviction,
		HasRefusedRent:  p.HasRefusedRent,
		HasFelony:       p.HasFelony,
	}
}

func toProfilePayload(p domain.ApplicantProfile) ProfilePayload {
	return ProfilePayload{
		CurrentAddress:  p.CurrentAddress,
		YearsAtAddress:  p.YearsAtAddress,
		ReasonForMoving: p.ReasonForMoving,
		EmployerName:    p.EmployerName,
		YearsEmployed:   p.YearsEmployed,
		MonthlyIncome:   p.MonthlyIncome,
		Occupants:       p.Occupants,
		HasPets:         p.HasPets,
		HasBankruptcy:   p.HasBankruptcy,
		HasEviction:     p.HasEviction,
		HasRefusedRent:  p.HasRefusedRent,
		HasFelony:       p.HasFelony,
	}
}

// ApplicationResponse is the joined API representation of an application
// with its property, tenant, and resolved lease.
type ApplicationResponse struct {
	ID              string           `json:"id" doc:"Unique identifier"`
	PropertyID      string           `json:"property_id" doc:"Property applied for"`
	TenantID        string           `json:"tenant_id" doc:"Applying tenant"`
	Status          string           `json:"status" doc:"Application status" enum:"Pending,Approved,Denied"`
	ApplicationDate string           `json:"application_date" doc:"Submission timestamp (ISO 8601)"`
	Name            string           `json:"name" doc:"Applicant name"`
	Email           string           `json:"email" doc:"Applicant email"`
	PhoneNumber     string           `json:"phone_number" doc:"Applicant phone number"`
	Profile         ProfilePayload   `json:"profile" doc:"Optional background fields"`
	LeaseID         *string          `json:"lease_id,omitempty" doc:"Lease issued at approval"`
	Property        PropertyResponse `json:"property" doc:"Joined property record"`
	Tenant          TenantResponse   `json:"tenant" doc:"Joined tenant record"`
	Lease           *LeaseResponse   `json:"lease,omitempty" doc:"Resolved lease, if any"`
	NextPaymentDate *string          `json:"next_payment_date,omitempty" doc:"Next rent due date (ISO 8601)"`
	CreatedAt       string           `json:"created_at" doc:"Creation timestamp (ISO 8601)"`
	UpdatedAt       string           `json:"updated_at" doc:"Last update timestamp (ISO 8601)"`
}

func toApplicationResponse(d domain.ApplicationDetail) ApplicationResponse {
	resp := ApplicationResponse{
		ID:              d.ID,
		PropertyID:      d.PropertyID,
		TenantID:        d.TenantID,
		Status:          string(d.Status),
		ApplicationDate: d.ApplicationDate.Format(timeFormat),
		Name:            d.Name,
		Email:           d.Email,
		PhoneNumber:     d.PhoneNumber,
		Profile:         toProfilePayload(d.Profile),
		LeaseID:         d.LeaseID,
		Property:        toPropertyResponse(d.Property),
		Tenant:          toTenantResponse(d.Tenant),
		CreatedAt:       d.CreatedAt.Format(timeFormat),
		UpdatedAt:       d.UpdatedAt.Format(timeFormat),
	}
	if d.Lease != nil {
		lease := toLeaseResponse(*d.Lease)
		resp.Lease = &lease
	}
	if d.NextPaymentDate != nil {
		next := d.NextPaymentDate.Format(timeFormat)
		resp.NextPaymentDate = &next
	}
	return resp
}

// --- Submit Application ---

type SubmitApplicationInput struct {
	Body struct {
		PropertyID      string     `json:"property_id" required:"false" doc:"Property to apply for"`
		TenantID        string     `json:"tenant_id" required:"false" doc:"Applying tenant"`
		Name            string     `json:"name" required:"false" doc:"Applicant name"`
		Email           string     `json:"email" required:"false" doc:"Applicant email"`
		PhoneNumber     string     `json:"phone_number" required:"false" doc:"Applicant phone number"`
		ApplicationDate *time.Time `json:"application_date,omitempty" required:"false" doc:"Submission timestamp; defaults to now"`
		ProfilePayload
	}
}

type SubmitApplicationOutput struct {
	Body ApplicationResponse
}

// --- Get Application ---

type GetApplicationInput struct {
	ID string `path:"id" doc:"Application ID"`
}

type GetApplicationOutput struct {
	Body ApplicationResponse
}

// --- List Applications ---

type ListApplicationsInput struct {
	TenantID  string `query:"tenant_id" required:"false" doc:"Select applications submitted by this tenant"`
	ManagerID string `query:"manager_id" required:"false" doc:"Select applications against this manager's properties"`
}

type ListApplicationsOutput struct {
	Body []ApplicationResponse
}

// --- Update Application Status ---

type UpdateStatusInput struct {
	ID   string `path:"id" doc:"Application ID"`
	Body struct {
		Status string `json:"status" required:"false" doc:"Target status (case-sensitive)"`
	}
}

type UpdateStatusOutput struct {
	Body ApplicationResponse
}

// --- Create Property ---

type CreatePropertyInput struct {
	Body struct {
		Name            string  `json:"name" minLength:"1" maxLength:"255" doc:"Display name"`
		Address         string  `json:"address" minLength:"1" doc:"Street address"`
		City            string  `json:"city" minLength:"1" doc:"City"`
		State           string  `json:"state" minLength:"1" doc:"State or region"`
		PostalCode      string  `json:"postal_code" minLength:"1" doc:"Postal code"`
		Latitude        float64 `json:"latitude" required:"false" doc:"Latitude"`
		Longitude       float64 `json:"longitude" required:"false" doc:"Longitude"`
		PricePerMonth   float64 `json:"price_per_month" minimum:"0" doc:"Monthly rent"`
		SecurityDeposit float64 `json:"security_deposit" minimum:"0" doc:"Security deposit"`
		ManagerID       string  `json:"manager_id" minLength:"1" doc:"Managing agent ID"`
	}
}

type CreatePropertyOutput struct {
	Body PropertyResponse
}

// --- Get Property ---

type GetPropertyInput struct {
	ID string `path:"id" doc:"Property ID"`
}

type GetPropertyOutput struct {
	Body PropertyResponse
}

// --- List Properties ---

type ListPropertiesInput struct {
	ManagerID string `query:"manager_id" required:"false" doc:"Filter by managing agent"`
	Limit     int    `query:"limit" required:"false" default:"50" doc:"Max results"`
	Offset    int    `query:"offset" required:"false" default:"0" doc:"Pagination offset"`
}

type ListPropertiesOutput struct {
	Body []PropertyResponse
}

// --- Register Tenant ---

type RegisterTenantInput struct {
	ID   string `path:"id" doc:"External identity ID"`
	Body struct {
		Name        string `json:"name" minLength:"1" maxLength:"255" doc:"Full name"`
		Email       string `json:"email" minLength:"1" doc:"Contact email"`
		PhoneNumber string `json:"phone_number" minLength:"1" doc:"Contact phone number"`
	}
}

type RegisterTenantOutput struct {
	Body TenantResponse
}

// --- Get Tenant ---

type GetTenantInput struct {
	ID string `path:"id" doc:"Tenant ID"`
}

type GetTenantOutput struct {
	Body TenantResponse
}

// Register adds all API routes to the Huma API.
func Register(api huma.API, applications *app.ApplicationService, properties *app.PropertyService, tenants *app.TenantService) {
	registerApplications(api, applications)
	registerProperties(api, properties)
	registerTenants(api, tenants)
}

func registerApplications(api huma.API, svc *app.ApplicationService) {
	huma.Register(api, huma.Operation{
		OperationID:   "submit-application",
		Method:        http.MethodPost,
		Path:          "/api/v1/applications",
		Summary:       "Submit a rental application",
		Tags:          []string{"Applications"},
		DefaultStatus: http.StatusCreated,
	}, func(ctx context.Context, input *SubmitApplicationInput) (*SubmitApplicationOutput, error) {
		detail, err := svc.Submit(ctx, domain.Submission{
			PropertyID:      input.Body.PropertyID,
			TenantID:        input.Body.TenantID,
			Name:            input.Body.Name,
			Email:           input.Body.Email,
			PhoneNumber:     input.Body.PhoneNumber,
			ApplicationDate: input.Body.ApplicationDate,
			Profile:         input.Body.ProfilePayload.toDomain(),
		})
		if err != nil {
			return nil, toHumaError(err)
		}
		return &SubmitApplicationOutput{Body: toApplicationResponse(detail)}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "get-application",
		Method:      http.MethodGet,
		Path:        "/api/v1/applications/{id}",
		Summary:     "Get an application by ID",
		Tags:        []string{"Applications"},
	}, func(ctx context.Context, input *GetApplicationInput) (*GetApplicationOutput, error) {
		detail, err := svc.Get(ctx, input.ID)
		if err != nil {
			return nil, toHumaError(err)
		}
		return &GetApplicationOutput{Body: toApplicationResponse(detail)}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "list-applications",
		Method:      http.MethodGet,
		Path:        "/api/v1/applications",
		Summary:     "List applications for a tenant or a manager",
		Tags:        []string{"Applications"},
	}, func(ctx context.Context, input *ListApplicationsInput) (*ListApplicationsOutput, error) {
		// Exactly one selector: listing every application is not a
		// supported view.
		if (input.TenantID == "") == (input.ManagerID == "") {
			return nil, huma.Error422UnprocessableEntity("exactly one of tenant_id or manager_id is required")
		}

		details, err := svc.List(ctx, domain.ApplicationFilter{
			TenantID:  input.TenantID,
			ManagerID: input.ManagerID,
		})
		if err != nil {
			return nil, toHumaError(err)
		}

		resp := make([]ApplicationResponse, len(details))
		for i, d := range details {
			resp[i] = toApplicationResponse(d)
		}
		return &ListApplicationsOutput{Body: resp}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "update-application-status",
		Method:      http.MethodPut,
		Path:        "/api/v1/applications/{id}/status",
		Summary:     "Approve, deny, or reopen an application",
		Tags:        []string{"Applications"},
	}, func(ctx context.Context, input *UpdateStatusInput) (*UpdateStatusOutput, error) {
		detail, err := svc.UpdateStatus(ctx, input.ID, input.Body.Status)
		if err != nil {
			return nil, toHumaError(err)
		}
		return &UpdateStatusOutput{Body: toApplicationResponse(detail)}, nil
	})
}

func registerProperties(api huma.API, svc *app.PropertyService) {
	huma.Register(api, huma.Operation{
		OperationID:   "create-property",
		Method:        http.MethodPost,
		Path:          "/api/v1/properties",
		Summary:       "List a new property",
		Tags:          []string{"Properties"},
		DefaultStatus: http.StatusCreated,
	}, func(ctx context.Context, input *CreatePropertyInput) (*CreatePropertyOutput, error) {
		property, err := svc.Create(ctx, input.Body.Name, domain.Location{
			Address:    input.Body.Address,
			City:       input.Body.City,
			State:      input.Body.State,
			PostalCode: input.Body.PostalCode,
			Latitude:   input.Body.Latitude,
			Longitude:  input.Body.Longitude,
		}, input.Body.PricePerMonth, input.Body.SecurityDeposit, input.Body.ManagerID)
		if err != nil {
			return nil, toHumaError(err)
		}
		return &CreatePropertyOutput{Body: toPropertyResponse(property)}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "get-property",
		Method:      http.MethodGet,
		Path:        "/api/v1/properties/{id}",
		Summary:     "Get a property by ID",
		Tags:        []string{"Properties"},
	}, func(ctx context.Context, input *GetPropertyInput) (*GetPropertyOutput, error) {
		property, err := svc.GetByID(ctx, input.ID)
		if err != nil {
			return nil, toHumaError(err)
		}
		return &GetPropertyOutput{Body: toPropertyResponse(property)}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "list-properties",
		Method:      http.MethodGet,
		Path:        "/api/v1/properties",
		Summary:     "List properties",
		Tags:        []string{"Properties"},
	}, func(ctx context.Context, input *ListPropertiesInput) (*ListPropertiesOutput, error) {
		properties, err := svc.List(ctx, domain.PropertyFilter{
			ManagerID: input.ManagerID,
			Limit:     input.Limit,
			Offset:    input.Offset,
		})
		if err != nil {
			return nil, toHumaError(err)
		}

		resp := make([]PropertyResponse, len(properties))
		for i, p := range properties {
			resp[i] = toPropertyResponse(p)
		}
		return &ListPropertiesOutput{Body: resp}, nil
	})
}

func registerTenants(api huma.API, svc *app.TenantService) {
	huma.Register(api, huma.Operation{
		OperationID: "register-tenant",
		Method:      http.MethodPut,
		Path:        "/api/v1/tenants/{id}",
		Summary:     "Register or refresh a tenant profile",
		Tags:        []string{"Tenants"},
	}, func(ctx context.Context, input *RegisterTenantInput) (*RegisterTenantOutput, error) {
		tenant, err := svc.Register(ctx, input.ID, input.Body.Name, input.Body.Email, input.Body.PhoneNumber)
		if err != nil {
			return nil, toHumaError(err)
		}
		return &RegisterTenantOutput{Body: toTenantResponse(tenant)}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "get-tenant",
		Method:      http.MethodGet,
		Path:        "/api/v1/tenants/{id}",
		Summary:     "Get a tenant by ID",
		Tags:        []string{"Tenants"},
	}, func(ctx context.Context, input *GetTenantInput) (*GetTenantOutput, error) {
		tenant, err := svc.GetByID(ctx, input.ID)
		if err != nil {
			return nil, toHumaError(err)
		}
		return &GetTenantOutput{Body: toTenantResponse(tenant)}, nil
	})
}

// toHumaError translates domain errors to Huma HTTP errors.
func toHumaError(err error) error {
	switch {
	case errors.Is(err, domain.ErrApplicationNotFound):
		return huma.Error404NotFound("application not found")
	case errors.Is(err, domain.ErrPropertyNotFound):
		return huma.Error404NotFound("property not found")
	case errors.Is(err, domain.ErrTenantNotFound):
		return huma.Error404NotFound("tenant not found")
	case errors.Is(err, domain.ErrLeaseNotFound):
		return huma.Error404NotFound("lease not found")
	case errors.Is(err, domain.ErrCannotModifyApproved):
		return huma.Error400BadRequest(domain.ErrCannotModifyApproved.Error())
	case errors.Is(err, domain.ErrTxTimeout):
		return huma.Error503ServiceUnavailable("approval transaction timed out, try again")
	}

	var dupErr *domain.DuplicateApplicationError
	if errors.As(err, &dupErr) {
		return huma.Error409Conflict(dupErr.Error())
	}

	var leaseErr *domain.LeaseExistsError
	if errors.As(err, &leaseErr) {
		return huma.Error409Conflict(leaseErr.Error())
	}

	var activeErr *domain.ActiveLeaseError
	if errors.As(err, &activeErr) {
		return huma.Error409Conflict(activeErr.Error())
	}

	var missingErr *domain.MissingFieldError
	if errors.As(err, &missingErr) {
		return huma.Error422UnprocessableEntity(missingErr.Error())
	}

	var emailErr *domain.InvalidEmailError
	if errors.As(err, &emailErr) {
		return huma.Error422UnprocessableEntity(emailErr.Error())
	}

	var statusErr *domain.InvalidStatusError
	if errors.As(err, &statusErr) {
		return huma.Error422UnprocessableEntity(statusErr.Error())
	}

	var trErr *domain.TransitionError
	if errors.As(err, &trErr) {
		return huma.Error422UnprocessableEntity(trErr.Error())
	}

	return huma.Error500InternalServerError("internal server error")
}
