package entity

// Kind is the legal registration category of a Nigerian business entity as
// recorded by the corporate registry.
type Kind string

const (
	KindLimited              Kind = "LIMITED"
	KindPLC                  Kind = "PLC"
	KindBusinessName         Kind = "BUSINESS_NAME"
	KindNGO                  Kind = "NGO"
	KindIncorporatedTrustees Kind = "INCORPORATED_TRUSTEES"
)

// Status is the registry status of an entity.
type Status string

const (
	StatusActive   Status = "ACTIVE"
	StatusInactive Status = "INACTIVE"
	StatusUnknown  Status = "UNKNOWN"
)

// Record is a normalized registry entity. It is a closed tagged variant: the
// kind-specific attributes live behind the Details interface and exactly one
// variant is ever populated, so cross-kind field combinations are
// unrepresentable rather than merely checked.
//
// Optional scalars are pointers. A nil pointer means the registry did not
// report the field, which is distinct from a confirmed empty value.
type Record struct {
	Kind    Kind
	Profile Profile

	// LowConfidence is set when classification fell back to the default
	// kind because no pattern matched the provider's type descriptor.
	LowConfidence bool

	details Details
}

// Profile holds the attributes common to every entity kind.
type Profile struct {
	LegalName          string
	RegistrationNumber string
	Status             Status
	IncorporationDate  *string // ISO-8601 calendar date
	RegisteredAddress  *string
	City               *string
	State              *string
	LGA                *string
	PostalCode         *string
	BranchAddress      *string
}

// Details is the kind-specific half of a Record. The marker method keeps the
// set of variants closed to this package's three concrete types.
type Details interface {
	detailsKind() Kind
}

// Director of a LIMITED or PLC company.
type Director struct {
	Name            string
	Position        string
	AppointmentDate *string
	Status          *string
	Email           *string
	PhoneNumber     *string
}

// Shareholder of a LIMITED or PLC company. CorporateRegistration carries the
// shareholder's own registry number when the holder is itself a company.
type Shareholder struct {
	Name                  string
	Percentage            *float64 // 0-100
	IsCorporate           bool
	CorporateRegistration *string
	Verified              bool
}

// CompanyDetails is the variant for LIMITED and PLC entities.
type CompanyDetails struct {
	kind         Kind
	Directors    []Director
	Shareholders []Shareholder
	ShareCapital *float64 // nonnegative
	Email        *string
	PhoneNumber  *string
}

func (d CompanyDetails) detailsKind() Kind { return d.kind }

// Proprietor of a registered business name. A nil Percentage means the
// registry did not state the ownership split.
type Proprietor struct {
	Name        string
	Percentage  *float64 // 0-100
	Address     *string
	Nationality *string
}

// BusinessNameDetails is the variant for BUSINESS_NAME entities.
type BusinessNameDetails struct {
	Proprietors      []Proprietor
	CommencementDate *string
	NatureOfBusiness *string
}

func (BusinessNameDetails) detailsKind() Kind { return KindBusinessName }

// Trustee of an NGO or incorporated-trustees entity.
type Trustee struct {
	Name            string
	AppointmentDate *string
	Address         *string
}

// TrusteeDetails is the variant for NGO and INCORPORATED_TRUSTEES entities.
type TrusteeDetails struct {
	kind             Kind
	Trustees         []Trustee
	AimsAndObjectives *string
}

func (d TrusteeDetails) detailsKind() Kind { return d.kind }

// NewCompany builds a LIMITED or PLC record. Other kinds are rejected so the
// variant tag can never disagree with the details payload.
func NewCompany(kind Kind, profile Profile, details CompanyDetails) Record {
	if kind != KindLimited && kind != KindPLC {
		kind = KindLimited
	}
	details.kind = kind
	return Record{Kind: kind, Profile: profile, details: details}
}

// NewBusinessName builds a BUSINESS_NAME record.
func NewBusinessName(profile Profile, details BusinessNameDetails) Record {
	return Record{Kind: KindBusinessName, Profile: profile, details: details}
}

// NewTrusteeEntity builds an NGO or INCORPORATED_TRUSTEES record.
func NewTrusteeEntity(kind Kind, profile Profile, details TrusteeDetails) Record {
	if kind != KindNGO && kind != KindIncorporatedTrustees {
		kind = KindIncorporatedTrustees
	}
	details.kind = kind
	return Record{Kind: kind, Profile: profile, details: details}
}

// Company returns the company variant, if this record carries one.
func (r Record) Company() (CompanyDetails, bool) {
	d, ok := r.details.(CompanyDetails)
	return d, ok
}

// BusinessName returns the business-name variant, if this record carries one.
func (r Record) BusinessName() (BusinessNameDetails, bool) {
	d, ok := r.details.(BusinessNameDetails)
	return d, ok
}

// TrusteeEntity returns the trustee variant, if this record carries one.
func (r Record) TrusteeEntity() (TrusteeDetails, bool) {
	d, ok := r.details.(TrusteeDetails)
	return d, ok
}

// Details exposes the variant for exhaustive switching in analyzers.
func (r Record) Details() Details { return r.details }

// IsCompany reports whether the record is a share-capital company.
func (r Record) IsCompany() bool {
	return r.Kind == KindLimited || r.Kind == KindPLC
}

// OwnershipPercentages returns every stated ownership percentage for the
// record's kind, in source order. Trustee entities have none.
func (r Record) OwnershipPercentages() []float64 {
	var out []float64
	switch d := r.details.(type) {
	case CompanyDetails:
		for _, s := range d.Shareholders {
			if s.Percentage != nil {
				out = append(out, *s.Percentage)
			}
		}
	case BusinessNameDetails:
		for _, p := range d.Proprietors {
			if p.Percentage != nil {
				out = append(out, *p.Percentage)
			}
		}
	}
	return out
}
