package entity

import (
	"strconv"
	"strings"

	dErrors "github.com/HasbiyallahuJafaru/E-KYC/pkg/domain-errors"
)

// RawRecord is the semi-structured registry payload as returned by a
// verification provider. Field names vary by provider and are resolved
// through alias tables during normalization.
type RawRecord map[string]any

// classificationRule maps a substring of the provider's free-text entity-type
// descriptor to a Kind. Rules are evaluated in slice order and the first
// match wins, so more specific tokens must come before generic ones:
// "business name" before "ltd" (many business names trade as "X Ventures
// Ltd"), "incorporated trustees" before "ngo" (the legal-form string for an
// NGO usually contains both tokens).
type classificationRule struct {
	pattern string
	kind    Kind
}

var classificationRules = []classificationRule{
	{"business name", KindBusinessName},
	{"sole proprietor", KindBusinessName},
	{"enterprise", KindBusinessName},
	{"incorporated trustees", KindIncorporatedTrustees},
	{"trustee", KindIncorporatedTrustees},
	{"non-governmental", KindNGO},
	{"non governmental", KindNGO},
	{"ngo", KindNGO},
	{"public limited", KindPLC},
	{"plc", KindPLC},
	{"limited by guarantee", KindLimited},
	{"limited by shares", KindLimited},
	{"private company", KindLimited},
	{"limited", KindLimited},
	{"ltd", KindLimited},
}

// registration-number prefixes used as a classification fallback when the
// type descriptor is missing or matches nothing.
var prefixRules = []classificationRule{
	{"BN", KindBusinessName},
	{"IT", KindIncorporatedTrustees},
	{"CAC/IT", KindIncorporatedTrustees},
	{"RC", KindLimited},
}

// Alias tables for provider field names. Keys are matched after lowercasing
// and stripping separators, so "companyName", "company_name" and
// "COMPANY-NAME" all resolve identically.
var (
	nameAliases    = []string{"companyname", "legalname", "businessname", "entityname", "name"}
	regNumAliases  = []string{"rcnumber", "registrationnumber", "bnnumber", "itnumber", "regnumber"}
	typeAliases    = []string{"companytype", "entitytype", "legalform", "typeofentity", "type"}
	statusAliases  = []string{"companystatus", "entitystatus", "status"}
	incDateAliases = []string{"incorporationdate", "dateofincorporation", "registrationdate", "dateofregistration"}
	addressAliases = []string{"registeredaddress", "headofficeaddress", "officeaddress", "address"}
	cityAliases    = []string{"city", "town"}
	stateAliases   = []string{"state", "stateoforigin"}
	lgaAliases     = []string{"lga", "localgovernmentarea", "localgovernment"}
	postalAliases  = []string{"postalcode", "postcode", "zipcode"}
	branchAliases  = []string{"branchaddress", "branchoffice"}

	directorListAliases    = []string{"directors", "companydirectors"}
	shareholderListAliases = []string{"shareholders", "shareholding"}
	proprietorListAliases  = []string{"proprietors", "owners", "partners"}
	trusteeListAliases     = []string{"trustees", "boardoftrustees"}

	shareCapitalAliases = []string{"sharecapital", "authorizedsharecapital", "issuedsharecapital"}
	emailAliases        = []string{"email", "emailaddress", "contactemail"}
	phoneAliases        = []string{"phonenumber", "phone", "contactphone", "mobile"}
	percentageAliases   = []string{"percentage", "sharepercentage", "shareholding", "percent", "ownershippercentage"}
	positionAliases     = []string{"position", "designation", "role"}
	apptDateAliases     = []string{"appointmentdate", "dateofappointment", "appointeddate"}
	nationalityAliases  = []string{"nationality", "country"}
	commencementAliases = []string{"commencementdate", "businesscommencementdate", "datofcommencement", "dateofcommencement"}
	natureAliases       = []string{"natureofbusiness", "businessnature", "principalactivity"}
	aimsAliases         = []string{"aimsandobjectives", "objectives", "aims"}
)

// Normalize classifies a raw registry payload and extracts the fields
// meaningful for the chosen kind. It is a pure function of its input.
//
// It fails only when neither a legal name nor a registration number can be
// extracted: everything else degrades to a best-effort record, with
// LowConfidence set when classification fell back to the default kind.
func Normalize(raw RawRecord) (*Record, error) {
	fields := foldKeys(raw)

	name := stringField(fields, nameAliases)
	regNum := stringField(fields, regNumAliases)
	if name == "" && regNum == "" {
		return nil, dErrors.New(dErrors.CodeClassification, "registry payload carries no legal name or registration number")
	}

	kind, confident := classify(stringField(fields, typeAliases), regNum)
	profile := extractProfile(fields, name, regNum)

	var rec Record
	switch kind {
	case KindBusinessName:
		rec = NewBusinessName(profile, extractBusinessName(fields))
	case KindNGO, KindIncorporatedTrustees:
		rec = NewTrusteeEntity(kind, profile, extractTrustees(fields))
	default:
		rec = NewCompany(kind, profile, extractCompany(fields))
	}
	rec.LowConfidence = !confident
	return &rec, nil
}

// classify resolves the entity kind from the free-text type descriptor, then
// from the registration-number prefix, defaulting to LIMITED (the most common
// registry form) with a low-confidence signal.
func classify(companyType, regNum string) (Kind, bool) {
	descriptor := strings.ToLower(strings.TrimSpace(companyType))
	if descriptor != "" {
		for _, rule := range classificationRules {
			if strings.Contains(descriptor, rule.pattern) {
				return rule.kind, true
			}
		}
	}

	prefix := strings.ToUpper(strings.TrimSpace(regNum))
	for _, rule := range prefixRules {
		if strings.HasPrefix(prefix, rule.pattern) {
			return rule.kind, true
		}
	}

	return KindLimited, false
}

func extractProfile(fields map[string]any, name, regNum string) Profile {
	return Profile{
		LegalName:          name,
		RegistrationNumber: regNum,
		Status:             normalizeStatus(stringField(fields, statusAliases)),
		IncorporationDate:  optionalField(fields, incDateAliases),
		RegisteredAddress:  optionalField(fields, addressAliases),
		City:               optionalField(fields, cityAliases),
		State:              optionalField(fields, stateAliases),
		LGA:                optionalField(fields, lgaAliases),
		PostalCode:         optionalField(fields, postalAliases),
		BranchAddress:      optionalField(fields, branchAliases),
	}
}

func extractCompany(fields map[string]any) CompanyDetails {
	details := CompanyDetails{
		ShareCapital: floatField(fields, shareCapitalAliases),
		Email:        optionalField(fields, emailAliases),
		PhoneNumber:  optionalField(fields, phoneAliases),
	}
	for _, item := range listField(fields, directorListAliases) {
		details.Directors = append(details.Directors, Director{
			Name:            stringField(item, nameAliases),
			Position:        firstNonEmpty(stringField(item, positionAliases), "Director"),
			AppointmentDate: optionalField(item, apptDateAliases),
			Status:          optionalField(item, statusAliases),
			Email:           optionalField(item, emailAliases),
			PhoneNumber:     optionalField(item, phoneAliases),
		})
	}
	for _, item := range listField(fields, shareholderListAliases) {
		isCorporate := strings.EqualFold(stringField(item, []string{"type", "shareholdertype"}), "CORPORATE") ||
			boolField(item, []string{"iscorporate", "corporate"})
		details.Shareholders = append(details.Shareholders, Shareholder{
			Name:                  stringField(item, nameAliases),
			Percentage:            floatField(item, percentageAliases),
			IsCorporate:           isCorporate,
			CorporateRegistration: optionalField(item, regNumAliases),
			Verified:              boolField(item, []string{"verified", "isverified"}),
		})
	}
	return details
}

func extractBusinessName(fields map[string]any) BusinessNameDetails {
	details := BusinessNameDetails{
		CommencementDate: optionalField(fields, commencementAliases),
		NatureOfBusiness: optionalField(fields, natureAliases),
	}
	for _, item := range listField(fields, proprietorListAliases) {
		details.Proprietors = append(details.Proprietors, Proprietor{
			Name:        stringField(item, nameAliases),
			Percentage:  floatField(item, percentageAliases),
			Address:     optionalField(item, addressAliases),
			Nationality: optionalField(item, nationalityAliases),
		})
	}
	return details
}

func extractTrustees(fields map[string]any) TrusteeDetails {
	details := TrusteeDetails{
		AimsAndObjectives: optionalField(fields, aimsAliases),
	}
	for _, item := range listField(fields, trusteeListAliases) {
		details.Trustees = append(details.Trustees, Trustee{
			Name:            stringField(item, nameAliases),
			AppointmentDate: optionalField(item, apptDateAliases),
			Address:         optionalField(item, addressAliases),
		})
	}
	return details
}

func normalizeStatus(raw string) Status {
	switch strings.ToUpper(strings.TrimSpace(raw)) {
	case "ACTIVE", "REGISTERED":
		return StatusActive
	case "INACTIVE", "DISSOLVED", "DORMANT", "DELISTED", "STRUCK OFF":
		return StatusInactive
	default:
		return StatusUnknown
	}
}

// foldKeys rewrites map keys to a canonical form (lowercase, separators
// removed) so alias lookups tolerate provider casing differences.
func foldKeys(raw map[string]any) map[string]any {
	out := make(map[string]any, len(raw))
	for k, v := range raw {
		out[foldKey(k)] = v
	}
	return out
}

func foldKey(k string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(k) {
		if r == '_' || r == '-' || r == ' ' {
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

func stringField(fields map[string]any, aliases []string) string {
	for _, alias := range aliases {
		if v, ok := fields[alias]; ok {
			if s, ok := v.(string); ok {
				return strings.TrimSpace(s)
			}
		}
	}
	return ""
}

// optionalField returns nil for absent fields rather than a pointer to the
// empty string, preserving the unknown/confirmed-empty distinction.
func optionalField(fields map[string]any, aliases []string) *string {
	for _, alias := range aliases {
		if v, ok := fields[alias]; ok {
			if s, ok := v.(string); ok {
				trimmed := strings.TrimSpace(s)
				if trimmed != "" {
					return &trimmed
				}
			}
		}
	}
	return nil
}

func floatField(fields map[string]any, aliases []string) *float64 {
	for _, alias := range aliases {
		v, ok := fields[alias]
		if !ok {
			continue
		}
		switch n := v.(type) {
		case float64:
			return &n
		case float32:
			f := float64(n)
			return &f
		case int:
			f := float64(n)
			return &f
		case int64:
			f := float64(n)
			return &f
		case string:
			if f, err := strconv.ParseFloat(strings.TrimSpace(n), 64); err == nil {
				return &f
			}
		}
	}
	return nil
}

func boolField(fields map[string]any, aliases []string) bool {
	for _, alias := range aliases {
		if v, ok := fields[alias]; ok {
			if b, ok := v.(bool); ok {
				return b
			}
		}
	}
	return false
}

// listField returns nested list items with their keys already folded.
func listField(fields map[string]any, aliases []string) []map[string]any {
	for _, alias := range aliases {
		v, ok := fields[alias]
		if !ok {
			continue
		}
		items, ok := v.([]any)
		if !ok {
			continue
		}
		out := make([]map[string]any, 0, len(items))
		for _, item := range items {
			if m, ok := item.(map[string]any); ok {
				out = append(out, foldKeys(m))
			}
		}
		return out
	}
	return nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
