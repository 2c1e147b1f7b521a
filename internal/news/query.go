package news

import (
	"fmt"
	"strings"
)

// Default query parameters used when a caller omits them
const (
	DefaultNaverDisplay       = 10
	DefaultNaverStart         = 1
	DefaultDeepSearchLimit    = 10
	DefaultDeepSearchDaysBack = 30
	DefaultCombinedNaverLimit = 5
	DefaultCombinedDeepLimit  = 5
	DefaultCombinedDaysBack   = 30
	maxResultLimit            = 100
	maxDaysBack               = 365
)

// Query is a provider-bound search request. Build it with NewNaverQuery or
// NewDeepSearchQuery; the fields a provider does not use stay zero.
type Query struct {
	CompanyName string
	Limit       int
	Start       int // Naver only
	DaysBack    int // DeepSearch only
}

// NewNaverQuery builds a Naver query; display is the page size
func NewNaverQuery(company string, display, start int) (Query, error) {
	if err := validateCompany(company); err != nil {
		return Query{}, err
	}
	if err := validateRange("display", display, 1, maxResultLimit); err != nil {
		return Query{}, err
	}
	if start < 1 {
		return Query{}, &ValidationError{Field: "start", Message: "must be greater than or equal to 1"}
	}
	return Query{CompanyName: company, Limit: display, Start: start}, nil
}

// NewDeepSearchQuery builds a DeepSearch query covering the last daysBack days
func NewDeepSearchQuery(company string, limit, daysBack int) (Query, error) {
	if err := validateCompany(company); err != nil {
		return Query{}, err
	}
	if err := validateRange("limit", limit, 1, maxResultLimit); err != nil {
		return Query{}, err
	}
	if err := validateRange("days_back", daysBack, 1, maxDaysBack); err != nil {
		return Query{}, err
	}
	return Query{CompanyName: company, Limit: limit, DaysBack: daysBack}, nil
}

func validateCompany(company string) error {
	if strings.TrimSpace(company) == "" {
		return &ValidationError{Field: "company_name", Message: "must not be empty"}
	}
	return nil
}

func validateRange(field string, value, min, max int) error {
	if value < min || value > max {
		return &ValidationError{Field: field, Message: fmt.Sprintf("must be between %d and %d", min, max)}
	}
	return nil
}
