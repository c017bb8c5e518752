// Package checkavailability implements the check_availability function: a
// directory lookup followed by a live status check.
package checkavailability

import (
	"context"
	"strings"

	"jari-backend/internal/assistant"
	"jari-backend/internal/common/errors"
	"jari-backend/internal/common/logger"
	"jari-backend/internal/common/validation"
	"jari-backend/internal/directory"
	"jari-backend/internal/scheduling"
)

// DirectoryResolver resolves a person's identity by full name.
type DirectoryResolver interface {
	Resolve(ctx context.Context, fullName, company string) (*directory.PersonRecord, error)
}

// AvailabilityChecker resolves a person's live status.
type AvailabilityChecker interface {
	CheckStatus(ctx context.Context, concernID, personID string) (*scheduling.Verdict, error)
}

type Service struct {
	directory      DirectoryResolver
	scheduling     AvailabilityChecker
	defaultCompany string
	logger         logger.Logger
}

func NewService(dir DirectoryResolver, sched AvailabilityChecker, defaultCompany string, log logger.Logger) *Service {
	return &Service{
		directory:      dir,
		scheduling:     sched,
		defaultCompany: defaultCompany,
		logger:         log.WithFields(map[string]interface{}{"function": assistant.CheckAvailabilityFunction}),
	}
}

func (s *Service) Name() string {
	return assistant.CheckAvailabilityFunction
}

func (s *Service) ParameterSchema() validation.JSONSchema {
	return assistant.CheckAvailabilitySchema()
}

// Execute resolves the person, then their availability. A person missing from
// the directory is a normal found:false outcome and the scheduling service is
// never called for it; a directory upstream failure fails the request. A
// scheduling failure of any kind degrades into an unavailable/unknown verdict
// rather than failing the request.
func (s *Service) Execute(ctx context.Context, params map[string]interface{}) (interface{}, error) {
	fullName, _ := params["fullName"].(string)
	if strings.TrimSpace(fullName) == "" {
		return nil, errors.NewMissingArgumentError("fullName", "Full name not provided")
	}

	record, err := s.directory.Resolve(ctx, fullName, s.defaultCompany)
	if err != nil {
		if errors.IsCode(err, errors.ErrCodePersonNotFound) {
			return &NotFoundOutput{Found: false, Message: err.(*errors.StandardError).Message}, nil
		}
		return nil, err
	}

	verdict, err := s.scheduling.CheckStatus(ctx, record.ConcernID, record.PersonID)
	available, status := foldVerdict(verdict, err)
	if err != nil {
		s.logger.Warn("availability lookup degraded", map[string]interface{}{
			"fullName":  record.FullName,
			"errorCode": string(errors.CodeOf(err)),
		})
	}

	var phoneNumber *string
	if record.PhoneNumber != "" {
		phoneNumber = &record.PhoneNumber
	}

	return &Output{
		Found:       true,
		FullName:    record.FullName,
		Available:   available,
		Status:      status,
		PhoneNumber: phoneNumber,
	}, nil
}

// foldVerdict is the degradation policy for the availability leg: any error
// folds into an unavailable/unknown verdict so the request still succeeds
// with found:true.
func foldVerdict(v *scheduling.Verdict, err error) (available bool, status string) {
	if err != nil || v == nil {
		return false, "unknown"
	}
	return v.Available, v.Status
}
